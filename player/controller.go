package player

import (
	"github.com/ckearl/senahpark.com/transcript"
)

// FollowMode describes how the controller reacts to active-segment changes.
type FollowMode int

const (
	// Idle means no lecture is loaded; there is no active segment.
	Idle FollowMode = iota
	// Following keeps the viewport centered on the active segment.
	Following
	// PausedFollow keeps highlighting the active segment without scrolling.
	PausedFollow
)

// Controller reconciles clock ticks with the segment index: it derives the
// active segment, decides when the viewport should scroll, and maps the
// active segment into the filtered view during a search.
type Controller struct {
	index  *transcript.Index
	mode   FollowMode
	active int

	query         string
	matches       []transcript.Match
	searchVisible bool

	scrollTo  int
	scrollSet bool
}

// NewController creates a controller in idle state.
func NewController() *Controller {
	return &Controller{active: -1}
}

// Mode returns the current follow mode.
func (c *Controller) Mode() FollowMode {
	return c.mode
}

// SetIndex installs the segment index for a newly selected lecture and
// returns the controller to following mode with no active segment and no
// search query.
func (c *Controller) SetIndex(idx *transcript.Index) {
	c.index = idx
	c.mode = Following
	c.active = -1
	c.query = ""
	c.matches = nil
	c.searchVisible = false
	c.scrollSet = false
	c.refilter()
}

// Clear detaches the controller from any lecture.
func (c *Controller) Clear() {
	c.index = nil
	c.mode = Idle
	c.active = -1
	c.query = ""
	c.matches = nil
	c.searchVisible = false
	c.scrollSet = false
}

// ToggleFollow switches between following and paused-follow. Idle is
// unaffected.
func (c *Controller) ToggleFollow() {
	switch c.mode {
	case Following:
		c.mode = PausedFollow
	case PausedFollow:
		c.mode = Following
	}
}

// Advance recomputes the active segment for the given playback time and
// reports whether the active index changed. A scroll request is armed only
// on an index change while following; per-tick time movement inside one
// segment never scrolls.
func (c *Controller) Advance(t float64) bool {
	if c.mode == Idle || c.index == nil {
		return false
	}
	next := -1
	if i, ok := c.index.ActiveSegment(t); ok {
		next = i
	}
	if next == c.active {
		return false
	}
	c.active = next
	if c.mode == Following && next >= 0 {
		c.scrollTo = next
		c.scrollSet = true
	}
	return true
}

// ScrollTarget returns and consumes the pending scroll request: the
// unfiltered index of the segment the viewport should center.
func (c *Controller) ScrollTarget() (int, bool) {
	if !c.scrollSet {
		return 0, false
	}
	c.scrollSet = false
	return c.scrollTo, true
}

// ActiveIndex returns the active segment's unfiltered index.
func (c *Controller) ActiveIndex() (int, bool) {
	if c.active < 0 {
		return 0, false
	}
	return c.active, true
}

// SetQuery installs a search query. Filtering changes which entries are
// visible; the underlying active segment is untouched.
func (c *Controller) SetQuery(q string) {
	c.query = q
	c.refilter()
}

// Query returns the current search query.
func (c *Controller) Query() string {
	return c.query
}

// ToggleSearch flips the transcript search box visibility. Hiding the box
// clears the query so the full transcript is visible again.
func (c *Controller) ToggleSearch() {
	c.searchVisible = !c.searchVisible
	if !c.searchVisible {
		c.SetQuery("")
	}
}

// SearchVisible reports whether the search box is shown.
func (c *Controller) SearchVisible() bool {
	return c.searchVisible
}

// Visible returns the segments currently shown: the filtered list during a
// search, otherwise the full sequence with identity mapping.
func (c *Controller) Visible() []transcript.Match {
	return c.matches
}

// ActiveVisiblePosition maps the active segment into the visible list by
// identity. During a search the active segment may be filtered out, in which
// case there is no visible position.
func (c *Controller) ActiveVisiblePosition() (int, bool) {
	if c.active < 0 {
		return 0, false
	}
	for pos, m := range c.matches {
		if m.OriginalIndex == c.active {
			return pos, true
		}
	}
	return 0, false
}

func (c *Controller) refilter() {
	if c.index == nil {
		c.matches = nil
		return
	}
	c.matches = c.index.Filter(c.query)
}
