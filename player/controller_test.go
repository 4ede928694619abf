package player

import (
	"testing"

	"github.com/ckearl/senahpark.com/transcript"
)

func testIndex(t *testing.T) *transcript.Index {
	t.Helper()
	segs := []transcript.Segment{
		{ID: "1", StartTime: 0, Text: "welcome to the lecture", SegmentOrder: 1},
		{ID: "2", StartTime: 15.5, Text: "do you want to fill that capacity", SegmentOrder: 2},
		{ID: "3", StartTime: 45.2, Text: "get that capacity up", SegmentOrder: 3},
		{ID: "4", StartTime: 78.9, Text: "different things", SegmentOrder: 4},
	}
	idx, err := transcript.NewIndex(segs)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func TestControllerStartsIdle(t *testing.T) {
	c := NewController()
	if c.Mode() != Idle {
		t.Fatalf("mode = %v, want idle", c.Mode())
	}
	if c.Advance(10) {
		t.Fatal("advance in idle must not derive an active segment")
	}
	if _, ok := c.ActiveIndex(); ok {
		t.Fatal("idle controller has no active segment")
	}
}

func TestSetIndexEntersFollowing(t *testing.T) {
	c := NewController()
	c.SetIndex(testIndex(t))
	if c.Mode() != Following {
		t.Fatalf("mode = %v, want following", c.Mode())
	}
	if got := len(c.Visible()); got != 4 {
		t.Fatalf("visible = %d, want 4", got)
	}
}

func TestAdvanceDerivesActiveSegment(t *testing.T) {
	c := NewController()
	c.SetIndex(testIndex(t))

	if !c.Advance(50) {
		t.Fatal("first advance should change the active index")
	}
	i, ok := c.ActiveIndex()
	if !ok || i != 2 {
		t.Fatalf("active = %d,%v; want 2,true", i, ok)
	}

	// Same segment: no change, no scroll.
	c.ScrollTarget()
	if c.Advance(60) {
		t.Fatal("advance within the same segment must not report a change")
	}
	if _, ok := c.ScrollTarget(); ok {
		t.Fatal("no scroll request expected without an index change")
	}
}

func TestScrollOnlyWhileFollowing(t *testing.T) {
	c := NewController()
	c.SetIndex(testIndex(t))

	c.Advance(20)
	if target, ok := c.ScrollTarget(); !ok || target != 1 {
		t.Fatalf("scroll target = %d,%v; want 1,true", target, ok)
	}
	// Consumed on read.
	if _, ok := c.ScrollTarget(); ok {
		t.Fatal("scroll target must be consumed")
	}

	c.ToggleFollow()
	if c.Mode() != PausedFollow {
		t.Fatalf("mode = %v, want paused-follow", c.Mode())
	}
	if !c.Advance(80) {
		t.Fatal("highlighting still advances while paused")
	}
	if _, ok := c.ScrollTarget(); ok {
		t.Fatal("paused-follow must not request scrolling")
	}

	c.ToggleFollow()
	c.Advance(16)
	if _, ok := c.ScrollTarget(); !ok {
		t.Fatal("following again should resume scroll requests")
	}
}

// TestPausedSeekRecomputesActiveSegment drives a seek through the same
// tick-and-advance pump the UI runs, with playback paused throughout.
func TestPausedSeekRecomputesActiveSegment(t *testing.T) {
	dev := &fakeDevice{paused: true, duration: 100}
	clock := NewClock(dev, 1, 1)
	c := NewController()
	c.SetIndex(testIndex(t))

	pump := func() {
		for _, ev := range clock.Tick() {
			if ev.Type == TimeChanged {
				c.Advance(ev.Time)
			}
		}
	}

	pump()
	if _, ok := c.ActiveIndex(); ok {
		t.Fatal("no active segment before any seek")
	}

	clock.Seek(50)
	pump()
	pump()

	if i, ok := c.ActiveIndex(); !ok || i != 2 {
		t.Fatalf("active after paused seek = %d,%v; want 2,true", i, ok)
	}
	if target, ok := c.ScrollTarget(); !ok || target != 2 {
		t.Fatalf("scroll target = %d,%v; want 2,true", target, ok)
	}

	// A percent jump routes through the same seek path.
	clock.JumpToPercent(0)
	pump()
	if i, ok := c.ActiveIndex(); !ok || i != 0 {
		t.Fatalf("active after jump to start = %d,%v; want 0,true", i, ok)
	}
}

func TestLectureSwitchResetsToFollowing(t *testing.T) {
	c := NewController()
	c.SetIndex(testIndex(t))
	c.ToggleFollow()
	c.SetQuery("capacity")

	c.SetIndex(testIndex(t))
	if c.Mode() != Following {
		t.Fatalf("mode = %v, want following after switch", c.Mode())
	}
	if c.Query() != "" {
		t.Fatalf("query = %q, want empty after switch", c.Query())
	}
	if _, ok := c.ActiveIndex(); ok {
		t.Fatal("active segment must reset on switch")
	}
}

func TestSearchMapsActiveByIdentity(t *testing.T) {
	c := NewController()
	c.SetIndex(testIndex(t))
	c.Advance(50) // active = 2

	c.SetQuery("capacity")
	visible := c.Visible()
	if len(visible) != 2 {
		t.Fatalf("visible = %d, want 2", len(visible))
	}
	if visible[0].OriginalIndex != 1 || visible[1].OriginalIndex != 2 {
		t.Fatalf("original indices = [%d %d], want [1 2]",
			visible[0].OriginalIndex, visible[1].OriginalIndex)
	}

	// The active segment is unchanged; only its visible position moves.
	if i, ok := c.ActiveIndex(); !ok || i != 2 {
		t.Fatalf("active = %d,%v; want 2,true", i, ok)
	}
	if pos, ok := c.ActiveVisiblePosition(); !ok || pos != 1 {
		t.Fatalf("visible position = %d,%v; want 1,true", pos, ok)
	}

	// Filter the active segment out entirely.
	c.SetQuery("welcome")
	if _, ok := c.ActiveVisiblePosition(); ok {
		t.Fatal("active segment filtered out should have no visible position")
	}
	if i, ok := c.ActiveIndex(); !ok || i != 2 {
		t.Fatalf("underlying active = %d,%v; want 2,true", i, ok)
	}
}

func TestToggleSearchClearsQueryOnHide(t *testing.T) {
	c := NewController()
	c.SetIndex(testIndex(t))

	c.ToggleSearch()
	if !c.SearchVisible() {
		t.Fatal("search should be visible after toggle")
	}
	c.SetQuery("capacity")

	c.ToggleSearch()
	if c.SearchVisible() {
		t.Fatal("search should hide on second toggle")
	}
	if c.Query() != "" {
		t.Fatalf("query = %q, want empty after hiding search", c.Query())
	}
	if got := len(c.Visible()); got != 4 {
		t.Fatalf("visible = %d, want full transcript after hiding search", got)
	}
}
