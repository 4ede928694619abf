// Package session coordinates what the player is looking at: which lecture
// is loaded, where its audio lives, and where playback should resume. It sits
// between the catalog database and the UI so that slow fetches, stale
// responses and per-lecture progress all resolve in one place.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/ckearl/senahpark.com/audio"
	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/progress"
	"github.com/ckearl/senahpark.com/transcript"
)

// ErrDataUnavailable is returned when a lecture or its transcript cannot be
// read. An empty transcript is not this error; only missing or malformed
// data is.
var ErrDataUnavailable = errors.New("session: lecture data unavailable")

// Catalog is the read side of the lecture store.
type Catalog interface {
	Classes() ([]db.ClassGroup, error)
	Lecture(id string) (*db.Lecture, error)
	Segments(id string) ([]transcript.Segment, error)
	Insights(id string) (*db.Insights, error)
}

// AudioResolver finds the audio file for a lecture.
type AudioResolver interface {
	Resolve(lec db.Lecture) (string, error)
}

// Lecture is everything the UI needs about one loaded lecture.
type Lecture struct {
	Lecture  db.Lecture
	Index    *transcript.Index
	Insights *db.Insights

	// AudioPath is empty when no audio file was found; AudioErr then says
	// why. The transcript still displays without audio.
	AudioPath string
	AudioErr  error

	// ResumeOffset is where playback should start, in seconds. Nonzero only
	// on the first load of this lecture in the session.
	ResumeOffset int
}

// Coordinator tracks the active lecture request and applies only the newest
// one. Fetches may finish out of order; a response for anything but the most
// recent request is discarded.
type Coordinator struct {
	catalog  Catalog
	resolver AudioResolver
	store    *progress.Store
	guard    *progress.SessionGuard
	debounce *progress.Debouncer

	mu        sync.Mutex
	seq       uint64
	currentID string
}

// New returns a Coordinator over the given catalog, resolver and progress
// store.
func New(catalog Catalog, resolver AudioResolver, store *progress.Store) *Coordinator {
	return &Coordinator{
		catalog:  catalog,
		resolver: resolver,
		store:    store,
		guard:    progress.NewSessionGuard(),
		debounce: progress.NewDebouncer(progress.DefaultDebounce),
	}
}

// Classes returns the catalog grouped by class, newest lectures first.
func (c *Coordinator) Classes() ([]db.ClassGroup, error) {
	groups, err := c.catalog.Classes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return groups, nil
}

// Request marks a new lecture fetch as the current one and returns its
// token. Any position save still pending for the previous lecture is written
// out first, so switching lectures never loses the last listening position.
func (c *Coordinator) Request(id string) uint64 {
	c.debounce.Flush()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.currentID = id
	return c.seq
}

// ActiveID returns the lecture ID of the most recent request.
func (c *Coordinator) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentID
}

// Current reports whether the token belongs to the most recent request.
func (c *Coordinator) Current(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token == c.seq
}

// Fetch loads a lecture bundle. It is safe to call from any goroutine; pass
// the result to Current (or compare tokens) before applying it. A lecture
// with no transcript segments is valid and yields an empty index. A missing
// audio file is recorded on the bundle rather than failing the fetch.
func (c *Coordinator) Fetch(id string) (*Lecture, error) {
	lec, err := c.catalog.Lecture(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	segments, err := c.catalog.Segments(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	index, err := transcript.NewIndex(segments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	insights, err := c.catalog.Insights(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	bundle := &Lecture{
		Lecture:  *lec,
		Index:    index,
		Insights: insights,
	}

	path, err := c.resolver.Resolve(*lec)
	if err != nil {
		bundle.AudioErr = err
	} else {
		bundle.AudioPath = path
	}

	// Restore the saved position only on the first load this session;
	// revisits start from the top
	if c.guard.Claim(id) {
		if offset, ok, err := c.store.Load(id); err == nil && ok {
			bundle.ResumeOffset = offset
		}
	}

	return bundle, nil
}

// RecordPosition schedules a progress save for the lecture. Rapid calls
// coalesce so that scrubbing writes once, with the latest position.
func (c *Coordinator) RecordPosition(lectureID string, currentTime, duration float64) {
	c.debounce.Trigger(func() {
		c.store.Save(lectureID, currentTime, duration)
	})
}

// Flush writes any pending progress save immediately. Called on shutdown.
func (c *Coordinator) Flush() {
	c.debounce.Flush()
}

// ClearProgress drops the saved position for a lecture.
func (c *Coordinator) ClearProgress(lectureID string) error {
	c.debounce.Cancel()
	return c.store.Clear(lectureID)
}

// SQLCatalog adapts the db package's query functions to the Catalog
// interface.
type SQLCatalog struct {
	DB *sql.DB
}

func (c SQLCatalog) Classes() ([]db.ClassGroup, error) {
	return db.ListLectures(c.DB)
}

func (c SQLCatalog) Lecture(id string) (*db.Lecture, error) {
	return db.GetLecture(c.DB, id)
}

func (c SQLCatalog) Segments(id string) ([]transcript.Segment, error) {
	return db.GetSegments(c.DB, id)
}

func (c SQLCatalog) Insights(id string) (*db.Insights, error) {
	return db.GetInsights(c.DB, id)
}

var (
	_ Catalog       = SQLCatalog{}
	_ AudioResolver = (*audio.Resolver)(nil)
)
