package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ckearl/senahpark.com/audio"
	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/progress"
	"github.com/ckearl/senahpark.com/transcript"
)

type fakeCatalog struct {
	lectures map[string]db.Lecture
	segments map[string][]transcript.Segment
	insights map[string]*db.Insights
	err      error
}

func (f *fakeCatalog) Classes() ([]db.ClassGroup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func (f *fakeCatalog) Lecture(id string) (*db.Lecture, error) {
	if f.err != nil {
		return nil, f.err
	}
	lec, ok := f.lectures[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &lec, nil
}

func (f *fakeCatalog) Segments(id string) ([]transcript.Segment, error) {
	return f.segments[id], nil
}

func (f *fakeCatalog) Insights(id string) (*db.Insights, error) {
	return f.insights[id], nil
}

type fakeResolver struct {
	paths map[string]string
}

func (f *fakeResolver) Resolve(lec db.Lecture) (string, error) {
	if path, ok := f.paths[lec.ID]; ok {
		return path, nil
	}
	return "", audio.ErrNotFound
}

func newTestStore(t *testing.T) (*progress.Store, string) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "lectures.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	lec, err := db.CreateLecture(database, db.Lecture{Title: "Motivation Theory", Date: "2025-09-22", ClassNumber: "MSB 571", Professor: "Dr. Mitchell"})
	if err != nil {
		t.Fatalf("CreateLecture: %v", err)
	}
	return progress.NewStore(database, 0, 0), lec.ID
}

func testCoordinator(t *testing.T) (*Coordinator, string) {
	t.Helper()
	store, id := newTestStore(t)
	catalog := &fakeCatalog{
		lectures: map[string]db.Lecture{id: {ID: id, Title: "Motivation Theory", DurationSeconds: 4623}},
		segments: map[string][]transcript.Segment{id: {
			{StartTime: 0, EndTime: 15.5, Text: "Welcome back.", SegmentOrder: 1},
			{StartTime: 15.5, EndTime: 45.2, Text: "Feedback loops.", SegmentOrder: 2},
		}},
		insights: map[string]*db.Insights{},
	}
	resolver := &fakeResolver{paths: map[string]string{id: "/srv/lectures/motivation_theory.mp3"}}
	return New(catalog, resolver, store), id
}

func TestFetchBundlesLecture(t *testing.T) {
	coord, id := testCoordinator(t)

	bundle, err := coord.Fetch(id)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bundle.Lecture.Title != "Motivation Theory" {
		t.Errorf("title = %q", bundle.Lecture.Title)
	}
	if bundle.Index.Count() != 2 {
		t.Errorf("index count = %d, want 2", bundle.Index.Count())
	}
	if bundle.AudioPath != "/srv/lectures/motivation_theory.mp3" || bundle.AudioErr != nil {
		t.Errorf("audio = %q, %v", bundle.AudioPath, bundle.AudioErr)
	}
}

func TestFetchUnknownLectureIsDataUnavailable(t *testing.T) {
	coord, _ := testCoordinator(t)
	_, err := coord.Fetch("no-such-id")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("Fetch = %v, want ErrDataUnavailable", err)
	}
}

func TestFetchEmptyTranscriptIsValid(t *testing.T) {
	store, id := newTestStore(t)
	catalog := &fakeCatalog{
		lectures: map[string]db.Lecture{id: {ID: id, Title: "No Transcript"}},
		segments: map[string][]transcript.Segment{},
		insights: map[string]*db.Insights{},
	}
	coord := New(catalog, &fakeResolver{}, store)

	bundle, err := coord.Fetch(id)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bundle.Index.Count() != 0 {
		t.Errorf("index count = %d, want 0", bundle.Index.Count())
	}
}

func TestFetchMissingAudioStillLoads(t *testing.T) {
	store, id := newTestStore(t)
	catalog := &fakeCatalog{
		lectures: map[string]db.Lecture{id: {ID: id, Title: "Motivation Theory"}},
		segments: map[string][]transcript.Segment{},
		insights: map[string]*db.Insights{},
	}
	coord := New(catalog, &fakeResolver{}, store)

	bundle, err := coord.Fetch(id)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bundle.AudioPath != "" {
		t.Errorf("AudioPath = %q, want empty", bundle.AudioPath)
	}
	if !errors.Is(bundle.AudioErr, audio.ErrNotFound) {
		t.Errorf("AudioErr = %v, want audio.ErrNotFound", bundle.AudioErr)
	}
}

func TestResumeOnlyOnFirstLoad(t *testing.T) {
	coord, id := testCoordinator(t)

	coord.RecordPosition(id, 127.3, 4623)
	coord.Flush()

	first, err := coord.Fetch(id)
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	if first.ResumeOffset != 120 {
		t.Errorf("first ResumeOffset = %d, want 120", first.ResumeOffset)
	}

	second, err := coord.Fetch(id)
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if second.ResumeOffset != 0 {
		t.Errorf("revisit ResumeOffset = %d, want 0", second.ResumeOffset)
	}
}

func TestLastRequestWins(t *testing.T) {
	coord, id := testCoordinator(t)

	older := coord.Request(id)
	newer := coord.Request(id)

	if coord.Current(older) {
		t.Error("stale token reported current")
	}
	if !coord.Current(newer) {
		t.Error("latest token not current")
	}
	if coord.ActiveID() != id {
		t.Errorf("ActiveID = %q", coord.ActiveID())
	}
}

func TestRequestFlushesPendingSave(t *testing.T) {
	coord, id := testCoordinator(t)

	coord.RecordPosition(id, 600, 4623)
	// Switching lectures must land the save without waiting out the debounce
	coord.Request("next-lecture")

	bundle, err := coord.Fetch(id)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bundle.ResumeOffset != 600 {
		t.Errorf("ResumeOffset = %d, want 600", bundle.ResumeOffset)
	}
}

func TestRecordPositionCoalesces(t *testing.T) {
	coord, id := testCoordinator(t)

	for _, pos := range []float64{100, 200, 300} {
		coord.RecordPosition(id, pos, 4623)
	}
	time.Sleep(progress.DefaultDebounce + 200*time.Millisecond)

	bundle, err := coord.Fetch(id)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bundle.ResumeOffset != 300 {
		t.Errorf("ResumeOffset = %d, want 300 (last save wins)", bundle.ResumeOffset)
	}
}
