package transcript

import (
	"errors"
	"testing"
)

// fabrictekSegments mirrors a real lecture's first seven lines.
func fabrictekSegments() []Segment {
	texts := []string{
		"Welcome to today's lecture on Fabrictek. We're going to explore some fascinating operational challenges.",
		"And here's the other one. If you've got operational time on your planet, if you have capacity, do you want to fill that capacity?",
		"And sometimes they don't want to get that capacity up because of the other products in their line less properly.",
		"So there's a readme at all these different things.",
		"And you within your organization, you need to understand what your role is.",
		"Just like I knew Marie Calder's was supposed to be a profit driver.",
		"Do you understand what your role is?",
	}
	starts := []float64{0, 15.5, 45.2, 78.9, 82.1, 106.8, 134.2}
	ends := []float64{15.5, 45.2, 78.9, 82.1, 106.8, 134.2, 154.0}

	segs := make([]Segment, len(texts))
	for i := range texts {
		segs[i] = Segment{
			ID:           string(rune('a' + i)),
			LectureID:    "lec-4",
			StartTime:    starts[i],
			EndTime:      ends[i],
			Text:         texts[i],
			SpeakerName:  "Professor",
			SegmentOrder: i + 1,
		}
	}
	return segs
}

func mustIndex(t *testing.T, segs []Segment) *Index {
	t.Helper()
	idx, err := NewIndex(segs)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func TestNewIndexRejectsOutOfOrder(t *testing.T) {
	segs := fabrictekSegments()
	segs[2].SegmentOrder = 1
	if _, err := NewIndex(segs); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("err = %v, want ErrOutOfOrder", err)
	}

	segs = fabrictekSegments()
	segs[3].StartTime = 10
	if _, err := NewIndex(segs); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("err = %v, want ErrOutOfOrder", err)
	}
}

func TestNewIndexEmptyIsValid(t *testing.T) {
	idx := mustIndex(t, nil)
	if idx.Count() != 0 {
		t.Fatalf("Count = %d, want 0", idx.Count())
	}
	if _, ok := idx.ActiveSegment(10); ok {
		t.Fatal("ActiveSegment on empty index should report none")
	}
	if got := idx.Filter("anything"); len(got) != 0 {
		t.Fatalf("Filter on empty index returned %d matches", len(got))
	}
}

func TestActiveSegment(t *testing.T) {
	idx := mustIndex(t, fabrictekSegments())

	tests := []struct {
		name string
		time float64
		want int
		ok   bool
	}{
		{"before first start has no active segment", -0.5, 0, false},
		{"exact first boundary", 0, 0, true},
		{"inside second segment", 20, 1, true},
		{"between starts 45.2 and 78.9", 50, 2, true},
		{"exact interior boundary belongs to the starting segment", 45.2, 2, true},
		{"just before a boundary", 45.199, 1, true},
		{"past the last start", 500, 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.ActiveSegment(tt.time)
			if ok != tt.ok {
				t.Fatalf("ActiveSegment(%v) ok = %v, want %v", tt.time, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("ActiveSegment(%v) = %d, want %d", tt.time, got, tt.want)
			}
		})
	}
}

func TestActiveSegmentMonotonic(t *testing.T) {
	idx := mustIndex(t, fabrictekSegments())

	prev := -1
	for ts := 0.0; ts < 160; ts += 0.7 {
		got, ok := idx.ActiveSegment(ts)
		if !ok {
			t.Fatalf("ActiveSegment(%v) unexpectedly none", ts)
		}
		if got < prev {
			t.Fatalf("active index decreased from %d to %d at t=%v", prev, got, ts)
		}
		prev = got
	}
}

func TestActiveSegmentBoundaryInclusiveStart(t *testing.T) {
	segs := fabrictekSegments()
	idx := mustIndex(t, segs)

	for i, seg := range segs {
		got, ok := idx.ActiveSegment(seg.StartTime)
		if !ok || got != i {
			t.Fatalf("ActiveSegment(start of %d) = %d,%v; want %d,true", i, got, ok, i)
		}
	}
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	segs := fabrictekSegments()
	idx := mustIndex(t, segs)

	got := idx.Filter("")
	if len(got) != len(segs) {
		t.Fatalf("len = %d, want %d", len(got), len(segs))
	}
	for i, m := range got {
		if m.OriginalIndex != i {
			t.Fatalf("match %d has original index %d", i, m.OriginalIndex)
		}
		if m.Segment.Text != segs[i].Text {
			t.Fatalf("match %d text changed", i)
		}
	}
}

func TestFilterCaseInsensitiveSubsequence(t *testing.T) {
	idx := mustIndex(t, fabrictekSegments())

	got := idx.Filter("CAPACITY")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].OriginalIndex != 1 || got[1].OriginalIndex != 2 {
		t.Fatalf("original indices = [%d %d], want [1 2]", got[0].OriginalIndex, got[1].OriginalIndex)
	}

	// Every result must actually contain the query and stay in order.
	prev := -1
	for _, m := range idx.Filter("role") {
		if m.OriginalIndex <= prev {
			t.Fatalf("filter result out of order: %d after %d", m.OriginalIndex, prev)
		}
		prev = m.OriginalIndex
	}
}

func TestFilterNoMatches(t *testing.T) {
	idx := mustIndex(t, fabrictekSegments())
	if got := idx.Filter("zzz-not-present"); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
