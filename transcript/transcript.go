// Package transcript provides the ordered segment index for a single lecture.
package transcript

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrOutOfOrder is returned when segments are not sorted by segment order.
var ErrOutOfOrder = errors.New("transcript: segments out of order")

// Segment is one timestamped line of transcript text. Its effective end is
// the next segment's start time; EndTime is a hint only.
type Segment struct {
	ID           string  `json:"id"`
	LectureID    string  `json:"lecture_id"`
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
	Text         string  `json:"text"`
	SpeakerName  string  `json:"speaker_name,omitempty"`
	SegmentOrder int     `json:"segment_order"`
}

// Match pairs a segment with its index in the unfiltered sequence.
type Match struct {
	OriginalIndex int
	Segment       Segment
}

// Index is an immutable ordered sequence of segments for one lecture.
// An empty index is valid and represents a lecture with no transcript.
type Index struct {
	segments []Segment
}

// NewIndex builds an index from segments already sorted by segment order.
// Out-of-order input is reported to the caller, never silently re-sorted:
// segment orders must be strictly increasing and start times non-decreasing.
func NewIndex(segments []Segment) (*Index, error) {
	for i := 1; i < len(segments); i++ {
		if segments[i].SegmentOrder <= segments[i-1].SegmentOrder {
			return nil, fmt.Errorf("%w: segment order %d at position %d not after %d",
				ErrOutOfOrder, segments[i].SegmentOrder, i, segments[i-1].SegmentOrder)
		}
		if segments[i].StartTime < segments[i-1].StartTime {
			return nil, fmt.Errorf("%w: start time %.3f at position %d before %.3f",
				ErrOutOfOrder, segments[i].StartTime, i, segments[i-1].StartTime)
		}
	}
	idx := &Index{segments: make([]Segment, len(segments))}
	copy(idx.segments, segments)
	return idx, nil
}

// Count returns the number of segments in the index.
func (x *Index) Count() int {
	return len(x.segments)
}

// Segment returns the segment at position i.
func (x *Index) Segment(i int) Segment {
	return x.segments[i]
}

// Segments returns the full ordered sequence.
func (x *Index) Segments() []Segment {
	return x.segments
}

// ActiveSegment returns the index i such that segment[i].StartTime <= t and
// either i is the last index or t < segment[i+1].StartTime. A time exactly
// equal to a segment's start belongs to that segment. Returns false for times
// before the first segment's start and for an empty index.
func (x *Index) ActiveSegment(t float64) (int, bool) {
	if len(x.segments) == 0 || t < x.segments[0].StartTime {
		return 0, false
	}
	// First position whose start is strictly after t; the active segment is
	// the one before it.
	i := sort.Search(len(x.segments), func(i int) bool {
		return x.segments[i].StartTime > t
	})
	return i - 1, true
}

// Filter returns the segments whose text contains query case-insensitively,
// preserving original order and indices. An empty query returns the full
// sequence with identity mapping.
func (x *Index) Filter(query string) []Match {
	matches := make([]Match, 0, len(x.segments))
	if query == "" {
		for i, seg := range x.segments {
			matches = append(matches, Match{OriginalIndex: i, Segment: seg})
		}
		return matches
	}
	needle := strings.ToLower(query)
	for i, seg := range x.segments {
		if strings.Contains(strings.ToLower(seg.Text), needle) {
			matches = append(matches, Match{OriginalIndex: i, Segment: seg})
		}
	}
	return matches
}
