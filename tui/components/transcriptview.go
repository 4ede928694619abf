package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ckearl/senahpark.com/transcript"
	"github.com/ckearl/senahpark.com/tui/styles"
)

// TranscriptState holds the state for the transcript view.
type TranscriptState struct {
	// Matches is the visible segment list, possibly filtered by search
	Matches []transcript.Match
	// ActiveIndex is the original index of the segment under the playhead,
	// -1 when none
	ActiveIndex int
	// ScrollOffset is the index into Matches of the first visible row
	ScrollOffset int
	// Query is the active search query, shown in the header when set
	Query string
}

// CenterOn scrolls so the given position within Matches sits mid-view.
func (s *TranscriptState) CenterOn(pos, visibleRows int) {
	s.ScrollOffset = pos - visibleRows/2
	s.clampScroll(visibleRows)
}

// ScrollBy moves the viewport by delta rows.
func (s *TranscriptState) ScrollBy(delta, visibleRows int) {
	s.ScrollOffset += delta
	s.clampScroll(visibleRows)
}

func (s *TranscriptState) clampScroll(visibleRows int) {
	maxOffset := len(s.Matches) - visibleRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// TranscriptView renders the transcript panel. The segment under the
// playhead is highlighted; when a search query filters the list, the header
// shows the match count.
func TranscriptView(state TranscriptState, width, height int) string {
	title := "Transcript"
	if state.Query != "" {
		title = fmt.Sprintf("Transcript (%d matches for %q)", len(state.Matches), state.Query)
	}

	// Rows available inside the box
	visibleRows := height - 2
	if visibleRows < 1 {
		visibleRows = 1
	}
	innerWidth := width - 2

	if len(state.Matches) == 0 {
		empty := styles.SecondaryText.Italic(true).Render(" No transcript for this lecture")
		if state.Query != "" {
			empty = styles.SecondaryText.Italic(true).Render(" No segments match the search")
		}
		lines := []string{empty}
		for len(lines) < visibleRows {
			lines = append(lines, "")
		}
		return RenderInfoBox(title, lines, width, false)
	}

	state.clampScroll(visibleRows)

	var lines []string
	for row := 0; row < visibleRows; row++ {
		i := state.ScrollOffset + row
		if i >= len(state.Matches) {
			lines = append(lines, "")
			continue
		}
		m := state.Matches[i]
		lines = append(lines, renderSegmentRow(m, m.OriginalIndex == state.ActiveIndex, innerWidth))
	}

	return RenderInfoBox(title, lines, width, state.Query != "")
}

func renderSegmentRow(m transcript.Match, active bool, innerWidth int) string {
	seg := m.Segment
	stamp := formatClock(seg.StartTime)

	var text string
	if seg.SpeakerName != "" {
		text = fmt.Sprintf("%s: %s", seg.SpeakerName, seg.Text)
	} else {
		text = seg.Text
	}

	// One row per segment; long text is truncated with an ellipsis
	avail := innerWidth - len(stamp) - 4
	if avail < 8 {
		avail = 8
	}
	runes := []rune(text)
	if len(runes) > avail {
		text = string(runes[:avail-1]) + "…"
	}

	if active {
		row := fmt.Sprintf(" %s  %s", stamp, text)
		pad := innerWidth - lipgloss.Width(row)
		if pad > 0 {
			row += strings.Repeat(" ", pad)
		}
		return styles.ActiveSegment.Render(row)
	}

	stampStyled := styles.Timestamp.Render(stamp)
	var body string
	if seg.SpeakerName != "" {
		speaker := styles.Speaker.Render(seg.SpeakerName)
		rest := strings.TrimPrefix(text, seg.SpeakerName)
		body = speaker + styles.PrimaryText.Render(rest)
	} else {
		body = styles.PrimaryText.Render(text)
	}
	return fmt.Sprintf(" %s  %s", stampStyled, body)
}
