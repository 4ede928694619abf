package components

import (
	"fmt"

	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/tui/styles"
)

// SidebarState holds the state for the lecture sidebar.
type SidebarState struct {
	// Groups is the catalog grouped by class, newest first
	Groups []db.ClassGroup
	// Selected is the flat index of the highlighted lecture
	Selected int
	// ActiveID is the currently loaded lecture, marked in the list
	ActiveID string
	// ScrollOffset is the first visible flat row (headers included)
	ScrollOffset int
}

// Flatten returns the lectures in display order.
func (s SidebarState) Flatten() []db.Lecture {
	var out []db.Lecture
	for _, g := range s.Groups {
		out = append(out, g.Lectures...)
	}
	return out
}

// SelectedLecture returns the highlighted lecture, if any.
func (s SidebarState) SelectedLecture() (db.Lecture, bool) {
	flat := s.Flatten()
	if s.Selected < 0 || s.Selected >= len(flat) {
		return db.Lecture{}, false
	}
	return flat[s.Selected], true
}

// MoveSelection moves the highlight by delta, clamped to the list.
func (s *SidebarState) MoveSelection(delta int) {
	flat := s.Flatten()
	if len(flat) == 0 {
		return
	}
	s.Selected += delta
	if s.Selected < 0 {
		s.Selected = 0
	}
	if s.Selected >= len(flat) {
		s.Selected = len(flat) - 1
	}
}

// Sidebar renders the lecture list grouped by class.
func Sidebar(state SidebarState, width, height int, focused bool) string {
	visibleRows := height - 2
	if visibleRows < 1 {
		visibleRows = 1
	}
	innerWidth := width - 2

	if len(state.Groups) == 0 {
		lines := []string{styles.SecondaryText.Italic(true).Render(" No lectures yet")}
		for len(lines) < visibleRows {
			lines = append(lines, "")
		}
		return RenderInfoBox("Lectures", lines, width, focused)
	}

	// Build the full row list: a header per class, then its lectures
	type row struct {
		header  string
		lecture db.Lecture
		flatIdx int
	}
	var rows []row
	flatIdx := 0
	for _, g := range state.Groups {
		rows = append(rows, row{header: g.ClassNumber})
		for _, lec := range g.Lectures {
			rows = append(rows, row{lecture: lec, flatIdx: flatIdx})
			rows[len(rows)-1].flatIdx = flatIdx
			flatIdx++
		}
	}

	// Keep the selected lecture visible
	selectedRow := 0
	for i, r := range rows {
		if r.header == "" && r.flatIdx == state.Selected {
			selectedRow = i
			break
		}
	}
	offset := state.ScrollOffset
	if selectedRow < offset {
		offset = selectedRow
	}
	if selectedRow >= offset+visibleRows {
		offset = selectedRow - visibleRows + 1
	}
	if offset < 0 {
		offset = 0
	}

	var lines []string
	for i := offset; i < len(rows) && len(lines) < visibleRows; i++ {
		r := rows[i]
		if r.header != "" {
			lines = append(lines, styles.SecondaryText.Bold(true).Render(" "+r.header))
			continue
		}
		lec := r.lecture
		marker := " "
		if lec.ID == state.ActiveID {
			marker = "▸"
		}
		label := fmt.Sprintf(" %s %s  %s", marker, lec.Date, lec.Title)
		runes := []rune(label)
		if len(runes) > innerWidth {
			label = string(runes[:innerWidth-1]) + "…"
		}
		if r.flatIdx == state.Selected {
			lines = append(lines, styles.Highlight.Render(label))
		} else {
			lines = append(lines, styles.PrimaryText.Render(label))
		}
	}
	for len(lines) < visibleRows {
		lines = append(lines, "")
	}

	return RenderInfoBox("Lectures", lines, width, focused)
}
