package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ckearl/senahpark.com/tui/styles"
)

// SearchInputState holds the state for the transcript search input.
type SearchInputState struct {
	// Active indicates the search bar is open and focused
	Active bool
	// Input is the current query buffer
	Input string
	// CursorPos is the cursor position within the input
	CursorPos int
	// MatchCount is how many segments the query matches
	MatchCount int
}

// SearchInput renders the search bar. When focused, the box border is pink.
func SearchInput(state SearchInputState, width int) string {
	promptStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	inputStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	input := state.Input
	var displayInput string
	if state.Active {
		cursor := "_"
		if state.CursorPos >= len(input) {
			displayInput = input + cursor
		} else {
			displayInput = input[:state.CursorPos] + cursor + input[state.CursorPos:]
		}
	} else {
		displayInput = input
	}

	content := " " + promptStyle.Render("/") + inputStyle.Render(displayInput)

	if state.Input != "" {
		indicator := fmt.Sprintf("[%d matches]", state.MatchCount)
		indicatorStyled := lipgloss.NewStyle().Foreground(styles.Lavender).Render(indicator)

		innerW := width - 2
		pad := innerW - lipgloss.Width(content) - lipgloss.Width(indicatorStyled) - 1
		if pad < 1 {
			pad = 1
		}
		content = content + strings.Repeat(" ", pad) + indicatorStyled
	}

	return RenderInfoBox("Search", []string{content}, width, state.Active)
}

// InsertChar inserts a character at the current cursor position.
func (s *SearchInputState) InsertChar(c rune) {
	if s.CursorPos >= len(s.Input) {
		s.Input += string(c)
	} else {
		s.Input = s.Input[:s.CursorPos] + string(c) + s.Input[s.CursorPos:]
	}
	s.CursorPos++
}

// DeleteChar deletes the character before the cursor.
func (s *SearchInputState) DeleteChar() {
	if s.CursorPos > 0 && len(s.Input) > 0 {
		s.Input = s.Input[:s.CursorPos-1] + s.Input[s.CursorPos:]
		s.CursorPos--
	}
}

// Clear resets the input buffer and cursor.
func (s *SearchInputState) Clear() {
	s.Input = ""
	s.CursorPos = 0
	s.MatchCount = 0
}
