package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ckearl/senahpark.com/tui/styles"
)

// CommandInputState holds the state for the command input component.
type CommandInputState struct {
	// Active indicates if command mode is active
	Active bool
	// Input is the current command input buffer
	Input string
	// CursorPos is the cursor position within the input
	CursorPos int
	// Result is the result message to display (success or error)
	Result string
	// IsError indicates if the result is an error message
	IsError bool
}

// CommandInput renders the command input component.
// When active, it shows a ':' prompt with the current input.
// When not active but there's a result, it shows the result message.
// Otherwise, it shows a help hint.
func CommandInput(state CommandInputState, width int) string {
	lineStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Width(width)

	if state.Active {
		promptStyle := lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)
		inputStyle := lipgloss.NewStyle().
			Foreground(styles.LightLavender)

		input := state.Input
		cursor := "_"
		var displayInput string
		if state.CursorPos >= len(input) {
			displayInput = input + cursor
		} else {
			displayInput = input[:state.CursorPos] + cursor + input[state.CursorPos:]
		}

		return lineStyle.Render(promptStyle.Render(":") + inputStyle.Render(displayInput))
	}

	if state.Result != "" {
		resultStyle := styles.Success
		if state.IsError {
			resultStyle = styles.Warning
		}
		return lineStyle.Render(resultStyle.Render(" " + state.Result))
	}

	hintStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	return lineStyle.Render(hintStyle.Render(" ? help  / search  : command  q quit"))
}

// SetResult stores a result message for display.
func (s *CommandInputState) SetResult(msg string, isError bool) {
	s.Result = msg
	s.IsError = isError
}

// ClearResult clears the result message.
func (s *CommandInputState) ClearResult() {
	s.Result = ""
	s.IsError = false
}

// InsertChar inserts a character at the current cursor position.
func (s *CommandInputState) InsertChar(c rune) {
	if s.CursorPos >= len(s.Input) {
		s.Input += string(c)
	} else {
		s.Input = s.Input[:s.CursorPos] + string(c) + s.Input[s.CursorPos:]
	}
	s.CursorPos++
}

// DeleteChar deletes the character before the cursor.
func (s *CommandInputState) DeleteChar() {
	if s.CursorPos > 0 && len(s.Input) > 0 {
		s.Input = s.Input[:s.CursorPos-1] + s.Input[s.CursorPos:]
		s.CursorPos--
	}
}

// Reset leaves command mode and clears the buffer.
func (s *CommandInputState) Reset() {
	s.Active = false
	s.Input = ""
	s.CursorPos = 0
}
