package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ckearl/senahpark.com/player"
	"github.com/ckearl/senahpark.com/tui/styles"
)

// StatusBarState holds the current playback state for the status bar.
type StatusBarState struct {
	// Title is the loaded lecture's title, empty when nothing is loaded
	Title string
	// Playing indicates if playback is running
	Playing bool
	// Muted indicates if audio is muted
	Muted bool
	// TimePos is the current playback position in seconds
	TimePos float64
	// Duration is the total lecture duration in seconds
	Duration float64
	// Progress is how far through the lecture playback is, 0 to 1
	Progress float64
	// Volume is the current volume, 0 to 1
	Volume float64
	// Speed is the playback speed multiplier
	Speed float64
	// Skip shows the transient skip direction indicator
	Skip player.SkipDirection
	// FollowPaused indicates auto-scroll is suspended by the user
	FollowPaused bool
	// AudioMissing indicates the lecture loaded without a playable file
	AudioMissing bool
}

// StatusBar renders the status bar component. It displays play state,
// position and duration, a transient skip indicator, completion percentage,
// volume, speed, and a marker when auto-scroll is paused.
func StatusBar(state StatusBarState, width int) string {
	var playIcon string
	switch {
	case state.AudioMissing:
		playIcon = "✕"
	case state.Playing:
		playIcon = "▶"
	default:
		playIcon = "⏸"
	}

	var skipIcon string
	switch state.Skip {
	case player.SkipForward:
		skipIcon = " »"
	case player.SkipBackward:
		skipIcon = " «"
	}

	left := fmt.Sprintf(" %s %s / %s%s", playIcon, formatTime(state.TimePos), formatTime(state.Duration), skipIcon)
	if state.Title != "" {
		left += "  " + state.Title
	}

	var muteIcon string
	if state.Muted {
		muteIcon = " 🔇"
	}
	var followNote string
	if state.FollowPaused {
		followNote = " [scroll paused]"
	}
	right := fmt.Sprintf("%.0f%% done  Vol: %.0f%%  %gx%s%s ",
		state.Progress*100, state.Volume*100, state.Speed, muteIcon, followNote)

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	padding := width - leftWidth - rightWidth
	if padding < 0 {
		padding = 0
	}

	middle := ""
	for i := 0; i < padding; i++ {
		middle += " "
	}

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width)

	return statusBarStyle.Render(left + middle + right)
}
