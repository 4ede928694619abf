// Package components provides reusable TUI components. Each component is a
// pure render function over a small state struct; no component talks to mpv
// or the database.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ckearl/senahpark.com/pkg/timeutil"
	"github.com/ckearl/senahpark.com/tui/styles"
)

// RenderInfoBox renders a bordered box with a tab-style header and content
// lines. Content lines are rendered as-is (caller handles styling). A
// focused box draws its border in the accent colour.
func RenderInfoBox(title string, contentLines []string, width int, focused bool) string {
	if width < 4 {
		return ""
	}

	innerWidth := width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}

	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderColor := styles.Purple
	if focused {
		borderColor = styles.Pink
	}

	// Tab header: ╭─ Title ─────╮
	headerText := headerStyle.Render(" " + title + " ")
	headerTextWidth := lipgloss.Width(headerText)

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	topLeft := borderStyle.Render("╭─")
	topRight := borderStyle.Render("╮")
	fillWidth := innerWidth - 2 - headerTextWidth - 1 + 2
	if fillWidth < 0 {
		fillWidth = 0
	}
	topLine := topLeft + headerText + borderStyle.Render(strings.Repeat("─", fillWidth)) + topRight

	var lines []string
	lines = append(lines, topLine)

	for _, line := range contentLines {
		lineWidth := lipgloss.Width(line)
		pad := innerWidth - lineWidth
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, borderStyle.Render("│")+line+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}

	bottomLine := borderStyle.Render("╰" + strings.Repeat("─", innerWidth) + "╯")
	lines = append(lines, bottomLine)

	return strings.Join(lines, "\n")
}

// formatTime formats seconds as H:MM:SS for display in components.
func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	return timeutil.FormatTime(seconds)
}

// formatClock formats seconds as compact M:SS for transcript row stamps.
func formatClock(seconds float64) string {
	return timeutil.FormatClock(seconds)
}
