package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ckearl/senahpark.com/tui/styles"
)

// HelpOverlay renders the help overlay showing all keybindings.
// The overlay is styled with the palette colors and grouped by function.
func HelpOverlay(width, height int) string {
	groups := []struct {
		title    string
		bindings []struct {
			key  string
			desc string
		}
	}{
		{
			title: "Playback",
			bindings: []struct {
				key  string
				desc string
			}{
				{"Space / K", "Toggle play/pause"},
				{"→ / L", "Skip forward 10s"},
				{"← / J", "Skip back 10s"},
				{"↑", "Skip forward 30s"},
				{"↓", "Skip back 30s"},
				{"0-9", "Jump to 0%-90% of the lecture"},
				{", / .", "Frame step back/forward (pauses)"},
				{"M", "Toggle mute"},
				{"[ / ]", "Slower / faster playback"},
			},
		},
		{
			title: "Transcript",
			bindings: []struct {
				key  string
				desc string
			}{
				{"F", "Open/close transcript search"},
				{"Tab", "Pause/resume auto-scroll"},
				{"PgUp/PgDn", "Scroll the transcript"},
				{"Enter", "Jump to the selected lecture"},
			},
		},
		{
			title: "Lectures",
			bindings: []struct {
				key  string
				desc string
			}{
				{"Shift+J/K", "Move the lecture selection"},
				{"Enter", "Load the selected lecture"},
				{"I", "Toggle the insights panel"},
			},
		},
		{
			title: "Commands",
			bindings: []struct {
				key  string
				desc string
			}{
				{":", "Enter command mode"},
				{"Esc", "Close search/command/help"},
				{"?", "Show/hide this help"},
				{"Q / Ctrl+C", "Quit"},
			},
		},
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Padding(0, 1)

	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	var lines []string
	lines = append(lines, titleStyle.Render("Keybindings"))
	lines = append(lines, "")

	for _, group := range groups {
		lines = append(lines, groupHeaderStyle.Render(group.title))
		for _, binding := range group.bindings {
			lines = append(lines, "  "+keyStyle.Render(binding.key)+descStyle.Render(binding.desc))
		}
	}

	lines = append(lines, "")
	footerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true)
	lines = append(lines, footerStyle.Render("Press Esc or ? to close"))

	content := strings.Join(lines, "\n")

	contentLines := strings.Split(content, "\n")
	contentHeight := len(contentLines)
	contentWidth := 0
	for _, line := range contentLines {
		if w := lipgloss.Width(line); w > contentWidth {
			contentWidth = w
		}
	}

	paddedWidth := contentWidth + 4
	paddedHeight := contentHeight + 2

	marginLeft := (width - paddedWidth) / 2
	if marginLeft < 0 {
		marginLeft = 0
	}
	marginTop := (height - paddedHeight) / 2
	if marginTop < 0 {
		marginTop = 0
	}

	panelStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2)

	positionedStyle := lipgloss.NewStyle().
		MarginLeft(marginLeft).
		MarginTop(marginTop)

	return positionedStyle.Render(panelStyle.Render(content))
}
