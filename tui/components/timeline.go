package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ckearl/senahpark.com/tui/styles"
)

// Timeline renders a progress bar with segment-start markers in a bordered
// container. It shows playback position and timestamps, and its geometry is
// shared with TimelineClick so a mouse press on the bar seeks.
func Timeline(timePos, duration float64, segmentStarts []float64, width int) string {
	if width < 20 {
		return ""
	}

	filledStyle := lipgloss.NewStyle().Foreground(styles.BrightPurple)
	unfilledStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
	posStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)

	_, barWidth := timelineGeometry(timePos, duration, width)

	timeDisplay := fmt.Sprintf(" %s / %s", formatTime(timePos), formatTime(duration))

	// Playhead cell
	var fillPos int
	if duration > 0 {
		fillPos = int(math.Round(float64(barWidth) * timePos / duration))
	}
	if fillPos < 0 {
		fillPos = 0
	}
	if fillPos > barWidth {
		fillPos = barWidth
	}

	// Segment start markers
	markerPositions := make([]bool, barWidth)
	if duration > 0 {
		for _, start := range segmentStarts {
			pos := int(math.Round(float64(barWidth-1) * start / duration))
			if pos >= 0 && pos < barWidth {
				markerPositions[pos] = true
			}
		}
	}

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case markerPositions[i]:
			bar.WriteString(markerStyle.Render("◆"))
		case i < fillPos:
			bar.WriteString(filledStyle.Render("━"))
		case i == fillPos:
			bar.WriteString(posStyle.Render("╸"))
		default:
			bar.WriteString(unfilledStyle.Render("─"))
		}
	}

	content := " " + bar.String() + " " + timeStyle.Render(timeDisplay)

	return RenderInfoBox("Timeline", []string{content}, width, false)
}

// timelineGeometry returns the screen column where the bar begins and the
// bar's width in cells, for the given component width.
func timelineGeometry(timePos, duration float64, width int) (barStart, barWidth int) {
	innerWidth := width - 2
	if innerWidth < 10 {
		innerWidth = 10
	}
	timeDisplay := fmt.Sprintf(" %s / %s", formatTime(timePos), formatTime(duration))
	barWidth = innerWidth - lipgloss.Width(timeDisplay) - 2
	if barWidth < 10 {
		barWidth = 10
	}
	// border column plus the leading space
	barStart = 2
	return barStart, barWidth
}

// TimelineClick maps a mouse column on the timeline row to a playback
// fraction. The second return is false when the click misses the bar.
func TimelineClick(x int, timePos, duration float64, width int) (float64, bool) {
	barStart, barWidth := timelineGeometry(timePos, duration, width)
	if x < barStart || x >= barStart+barWidth {
		return 0, false
	}
	fraction := float64(x-barStart) / float64(barWidth-1)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return fraction, true
}
