package components

import (
	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/tui/styles"
)

// InsightsPanel renders the lecture's summary, key terms, main ideas and
// review questions. A nil insights pointer renders a placeholder.
func InsightsPanel(insights *db.Insights, width, height int) string {
	visibleRows := height - 2
	if visibleRows < 1 {
		visibleRows = 1
	}
	innerWidth := width - 2

	if insights == nil {
		lines := []string{styles.SecondaryText.Italic(true).Render(" No insights for this lecture")}
		for len(lines) < visibleRows {
			lines = append(lines, "")
		}
		return RenderInfoBox("Insights", lines, width, false)
	}

	var lines []string
	addWrapped := func(text string, style func(string) string) {
		for _, line := range wrapText(text, innerWidth-2) {
			lines = append(lines, style(" "+line))
		}
	}
	header := func(s string) string { return styles.Speaker.Render(s) }
	body := func(s string) string { return styles.PrimaryText.Render(s) }

	if insights.Summary != "" {
		addWrapped("Summary", header)
		addWrapped(insights.Summary, body)
		lines = append(lines, "")
	}
	if len(insights.KeyTerms) > 0 {
		addWrapped("Key Terms", header)
		for _, term := range insights.KeyTerms {
			addWrapped("• "+term, body)
		}
		lines = append(lines, "")
	}
	if len(insights.MainIdeas) > 0 {
		addWrapped("Main Ideas", header)
		for _, idea := range insights.MainIdeas {
			addWrapped("• "+idea, body)
		}
		lines = append(lines, "")
	}
	if len(insights.ReviewQuestions) > 0 {
		addWrapped("Review Questions", header)
		for _, q := range insights.ReviewQuestions {
			addWrapped("• "+q, body)
		}
	}

	if len(lines) > visibleRows {
		lines = lines[:visibleRows]
	}
	for len(lines) < visibleRows {
		lines = append(lines, "")
	}

	return RenderInfoBox("Insights", lines, width, false)
}

// wrapText breaks text into lines no wider than width, on word boundaries
// where possible.
func wrapText(text string, width int) []string {
	if width < 8 {
		width = 8
	}
	var out []string
	line := ""
	for _, word := range splitWords(text) {
		if line == "" {
			line = word
			continue
		}
		if len(line)+1+len(word) > width {
			out = append(out, line)
			line = word
			continue
		}
		line += " " + word
	}
	if line != "" {
		out = append(out, line)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

func splitWords(text string) []string {
	var words []string
	word := ""
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
			continue
		}
		word += string(r)
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}
