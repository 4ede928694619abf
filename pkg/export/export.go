// Package export renders a lecture's transcript and insights to a file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/pkg/timeutil"
	"github.com/ckearl/senahpark.com/transcript"
)

// Format selects the output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// unsafeChars matches characters not safe for filenames: / \ : * ? < > | and spaces
var unsafeChars = regexp.MustCompile(`[/\\:*?<>|\s]`)

// sanitize replaces unsafe filename characters with underscores.
func sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// BuildPath returns the output path for an exported lecture.
// Format: {dir}/{date}-{title}.{txt|md}
func BuildPath(dir string, lec db.Lecture, format Format) string {
	ext := "txt"
	if format == FormatMarkdown {
		ext = "md"
	}
	name := fmt.Sprintf("%s-%s.%s", lec.Date, sanitize(lec.Title), ext)
	return filepath.Join(dir, name)
}

// Render produces the export body for a lecture.
func Render(lec db.Lecture, segments []transcript.Segment, insights *db.Insights, format Format) string {
	var b strings.Builder

	if format == FormatMarkdown {
		fmt.Fprintf(&b, "# %s\n\n", lec.Title)
		fmt.Fprintf(&b, "%s | %s | %s\n\n", lec.ClassNumber, lec.Professor, lec.Date)
	} else {
		fmt.Fprintf(&b, "%s\n%s | %s | %s\n\n", lec.Title, lec.ClassNumber, lec.Professor, lec.Date)
	}

	if insights != nil {
		writeInsights(&b, insights, format)
	}

	if format == FormatMarkdown {
		b.WriteString("## Transcript\n\n")
	} else {
		b.WriteString("Transcript\n\n")
	}
	for _, seg := range segments {
		stamp := timeutil.FormatTime(seg.StartTime)
		if seg.SpeakerName != "" {
			fmt.Fprintf(&b, "[%s] %s: %s\n", stamp, seg.SpeakerName, seg.Text)
		} else {
			fmt.Fprintf(&b, "[%s] %s\n", stamp, seg.Text)
		}
	}

	return b.String()
}

func writeInsights(b *strings.Builder, insights *db.Insights, format Format) {
	section := func(title string) {
		if format == FormatMarkdown {
			fmt.Fprintf(b, "## %s\n\n", title)
		} else {
			fmt.Fprintf(b, "%s\n\n", title)
		}
	}

	if insights.Summary != "" {
		section("Summary")
		fmt.Fprintf(b, "%s\n\n", insights.Summary)
	}
	if len(insights.KeyTerms) > 0 {
		section("Key Terms")
		for _, term := range insights.KeyTerms {
			fmt.Fprintf(b, "- %s\n", term)
		}
		b.WriteString("\n")
	}
	if len(insights.MainIdeas) > 0 {
		section("Main Ideas")
		for _, idea := range insights.MainIdeas {
			fmt.Fprintf(b, "- %s\n", idea)
		}
		b.WriteString("\n")
	}
	if len(insights.ReviewQuestions) > 0 {
		section("Review Questions")
		for _, q := range insights.ReviewQuestions {
			fmt.Fprintf(b, "- %s\n", q)
		}
		b.WriteString("\n")
	}
}

// Write renders the lecture and writes it to BuildPath(dir, ...), creating
// the directory if needed. The written path is returned.
func Write(dir string, lec db.Lecture, segments []transcript.Segment, insights *db.Insights, format Format) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := BuildPath(dir, lec, format)
	body := Render(lec, segments, insights, format)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
