package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/transcript"
)

func sampleLecture() (db.Lecture, []transcript.Segment, *db.Insights) {
	lec := db.Lecture{
		Title:       "Motivation Theory: Week 3",
		Professor:   "Dr. Sarah Mitchell",
		Date:        "2025-09-22",
		ClassNumber: "MSB 571",
	}
	segments := []transcript.Segment{
		{StartTime: 0, EndTime: 15.5, Text: "Welcome back, everyone.", SpeakerName: "Dr. Mitchell", SegmentOrder: 1},
		{StartTime: 15.5, EndTime: 45.2, Text: "Today we cover expectancy theory.", SegmentOrder: 2},
	}
	insights := &db.Insights{
		Summary:  "Expectancy theory links effort to expected outcomes.",
		KeyTerms: []string{"expectancy", "valence"},
	}
	return lec, segments, insights
}

func TestBuildPathSanitizesTitle(t *testing.T) {
	lec, _, _ := sampleLecture()
	got := BuildPath("/tmp/out", lec, FormatMarkdown)
	want := filepath.Join("/tmp/out", "2025-09-22-Motivation_Theory__Week_3.md")
	if got != want {
		t.Fatalf("BuildPath = %s, want %s", got, want)
	}
	if txt := BuildPath("/tmp/out", lec, FormatText); !strings.HasSuffix(txt, ".txt") {
		t.Fatalf("text path = %s", txt)
	}
}

func TestRenderMarkdown(t *testing.T) {
	lec, segments, insights := sampleLecture()
	body := Render(lec, segments, insights, FormatMarkdown)

	for _, want := range []string{
		"# Motivation Theory: Week 3",
		"MSB 571 | Dr. Sarah Mitchell | 2025-09-22",
		"## Summary",
		"- expectancy",
		"## Transcript",
		"[0:00:00] Dr. Mitchell: Welcome back, everyone.",
		"[0:00:15] Today we cover expectancy theory.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("markdown body missing %q\n%s", want, body)
		}
	}
	if strings.Contains(body, "Review Questions") {
		t.Error("empty insight sections should be omitted")
	}
}

func TestRenderTextHasNoHeadings(t *testing.T) {
	lec, segments, insights := sampleLecture()
	body := Render(lec, segments, insights, FormatText)
	if strings.Contains(body, "#") {
		t.Errorf("text body contains markdown headings:\n%s", body)
	}
}

func TestWriteCreatesFile(t *testing.T) {
	lec, segments, insights := sampleLecture()
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := Write(dir, lec, segments, insights, FormatText)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "Welcome back, everyone.") {
		t.Fatalf("export body missing transcript:\n%s", data)
	}
}
