package forms

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/ckearl/senahpark.com/db"
)

// LectureFormResult holds the data returned by a completed lecture form.
type LectureFormResult struct {
	Title       string
	Professor   string
	Date        string
	Duration    string
	ClassNumber string
	Language    string
}

// Lecture converts the form result into a catalog row. The ID is left for
// the caller; duration parses as whole seconds.
func (r *LectureFormResult) Lecture() db.Lecture {
	seconds, _ := strconv.Atoi(r.Duration)
	return db.Lecture{
		Title:           r.Title,
		Professor:       r.Professor,
		Date:            r.Date,
		DurationSeconds: seconds,
		ClassNumber:     r.ClassNumber,
		Language:        r.Language,
	}
}

// NewLectureForm creates a huh form for adding or editing a lecture. The
// result pointer is bound to the form fields and populated on submit. Pass a
// pre-filled result to edit an existing lecture.
func NewLectureForm(result *LectureFormResult) *huh.Form {
	if result.Date == "" {
		result.Date = time.Now().Format("2006-01-02")
	}
	if result.Language == "" {
		result.Language = "en-US"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Lecture details"),

			huh.NewInput().
				Title("Title").
				Description("Required").
				Value(&result.Title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Class").
				Description("Required, e.g. MSB 571").
				Value(&result.ClassNumber).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("class is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Professor").
				Description("Optional").
				Value(&result.Professor),

			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&result.Date).
				Validate(func(s string) error {
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("date must be YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewInput().
				Title("Duration").
				Description("Seconds, optional").
				Value(&result.Duration).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if n, err := strconv.Atoi(s); err != nil || n < 0 {
						return fmt.Errorf("duration must be a whole number of seconds")
					}
					return nil
				}),

			huh.NewInput().
				Title("Language").
				Description("BCP 47 tag").
				Value(&result.Language),
		),
	).WithTheme(Theme())

	return form
}
