package db

// Lecture represents a row in the lectures table.
type Lecture struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Professor       string `json:"professor"`
	Date            string `json:"date"`
	DurationSeconds int    `json:"duration_seconds"`
	ClassNumber     string `json:"class_number"`
	Language        string `json:"language"`
}

// Insights represents a row in the text_insights table. The list fields are
// stored as JSON arrays in TEXT columns.
type Insights struct {
	ID              string   `json:"id"`
	LectureID       string   `json:"lecture_id"`
	Summary         string   `json:"summary"`
	KeyTerms        []string `json:"key_terms"`
	MainIdeas       []string `json:"main_ideas"`
	ReviewQuestions []string `json:"review_questions"`
}

// ClassGroup is a set of lectures belonging to one class, newest first.
type ClassGroup struct {
	ClassNumber string    `json:"class_number"`
	Lectures    []Lecture `json:"lectures"`
}
