package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ckearl/senahpark.com/transcript"
)

// ErrNotFound is returned when a lecture ID has no matching row.
var ErrNotFound = errors.New("db: lecture not found")

// ListLectures returns every lecture grouped by class number. Groups are
// ordered by the date of their newest lecture, newest first, and lectures
// within a group are also newest first.
func ListLectures(db *sql.DB) ([]ClassGroup, error) {
	rows, err := db.Query(SelectLecturesSQL)
	if err != nil {
		return nil, fmt.Errorf("select lectures: %w", err)
	}
	defer rows.Close()

	var groups []ClassGroup
	byClass := make(map[string]int)
	for rows.Next() {
		var l Lecture
		if err := rows.Scan(&l.ID, &l.Title, &l.Professor, &l.Date, &l.DurationSeconds, &l.ClassNumber, &l.Language); err != nil {
			return nil, fmt.Errorf("scan lecture: %w", err)
		}
		i, ok := byClass[l.ClassNumber]
		if !ok {
			i = len(groups)
			byClass[l.ClassNumber] = i
			groups = append(groups, ClassGroup{ClassNumber: l.ClassNumber})
		}
		groups[i].Lectures = append(groups[i].Lectures, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lectures: %w", err)
	}
	return groups, nil
}

// GetLecture returns the lecture row for the given ID, or ErrNotFound.
func GetLecture(db *sql.DB, id string) (*Lecture, error) {
	var l Lecture
	err := db.QueryRow(SelectLectureByIDSQL, id).Scan(&l.ID, &l.Title, &l.Professor, &l.Date, &l.DurationSeconds, &l.ClassNumber, &l.Language)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select lecture: %w", err)
	}
	return &l, nil
}

// CreateLecture inserts a new lecture row. A fresh UUID is assigned when the
// ID field is empty. The stored lecture is returned.
func CreateLecture(db *sql.DB, l Lecture) (Lecture, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Language == "" {
		l.Language = "en-US"
	}
	_, err := db.Exec(InsertLectureSQL, l.ID, l.Title, l.Professor, l.Date, l.DurationSeconds, l.ClassNumber, l.Language)
	if err != nil {
		return Lecture{}, fmt.Errorf("insert lecture: %w", err)
	}
	return l, nil
}

// UpdateLecture rewrites the metadata fields of an existing lecture.
func UpdateLecture(db *sql.DB, l Lecture) error {
	res, err := db.Exec(UpdateLectureSQL, l.Title, l.Professor, l.Date, l.DurationSeconds, l.ClassNumber, l.Language, l.ID)
	if err != nil {
		return fmt.Errorf("update lecture: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lecture: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLecture removes a lecture. Segments, insights and saved progress go
// with it via foreign key cascade.
func DeleteLecture(db *sql.DB, id string) error {
	res, err := db.Exec(DeleteLectureSQL, id)
	if err != nil {
		return fmt.Errorf("delete lecture: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lecture: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetSegments returns the lecture's transcript segments ordered by
// segment_order. An empty transcript yields an empty slice, not an error.
func GetSegments(db *sql.DB, lectureID string) ([]transcript.Segment, error) {
	rows, err := db.Query(SelectSegmentsByLectureSQL, lectureID)
	if err != nil {
		return nil, fmt.Errorf("select segments: %w", err)
	}
	defer rows.Close()

	segments := []transcript.Segment{}
	for rows.Next() {
		var s transcript.Segment
		// speaker_name is nullable; rows written by other tools may hold NULL
		var speaker sql.NullString
		if err := rows.Scan(&s.ID, &s.LectureID, &s.StartTime, &s.EndTime, &s.Text, &speaker, &s.SegmentOrder); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		s.SpeakerName = speaker.String
		segments = append(segments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}
	return segments, nil
}

// ReplaceSegments swaps a lecture's transcript for the given segments in a
// single transaction. Segments are validated for ordering before any write,
// and missing IDs are filled with fresh UUIDs.
func ReplaceSegments(db *sql.DB, lectureID string, segments []transcript.Segment) error {
	if _, err := transcript.NewIndex(segments); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace segments: %w", err)
	}
	if _, err := tx.Exec(DeleteSegmentsByLectureSQL, lectureID); err != nil {
		tx.Rollback()
		return fmt.Errorf("delete old segments: %w", err)
	}
	for _, s := range segments {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if _, err := tx.Exec(InsertSegmentSQL, s.ID, lectureID, s.StartTime, s.EndTime, s.Text, s.SpeakerName, s.SegmentOrder); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert segment %d: %w", s.SegmentOrder, err)
		}
	}
	return tx.Commit()
}

// UpsertInsights writes the lecture's insights, replacing any existing row.
func UpsertInsights(db *sql.DB, ins Insights) error {
	if ins.ID == "" {
		ins.ID = uuid.NewString()
	}
	keyTerms, err := encodeList(ins.KeyTerms)
	if err != nil {
		return err
	}
	mainIdeas, err := encodeList(ins.MainIdeas)
	if err != nil {
		return err
	}
	questions, err := encodeList(ins.ReviewQuestions)
	if err != nil {
		return err
	}
	_, err = db.Exec(UpsertInsightsSQL, ins.ID, ins.LectureID, ins.Summary, keyTerms, mainIdeas, questions)
	if err != nil {
		return fmt.Errorf("upsert insights: %w", err)
	}
	return nil
}

// GetInsights returns the lecture's insights, or nil when none are stored.
func GetInsights(db *sql.DB, lectureID string) (*Insights, error) {
	var ins Insights
	var keyTerms, mainIdeas, questions string
	err := db.QueryRow(SelectInsightsByLectureSQL, lectureID).Scan(&ins.ID, &ins.LectureID, &ins.Summary, &keyTerms, &mainIdeas, &questions)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select insights: %w", err)
	}
	ins.KeyTerms = decodeList(keyTerms)
	ins.MainIdeas = decodeList(mainIdeas)
	ins.ReviewQuestions = decodeList(questions)
	return &ins, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode insight list: %w", err)
	}
	return string(b), nil
}

// decodeList tolerates malformed stored JSON by returning an empty list.
func decodeList(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	if items == nil {
		items = []string{}
	}
	return items
}
