package db

import (
	_ "embed"
)

// Schema and migrations

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Lecture queries

//go:embed sql/insert_lecture.sql
var InsertLectureSQL string

//go:embed sql/select_lectures.sql
var SelectLecturesSQL string

//go:embed sql/select_lecture_by_id.sql
var SelectLectureByIDSQL string

//go:embed sql/update_lecture.sql
var UpdateLectureSQL string

//go:embed sql/delete_lecture.sql
var DeleteLectureSQL string

// Transcript segment queries

//go:embed sql/insert_segment.sql
var InsertSegmentSQL string

//go:embed sql/select_segments_by_lecture.sql
var SelectSegmentsByLectureSQL string

//go:embed sql/delete_segments_by_lecture.sql
var DeleteSegmentsByLectureSQL string

// Text insight queries

//go:embed sql/upsert_insights.sql
var UpsertInsightsSQL string

//go:embed sql/select_insights_by_lecture.sql
var SelectInsightsByLectureSQL string

// Progress queries

//go:embed sql/upsert_progress.sql
var UpsertProgressSQL string

//go:embed sql/select_progress.sql
var SelectProgressSQL string

//go:embed sql/delete_progress.sql
var DeleteProgressSQL string

//go:embed sql/delete_expired_progress.sql
var DeleteExpiredProgressSQL string
