package dto

import "time"

// TestCreateDTO is for admins to create a new test shell; questions arrive
// separately through the JSON import endpoint.
type TestCreateDTO struct {
	Title           string  `json:"title" binding:"required"`
	Section         string  `json:"section" binding:"required,oneof=listening reading"`
	Level           string  `json:"level"`
	DurationMinutes int     `json:"duration_minutes" binding:"omitempty,min=1"`
	AudioFilename   *string `json:"audio_filename"`
}

// QuestionImportDTO mirrors one element of the bulk import JSON array.
type QuestionImportDTO struct {
	Qtype     string   `json:"qtype" binding:"required,oneof=mcq fill"`
	Prompt    string   `json:"prompt" binding:"required"`
	Options   []string `json:"options"`
	AnswerKey string   `json:"answer_key"`
	Order     int      `json:"order"`
}

type QuestionImportResultDTO struct {
	TestID   uint `json:"test_id"`
	Imported int  `json:"imported"`
}

// AdminResultDTO is one row of the admin results listing.
type AdminResultDTO struct {
	SubmissionID   uint       `json:"submission_id"`
	UserID         uint       `json:"user_id"`
	UserName       string     `json:"user_name"`
	TestID         uint       `json:"test_id"`
	TestTitle      string     `json:"test_title"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	RawScore       int        `json:"raw_score"`
	BandScore      float64    `json:"band_score"`
	TotalQuestions int        `json:"total_questions"`
}
