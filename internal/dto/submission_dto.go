package dto

import "time"

type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Response   string `json:"response"` // empty responses are valid and still graded
}

type SubmitAnswerResponse struct {
	Accepted  bool `json:"accepted"`
	IsCorrect bool `json:"is_correct"`
}

type SubmissionDTO struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	TestID     uint       `json:"test_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	RawScore   int        `json:"raw_score"`
	BandScore  float64    `json:"band_score"`
}

type SubmissionResultDTO struct {
	SubmissionID   uint       `json:"submission_id"`
	TestID         uint       `json:"test_id"`
	RawScore       int        `json:"raw_score"`
	BandScore      float64    `json:"band_score"`
	TotalQuestions int        `json:"total_questions"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}
