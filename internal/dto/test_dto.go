package dto

import "time"

// TestSummaryDTO lists tests available to takers, ordered by section then title.
type TestSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Section         string    `json:"section"`
	Level           string    `json:"level"`
	DurationMinutes int       `json:"duration_minutes"`
	AudioFilename   *string   `json:"audio_filename,omitempty"`
	QuestionCount   int       `json:"question_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuestionResponseDTO deliberately omits the answer key: takers must never
// see it.
type QuestionResponseDTO struct {
	ID         uint     `json:"id"`
	TestID     uint     `json:"test_id"`
	Qtype      string   `json:"qtype"`
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options,omitempty"`
	OrderIndex int      `json:"order_index"`
}

type TestResponseDTO struct {
	ID              uint                  `json:"id"`
	Title           string                `json:"title"`
	Slug            string                `json:"slug"`
	Section         string                `json:"section"`
	Level           string                `json:"level"`
	DurationMinutes int                   `json:"duration_minutes"`
	AudioFilename   *string               `json:"audio_filename,omitempty"`
	Questions       []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}
