package model

import (
	"time"
)

// Answer holds one learner response per (submission, question) pair. The
// composite unique index backs the idempotent upsert in the answer
// repository: a repeated submission overwrites the row instead of adding a
// duplicate.
type Answer struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SubmissionID uint      `json:"submission_id" gorm:"not null;uniqueIndex:idx_submission_question"`
	QuestionID   uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_submission_question"`
	Question     Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Response     string    `json:"response" gorm:"type:text;not null;default:''"`
	IsCorrect    bool      `json:"is_correct" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
