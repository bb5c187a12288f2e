package model

import (
	"time"

	"gorm.io/gorm"
)

// Submission is one user's single attempt at one test. FinishedAt is the
// sentinel for "in progress": RawScore and BandScore are authoritative only
// once it is set.
type Submission struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	User       User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TestID     uint           `json:"test_id" gorm:"not null;index"`
	Test       Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StartedAt  time.Time      `json:"started_at" gorm:"not null"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	RawScore   int            `json:"raw_score" gorm:"not null;default:0"`
	BandScore  float64        `json:"band_score" gorm:"not null;default:0"`
	Answers    []Answer       `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Finished reports whether the submission has reached its terminal state.
func (s *Submission) Finished() bool {
	return s.FinishedAt != nil
}
