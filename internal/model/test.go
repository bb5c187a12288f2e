package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SectionListening = "listening"
	SectionReading   = "reading"
)

type Test struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `json:"title" gorm:"not null"` // "Listening Sample 1"
	Slug            string         `json:"slug" gorm:"not null;uniqueIndex"`
	Section         string         `json:"section" gorm:"not null;index"` // "listening", "reading"
	Level           string         `json:"level" gorm:"not null;default:'general'"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null;default:60"`
	CenterID        *uint          `json:"center_id,omitempty" gorm:"index"`
	AudioFilename   *string        `json:"audio_filename,omitempty"` // only set for listening tests
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
