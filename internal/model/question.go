package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ  = "mcq"
	QuestionTypeFill = "fill"
)

// StringArray stores an ordered list of answer choices as a jsonb column.
type StringArray []string

func (o *StringArray) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value")
	}
	return json.Unmarshal(bytes, o)
}

func (o StringArray) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

type Question struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	TestID     uint           `json:"test_id" gorm:"not null;index"`
	Qtype      string         `json:"qtype" gorm:"not null"` // "mcq", "fill"
	Prompt     string         `json:"prompt" gorm:"type:text;not null"`
	Options    StringArray    `json:"options,omitempty" gorm:"type:jsonb"` // only meaningful for mcq
	AnswerKey  string         `json:"-" gorm:"not null;default:''"`
	OrderIndex int            `json:"order_index" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
