package service

import (
	"testing"

	"github.com/Shibo14/ielts-mock/internal/model"
)

func TestGradeMCQ(t *testing.T) {
	grading := NewGradingService()

	tests := []struct {
		name      string
		answerKey string
		response  string
		want      bool
	}{
		{"exact match", "B", "B", true},
		{"wrong choice", "B", "C", false},
		{"case differs", "B", "b", false},
		{"multi-char identifier", "A1", "A1", true},
		{"empty response against key", "B", "", false},
		{"empty key empty response", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grading.Grade(model.QuestionTypeMCQ, tt.answerKey, tt.response)
			if got != tt.want {
				t.Errorf("Grade(mcq, %q, %q) = %v, want %v", tt.answerKey, tt.response, got, tt.want)
			}
		})
	}
}

func TestGradeFill(t *testing.T) {
	grading := NewGradingService()

	tests := []struct {
		name      string
		answerKey string
		response  string
		want      bool
	}{
		{"exact match", "paris", "paris", true},
		{"case-insensitive match", "paris", "Paris", true},
		{"mixed case both sides", "PaRiS", "pArIs", true},
		{"wrong answer", "paris", "london", false},
		{"internal whitespace not normalized", "new york", "newyork", false},
		{"empty key matches empty response", "", "", true},
		{"empty key rejects non-empty response", "", "paris", false},
		{"empty response against key", "paris", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grading.Grade(model.QuestionTypeFill, tt.answerKey, tt.response)
			if got != tt.want {
				t.Errorf("Grade(fill, %q, %q) = %v, want %v", tt.answerKey, tt.response, got, tt.want)
			}
		})
	}
}
