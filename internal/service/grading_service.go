package service

import (
	"strings"

	"github.com/Shibo14/ielts-mock/internal/model"
)

// GradingService decides whether a single response matches a question's
// answer key. It is pure: no state, no I/O.
type GradingService interface {
	Grade(qtype, answerKey, response string) bool
}

type gradingService struct{}

func NewGradingService() GradingService {
	return &gradingService{}
}

// Grade compares the response against the answer key.
//
// Multiple-choice keys are canonical choice identifiers, so the comparison is
// exact and case-sensitive. Everything else (fill-in) compares
// case-insensitively, with no whitespace normalization beyond the trimming
// the caller already performed and no fuzzy matching.
//
// An unset answer key behaves as the empty string, so an empty response
// grades correct against it. That mirrors the production systems this feeds
// and is covered by tests; do not "fix" it here.
func (s *gradingService) Grade(qtype, answerKey, response string) bool {
	if qtype == model.QuestionTypeMCQ {
		return response == answerKey
	}
	return strings.ToLower(response) == strings.ToLower(answerKey)
}
