package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService is the session engine: it owns the submission lifecycle
// from start through answer upserts to the single terminal finalize.
type SubmissionService interface {
	Start(userID, testID uint) (*dto.SubmissionDTO, error)
	SubmitAnswer(submissionID, questionID uint, response string, actingUserID uint) (*dto.SubmitAnswerResponse, error)
	Finish(submissionID, actingUserID uint) (*dto.SubmissionDTO, error)
	GetResult(submissionID, requestingUserID uint, requestingUserRole string) (*dto.SubmissionResultDTO, error)
}

type submissionService struct {
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
	answerRepo     repository.AnswerRepository
	grading        GradingService
	bandScore      BandScoreService
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
	answerRepo repository.AnswerRepository,
	grading GradingService,
	bandScore BandScoreService,
) SubmissionService {
	return &submissionService{
		testRepo:       testRepo,
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
		answerRepo:     answerRepo,
		grading:        grading,
		bandScore:      bandScore,
	}
}

// Start creates a fresh in-progress submission for the test. Nothing stops a
// user from holding several unfinished submissions for the same test; each
// "start" is its own attempt.
func (s *submissionService) Start(userID, testID uint) (*dto.SubmissionDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("test %d: %w", testID, ErrNotFound)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("Start: failed to look up test")
		return nil, fmt.Errorf("looking up test %d: %w", testID, err)
	}

	submission := model.Submission{
		UserID:    userID,
		TestID:    test.ID,
		StartedAt: time.Now().UTC(),
	}
	if err := s.submissionRepo.Create(&submission); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", userID).Msg("Start: failed to create submission")
		return nil, fmt.Errorf("creating submission: %w", err)
	}

	log.Info().Uint("submissionID", submission.ID).Uint("testID", test.ID).Uint("userID", userID).Msg("Submission started")
	return submissionToDTO(&submission), nil
}

// SubmitAnswer grades the trimmed response and upserts exactly one answer row
// for (submission, question). Repeat calls converge on the latest response;
// the running score is never touched here.
func (s *submissionService) SubmitAnswer(submissionID, questionID uint, response string, actingUserID uint) (*dto.SubmitAnswerResponse, error) {
	submission, err := s.findOwnedSubmission(submissionID, actingUserID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", questionID, ErrNotFound)
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("SubmitAnswer: failed to look up question")
		return nil, fmt.Errorf("looking up question %d: %w", questionID, err)
	}

	trimmed := strings.TrimSpace(response)
	isCorrect := s.grading.Grade(question.Qtype, question.AnswerKey, trimmed)

	answer := model.Answer{
		SubmissionID: submission.ID,
		QuestionID:   question.ID,
		Response:     trimmed,
		IsCorrect:    isCorrect,
	}
	if err := s.answerRepo.Upsert(&answer); err != nil {
		log.Error().Err(err).Uint("submissionID", submission.ID).Uint("questionID", question.ID).Msg("SubmitAnswer: upsert failed")
		return nil, fmt.Errorf("storing answer: %w", err)
	}

	return &dto.SubmitAnswerResponse{Accepted: true, IsCorrect: isCorrect}, nil
}

// Finish computes the raw correct count and band score and writes them
// together with the finish timestamp; the repository runs the counts and the
// write in one transaction. A submission finishes at most once: the local
// Finished check is only a fast path, the storage predicate on finished_at
// decides the winner when two requests race.
//
// No elapsed-time check is made against the test's allotted duration: a
// client may finish arbitrarily late.
func (s *submissionService) Finish(submissionID, actingUserID uint) (*dto.SubmissionDTO, error) {
	submission, err := s.findOwnedSubmission(submissionID, actingUserID)
	if err != nil {
		return nil, err
	}
	if submission.Finished() {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrAlreadyFinished)
	}

	result, err := s.submissionRepo.Finalize(submission.ID, submission.TestID, s.bandScore.BandFromRaw)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyFinalized) {
			return nil, fmt.Errorf("submission %d: %w", submissionID, ErrAlreadyFinished)
		}
		log.Error().Err(err).Uint("submissionID", submission.ID).Msg("Finish: finalize transaction failed")
		return nil, fmt.Errorf("finalizing submission %d: %w", submission.ID, err)
	}

	submission.RawScore = result.RawScore
	submission.BandScore = result.BandScore
	submission.FinishedAt = &result.FinishedAt

	log.Info().
		Uint("submissionID", submission.ID).
		Int("rawScore", submission.RawScore).
		Float64("bandScore", submission.BandScore).
		Msg("Submission finished")
	return submissionToDTO(submission), nil
}

// GetResult is visible to the owning user or to an admin.
func (s *submissionService) GetResult(submissionID, requestingUserID uint, requestingUserRole string) (*dto.SubmissionResultDTO, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %d: %w", submissionID, ErrNotFound)
		}
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("GetResult: failed to look up submission")
		return nil, fmt.Errorf("looking up submission %d: %w", submissionID, err)
	}
	if submission.UserID != requestingUserID && requestingUserRole != model.RoleAdmin {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrForbidden)
	}

	total, err := s.testRepo.CountQuestions(submission.TestID)
	if err != nil {
		log.Error().Err(err).Uint("testID", submission.TestID).Msg("GetResult: failed to count questions")
		return nil, fmt.Errorf("counting questions for test %d: %w", submission.TestID, err)
	}

	return &dto.SubmissionResultDTO{
		SubmissionID:   submission.ID,
		TestID:         submission.TestID,
		RawScore:       submission.RawScore,
		BandScore:      submission.BandScore,
		TotalQuestions: int(total),
		StartedAt:      submission.StartedAt,
		FinishedAt:     submission.FinishedAt,
	}, nil
}

// findOwnedSubmission resolves the submission and enforces ownership. A
// caller guessing another user's submission id gets Forbidden, never the data.
func (s *submissionService) findOwnedSubmission(submissionID, actingUserID uint) (*model.Submission, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %d: %w", submissionID, ErrNotFound)
		}
		log.Error().Err(err).Uint("submissionID", submissionID).Msg("failed to look up submission")
		return nil, fmt.Errorf("looking up submission %d: %w", submissionID, err)
	}
	if submission.UserID != actingUserID {
		return nil, fmt.Errorf("submission %d: %w", submissionID, ErrForbidden)
	}
	return submission, nil
}

func submissionToDTO(submission *model.Submission) *dto.SubmissionDTO {
	return &dto.SubmissionDTO{
		ID:         submission.ID,
		UserID:     submission.UserID,
		TestID:     submission.TestID,
		StartedAt:  submission.StartedAt,
		FinishedAt: submission.FinishedAt,
		RawScore:   submission.RawScore,
		BandScore:  submission.BandScore,
	}
}
