package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	ImportQuestions(testID uint, items []dto.QuestionImportDTO) (*dto.QuestionImportResultDTO, error)
	ListResults() ([]dto.AdminResultDTO, error)
}

type adminTestService struct {
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	submissionRepo repository.SubmissionRepository
}

func NewAdminTestService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	submissionRepo repository.SubmissionRepository,
) AdminTestService {
	return &adminTestService{
		testRepo:       testRepo,
		questionRepo:   questionRepo,
		submissionRepo: submissionRepo,
	}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	testSlug := slug.Make(req.Title)
	if testSlug == "" {
		testSlug = fmt.Sprintf("test-%d", time.Now().UTC().Unix())
	}

	level := req.Level
	if level == "" {
		level = "general"
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = 60
	}
	// Audio only makes sense for listening tests.
	audio := req.AudioFilename
	if req.Section != model.SectionListening {
		audio = nil
	}

	test := model.Test{
		Title:           req.Title,
		Slug:            testSlug,
		Section:         req.Section,
		Level:           level,
		DurationMinutes: duration,
		AudioFilename:   audio,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("slug", testSlug).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, &test); err != nil {
		log.Error().Err(err).Msg("Failed to copy created Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

// ImportQuestions appends the decoded JSON items as questions of the test.
// Options are kept only for mcq items; fill-in questions have none.
func (s *adminTestService) ImportQuestions(testID uint, items []dto.QuestionImportDTO) (*dto.QuestionImportResultDTO, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("import payload has no questions: %w", ErrInvalidInput)
	}

	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("test %d: %w", testID, ErrNotFound)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("ImportQuestions: failed to look up test")
		return nil, fmt.Errorf("looking up test %d: %w", testID, err)
	}

	questions := make([]model.Question, 0, len(items))
	for _, item := range items {
		var options model.StringArray
		if item.Qtype == model.QuestionTypeMCQ {
			options = model.StringArray(item.Options)
		}
		questions = append(questions, model.Question{
			TestID:     test.ID,
			Qtype:      item.Qtype,
			Prompt:     item.Prompt,
			Options:    options,
			AnswerKey:  item.AnswerKey,
			OrderIndex: item.Order,
		})
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Int("count", len(questions)).Msg("ImportQuestions: batch insert failed")
		return nil, fmt.Errorf("importing questions for test %d: %w", test.ID, err)
	}

	log.Info().Uint("testID", test.ID).Int("imported", len(questions)).Msg("Questions imported")
	return &dto.QuestionImportResultDTO{TestID: test.ID, Imported: len(questions)}, nil
}

func (s *adminTestService) ListResults() ([]dto.AdminResultDTO, error) {
	rows, err := s.submissionRepo.FindAllWithDetails()
	if err != nil {
		log.Error().Err(err).Msg("ListResults: failed to fetch submissions")
		return nil, fmt.Errorf("fetching results: %w", err)
	}

	dtos := make([]dto.AdminResultDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, dto.AdminResultDTO{
			SubmissionID:   row.Submission.ID,
			UserID:         row.Submission.UserID,
			UserName:       row.UserName,
			TestID:         row.Submission.TestID,
			TestTitle:      row.TestTitle,
			StartedAt:      row.Submission.StartedAt,
			FinishedAt:     row.Submission.FinishedAt,
			RawScore:       row.Submission.RawScore,
			BandScore:      row.Submission.BandScore,
			TotalQuestions: row.TotalQuestions,
		})
	}
	return dtos, nil
}
