package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Shibo14/ielts-mock/internal/dto"
	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserTestService interface {
	GetAllTests() ([]dto.TestSummaryDTO, error)
	// GetTestDetails accepts either a numeric id or a slug.
	GetTestDetails(ref string) (*dto.TestResponseDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
}

func NewUserTestService(testRepo repository.TestRepository) UserTestService {
	return &userTestService{testRepo: testRepo}
}

func (s *userTestService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all tests with question count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:              twc.Test.ID,
			Title:           twc.Test.Title,
			Slug:            twc.Test.Slug,
			Section:         twc.Test.Section,
			Level:           twc.Test.Level,
			DurationMinutes: twc.Test.DurationMinutes,
			AudioFilename:   twc.Test.AudioFilename,
			QuestionCount:   twc.QuestionCount,
			CreatedAt:       twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *userTestService) GetTestDetails(ref string) (*dto.TestResponseDTO, error) {
	test, err := s.resolveTest(ref)
	if err != nil {
		return nil, err
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test details response: %w", err)
	}
	return &resp, nil
}

func (s *userTestService) resolveTest(ref string) (*model.Test, error) {
	if id, convErr := strconv.ParseUint(ref, 10, 32); convErr == nil {
		test, err := s.testRepo.FindByIDWithQuestions(uint(id))
		if err == nil {
			return test, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("looking up test %q: %w", ref, err)
		}
		// An all-digit slug (e.g. a test titled "2024") must still resolve
		// when no test carries that id, so fall through to the slug lookup.
	}

	bySlug, err := s.testRepo.FindBySlug(ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("test %q: %w", ref, ErrNotFound)
		}
		return nil, fmt.Errorf("looking up test %q: %w", ref, err)
	}
	test, err := s.testRepo.FindByIDWithQuestions(bySlug.ID)
	if err != nil {
		return nil, fmt.Errorf("loading questions for test %q: %w", ref, err)
	}
	return test, nil
}
