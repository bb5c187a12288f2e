package repository

import (
	"errors"
	"time"

	"github.com/Shibo14/ielts-mock/internal/model"
	"gorm.io/gorm"
)

// ErrAlreadyFinalized reports that a submission's terminal write was already
// applied by an earlier Finalize call.
var ErrAlreadyFinalized = errors.New("submission already finalized")

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	FindByID(id uint) (*model.Submission, error)
	Finalize(submissionID, testID uint, bandFromRaw func(correct, total int) float64) (*FinalizeResult, error)
	FindAllWithDetails() ([]SubmissionWithDetails, error)
}

// FinalizeResult carries the terminal fields written by Finalize.
type FinalizeResult struct {
	RawScore       int
	BandScore      float64
	TotalQuestions int
	FinishedAt     time.Time
}

// SubmissionWithDetails backs the admin results listing: submissions joined
// with the taker's name, the test title and the test's question count.
type SubmissionWithDetails struct {
	model.Submission
	UserName       string
	TestTitle      string
	TotalQuestions int
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.First(&submission, id).Error
	return &submission, err
}

// Finalize counts the test's questions and the submission's correct answers,
// converts through the injected band function, and writes raw_score,
// band_score and finished_at together. Everything runs in one transaction so
// the stored band can never disagree with the stored raw count: an answer
// committed after this transaction's counts is simply excluded.
//
// The UPDATE only applies while finished_at is still NULL. When two requests
// race past the caller's in-memory check, the loser's write matches zero rows
// and gets ErrAlreadyFinalized, so the terminal transition happens exactly
// once.
func (r *submissionRepository) Finalize(submissionID, testID uint, bandFromRaw func(correct, total int) float64) (*FinalizeResult, error) {
	result := FinalizeResult{FinishedAt: time.Now().UTC()}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var total, correct int64
		if err := tx.Model(&model.Question{}).Where("test_id = ?", testID).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Answer{}).
			Where("submission_id = ? AND is_correct = ?", submissionID, true).
			Count(&correct).Error; err != nil {
			return err
		}

		result.RawScore = int(correct)
		result.TotalQuestions = int(total)
		result.BandScore = bandFromRaw(int(correct), int(total))

		res := tx.Model(&model.Submission{}).
			Where("id = ? AND finished_at IS NULL", submissionID).
			Updates(map[string]interface{}{
				"raw_score":   result.RawScore,
				"band_score":  result.BandScore,
				"finished_at": result.FinishedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFinalized
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *submissionRepository) FindAllWithDetails() ([]SubmissionWithDetails, error) {
	var results []SubmissionWithDetails
	err := r.db.Model(&model.Submission{}).
		Select("submissions.*, users.full_name as user_name, tests.title as test_title, (SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id AND questions.deleted_at IS NULL) as total_questions").
		Joins("JOIN users ON users.id = submissions.user_id").
		Joins("JOIN tests ON tests.id = submissions.test_id").
		Where("submissions.deleted_at IS NULL").
		Order("submissions.started_at DESC").
		Scan(&results).Error
	return results, err
}
