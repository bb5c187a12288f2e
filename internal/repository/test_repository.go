package repository

import (
	"github.com/Shibo14/ielts-mock/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindBySlug(slug string) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindAllWithQuestionCount() ([]TestWithQuestionCount, error)
	CountQuestions(testID uint) (int64, error)
}

type TestWithQuestionCount struct {
	model.Test
	QuestionCount int
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// GORM creates associated questions when test.Questions is populated.
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.First(&test, id).Error
	return &test, err
}

func (r *testRepository) FindBySlug(slug string) (*model.Test, error) {
	var test model.Test
	err := r.db.Where("slug = ?", slug).First(&test).Error
	return &test, err
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		// order_index defines presentation and grading order, id breaks ties
		// by insertion order.
		return db.Order("questions.order_index ASC, questions.id ASC")
	}).First(&test, id).Error
	return &test, err
}

func (r *testRepository) FindAllWithQuestionCount() ([]TestWithQuestionCount, error) {
	var results []TestWithQuestionCount
	err := r.db.Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id AND questions.deleted_at IS NULL) as question_count").
		Where("tests.deleted_at IS NULL").
		Order("tests.section ASC, tests.title ASC").
		Scan(&results).Error
	return results, err
}

func (r *testRepository) CountQuestions(testID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("test_id = ?", testID).Count(&count).Error
	return count, err
}
