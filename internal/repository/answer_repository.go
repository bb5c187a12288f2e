package repository

import (
	"github.com/Shibo14/ielts-mock/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	Upsert(answer *model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// Upsert inserts the answer or, when a row for (submission_id, question_id)
// already exists, overwrites its response and correctness in place. The
// ON CONFLICT clause rides on the composite unique index, so two concurrent
// submissions of the same question serialize at the storage layer and the
// last committed writer wins.
func (r *answerRepository) Upsert(answer *model.Answer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"response", "is_correct", "updated_at"}),
	}).Create(answer).Error
}
