package repository

import (
	"strings"
	"testing"

	"github.com/Shibo14/ielts-mock/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// The one-row-per-(submission, question) guarantee rides on the ON CONFLICT
// clause over the composite unique index: two concurrent inserts serialize on
// the index and the loser turns into an update. Pin the generated SQL so a
// refactor cannot silently drop the clause.
func TestUpsertEmitsConflictClause(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true, SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("opening dry-run session: %v", err)
	}

	var captured string
	err = db.Callback().Create().After("gorm:create").Register("capture_upsert_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("registering capture callback: %v", err)
	}

	repo := NewAnswerRepository(db)
	answer := &model.Answer{SubmissionID: 1, QuestionID: 2, Response: "paris", IsCorrect: true}
	if err := repo.Upsert(answer); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	for _, want := range []string{"ON CONFLICT", "submission_id", "question_id", "DO UPDATE SET", "is_correct"} {
		if !strings.Contains(captured, want) {
			t.Errorf("upsert SQL missing %q:\n%s", want, captured)
		}
	}
	if strings.Contains(captured, "DO NOTHING") {
		t.Errorf("upsert SQL ignores conflicting rows instead of updating them:\n%s", captured)
	}
}
