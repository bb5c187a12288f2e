package database

import (
	"fmt"

	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts the default center, accounts and two sample tests. Every
// insert is guarded by a lookup so repeated runs are no-ops.
func Seed(db *gorm.DB) error {
	center, err := seedCenter(db, "Default Center")
	if err != nil {
		return err
	}

	if err := seedUser(db, "Admin", "admin@example.com", "admin123", model.RoleAdmin, center.ID); err != nil {
		return err
	}
	if err := seedUser(db, "Student", "student@example.com", "student123", model.RoleStudent, center.ID); err != nil {
		return err
	}

	audio := "listening_sample_1.mp3"
	if err := seedTest(db, model.Test{
		Title:           "Listening Sample 1",
		Slug:            "listening-sample-1",
		Section:         model.SectionListening,
		Level:           "general",
		DurationMinutes: 30,
		CenterID:        &center.ID,
		AudioFilename:   &audio,
		Questions: []model.Question{
			{Qtype: model.QuestionTypeMCQ, Prompt: "What time does the library open on weekdays?", Options: model.StringArray{"A", "B", "C", "D"}, AnswerKey: "B", OrderIndex: 1},
			{Qtype: model.QuestionTypeFill, Prompt: "The speaker's surname is ______.", AnswerKey: "Harrison", OrderIndex: 2},
			{Qtype: model.QuestionTypeMCQ, Prompt: "Where will the meeting take place?", Options: model.StringArray{"A", "B", "C"}, AnswerKey: "A", OrderIndex: 3},
		},
	}); err != nil {
		return err
	}

	if err := seedTest(db, model.Test{
		Title:           "Reading Sample 1",
		Slug:            "reading-sample-1",
		Section:         model.SectionReading,
		Level:           "academic",
		DurationMinutes: 60,
		CenterID:        &center.ID,
		Questions: []model.Question{
			{Qtype: model.QuestionTypeMCQ, Prompt: "According to paragraph 1, the main cause was:", Options: model.StringArray{"A", "B", "C", "D"}, AnswerKey: "C", OrderIndex: 1},
			{Qtype: model.QuestionTypeFill, Prompt: "The experiment lasted ______ weeks.", AnswerKey: "six", OrderIndex: 2},
		},
	}); err != nil {
		return err
	}

	log.Info().Msg("Seed completed: admin=admin@example.com / admin123 | student=student@example.com / student123")
	return nil
}

func seedCenter(db *gorm.DB, name string) (*model.Center, error) {
	var center model.Center
	err := db.Where("name = ?", name).First(&center).Error
	if err == nil {
		return &center, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("looking up center %q: %w", name, err)
	}
	center = model.Center{Name: name}
	if err := db.Create(&center).Error; err != nil {
		return nil, fmt.Errorf("creating center %q: %w", name, err)
	}
	return &center, nil
}

func seedUser(db *gorm.DB, fullName, email, password, role string, centerID uint) error {
	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("looking up user %q: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password for %q: %w", email, err)
	}
	user := model.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CenterID:     &centerID,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("creating user %q: %w", email, err)
	}
	return nil
}

func seedTest(db *gorm.DB, test model.Test) error {
	var existing model.Test
	err := db.Where("slug = ?", test.Slug).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("looking up test %q: %w", test.Slug, err)
	}
	if err := db.Create(&test).Error; err != nil {
		return fmt.Errorf("creating test %q: %w", test.Slug, err)
	}
	return nil
}
