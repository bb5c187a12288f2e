package service

import (
	"errors"
	"testing"

	"github.com/Shibo14/ielts-mock/internal/model"
)

func newUserTestFixture() (*memStore, UserTestService) {
	store := newMemStore()
	return store, NewUserTestService(&fakeTestRepo{store: store})
}

func TestGetTestDetailsAllDigitSlug(t *testing.T) {
	store, svc := newUserTestFixture()

	test := &model.Test{Title: "2024", Slug: "2024", Section: model.SectionReading}
	test.ID = 5
	store.tests[5] = test

	// "2024" parses as an id, but no test carries that id; the lookup must
	// fall through to the slug.
	got, err := svc.GetTestDetails("2024")
	if err != nil {
		t.Fatalf("GetTestDetails by all-digit slug: %v", err)
	}
	if got.ID != 5 || got.Slug != "2024" {
		t.Errorf("resolved test = (id=%d, slug=%q), want (5, %q)", got.ID, got.Slug, "2024")
	}
}

func TestGetTestDetailsNumericIDWinsOverSlug(t *testing.T) {
	store, svc := newUserTestFixture()

	byID := &model.Test{Title: "Listening A", Slug: "listening-a", Section: model.SectionListening}
	byID.ID = 7
	store.tests[7] = byID

	bySlug := &model.Test{Title: "Seven", Slug: "7", Section: model.SectionReading}
	bySlug.ID = 9
	store.tests[9] = bySlug

	got, err := svc.GetTestDetails("7")
	if err != nil {
		t.Fatalf("GetTestDetails: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("resolved test id = %d, want the id match 7 over the slug match", got.ID)
	}
}

func TestGetTestDetailsUnknownRef(t *testing.T) {
	_, svc := newUserTestFixture()

	if _, err := svc.GetTestDetails("missing-slug"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTestDetails(missing-slug): err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetTestDetails("404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTestDetails(404): err = %v, want ErrNotFound", err)
	}
}
