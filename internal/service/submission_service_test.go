package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Shibo14/ielts-mock/internal/model"
	"github.com/Shibo14/ielts-mock/internal/repository"
	"gorm.io/gorm"
)

// memStore is shared backing state for the fake repositories. Answers are
// keyed by (submission, question) so the fake upsert has the same uniqueness
// the composite index gives the real one.
type memStore struct {
	tests       map[uint]*model.Test
	questions   map[uint]*model.Question
	submissions map[uint]*model.Submission
	answers     map[[2]uint]*model.Answer
	nextSubID   uint
}

func newMemStore() *memStore {
	return &memStore{
		tests:       make(map[uint]*model.Test),
		questions:   make(map[uint]*model.Question),
		submissions: make(map[uint]*model.Submission),
		answers:     make(map[[2]uint]*model.Answer),
	}
}

type fakeTestRepo struct{ store *memStore }

func (r *fakeTestRepo) Create(test *model.Test) error {
	r.store.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	test, ok := r.store.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return test, nil
}

func (r *fakeTestRepo) FindBySlug(slug string) (*model.Test, error) {
	for _, test := range r.store.tests {
		if test.Slug == slug {
			return test, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	return r.FindByID(id)
}

func (r *fakeTestRepo) FindAllWithQuestionCount() ([]repository.TestWithQuestionCount, error) {
	return nil, nil
}

func (r *fakeTestRepo) CountQuestions(testID uint) (int64, error) {
	var count int64
	for _, q := range r.store.questions {
		if q.TestID == testID {
			count++
		}
	}
	return count, nil
}

type fakeQuestionRepo struct{ store *memStore }

func (r *fakeQuestionRepo) CreateBatch(questions []model.Question) error {
	for i := range questions {
		q := questions[i]
		if q.ID == 0 {
			q.ID = uint(len(r.store.questions) + 1)
		}
		r.store.questions[q.ID] = &q
	}
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	question, ok := r.store.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return question, nil
}

func (r *fakeQuestionRepo) FindByTestID(testID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.store.questions {
		if q.TestID == testID {
			out = append(out, *q)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	store *memStore
	// finalizeWrites counts applied terminal transitions, not attempts.
	finalizeWrites int
}

func (r *fakeSubmissionRepo) Create(submission *model.Submission) error {
	r.store.nextSubID++
	submission.ID = r.store.nextSubID
	stored := *submission
	r.store.submissions[submission.ID] = &stored
	return nil
}

func (r *fakeSubmissionRepo) FindByID(id uint) (*model.Submission, error) {
	stored, ok := r.store.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *stored
	return &found, nil
}

func (r *fakeSubmissionRepo) Finalize(submissionID, testID uint, bandFromRaw func(correct, total int) float64) (*repository.FinalizeResult, error) {
	stored, ok := r.store.submissions[submissionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Same predicate the real UPDATE carries: only an in-progress row may
	// take the terminal write.
	if stored.FinishedAt != nil {
		return nil, repository.ErrAlreadyFinalized
	}

	var total, correct int
	for _, q := range r.store.questions {
		if q.TestID == testID {
			total++
		}
	}
	for key, a := range r.store.answers {
		if key[0] == submissionID && a.IsCorrect {
			correct++
		}
	}

	result := repository.FinalizeResult{
		RawScore:       correct,
		BandScore:      bandFromRaw(correct, total),
		TotalQuestions: total,
		FinishedAt:     time.Now().UTC(),
	}

	stored.RawScore = result.RawScore
	stored.BandScore = result.BandScore
	finishedAt := result.FinishedAt
	stored.FinishedAt = &finishedAt
	r.finalizeWrites++
	return &result, nil
}

func (r *fakeSubmissionRepo) FindAllWithDetails() ([]repository.SubmissionWithDetails, error) {
	return nil, nil
}

type fakeAnswerRepo struct{ store *memStore }

func (r *fakeAnswerRepo) Upsert(answer *model.Answer) error {
	key := [2]uint{answer.SubmissionID, answer.QuestionID}
	stored := *answer
	r.store.answers[key] = &stored
	return nil
}

func newEngineFixture() (*memStore, SubmissionService) {
	store := newMemStore()
	svc := NewSubmissionService(
		&fakeTestRepo{store: store},
		&fakeQuestionRepo{store: store},
		&fakeSubmissionRepo{store: store},
		&fakeAnswerRepo{store: store},
		NewGradingService(),
		NewBandScoreService(),
	)
	return store, svc
}

// seedFillTest stores a test with `count` fill questions keyed "city 1",
// "city 2", ... with question IDs 1..count.
func seedFillTest(store *memStore, testID uint, count int) {
	test := &model.Test{Title: "Reading Sample", Slug: "reading-sample", Section: model.SectionReading}
	test.ID = testID
	store.tests[testID] = test

	for i := 1; i <= count; i++ {
		q := &model.Question{
			TestID:    testID,
			Qtype:     model.QuestionTypeFill,
			Prompt:    fmt.Sprintf("Question %d", i),
			AnswerKey: fmt.Sprintf("city %d", i),
		}
		q.ID = uint(i)
		store.questions[q.ID] = q
	}
}

func TestStartUnknownTest(t *testing.T) {
	store, svc := newEngineFixture()

	_, err := svc.Start(1, 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Start with unknown test: err = %v, want ErrNotFound", err)
	}
	if len(store.submissions) != 0 {
		t.Errorf("failed Start left %d submissions behind, want 0", len(store.submissions))
	}
}

func TestStartCreatesInProgressSubmission(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 3)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sub.UserID != 7 || sub.TestID != 1 {
		t.Errorf("Start returned userID=%d testID=%d, want 7 and 1", sub.UserID, sub.TestID)
	}
	if sub.StartedAt.IsZero() {
		t.Error("Start left StartedAt unset")
	}
	if sub.FinishedAt != nil {
		t.Errorf("fresh submission has FinishedAt=%v, want nil", sub.FinishedAt)
	}
	if sub.RawScore != 0 || sub.BandScore != 0 {
		t.Errorf("fresh submission has rawScore=%d bandScore=%v, want zeros", sub.RawScore, sub.BandScore)
	}

	// Each Start is an independent attempt, even for the same user and test.
	if _, err := svc.Start(7, 1); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if len(store.submissions) != 2 {
		t.Errorf("after two Starts store holds %d submissions, want 2", len(store.submissions))
	}
}

func TestSubmitAnswerOwnership(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 3)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	_, err = svc.SubmitAnswer(sub.ID, 1, "city 1", 8)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("SubmitAnswer by non-owner: err = %v, want ErrForbidden", err)
	}
	if len(store.answers) != 0 {
		t.Errorf("forbidden SubmitAnswer stored %d answers, want 0", len(store.answers))
	}
}

func TestSubmitAnswerUnknownSubmissionAndQuestion(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 3)

	if _, err := svc.SubmitAnswer(42, 1, "city 1", 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("SubmitAnswer on unknown submission: err = %v, want ErrNotFound", err)
	}

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.SubmitAnswer(sub.ID, 99, "city 1", 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("SubmitAnswer on unknown question: err = %v, want ErrNotFound", err)
	}
}

func TestSubmitAnswerUpsertIsIdempotent(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 3)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	first, err := svc.SubmitAnswer(sub.ID, 1, "wrong", 7)
	if err != nil {
		t.Fatalf("first SubmitAnswer: %v", err)
	}
	if first.IsCorrect {
		t.Error("wrong response graded correct")
	}

	second, err := svc.SubmitAnswer(sub.ID, 1, "City 1", 7)
	if err != nil {
		t.Fatalf("second SubmitAnswer: %v", err)
	}
	if !second.IsCorrect {
		t.Error("case-insensitive fill response graded incorrect")
	}

	if len(store.answers) != 1 {
		t.Fatalf("two submits for one question stored %d rows, want 1", len(store.answers))
	}
	stored := store.answers[[2]uint{sub.ID, 1}]
	if stored.Response != "City 1" || !stored.IsCorrect {
		t.Errorf("stored answer = (%q, %v), want latest response to win", stored.Response, stored.IsCorrect)
	}
}

func TestSubmitAnswerTrimsResponse(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 1)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	resp, err := svc.SubmitAnswer(sub.ID, 1, "  city 1\n", 7)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !resp.IsCorrect {
		t.Error("padded response graded incorrect, want surrounding whitespace stripped")
	}
	if got := store.answers[[2]uint{sub.ID, 1}].Response; got != "city 1" {
		t.Errorf("stored response = %q, want trimmed %q", got, "city 1")
	}
}

func TestSubmitAnswerMCQIsCaseSensitive(t *testing.T) {
	store, svc := newEngineFixture()
	test := &model.Test{Title: "Listening Sample", Slug: "listening-sample", Section: model.SectionListening}
	test.ID = 1
	store.tests[1] = test
	q := &model.Question{TestID: 1, Qtype: model.QuestionTypeMCQ, Prompt: "Pick one", Options: model.StringArray{"A", "B", "C"}, AnswerKey: "B"}
	q.ID = 1
	store.questions[1] = q

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	resp, err := svc.SubmitAnswer(sub.ID, 1, "b", 7)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !resp.Accepted {
		t.Error("SubmitAnswer not accepted")
	}
	if resp.IsCorrect {
		t.Error("lowercase mcq response graded correct, want case-sensitive compare")
	}
}

func TestFinishComputesScores(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 20)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 1; i <= 20; i++ {
		response := fmt.Sprintf("city %d", i)
		if i > 17 {
			response = "wrong"
		}
		if _, err := svc.SubmitAnswer(sub.ID, uint(i), response, 7); err != nil {
			t.Fatalf("SubmitAnswer %d: %v", i, err)
		}
	}

	finished, err := svc.Finish(sub.ID, 7)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if finished.RawScore != 17 {
		t.Errorf("RawScore = %d, want 17", finished.RawScore)
	}
	if finished.BandScore != 8.0 {
		t.Errorf("BandScore = %v, want 8.0 for 17/20", finished.BandScore)
	}
	if finished.FinishedAt == nil {
		t.Error("FinishedAt not set")
	}

	// The three terminal fields must also land together in storage.
	stored := store.submissions[sub.ID]
	if stored.RawScore != 17 || stored.BandScore != 8.0 || stored.FinishedAt == nil {
		t.Errorf("stored submission = (raw=%d, band=%v, finishedAt=%v), want all three finalized",
			stored.RawScore, stored.BandScore, stored.FinishedAt)
	}
}

func TestFinishUnansweredQuestionsCountAsWrong(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 2)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.SubmitAnswer(sub.ID, 1, "city 1", 7); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	finished, err := svc.Finish(sub.ID, 7)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if finished.RawScore != 1 {
		t.Errorf("RawScore = %d, want 1 of 2 with one question unanswered", finished.RawScore)
	}
	if finished.BandScore != 5.0 {
		t.Errorf("BandScore = %v, want 5.0 at exactly half", finished.BandScore)
	}
}

// staleReadSubmissionRepo reports every submission as still in progress,
// modeling a request whose read raced ahead of another request's terminal
// write. With the in-memory guard blinded this way, only the storage
// predicate on finished_at can keep the transition single-shot.
type staleReadSubmissionRepo struct{ *fakeSubmissionRepo }

func (r *staleReadSubmissionRepo) FindByID(id uint) (*model.Submission, error) {
	found, err := r.fakeSubmissionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	found.FinishedAt = nil
	return found, nil
}

func TestFinishRacingRequestsFinalizeOnce(t *testing.T) {
	store := newMemStore()
	subRepo := &staleReadSubmissionRepo{&fakeSubmissionRepo{store: store}}
	svc := NewSubmissionService(
		&fakeTestRepo{store: store},
		&fakeQuestionRepo{store: store},
		subRepo,
		&fakeAnswerRepo{store: store},
		NewGradingService(),
		NewBandScoreService(),
	)
	seedFillTest(store, 1, 2)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Finish(sub.ID, 7); err != nil {
		t.Fatalf("first Finish: %v", err)
	}

	// The second request read the submission before the first one committed,
	// so it reaches the terminal write believing the submission is open.
	if _, err := svc.Finish(sub.ID, 7); !errors.Is(err, ErrAlreadyFinished) {
		t.Fatalf("racing Finish: err = %v, want ErrAlreadyFinished", err)
	}
	if subRepo.finalizeWrites != 1 {
		t.Errorf("terminal transition applied %d times, want exactly once", subRepo.finalizeWrites)
	}
}

func TestFinishTwiceRejected(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 2)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.Finish(sub.ID, 7); err != nil {
		t.Fatalf("first Finish: %v", err)
	}

	_, err = svc.Finish(sub.ID, 7)
	if !errors.Is(err, ErrAlreadyFinished) {
		t.Fatalf("second Finish: err = %v, want ErrAlreadyFinished", err)
	}
}

func TestFinishOwnership(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 2)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.Finish(sub.ID, 8); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Finish by non-owner: err = %v, want ErrForbidden", err)
	}
	if stored := store.submissions[sub.ID]; stored.Finished() {
		t.Error("forbidden Finish still finalized the submission")
	}
}

func TestGetResultVisibility(t *testing.T) {
	store, svc := newEngineFixture()
	seedFillTest(store, 1, 2)

	sub, err := svc.Start(7, 1)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := svc.SubmitAnswer(sub.ID, 1, "city 1", 7); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if _, err := svc.Finish(sub.ID, 7); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	owner, err := svc.GetResult(sub.ID, 7, model.RoleStudent)
	if err != nil {
		t.Fatalf("GetResult as owner: %v", err)
	}
	if owner.RawScore != 1 || owner.TotalQuestions != 2 {
		t.Errorf("owner result = (raw=%d, total=%d), want (1, 2)", owner.RawScore, owner.TotalQuestions)
	}
	if owner.FinishedAt == nil {
		t.Error("owner result missing FinishedAt")
	}

	if _, err := svc.GetResult(sub.ID, 8, model.RoleStudent); !errors.Is(err, ErrForbidden) {
		t.Errorf("GetResult as stranger: err = %v, want ErrForbidden", err)
	}

	admin, err := svc.GetResult(sub.ID, 8, model.RoleAdmin)
	if err != nil {
		t.Fatalf("GetResult as admin: %v", err)
	}
	if admin.SubmissionID != sub.ID || admin.TestID != 1 {
		t.Errorf("admin result = (submission=%d, test=%d), want (%d, 1)", admin.SubmissionID, admin.TestID, sub.ID)
	}

	if _, err := svc.GetResult(404, 7, model.RoleStudent); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetResult on unknown submission: err = %v, want ErrNotFound", err)
	}
}
