package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Emil0510/learn-ai/internal/domain"
	apperrors "github.com/Emil0510/learn-ai/pkg/errors"
)

// MockProgressRepo mimics the two tables: flashcard attempts keyed by
// (study set, user, index), MCQ attempts as an append-only log.
type MockProgressRepo struct {
	flashcards map[string]*domain.FlashcardAttempt
	mcqs       []domain.MCQAttempt
	upsertErr  error
	insertErr  error
}

func NewMockProgressRepo() *MockProgressRepo {
	return &MockProgressRepo{flashcards: make(map[string]*domain.FlashcardAttempt)}
}

func flashcardKey(a *domain.FlashcardAttempt) string {
	return fmt.Sprintf("%s/%s/%d", a.StudySetID, a.UserID, a.FlashcardIndex)
}

func (m *MockProgressRepo) UpsertFlashcardAttempt(ctx context.Context, attempt *domain.FlashcardAttempt, token string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	copied := *attempt
	m.flashcards[flashcardKey(attempt)] = &copied
	return nil
}

func (m *MockProgressRepo) InsertMCQAttempt(ctx context.Context, attempt *domain.MCQAttempt, token string) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mcqs = append(m.mcqs, *attempt)
	return nil
}

func (m *MockProgressRepo) GetFlashcardAttempts(ctx context.Context, studySetID, userID string, token string) ([]domain.FlashcardAttempt, error) {
	var out []domain.FlashcardAttempt
	for _, a := range m.flashcards {
		if a.StudySetID == studySetID && a.UserID == userID {
			out = append(out, *a)
		}
	}
	// Ordered by index ascending, as the real query does.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].FlashcardIndex < out[i].FlashcardIndex {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *MockProgressRepo) GetMCQAttempts(ctx context.Context, studySetID, userID string, token string) ([]domain.MCQAttempt, error) {
	var out []domain.MCQAttempt
	for _, a := range m.mcqs {
		if a.StudySetID == studySetID && a.UserID == userID {
			out = append(out, a)
		}
	}
	// Ordered by attempted_at descending, as the real query does.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].AttemptedAt.After(out[i].AttemptedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func flashcardWrite(index int, correct bool) *domain.ProgressWriteRequest {
	return &domain.ProgressWriteRequest{
		Type:           domain.AttemptTypeFlashcard,
		FlashcardIndex: intPtr(index),
		Correct:        boolPtr(correct),
	}
}

func mcqWrite(index, selected int, correct bool) *domain.ProgressWriteRequest {
	return &domain.ProgressWriteRequest{
		Type:           domain.AttemptTypeMCQ,
		McqIndex:       intPtr(index),
		SelectedOption: intPtr(selected),
		Correct:        boolPtr(correct),
	}
}

func TestRecordAttempt_FlashcardOverwrites(t *testing.T) {
	repo := NewMockProgressRepo()
	svc := NewProgressService(repo, NewMockServiceLogger())
	ctx := context.Background()
	user := testUser()

	if err := svc.RecordAttempt(ctx, user, "set-1", flashcardWrite(2, false), "token"); err != nil {
		t.Fatalf("first attempt failed: %v", err)
	}
	if err := svc.RecordAttempt(ctx, user, "set-1", flashcardWrite(2, true), "token"); err != nil {
		t.Fatalf("second attempt failed: %v", err)
	}

	progress, err := svc.GetProgress(ctx, user, "set-1", "token")
	if err != nil {
		t.Fatalf("get progress failed: %v", err)
	}
	if len(progress.FlashcardProgress) != 1 {
		t.Fatalf("expected one row per flashcard index, got %d", len(progress.FlashcardProgress))
	}
	if !progress.FlashcardProgress[0].Correct {
		t.Fatal("expected latest attempt to win")
	}
}

func TestRecordAttempt_MCQAppendsHistory(t *testing.T) {
	repo := NewMockProgressRepo()
	svc := NewProgressService(repo, NewMockServiceLogger())
	ctx := context.Background()
	user := testUser()

	if err := svc.RecordAttempt(ctx, user, "set-1", mcqWrite(0, 1, false), "token"); err != nil {
		t.Fatalf("attempt failed: %v", err)
	}
	if err := svc.RecordAttempt(ctx, user, "set-1", mcqWrite(0, 2, false), "token"); err != nil {
		t.Fatalf("attempt failed: %v", err)
	}
	if err := svc.RecordAttempt(ctx, user, "set-1", mcqWrite(0, 3, true), "token"); err != nil {
		t.Fatalf("attempt failed: %v", err)
	}

	if len(repo.mcqs) != 3 {
		t.Fatalf("expected full attempt history retained, got %d rows", len(repo.mcqs))
	}

	progress, err := svc.GetProgress(ctx, user, "set-1", "token")
	if err != nil {
		t.Fatalf("get progress failed: %v", err)
	}
	if len(progress.McqProgress) != 1 {
		t.Fatalf("expected one row per mcq index, got %d", len(progress.McqProgress))
	}
	latest := progress.McqProgress[0]
	if latest.SelectedOption != 3 || !latest.Correct {
		t.Fatalf("expected most recent attempt, got %+v", latest)
	}
}

func TestGetProgress_McqRowsSortedByIndex(t *testing.T) {
	repo := NewMockProgressRepo()
	svc := NewProgressService(repo, NewMockServiceLogger())
	ctx := context.Background()
	user := testUser()

	for _, index := range []int{4, 1, 3} {
		if err := svc.RecordAttempt(ctx, user, "set-1", mcqWrite(index, 0, true), "token"); err != nil {
			t.Fatalf("attempt failed: %v", err)
		}
	}

	progress, err := svc.GetProgress(ctx, user, "set-1", "token")
	if err != nil {
		t.Fatalf("get progress failed: %v", err)
	}
	if len(progress.McqProgress) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(progress.McqProgress))
	}
	for i := 1; i < len(progress.McqProgress); i++ {
		if progress.McqProgress[i].Index <= progress.McqProgress[i-1].Index {
			t.Fatalf("expected rows sorted by index, got %+v", progress.McqProgress)
		}
	}
}

func TestGetProgress_AnonymousIsEmptyNotError(t *testing.T) {
	svc := NewProgressService(NewMockProgressRepo(), NewMockServiceLogger())

	progress, err := svc.GetProgress(context.Background(), nil, "set-1", "")
	if err != nil {
		t.Fatalf("expected empty progress for anonymous caller, got %v", err)
	}
	if progress.FlashcardProgress == nil || progress.McqProgress == nil {
		t.Fatal("expected non-nil empty slices so the response encodes as []")
	}
	if len(progress.FlashcardProgress) != 0 || len(progress.McqProgress) != 0 {
		t.Fatalf("expected empty progress, got %+v", progress)
	}
}

func TestRecordAttempt_AnonymousIsUnauthorized(t *testing.T) {
	svc := NewProgressService(NewMockProgressRepo(), NewMockServiceLogger())

	err := svc.RecordAttempt(context.Background(), nil, "set-1", flashcardWrite(0, true), "")
	if err == nil || !apperrors.IsType(err, apperrors.ErrorTypeUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Sign in to save progress") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRecordAttempt_ValidatesRequestShape(t *testing.T) {
	svc := NewProgressService(NewMockProgressRepo(), NewMockServiceLogger())
	ctx := context.Background()
	user := testUser()

	cases := map[string]*domain.ProgressWriteRequest{
		"missing correct":         {Type: domain.AttemptTypeFlashcard, FlashcardIndex: intPtr(0)},
		"missing flashcard index": {Type: domain.AttemptTypeFlashcard, Correct: boolPtr(true)},
		"missing mcq index":       {Type: domain.AttemptTypeMCQ, SelectedOption: intPtr(0), Correct: boolPtr(true)},
		"missing selected option": {Type: domain.AttemptTypeMCQ, McqIndex: intPtr(0), Correct: boolPtr(true)},
		"unknown type":            {Type: "quiz", Correct: boolPtr(true)},
	}
	for name, req := range cases {
		if err := svc.RecordAttempt(ctx, user, "set-1", req, "token"); err == nil || !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestRecordAttempt_RepoErrorsSurface(t *testing.T) {
	repo := NewMockProgressRepo()
	repo.upsertErr = errors.New("rls rejected upsert")
	repo.insertErr = errors.New("rls rejected insert")
	svc := NewProgressService(repo, NewMockServiceLogger())
	ctx := context.Background()
	user := testUser()

	if err := svc.RecordAttempt(ctx, user, "set-1", flashcardWrite(0, true), "token"); err == nil {
		t.Fatal("expected flashcard repo error to surface")
	}
	if err := svc.RecordAttempt(ctx, user, "set-1", mcqWrite(0, 0, true), "token"); err == nil {
		t.Fatal("expected mcq repo error to surface")
	}
}

func TestRecordAttempt_TimestampsStrictlyIncrease(t *testing.T) {
	repo := NewMockProgressRepo()
	svc := NewProgressService(repo, NewMockServiceLogger())
	ctx := context.Background()
	user := testUser()

	for i := 0; i < 5; i++ {
		if err := svc.RecordAttempt(ctx, user, "set-1", mcqWrite(0, i%4, false), "token"); err != nil {
			t.Fatalf("attempt %d failed: %v", i, err)
		}
	}

	for i := 1; i < len(repo.mcqs); i++ {
		if !repo.mcqs[i].AttemptedAt.After(repo.mcqs[i-1].AttemptedAt) {
			t.Fatalf("expected strictly increasing timestamps, got %v then %v",
				repo.mcqs[i-1].AttemptedAt, repo.mcqs[i].AttemptedAt)
		}
	}
}
