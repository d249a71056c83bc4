package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Emil0510/learn-ai/internal/domain"
	apperrors "github.com/Emil0510/learn-ai/pkg/errors"

	"golang.org/x/sync/errgroup"
)

// ProgressService records study attempts and assembles per-user progress.
// Attempt timestamps are issued from a mutex-guarded monotonic clock so two
// attempts recorded in quick succession never share a timestamp, which keeps
// "most recent attempt per MCQ" well defined.
type ProgressService struct {
	repo   domain.ProgressRepository
	logger domain.Logger

	mu   sync.Mutex
	last time.Time
}

func NewProgressService(repo domain.ProgressRepository, logger domain.Logger) *ProgressService {
	return &ProgressService{repo: repo, logger: logger}
}

func (s *ProgressService) nextTimestamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Millisecond)
	}
	s.last = now
	return now
}

// GetProgress returns the caller's flashcard and MCQ progress for one study
// set. Anonymous callers get empty progress rather than an error.
func (s *ProgressService) GetProgress(ctx context.Context, user *domain.SupabaseUser, studySetID, token string) (*domain.StudyProgress, error) {
	progress := &domain.StudyProgress{
		FlashcardProgress: []domain.FlashcardProgressItem{},
		McqProgress:       []domain.McqProgressItem{},
	}
	if user == nil {
		return progress, nil
	}

	var (
		flashcardAttempts []domain.FlashcardAttempt
		mcqAttempts       []domain.MCQAttempt
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flashcardAttempts, err = s.repo.GetFlashcardAttempts(gctx, studySetID, user.ID, token)
		return err
	})
	g.Go(func() error {
		var err error
		mcqAttempts, err = s.repo.GetMCQAttempts(gctx, studySetID, user.ID, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, attempt := range flashcardAttempts {
		progress.FlashcardProgress = append(progress.FlashcardProgress, domain.FlashcardProgressItem{
			Index:   attempt.FlashcardIndex,
			Correct: attempt.Correct,
		})
	}

	// Attempts arrive newest first; the first row seen for an index is the
	// latest attempt for that question.
	seen := make(map[int]bool)
	for _, attempt := range mcqAttempts {
		if seen[attempt.MCQIndex] {
			continue
		}
		seen[attempt.MCQIndex] = true
		progress.McqProgress = append(progress.McqProgress, domain.McqProgressItem{
			Index:          attempt.MCQIndex,
			SelectedOption: attempt.SelectedOption,
			Correct:        attempt.Correct,
		})
	}
	sort.Slice(progress.McqProgress, func(i, j int) bool {
		return progress.McqProgress[i].Index < progress.McqProgress[j].Index
	})

	return progress, nil
}

// RecordAttempt persists one attempt. Flashcard attempts overwrite any
// previous attempt for the same card; MCQ attempts are append-only history.
func (s *ProgressService) RecordAttempt(ctx context.Context, user *domain.SupabaseUser, studySetID string, req *domain.ProgressWriteRequest, token string) error {
	if user == nil {
		return apperrors.NewUnauthorizedError("Sign in to save progress")
	}
	if req == nil || req.Correct == nil {
		return apperrors.NewValidationError("Missing required field: correct")
	}

	switch req.Type {
	case domain.AttemptTypeFlashcard:
		if req.FlashcardIndex == nil {
			return apperrors.NewValidationError("Missing required field: flashcardIndex")
		}
		attempt := &domain.FlashcardAttempt{
			StudySetID:     studySetID,
			UserID:         user.ID,
			FlashcardIndex: *req.FlashcardIndex,
			Correct:        *req.Correct,
			AttemptedAt:    s.nextTimestamp(),
		}
		if err := s.repo.UpsertFlashcardAttempt(ctx, attempt, token); err != nil {
			s.logger.Error("Failed to save flashcard attempt", err, "study_set_id", studySetID)
			return err
		}
		return nil

	case domain.AttemptTypeMCQ:
		if req.McqIndex == nil {
			return apperrors.NewValidationError("Missing required field: mcqIndex")
		}
		if req.SelectedOption == nil {
			return apperrors.NewValidationError("Missing required field: selectedOption")
		}
		attempt := &domain.MCQAttempt{
			StudySetID:     studySetID,
			UserID:         user.ID,
			MCQIndex:       *req.McqIndex,
			SelectedOption: *req.SelectedOption,
			Correct:        *req.Correct,
			AttemptedAt:    s.nextTimestamp(),
		}
		if err := s.repo.InsertMCQAttempt(ctx, attempt, token); err != nil {
			s.logger.Error("Failed to save mcq attempt", err, "study_set_id", studySetID)
			return err
		}
		return nil

	default:
		return apperrors.NewValidationError("Invalid attempt type. Must be 'flashcard' or 'mcq'.")
	}
}
