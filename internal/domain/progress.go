package domain

import (
	"context"
	"time"
)

// FlashcardAttempt is a user's current answer state for one flashcard.
// Exactly one row exists per (study_set_id, user_id, flashcard_index);
// recording a new attempt overwrites the previous one.
type FlashcardAttempt struct {
	StudySetID     string    `json:"study_set_id"`
	UserID         string    `json:"user_id"`
	FlashcardIndex int       `json:"flashcard_index"`
	Correct        bool      `json:"correct"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// MCQAttempt is one recorded MCQ answer. Attempts are append-only: every
// answer is retained, and "current" state is the most recent attempt per index.
type MCQAttempt struct {
	StudySetID     string    `json:"study_set_id"`
	UserID         string    `json:"user_id"`
	MCQIndex       int       `json:"mcq_index"`
	SelectedOption int       `json:"selected_option"`
	Correct        bool      `json:"correct"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// FlashcardProgressItem is the read shape for one flashcard's current state.
type FlashcardProgressItem struct {
	Index   int  `json:"index"`
	Correct bool `json:"correct"`
}

// McqProgressItem is the read shape for one MCQ's most recent attempt.
type McqProgressItem struct {
	Index          int  `json:"index"`
	SelectedOption int  `json:"selectedOption"`
	Correct        bool `json:"correct"`
}

// StudyProgress is the payload returned by the progress read endpoint.
type StudyProgress struct {
	FlashcardProgress []FlashcardProgressItem `json:"flashcardProgress"`
	McqProgress       []McqProgressItem       `json:"mcqProgress"`
}

// Progress write request types.
const (
	AttemptTypeFlashcard = "flashcard"
	AttemptTypeMCQ       = "mcq"
)

// ProgressWriteRequest is the tagged body of a progress write. Pointer fields
// distinguish "absent" from zero values during validation.
type ProgressWriteRequest struct {
	Type           string `json:"type"`
	FlashcardIndex *int   `json:"flashcardIndex,omitempty"`
	McqIndex       *int   `json:"mcqIndex,omitempty"`
	SelectedOption *int   `json:"selectedOption,omitempty"`
	Correct        *bool  `json:"correct,omitempty"`
}

// ProgressRepository defines persistence for study attempts.
type ProgressRepository interface {
	UpsertFlashcardAttempt(ctx context.Context, attempt *FlashcardAttempt, token string) error
	InsertMCQAttempt(ctx context.Context, attempt *MCQAttempt, token string) error
	// GetFlashcardAttempts returns one row per index, ordered by index ascending.
	GetFlashcardAttempts(ctx context.Context, studySetID, userID string, token string) ([]FlashcardAttempt, error)
	// GetMCQAttempts returns the full history ordered by attempted_at descending.
	GetMCQAttempts(ctx context.Context, studySetID, userID string, token string) ([]MCQAttempt, error)
}

// ProgressService defines the use-case operations for study progress.
type ProgressService interface {
	GetProgress(ctx context.Context, user *SupabaseUser, studySetID string, token string) (*StudyProgress, error)
	RecordAttempt(ctx context.Context, user *SupabaseUser, studySetID string, req *ProgressWriteRequest, token string) error
}
