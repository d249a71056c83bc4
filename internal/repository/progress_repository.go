package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Emil0510/learn-ai/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseProgressRepository implements the domain.ProgressRepository
// interface over the flashcard_answers and mcq_answers tables.
type SupabaseProgressRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseProgressRepository creates a new Supabase progress repository
func NewSupabaseProgressRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.ProgressRepository {
	return &SupabaseProgressRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// UpsertFlashcardAttempt records the current answer for one flashcard.
// The conflict key makes a repeat attempt overwrite the previous row.
func (r *SupabaseProgressRepository) UpsertFlashcardAttempt(ctx context.Context, attempt *domain.FlashcardAttempt, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	data := map[string]interface{}{
		"study_set_id":    attempt.StudySetID,
		"user_id":         attempt.UserID,
		"flashcard_index": attempt.FlashcardIndex,
		"correct":         attempt.Correct,
		"attempted_at":    attempt.AttemptedAt.Format(time.RFC3339Nano),
	}

	_, _, err = client.From("flashcard_answers").
		Insert(data, true, "study_set_id,user_id,flashcard_index", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert flashcard attempt: %w", err)
	}
	return nil
}

// InsertMCQAttempt appends one MCQ answer. Rows are never updated; the full
// history stays in storage.
func (r *SupabaseProgressRepository) InsertMCQAttempt(ctx context.Context, attempt *domain.MCQAttempt, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	data := map[string]interface{}{
		"study_set_id":    attempt.StudySetID,
		"user_id":         attempt.UserID,
		"mcq_index":       attempt.MCQIndex,
		"selected_option": attempt.SelectedOption,
		"correct":         attempt.Correct,
		"attempted_at":    attempt.AttemptedAt.Format(time.RFC3339Nano),
	}

	_, _, err = client.From("mcq_answers").Insert(data, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to insert mcq attempt: %w", err)
	}
	return nil
}

// GetFlashcardAttempts returns the user's flashcard state for a study set,
// one row per index, ordered by index ascending.
func (r *SupabaseProgressRepository) GetFlashcardAttempts(ctx context.Context, studySetID, userID string, token string) ([]domain.FlashcardAttempt, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	resp, _, err := client.From("flashcard_answers").
		Select("flashcard_index, correct, attempted_at", "", false).
		Eq("study_set_id", studySetID).
		Eq("user_id", userID).
		Order("flashcard_index", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcard attempts: %w", err)
	}

	var attempts []domain.FlashcardAttempt
	if err := json.Unmarshal(resp, &attempts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return attempts, nil
}

// GetMCQAttempts returns the user's full MCQ attempt history for a study set,
// ordered by attempted_at descending so the first row per index is the most
// recent attempt.
func (r *SupabaseProgressRepository) GetMCQAttempts(ctx context.Context, studySetID, userID string, token string) ([]domain.MCQAttempt, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	resp, _, err := client.From("mcq_answers").
		Select("mcq_index, selected_option, correct, attempted_at", "", false).
		Eq("study_set_id", studySetID).
		Eq("user_id", userID).
		Order("attempted_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get mcq attempts: %w", err)
	}

	var attempts []domain.MCQAttempt
	if err := json.Unmarshal(resp, &attempts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return attempts, nil
}
