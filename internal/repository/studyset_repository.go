package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Emil0510/learn-ai/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseStudySetRepository implements the domain.StudySetRepository interface
type SupabaseStudySetRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseStudySetRepository creates a new Supabase study set repository
func NewSupabaseStudySetRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.StudySetRepository {
	return &SupabaseStudySetRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Create inserts a study set row and fills in set.ID from the response.
// The payloads are passed as structs so the client serializes them as JSONB.
func (r *SupabaseStudySetRepository) Create(set *domain.StudySet, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	data := map[string]interface{}{
		"title":          set.Title,
		"flashcards":     set.Flashcards,
		"mcqs":           set.MCQs,
		"revision_sheet": set.RevisionSheet,
	}
	// created_at defaults to now() in the database; only override when set.
	if !set.CreatedAt.IsZero() {
		data["created_at"] = set.CreatedAt
	}
	// null owner is a valid state (anonymous generation); only set when present.
	if set.UserID != nil {
		data["user_id"] = *set.UserID
	}
	if set.PDFURL != nil {
		data["pdf_url"] = *set.PDFURL
	}

	resp, _, err := client.From("study_sets").Insert(data, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create study set: %w", err)
	}

	var result []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result) > 0 {
		set.ID = result[0].ID
	}

	r.logger.Info("Study set created", "id", set.ID, "title", set.Title)
	return nil
}

// GetByID retrieves a study set by ID
func (r *SupabaseStudySetRepository) GetByID(id string, token string) (*domain.StudySet, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	resp, _, err := client.From("study_sets").
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get study set: %w", err)
	}

	var sets []domain.StudySet
	if err := json.Unmarshal(resp, &sets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(sets) == 0 {
		return nil, domain.ErrStudySetNotFound
	}
	return &sets[0], nil
}

// GetByUserID retrieves all study sets owned by a user, newest first
func (r *SupabaseStudySetRepository) GetByUserID(userID string, token string) ([]*domain.StudySet, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	resp, _, err := client.From("study_sets").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get study sets: %w", err)
	}

	var rows []domain.StudySet
	if err := json.Unmarshal(resp, &rows); err != nil {
		// Some deployments store the payloads as JSON strings instead of
		// JSONB; fall back to per-row decoding so one bad row isn't fatal.
		return r.decodeRowsLoose(resp)
	}

	sets := make([]*domain.StudySet, 0, len(rows))
	for i := range rows {
		sets = append(sets, &rows[i])
	}
	return sets, nil
}

func (r *SupabaseStudySetRepository) decodeRowsLoose(resp []byte) ([]*domain.StudySet, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(resp, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var sets []*domain.StudySet
	for _, row := range raw {
		var set domain.StudySet
		if err := json.Unmarshal(row, &set); err != nil {
			r.logger.Warn("Failed to decode study set row", "error", err, "row", truncateForLog(string(row)))
			continue
		}
		sets = append(sets, &set)
	}
	return sets, nil
}

func truncateForLog(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
