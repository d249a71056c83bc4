package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Emil0510/learn-ai/internal/domain"

	"github.com/gorilla/mux"
)

// ProgressHandler handles study-progress read and write requests
type ProgressHandler struct {
	progressService domain.ProgressService
	logger          domain.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService domain.ProgressService, logger domain.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		logger:          logger,
	}
}

// GetProgress returns the caller's progress for a study set. Anonymous
// callers get empty progress, not an error.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	studySetID := mux.Vars(r)["id"]
	if studySetID == "" {
		writeError(w, http.StatusBadRequest, "Study set ID is required")
		return
	}

	user, _ := GetUserFromContext(r)
	token, _ := GetTokenFromContext(r)

	progress, err := h.progressService.GetProgress(r.Context(), user, studySetID, token)
	if err != nil {
		h.logger.Error("Failed to get progress", err, "study_set_id", studySetID)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve progress")
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// RecordAttempt saves one flashcard or MCQ attempt
func (h *ProgressHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	studySetID := mux.Vars(r)["id"]
	if studySetID == "" {
		writeError(w, http.StatusBadRequest, "Study set ID is required")
		return
	}

	var req domain.ProgressWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, _ := GetUserFromContext(r)
	token, _ := GetTokenFromContext(r)

	if err := h.progressService.RecordAttempt(r.Context(), user, studySetID, &req, token); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
