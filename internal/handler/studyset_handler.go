package handler

import (
	"net/http"

	"github.com/Emil0510/learn-ai/internal/domain"

	"github.com/gorilla/mux"
)

// StudySetHandler handles study-set read requests
type StudySetHandler struct {
	studySetService domain.StudySetService
	logger          domain.Logger
}

// NewStudySetHandler creates a new study set handler
func NewStudySetHandler(studySetService domain.StudySetService, logger domain.Logger) *StudySetHandler {
	return &StudySetHandler{
		studySetService: studySetService,
		logger:          logger,
	}
}

// GetStudySets lists the caller's study sets, newest first
func (h *StudySetHandler) GetStudySets(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	token, _ := GetTokenFromContext(r)

	sets, err := h.studySetService.GetStudySetsByUserID(user.ID, token)
	if err != nil {
		h.logger.Error("Failed to list study sets", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve study sets")
		return
	}

	writeJSON(w, http.StatusOK, sets)
}

// GetStudySet returns one study set by ID
func (h *StudySetHandler) GetStudySet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "Study set ID is required")
		return
	}
	token, _ := GetTokenFromContext(r)

	set, err := h.studySetService.GetStudySet(id, token)
	if err != nil {
		if err == domain.ErrStudySetNotFound {
			writeError(w, http.StatusNotFound, "Study set not found")
			return
		}
		h.logger.Error("Failed to get study set", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve study set")
		return
	}

	writeJSON(w, http.StatusOK, set)
}
