package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Emil0510/learn-ai/internal/domain"
	apperrors "github.com/Emil0510/learn-ai/pkg/errors"
)

type contextKey string

const (
	userContextKey      contextKey = "user"
	tokenContextKey     contextKey = "token"
	requestIDContextKey contextKey = "request_id"
)

// GetRequestIDFromContext extracts the request ID assigned by the middleware
func GetRequestIDFromContext(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(requestIDContextKey).(string)
	return requestID, ok
}

// GetUserFromContext extracts the authenticated user from request context.
// ok is false for anonymous requests.
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetTokenFromContext extracts the bearer token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps an application error to its HTTP status and body.
// Unknown error types are reported as a generic 500.
func writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		writeJSON(w, appErr.StatusCode, map[string]string{
			"error": appErr.Message,
			"type":  string(appErr.Type),
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
