package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/Emil0510/learn-ai/pkg/errors"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusTeapot, "nope")

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type application/json, got %s", ct)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"error":"nope"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteAppError_MapsStatusAndType(t *testing.T) {
	rr := httptest.NewRecorder()
	writeAppError(rr, apperrors.NewInsufficientMaterialError("not enough material"))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"type":"insufficient_material"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"error":"not enough material"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestWriteAppError_UnknownErrorIs500(t *testing.T) {
	rr := httptest.NewRecorder()
	writeAppError(rr, errors.New("something broke"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "something broke") {
		t.Fatalf("expected internal details hidden, got %s", rr.Body.String())
	}
}
