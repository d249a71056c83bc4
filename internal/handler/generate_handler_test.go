package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/Emil0510/learn-ai/internal/domain"
	apperrors "github.com/Emil0510/learn-ai/pkg/errors"
)

const handlerMaxUploadSize = 10 * 1024 * 1024

func multipartPDFRequest(t *testing.T, fieldName, fileName, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func withUser(r *http.Request, user *domain.SupabaseUser, token string) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	ctx = context.WithValue(ctx, tokenContextKey, token)
	return r.WithContext(ctx)
}

func TestGenerateHandler_Success(t *testing.T) {
	setID := "set-1"
	svc := &MockGenerationService{resp: &domain.GenerateResponse{
		Flashcards: []domain.Flashcard{{Question: "q", Answer: "a"}},
		MCQs:       []domain.MCQ{{Question: "q", Options: []string{"a", "b"}, Correct: 0, Explanation: "e"}},
		Conspect:   "## Notes",
		StudySetID: &setID,
		Title:      "lecture",
	}}
	h := NewGenerateHandler(svc, NewMockHandlerLogger(), handlerMaxUploadSize)

	req := multipartPDFRequest(t, "file", "lecture.pdf", "application/pdf", []byte("%PDF-1.7 data"))
	req = withUser(req, &domain.SupabaseUser{ID: "user-1"}, "token")
	rr := httptest.NewRecorder()

	h.Generate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp domain.GenerateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StudySetID == nil || *resp.StudySetID != "set-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if svc.calls != 1 {
		t.Fatalf("expected one service call, got %d", svc.calls)
	}
	if svc.lastDoc.FileName != "lecture.pdf" || svc.lastDoc.ContentType != "application/pdf" {
		t.Fatalf("unexpected document passed to service: %+v", svc.lastDoc)
	}
	if svc.lastUser == nil || svc.lastUser.ID != "user-1" {
		t.Fatalf("expected user forwarded to service, got %+v", svc.lastUser)
	}
}

func TestGenerateHandler_AnonymousCallerForwardsNilUser(t *testing.T) {
	svc := &MockGenerationService{resp: &domain.GenerateResponse{Title: "t"}}
	h := NewGenerateHandler(svc, NewMockHandlerLogger(), handlerMaxUploadSize)

	req := multipartPDFRequest(t, "file", "notes.pdf", "application/pdf", []byte("%PDF-1.7"))
	rr := httptest.NewRecorder()

	h.Generate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if svc.lastUser != nil {
		t.Fatalf("expected nil user for anonymous request, got %+v", svc.lastUser)
	}
}

func TestGenerateHandler_MissingFileField(t *testing.T) {
	svc := &MockGenerationService{}
	h := NewGenerateHandler(svc, NewMockHandlerLogger(), handlerMaxUploadSize)

	req := multipartPDFRequest(t, "document", "notes.pdf", "application/pdf", []byte("%PDF-1.7"))
	rr := httptest.NewRecorder()

	h.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "No file provided.") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
	if svc.calls != 0 {
		t.Fatal("expected service untouched when file field missing")
	}
}

func TestGenerateHandler_NonMultipartBody(t *testing.T) {
	h := NewGenerateHandler(&MockGenerationService{}, NewMockHandlerLogger(), handlerMaxUploadSize)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(`{"file":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGenerateHandler_ServiceErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", apperrors.NewValidationError("Only PDF files are supported."), http.StatusBadRequest, "validation"},
		{"processing", apperrors.NewProcessingError("Could not process PDF. Please try again.", nil), http.StatusUnprocessableEntity, "processing"},
		{"insufficient", apperrors.NewInsufficientMaterialError("The document doesn't contain enough material to generate a study set."), http.StatusUnprocessableEntity, "insufficient_material"},
		{"network", apperrors.NewNetworkError("AI generation failed. Please try again.", nil), http.StatusServiceUnavailable, "network"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewGenerateHandler(&MockGenerationService{err: tc.err}, NewMockHandlerLogger(), handlerMaxUploadSize)

			req := multipartPDFRequest(t, "file", "notes.pdf", "application/pdf", []byte("%PDF-1.7"))
			rr := httptest.NewRecorder()

			h.Generate(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
			if !strings.Contains(rr.Body.String(), `"type":"`+tc.wantType+`"`) {
				t.Fatalf("expected error type %s in body: %s", tc.wantType, rr.Body.String())
			}
		})
	}
}
