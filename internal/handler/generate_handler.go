package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/Emil0510/learn-ai/internal/domain"
)

// GenerateHandler handles study-set generation requests
type GenerateHandler struct {
	generationService domain.GenerationService
	logger            domain.Logger
	maxUploadSize     int64
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(generationService domain.GenerationService, logger domain.Logger, maxUploadSize int64) *GenerateHandler {
	return &GenerateHandler{
		generationService: generationService,
		logger:            logger,
		maxUploadSize:     maxUploadSize,
	}
}

// Generate accepts a multipart PDF upload and responds with the generated
// study set. Works for both signed-in and anonymous callers; only signed-in
// callers get their set persisted.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	// Slack on top of the cap so the validator, not the multipart reader,
	// produces the size error message.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", err, "file", header.Filename)
		writeError(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	doc := &domain.UploadedDocument{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		FileName:    filepath.Base(header.Filename),
	}

	user, _ := GetUserFromContext(r)
	token, _ := GetTokenFromContext(r)

	requestID, _ := GetRequestIDFromContext(r)

	resp, err := h.generationService.Generate(r.Context(), user, doc, token)
	if err != nil {
		h.logger.Warn("Generation request failed", "request_id", requestID, "file", doc.FileName, "error", err)
		writeAppError(w, err)
		return
	}

	h.logger.Info("Generation request completed", "request_id", requestID, "title", resp.Title)
	writeJSON(w, http.StatusOK, resp)
}
