package service

import (
	"bytes"
	"fmt"

	"github.com/Emil0510/learn-ai/internal/domain"
	apperrors "github.com/Emil0510/learn-ai/pkg/errors"
)

const pdfContentType = "application/pdf"

// pdfSignature is the magic-byte prefix every real PDF starts with. The
// declared media type is client-supplied and untrustworthy; this is the only
// real guard against spoofed uploads reaching the rasterizer.
var pdfSignature = []byte("%PDF")

// UploadValidator rejects malformed or oversized uploads before any
// expensive work happens. Checks run in order and short-circuit on the
// first failure; validation has no side effects.
type UploadValidator struct {
	maxSize int64
}

// NewUploadValidator creates a validator with the given size cap in bytes.
func NewUploadValidator(maxSize int64) *UploadValidator {
	return &UploadValidator{maxSize: maxSize}
}

// Validate checks one uploaded document. It returns nil or a validation
// AppError describing the specific rejection reason.
func (v *UploadValidator) Validate(doc *domain.UploadedDocument) error {
	if doc == nil || len(doc.Data) == 0 {
		return apperrors.NewValidationError("No file provided.")
	}
	if doc.ContentType != pdfContentType {
		return apperrors.NewValidationError("Only PDF files are supported.")
	}
	if doc.Size > v.maxSize || int64(len(doc.Data)) > v.maxSize {
		return apperrors.NewValidationError(fmt.Sprintf("File size must be under %dMB.", v.maxSize>>20))
	}
	if len(doc.Data) < 5 || !bytes.HasPrefix(doc.Data, pdfSignature) {
		return apperrors.NewValidationError("The file doesn't appear to be a valid PDF.")
	}
	return nil
}
