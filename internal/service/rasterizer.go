package service

import (
	"bytes"
	"image/png"

	"github.com/Emil0510/learn-ai/internal/domain"
	apperrors "github.com/Emil0510/learn-ai/pkg/errors"

	"github.com/gen2brain/go-fitz"
)

// DefaultMaxPages bounds how many pages are rasterized per request.
const DefaultMaxPages = 10

// baseDPI at scale 1.0. PDF user space is 72 points per inch, so scale 1.0
// renders pages at their nominal size, which keeps the image payload small
// enough for low-fidelity vision input.
const baseDPI = 72

// FitzRasterizer implements domain.PageRasterizer with go-fitz (MuPDF).
type FitzRasterizer struct {
	logger domain.Logger
}

// NewFitzRasterizer creates a new rasterizer
func NewFitzRasterizer(logger domain.Logger) *FitzRasterizer {
	return &FitzRasterizer{logger: logger}
}

// Rasterize renders up to maxPages pages as PNG images. Rendering stops as
// soon as the cap is reached; pages past the cap are never touched. Failure
// to open the stream, or zero renderable pages, surfaces as one processing
// error; a single bad page in an otherwise readable document is skipped.
func (r *FitzRasterizer) Rasterize(data []byte, scale float64, maxPages int) ([]domain.PageImage, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, apperrors.NewProcessingError("Could not process PDF. Please try again.", err)
	}
	defer doc.Close()

	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if scale <= 0 {
		scale = 1.0
	}

	numPages := doc.NumPage()
	if numPages > maxPages {
		numPages = maxPages
	}

	pages := make([]domain.PageImage, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		img, err := doc.ImageDPI(pageNum, baseDPI*scale)
		if err != nil {
			r.logger.Warn("Failed to render page", "page", pageNum+1, "error", err)
			continue
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			r.logger.Warn("Failed to encode page", "page", pageNum+1, "error", err)
			continue
		}

		pages = append(pages, domain.PageImage{Index: pageNum, PNG: buf.Bytes()})
	}

	if len(pages) == 0 {
		return nil, apperrors.NewProcessingError("Could not process PDF pages. Please try again.", nil)
	}

	r.logger.Debug("Rasterized PDF", "pages", len(pages), "total_pages", doc.NumPage())
	return pages, nil
}
