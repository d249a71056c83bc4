package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Emil0510/learn-ai/internal/domain"
	apperrors "github.com/Emil0510/learn-ai/pkg/errors"

	"golang.org/x/sync/errgroup"
)

var (
	pdfSuffixRe  = regexp.MustCompile(`(?i)\.pdf$`)
	separatorRe  = regexp.MustCompile(`[-_]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// GenerationService runs the full study-set pipeline: validate the upload,
// rasterize the pages, fan out to the two vision agents, bound the results,
// and persist the study set when the caller is signed in.
type GenerationService struct {
	validator  *UploadValidator
	rasterizer domain.PageRasterizer
	model      domain.VisionModel
	storage    domain.StorageService
	repo       domain.StudySetRepository
	logger     domain.Logger
	maxPages   int
	scale      float64
	timeout    time.Duration
}

func NewGenerationService(
	validator *UploadValidator,
	rasterizer domain.PageRasterizer,
	model domain.VisionModel,
	storage domain.StorageService,
	repo domain.StudySetRepository,
	logger domain.Logger,
	maxPages int,
	scale float64,
	timeout time.Duration,
) *GenerationService {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if scale <= 0 {
		scale = 1.0
	}
	return &GenerationService{
		validator:  validator,
		rasterizer: rasterizer,
		model:      model,
		storage:    storage,
		repo:       repo,
		logger:     logger,
		maxPages:   maxPages,
		scale:      scale,
		timeout:    timeout,
	}
}

// Generate processes an uploaded PDF into flashcards, MCQs and a conspect.
// Persistence is best-effort: storage or database failures downgrade the
// response (nil studySetId, nil pdfUrl) instead of failing the request.
func (s *GenerationService) Generate(ctx context.Context, owner *domain.SupabaseUser, doc *domain.UploadedDocument, token string) (*domain.GenerateResponse, error) {
	if err := s.validator.Validate(doc); err != nil {
		return nil, err
	}

	pages, err := s.rasterizer.Rasterize(doc.Data, s.scale, s.maxPages)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Rasterized PDF", "file", doc.FileName, "pages", len(pages))

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		flashcards []domain.Flashcard
		mcqs       []domain.MCQ
		conspect   string
	)

	g, gctx := errgroup.WithContext(genCtx)
	g.Go(func() error {
		var err error
		flashcards, mcqs, err = s.callCoverageAgent(gctx, pages)
		return err
	})
	g.Go(func() error {
		var err error
		conspect, err = s.callOutlineAgent(gctx, pages)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewNetworkError("AI generation timed out. Please try again.", err)
		}
		return nil, err
	}

	if len(flashcards) == 0 || len(mcqs) == 0 {
		s.logger.Warn("Generation yielded insufficient material",
			"file", doc.FileName, "flashcards", len(flashcards), "mcqs", len(mcqs))
		return nil, apperrors.NewInsufficientMaterialError(
			"The document doesn't contain enough material to generate a study set.")
	}

	title := DeriveTitle(doc.FileName)

	resp := &domain.GenerateResponse{
		Flashcards: flashcards,
		MCQs:       mcqs,
		Conspect:   conspect,
		Title:      title,
	}

	// Persistence runs for anonymous callers too; the study set row just has
	// no owner. Storage goes through the service-role client, so no caller
	// identity is needed there either.
	pdfURL := s.persistPDF(ctx, doc)
	resp.PDFURL = pdfURL

	set := &domain.StudySet{
		Title:         title,
		PDFURL:        pdfURL,
		Flashcards:    flashcards,
		MCQs:          mcqs,
		RevisionSheet: conspect,
	}
	if owner != nil {
		set.UserID = &owner.ID
	}
	if err := s.repo.Create(set, token); err != nil {
		s.logger.Error("Failed to save study set", err, "title", title)
	} else {
		resp.StudySetID = &set.ID
	}

	s.logger.Info("Generation completed", "title", title,
		"flashcards", len(flashcards), "mcqs", len(mcqs), "saved", resp.StudySetID != nil)
	return resp, nil
}

func (s *GenerationService) callCoverageAgent(ctx context.Context, pages []domain.PageImage) ([]domain.Flashcard, []domain.MCQ, error) {
	raw, err := s.model.GenerateContent(ctx, domain.VisionRequest{
		System:          coverageSystemPrompt,
		Prompt:          coveragePrompt(len(pages)),
		Pages:           pages,
		Temperature:     coverageTemperature,
		MaxOutputTokens: coverageMaxOutputTokens,
	})
	if err != nil {
		return nil, nil, err
	}

	var payload coveragePayload
	if err := ParseAgentJSON(raw, &payload); err != nil {
		s.logger.Warn("Coverage agent returned unparseable JSON", "error", err)
		return nil, nil, nil
	}
	return boundFlashcards(payload.Flashcards), boundMCQs(payload.MCQs), nil
}

func (s *GenerationService) callOutlineAgent(ctx context.Context, pages []domain.PageImage) (string, error) {
	raw, err := s.model.GenerateContent(ctx, domain.VisionRequest{
		System:          outlineSystemPrompt,
		Prompt:          outlinePrompt(len(pages)),
		Pages:           pages,
		Temperature:     outlineTemperature,
		MaxOutputTokens: outlineMaxOutputTokens,
	})
	if err != nil {
		return "", err
	}

	var payload outlinePayload
	if err := ParseAgentJSON(raw, &payload); err != nil {
		s.logger.Warn("Outline agent returned unparseable JSON", "error", err)
		return "", nil
	}
	return boundOutline(payload.Conspect), nil
}

// persistPDF uploads the original document to storage. Failures are logged
// and swallowed so a storage outage never blocks a successful generation.
func (s *GenerationService) persistPDF(ctx context.Context, doc *domain.UploadedDocument) *string {
	if s.storage == nil {
		return nil
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(),
		whitespaceRe.ReplaceAllString(doc.FileName, "_"))
	url, err := s.storage.Upload(ctx, name, doc.Data, doc.ContentType)
	if err != nil {
		s.logger.Error("Failed to upload PDF to storage", err, "file", doc.FileName)
		return nil
	}
	return &url
}

// DeriveTitle turns an uploaded filename into a display title: the .pdf
// extension is stripped and dashes and underscores become spaces.
func DeriveTitle(fileName string) string {
	title := pdfSuffixRe.ReplaceAllString(fileName, "")
	title = separatorRe.ReplaceAllString(title, " ")
	return title
}
