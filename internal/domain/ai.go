package domain

import "context"

// VisionRequest is one round-trip to the LLM vision service: system
// instructions, a task prompt, the shared page images, and generation
// parameters. The service is expected to answer with JSON, but the response
// text is untrusted and goes through repair before parsing.
type VisionRequest struct {
	System          string
	Prompt          string
	Pages           []PageImage
	Temperature     float32
	MaxOutputTokens int32
}

// VisionModel is the LLM vision collaborator. GenerateContent returns the raw
// response text.
type VisionModel interface {
	GenerateContent(ctx context.Context, req VisionRequest) (string, error)
}

// GenerationService runs the full generation pipeline: validation,
// rasterization, concurrent agent calls, parsing/bounding, and persistence.
type GenerationService interface {
	Generate(ctx context.Context, owner *SupabaseUser, doc *UploadedDocument, token string) (*GenerateResponse, error)
}
