package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Emil0510/learn-ai/internal/domain"
	apperrors "github.com/Emil0510/learn-ai/pkg/errors"

	"cloud.google.com/go/vertexai/genai"
)

const visionModelName = "gemini-2.0-flash-001"

// VertexVisionModel implements domain.VisionModel against Vertex AI Gemini.
type VertexVisionModel struct {
	client *genai.Client
	logger domain.Logger
}

// NewVertexVisionModel creates a Vertex AI backed vision model client.
func NewVertexVisionModel(ctx context.Context, projectID, location string, logger domain.Logger) (*VertexVisionModel, error) {
	client, err := genai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}
	return &VertexVisionModel{client: client, logger: logger}, nil
}

// GenerateContent performs one vision round-trip: system instructions, the
// task prompt, and the page images, with JSON output requested. The raw
// response text is returned untouched; repair and parsing happen downstream.
func (m *VertexVisionModel) GenerateContent(ctx context.Context, req domain.VisionRequest) (string, error) {
	model := m.client.GenerativeModel(visionModelName)
	model.SetTemperature(req.Temperature)
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(req.MaxOutputTokens)
	}
	model.GenerationConfig.ResponseMIMEType = "application/json"
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	parts := make([]genai.Part, 0, len(req.Pages)+1)
	parts = append(parts, genai.Text(req.Prompt))
	for _, page := range req.Pages {
		parts = append(parts, genai.ImageData("png", page.PNG))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", apperrors.NewNetworkError("AI generation failed. Please try again.", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.NewNetworkError("AI generation failed. Please try again.", fmt.Errorf("empty response from model"))
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	if resp.UsageMetadata != nil {
		m.logger.Debug("Model call completed",
			"prompt_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
		)
	}

	return sb.String(), nil
}
