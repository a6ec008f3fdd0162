package services

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	apperrors "fairrank/resume-screener/internal/errors"
	"fairrank/resume-screener/internal/logger"
)

// Embedding input cap; text-embedding-004 rejects inputs far above this.
const maxEmbedInputBytes = 40000

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, temperature float32) (string, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	log        *zap.Logger
}

func NewGeminiService(apiKey, model, embedModel string, log *zap.Logger) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("GEMINI_CLIENT_INIT",
			"failed to create gemini client", err)
	}

	return &geminiService{
		client:     client,
		modelName:  model,
		embedModel: embedModel,
		log:        log,
	}, nil
}

// GenerateEmbedding implements GeminiService. Provider failures and empty
// results surface as EmbeddingError; no retry happens here.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateToRuneBoundary(text, maxEmbedInputBytes)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, apperrors.NewEmbeddingError(apperrors.ErrCodeEmbeddingFailed,
			"embedding provider call failed", err)
	}

	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, apperrors.NewEmbeddingError(apperrors.ErrCodeEmbeddingFailed,
			"embedding provider returned an empty result", nil)
	}

	return result.Embeddings[0].Values, nil
}

// truncateToRuneBoundary caps s at limit bytes without splitting a
// multi-byte rune.
func truncateToRuneBoundary(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// GenerateJSON implements GeminiService. The response schema constrains the
// model to a JSON payload; the raw text still goes through fence stripping
// and validation upstream, since schema enforcement is best effort.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", apperrors.NewEvaluationError(apperrors.ErrCodeEvaluationFailed,
			"evaluator call failed", err)
	}

	if resp == nil {
		return "", apperrors.NewEvaluationError(apperrors.ErrCodeEmptyResponse,
			"evaluator returned nil response", nil)
	}

	text := resp.Text()
	if text == "" {
		return "", apperrors.NewEvaluationError(apperrors.ErrCodeEmptyResponse,
			"evaluator returned no text content", nil)
	}

	g.log.Debug("evaluator response received",
		zap.Int("response_length", len(text)),
		zap.String("response_preview", logger.TruncateForLog(text, 200)),
	)

	return text, nil
}
