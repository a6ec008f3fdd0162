package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "fairrank/resume-screener/internal/errors"
	"fairrank/resume-screener/internal/models"
)

// ScreenResult is the outcome of one evaluation call. Transient: the caller
// decides whether and how to persist it.
type ScreenResult struct {
	Verdict  *models.MatchVerdict
	Category models.Category
	JDID     uuid.UUID
	JDTitle  string
	// EmbeddingScore is the distance-derived percentage. Diagnostic only;
	// never blended into the verdict's overall score.
	EmbeddingScore float64
}

// ScreeningService is the match engine: resolve the JD, score the pair,
// categorize. It consumes extracted plain text and never touches transport
// or raw files.
type ScreeningService interface {
	Screen(ctx context.Context, resumeText string, jdID *uuid.UUID) (*ScreenResult, error)
}

type screeningService struct {
	jdStore JDStoreService
	scorer  ScorerService
	gemini  GeminiService
	log     *zap.Logger
}

func NewScreeningService(
	jdStore JDStoreService,
	scorer ScorerService,
	gemini GeminiService,
	log *zap.Logger,
) ScreeningService {
	return &screeningService{
		jdStore: jdStore,
		scorer:  scorer,
		gemini:  gemini,
		log:     log,
	}
}

// Screen implements ScreeningService. The resume is embedded exactly once;
// an explicit jd id goes straight to point lookup and never runs a
// similarity query.
func (s *screeningService) Screen(ctx context.Context, resumeText string, jdID *uuid.UUID) (*ScreenResult, error) {
	resumeVec, err := s.gemini.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	var (
		jd       *models.JobDescription
		distance float64
	)

	if jdID != nil {
		jd, err = s.jdStore.GetByID(ctx, *jdID)
		if err != nil {
			return nil, err
		}
		distance = s.diagnosticDistance(ctx, resumeVec, jd.ID)
	} else {
		matches, err := s.jdStore.NearestByVector(ctx, resumeVec, 1)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, apperrors.NewNoJobDescriptionsError()
		}
		jd = &matches[0].JobDescription
		distance = matches[0].Distance
	}

	verdict, err := s.scorer.Score(ctx, resumeText, jd.Text)
	if err != nil {
		return nil, err
	}

	if verdict.JDTitle == "" {
		verdict.JDTitle = jd.Title
	}

	category := models.CategorizeScore(verdict.OverallScore)
	embeddingScore := DistanceToScore(distance)

	s.log.Info("screening completed",
		zap.String("jd_id", jd.ID.String()),
		zap.String("jd_title", jd.Title),
		zap.Int("overall_score", verdict.OverallScore),
		zap.String("category", string(category)),
		zap.Float64("embedding_score", embeddingScore),
	)

	return &ScreenResult{
		Verdict:        verdict,
		Category:       category,
		JDID:           jd.ID,
		JDTitle:        jd.Title,
		EmbeddingScore: embeddingScore,
	}, nil
}

// diagnosticDistance computes the resume-to-JD distance for the explicit-id
// path. Best effort: the figure is advisory, so a missing vector downgrades
// to the worst score instead of failing the screen.
func (s *screeningService) diagnosticDistance(ctx context.Context, resumeVec []float32, jdID uuid.UUID) float64 {
	jdVec, err := s.jdStore.FetchVector(ctx, jdID)
	if err != nil || len(jdVec) != len(resumeVec) {
		s.log.Warn("could not compute diagnostic distance",
			zap.String("jd_id", jdID.String()), zap.Error(err))
		return 2 // maps to score 0
	}
	return SquaredL2(resumeVec, jdVec)
}
