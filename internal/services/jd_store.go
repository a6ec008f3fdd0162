package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "fairrank/resume-screener/internal/errors"
	"fairrank/resume-screener/internal/models"
	"fairrank/resume-screener/internal/repositories"
)

// DefaultTitle is used when a JD is uploaded without one.
const DefaultTitle = "Unknown"

// The index does not order equal distances, so a tie straddling the cut at k
// could drop the earliest insert. Over-fetching hands the insertion-order
// sort the full tied set before truncating back to k.
const tieOverfetch = 16

// JDMatch pairs a stored JD with its squared-L2 distance to a query.
type JDMatch struct {
	JobDescription models.JobDescription
	Distance       float64
}

// JDStoreService is the job-description repository: Postgres rows for text
// and metadata, the vector index for embeddings, one Gemini call per insert
// or text query.
type JDStoreService interface {
	Insert(ctx context.Context, text, title string) (uuid.UUID, error)
	GetAll(ctx context.Context) ([]models.JobDescription, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobDescription, error)
	Delete(ctx context.Context, id uuid.UUID) error
	QuerySimilar(ctx context.Context, queryText string, k int) ([]JDMatch, error)
	NearestByVector(ctx context.Context, vector []float32, k int) ([]JDMatch, error)
	FetchVector(ctx context.Context, id uuid.UUID) ([]float32, error)
}

type jdStoreService struct {
	repo   repositories.JobDescriptionRepository
	index  VectorIndex
	gemini GeminiService
	log    *zap.Logger
}

func NewJDStoreService(
	repo repositories.JobDescriptionRepository,
	index VectorIndex,
	gemini GeminiService,
	log *zap.Logger,
) JDStoreService {
	return &jdStoreService{
		repo:   repo,
		index:  index,
		gemini: gemini,
		log:    log,
	}
}

// Insert implements JDStoreService. The embedding is computed before any
// write, so a provider failure leaves nothing behind; if the vector upsert
// fails after the row was created, the row is removed again.
func (s *jdStoreService) Insert(ctx context.Context, text, title string) (uuid.UUID, error) {
	if title == "" {
		title = DefaultTitle
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return uuid.Nil, err
	}

	if len(embedding) != EmbeddingDim {
		return uuid.Nil, apperrors.NewEmbeddingError(apperrors.ErrCodeDimensionMismatch,
			fmt.Sprintf("embedding dimension %d, repository requires %d", len(embedding), EmbeddingDim), nil)
	}

	jd := &models.JobDescription{
		ID:    uuid.New(),
		Title: title,
		Text:  text,
	}

	if err := s.repo.Create(jd); err != nil {
		return uuid.Nil, err
	}

	if err := s.index.Upsert(ctx, jd.ID, embedding); err != nil {
		if delErr := s.repo.Delete(jd.ID); delErr != nil {
			s.log.Error("failed to roll back job description row",
				zap.String("jd_id", jd.ID.String()), zap.Error(delErr))
		}
		return uuid.Nil, apperrors.NewEmbeddingError(apperrors.ErrCodeEmbeddingFailed,
			"failed to store embedding", err)
	}

	s.log.Info("job description stored",
		zap.String("jd_id", jd.ID.String()),
		zap.String("title", jd.Title),
		zap.Int("text_length", len(text)),
	)

	return jd.ID, nil
}

// GetAll implements JDStoreService. An empty repository yields an empty
// slice, not an error.
func (s *jdStoreService) GetAll(ctx context.Context) ([]models.JobDescription, error) {
	return s.repo.FindAll()
}

// GetByID implements JDStoreService.
func (s *jdStoreService) GetByID(ctx context.Context, id uuid.UUID) (*models.JobDescription, error) {
	return s.repo.FindByID(id)
}

// Delete implements JDStoreService. Idempotent on both stores.
func (s *jdStoreService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.index.Delete(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// QuerySimilar implements JDStoreService: embeds the query text and returns
// the k closest JDs in ascending distance order.
func (s *jdStoreService) QuerySimilar(ctx context.Context, queryText string, k int) ([]JDMatch, error) {
	embedding, err := s.gemini.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, err
	}
	return s.NearestByVector(ctx, embedding, k)
}

// NearestByVector implements JDStoreService. Ties on distance are broken by
// insertion order, earliest first, to keep results deterministic.
func (s *jdStoreService) NearestByVector(ctx context.Context, vector []float32, k int) ([]JDMatch, error) {
	if k <= 0 {
		return []JDMatch{}, nil
	}

	neighbors, err := s.index.Search(ctx, vector, uint64(k)+tieOverfetch)
	if err != nil {
		return nil, apperrors.NewEmbeddingError(apperrors.ErrCodeEmbeddingFailed,
			"similarity search failed", err)
	}

	if len(neighbors) == 0 {
		return []JDMatch{}, nil
	}

	ids := make([]uuid.UUID, 0, len(neighbors))
	distances := make(map[uuid.UUID]float64, len(neighbors))
	for _, n := range neighbors {
		ids = append(ids, n.ID)
		distances[n.ID] = n.Distance
	}

	jds, err := s.repo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	matches := make([]JDMatch, 0, len(jds))
	for _, jd := range jds {
		d, ok := distances[jd.ID]
		if !ok {
			continue
		}
		matches = append(matches, JDMatch{JobDescription: jd, Distance: d})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].JobDescription.Seq < matches[j].JobDescription.Seq
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// FetchVector implements JDStoreService.
func (s *jdStoreService) FetchVector(ctx context.Context, id uuid.UUID) ([]float32, error) {
	return s.index.Fetch(ctx, id)
}
