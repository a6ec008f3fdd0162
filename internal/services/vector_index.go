package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// EmbeddingDim is the fixed vector dimension of text-embedding-004. Every
// vector in the index has this dimension; inserting anything else is fatal.
const EmbeddingDim = 768

// Neighbor is one similarity hit. Distance is squared L2, smaller is closer.
type Neighbor struct {
	ID       uuid.UUID
	Distance float64
}

// VectorIndex owns the embedding side of the JD repository. The system of
// record for text and title is Postgres; points here carry only the vector
// and the JD id.
type VectorIndex interface {
	EnsureCollection(ctx context.Context) error
	Upsert(ctx context.Context, id uuid.UUID, vector []float32) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, vector []float32, limit uint64) ([]Neighbor, error)
	Fetch(ctx context.Context, id uuid.UUID) ([]float32, error)
}

type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	log            *zap.Logger
}

func NewQdrantIndex(urlStr, apiKey, collectionName string, log *zap.Logger) (VectorIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port unless the URL pins one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		collectionName: collectionName,
		log:            log,
	}, nil
}

// EnsureCollection implements VectorIndex.
func (q *qdrantIndex) EnsureCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.log.Debug("qdrant collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     EmbeddingDim,
			Distance: qdrant.Distance_Euclid,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.Info("qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// Upsert implements VectorIndex.
func (q *qdrantIndex) Upsert(ctx context.Context, id uuid.UUID, vector []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(id.String()),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"jd_id": id.String(),
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}
	return nil
}

// Delete implements VectorIndex. Deleting a missing point is a no-op.
func (q *qdrantIndex) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(id.String())),
	})
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}
	return nil
}

// Search implements VectorIndex. Qdrant reports root L2 for Euclid
// collections; results are squared so all distance math in the engine works
// on the same form.
func (q *qdrantIndex) Search(ctx context.Context, vector []float32, limit uint64) ([]Neighbor, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	neighbors := make([]Neighbor, 0, len(points))
	for _, point := range points {
		id, err := pointUUID(point.Id)
		if err != nil {
			q.log.Warn("skipping point with non-uuid id", zap.Error(err))
			continue
		}
		d := float64(point.Score)
		neighbors = append(neighbors, Neighbor{ID: id, Distance: d * d})
	}

	return neighbors, nil
}

// Fetch implements VectorIndex.
func (q *qdrantIndex) Fetch(ctx context.Context, id uuid.UUID) ([]float32, error) {
	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(id.String())},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch point: %w", err)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no vector stored for %s", id)
	}

	vectors := points[0].GetVectors().GetVector()
	if vectors == nil || len(vectors.GetData()) == 0 {
		return nil, fmt.Errorf("empty vector stored for %s", id)
	}

	return vectors.GetData(), nil
}

func pointUUID(id *qdrant.PointId) (uuid.UUID, error) {
	if id == nil {
		return uuid.Nil, fmt.Errorf("nil point id")
	}
	return uuid.Parse(id.GetUuid())
}
