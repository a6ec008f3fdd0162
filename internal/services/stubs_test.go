package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/genai"

	apperrors "fairrank/resume-screener/internal/errors"
	"fairrank/resume-screener/internal/models"
)

// unitVec returns an EmbeddingDim-length unit vector with a 1 at index i.
func unitVec(i int) []float32 {
	v := make([]float32, EmbeddingDim)
	v[i] = 1
	return v
}

// stubGemini maps known texts to fixed vectors and replays a canned JSON
// response, recording call counts and the last prompt.
type stubGemini struct {
	vectors      map[string][]float32
	embedErr     error
	embedCalls   int
	jsonResponse string
	jsonErr      error
	jsonCalls    int
	lastPrompt   string
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.embedCalls++
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return unitVec(0), nil
}

func (s *stubGemini) GenerateJSON(_ context.Context, prompt string, _ *genai.Schema, _ float32) (string, error) {
	s.jsonCalls++
	s.lastPrompt = prompt
	if s.jsonErr != nil {
		return "", s.jsonErr
	}
	return s.jsonResponse, nil
}

// memIndex is an in-memory VectorIndex computing exact squared-L2 distances.
type memIndex struct {
	mu          sync.RWMutex
	vecs        map[uuid.UUID][]float32
	searchCalls int
}

func newMemIndex() *memIndex {
	return &memIndex{vecs: make(map[uuid.UUID][]float32)}
}

func (m *memIndex) EnsureCollection(context.Context) error { return nil }

func (m *memIndex) Upsert(_ context.Context, id uuid.UUID, vector []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vecs[id] = vector
	return nil
}

func (m *memIndex) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vecs, id)
	return nil
}

func (m *memIndex) Search(_ context.Context, vector []float32, limit uint64) ([]Neighbor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.searchCalls++

	neighbors := make([]Neighbor, 0, len(m.vecs))
	for id, v := range m.vecs {
		neighbors = append(neighbors, Neighbor{ID: id, Distance: SquaredL2(vector, v)})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].ID.String() < neighbors[j].ID.String()
	})
	if uint64(len(neighbors)) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors, nil
}

func (m *memIndex) Fetch(_ context.Context, id uuid.UUID) ([]float32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vecs[id]
	if !ok {
		return nil, fmt.Errorf("no vector stored for %s", id)
	}
	return v, nil
}

// memJDRepo is an in-memory JobDescriptionRepository preserving insertion
// order via Seq.
type memJDRepo struct {
	mu   sync.RWMutex
	jds  []models.JobDescription
	next int64
}

func newMemJDRepo() *memJDRepo {
	return &memJDRepo{}
}

func (r *memJDRepo) Create(jd *models.JobDescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	jd.Seq = r.next
	r.jds = append(r.jds, *jd)
	return nil
}

func (r *memJDRepo) FindAll() ([]models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.JobDescription, len(r.jds))
	copy(out, r.jds)
	return out, nil
}

func (r *memJDRepo) FindByID(id uuid.UUID) (*models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, jd := range r.jds {
		if jd.ID == id {
			out := jd
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError(apperrors.ErrCodeJDNotFound,
		fmt.Sprintf("job description %s not found", id))
}

func (r *memJDRepo) FindByIDs(ids []uuid.UUID) ([]models.JobDescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.JobDescription
	for _, jd := range r.jds {
		if want[jd.ID] {
			out = append(out, jd)
		}
	}
	return out, nil
}

func (r *memJDRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, jd := range r.jds {
		if jd.ID == id {
			r.jds = append(r.jds[:i], r.jds[i+1:]...)
			return nil
		}
	}
	return nil
}

// stubScorer replays a fixed verdict.
type stubScorer struct {
	verdict *models.MatchVerdict
	err     error
	calls   int
	lastJD  string
}

func (s *stubScorer) Score(_ context.Context, _, jdText string) (*models.MatchVerdict, error) {
	s.calls++
	s.lastJD = jdText
	if s.err != nil {
		return nil, s.err
	}
	out := *s.verdict
	return &out, nil
}

// stubMailer records every send.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type stubMailer struct {
	sent []sentMail
	err  error
}

func (m *stubMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
