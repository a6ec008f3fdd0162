package services

import (
	"context"
	"testing"

	"go.uber.org/zap"

	apperrors "fairrank/resume-screener/internal/errors"
	"fairrank/resume-screener/internal/models"
)

func sampleVerdict(score int, rec models.Recommendation) *models.MatchVerdict {
	return &models.MatchVerdict{
		AnonymizedID:   "CAND-2026-B3X9",
		OverallScore:   score,
		Recommendation: rec,
		SubScores: models.SubScores{
			Skills:                  score,
			ExperienceImpact:        score,
			EducationCertifications: score,
			SoftSkillsFit:           score,
			AchievementsProjects:    score,
		},
		Strengths:         []string{"relevant experience"},
		Gaps:              []string{},
		FitSummary:        "summary",
		DetailedReasoning: "reasoning",
		BiasAudit:         "no bias detected",
		CandidateFeedback: "feedback",
	}
}

func TestScreenExplicitJDSkipsSimilarityQuery(t *testing.T) {
	gem := &stubGemini{vectors: map[string][]float32{
		"backend jd":  unitVec(1),
		"resume text": unitVec(1),
	}}
	store, _, index := newTestJDStore(gem)
	ctx := context.Background()

	jdID, err := store.Insert(ctx, "backend jd", "Backend Engineer")
	if err != nil {
		t.Fatal(err)
	}
	embedsAfterInsert := gem.embedCalls

	scorer := &stubScorer{verdict: sampleVerdict(85, models.RecommendationStrongFit)}
	screening := NewScreeningService(store, scorer, gem, zap.NewNop())

	result, err := screening.Screen(ctx, "resume text", &jdID)
	if err != nil {
		t.Fatalf("Screen returned error: %v", err)
	}

	if got := gem.embedCalls - embedsAfterInsert; got != 1 {
		t.Errorf("embedding calls during screen = %d, want 1 (resume only)", got)
	}
	if index.searchCalls != 0 {
		t.Errorf("similarity search ran %d times on the explicit path, want 0", index.searchCalls)
	}
	if result.JDID != jdID {
		t.Errorf("JDID = %s, want %s", result.JDID, jdID)
	}
	if result.Category != models.CategoryMatch {
		t.Errorf("Category = %q, want Match", result.Category)
	}
	if scorer.lastJD != "backend jd" {
		t.Errorf("scorer saw JD text %q", scorer.lastJD)
	}
	// Resume and JD embed to the same vector, so the diagnostic score is 100.
	if result.EmbeddingScore != 100 {
		t.Errorf("EmbeddingScore = %v, want 100", result.EmbeddingScore)
	}
}

func TestScreenExplicitJDNotFound(t *testing.T) {
	gem := &stubGemini{}
	store, _, _ := newTestJDStore(gem)
	scorer := &stubScorer{verdict: sampleVerdict(85, models.RecommendationStrongFit)}
	screening := NewScreeningService(store, scorer, gem, zap.NewNop())

	id, err := store.Insert(context.Background(), "jd", "Title")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(context.Background(), id); err != nil {
		t.Fatal(err)
	}

	_, err = screening.Screen(context.Background(), "resume", &id)
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Fatalf("Screen = %v, want not-found error", err)
	}
	if scorer.calls != 0 {
		t.Errorf("scorer ran %d times for a missing JD, want 0", scorer.calls)
	}
}

func TestScreenDynamicPicksNearestJD(t *testing.T) {
	gem := &stubGemini{vectors: map[string][]float32{
		"python data jd": unitVec(1),
		"go backend jd":  unitVec(2),
		"go resume":      unitVec(2),
	}}
	store, _, _ := newTestJDStore(gem)
	ctx := context.Background()

	if _, err := store.Insert(ctx, "python data jd", "Data Scientist"); err != nil {
		t.Fatal(err)
	}
	backendID, err := store.Insert(ctx, "go backend jd", "Backend Engineer")
	if err != nil {
		t.Fatal(err)
	}

	scorer := &stubScorer{verdict: sampleVerdict(62, models.RecommendationModerateFit)}
	screening := NewScreeningService(store, scorer, gem, zap.NewNop())

	result, err := screening.Screen(ctx, "go resume", nil)
	if err != nil {
		t.Fatalf("Screen returned error: %v", err)
	}

	if result.JDID != backendID {
		t.Errorf("resolved JD = %q, want the backend JD", result.JDTitle)
	}
	if result.JDTitle != "Backend Engineer" {
		t.Errorf("JDTitle = %q", result.JDTitle)
	}
	if result.Category != models.CategoryPartialMatch {
		t.Errorf("Category = %q, want Partial Match for score 62", result.Category)
	}
	if scorer.lastJD != "go backend jd" {
		t.Errorf("scorer saw JD text %q", scorer.lastJD)
	}
}

func TestScreenEmptyRepositoryFailsBeforeScoring(t *testing.T) {
	gem := &stubGemini{}
	store, _, _ := newTestJDStore(gem)
	scorer := &stubScorer{verdict: sampleVerdict(85, models.RecommendationStrongFit)}
	screening := NewScreeningService(store, scorer, gem, zap.NewNop())

	_, err := screening.Screen(context.Background(), "resume", nil)
	if !apperrors.IsType(err, apperrors.ErrorTypeNoJobDescriptions) {
		t.Fatalf("Screen = %v, want no-job-descriptions error", err)
	}
	if scorer.calls != 0 {
		t.Errorf("scorer ran %d times against an empty repository, want 0", scorer.calls)
	}
}

func TestScreenBackfillsJDTitle(t *testing.T) {
	gem := &stubGemini{}
	store, _, _ := newTestJDStore(gem)
	ctx := context.Background()

	jdID, err := store.Insert(ctx, "jd text", "Platform Engineer")
	if err != nil {
		t.Fatal(err)
	}

	verdict := sampleVerdict(40, models.RecommendationWeakFit)
	verdict.JDTitle = ""
	scorer := &stubScorer{verdict: verdict}
	screening := NewScreeningService(store, scorer, gem, zap.NewNop())

	result, err := screening.Screen(ctx, "resume", &jdID)
	if err != nil {
		t.Fatalf("Screen returned error: %v", err)
	}
	if result.Verdict.JDTitle != "Platform Engineer" {
		t.Errorf("verdict JDTitle = %q, want backfilled repository title", result.Verdict.JDTitle)
	}
	if result.Category != models.CategorySkillsGap {
		t.Errorf("Category = %q, want Skills Gap for score 40", result.Category)
	}
}

func TestScreenLowScoreIsIrrelevant(t *testing.T) {
	gem := &stubGemini{}
	store, _, _ := newTestJDStore(gem)
	ctx := context.Background()

	if _, err := store.Insert(ctx, "jd text", "Title"); err != nil {
		t.Fatal(err)
	}

	scorer := &stubScorer{verdict: sampleVerdict(12, models.RecommendationWeakFit)}
	screening := NewScreeningService(store, scorer, gem, zap.NewNop())

	result, err := screening.Screen(ctx, "resume", nil)
	if err != nil {
		t.Fatalf("Screen returned error: %v", err)
	}
	if result.Category != models.CategoryIrrelevant {
		t.Errorf("Category = %q, want Irrelevant for score 12", result.Category)
	}
}

func TestScreenScorerFailurePropagates(t *testing.T) {
	gem := &stubGemini{}
	store, _, _ := newTestJDStore(gem)
	ctx := context.Background()

	if _, err := store.Insert(ctx, "jd text", "Title"); err != nil {
		t.Fatal(err)
	}

	scorer := &stubScorer{err: apperrors.NewEvaluationError(apperrors.ErrCodeVerdictInvalid, "bad verdict", nil)}
	screening := NewScreeningService(store, scorer, gem, zap.NewNop())

	if _, err := screening.Screen(ctx, "resume", nil); !apperrors.IsType(err, apperrors.ErrorTypeEvaluation) {
		t.Fatalf("Screen = %v, want evaluation error", err)
	}
}
