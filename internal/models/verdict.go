package models

// Recommendation is the evaluator's categorical hiring signal. Only the four
// values below are accepted; anything else fails verdict validation.
type Recommendation string

const (
	RecommendationStrongFit   Recommendation = "Strong Fit"
	RecommendationGoodFit     Recommendation = "Good Fit"
	RecommendationModerateFit Recommendation = "Moderate Fit"
	RecommendationWeakFit     Recommendation = "Weak Fit"
)

// ValidRecommendation reports whether s is one of the enumerated values.
func ValidRecommendation(s string) bool {
	switch Recommendation(s) {
	case RecommendationStrongFit, RecommendationGoodFit,
		RecommendationModerateFit, RecommendationWeakFit:
		return true
	}
	return false
}

// SubScores holds the five weighted rubric components, each an integer in
// [0, 100]. The weights (0.40/0.30/0.15/0.10/0.05) are stated in the prompt;
// the overall score is the evaluator's own weighted figure and is not
// recomputed from these.
type SubScores struct {
	Skills                  int `json:"skills"`
	ExperienceImpact        int `json:"experience_impact"`
	EducationCertifications int `json:"education_certifications"`
	SoftSkillsFit           int `json:"soft_skills_fit"`
	AchievementsProjects    int `json:"achievements_projects"`
}

// MatchVerdict is the canonical, fully-validated screening result. Every
// field is guaranteed present and type-valid once a verdict leaves the
// scorer; JDTitle may still be empty and is backfilled by the engine.
type MatchVerdict struct {
	AnonymizedID      string         `json:"anonymized_id"`
	OverallScore      int            `json:"overall_score"`
	Recommendation    Recommendation `json:"recommendation"`
	JDTitle           string         `json:"jd_title"`
	SubScores         SubScores      `json:"sub_scores"`
	Strengths         []string       `json:"strengths"`
	Gaps              []string       `json:"gaps"`
	FitSummary        string         `json:"fit_summary"`
	DetailedReasoning string         `json:"detailed_reasoning"`
	BiasAudit         string         `json:"bias_audit"`
	CandidateFeedback string         `json:"candidate_feedback"`
}

// Category is the outcome band derived from the overall score. It decides
// which notification branch and business-flow trigger run downstream.
type Category string

const (
	CategoryMatch        Category = "Match"
	CategoryPartialMatch Category = "Partial Match"
	CategorySkillsGap    Category = "Skills Gap"
	CategoryIrrelevant   Category = "Irrelevant"
)

// CategorizeScore maps an overall score to its category. Pure and total;
// the strict > comparisons make the bands lower-exclusive, upper-inclusive.
func CategorizeScore(score int) Category {
	switch {
	case score > 70:
		return CategoryMatch
	case score > 50:
		return CategoryPartialMatch
	case score > 30:
		return CategorySkillsGap
	default:
		return CategoryIrrelevant
	}
}
