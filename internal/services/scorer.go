package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	apperrors "fairrank/resume-screener/internal/errors"
	"fairrank/resume-screener/internal/models"
)

// Low temperature keeps variance narrow across repeated calls on the same
// resume/JD pair.
const screeningTemperature = 0.2

var anonymizedIDPattern = regexp.MustCompile(`^CAND-\d{4}-[A-Za-z0-9]{4}$`)

// ScorerService turns a resume/JD pair into a validated MatchVerdict. It
// either returns a fully-typed verdict or an EvaluationError; a malformed
// model response is never patched with defaults.
type ScorerService interface {
	Score(ctx context.Context, resumeText, jdText string) (*models.MatchVerdict, error)
}

type scorerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	log           *zap.Logger
}

func NewScorerService(gemini GeminiService, log *zap.Logger) ScorerService {
	return &scorerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		log:           log,
	}
}

// Score implements ScorerService.
func (s *scorerService) Score(ctx context.Context, resumeText, jdText string) (*models.MatchVerdict, error) {
	prompt := s.promptBuilder.BuildScreeningPrompt(resumeText, jdText)

	s.log.Debug("screening prompt built",
		zap.Int("prompt_length", len(prompt)),
		zap.Int("resume_length", len(resumeText)),
		zap.Int("jd_length", len(jdText)),
	)

	response, err := s.gemini.GenerateJSON(ctx, prompt, buildVerdictSchema(), screeningTemperature)
	if err != nil {
		return nil, err
	}

	verdict, err := decodeVerdict(response)
	if err != nil {
		s.log.Warn("evaluator response failed validation", zap.Error(err))
		return nil, err
	}

	return verdict, nil
}

// buildVerdictSchema constrains the evaluator output to the MatchVerdict
// field set. jd_title stays optional: the engine backfills it from
// repository metadata when the model omits it.
func buildVerdictSchema() *genai.Schema {
	intScore := &genai.Schema{Type: genai.TypeInteger}
	stringList := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"anonymized_id": {Type: genai.TypeString},
			"overall_score": intScore,
			"recommendation": {
				Type: genai.TypeString,
				Enum: []string{"Strong Fit", "Good Fit", "Moderate Fit", "Weak Fit"},
			},
			"jd_title": {Type: genai.TypeString},
			"sub_scores": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"skills":                   intScore,
					"experience_impact":        intScore,
					"education_certifications": intScore,
					"soft_skills_fit":          intScore,
					"achievements_projects":    intScore,
				},
				Required: []string{"skills", "experience_impact", "education_certifications", "soft_skills_fit", "achievements_projects"},
			},
			"strengths":          stringList,
			"gaps":               stringList,
			"fit_summary":        {Type: genai.TypeString},
			"detailed_reasoning": {Type: genai.TypeString},
			"bias_audit":         {Type: genai.TypeString},
			"candidate_feedback": {Type: genai.TypeString},
		},
		Required: []string{
			"anonymized_id", "overall_score", "recommendation", "sub_scores",
			"strengths", "gaps", "fit_summary", "detailed_reasoning",
			"bias_audit", "candidate_feedback",
		},
	}
}

// verdictWire mirrors MatchVerdict with pointer fields so a missing key is
// distinguishable from a zero value.
type verdictWire struct {
	AnonymizedID      *string        `json:"anonymized_id"`
	OverallScore      *int           `json:"overall_score"`
	Recommendation    *string        `json:"recommendation"`
	JDTitle           *string        `json:"jd_title"`
	SubScores         *subScoresWire `json:"sub_scores"`
	Strengths         *[]string      `json:"strengths"`
	Gaps              *[]string      `json:"gaps"`
	FitSummary        *string        `json:"fit_summary"`
	DetailedReasoning *string        `json:"detailed_reasoning"`
	BiasAudit         *string        `json:"bias_audit"`
	CandidateFeedback *string        `json:"candidate_feedback"`
}

type subScoresWire struct {
	Skills                  *int `json:"skills"`
	ExperienceImpact        *int `json:"experience_impact"`
	EducationCertifications *int `json:"education_certifications"`
	SoftSkillsFit           *int `json:"soft_skills_fit"`
	AchievementsProjects    *int `json:"achievements_projects"`
}

// decodeVerdict parses and validates an evaluator response. Any missing or
// mistyped field, out-of-range score, or unknown recommendation yields a
// typed validation failure.
func decodeVerdict(raw string) (*models.MatchVerdict, error) {
	cleaned := stripCodeFences(raw)

	var wire verdictWire
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, apperrors.NewEvaluationError(apperrors.ErrCodeVerdictInvalid,
			"evaluator response is not valid JSON", err)
	}

	if err := wire.validate(); err != nil {
		return nil, err
	}

	verdict := &models.MatchVerdict{
		AnonymizedID:   *wire.AnonymizedID,
		OverallScore:   *wire.OverallScore,
		Recommendation: models.Recommendation(*wire.Recommendation),
		SubScores: models.SubScores{
			Skills:                  *wire.SubScores.Skills,
			ExperienceImpact:        *wire.SubScores.ExperienceImpact,
			EducationCertifications: *wire.SubScores.EducationCertifications,
			SoftSkillsFit:           *wire.SubScores.SoftSkillsFit,
			AchievementsProjects:    *wire.SubScores.AchievementsProjects,
		},
		Strengths:         *wire.Strengths,
		Gaps:              *wire.Gaps,
		FitSummary:        *wire.FitSummary,
		DetailedReasoning: *wire.DetailedReasoning,
		BiasAudit:         *wire.BiasAudit,
		CandidateFeedback: *wire.CandidateFeedback,
	}

	if wire.JDTitle != nil {
		verdict.JDTitle = *wire.JDTitle
	}

	return verdict, nil
}

func (w *verdictWire) validate() error {
	missing := func(field string) error {
		return apperrors.NewEvaluationError(apperrors.ErrCodeVerdictInvalid,
			fmt.Sprintf("verdict field %q is missing", field), nil)
	}

	switch {
	case w.AnonymizedID == nil:
		return missing("anonymized_id")
	case w.OverallScore == nil:
		return missing("overall_score")
	case w.Recommendation == nil:
		return missing("recommendation")
	case w.SubScores == nil:
		return missing("sub_scores")
	case w.Strengths == nil:
		return missing("strengths")
	case w.Gaps == nil:
		return missing("gaps")
	case w.FitSummary == nil:
		return missing("fit_summary")
	case w.DetailedReasoning == nil:
		return missing("detailed_reasoning")
	case w.BiasAudit == nil:
		return missing("bias_audit")
	case w.CandidateFeedback == nil:
		return missing("candidate_feedback")
	}

	if !anonymizedIDPattern.MatchString(*w.AnonymizedID) {
		return apperrors.NewEvaluationError(apperrors.ErrCodeVerdictInvalid,
			fmt.Sprintf("anonymized_id %q does not match CAND-YYYY-XXXX", *w.AnonymizedID), nil)
	}

	if err := checkScoreRange("overall_score", *w.OverallScore); err != nil {
		return err
	}

	if !models.ValidRecommendation(*w.Recommendation) {
		return apperrors.NewEvaluationError(apperrors.ErrCodeVerdictInvalid,
			fmt.Sprintf("recommendation %q is not in the enumerated set", *w.Recommendation), nil)
	}

	subs := map[string]*int{
		"sub_scores.skills":                   w.SubScores.Skills,
		"sub_scores.experience_impact":        w.SubScores.ExperienceImpact,
		"sub_scores.education_certifications": w.SubScores.EducationCertifications,
		"sub_scores.soft_skills_fit":          w.SubScores.SoftSkillsFit,
		"sub_scores.achievements_projects":    w.SubScores.AchievementsProjects,
	}
	for field, v := range subs {
		if v == nil {
			return missing(field)
		}
		if err := checkScoreRange(field, *v); err != nil {
			return err
		}
	}

	return nil
}

func checkScoreRange(field string, score int) error {
	if score < 0 || score > 100 {
		return apperrors.NewEvaluationError(apperrors.ErrCodeVerdictInvalid,
			fmt.Sprintf("%s %d is outside [0, 100]", field, score), nil)
	}
	return nil
}

// stripCodeFences removes surrounding markdown fences the evaluator may emit
// despite the JSON response MIME type.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}
	return strings.TrimSpace(cleaned)
}
