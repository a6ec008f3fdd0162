package models

import "time"

type JDResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadJDResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ScreenRequest is the JSON body variant of POST /screen. The handler also
// accepts multipart with a resume file instead of resume_text.
type ScreenRequest struct {
	ResumeText string `json:"resume_text"`
	JDID       string `json:"jd_id,omitempty"`
}

type ScreenResponse struct {
	Verdict         *MatchVerdict `json:"verdict"`
	Category        Category      `json:"category"`
	ResolvedJDID    string        `json:"resolved_jd_id"`
	ResolvedJDTitle string        `json:"resolved_jd_title"`
	// EmbeddingScore is the distance-derived percentage, diagnostic only.
	// It is never blended into the verdict's overall score.
	EmbeddingScore float64 `json:"embedding_score"`
}

type SubmissionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type SubmissionResultResponse struct {
	ID              string        `json:"id"`
	Status          string        `json:"status"`
	CandidateName   string        `json:"candidate_name"`
	OverallScore    *int          `json:"overall_score,omitempty"`
	Category        *Category     `json:"category,omitempty"`
	ResolvedJDTitle *string       `json:"resolved_jd_title,omitempty"`
	Verdict         *MatchVerdict `json:"verdict,omitempty"`
	ErrorMessage    *string       `json:"error_message,omitempty"`
}
