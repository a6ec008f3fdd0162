package models

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	StatusQueued     SubmissionStatus = "queued"
	StatusProcessing SubmissionStatus = "processing"
	StatusCompleted  SubmissionStatus = "completed"
	StatusFailed     SubmissionStatus = "failed"
)

// Submission is a persisted screening request processed asynchronously by
// the worker pool. The verdict is stored serialized; score and category are
// duplicated as columns so HR dashboards can filter without parsing JSON.
type Submission struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateName    string           `gorm:"type:text;not null" json:"candidate_name"`
	CandidateEmail   string           `gorm:"type:text;not null" json:"candidate_email"`
	ResumeText       string           `gorm:"type:text;not null" json:"-"`
	ResumeFilePath   *string          `gorm:"type:text" json:"-"`
	JobDescriptionID *uuid.UUID       `gorm:"type:uuid" json:"job_description_id,omitempty"`
	Status           SubmissionStatus `gorm:"not null;default:'queued'" json:"status"`
	OverallScore     *int             `gorm:"type:integer" json:"overall_score,omitempty"`
	Category         *Category        `gorm:"type:text" json:"category,omitempty"`
	ResolvedJDTitle  *string          `gorm:"type:text" json:"resolved_jd_title,omitempty"`
	VerdictJSON      *string          `gorm:"type:jsonb" json:"-"`
	ErrorMessage     *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}
