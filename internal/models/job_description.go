package models

import (
	"time"

	"github.com/google/uuid"
)

// JobDescription is the system of record for an uploaded JD. The embedding
// vector itself lives in the vector index under the same id; Seq preserves
// insertion order for deterministic tie-breaking in similarity results.
type JobDescription struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string    `gorm:"type:text;not null;default:'Unknown'" json:"title"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex" json:"-"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
