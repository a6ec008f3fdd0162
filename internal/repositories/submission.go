package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "fairrank/resume-screener/internal/errors"
	"fairrank/resume-screener/internal/models"
)

type SubmissionRepository interface {
	Create(sub *models.Submission) error
	FindByID(id uuid.UUID) (*models.Submission, error)
	UpdateStatus(id uuid.UUID, status models.SubmissionStatus) error
	UpdateResult(id uuid.UUID, result *SubmissionResultData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Submission, error)
}

type SubmissionResultData struct {
	OverallScore    int
	Category        models.Category
	ResolvedJDTitle string
	VerdictJSON     string
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(sub *models.Submission) error {
	if err := r.db.Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *submissionRepository) FindByID(id uuid.UUID) (*models.Submission, error) {
	var sub models.Submission
	if err := r.db.Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrCodeSubmissionNotFound,
				fmt.Sprintf("submission %s not found", id))
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &sub, nil
}

func (r *submissionRepository) UpdateStatus(id uuid.UUID, status models.SubmissionStatus) error {
	result := r.db.Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update submission status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(apperrors.ErrCodeSubmissionNotFound,
			fmt.Sprintf("submission %s not found", id))
	}
	return nil
}

func (r *submissionRepository) UpdateResult(id uuid.UUID, data *SubmissionResultData) error {
	result := r.db.Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            models.StatusCompleted,
			"overall_score":     data.OverallScore,
			"category":          data.Category,
			"resolved_jd_title": data.ResolvedJDTitle,
			"verdict_json":      data.VerdictJSON,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update submission result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError(apperrors.ErrCodeSubmissionNotFound,
			fmt.Sprintf("submission %s not found", id))
	}
	return nil
}

func (r *submissionRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to record submission error: %w", result.Error)
	}
	return nil
}

// FindPendingJobs returns queued submissions oldest first, used by the
// worker poller to recover jobs dropped across restarts.
func (r *submissionRepository) FindPendingJobs(limit int) ([]models.Submission, error) {
	var subs []models.Submission
	if err := r.db.Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pending submissions: %w", err)
	}
	return subs, nil
}
