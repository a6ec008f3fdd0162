package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "fairrank/resume-screener/internal/errors"
	"fairrank/resume-screener/internal/models"
)

type JobDescriptionRepository interface {
	Create(jd *models.JobDescription) error
	FindAll() ([]models.JobDescription, error)
	FindByID(id uuid.UUID) (*models.JobDescription, error)
	FindByIDs(ids []uuid.UUID) ([]models.JobDescription, error)
	Delete(id uuid.UUID) error
}

type jobDescriptionRepository struct {
	db *gorm.DB
}

func NewJobDescriptionRepository(db *gorm.DB) JobDescriptionRepository {
	return &jobDescriptionRepository{db: db}
}

// Create implements JobDescriptionRepository.
func (r *jobDescriptionRepository) Create(jd *models.JobDescription) error {
	if err := r.db.Create(jd).Error; err != nil {
		return fmt.Errorf("failed to create job description: %w", err)
	}
	return nil
}

// FindAll implements JobDescriptionRepository. Ordered by insertion sequence
// so enumeration is stable across calls.
func (r *jobDescriptionRepository) FindAll() ([]models.JobDescription, error) {
	var jds []models.JobDescription
	if err := r.db.Order("seq ASC").Find(&jds).Error; err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	return jds, nil
}

// FindByID implements JobDescriptionRepository. A missing row is a typed
// not-found, so callers can tell it apart from infrastructure failures.
func (r *jobDescriptionRepository) FindByID(id uuid.UUID) (*models.JobDescription, error) {
	var jd models.JobDescription
	if err := r.db.Where("id = ?", id).First(&jd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrCodeJDNotFound,
				fmt.Sprintf("job description %s not found", id))
		}
		return nil, fmt.Errorf("failed to find job description: %w", err)
	}
	return &jd, nil
}

// FindByIDs implements JobDescriptionRepository.
func (r *jobDescriptionRepository) FindByIDs(ids []uuid.UUID) ([]models.JobDescription, error) {
	var jds []models.JobDescription
	if err := r.db.Where("id IN ?", ids).Find(&jds).Error; err != nil {
		return nil, fmt.Errorf("failed to find job descriptions: %w", err)
	}
	return jds, nil
}

// Delete implements JobDescriptionRepository. Idempotent: deleting an id
// that does not exist is not an error.
func (r *jobDescriptionRepository) Delete(id uuid.UUID) error {
	if err := r.db.Where("id = ?", id).Delete(&models.JobDescription{}).Error; err != nil {
		return fmt.Errorf("failed to delete job description: %w", err)
	}
	return nil
}
