package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fairrank/resume-screener/internal/models"
	"fairrank/resume-screener/internal/repositories"
)

// SubmissionService processes one queued submission end to end: screen the
// resume, persist the outcome, then run the notification and recruitment
// branch. Mail and recruitment failures are logged, never fatal — the stored
// result stands on its own.
type SubmissionService interface {
	Process(ctx context.Context, subID uuid.UUID) error
}

type submissionService struct {
	subRepo     repositories.SubmissionRepository
	screening   ScreeningService
	notifier    NotificationService
	recruitment RecruitmentService
	log         *zap.Logger
}

func NewSubmissionService(
	subRepo repositories.SubmissionRepository,
	screening ScreeningService,
	notifier NotificationService,
	recruitment RecruitmentService,
	log *zap.Logger,
) SubmissionService {
	return &submissionService{
		subRepo:     subRepo,
		screening:   screening,
		notifier:    notifier,
		recruitment: recruitment,
		log:         log,
	}
}

// Process implements SubmissionService.
func (s *submissionService) Process(ctx context.Context, subID uuid.UUID) error {
	if err := s.subRepo.UpdateStatus(subID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	sub, err := s.subRepo.FindByID(subID)
	if err != nil {
		s.failSubmission(subID, err)
		return fmt.Errorf("failed to load submission: %w", err)
	}

	result, err := s.screening.Screen(ctx, sub.ResumeText, sub.JobDescriptionID)
	if err != nil {
		s.failSubmission(subID, err)
		return fmt.Errorf("screening failed: %w", err)
	}

	verdictJSON, err := json.Marshal(result.Verdict)
	if err != nil {
		s.failSubmission(subID, err)
		return fmt.Errorf("failed to serialize verdict: %w", err)
	}

	update := &repositories.SubmissionResultData{
		OverallScore:    result.Verdict.OverallScore,
		Category:        result.Category,
		ResolvedJDTitle: result.JDTitle,
		VerdictJSON:     string(verdictJSON),
	}
	if err := s.subRepo.UpdateResult(subID, update); err != nil {
		return fmt.Errorf("failed to save screening result: %w", err)
	}

	s.notify(ctx, sub, result)

	return nil
}

func (s *submissionService) notify(ctx context.Context, sub *models.Submission, result *ScreenResult) {
	if err := s.notifier.NotifyOutcome(result.Category, sub.CandidateName, sub.CandidateEmail); err != nil {
		s.log.Warn("outcome notification failed",
			zap.String("submission_id", sub.ID.String()),
			zap.String("category", string(result.Category)),
			zap.Error(err))
	}

	if result.Category == models.CategoryMatch {
		if err := s.recruitment.TriggerInterviewFlow(ctx, sub.CandidateEmail, sub.CandidateName, result.Verdict.OverallScore); err != nil {
			s.log.Warn("recruitment flow trigger failed",
				zap.String("submission_id", sub.ID.String()),
				zap.Error(err))
		}
	}

	if err := s.notifier.SendAcknowledgment(sub.CandidateName, sub.CandidateEmail); err != nil {
		s.log.Warn("acknowledgment mail failed",
			zap.String("submission_id", sub.ID.String()),
			zap.Error(err))
	}
}

func (s *submissionService) failSubmission(subID uuid.UUID, cause error) {
	if err := s.subRepo.UpdateError(subID, cause.Error()); err != nil {
		s.log.Error("failed to record submission error",
			zap.String("submission_id", subID.String()),
			zap.Error(err))
	}
}
