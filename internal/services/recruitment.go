package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"fairrank/resume-screener/internal/config"
)

// RecruitmentService notifies the recruitment microservice when a candidate
// lands in the Match band so interview scheduling can start. Failures are
// the caller's to log, never to fail the screening on.
type RecruitmentService interface {
	TriggerInterviewFlow(ctx context.Context, email, name string, matchScore int) error
}

type interviewSchedulePayload struct {
	CandidateEmail string `json:"candidateEmail"`
	CandidateName  string `json:"candidateName"`
	MatchScore     int    `json:"matchScore"`
	ApplicationID  string `json:"applicationId"`
	InterviewTime  string `json:"interviewTime"`
}

type recruitmentService struct {
	client  *resty.Client
	baseURL string
	log     *zap.Logger
}

func NewRecruitmentService(cfg config.RecruitmentConfig, log *zap.Logger) RecruitmentService {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0)

	return &recruitmentService{
		client:  client,
		baseURL: cfg.BaseURL,
		log:     log,
	}
}

// TriggerInterviewFlow implements RecruitmentService.
func (r *recruitmentService) TriggerInterviewFlow(ctx context.Context, email, name string, matchScore int) error {
	payload := interviewSchedulePayload{
		CandidateEmail: email,
		CandidateName:  name,
		MatchScore:     matchScore,
		ApplicationID:  "", // filled once application records link submissions
		InterviewTime:  time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(r.baseURL + "/api/recruitment/applications/schedule")
	if err != nil {
		return fmt.Errorf("recruitment service unreachable: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("recruitment service returned %d: %s", resp.StatusCode(), resp.String())
	}

	r.log.Info("interview flow triggered",
		zap.String("candidate", name),
		zap.Int("match_score", matchScore),
	)
	return nil
}
