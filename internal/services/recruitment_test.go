package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"fairrank/resume-screener/internal/config"
)

func TestTriggerInterviewFlowPostsSchedulePayload(t *testing.T) {
	var got interviewSchedulePayload
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewRecruitmentService(config.RecruitmentConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, zap.NewNop())

	err := svc.TriggerInterviewFlow(context.Background(), "ada@example.com", "Ada", 85)
	if err != nil {
		t.Fatalf("TriggerInterviewFlow returned error: %v", err)
	}

	if gotPath != "/api/recruitment/applications/schedule" {
		t.Errorf("posted to %q", gotPath)
	}
	if got.CandidateEmail != "ada@example.com" || got.CandidateName != "Ada" {
		t.Errorf("candidate fields = %q / %q", got.CandidateEmail, got.CandidateName)
	}
	if got.MatchScore != 85 {
		t.Errorf("MatchScore = %d, want 85", got.MatchScore)
	}
	if _, err := time.Parse(time.RFC3339, got.InterviewTime); err != nil {
		t.Errorf("InterviewTime %q is not RFC3339: %v", got.InterviewTime, err)
	}
}

func TestTriggerInterviewFlowServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewRecruitmentService(config.RecruitmentConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, zap.NewNop())

	if err := svc.TriggerInterviewFlow(context.Background(), "ada@example.com", "Ada", 85); err == nil {
		t.Fatal("TriggerInterviewFlow ignored a 503 response")
	}
}

func TestTriggerInterviewFlowUnreachable(t *testing.T) {
	svc := NewRecruitmentService(config.RecruitmentConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	}, zap.NewNop())

	if err := svc.TriggerInterviewFlow(context.Background(), "ada@example.com", "Ada", 85); err == nil {
		t.Fatal("TriggerInterviewFlow ignored an unreachable service")
	}
}
