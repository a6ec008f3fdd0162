package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fairrank/resume-screener/internal/repositories"
)

// Worker drains the submission queue with a fixed pool of goroutines and a
// poller that re-enqueues submissions left queued across restarts.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueSubmission(subID uuid.UUID)
}

type worker struct {
	subRepo      repositories.SubmissionRepository
	submissions  SubmissionService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	log          *zap.Logger
}

func NewWorker(
	subRepo repositories.SubmissionRepository,
	submissions SubmissionService,
	concurrency int,
	pollInterval time.Duration,
	log *zap.Logger,
) Worker {
	return &worker{
		subRepo:      subRepo,
		submissions:  submissions,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		log:          log,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting screening workers", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingSubmissions(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.log.Info("stopping screening workers")
	close(w.stopChan)
	w.wg.Wait()
	w.log.Info("screening workers stopped")
}

// EnqueueSubmission implements Worker.
func (w *worker) EnqueueSubmission(subID uuid.UUID) {
	select {
	case w.jobQueue <- subID:
		w.log.Debug("submission enqueued", zap.String("submission_id", subID.String()))
	case <-w.stopChan:
		w.log.Warn("worker stopped, submission not enqueued",
			zap.String("submission_id", subID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.log.Debug("worker stopped", zap.Int("worker_id", workerID))
			return
		case subID := <-w.jobQueue:
			w.log.Debug("processing submission",
				zap.Int("worker_id", workerID),
				zap.String("submission_id", subID.String()))
			if err := w.submissions.Process(ctx, subID); err != nil {
				w.log.Error("submission processing failed",
					zap.Int("worker_id", workerID),
					zap.String("submission_id", subID.String()),
					zap.Error(err))
			}
		}
	}
}

func (w *worker) pollPendingSubmissions(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.subRepo.FindPendingJobs(10)
			if err != nil {
				w.log.Warn("failed to fetch pending submissions", zap.Error(err))
				continue
			}

			for _, sub := range pending {
				w.EnqueueSubmission(sub.ID)
			}
		}
	}
}
