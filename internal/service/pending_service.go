package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/studentaffairs/org-portal-api/internal/dto"
	"github.com/studentaffairs/org-portal-api/internal/repository"
	"github.com/studentaffairs/org-portal-api/pkg/jobs"
)

type pendingRepository interface {
	Counts(ctx context.Context) (*repository.PendingCountRow, error)
}

type pendingSubscriber interface {
	Subscribe(fn func(table string))
}

// PendingService is the approval-badge read model: per-entity counts of rows
// awaiting central-office approval. Every change notification triggers a
// full recount through a worker queue; incremental counters are deliberately
// avoided because they drift from the true row count.
type PendingService struct {
	repo    pendingRepository
	queue   *jobs.Queue
	logger  *zap.Logger
	metrics *MetricsService

	mu       sync.RWMutex
	snapshot *dto.PendingCounts
}

// NewPendingService constructs the aggregator and subscribes it to table
// changes. Start must be called before notifications can be processed.
func NewPendingService(repo pendingRepository, bus pendingSubscriber, workers int, logger *zap.Logger) *PendingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PendingService{repo: repo, logger: logger}
	s.queue = jobs.NewQueue("pending-counts", s.handleRecompute, jobs.QueueConfig{
		Workers: workers,
		Logger:  logger,
	})
	if bus != nil {
		bus.Subscribe(func(table string) {
			if err := s.queue.Enqueue(jobs.Job{Type: "recompute", Payload: table}); err != nil {
				logger.Warn("pending recompute enqueue failed", zap.String("table", table), zap.Error(err))
			}
		})
	}
	return s
}

// SetMetrics attaches recompute instrumentation.
func (s *PendingService) SetMetrics(m *MetricsService) {
	s.metrics = m
}

// Start launches the recompute workers.
func (s *PendingService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *PendingService) Stop() {
	s.queue.Stop()
}

// Snapshot returns the current pending counts. The first call (or a call
// before any notification has been processed) computes synchronously.
func (s *PendingService) Snapshot(ctx context.Context) (*dto.PendingCounts, error) {
	s.mu.RLock()
	cached := s.snapshot
	s.mu.RUnlock()
	if cached != nil {
		copied := *cached
		return &copied, nil
	}
	return s.recompute(ctx)
}

func (s *PendingService) handleRecompute(ctx context.Context, _ jobs.Job) error {
	_, err := s.recompute(ctx)
	return err
}

func (s *PendingService) recompute(ctx context.Context) (*dto.PendingCounts, error) {
	start := time.Now()
	row, err := s.repo.Counts(ctx)
	s.metrics.ObservePendingRecompute(time.Since(start))
	if err != nil {
		return nil, err
	}
	counts := &dto.PendingCounts{
		Announcements: row.Announcements,
		Events:        row.Events,
		Fundraising:   row.Fundraising,
		Total:         row.Announcements + row.Events + row.Fundraising,
	}
	s.mu.Lock()
	s.snapshot = counts
	s.mu.Unlock()
	copied := *counts
	return &copied, nil
}
