// Package service provides the core evaluation service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	jobqueue "github.com/hirelens/hirelens/internal/adapters/mq/queue"
	workerpool "github.com/hirelens/hirelens/internal/adapters/mq/worker"
	"github.com/hirelens/hirelens/internal/adapters/repository"
	"github.com/hirelens/hirelens/internal/domain/emotion"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/scoring"
	"github.com/hirelens/hirelens/internal/domain/speech"
	"github.com/hirelens/hirelens/internal/domain/textmatch"
	"github.com/hirelens/hirelens/pkg/logger"
	"github.com/hirelens/hirelens/pkg/metrics"
)

// Default service configuration.
const defaultSweepSchedule = "@hourly"

// Service wires the queue, worker pool, analyzers and store into the
// evaluation pipeline consumed by the HTTP API.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	jobQueue   jobqueue.Queue
	evaluator  *Evaluator
	workerPool *workerpool.Pool
	sweeper    *cron.Cron

	workerCount     int
	queueSize       int
	weights         model.Weights
	energyThreshold float64
	minPause        float64
	resultTTL       time.Duration
	sweepSchedule   string

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithStore sets the result store backing. Defaults to the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithWeights sets the cross-channel weight vector for the scoring engine.
func WithWeights(w model.Weights) Option {
	return func(s *Service) { s.weights = w }
}

// WithSilenceParams sets the silence segmentation parameters for the audio
// channel.
func WithSilenceParams(energyThreshold, minPauseSeconds float64) Option {
	return func(s *Service) {
		if energyThreshold > 0 {
			s.energyThreshold = energyThreshold
		}
		if minPauseSeconds > 0 {
			s.minPause = minPauseSeconds
		}
	}
}

// WithRetention enables the retention sweeper: terminal jobs older than ttl
// are deleted on the given cron schedule. A zero ttl disables sweeping.
func WithRetention(ttl time.Duration, schedule string) Option {
	return func(s *Service) {
		s.resultTTL = ttl
		if schedule != "" {
			s.sweepSchedule = schedule
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10000,
		weights: model.Weights{
			Video: scoring.DefaultVideoWeight,
			Audio: scoring.DefaultAudioWeight,
			Text:  scoring.DefaultTextWeight,
		},
		sweepSchedule: defaultSweepSchedule,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting evaluation service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory store")
	}

	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	var speechOpts []speech.Option
	if s.energyThreshold > 0 || s.minPause > 0 {
		speechOpts = append(speechOpts,
			speech.WithEnergyThreshold(s.energyThreshold),
			speech.WithMinPause(s.minPause),
		)
	}

	s.evaluator = NewEvaluator(
		emotion.NewAggregator(),
		speech.NewFuser(speechOpts...),
		textmatch.NewScorer(),
		scoring.NewEngine(scoring.WithWeights(s.weights)),
		s.logger.Named("evaluator"),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.evaluator, s.store)
	s.workerPool.Start(ctx)

	if s.resultTTL > 0 {
		if err := s.startSweeper(ctx); err != nil {
			return err
		}
	}

	s.started = true
	s.logger.Info(ctx, "evaluation service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Bool("retention", s.resultTTL > 0),
	)

	return nil
}

// startSweeper schedules the retention sweep.
func (s *Service) startSweeper(ctx context.Context) error {
	s.sweeper = cron.New()
	_, err := s.sweeper.AddFunc(s.sweepSchedule, func() {
		cutoff := time.Now().Add(-s.resultTTL)
		deleted, err := s.store.DeleteCompletedBefore(ctx, cutoff)
		if err != nil {
			s.logger.Error(ctx, "retention sweep failed", logger.Error(err))
			return
		}
		if deleted > 0 {
			s.logger.Info(ctx, "retention sweep removed evaluations",
				logger.Int("deleted", deleted),
			)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule retention sweep %q: %w", s.sweepSchedule, err)
	}
	s.sweeper.Start()
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping evaluation service...")

	if s.sweeper != nil {
		s.sweeper.Stop()
	}

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "evaluation service stopped")
}

// Submit registers a new evaluation job and enqueues it for processing.
// Returns the assigned job id.
func (s *Service) Submit(ctx context.Context, req model.EvaluationRequest) (string, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return "", ErrNotStarted
	}

	job := model.Job{
		ID:          uuid.NewString(),
		Request:     req,
		SubmittedAt: time.Now().UTC(),
	}

	err := s.store.SetStatus(ctx, job.ID, model.JobStatus{
		Status:    model.StatusPending,
		Progress:  0,
		Message:   "Evaluation queued",
		StartedAt: job.SubmittedAt,
	})
	if err != nil {
		return "", fmt.Errorf("register job: %w", err)
	}

	if !s.jobQueue.Enqueue(ctx, job) {
		_ = s.store.Delete(ctx, job.ID)
		return "", ErrQueueFull
	}

	metrics.RecordEvaluationSubmitted()
	s.logger.Info(ctx, "evaluation submitted",
		logger.String("jobID", job.ID),
		logger.String("candidate", req.CandidateName),
	)
	return job.ID, nil
}

// Status returns the lifecycle snapshot for a job.
func (s *Service) Status(ctx context.Context, id string) (model.JobStatus, error) {
	return s.store.Status(ctx, id)
}

// Result returns the completed evaluation for a job. While the job is still
// pending or processing it returns ErrProcessing; for a job that ended in
// the error state it returns ErrJobFailed with the failure message.
func (s *Service) Result(ctx context.Context, id string) (model.Evaluation, error) {
	status, err := s.store.Status(ctx, id)
	if err != nil {
		return model.Evaluation{}, err
	}

	switch status.Status {
	case model.StatusError:
		return model.Evaluation{}, fmt.Errorf("%w: %s", ErrJobFailed, status.Message)
	case model.StatusCompleted:
		return s.store.Get(ctx, id)
	default:
		return model.Evaluation{}, ErrProcessing
	}
}

// Delete removes a job's status and result.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// List returns a summary of every tracked job.
func (s *Service) List(ctx context.Context) ([]model.JobSummary, error) {
	return s.store.List(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		stats["queueLength"] = s.jobQueue.Len(ctx)
		stats["totalEvaluations"] = s.store.Count(ctx)
		stats["retentionEnabled"] = s.resultTTL > 0
	}

	return stats
}
