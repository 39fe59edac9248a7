// Package worker defines worker contracts for asynchronous evaluation
// processing.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/pkg/logger"
	"github.com/hirelens/hirelens/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job is what workers read off the queue.
type Job = model.Job

// Evaluator runs the full analysis for one job. It never returns an error;
// channel failures surface as fallback scores inside the evaluation.
type Evaluator interface {
	Evaluate(ctx context.Context, job Job) model.Evaluation
}

// Recorder persists status transitions and completed evaluations.
type Recorder interface {
	SetStatus(ctx context.Context, id string, status model.JobStatus) error
	Put(ctx context.Context, eval model.Evaluation) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes queued jobs until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing evaluation jobs.
type InMemoryWorker struct {
	queue     Queue
	evaluator Evaluator
	recorder  Recorder
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, evaluator Evaluator, recorder Recorder, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		evaluator: evaluator,
		recorder:  recorder,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				return
			}
			w.processJob(ctx, job)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob runs one evaluation end to end: mark processing, evaluate,
// persist, mark completed. A failure at any persistence step marks the job
// errored rather than losing it silently.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	w.setStatus(ctx, job, model.StatusProcessing, 10, "Analyzing candidate signals")

	eval := w.evaluator.Evaluate(ctx, job)
	recordOutcome(eval)

	w.setStatus(ctx, job, model.StatusProcessing, 90, "Storing evaluation result")

	if err := w.recorder.Put(ctx, eval); err != nil {
		metrics.RecordEvaluationFailed()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_error")
		w.logger.Error(ctx, "failed to store evaluation",
			logger.String("jobID", job.ID),
			logger.Error(err),
		)
		w.markError(ctx, job, err)
		return
	}

	w.markCompleted(ctx, job)
	metrics.RecordEvaluationCompleted()
	metrics.RecordEvaluationLatency(float64(time.Since(job.SubmittedAt).Milliseconds()))
	w.logger.Info(ctx, "evaluation completed",
		logger.String("jobID", job.ID),
		logger.Float64("cumulative", eval.Scores.Cumulative.Value),
		logger.String("recommendation", eval.Verdict.Recommendation),
	)
}

func (w *InMemoryWorker) setStatus(ctx context.Context, job Job, status model.Status, progress int, message string) {
	err := w.recorder.SetStatus(ctx, job.ID, model.JobStatus{
		Status:    status,
		Progress:  progress,
		Message:   message,
		StartedAt: job.SubmittedAt,
	})
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "status_error")
		w.logger.Error(ctx, "failed to update job status",
			logger.String("jobID", job.ID),
			logger.Error(err),
		)
	}
}

func (w *InMemoryWorker) markCompleted(ctx context.Context, job Job) {
	err := w.recorder.SetStatus(ctx, job.ID, model.JobStatus{
		Status:      model.StatusCompleted,
		Progress:    100,
		Message:     "Analysis complete",
		StartedAt:   job.SubmittedAt,
		CompletedAt: time.Now(),
	})
	if err != nil {
		w.logger.Error(ctx, "failed to mark job completed",
			logger.String("jobID", job.ID),
			logger.Error(err),
		)
	}
}

func (w *InMemoryWorker) markError(ctx context.Context, job Job, cause error) {
	err := w.recorder.SetStatus(ctx, job.ID, model.JobStatus{
		Status:      model.StatusError,
		Progress:    100,
		Message:     cause.Error(),
		StartedAt:   job.SubmittedAt,
		CompletedAt: time.Now(),
	})
	if err != nil {
		w.logger.Error(ctx, "failed to mark job errored",
			logger.String("jobID", job.ID),
			logger.Error(err),
		)
	}
}

// recordOutcome publishes per-channel and cumulative score metrics.
func recordOutcome(eval model.Evaluation) {
	metrics.RecordChannelScore("video", eval.Video.Score)
	metrics.RecordChannelScore("audio", eval.Audio.Score)
	metrics.RecordChannelScore("text", eval.Text.Score)
	if eval.Video.Err != "" {
		metrics.RecordChannelFailure("video")
	}
	if eval.Audio.Err != "" {
		metrics.RecordChannelFailure("audio")
	}
	if eval.Text.Err != "" {
		metrics.RecordChannelFailure("text")
	}
	metrics.RecordCumulativeScore(eval.Scores.Cumulative.Value)
	metrics.RecordVerdict(eval.Verdict.Recommendation)
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, evaluator Evaluator, recorder Recorder) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			evaluator,
			recorder,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int { return len(p.workers) }

// Shutdown gracefully shuts down the entire worker pool, draining queued
// jobs first.
func (p *Pool) Shutdown(ctx context.Context) error {
	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		close(worker.shutdown)
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
