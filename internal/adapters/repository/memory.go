package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/pkg/metrics"
)

// record is one job's stored state. A result exists only for completed jobs.
type record struct {
	status model.JobStatus
	result *model.Evaluation
}

// MemoryStore keeps all records in a mutex-guarded map. It is the default
// backing and the one used in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	metrics.UpdateStoreRecords(0)
	return &MemoryStore{records: make(map[string]*record)}
}

// SetStatus upserts the lifecycle snapshot for a job.
func (s *MemoryStore) SetStatus(ctx context.Context, id string, status model.JobStatus) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		r = &record{}
		s.records[id] = r
	}
	r.status = status
	metrics.UpdateStoreRecords(len(s.records))
	return nil
}

// Status returns the lifecycle snapshot for a job.
func (s *MemoryStore) Status(ctx context.Context, id string) (model.JobStatus, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return model.JobStatus{}, ErrNotFound
	}
	return r.status, nil
}

// Put stores a completed evaluation keyed by its id.
func (s *MemoryStore) Put(ctx context.Context, eval model.Evaluation) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[eval.ID]
	if !ok {
		r = &record{}
		s.records[eval.ID] = r
	}
	r.result = &eval
	metrics.UpdateStoreRecords(len(s.records))
	return nil
}

// Get returns the completed evaluation for a job.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Evaluation, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok || r.result == nil {
		return model.Evaluation{}, ErrNotFound
	}
	return *r.result, nil
}

// Delete removes the status and any result for a job.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	metrics.UpdateStoreRecords(len(s.records))
	return nil
}

// List returns a summary of every tracked job.
func (s *MemoryStore) List(ctx context.Context) ([]model.JobSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.JobSummary, 0, len(s.records))
	for id, r := range s.records {
		out = append(out, model.JobSummary{
			ID:        id,
			Status:    r.status.Status,
			Progress:  r.status.Progress,
			Message:   r.status.Message,
			StartedAt: r.status.StartedAt,
		})
	}
	return out, nil
}

// Count returns the number of tracked jobs.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// DeleteCompletedBefore removes terminal jobs completed before the cutoff.
func (s *MemoryStore) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, r := range s.records {
		if r.status.Status.Terminal() && r.status.CompletedAt.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}
	if deleted > 0 {
		metrics.RecordStoreSweepDeleted(deleted)
		metrics.UpdateStoreRecords(len(s.records))
	}
	return deleted, nil
}

// Close is a no-op for the in-memory backing.
func (s *MemoryStore) Close() error { return nil }
