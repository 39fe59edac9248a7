package worker_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/hirelens/hirelens/internal/adapters/mq/queue"
	"github.com/hirelens/hirelens/internal/adapters/mq/worker"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubEvaluator returns a fixed evaluation for any job.
type stubEvaluator struct{}

func (stubEvaluator) Evaluate(_ context.Context, job worker.Job) model.Evaluation {
	return model.Evaluation{
		ID:      job.ID,
		Scores:  model.ScoreReport{Cumulative: model.CumulativeScore{Value: 72.0}},
		Verdict: model.Verdict{Recommendation: "RECOMMENDED"},
	}
}

// memoryRecorder captures status transitions and stored results.
type memoryRecorder struct {
	mu       sync.Mutex
	statuses map[string][]model.JobStatus
	results  map[string]model.Evaluation
	putErr   error
}

func newMemoryRecorder() *memoryRecorder {
	return &memoryRecorder{
		statuses: make(map[string][]model.JobStatus),
		results:  make(map[string]model.Evaluation),
	}
}

func (r *memoryRecorder) SetStatus(_ context.Context, id string, st model.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[id] = append(r.statuses[id], st)
	return nil
}

func (r *memoryRecorder) Put(_ context.Context, eval model.Evaluation) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[eval.ID] = eval
	return nil
}

func (r *memoryRecorder) transitions(id string) []model.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Status, 0, len(r.statuses[id]))
	for _, st := range r.statuses[id] {
		out = append(out, st.Status)
	}
	return out
}

func (r *memoryRecorder) final(id string) model.JobStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	history := r.statuses[id]
	return history[len(history)-1]
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestWorkerProcessing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	Convey("Given a running worker", t, func() {
		q := queue.NewInMemoryQueue()
		recorder := newMemoryRecorder()
		w := worker.NewInMemoryWorker(q, stubEvaluator{}, recorder, worker.WithName("test-worker"))
		go w.Run(ctx)
		Reset(func() { _ = w.Shutdown(ctx) })

		Convey("When a job is enqueued", func() {
			job := model.Job{ID: "job-1", SubmittedAt: time.Now()}
			So(q.Enqueue(ctx, job), ShouldBeTrue)

			Convey("Then it is evaluated, stored and marked completed", func() {
				So(waitFor(func() bool {
					r := recorder
					r.mu.Lock()
					defer r.mu.Unlock()
					_, ok := r.results["job-1"]
					return ok && len(r.statuses["job-1"]) >= 3
				}), ShouldBeTrue)

				So(recorder.results["job-1"].Verdict.Recommendation, ShouldEqual, "RECOMMENDED")

				transitions := recorder.transitions("job-1")
				So(transitions[0], ShouldEqual, model.StatusProcessing)
				So(transitions[len(transitions)-1], ShouldEqual, model.StatusCompleted)

				final := recorder.final("job-1")
				So(final.Progress, ShouldEqual, 100)
				So(final.CompletedAt.IsZero(), ShouldBeFalse)
			})
		})
	})
}

func TestWorkerStoreFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	Convey("Given a recorder whose result writes fail", t, func() {
		q := queue.NewInMemoryQueue()
		recorder := newMemoryRecorder()
		recorder.putErr = errors.New("disk full")
		w := worker.NewInMemoryWorker(q, stubEvaluator{}, recorder)
		go w.Run(ctx)
		Reset(func() { _ = w.Shutdown(ctx) })

		Convey("When a job is processed", func() {
			So(q.Enqueue(ctx, model.Job{ID: "job-2", SubmittedAt: time.Now()}), ShouldBeTrue)

			Convey("Then the job ends in the error state with the cause", func() {
				So(waitFor(func() bool {
					ts := recorder.transitions("job-2")
					return len(ts) > 0 && ts[len(ts)-1] == model.StatusError
				}), ShouldBeTrue)
				So(recorder.final("job-2").Message, ShouldEqual, "disk full")
			})
		})
	})
}

func TestPool(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	Convey("Given a pool of four workers", t, func() {
		q := queue.NewInMemoryQueue()
		recorder := newMemoryRecorder()
		pool := worker.NewPool(4, q, stubEvaluator{}, recorder)
		So(pool.Size(), ShouldEqual, 4)

		pool.Start(ctx)

		Convey("When twenty jobs are enqueued", func() {
			for i := 0; i < 20; i++ {
				So(q.Enqueue(ctx, model.Job{
					ID:          "job-" + string(rune('a'+i)),
					SubmittedAt: time.Now(),
				}), ShouldBeTrue)
			}

			Convey("Then every job completes", func() {
				So(waitFor(func() bool {
					recorder.mu.Lock()
					defer recorder.mu.Unlock()
					return len(recorder.results) == 20
				}), ShouldBeTrue)
			})
		})

		Convey("When the pool shuts down", func() {
			So(pool.Shutdown(ctx), ShouldBeNil)
		})
	})
}
