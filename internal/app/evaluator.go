package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hirelens/hirelens/internal/domain/emotion"
	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/scoring"
	"github.com/hirelens/hirelens/internal/domain/speech"
	"github.com/hirelens/hirelens/internal/domain/textmatch"
	"github.com/hirelens/hirelens/pkg/logger"
)

// Evaluator runs the three analysis channels concurrently and fuses their
// results into one evaluation. A panic inside a channel is caught at the
// channel boundary and replaced with that channel's fallback result, so one
// bad signal never takes down the whole evaluation.
type Evaluator struct {
	aggregator *emotion.Aggregator
	fuser      *speech.Fuser
	scorer     *textmatch.Scorer
	engine     *scoring.Engine
	logger     logger.Logger
}

// NewEvaluator wires the channel analyzers to the scoring engine.
func NewEvaluator(aggregator *emotion.Aggregator, fuser *speech.Fuser, scorer *textmatch.Scorer, engine *scoring.Engine, log logger.Logger) *Evaluator {
	return &Evaluator{
		aggregator: aggregator,
		fuser:      fuser,
		scorer:     scorer,
		engine:     engine,
		logger:     log,
	}
}

// Evaluate produces the complete evaluation for one job.
func (e *Evaluator) Evaluate(ctx context.Context, job model.Job) model.Evaluation {
	var (
		video model.VideoResult
		audio model.AudioResult
		text  model.TextResult
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		defer e.recoverChannel(ctx, job.ID, "video", func(err error) {
			video = emotion.Failed(err)
		})
		video = e.aggregator.Aggregate(job.Request.Video.Labels)
	}()

	go func() {
		defer wg.Done()
		defer e.recoverChannel(ctx, job.ID, "audio", func(err error) {
			audio = speech.Failed(err)
		})
		audio = e.fuser.Analyze(job.Request.Audio)
	}()

	go func() {
		defer wg.Done()
		defer e.recoverChannel(ctx, job.ID, "text", func(err error) {
			text = textmatch.Failed(err)
		})
		text = e.scorer.Analyze(job.Request.Text)
	}()

	wg.Wait()

	scores := e.engine.CalculateScores(video, audio, text)
	verdict := e.engine.GenerateVerdict(scores, video, audio, text)
	breakdown := e.engine.BreakdownFor(video, audio, text)

	return model.Evaluation{
		ID:        job.ID,
		Video:     video,
		Audio:     audio,
		Text:      text,
		Scores:    scores,
		Verdict:   verdict,
		Breakdown: breakdown,
		Metadata: model.Metadata{
			ProcessedAt:          time.Now().UTC(),
			CandidateName:        job.Request.CandidateName,
			JobDescriptionLength: len(job.Request.Text.JobDescription),
			CodingHandle:         job.Request.Text.CodingHandle,
		},
	}
}

// recoverChannel substitutes the channel fallback when the analyzer panics.
func (e *Evaluator) recoverChannel(ctx context.Context, jobID, channel string, fallback func(error)) {
	if r := recover(); r != nil {
		err := fmt.Errorf("%s analysis panic: %v", channel, r)
		e.logger.Error(ctx, "channel analysis panicked",
			logger.String("jobID", jobID),
			logger.String("channel", channel),
			logger.Any("panic", r),
		)
		fallback(err)
	}
}
