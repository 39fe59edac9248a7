// Package speech fuses silence, sentiment and filler-word signals into a
// bounded communication score for one candidate's spoken delivery.
package speech

import (
	"fmt"
	"math"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/band"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// Sub-score fusion weights.
const (
	silenceWeight   = 0.4
	sentimentWeight = 0.3
	fillerWeight    = 0.3

	defaultEnergyThreshold = 0.01
	defaultMinPause        = 3.0
)

// Option applies a configuration option to the Fuser.
type Option func(*Fuser)

// WithEnergyThreshold sets the RMS level below which a frame counts as silent.
func WithEnergyThreshold(threshold float64) Option {
	return func(f *Fuser) {
		if threshold > 0 {
			f.energyThreshold = threshold
		}
	}
}

// WithMinPause sets the minimum silent-interval duration, in seconds, that
// counts as hesitation.
func WithMinPause(seconds float64) Option {
	return func(f *Fuser) {
		if seconds > 0 {
			f.minPause = seconds
		}
	}
}

// WithEstimators replaces the sentiment estimators.
func WithEstimators(estimators ...Estimator) Option {
	return func(f *Fuser) {
		if len(estimators) > 0 {
			f.estimators = estimators
		}
	}
}

// Fuser combines the three audio sub-scores. Each sub-stage degrades to its
// documented neutral default independently; no sub-stage failure aborts the
// others.
type Fuser struct {
	estimators      []Estimator
	energyThreshold float64
	minPause        float64
}

// NewFuser creates a fuser with the default estimator pair (VADER plus the
// embedded lexicon) and default silence tuning.
func NewFuser(opts ...Option) *Fuser {
	f := &Fuser{
		estimators:      []Estimator{newVaderEstimator(), lexiconEstimator{}},
		energyThreshold: defaultEnergyThreshold,
		minPause:        defaultMinPause,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Analyze fuses the clip's sub-scores into an AudioResult.
func (f *Fuser) Analyze(in model.AudioInput) model.AudioResult {
	silence := f.analyzeSilence(in)
	sentiment := f.analyzeSentiment(in.Transcript)
	filler := analyzeFillers(in.Transcript)

	overall := silence.Score*silenceWeight +
		sentiment.Score*sentimentWeight +
		filler.Score*fillerWeight
	overall = round2(overall)

	return model.AudioResult{
		Score:              overall,
		CommunicationLevel: band.AudioCommunication.Lookup(overall),
		Silence:            silence,
		Sentiment:          sentiment,
		Filler:             filler,
	}
}

// Failed builds the channel's documented error fallback.
func Failed(err error) model.AudioResult {
	return model.AudioResult{
		Score:              0.0,
		CommunicationLevel: band.AudioCommunication.Lookup(0),
		Err:                err.Error(),
	}
}

// analyzeSilence segments the envelope when one is supplied, otherwise
// filters precomputed intervals to the qualifying minimum pause length.
func (f *Fuser) analyzeSilence(in model.AudioInput) model.SilenceAnalysis {
	total := in.TotalSeconds

	if len(in.Energy) > 0 && in.FrameSeconds > 0 {
		intervals := Segment(in.Energy, in.FrameSeconds, f.energyThreshold, f.minPause)
		if total <= 0 {
			total = float64(len(in.Energy)) * in.FrameSeconds
		}
		return scoreSilence(intervals, total)
	}

	var intervals []model.SilenceInterval
	for _, iv := range in.Silences {
		if iv.Duration >= f.minPause {
			intervals = append(intervals, iv)
		}
	}
	return scoreSilence(intervals, total)
}

// analyzeSentiment averages the estimators' polarities and rescales the
// compound value to [0,100]. A panicking estimator degrades the sub-score
// to its neutral default rather than failing the channel.
func (f *Fuser) analyzeSentiment(transcript string) (out model.SentimentAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			out = model.SentimentAnalysis{
				Score: neutralSentimentScore,
				Label: SentimentNeutral,
				Err:   fmt.Sprintf("sentiment estimator panic: %v", r),
			}
		}
	}()

	if strings.TrimSpace(transcript) == "" {
		return model.SentimentAnalysis{Score: neutralSentimentScore, Label: SentimentNeutral}
	}

	var sum float64
	for _, e := range f.estimators {
		sum += e.Polarity(transcript)
	}
	compound := sum / float64(len(f.estimators))

	score := round2((compound + 1) / 2 * band.MaxScore)

	return model.SentimentAnalysis{
		Score:    score,
		Label:    sentimentLabel(score),
		Polarity: compound,
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
