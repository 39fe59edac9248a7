// Package emotion converts per-frame facial-emotion labels into a bounded
// candidate-confidence score.
package emotion

import (
	"math"

	"github.com/hirelens/hirelens/internal/domain/band"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// Scoring constants.
const (
	// neutralWeight discounts Neutral labels; they drag the score down at
	// half the rate of a negative emotion.
	neutralWeight = 0.5

	// indeterminateScore is returned when no labels were observed at all:
	// an absent signal is neutral, not an error.
	indeterminateScore = 50.0
)

// Aggregator folds an emotion-label multiset into a VideoResult.
type Aggregator struct{}

// NewAggregator creates an emotion aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate scores the label multiset. Labels outside the classifier
// vocabulary are ignored. An empty multiset yields the fixed indeterminate
// score of 50.
func (a *Aggregator) Aggregate(labels []model.EmotionLabel) model.VideoResult {
	counts := make(map[model.EmotionLabel]int, 7)
	for _, l := range model.EmotionLabels() {
		counts[l] = 0
	}
	total := 0
	for _, l := range labels {
		if !l.Valid() {
			continue
		}
		counts[l]++
		total++
	}

	positive := counts[model.EmotionHappy] + counts[model.EmotionSurprise]
	negative := counts[model.EmotionAngry] + counts[model.EmotionDisgust] +
		counts[model.EmotionFear] + counts[model.EmotionSad]
	neutral := counts[model.EmotionNeutral]

	score := scoreCounts(positive, negative, neutral)

	return model.VideoResult{
		Score:           score,
		ConfidenceLevel: band.VideoConfidence.Lookup(score),
		EmotionCounts:   counts,
		TotalFaces:      total,
		PositiveCount:   positive,
		NegativeCount:   negative,
		NeutralCount:    neutral,
	}
}

// Failed builds the channel's documented error fallback: score 0 with the
// error recorded, distinct from the indeterminate 50 of an empty multiset.
func Failed(err error) model.VideoResult {
	counts := make(map[model.EmotionLabel]int, 7)
	for _, l := range model.EmotionLabels() {
		counts[l] = 0
	}
	return model.VideoResult{
		Score:           0.0,
		ConfidenceLevel: band.VideoConfidence.Lookup(0),
		EmotionCounts:   counts,
		Err:             err.Error(),
	}
}

// scoreCounts rescales the weighted label balance from [-total, +total]
// onto [0,100]. The observed total serves as both theoretical extremes, so
// the same raw balance maps differently under different sample sizes; this
// matches the channel's documented behavior.
func scoreCounts(positive, negative, neutral int) float64 {
	total := positive + negative + neutral
	if total == 0 {
		return indeterminateScore
	}

	weighted := float64(positive) - float64(negative) - neutralWeight*float64(neutral)

	maxPossible := float64(total)
	minPossible := -float64(total)
	normalized := (weighted - minPossible) / (maxPossible - minPossible) * band.MaxScore

	return round2(band.Clamp(normalized))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
