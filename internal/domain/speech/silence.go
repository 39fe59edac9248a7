package speech

import (
	"errors"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// Silence scoring constants.
const (
	// neutralSilenceScore is the fallback for zero-duration or otherwise
	// unanalyzable clips.
	neutralSilenceScore = 50.0

	silencePenaltyFactor = 100.0
)

var errUnanalyzableClip = errors.New("clip has no usable duration")

// Segment partitions an RMS energy envelope into qualifying silence
// intervals: frames below threshold are silent, contiguous silent frames
// merge into one interval, and intervals shorter than minPause are dropped
// as natural speech pauses.
func Segment(energy []float64, frameSeconds, threshold, minPause float64) []model.SilenceInterval {
	if len(energy) == 0 || frameSeconds <= 0 {
		return nil
	}

	var intervals []model.SilenceInterval
	runStart := -1.0
	for i, rms := range energy {
		t := float64(i) * frameSeconds
		silent := rms < threshold
		switch {
		case silent && runStart < 0:
			runStart = t
		case !silent && runStart >= 0:
			if d := t - runStart; d >= minPause {
				intervals = append(intervals, model.SilenceInterval{Start: runStart, End: t, Duration: d})
			}
			runStart = -1.0
		}
	}
	// Close a trailing silent run at the end of the clip.
	if runStart >= 0 {
		end := float64(len(energy)) * frameSeconds
		if d := end - runStart; d >= minPause {
			intervals = append(intervals, model.SilenceInterval{Start: runStart, End: end, Duration: d})
		}
	}
	return intervals
}

// scoreSilence derives the hesitation sub-score from qualifying intervals:
// 100 minus the silence share of the clip, floored at zero.
func scoreSilence(intervals []model.SilenceInterval, totalSeconds float64) model.SilenceAnalysis {
	if totalSeconds <= 0 {
		return model.SilenceAnalysis{
			Score: neutralSilenceScore,
			Err:   errUnanalyzableClip.Error(),
		}
	}

	var totalSilence float64
	for _, iv := range intervals {
		totalSilence += iv.Duration
	}
	ratio := totalSilence / totalSeconds

	score := silencePenaltyFactor - silencePenaltyFactor*ratio
	if score < 0 {
		score = 0
	}

	return model.SilenceAnalysis{
		Segments:      intervals,
		TotalSilence:  totalSilence,
		TotalDuration: totalSeconds,
		Ratio:         ratio,
		Score:         round2(score),
	}
}
