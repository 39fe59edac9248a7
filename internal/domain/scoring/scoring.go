// Package scoring fuses the three channel results into the final report:
// weighted individual and cumulative scores with banded explanations, a
// recommendation verdict with supporting rationale, and the presentation
// breakdown. Everything here is a pure function of its inputs.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/speech"
)

// Default cross-channel weights.
const (
	DefaultVideoWeight = 0.40
	DefaultAudioWeight = 0.30
	DefaultTextWeight  = 0.30
)

// Recommendation tiers on the cumulative score.
const (
	highlyRecommendedFloor = 85.0
	recommendedFloor       = 70.0
	conditionalFloor       = 55.0
)

// Verdict rule thresholds.
const (
	strengthFloor         = 70.0
	improvementCeiling    = 50.0
	technicalMatchFloor   = 0.7
	fillerCountCeiling    = 10
	maxVerdictItems       = 5
	maxNamedSkills        = 3
	highVarianceCeiling   = 15.0
	mediumVarianceCeiling = 25.0
	highCumulativeFloor   = 70.0
	mediumCumulativeFloor = 50.0
)

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the default channel weights. The caller is
// responsible for passing a vector that sums to 1.
func WithWeights(w model.Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// Engine computes score reports and verdicts. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	weights model.Weights
}

// NewEngine builds an Engine with the default 0.40/0.30/0.30 weights unless
// overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: model.Weights{
			Video: DefaultVideoWeight,
			Audio: DefaultAudioWeight,
			Text:  DefaultTextWeight,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the engine's weight vector.
func (e *Engine) Weights() model.Weights { return e.weights }

// CalculateScores fuses the three channel scores into the report. Channel
// fallback scores participate like any other value; the cumulative score is
// the weighted sum of the raw channel scores, rounded last.
func (e *Engine) CalculateScores(video model.VideoResult, audio model.AudioResult, text model.TextResult) model.ScoreReport {
	cumulative := video.Score*e.weights.Video +
		audio.Score*e.weights.Audio +
		text.Score*e.weights.Text

	return model.ScoreReport{
		Individual: model.IndividualScores{
			Video: model.ScoreEntry{
				Value:       round2(video.Score),
				Explanation: videoExplanation.explain(video.Score),
				Weight:      e.weights.Video,
			},
			Audio: model.ScoreEntry{
				Value:       round2(audio.Score),
				Explanation: audioExplanation.explain(audio.Score),
				Weight:      e.weights.Audio,
			},
			Text: model.ScoreEntry{
				Value:       round2(text.Score),
				Explanation: textExplanation.explain(text.Score),
				Weight:      e.weights.Text,
			},
		},
		Cumulative: model.CumulativeScore{
			Value:       round2(cumulative),
			Explanation: cumulativeExplanation.explain(cumulative),
			WeightsUsed: e.weights,
		},
	}
}

// GenerateVerdict derives the recommendation, rationale lists, confidence
// and summary from the score report and the channel detail. A panic while
// assembling the verdict degrades to an explicit error verdict instead of
// failing the evaluation.
func (e *Engine) GenerateVerdict(scores model.ScoreReport, video model.VideoResult, audio model.AudioResult, text model.TextResult) (out model.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			out = model.Verdict{
				Recommendation:      "ANALYSIS ERROR",
				RecommendationColor: "gray",
				Summary:             fmt.Sprintf("Unable to generate verdict due to error: %v", r),
				Strengths:           []string{},
				Improvements:        []string{},
				ConfidenceLevel:     "Low",
			}
		}
	}()

	cumulative := scores.Cumulative.Value

	var recommendation, color string
	switch {
	case cumulative >= highlyRecommendedFloor:
		recommendation, color = "HIGHLY RECOMMENDED", "green"
	case cumulative >= recommendedFloor:
		recommendation, color = "RECOMMENDED", "blue"
	case cumulative >= conditionalFloor:
		recommendation, color = "CONDITIONAL", "orange"
	default:
		recommendation, color = "NOT RECOMMENDED", "red"
	}

	return model.Verdict{
		Recommendation:      recommendation,
		RecommendationColor: color,
		Summary:             summarize(cumulative, scores.Individual),
		Strengths:           strengths(scores.Individual, video, audio, text),
		Improvements:        improvements(scores.Individual, audio, text),
		ConfidenceLevel:     confidence(cumulative, scores.Individual),
	}
}

// BreakdownFor re-projects the channel results for presentation without
// recomputing anything.
func (e *Engine) BreakdownFor(video model.VideoResult, audio model.AudioResult, text model.TextResult) model.Breakdown {
	return model.Breakdown{
		Video: model.VideoBreakdown{
			EmotionCounts:      video.EmotionCounts,
			ConfidenceLevel:    video.ConfidenceLevel,
			TotalFacesDetected: video.TotalFaces,
		},
		Audio: model.AudioBreakdown{
			CommunicationLevel: audio.CommunicationLevel,
			Sentiment:          audio.Sentiment.Label,
			SilenceRatio:       audio.Silence.Ratio,
			FillerCount:        audio.Filler.Count,
		},
		Text: model.TextBreakdown{
			SkillMatchLevel:      text.MatchLevel,
			TechnicalSkillsFound: len(text.Resume.ResumeSkills.Technical),
			SoftSkillsFound:      len(text.Resume.ResumeSkills.Soft),
			CodingScore:          text.Coding.Score,
		},
	}
}

// strengths applies the ordered strength rules and caps the list.
func strengths(ind model.IndividualScores, video model.VideoResult, audio model.AudioResult, text model.TextResult) []string {
	out := []string{}
	if ind.Video.Value >= strengthFloor {
		out = append(out, "Strong emotional intelligence and confidence")
	}
	if ind.Audio.Value >= strengthFloor {
		out = append(out, "Excellent communication skills")
	}
	if ind.Text.Value >= strengthFloor {
		out = append(out, "Good alignment with job requirements")
	}
	if video.PositiveCount > video.NegativeCount {
		out = append(out, "Positive demeanor throughout interview")
	}
	if audio.Sentiment.Label == speech.SentimentPositive {
		out = append(out, "Positive and enthusiastic communication")
	}
	if text.Resume.TechnicalMatch >= technicalMatchFloor {
		out = append(out, "Strong technical skill alignment")
	}
	return cap5(out)
}

// improvements applies the ordered improvement rules and caps the list.
func improvements(ind model.IndividualScores, audio model.AudioResult, text model.TextResult) []string {
	out := []string{}
	if ind.Video.Value < improvementCeiling {
		out = append(out, "Work on confidence and emotional regulation during interviews")
	}
	if ind.Audio.Value < improvementCeiling {
		out = append(out, "Improve communication clarity and reduce hesitation")
	}
	if ind.Text.Value < improvementCeiling {
		out = append(out, "Develop skills that better match job requirements")
	}
	if audio.Filler.Count > fillerCountCeiling {
		out = append(out, "Reduce use of filler words in speech")
	}
	if missing := text.Resume.MissingTechnical; len(missing) > 0 {
		if len(missing) > maxNamedSkills {
			missing = missing[:maxNamedSkills]
		}
		out = append(out, "Consider developing skills in: "+strings.Join(missing, ", "))
	}
	return cap5(out)
}

// summarize writes the tier sentence plus one sentence for the highest
// channel. Ties favor the video channel, then audio.
func summarize(cumulative float64, ind model.IndividualScores) string {
	var tier string
	switch {
	case cumulative >= highlyRecommendedFloor:
		tier = "This candidate demonstrates exceptional qualifications across all evaluation criteria."
	case cumulative >= recommendedFloor:
		tier = "This candidate shows strong potential with good performance in most areas."
	case cumulative >= conditionalFloor:
		tier = "This candidate has average qualifications with some areas needing attention."
	default:
		tier = "This candidate may not be the best fit for this role at this time."
	}

	highest := math.Max(ind.Video.Value, math.Max(ind.Audio.Value, ind.Text.Value))
	var channel string
	switch highest {
	case ind.Video.Value:
		channel = "Shows excellent emotional stability and confidence."
	case ind.Audio.Value:
		channel = "Demonstrates strong communication abilities."
	default:
		channel = "Has excellent skill alignment with the role."
	}
	return tier + " " + channel
}

// confidence rates the verdict by the spread between the best and worst
// channel scores, gated on the cumulative score.
func confidence(cumulative float64, ind model.IndividualScores) string {
	highest := math.Max(ind.Video.Value, math.Max(ind.Audio.Value, ind.Text.Value))
	lowest := math.Min(ind.Video.Value, math.Min(ind.Audio.Value, ind.Text.Value))
	variance := highest - lowest

	switch {
	case variance <= highVarianceCeiling && cumulative >= highCumulativeFloor:
		return "High"
	case variance <= mediumVarianceCeiling && cumulative >= mediumCumulativeFloor:
		return "Medium"
	default:
		return "Low"
	}
}

func cap5(items []string) []string {
	if len(items) > maxVerdictItems {
		return items[:maxVerdictItems]
	}
	return items
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
