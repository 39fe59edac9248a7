package speech

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Sentiment banding thresholds and defaults.
const (
	neutralSentimentScore = 50.0
	positiveThreshold     = 60.0
	negativeThreshold     = 40.0

	// Sentiment labels.
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Estimator produces a polarity in [-1,1] for a transcript. The fuser
// averages several independent estimators into one compound value.
type Estimator interface {
	Polarity(text string) float64
}

// vaderEstimator wraps the VADER rule-based sentiment model.
type vaderEstimator struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func newVaderEstimator() *vaderEstimator {
	return &vaderEstimator{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *vaderEstimator) Polarity(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// lexiconEstimator is a simple embedded polarity lexicon; its output is
// averaged with VADER's so neither estimator dominates.
type lexiconEstimator struct{}

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "strong": {}, "passionate": {},
	"enjoy": {}, "enjoyed": {}, "love": {}, "loved": {}, "success": {},
	"successful": {}, "confident": {}, "eager": {}, "excited": {},
	"exciting": {}, "happy": {}, "proud": {}, "effective": {}, "improve": {},
	"improved": {}, "best": {}, "positive": {}, "achievement": {},
	"accomplished": {}, "motivated": {}, "skilled": {}, "fit": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "poor": {}, "terrible": {}, "weak": {}, "hate": {},
	"hated": {}, "failure": {}, "failed": {}, "fail": {}, "difficult": {},
	"problem": {}, "problems": {}, "worried": {}, "worry": {}, "nervous": {},
	"afraid": {}, "unhappy": {}, "negative": {}, "struggle": {},
	"struggled": {}, "worst": {}, "wrong": {}, "unable": {}, "quit": {},
}

func (lexiconEstimator) Polarity(text string) float64 {
	var pos, neg int
	for _, tok := range tokenize(text) {
		if _, ok := positiveWords[tok]; ok {
			pos++
		} else if _, ok := negativeWords[tok]; ok {
			neg++
		}
	}
	hits := pos + neg
	if hits == 0 {
		return 0.0
	}
	return float64(pos-neg) / float64(hits)
}

// sentimentLabel bands a sentiment score into positive/negative/neutral.
func sentimentLabel(score float64) string {
	switch {
	case score >= positiveThreshold:
		return SentimentPositive
	case score <= negativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// tokenize lowercases and splits on whitespace.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
