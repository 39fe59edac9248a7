package speech

import (
	"regexp"
	"strings"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// Filler scoring constants. Filler words are penalized at twice their raw
// frequency: a transcript that is half filler scores zero.
const (
	perfectFillerScore  = 100.0
	fillerPenaltyFactor = 200.0
)

// fillerVocab lists recognized hesitation words and phrases. Single tokens
// are matched by exact token equality; multi-word phrases as whole phrases.
var fillerVocab = []string{
	"um", "uh", "er", "ah", "like", "you know", "so", "well",
	"actually", "basically", "literally", "totally", "really",
	"kind of", "sort of", "i mean", "you see", "right",
}

// phrasePatterns precompiles whole-phrase matchers for multi-word fillers.
var phrasePatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, f := range fillerVocab {
		if strings.Contains(f, " ") {
			out[f] = regexp.MustCompile(`\b` + regexp.QuoteMeta(f) + `\b`)
		}
	}
	return out
}()

// analyzeFillers counts filler occurrences against the transcript word
// count. An empty transcript has nothing to penalize and scores 100.
func analyzeFillers(transcript string) model.FillerAnalysis {
	if strings.TrimSpace(transcript) == "" {
		return model.FillerAnalysis{Score: perfectFillerScore, Count: 0}
	}

	lower := strings.ToLower(transcript)
	tokens := strings.Fields(lower)
	totalWords := len(tokens)
	if totalWords == 0 {
		return model.FillerAnalysis{Score: perfectFillerScore, Count: 0}
	}

	details := make(map[string]int)
	count := 0
	for _, f := range fillerVocab {
		var n int
		if p, multi := phrasePatterns[f]; multi {
			n = len(p.FindAllStringIndex(lower, -1))
		} else {
			for _, tok := range tokens {
				if tok == f {
					n++
				}
			}
		}
		if n > 0 {
			details[f] = n
			count += n
		}
	}

	ratio := float64(count) / float64(totalWords)
	score := perfectFillerScore - fillerPenaltyFactor*ratio
	if score < 0 {
		score = 0
	}

	return model.FillerAnalysis{
		Score:      round2(score),
		Count:      count,
		TotalWords: totalWords,
		Ratio:      round4(ratio),
		Details:    details,
	}
}
