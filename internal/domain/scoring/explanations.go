package scoring

import (
	"github.com/hirelens/hirelens/internal/domain/band"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// explanationTable couples a fixed title and description with a band table
// of per-range interpretations.
type explanationTable struct {
	title       string
	description string
	ranges      band.Table
}

// explain resolves the interpretation for a score and packages the full
// explanation for the report.
func (e explanationTable) explain(score float64) model.Explanation {
	return model.Explanation{
		Title:          e.title,
		Description:    e.description,
		Interpretation: e.ranges.Lookup(score),
	}
}

var videoExplanation = explanationTable{
	title:       "Emotion & Confidence Score",
	description: "Measures emotional stability and confidence based on facial expressions during the interview.",
	ranges: band.New(
		[]float64{0, 35, 50, 65, 80},
		[]string{
			"Poor - Displays significant anxiety, fear, or negative emotions.",
			"Below Average - Shows signs of nervousness or uncertainty.",
			"Average - Balanced emotional state with mixed expressions.",
			"Good - Demonstrates confidence with occasional neutral expressions.",
			"Excellent - Shows high confidence, positive demeanor, and emotional stability.",
		},
	),
}

var audioExplanation = explanationTable{
	title:       "Communication & Speaking Skills",
	description: "Evaluates speaking clarity, confidence, and communication effectiveness.",
	ranges: band.New(
		[]float64{0, 40, 55, 70, 85},
		[]string{
			"Poor - Significant communication challenges, excessive hesitation.",
			"Below Average - Frequent pauses, filler words, or unclear speech.",
			"Average - Adequate communication with some hesitation.",
			"Good - Effective communication with minor filler words.",
			"Excellent - Clear speech, minimal hesitation, positive tone.",
		},
	),
}

var textExplanation = explanationTable{
	title:       "Skills & Qualifications Match",
	description: "Assesses how well candidate skills align with job requirements.",
	ranges: band.New(
		[]float64{0, 40, 55, 70, 85},
		[]string{
			"Poor - Significant skill gaps and poor job fit.",
			"Below Average - Limited alignment with job requirements.",
			"Average - Some relevant skills but gaps in key areas.",
			"Good - Most required skills present with good experience.",
			"Excellent - Strong alignment with job requirements and skills.",
		},
	),
}

var cumulativeExplanation = explanationTable{
	title:       "Overall Candidate Score",
	description: "Weighted combination of all assessment metrics (40% emotion, 30% communication, 30% skills).",
	ranges: band.New(
		[]float64{0, 40, 55, 70, 85},
		[]string{
			"Poor Fit - Not recommended for this position.",
			"Below Average - May need additional training or different role.",
			"Average Candidate - Consider based on specific role needs.",
			"Good Candidate - Recommended with minor considerations.",
			"Excellent Candidate - Highly recommended for the position.",
		},
	),
}
