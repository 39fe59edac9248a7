// Package band maps bounded scores to textual interpretations through
// ordered threshold tables.
//
// Every score type in the pipeline (per-channel labels and the engine's
// explanation tables) shares the same lookup rule: clamp the score to
// [0,100], scan the table in ascending order, and return the first band
// whose closed range contains the score. Adjacent bands share a boundary,
// so the lower band's upper bound is inclusive and wins ties.
package band

// Score domain bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Band is one closed sub-range of [0,100] mapped to a fixed text.
type Band struct {
	Lo   float64
	Hi   float64
	Text string
}

// Table is an ordered, contiguous partition of [0,100].
type Table []Band

// Clamp forces a score into the [0,100] domain before lookup.
func Clamp(score float64) float64 {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Lookup returns the text of the first band containing the clamped score.
// The table invariant guarantees a match for every score.
func (t Table) Lookup(score float64) string {
	s := Clamp(score)
	for _, b := range t {
		if b.Lo <= s && s <= b.Hi {
			return b.Text
		}
	}
	// Unreachable for a valid table; empty string flags a broken table.
	return ""
}

// Valid checks the table invariant: ascending, contiguous (each band starts
// where the previous one ends) and exhaustive over [0,100].
func (t Table) Valid() bool {
	if len(t) == 0 {
		return false
	}
	if t[0].Lo != MinScore || t[len(t)-1].Hi != MaxScore {
		return false
	}
	for i, b := range t {
		if b.Hi <= b.Lo {
			return false
		}
		if i > 0 && b.Lo != t[i-1].Hi {
			return false
		}
	}
	return true
}

// New builds a table from ascending thresholds and one text per band.
// thresholds are the five lower bounds (the first must be 0); the last band
// is closed at 100.
func New(thresholds []float64, texts []string) Table {
	if len(thresholds) == 0 || len(thresholds) != len(texts) {
		return nil
	}
	t := make(Table, len(thresholds))
	for i := range thresholds {
		hi := MaxScore
		if i < len(thresholds)-1 {
			hi = thresholds[i+1]
		}
		t[i] = Band{Lo: thresholds[i], Hi: hi, Text: texts[i]}
	}
	return t
}

// Channel label tables. Thresholds follow the channel scorers: video
// confidence breaks at 35/50/65/80, communication and skill match at
// 40/55/70/85.
var (
	VideoConfidence = New(
		[]float64{0, 35, 50, 65, 80},
		[]string{
			"Very Low Confidence",
			"Low Confidence",
			"Moderately Confident",
			"Confident",
			"Very Confident",
		},
	)

	AudioCommunication = New(
		[]float64{0, 40, 55, 70, 85},
		[]string{
			"Poor Communication",
			"Below Average Communication",
			"Average Communication",
			"Good Communication",
			"Excellent Communication",
		},
	)

	TextMatch = New(
		[]float64{0, 40, 55, 70, 85},
		[]string{
			"Poor Match",
			"Below Average Match",
			"Average Match",
			"Good Match",
			"Excellent Match",
		},
	)
)
