// Package model contains domain models passed between layers.
package model

import "time"

// EmotionLabel is one of the fixed seven facial-emotion categories the
// upstream classifier emits, one label per detected face per sampled frame.
type EmotionLabel string

// The classifier vocabulary.
const (
	EmotionAngry    EmotionLabel = "Angry"
	EmotionDisgust  EmotionLabel = "Disgust"
	EmotionFear     EmotionLabel = "Fear"
	EmotionHappy    EmotionLabel = "Happy"
	EmotionNeutral  EmotionLabel = "Neutral"
	EmotionSad      EmotionLabel = "Sad"
	EmotionSurprise EmotionLabel = "Surprise"
)

// EmotionLabels lists the vocabulary in classifier order.
func EmotionLabels() []EmotionLabel {
	return []EmotionLabel{
		EmotionAngry, EmotionDisgust, EmotionFear, EmotionHappy,
		EmotionNeutral, EmotionSad, EmotionSurprise,
	}
}

// Valid reports whether the label belongs to the classifier vocabulary.
func (l EmotionLabel) Valid() bool {
	switch l {
	case EmotionAngry, EmotionDisgust, EmotionFear, EmotionHappy,
		EmotionNeutral, EmotionSad, EmotionSurprise:
		return true
	default:
		return false
	}
}

// SilenceInterval is one contiguous run of silent audio, in seconds from
// clip start.
type SilenceInterval struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// VideoInput carries the per-frame emotion labels extracted upstream.
type VideoInput struct {
	Labels []EmotionLabel `json:"labels"`
}

// AudioInput carries the spoken-delivery signals for one clip. Either the
// raw RMS energy envelope (Energy + FrameSeconds) or precomputed silence
// intervals may be supplied; the envelope takes precedence when both are set.
type AudioInput struct {
	Energy       []float64         `json:"energy,omitempty"`
	FrameSeconds float64           `json:"frame_seconds,omitempty"`
	Silences     []SilenceInterval `json:"silences,omitempty"`
	TotalSeconds float64           `json:"total_seconds"`
	Transcript   string            `json:"transcript"`
}

// TextInput carries the document texts for the skill-match channel.
type TextInput struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	Transcript     string `json:"transcript,omitempty"`
	CodingHandle   string `json:"coding_handle,omitempty"`
}

// EvaluationRequest bundles the three channel inputs for one candidate.
type EvaluationRequest struct {
	CandidateName string     `json:"candidate_name,omitempty"`
	Video         VideoInput `json:"video"`
	Audio         AudioInput `json:"audio"`
	Text          TextInput  `json:"text"`
}

// Job pairs a server-issued id with the request it covers.
type Job struct {
	ID          string
	Request     EvaluationRequest
	SubmittedAt time.Time
}
