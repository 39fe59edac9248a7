package model

import "time"

// VideoResult is the emotion channel's output: a bounded confidence score
// plus the raw counts carried through to the breakdown view. Immutable once
// produced.
type VideoResult struct {
	Score           float64              `json:"score"`
	ConfidenceLevel string               `json:"confidence_level"`
	EmotionCounts   map[EmotionLabel]int `json:"emotion_counts"`
	TotalFaces      int                  `json:"total_faces"`
	PositiveCount   int                  `json:"positive_count"`
	NegativeCount   int                  `json:"negative_count"`
	NeutralCount    int                  `json:"neutral_count"`
	Err             string               `json:"error,omitempty"`
}

// SilenceAnalysis captures the hesitation sub-signal of the audio channel.
type SilenceAnalysis struct {
	Segments      []SilenceInterval `json:"silent_segments,omitempty"`
	TotalSilence  float64           `json:"total_silence_duration"`
	TotalDuration float64           `json:"total_duration"`
	Ratio         float64           `json:"silence_ratio"`
	Score         float64           `json:"score"`
	Err           string            `json:"error,omitempty"`
}

// SentimentAnalysis captures the transcript-polarity sub-signal.
type SentimentAnalysis struct {
	Score    float64 `json:"score"`
	Label    string  `json:"sentiment"`
	Polarity float64 `json:"polarity"`
	Err      string  `json:"error,omitempty"`
}

// FillerAnalysis captures the hesitation-word sub-signal.
type FillerAnalysis struct {
	Score      float64        `json:"score"`
	Count      int            `json:"filler_count"`
	TotalWords int            `json:"total_words"`
	Ratio      float64        `json:"filler_ratio"`
	Details    map[string]int `json:"filler_details,omitempty"`
	Err        string         `json:"error,omitempty"`
}

// AudioResult is the communication channel's output.
type AudioResult struct {
	Score              float64           `json:"score"`
	CommunicationLevel string            `json:"communication_level"`
	Silence            SilenceAnalysis   `json:"silence_analysis"`
	Sentiment          SentimentAnalysis `json:"sentiment_analysis"`
	Filler             FillerAnalysis    `json:"filler_analysis"`
	Err                string            `json:"error,omitempty"`
}

// SkillSet holds the curated-vocabulary skills found in a text.
type SkillSet struct {
	Technical []string `json:"technical_skills"`
	Soft      []string `json:"soft_skills"`
}

// Total counts all found skills.
func (s SkillSet) Total() int { return len(s.Technical) + len(s.Soft) }

// ResumeMatch scores the resume against the job description.
type ResumeMatch struct {
	Similarity        float64  `json:"overall_similarity"`
	TechnicalMatch    float64  `json:"technical_match"`
	SoftMatch         float64  `json:"soft_match"`
	Score             float64  `json:"match_score"`
	ResumeSkills      SkillSet `json:"resume_skills"`
	JobSkills         SkillSet `json:"job_skills"`
	MatchingTechnical []string `json:"matching_technical_skills"`
	MatchingSoft      []string `json:"matching_soft_skills"`
	MissingTechnical  []string `json:"missing_technical_skills"`
	MissingSoft       []string `json:"missing_soft_skills"`
}

// TranscriptMatch scores the interview transcript against the job
// description. Analyzed is false when no transcript was supplied.
type TranscriptMatch struct {
	Analyzed      bool     `json:"analyzed"`
	Similarity    float64  `json:"similarity"`
	Comprehension float64  `json:"comprehension_score"`
	Score         float64  `json:"match_score"`
	Skills        SkillSet `json:"transcript_skills"`
}

// CodingStats is the opaque external coding-assessment signal, present only
// when the request named a coding handle.
type CodingStats struct {
	Present        bool    `json:"present"`
	Handle         string  `json:"username,omitempty"`
	TotalSolved    int     `json:"total_solved,omitempty"`
	EasySolved     int     `json:"easy_solved,omitempty"`
	MediumSolved   int     `json:"medium_solved,omitempty"`
	HardSolved     int     `json:"hard_solved,omitempty"`
	AcceptanceRate float64 `json:"acceptance_rate,omitempty"`
	Ranking        int     `json:"ranking,omitempty"`
	Score          float64 `json:"coding_score"`
}

// TextResult is the skill-match channel's output.
type TextResult struct {
	Score      float64         `json:"score"`
	MatchLevel string          `json:"skill_match_level"`
	Resume     ResumeMatch     `json:"resume_analysis"`
	Transcript TranscriptMatch `json:"transcript_analysis"`
	Coding     CodingStats     `json:"coding_stats"`
	Err        string          `json:"error,omitempty"`
}

// Explanation is the banded interpretation attached to one score.
type Explanation struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Interpretation string `json:"interpretation"`
}

// Weights is the cross-channel weight vector. Weights are non-negative and
// sum to 1.0; the vector is fixed at engine construction.
type Weights struct {
	Video float64 `json:"video"`
	Audio float64 `json:"audio"`
	Text  float64 `json:"text"`
}

// ScoreEntry is one channel's contribution to the score report.
type ScoreEntry struct {
	Value       float64     `json:"value"`
	Explanation Explanation `json:"explanation"`
	Weight      float64     `json:"weight"`
}

// IndividualScores groups the three channel entries.
type IndividualScores struct {
	Video ScoreEntry `json:"video"`
	Audio ScoreEntry `json:"audio"`
	Text  ScoreEntry `json:"text"`
}

// CumulativeScore is the weighted fusion of the three channel scores.
type CumulativeScore struct {
	Value       float64     `json:"value"`
	Explanation Explanation `json:"explanation"`
	WeightsUsed Weights     `json:"weights_used"`
}

// ScoreReport is the engine's numeric output.
type ScoreReport struct {
	Individual IndividualScores `json:"individual_scores"`
	Cumulative CumulativeScore  `json:"cumulative_score"`
}

// Verdict is the final recommendation with supporting rationale. It is the
// output of a pure function and carries no identity of its own.
type Verdict struct {
	Recommendation      string   `json:"recommendation"`
	RecommendationColor string   `json:"recommendation_color"`
	Summary             string   `json:"summary"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
	ConfidenceLevel     string   `json:"confidence_level"`
}

// VideoBreakdown re-projects emotion channel fields for presentation.
type VideoBreakdown struct {
	EmotionCounts      map[EmotionLabel]int `json:"emotion_counts"`
	ConfidenceLevel    string               `json:"confidence_level"`
	TotalFacesDetected int                  `json:"total_faces_detected"`
}

// AudioBreakdown re-projects communication channel fields.
type AudioBreakdown struct {
	CommunicationLevel string  `json:"communication_level"`
	Sentiment          string  `json:"sentiment"`
	SilenceRatio       float64 `json:"silence_ratio"`
	FillerCount        int     `json:"filler_count"`
}

// TextBreakdown re-projects skill-match channel fields.
type TextBreakdown struct {
	SkillMatchLevel      string  `json:"skill_match_level"`
	TechnicalSkillsFound int     `json:"technical_skills_found"`
	SoftSkillsFound      int     `json:"soft_skills_found"`
	CodingScore          float64 `json:"coding_score"`
}

// Breakdown is the read-only detailed view; it derives from the channel
// results and performs no new computation.
type Breakdown struct {
	Video VideoBreakdown `json:"video_analysis"`
	Audio AudioBreakdown `json:"audio_analysis"`
	Text  TextBreakdown  `json:"text_analysis"`
}

// Metadata records request facts alongside the stored result.
type Metadata struct {
	ProcessedAt          time.Time `json:"processed_at"`
	CandidateName        string    `json:"candidate_name,omitempty"`
	JobDescriptionLength int       `json:"job_description_length"`
	CodingHandle         string    `json:"coding_handle,omitempty"`
}

// Evaluation is the complete write-once record for one candidate: the three
// channel results, the fused score report, the verdict and the breakdown.
type Evaluation struct {
	ID        string      `json:"id"`
	Video     VideoResult `json:"video"`
	Audio     AudioResult `json:"audio"`
	Text      TextResult  `json:"text"`
	Scores    ScoreReport `json:"scores"`
	Verdict   Verdict     `json:"verdict"`
	Breakdown Breakdown   `json:"breakdown"`
	Metadata  Metadata    `json:"metadata"`
}
