// Package textmatch scores how well a candidate's written materials line up
// with a job description. It compares the resume and the interview
// transcript to the posting with TF-IDF cosine similarity and curated skill
// vocabularies, folds in an optional external coding-assessment signal and
// fuses the parts into one bounded channel score.
package textmatch

import (
	"math"
	"sort"

	"github.com/hirelens/hirelens/internal/domain/band"
	"github.com/hirelens/hirelens/internal/domain/model"
)

// Fusion weights for the channel score. A part absent from the request
// contributes zero at full weight; the weights are not renormalized.
const (
	resumeWeight     = 0.5
	transcriptWeight = 0.3
	codingWeight     = 0.2
)

// Resume match mixes document similarity with skill-vocabulary overlap.
const (
	resumeSimilarityWeight = 0.4
	technicalOverlapWeight = 0.4
	softOverlapWeight      = 0.2
)

// Transcript match rewards both similarity to the posting and the sheer
// number of skills the candidate discussed, ten points each up to 100.
const (
	transcriptSimilarityWeight = 0.6
	comprehensionWeight        = 0.4
	comprehensionPerSkill      = 10.0
)

// CodingProvider resolves a coding-platform handle to the candidate's
// public statistics.
type CodingProvider interface {
	Stats(handle string) (model.CodingStats, error)
}

// StaticCodingProvider serves fixed representative statistics for any
// handle. It stands in until a real coding-platform integration exists.
type StaticCodingProvider struct{}

// Stats returns the same solved-problem profile for every handle.
func (StaticCodingProvider) Stats(handle string) (model.CodingStats, error) {
	return model.CodingStats{
		Present:        true,
		Handle:         handle,
		TotalSolved:    150,
		EasySolved:     80,
		MediumSolved:   55,
		HardSolved:     15,
		AcceptanceRate: 65.5,
		Ranking:        25000,
		Score:          75.0,
	}, nil
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithCodingProvider replaces the coding-statistics source.
func WithCodingProvider(p CodingProvider) Option {
	return func(s *Scorer) { s.coding = p }
}

// Scorer is the text channel. The zero provider set serves static coding
// stats; similarity and skill extraction have no external dependencies.
type Scorer struct {
	coding CodingProvider
}

// NewScorer builds a Scorer with the given options applied.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{coding: StaticCodingProvider{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the full text channel over the request's written materials.
// Resume analysis always runs; transcript analysis only when a transcript
// was supplied and coding stats only when a handle was supplied. Absent
// parts contribute zero to the fused score.
func (s *Scorer) Analyze(in model.TextInput) model.TextResult {
	res := model.TextResult{
		Resume: s.AnalyzeResumeMatch(in.ResumeText, in.JobDescription),
	}

	if in.Transcript != "" {
		res.Transcript = s.AnalyzeTranscriptMatch(in.Transcript, in.JobDescription)
	}

	if in.CodingHandle != "" {
		stats, err := s.coding.Stats(in.CodingHandle)
		if err != nil {
			res.Coding = model.CodingStats{Present: true, Handle: in.CodingHandle}
			res.Err = err.Error()
		} else {
			res.Coding = stats
		}
	}

	overall := res.Resume.Score*resumeWeight +
		res.Transcript.Score*transcriptWeight +
		res.Coding.Score*codingWeight
	res.Score = round2(overall)
	res.MatchLevel = band.TextMatch.Lookup(res.Score)
	return res
}

// AnalyzeResumeMatch scores the resume against the job description by
// blending document similarity with technical and soft skill overlap.
func (s *Scorer) AnalyzeResumeMatch(resume, job string) model.ResumeMatch {
	similarity := cosineSimilarity(resume, job)

	resumeSkills := ExtractSkills(resume)
	jobSkills := ExtractSkills(job)

	techFrac, techMatch, techMissing := overlap(resumeSkills.Technical, jobSkills.Technical)
	softFrac, softMatch, softMissing := overlap(resumeSkills.Soft, jobSkills.Soft)

	score := (similarity*resumeSimilarityWeight +
		techFrac*technicalOverlapWeight +
		softFrac*softOverlapWeight) * 100

	sort.Strings(techMissing)
	sort.Strings(softMissing)

	return model.ResumeMatch{
		Similarity:        round4(similarity),
		TechnicalMatch:    round4(techFrac),
		SoftMatch:         round4(softFrac),
		Score:             round2(score),
		ResumeSkills:      resumeSkills,
		JobSkills:         jobSkills,
		MatchingTechnical: techMatch,
		MatchingSoft:      softMatch,
		MissingTechnical:  techMissing,
		MissingSoft:       softMissing,
	}
}

// AnalyzeTranscriptMatch scores the interview transcript against the job
// description. Comprehension grows with the number of distinct skills the
// candidate mentioned, capped at 100.
func (s *Scorer) AnalyzeTranscriptMatch(transcript, job string) model.TranscriptMatch {
	similarity := cosineSimilarity(transcript, job)
	skills := ExtractSkills(transcript)

	comprehension := math.Min(100, float64(skills.Total())*comprehensionPerSkill)
	score := (similarity*transcriptSimilarityWeight +
		comprehension/100*comprehensionWeight) * 100

	return model.TranscriptMatch{
		Analyzed:      true,
		Similarity:    round4(similarity),
		Comprehension: round2(comprehension),
		Score:         round2(score),
		Skills:        skills,
	}
}

// Failed is the channel fallback when text analysis cannot run at all.
func Failed(err error) model.TextResult {
	return model.TextResult{
		Score:      0.0,
		MatchLevel: band.TextMatch.Lookup(0),
		Err:        err.Error(),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
