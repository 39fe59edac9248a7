package scoring_test

import (
	"testing"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func results(video, audio, text float64) (model.VideoResult, model.AudioResult, model.TextResult) {
	return model.VideoResult{Score: video},
		model.AudioResult{Score: audio},
		model.TextResult{Score: text}
}

func TestCalculateScores(t *testing.T) {
	Convey("Given the default engine", t, func() {
		engine := scoring.NewEngine()

		Convey("When fusing 90/80/60", func() {
			report := engine.CalculateScores(results(90, 80, 60))

			Convey("Then the cumulative score is the 0.40/0.30/0.30 blend", func() {
				So(report.Cumulative.Value, ShouldEqual, 78.0)
				So(report.Individual.Video.Weight, ShouldEqual, 0.40)
				So(report.Individual.Audio.Weight, ShouldEqual, 0.30)
				So(report.Individual.Text.Weight, ShouldEqual, 0.30)
			})

			Convey("Then each score carries its banded explanation", func() {
				So(report.Individual.Video.Explanation.Title, ShouldEqual, "Emotion & Confidence Score")
				So(report.Individual.Video.Explanation.Interpretation, ShouldStartWith, "Excellent")
				So(report.Individual.Audio.Explanation.Interpretation, ShouldStartWith, "Good")
				So(report.Individual.Text.Explanation.Interpretation, ShouldStartWith, "Average")
				So(report.Cumulative.Explanation.Interpretation, ShouldStartWith, "Good Candidate")
			})
		})

		Convey("When all channels are at their failure fallbacks", func() {
			report := engine.CalculateScores(results(0, 0, 0))

			Convey("Then the cumulative score is 0 with the lowest interpretations", func() {
				So(report.Cumulative.Value, ShouldEqual, 0.0)
				So(report.Cumulative.Explanation.Interpretation, ShouldStartWith, "Poor Fit")
			})
		})

		Convey("When all channels are equal the cumulative equals them", func() {
			for _, v := range []float64{0, 25, 50, 75, 100} {
				report := engine.CalculateScores(results(v, v, v))
				So(report.Cumulative.Value, ShouldEqual, v)
			}
		})

		Convey("When the cumulative lies between the extremes", func() {
			report := engine.CalculateScores(results(100, 20, 40))

			Convey("Then it never escapes the channel score range", func() {
				So(report.Cumulative.Value, ShouldBeLessThanOrEqualTo, 100.0)
				So(report.Cumulative.Value, ShouldBeGreaterThanOrEqualTo, 20.0)
			})
		})
	})

	Convey("Given an engine with custom weights", t, func() {
		engine := scoring.NewEngine(scoring.WithWeights(model.Weights{
			Video: 0.5, Audio: 0.25, Text: 0.25,
		}))
		report := engine.CalculateScores(results(80, 40, 40))

		Convey("Then the custom vector is applied and reported", func() {
			So(report.Cumulative.Value, ShouldEqual, 60.0)
			So(report.Cumulative.WeightsUsed.Video, ShouldEqual, 0.5)
		})
	})
}

func TestGenerateVerdictRecommendation(t *testing.T) {
	Convey("Given the default engine", t, func() {
		engine := scoring.NewEngine()

		cases := []struct {
			score          float64
			recommendation string
			color          string
		}{
			{90, "HIGHLY RECOMMENDED", "green"},
			{85, "HIGHLY RECOMMENDED", "green"},
			{78, "RECOMMENDED", "blue"},
			{70, "RECOMMENDED", "blue"},
			{60, "CONDITIONAL", "orange"},
			{55, "CONDITIONAL", "orange"},
			{54.99, "NOT RECOMMENDED", "red"},
			{0, "NOT RECOMMENDED", "red"},
		}

		Convey("When mapping cumulative scores to tiers", func() {
			for _, tc := range cases {
				video, audio, text := results(tc.score, tc.score, tc.score)
				report := engine.CalculateScores(video, audio, text)
				verdict := engine.GenerateVerdict(report, video, audio, text)
				So(verdict.Recommendation, ShouldEqual, tc.recommendation)
				So(verdict.RecommendationColor, ShouldEqual, tc.color)
			}
		})
	})
}

func TestGenerateVerdictRationale(t *testing.T) {
	Convey("Given the default engine", t, func() {
		engine := scoring.NewEngine()

		Convey("When every strength rule fires", func() {
			video := model.VideoResult{Score: 90, PositiveCount: 8, NegativeCount: 1}
			audio := model.AudioResult{Score: 88, Sentiment: model.SentimentAnalysis{Label: "positive"}}
			text := model.TextResult{Score: 86, Resume: model.ResumeMatch{TechnicalMatch: 0.9}}
			report := engine.CalculateScores(video, audio, text)
			verdict := engine.GenerateVerdict(report, video, audio, text)

			Convey("Then the list caps at five in rule order", func() {
				So(verdict.Strengths, ShouldHaveLength, 5)
				So(verdict.Strengths[0], ShouldEqual, "Strong emotional intelligence and confidence")
				So(verdict.Strengths[4], ShouldEqual, "Positive and enthusiastic communication")
				So(verdict.Improvements, ShouldBeEmpty)
			})
		})

		Convey("When every improvement rule fires", func() {
			video := model.VideoResult{Score: 30}
			audio := model.AudioResult{Score: 35, Filler: model.FillerAnalysis{Count: 14}}
			text := model.TextResult{
				Score: 20,
				Resume: model.ResumeMatch{
					MissingTechnical: []string{"aws", "docker", "kubernetes", "python"},
				},
			}
			report := engine.CalculateScores(video, audio, text)
			verdict := engine.GenerateVerdict(report, video, audio, text)

			Convey("Then the list caps at five and names at most three skills", func() {
				So(verdict.Improvements, ShouldHaveLength, 5)
				So(verdict.Improvements[3], ShouldEqual, "Reduce use of filler words in speech")
				So(verdict.Improvements[4], ShouldEqual,
					"Consider developing skills in: aws, docker, kubernetes")
				So(verdict.Strengths, ShouldBeEmpty)
			})
		})

		Convey("When scores sit exactly on the rule thresholds", func() {
			video, audio, text := results(70, 50, 50)
			report := engine.CalculateScores(video, audio, text)
			verdict := engine.GenerateVerdict(report, video, audio, text)

			Convey("Then 70 is a strength and 50 is not an improvement", func() {
				So(verdict.Strengths, ShouldContain, "Strong emotional intelligence and confidence")
				So(verdict.Improvements, ShouldBeEmpty)
			})
		})
	})
}

func TestGenerateVerdictConfidence(t *testing.T) {
	Convey("Given the default engine", t, func() {
		engine := scoring.NewEngine()

		verdictFor := func(v, a, tx float64) model.Verdict {
			video, audio, text := results(v, a, tx)
			report := engine.CalculateScores(video, audio, text)
			return engine.GenerateVerdict(report, video, audio, text)
		}

		Convey("When channels agree and the cumulative is strong", func() {
			So(verdictFor(80, 75, 85).ConfidenceLevel, ShouldEqual, "High")
		})

		Convey("When channels agree moderately at a middling score", func() {
			So(verdictFor(60, 50, 55).ConfidenceLevel, ShouldEqual, "Medium")
		})

		Convey("When the spread exceeds 25 points", func() {
			So(verdictFor(90, 80, 60).ConfidenceLevel, ShouldEqual, "Low")
		})

		Convey("When channels agree but the cumulative is weak", func() {
			So(verdictFor(30, 30, 30).ConfidenceLevel, ShouldEqual, "Low")
		})
	})
}

func TestGenerateVerdictSummary(t *testing.T) {
	Convey("Given the default engine", t, func() {
		engine := scoring.NewEngine()

		summaryFor := func(v, a, tx float64) string {
			video, audio, text := results(v, a, tx)
			report := engine.CalculateScores(video, audio, text)
			return engine.GenerateVerdict(report, video, audio, text).Summary
		}

		Convey("When the audio channel leads", func() {
			So(summaryFor(60, 90, 70), ShouldEndWith, "Demonstrates strong communication abilities.")
		})

		Convey("When the text channel leads", func() {
			So(summaryFor(60, 70, 90), ShouldEndWith, "Has excellent skill alignment with the role.")
		})

		Convey("When channels tie the video channel wins", func() {
			So(summaryFor(80, 80, 80), ShouldEndWith, "Shows excellent emotional stability and confidence.")
		})

		Convey("When the candidate scores 78 overall", func() {
			So(summaryFor(90, 80, 60), ShouldStartWith,
				"This candidate shows strong potential with good performance in most areas.")
		})
	})
}

func TestVerdictDeterminism(t *testing.T) {
	Convey("Given identical inputs", t, func() {
		engine := scoring.NewEngine()
		video := model.VideoResult{Score: 72.5, PositiveCount: 4, NegativeCount: 2}
		audio := model.AudioResult{Score: 64.1, Filler: model.FillerAnalysis{Count: 12}}
		text := model.TextResult{Score: 55.0, Resume: model.ResumeMatch{MissingTechnical: []string{"aws"}}}

		Convey("When scoring twice", func() {
			r1 := engine.CalculateScores(video, audio, text)
			r2 := engine.CalculateScores(video, audio, text)
			v1 := engine.GenerateVerdict(r1, video, audio, text)
			v2 := engine.GenerateVerdict(r2, video, audio, text)

			Convey("Then the outputs are identical", func() {
				So(r1, ShouldResemble, r2)
				So(v1, ShouldResemble, v2)
			})
		})
	})
}

func TestBreakdownFor(t *testing.T) {
	Convey("Given channel results with detail", t, func() {
		engine := scoring.NewEngine()
		video := model.VideoResult{
			EmotionCounts:   map[model.EmotionLabel]int{model.EmotionHappy: 7},
			ConfidenceLevel: "Confident",
			TotalFaces:      7,
		}
		audio := model.AudioResult{
			CommunicationLevel: "Good Communication",
			Sentiment:          model.SentimentAnalysis{Label: "positive"},
			Silence:            model.SilenceAnalysis{Ratio: 0.12},
			Filler:             model.FillerAnalysis{Count: 3},
		}
		text := model.TextResult{
			MatchLevel: "Good Match",
			Resume: model.ResumeMatch{
				ResumeSkills: model.SkillSet{
					Technical: []string{"python", "sql"},
					Soft:      []string{"leadership"},
				},
			},
			Coding: model.CodingStats{Score: 75},
		}

		Convey("When projecting the breakdown", func() {
			b := engine.BreakdownFor(video, audio, text)

			Convey("Then fields pass through without recomputation", func() {
				So(b.Video.TotalFacesDetected, ShouldEqual, 7)
				So(b.Audio.Sentiment, ShouldEqual, "positive")
				So(b.Audio.SilenceRatio, ShouldEqual, 0.12)
				So(b.Text.TechnicalSkillsFound, ShouldEqual, 2)
				So(b.Text.SoftSkillsFound, ShouldEqual, 1)
				So(b.Text.CodingScore, ShouldEqual, 75.0)
			})
		})
	})
}
