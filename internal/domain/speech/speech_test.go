package speech_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hirelens/hirelens/internal/domain/model"
	"github.com/hirelens/hirelens/internal/domain/speech"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedEstimator returns a constant polarity.
type fixedEstimator float64

func (f fixedEstimator) Polarity(string) float64 { return float64(f) }

// panicEstimator simulates a broken estimator.
type panicEstimator struct{}

func (panicEstimator) Polarity(string) float64 { panic("broken lexicon") }

func TestSegment(t *testing.T) {
	Convey("Given an RMS energy envelope at one frame per second", t, func() {
		Convey("When a long silent run sits between speech", func() {
			// 2s speech, 4s silence, 2s speech.
			energy := []float64{0.5, 0.5, 0.001, 0.001, 0.001, 0.001, 0.5, 0.5}
			intervals := speech.Segment(energy, 1.0, 0.01, 3.0)

			Convey("Then one qualifying interval is found", func() {
				So(intervals, ShouldHaveLength, 1)
				So(intervals[0].Start, ShouldEqual, 2.0)
				So(intervals[0].End, ShouldEqual, 6.0)
				So(intervals[0].Duration, ShouldEqual, 4.0)
			})
		})

		Convey("When silent runs are shorter than the minimum pause", func() {
			energy := []float64{0.5, 0.001, 0.5, 0.001, 0.001, 0.5}
			intervals := speech.Segment(energy, 1.0, 0.01, 3.0)

			Convey("Then natural pauses are not counted", func() {
				So(intervals, ShouldBeEmpty)
			})
		})

		Convey("When the clip ends in a silent run", func() {
			energy := []float64{0.5, 0.5, 0.001, 0.001, 0.001, 0.001}
			intervals := speech.Segment(energy, 1.0, 0.01, 3.0)

			Convey("Then the trailing run closes at clip end", func() {
				So(intervals, ShouldHaveLength, 1)
				So(intervals[0].End, ShouldEqual, 6.0)
			})
		})

		Convey("When the envelope is empty", func() {
			So(speech.Segment(nil, 1.0, 0.01, 3.0), ShouldBeEmpty)
		})
	})
}

func TestAnalyzeSilenceScore(t *testing.T) {
	Convey("Given a fuser", t, func() {
		fuser := speech.NewFuser(speech.WithEstimators(fixedEstimator(0)))

		Convey("When half the clip is qualifying silence", func() {
			in := model.AudioInput{
				Silences:     []model.SilenceInterval{{Start: 0, End: 5, Duration: 5}},
				TotalSeconds: 10,
			}
			res := fuser.Analyze(in)

			Convey("Then the silence sub-score is 50", func() {
				So(res.Silence.Score, ShouldEqual, 50.0)
				So(res.Silence.Ratio, ShouldEqual, 0.5)
			})
		})

		Convey("When the clip has no usable duration", func() {
			res := fuser.Analyze(model.AudioInput{})

			Convey("Then the silence sub-score defaults to 50 without failing the channel", func() {
				So(res.Silence.Score, ShouldEqual, 50.0)
				So(res.Silence.Err, ShouldNotBeEmpty)
				So(res.Err, ShouldBeEmpty)
			})
		})

		Convey("When precomputed intervals include sub-threshold pauses", func() {
			in := model.AudioInput{
				Silences: []model.SilenceInterval{
					{Start: 0, End: 1, Duration: 1},
					{Start: 2, End: 6, Duration: 4},
				},
				TotalSeconds: 10,
			}
			res := fuser.Analyze(in)

			Convey("Then only qualifying intervals count", func() {
				So(res.Silence.TotalSilence, ShouldEqual, 4.0)
				So(res.Silence.Score, ShouldEqual, 60.0)
			})
		})
	})
}

func TestAnalyzeSentiment(t *testing.T) {
	Convey("Given a fuser with fixed estimators", t, func() {
		fuser := speech.NewFuser(
			speech.WithEstimators(fixedEstimator(0.8), fixedEstimator(0.2)),
		)
		in := model.AudioInput{TotalSeconds: 10, Transcript: "I really enjoyed building this"}

		Convey("When polarities average to 0.5", func() {
			res := fuser.Analyze(in)

			Convey("Then the sub-score rescales to 75 and bands positive", func() {
				So(res.Sentiment.Score, ShouldEqual, 75.0)
				So(res.Sentiment.Label, ShouldEqual, speech.SentimentPositive)
			})
		})

		Convey("When the transcript is empty", func() {
			res := fuser.Analyze(model.AudioInput{TotalSeconds: 10})

			Convey("Then sentiment is the fixed neutral default", func() {
				So(res.Sentiment.Score, ShouldEqual, 50.0)
				So(res.Sentiment.Label, ShouldEqual, speech.SentimentNeutral)
			})
		})
	})

	Convey("Given an estimator that panics", t, func() {
		fuser := speech.NewFuser(speech.WithEstimators(panicEstimator{}))
		res := fuser.Analyze(model.AudioInput{TotalSeconds: 10, Transcript: "hello there"})

		Convey("Then the sub-score degrades to neutral and the channel survives", func() {
			So(res.Sentiment.Score, ShouldEqual, 50.0)
			So(res.Sentiment.Err, ShouldContainSubstring, "panic")
			So(res.Score, ShouldBeGreaterThan, 0)
		})
	})
}

func TestAnalyzeFillers(t *testing.T) {
	Convey("Given a fuser with neutral sentiment", t, func() {
		fuser := speech.NewFuser(speech.WithEstimators(fixedEstimator(0)))

		Convey("When half the words are fillers", func() {
			res := fuser.Analyze(model.AudioInput{
				TotalSeconds: 10,
				Transcript:   "um problem um solved",
			})

			Convey("Then the filler sub-score clamps to exactly 0", func() {
				So(res.Filler.Ratio, ShouldEqual, 0.5)
				So(res.Filler.Score, ShouldEqual, 0.0)
			})
		})

		Convey("When no fillers appear in a nonempty transcript", func() {
			res := fuser.Analyze(model.AudioInput{
				TotalSeconds: 10,
				Transcript:   "My background covers distributed systems and databases",
			})

			Convey("Then the sub-score is 100", func() {
				So(res.Filler.Score, ShouldEqual, 100.0)
				So(res.Filler.Count, ShouldEqual, 0)
			})
		})

		Convey("When the transcript is empty", func() {
			res := fuser.Analyze(model.AudioInput{TotalSeconds: 10})

			Convey("Then there is nothing to penalize", func() {
				So(res.Filler.Score, ShouldEqual, 100.0)
				So(res.Filler.Count, ShouldEqual, 0)
			})
		})

		Convey("When multi-word fillers appear", func() {
			res := fuser.Analyze(model.AudioInput{
				TotalSeconds: 10,
				Transcript:   "you know I built it you know with care I mean carefully",
			})

			Convey("Then whole phrases are counted, not substrings", func() {
				So(res.Filler.Details["you know"], ShouldEqual, 2)
				So(res.Filler.Details["i mean"], ShouldEqual, 1)
			})
		})
	})
}

func TestFuseOverall(t *testing.T) {
	Convey("Given deterministic sub-scores", t, func() {
		// Neutral polarity -> sentiment 50; no silence -> 100; no fillers -> 100.
		fuser := speech.NewFuser(speech.WithEstimators(fixedEstimator(0)))
		res := fuser.Analyze(model.AudioInput{
			TotalSeconds: 10,
			Transcript:   "clean transcript without hesitation words",
		})

		Convey("Then the overall score applies the 0.4/0.3/0.3 weights", func() {
			// 100*0.4 + 50*0.3 + 100*0.3 = 85
			So(res.Score, ShouldEqual, 85.0)
			So(res.CommunicationLevel, ShouldEqual, "Good Communication")
		})
	})
}

func TestFailed(t *testing.T) {
	Convey("Given a channel-level failure", t, func() {
		res := speech.Failed(errors.New("malformed audio"))

		Convey("Then the fallback carries score 0 and the error", func() {
			So(res.Score, ShouldEqual, 0.0)
			So(res.Err, ShouldEqual, "malformed audio")
			So(strings.Contains(res.CommunicationLevel, "Poor"), ShouldBeTrue)
		})
	})
}
