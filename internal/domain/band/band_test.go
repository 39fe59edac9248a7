package band_test

import (
	"testing"

	"github.com/hirelens/hirelens/internal/domain/band"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTableLookup(t *testing.T) {
	Convey("Given the predefined channel tables", t, func() {
		tables := map[string]band.Table{
			"video confidence":    band.VideoConfidence,
			"audio communication": band.AudioCommunication,
			"text match":          band.TextMatch,
		}

		Convey("Then every table satisfies the contiguity invariant", func() {
			for name, tbl := range tables {
				So(tbl.Valid(), ShouldBeTrue)
				So(len(tbl), ShouldEqual, 5)
				_ = name
			}
		})

		Convey("And every score in [0,100] resolves to exactly one band", func() {
			for _, tbl := range tables {
				for s := 0.0; s <= 100.0; s += 0.25 {
					So(tbl.Lookup(s), ShouldNotBeEmpty)
				}
			}
		})

		Convey("And boundary scores resolve to the lower band", func() {
			// 35 is both the upper bound of the first video band and the
			// lower bound of the second; ascending scan keeps the first.
			So(band.VideoConfidence.Lookup(35), ShouldEqual, "Very Low Confidence")
			So(band.VideoConfidence.Lookup(35.01), ShouldEqual, "Low Confidence")
			So(band.AudioCommunication.Lookup(85), ShouldEqual, "Good Communication")
			So(band.AudioCommunication.Lookup(85.01), ShouldEqual, "Excellent Communication")
		})

		Convey("And out-of-range scores are clamped before lookup", func() {
			So(band.VideoConfidence.Lookup(-10), ShouldEqual, "Very Low Confidence")
			So(band.VideoConfidence.Lookup(250), ShouldEqual, "Very Confident")
		})
	})
}

func TestTableValid(t *testing.T) {
	Convey("Given hand-built tables", t, func() {
		Convey("Then a gap fails validation", func() {
			gap := band.Table{
				{Lo: 0, Hi: 40, Text: "low"},
				{Lo: 50, Hi: 100, Text: "high"},
			}
			So(gap.Valid(), ShouldBeFalse)
		})

		Convey("And a table not reaching 100 fails validation", func() {
			short := band.Table{
				{Lo: 0, Hi: 50, Text: "low"},
				{Lo: 50, Hi: 90, Text: "high"},
			}
			So(short.Valid(), ShouldBeFalse)
		})

		Convey("And an empty table fails validation", func() {
			So(band.Table{}.Valid(), ShouldBeFalse)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given mismatched thresholds and texts", t, func() {
		So(band.New([]float64{0, 50}, []string{"only"}), ShouldBeNil)
		So(band.New(nil, nil), ShouldBeNil)
	})
}
