package score_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pitchsix/cragrank/internal/domain/score"
)

func TestTableScore(t *testing.T) {
	Convey("Given the standard score table", t, func() {
		table := score.NewTable()

		Convey("When scoring each recognized label", func() {
			Convey("Then Onsight maps to 1.0", func() {
				s, ok := table.Score(score.Onsight)
				So(ok, ShouldBeTrue)
				So(s, ShouldEqual, 1.0)
			})

			Convey("Then Flash maps to 0.8", func() {
				s, ok := table.Score(score.Flash)
				So(ok, ShouldBeTrue)
				So(s, ShouldEqual, 0.8)
			})

			Convey("Then Redpoint maps to 0.6", func() {
				s, ok := table.Score(score.Redpoint)
				So(ok, ShouldBeTrue)
				So(s, ShouldEqual, 0.6)
			})

			Convey("Then Fell/Hung maps to 0.0", func() {
				s, ok := table.Score(score.FellHung)
				So(ok, ShouldBeTrue)
				So(s, ShouldEqual, 0.0)
			})
		})

		Convey("When scoring unrecognized labels", func() {
			Convey("Then an unknown style is not ratable", func() {
				_, ok := table.Score("Pinkpoint")
				So(ok, ShouldBeFalse)
			})

			Convey("Then the empty string is not ratable", func() {
				_, ok := table.Score("")
				So(ok, ShouldBeFalse)
			})

			Convey("Then casing matters", func() {
				_, ok := table.Score("onsight")
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestTableVariants(t *testing.T) {
	Convey("Given the strict variant", t, func() {
		table := score.NewTable(score.WithStrictVariant())

		Convey("Then Flash and Redpoint are tightened", func() {
			f, _ := table.Score(score.Flash)
			r, _ := table.Score(score.Redpoint)
			So(f, ShouldEqual, 0.9)
			So(r, ShouldEqual, 0.7)
		})

		Convey("Then Onsight and Fell/Hung are unchanged", func() {
			o, _ := table.Score(score.Onsight)
			fh, _ := table.Score(score.FellHung)
			So(o, ShouldEqual, 1.0)
			So(fh, ShouldEqual, 0.0)
		})
	})

	Convey("Given individual overrides", t, func() {
		table := score.NewTable(
			score.WithFlashScore(0.85),
			score.WithRedpointScore(0.65),
		)

		Convey("Then the overridden values apply", func() {
			So(table.Flash(), ShouldEqual, 0.85)
			So(table.Redpoint(), ShouldEqual, 0.65)
		})
	})

	Convey("Given an out-of-range override", t, func() {
		table := score.NewTable(score.WithFlashScore(1.5))

		Convey("Then the default is retained", func() {
			So(table.Flash(), ShouldEqual, 0.8)
		})
	})
}
