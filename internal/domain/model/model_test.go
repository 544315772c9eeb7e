package model_test

import (
	"errors"
	"os"
	"testing"

	"github.com/okian/creditgen/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseSegment(t *testing.T) {
	Convey("Given segment text from upstream files", t, func() {
		cases := map[string]model.Segment{
			"SeniorBanking":        model.SegmentSenior,
			"Senior Banking":       model.SegmentSenior,
			"senior_banking":       model.SegmentSenior,
			" Established Banking": model.SegmentEstablished,
			"PRIME-BANKING":        model.SegmentPrime,
			"Young Professional":   model.SegmentYoungPro,
			"Unknown":              model.SegmentUnknown,
			"":                     model.SegmentUnknown,
			"Private Wealth":       model.SegmentUnknown,
		}

		Convey("Then each maps to its segment, falling back to Unknown", func() {
			for in, want := range cases {
				So(model.ParseSegment(in), ShouldEqual, want)
			}
		})

		Convey("Then labels round-trip through the parser", func() {
			for _, s := range []model.Segment{model.SegmentSenior, model.SegmentEstablished, model.SegmentPrime, model.SegmentYoungPro, model.SegmentUnknown} {
				So(model.ParseSegment(s.Label()), ShouldEqual, s)
			}
		})
	})
}

func TestProfileInputResolve(t *testing.T) {
	Convey("Given a profile input", t, func() {
		Convey("When every optional field is absent", func() {
			p := model.ProfileInput{CustomerID: "C1"}.Resolve()

			Convey("Then Unknown/35/2 are substituted", func() {
				So(p, ShouldResemble, model.CustomerProfile{
					CustomerID:  "C1",
					Segment:     model.SegmentUnknown,
					Age:         35,
					TenureYears: 2,
				})
			})
		})

		Convey("When fields are present", func() {
			seg, age, tenure := "Senior Banking", 70, 12
			p := model.ProfileInput{CustomerID: "C1", Segment: &seg, Age: &age, TenureYears: &tenure}.Resolve()

			Convey("Then they are kept", func() {
				So(p.Segment, ShouldEqual, model.SegmentSenior)
				So(p.Age, ShouldEqual, 70)
				So(p.TenureYears, ShouldEqual, 12)
			})
		})

		Convey("When a present age is zero", func() {
			zero := 0
			p := model.ProfileInput{CustomerID: "C1", Age: &zero}.Resolve()

			Convey("Then zero is not mistaken for absent", func() {
				So(p.Age, ShouldEqual, 0)
			})
		})
	})
}

func TestClamp(t *testing.T) {
	Convey("Given out of range scores", t, func() {
		So(model.Clamp(250), ShouldEqual, 300)
		So(model.Clamp(300), ShouldEqual, 300)
		So(model.Clamp(650), ShouldEqual, 650)
		So(model.Clamp(900), ShouldEqual, 900)
		So(model.Clamp(950), ShouldEqual, 900)
	})
}

func TestMissingInputError(t *testing.T) {
	Convey("Given a missing customer dataset", t, func() {
		err := error(&model.MissingInputError{Path: "customers.csv", Err: os.ErrNotExist})

		Convey("Then it matches both the sentinel and the cause", func() {
			So(errors.Is(err, model.ErrMissingInput), ShouldBeTrue)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "customers.csv")
		})

		Convey("Then a causeless error still matches the sentinel", func() {
			So(errors.Is(&model.MissingInputError{Path: "x"}, model.ErrMissingInput), ShouldBeTrue)
		})

		Convey("Then errors.As recovers the path", func() {
			var mie *model.MissingInputError
			So(errors.As(err, &mie), ShouldBeTrue)
			So(mie.Path, ShouldEqual, "customers.csv")
		})
	})
}
