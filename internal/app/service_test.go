package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/creditgen/internal/adapters/repository"
	service "github.com/okian/creditgen/internal/app"
	"github.com/okian/creditgen/internal/domain/model"
	"github.com/okian/creditgen/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("warn")
}

var fixedNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func profiles(n int) []model.CustomerProfile {
	segments := []model.Segment{model.SegmentSenior, model.SegmentEstablished, model.SegmentPrime, model.SegmentYoungPro, model.SegmentUnknown}
	out := make([]model.CustomerProfile, n)
	for i := range out {
		out[i] = model.CustomerProfile{
			CustomerID:  fmt.Sprintf("CUST_%06d", i),
			Segment:     segments[i%len(segments)],
			Age:         20 + i%60,
			TenureYears: i % 15,
		}
	}
	return out
}

func TestService_Generate(t *testing.T) {
	Convey("Given a seeded service with a pinned clock", t, func() {
		ctx := context.Background()
		in := profiles(250)

		Convey("When generating with history", func() {
			svc := service.New(service.WithSeed(42), service.WithClock(clock), service.WithWorkerCount(4))
			res, err := svc.Generate(ctx, in, service.RunOptions{IncludeHistorical: true, MonthsBack: 24})
			So(err, ShouldBeNil)

			Convey("Then each customer has two current and 24 historical records in input order", func() {
				So(len(res.Scores), ShouldEqual, len(in)*26)
				for i, p := range in {
					block := res.Scores[i*26 : (i+1)*26]
					So(block[0].Kind, ShouldEqual, model.KindCurrent)
					So(block[0].Bureau, ShouldEqual, model.BureauEquifax)
					So(block[1].Kind, ShouldEqual, model.KindCurrent)
					So(block[1].Bureau, ShouldEqual, model.BureauTransUnion)
					for j, rec := range block {
						So(rec.CustomerID, ShouldEqual, p.CustomerID)
						So(rec.Score, ShouldBeBetweenOrEqual, model.MinScore, model.MaxScore)
						if j >= 2 {
							So(rec.Kind, ShouldEqual, model.KindHistorical)
						}
						if j > 2 {
							So(rec.AsOfDate.After(block[j-1].AsOfDate), ShouldBeTrue)
						}
					}
				}
			})

			Convey("Then events cover a tenth of the customers, each at most once", func() {
				So(len(res.Events), ShouldEqual, 25)
				seen := map[string]bool{}
				for _, e := range res.Events {
					So(seen[e.CustomerID], ShouldBeFalse)
					seen[e.CustomerID] = true
					So(e.ImpactScore, ShouldBeBetweenOrEqual, model.MinImpact, model.MaxImpact)
				}
			})

			Convey("Then the insights describe the run", func() {
				So(res.RunID, ShouldNotBeEmpty)
				So(res.Insights.RunID, ShouldEqual, res.RunID)
				So(res.Insights.TotalRecords, ShouldEqual, len(res.Scores))
				So(res.Insights.UniqueCustomers, ShouldEqual, len(in))
				So(res.Insights.ScoreDistribution.Count, ShouldEqual, len(in)*2)
				So(res.Insights.CreditEvents, ShouldEqual, 25)
				So(res.Insights.DateRange.Latest, ShouldEqual, "2025-03-15")
				So(res.Insights.BureausCovered, ShouldResemble, []string{"Equifax", "TransUnion"})
			})
		})

		Convey("When the same seed runs with different worker counts", func() {
			one, err := service.New(service.WithSeed(7), service.WithClock(clock), service.WithWorkerCount(1)).
				Generate(ctx, in, service.RunOptions{IncludeHistorical: true})
			So(err, ShouldBeNil)
			many, err := service.New(service.WithSeed(7), service.WithClock(clock), service.WithWorkerCount(8), service.WithQueueSize(3)).
				Generate(ctx, in, service.RunOptions{IncludeHistorical: true})
			So(err, ShouldBeNil)

			Convey("Then scores and events are identical", func() {
				So(many.Seed, ShouldEqual, one.Seed)
				So(many.Scores, ShouldResemble, one.Scores)
				So(many.Events, ShouldResemble, one.Events)
			})
		})

		Convey("When history is disabled", func() {
			res, err := service.New(service.WithSeed(1), service.WithClock(clock)).
				Generate(ctx, in[:9], service.RunOptions{IncludeHistorical: false})
			So(err, ShouldBeNil)

			Convey("Then only current records are produced", func() {
				So(len(res.Scores), ShouldEqual, 18)
				for _, rec := range res.Scores {
					So(rec.Kind, ShouldEqual, model.KindCurrent)
					So(rec.AsOfDate, ShouldEqual, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
				}
				So(res.Events, ShouldBeEmpty)
			})
		})

		Convey("When a customer id repeats in the input", func() {
			dup := append(profiles(20), profiles(20)...)
			res, err := service.New(service.WithSeed(3), service.WithClock(clock)).
				Generate(ctx, dup, service.RunOptions{})
			So(err, ShouldBeNil)

			Convey("Then event sampling counts it once", func() {
				So(res.Insights.UniqueCustomers, ShouldEqual, 20)
				So(len(res.Events), ShouldEqual, 2)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := service.New(service.WithSeed(1), service.WithClock(clock)).
				Generate(cctx, in, service.RunOptions{})

			Convey("Then generation fails with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestService_Run(t *testing.T) {
	Convey("Given a customer file and output locations", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		customersPath := filepath.Join(dir, "customers_sample.csv")
		So(os.WriteFile(customersPath, []byte(
			"customer_id,customer_segment,age,tenure_years\n"+
				"CUST_000000,Senior Banking,70,20\n"+
				"CUST_000001,,,\n"+
				"CUST_000002,Young Professional,24,1\n",
		), 0o644), ShouldBeNil)

		csvSink, err := repository.NewCSVSink(filepath.Join(dir, "out"))
		So(err, ShouldBeNil)
		sqliteSink, err := repository.NewSQLiteSink(ctx, filepath.Join(dir, "creditgen.db"))
		So(err, ShouldBeNil)

		svc := service.New(
			service.WithSeed(99),
			service.WithClock(clock),
			service.WithCustomersPath(customersPath),
			service.WithInsightsPath(filepath.Join(dir, "schemas", "insights.yaml")),
			service.WithMetricsPath(filepath.Join(dir, "creditgen.prom")),
			service.WithSinks(csvSink, sqliteSink),
		)
		defer svc.Close()

		Convey("When the run completes", func() {
			res, err := svc.Run(ctx, service.RunOptions{IncludeHistorical: true, MonthsBack: 6})
			So(err, ShouldBeNil)

			Convey("Then every output is written", func() {
				So(len(res.Scores), ShouldEqual, 3*8)

				for _, p := range []string{csvSink.ScoresPath(), csvSink.EventsPath(), filepath.Join(dir, "schemas", "insights.yaml"), filepath.Join(dir, "creditgen.prom")} {
					_, statErr := os.Stat(p)
					So(statErr, ShouldBeNil)
				}

				n, err := sqliteSink.CountScores(ctx, res.RunID)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, len(res.Scores))
			})
		})
	})

	Convey("Given a missing customer file", t, func() {
		svc := service.New(service.WithCustomersPath(filepath.Join(t.TempDir(), "absent.csv")))

		Convey("Then the run aborts with a missing input error", func() {
			_, err := svc.Run(context.Background(), service.RunOptions{IncludeHistorical: true})
			So(errors.Is(err, model.ErrMissingInput), ShouldBeTrue)

			var mie *model.MissingInputError
			So(errors.As(err, &mie), ShouldBeTrue)
		})
	})
}
