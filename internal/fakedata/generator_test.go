package fakedata_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/okian/creditgen/internal/adapters/repository"
	"github.com/okian/creditgen/internal/domain/model"
	"github.com/okian/creditgen/internal/fakedata"
	"github.com/okian/creditgen/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var refNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		ctx := context.Background()
		gen := fakedata.NewGenerator(fakedata.Config{Seed: 11, Now: refNow, Workers: 4})

		Convey("When generating customers", func() {
			customers, err := gen.Customers(ctx, 300)
			So(err, ShouldBeNil)
			So(len(customers), ShouldEqual, 300)

			Convey("Then ids are sequential and fields are coherent", func() {
				So(customers[0].CustomerID, ShouldEqual, "CUST_000000")
				So(customers[299].CustomerID, ShouldEqual, "CUST_000299")
				postal := regexp.MustCompile(`^[A-Z]\d[A-Z] \d[A-Z]\d$`)
				for _, c := range customers {
					So(c.Age, ShouldBeBetweenOrEqual, 18, 80)
					So(c.TenureYears, ShouldBeBetweenOrEqual, 0, 10)
					So(c.Segment, ShouldEqual, fakedata.SegmentForAge(c.Age))
					So(c.DateOfBirth.Before(refNow), ShouldBeTrue)
					So(c.CustomerSince.After(refNow), ShouldBeFalse)
					So(c.Email, ShouldContainSubstring, "@")
					So(postal.MatchString(c.PostalCode), ShouldBeTrue)
				}
			})

			Convey("Then the same seed reproduces them with any worker count", func() {
				again, err := fakedata.NewGenerator(fakedata.Config{Seed: 11, Now: refNow, Workers: 1}).Customers(ctx, 300)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, customers)
			})

			Convey("And generating transactions", func() {
				txns, err := gen.Transactions(ctx, customers, 1000)
				So(err, ShouldBeNil)
				So(len(txns), ShouldEqual, 1000)

				ids := map[string]bool{}
				for _, c := range customers {
					ids[c.CustomerID] = true
				}

				Convey("Then every transaction belongs to a customer and stays in range", func() {
					So(txns[0].TransactionID, ShouldEqual, "TXN_00000000")
					for _, tx := range txns {
						So(ids[tx.CustomerID], ShouldBeTrue)
						So(tx.Amount, ShouldBeBetweenOrEqual, -5000.0, 5000.0)
						So(tx.TransactionDate.After(refNow), ShouldBeFalse)
						So(tx.TransactionDate.Before(refNow.AddDate(-2, 0, 0)), ShouldBeFalse)
						So(tx.AccountID, ShouldBeIn,
							fakedata.AccountID(tx.CustomerID, 0),
							fakedata.AccountID(tx.CustomerID, 1),
							fakedata.AccountID(tx.CustomerID, 2))
					}
				})
			})
		})

		Convey("When there are no customers for transactions", func() {
			_, err := gen.Transactions(ctx, nil, 5)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSegmentForAge(t *testing.T) {
	Convey("Segments follow the age thresholds", t, func() {
		So(fakedata.SegmentForAge(70), ShouldEqual, model.SegmentSenior)
		So(fakedata.SegmentForAge(65), ShouldEqual, model.SegmentSenior)
		So(fakedata.SegmentForAge(64), ShouldEqual, model.SegmentEstablished)
		So(fakedata.SegmentForAge(45), ShouldEqual, model.SegmentEstablished)
		So(fakedata.SegmentForAge(30), ShouldEqual, model.SegmentPrime)
		So(fakedata.SegmentForAge(29), ShouldEqual, model.SegmentYoungPro)
	})
}

func TestRun(t *testing.T) {
	Convey("Given a fixture config", t, func() {
		dir := t.TempDir()
		cfg := &fakedata.Config{
			NumCustomers:     50,
			NumTransactions:  200,
			Workers:          2,
			Seed:             5,
			Now:              refNow,
			CustomersPath:    filepath.Join(dir, "customers_sample.csv"),
			TransactionsPath: filepath.Join(dir, "transactions_sample.csv"),
		}

		Convey("When the run completes", func() {
			stats, err := fakedata.Run(context.Background(), cfg)
			So(err, ShouldBeNil)
			So(stats.CustomersGenerated, ShouldEqual, 50)
			So(stats.TransactionsGenerated, ShouldEqual, 200)

			Convey("Then the customer file feeds the credit generator", func() {
				profiles, err := repository.ReadCustomers(context.Background(), cfg.CustomersPath)
				So(err, ShouldBeNil)
				So(len(profiles), ShouldEqual, 50)
				So(profiles[0].Segment, ShouldNotEqual, model.SegmentUnknown)

				_, err = os.Stat(cfg.TransactionsPath)
				So(err, ShouldBeNil)
			})
		})

		Convey("When no customers path is given", func() {
			cfg.CustomersPath = ""
			_, err := fakedata.Run(context.Background(), cfg)
			So(err, ShouldNotBeNil)
		})
	})
}
