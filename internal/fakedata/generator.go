// Package fakedata generates fixture customers and transactions that the
// credit generator can consume.
package fakedata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/creditgen/internal/domain/model"
	"github.com/okian/creditgen/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Stream indexes keep customer and transaction draws independent.
const (
	customerStreamBase    = 0
	transactionStreamBase = 1 << 62
)

// accountNamespace scopes the derived account ids.
var accountNamespace = uuid.MustParse("6f1c1a4e-3c55-4d1a-9f5e-2b7c8f1b0a42")

// Generator produces deterministic fixtures for a seed and reference time.
type Generator struct {
	seed    uint64
	now     time.Time
	workers int
}

// NewGenerator normalises cfg into a generator.
func NewGenerator(cfg Config) *Generator {
	g := &Generator{
		seed:    cfg.Seed,
		now:     cfg.Now,
		workers: cfg.Workers,
	}
	if g.now.IsZero() {
		g.now = time.Now()
	}
	g.now = g.now.UTC()
	if g.seed == 0 {
		g.seed = uint64(g.now.UnixNano())
	}
	if g.workers < 1 {
		g.workers = runtime.NumCPU()
	}
	return g
}

func (g *Generator) stream(base, index uint64) *rand.Rand {
	return rand.New(rand.NewPCG(g.seed, base+index))
}

func (g *Generator) today() time.Time {
	y, m, d := g.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Customers generates n customers with ids CUST_000000 onward.
func (g *Generator) Customers(ctx context.Context, n int) ([]model.Customer, error) {
	logger.Get().Info(ctx, "generating customers", logger.Int("count", n))

	out := make([]model.Customer, n)
	err := g.fill(ctx, n, func(i int) {
		out[i] = g.customer(i, g.stream(customerStreamBase, uint64(i)))
	})
	if err != nil {
		return nil, fmt.Errorf("generate customers: %w", err)
	}
	return out, nil
}

// Transactions generates n transactions spread uniformly over customers.
func (g *Generator) Transactions(ctx context.Context, customers []model.Customer, n int) ([]model.Transaction, error) {
	if len(customers) == 0 && n > 0 {
		return nil, fmt.Errorf("generate transactions: no customers")
	}
	logger.Get().Info(ctx, "generating transactions", logger.Int("count", n))

	out := make([]model.Transaction, n)
	err := g.fill(ctx, n, func(i int) {
		out[i] = g.transaction(i, customers, g.stream(transactionStreamBase, uint64(i)))
	})
	if err != nil {
		return nil, fmt.Errorf("generate transactions: %w", err)
	}
	return out, nil
}

// fill runs build(i) for every i in [0, n) across the workers. Each index owns
// its slot, so output does not depend on scheduling.
func (g *Generator) fill(ctx context.Context, n int, build func(i int)) error {
	if n <= 0 {
		return nil
	}
	workers := min(g.workers, n)
	per := n / workers

	eg, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		start := w * per
		end := start + per
		if w == workers-1 {
			end = n
		}
		eg.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				build(i)
			}
			return nil
		})
	}
	return eg.Wait()
}

func (g *Generator) customer(i int, r *rand.Rand) model.Customer {
	today := g.today()
	first := pick(r, firstNames)
	last := pick(r, lastNames)
	place := cities[r.IntN(len(cities))]

	age := minAge + r.IntN(maxAge-minAge+1)
	dob := today.AddDate(-age, 0, -r.IntN(365))
	since := today.AddDate(0, 0, -r.IntN(maxTenureDays+1))

	c := model.Customer{
		CustomerID:    fmt.Sprintf("CUST_%06d", i),
		FirstName:     first,
		LastName:      last,
		Email:         email(r, first, last),
		Phone:         fmt.Sprintf("(%d) %03d-%04d", place.area[r.IntN(len(place.area))], 200+r.IntN(800), r.IntN(10000)),
		DateOfBirth:   dob,
		Address:       fmt.Sprintf("%d %s %s", 1+r.IntN(9999), pick(r, streetNames), pick(r, streetSuffixes)),
		City:          place.city,
		Province:      place.province,
		PostalCode:    postalCode(r, place.postal),
		CustomerSince: since,
		AccountStatus: pick(r, accountStatuses),
	}
	c.Age = yearsBetween(dob, today)
	c.TenureYears = yearsBetween(since, today)
	c.Segment = SegmentForAge(c.Age)
	return c
}

func (g *Generator) transaction(i int, customers []model.Customer, r *rand.Rand) model.Transaction {
	cust := customers[r.IntN(len(customers))]
	window := int64(g.now.Sub(g.now.AddDate(-transactionYears, 0, 0)) / time.Second)
	at := g.now.Add(-time.Duration(r.Int64N(window+1)) * time.Second).Truncate(time.Second)
	cents := r.IntN(2*maxAmountCents+1) - maxAmountCents

	return model.Transaction{
		TransactionID:    fmt.Sprintf("TXN_%08d", i),
		CustomerID:       cust.CustomerID,
		AccountID:        AccountID(cust.CustomerID, r.IntN(accountsPerCust)),
		TransactionDate:  at,
		TransactionType:  pick(r, transactionTypes),
		Amount:           float64(cents) / 100,
		MerchantCategory: pick(r, merchantCategories),
		Description:      pick(r, companies),
		Channel:          pick(r, channels),
	}
}

// AccountID derives a stable account id for a customer's n-th account.
func AccountID(customerID string, n int) string {
	return uuid.NewSHA1(accountNamespace, []byte(fmt.Sprintf("%s/%d", customerID, n))).String()
}

// SegmentForAge buckets customers by age into a banking segment.
func SegmentForAge(age int) model.Segment {
	switch {
	case age >= seniorAge:
		return model.SegmentSenior
	case age >= establishedAge:
		return model.SegmentEstablished
	case age >= primeAge:
		return model.SegmentPrime
	default:
		return model.SegmentYoungPro
	}
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return max(years, 0)
}

func email(r *rand.Rand, first, last string) string {
	local := strings.ToLower(asciiOnly(first) + "." + asciiOnly(last))
	return fmt.Sprintf("%s%d@%s", local, r.IntN(100), pick(r, emailDomains))
}

func asciiOnly(s string) string {
	return strings.Map(func(c rune) rune {
		switch c {
		case 'é', 'è', 'ê':
			return 'e'
		case 'ô':
			return 'o'
		case 'ç':
			return 'c'
		}
		if c > 127 || c == ' ' || c == '\'' {
			return -1
		}
		return c
	}, s)
}

func postalCode(r *rand.Rand, first byte) string {
	letter := func() byte { return postalLetters[r.IntN(len(postalLetters))] }
	digit := func() byte { return byte('0' + r.IntN(10)) }
	return string([]byte{first, digit(), letter(), ' ', digit(), letter(), digit()})
}

func pick(r *rand.Rand, xs []string) string {
	return xs[r.IntN(len(xs))]
}
