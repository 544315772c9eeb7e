// Package insights aggregates run-level summary statistics over generated
// credit data. Summaries are read-only views; nothing here draws randomness.
package insights

import (
	"math"
	"slices"
	"time"

	"github.com/okian/creditgen/internal/domain/model"
)

// Distribution describes current scores.
type Distribution struct {
	Count  int     `yaml:"count"`
	Mean   float64 `yaml:"mean"`
	Median float64 `yaml:"median"`
	Std    float64 `yaml:"std"`
	Min    int     `yaml:"min"`
	Max    int     `yaml:"max"`
}

// DateRange spans every as-of date in the score set.
type DateRange struct {
	Earliest string `yaml:"earliest"`
	Latest   string `yaml:"latest"`
}

// Insights is the run summary written next to the generated data.
type Insights struct {
	RunID                    string         `yaml:"run_id,omitempty"`
	GeneratedAt              time.Time      `yaml:"generated_at,omitempty"`
	TotalRecords             int            `yaml:"total_records"`
	UniqueCustomers          int            `yaml:"unique_customers"`
	BureausCovered           []string       `yaml:"bureaus_covered"`
	ScoreDistribution        Distribution   `yaml:"score_distribution"`
	RiskCategoryDistribution map[string]int `yaml:"risk_category_distribution"`
	DateRange                DateRange      `yaml:"date_range"`
	CreditEvents             int            `yaml:"credit_events"`
	EventTypeDistribution    map[string]int `yaml:"event_type_distribution"`
}

// Summarize computes insights. The distribution and risk histogram cover
// current records only; totals and the date range cover every record.
func Summarize(scores []model.ScoreRecord, events []model.CreditEvent) Insights {
	out := Insights{
		TotalRecords:             len(scores),
		BureausCovered:           []string{},
		RiskCategoryDistribution: map[string]int{},
		CreditEvents:             len(events),
		EventTypeDistribution:    map[string]int{},
	}

	customers := make(map[string]struct{})
	var current []int
	var earliest, latest time.Time
	for i, r := range scores {
		customers[r.CustomerID] = struct{}{}
		if !slices.Contains(out.BureausCovered, string(r.Bureau)) {
			out.BureausCovered = append(out.BureausCovered, string(r.Bureau))
		}
		if i == 0 || r.AsOfDate.Before(earliest) {
			earliest = r.AsOfDate
		}
		if i == 0 || r.AsOfDate.After(latest) {
			latest = r.AsOfDate
		}
		if r.Kind == model.KindCurrent {
			current = append(current, r.Score)
			out.RiskCategoryDistribution[string(r.RiskCategory)]++
		}
	}
	out.UniqueCustomers = len(customers)
	out.ScoreDistribution = describe(current)
	if len(scores) > 0 {
		out.DateRange = DateRange{
			Earliest: earliest.Format(time.DateOnly),
			Latest:   latest.Format(time.DateOnly),
		}
	}

	for _, e := range events {
		out.EventTypeDistribution[string(e.EventType)]++
	}

	return out
}

// describe uses the sample standard deviation (n-1), zero below two values.
func describe(xs []int) Distribution {
	d := Distribution{Count: len(xs)}
	if len(xs) == 0 {
		return d
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]

	var sum float64
	for _, x := range sorted {
		sum += float64(x)
	}
	d.Mean = sum / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		d.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	} else {
		d.Median = float64(sorted[mid])
	}

	if len(sorted) > 1 {
		var sq float64
		for _, x := range sorted {
			diff := float64(x) - d.Mean
			sq += diff * diff
		}
		d.Std = math.Sqrt(sq / float64(len(sorted)-1))
	}
	return d
}
