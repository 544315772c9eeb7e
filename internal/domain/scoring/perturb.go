package scoring

import (
	"fmt"
	"time"

	"github.com/okian/creditgen/internal/domain/model"
)

var (
	bureauSpread = span{-10, 10}
	impactSpan   = span{model.MinImpact, model.MaxImpact}
)

// CurrentScores emits one current record per bureau, each perturbed
// independently around the synthesized score.
func (e *Engine) CurrentScores(r Rand, customerID string, current int) []model.ScoreRecord {
	today := e.Today()
	out := make([]model.ScoreRecord, 0, len(model.Bureaus))
	for _, bureau := range model.Bureaus {
		score := model.Clamp(current + bureauSpread.draw(r))
		out = append(out, model.ScoreRecord{
			CustomerID:   customerID,
			Bureau:       bureau,
			Score:        score,
			AsOfDate:     today,
			RiskCategory: Classify(score),
			Kind:         model.KindCurrent,
		})
	}
	return out
}

// EventSampleSize returns how many of unique customers receive an event.
func (e *Engine) EventSampleSize(unique int) int {
	return min(unique/e.eventRatio, e.maxEvents)
}

// SampleEvents picks EventSampleSize(len(customerIDs)) customers uniformly
// without replacement and emits exactly one event for each. customerIDs must
// already be distinct. Events never feed back into any score.
func (e *Engine) SampleEvents(r Rand, customerIDs []string) []model.CreditEvent {
	n := e.EventSampleSize(len(customerIDs))
	if n <= 0 {
		return nil
	}

	// Partial Fisher-Yates over a copy; the caller's slice is left untouched.
	pool := make([]string, len(customerIDs))
	copy(pool, customerIDs)
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	today := e.Today()
	start := today.AddDate(-eventWindowYears, 0, 0)
	windowDays := int(today.Sub(start).Hours() / 24)

	events := make([]model.CreditEvent, 0, n)
	for _, id := range pool[:n] {
		date := start.AddDate(0, 0, r.IntN(windowDays+1))
		events = append(events, model.CreditEvent{
			CustomerID:  id,
			EventType:   model.EventTypes[r.IntN(len(model.EventTypes))],
			EventDate:   date,
			ImpactScore: impactSpan.draw(r),
			Description: fmt.Sprintf("Credit event recorded on %s", date.Format(time.DateOnly)),
		})
	}
	return events
}
