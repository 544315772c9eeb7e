package scoring

import (
	"github.com/okian/creditgen/internal/domain/model"
)

// varianceBand applies to month offsets strictly greater than after.
type varianceBand struct {
	after  int
	spread span
}

// historyBands shrink toward the present; evaluated top-down.
var historyBands = []varianceBand{
	{12, span{-50, 50}},
	{6, span{-25, 25}},
	{0, span{-10, 10}},
}

func bandFor(month int) span {
	for _, b := range historyBands {
		if month > b.after {
			return b.spread
		}
	}
	return historyBands[len(historyBands)-1].spread
}

// History reconstructs monthsBack prior monthly scores for a customer, ordered
// oldest first. Each month is an independent draw around current whose spread
// narrows as the month approaches today; adjacent months are not correlated,
// so trajectories may zig-zag. Each record picks its bureau independently.
func (e *Engine) History(r Rand, customerID string, current, monthsBack int) []model.ScoreRecord {
	if monthsBack <= 0 {
		return nil
	}

	today := e.Today()
	out := make([]model.ScoreRecord, 0, monthsBack)
	for m := monthsBack; m >= 1; m-- {
		score := model.Clamp(current + bandFor(m).draw(r))
		bureau := model.Bureaus[r.IntN(len(model.Bureaus))]

		out = append(out, model.ScoreRecord{
			CustomerID:   customerID,
			Bureau:       bureau,
			Score:        score,
			AsOfDate:     today.AddDate(0, 0, -m*daysPerMonth),
			RiskCategory: Classify(score),
			Kind:         model.KindHistorical,
		})
	}
	return out
}
