package scoring

import "github.com/okian/creditgen/internal/domain/model"

type riskBucket struct {
	scores   span
	category model.RiskCategory
}

// riskTable partitions [300, 900]; evaluated top-down.
var riskTable = []riskBucket{
	{span{800, 900}, model.RiskVeryLow},
	{span{750, 799}, model.RiskLow},
	{span{650, 749}, model.RiskMedium},
	{span{600, 649}, model.RiskMediumHigh},
	{span{550, 599}, model.RiskHigh},
	{span{300, 549}, model.RiskVeryHigh},
}

// Classify maps a score to its risk category. Scores outside [300, 900]
// yield RiskUnknown.
func Classify(score int) model.RiskCategory {
	for _, b := range riskTable {
		if b.scores.contains(score) {
			return b.category
		}
	}
	return model.RiskUnknown
}
