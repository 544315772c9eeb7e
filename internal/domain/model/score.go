package model

import "time"

// Score bounds shared by every generated record.
const (
	MinScore = 300
	MaxScore = 900
)

// Bureau is a credit-reporting source.
type Bureau string

const (
	BureauEquifax    Bureau = "Equifax"
	BureauTransUnion Bureau = "TransUnion"
)

// Bureaus lists every bureau in emission order.
var Bureaus = []Bureau{BureauEquifax, BureauTransUnion}

// RiskCategory is a coarse label derived from a score.
type RiskCategory string

const (
	RiskVeryLow    RiskCategory = "VERY_LOW"
	RiskLow        RiskCategory = "LOW"
	RiskMedium     RiskCategory = "MEDIUM"
	RiskMediumHigh RiskCategory = "MEDIUM_HIGH"
	RiskHigh       RiskCategory = "HIGH"
	RiskVeryHigh   RiskCategory = "VERY_HIGH"
	RiskUnknown    RiskCategory = "UNKNOWN"
)

// ScoreKind distinguishes today's score from reconstructed past scores.
type ScoreKind string

const (
	KindCurrent    ScoreKind = "Current"
	KindHistorical ScoreKind = "Historical"
)

// ScoreRecord is one bureau score for one customer at one point in time.
type ScoreRecord struct {
	CustomerID   string
	Bureau       Bureau
	Score        int
	AsOfDate     time.Time
	RiskCategory RiskCategory
	Kind         ScoreKind
}

// Clamp bounds a score to [MinScore, MaxScore].
func Clamp(score int) int {
	return max(MinScore, min(MaxScore, score))
}
