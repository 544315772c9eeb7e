package scoring

import (
	"math"

	"github.com/okian/creditgen/internal/domain/model"
)

// segmentRule pairs a segment with its base score range.
type segmentRule struct {
	segment model.Segment
	base    span
}

// bracketRule selects a range when the value is at least atLeast.
type bracketRule struct {
	atLeast int
	adjust  span
}

// Tables are evaluated top-down, first match wins.
var (
	segmentTable = []segmentRule{
		{model.SegmentSenior, span{680, 820}},
		{model.SegmentEstablished, span{640, 780}},
		{model.SegmentPrime, span{600, 750}},
		{model.SegmentYoungPro, span{550, 720}},
	}
	defaultBase = span{500, 700}

	ageTable = []bracketRule{
		{65, span{0, 40}},
		{45, span{-10, 30}},
		{30, span{-20, 20}},
		{math.MinInt, span{-30, 10}},
	}

	tenureTable = []bracketRule{
		{10, span{10, 30}},
		{5, span{0, 20}},
		{2, span{-10, 10}},
		{math.MinInt, span{-20, 5}},
	}

	noiseSpan = span{-15, 15}
)

// Components exposes each draw that went into a synthesized score.
type Components struct {
	Base   int
	Age    int
	Tenure int
	Noise  int
	Score  int
}

// Synthesize derives a current score in [300, 900] from a customer's segment,
// age and tenure.
func Synthesize(r Rand, segment model.Segment, age, tenureYears int) int {
	return SynthesizeComponents(r, segment, age, tenureYears).Score
}

// SynthesizeComponents is Synthesize with the individual draws retained.
// The sum is clamped before noise is added and clamped again after, so noise
// can pull a boundary score back toward the centre.
func SynthesizeComponents(r Rand, segment model.Segment, age, tenureYears int) Components {
	c := Components{
		Base:   baseRange(segment).draw(r),
		Age:    bracket(ageTable, age).draw(r),
		Tenure: bracket(tenureTable, tenureYears).draw(r),
	}
	score := model.Clamp(c.Base + c.Age + c.Tenure)
	c.Noise = noiseSpan.draw(r)
	c.Score = model.Clamp(score + c.Noise)
	return c
}

func baseRange(segment model.Segment) span {
	for _, rule := range segmentTable {
		if rule.segment == segment {
			return rule.base
		}
	}
	return defaultBase
}

func bracket(table []bracketRule, v int) span {
	for _, rule := range table {
		if v >= rule.atLeast {
			return rule.adjust
		}
	}
	return table[len(table)-1].adjust
}
