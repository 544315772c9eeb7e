// Package model contains domain models passed between layers.
package model

import "strings"

// Segment classifies a customer and selects the base score distribution.
type Segment string

const (
	SegmentSenior      Segment = "SeniorBanking"
	SegmentEstablished Segment = "EstablishedBanking"
	SegmentPrime       Segment = "PrimeBanking"
	SegmentYoungPro    Segment = "YoungProfessional"
	SegmentUnknown     Segment = "Unknown"
)

// Defaults substituted for absent profile fields.
const (
	DefaultAge         = 35
	DefaultTenureYears = 2
)

const segmentNormalizeDrop = " _-"

var segmentsByKey = map[string]Segment{
	"seniorbanking":      SegmentSenior,
	"establishedbanking": SegmentEstablished,
	"primebanking":       SegmentPrime,
	"youngprofessional":  SegmentYoungPro,
	"unknown":            SegmentUnknown,
}

// ParseSegment maps free-form segment text ("Senior Banking", "SENIOR_BANKING",
// "SeniorBanking") onto a Segment. Unrecognised text yields SegmentUnknown.
func ParseSegment(s string) Segment {
	key := strings.Map(func(r rune) rune {
		if strings.ContainsRune(segmentNormalizeDrop, r) {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	if seg, ok := segmentsByKey[key]; ok {
		return seg
	}
	return SegmentUnknown
}

// Label returns the display form used by upstream customer files.
func (s Segment) Label() string {
	switch s {
	case SegmentSenior:
		return "Senior Banking"
	case SegmentEstablished:
		return "Established Banking"
	case SegmentPrime:
		return "Prime Banking"
	case SegmentYoungPro:
		return "Young Professional"
	default:
		return string(SegmentUnknown)
	}
}

// CustomerProfile is the immutable engine input for one customer.
type CustomerProfile struct {
	CustomerID  string
	Segment     Segment
	Age         int
	TenureYears int
}

// ProfileInput is a customer row as read from an upstream source, where any
// field other than CustomerID may be absent.
type ProfileInput struct {
	CustomerID  string
	Segment     *string
	Age         *int
	TenureYears *int
}

// Resolve substitutes Unknown/35/2 for absent fields.
func (in ProfileInput) Resolve() CustomerProfile {
	p := CustomerProfile{
		CustomerID:  in.CustomerID,
		Segment:     SegmentUnknown,
		Age:         DefaultAge,
		TenureYears: DefaultTenureYears,
	}
	if in.Segment != nil {
		p.Segment = ParseSegment(*in.Segment)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.TenureYears != nil {
		p.TenureYears = *in.TenureYears
	}
	return p
}
