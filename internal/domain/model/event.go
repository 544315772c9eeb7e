package model

import "time"

// Impact bounds for credit events.
const (
	MinImpact = -50
	MaxImpact = 25
)

// EventType is the kind of discrete credit occurrence.
type EventType string

const (
	EventNewAccount     EventType = "NEW_CREDIT_ACCOUNT"
	EventMissedPayment  EventType = "MISSED_PAYMENT"
	EventLimitIncrease  EventType = "CREDIT_LIMIT_INCREASE"
	EventAccountClosure EventType = "ACCOUNT_CLOSURE"
	EventInquiry        EventType = "CREDIT_INQUIRY"
)

// EventTypes lists every event type; sampling is uniform over it.
var EventTypes = []EventType{
	EventNewAccount,
	EventMissedPayment,
	EventLimitIncrease,
	EventAccountClosure,
	EventInquiry,
}

// CreditEvent is descriptive metadata. Its impact is never applied back to a
// ScoreRecord.
type CreditEvent struct {
	CustomerID  string
	EventType   EventType
	EventDate   time.Time
	ImpactScore int
	Description string
}
