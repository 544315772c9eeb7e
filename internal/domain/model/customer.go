package model

import "time"

// Customer is a fixture banking customer written by the customer generator.
type Customer struct {
	CustomerID    string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DateOfBirth   time.Time
	Address       string
	City          string
	Province      string
	PostalCode    string
	CustomerSince time.Time
	AccountStatus string
	Age           int
	TenureYears   int
	Segment       Segment
}

// Profile projects the customer onto the scoring engine input.
func (c Customer) Profile() CustomerProfile {
	return CustomerProfile{
		CustomerID:  c.CustomerID,
		Segment:     c.Segment,
		Age:         c.Age,
		TenureYears: c.TenureYears,
	}
}

// Transaction is a fixture account transaction.
type Transaction struct {
	TransactionID    string
	CustomerID       string
	AccountID        string
	TransactionDate  time.Time
	TransactionType  string
	Amount           float64
	MerchantCategory string
	Description      string
	Channel          string
}
