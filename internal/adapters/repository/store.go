// Package repository reads generator input and persists generated records.
package repository

import (
	"context"

	"github.com/okian/creditgen/internal/domain/model"
)

// Sink receives the output of one generation run.
type Sink interface {
	// WriteScores persists score records in the order given.
	WriteScores(ctx context.Context, runID string, scores []model.ScoreRecord) error
	// WriteEvents persists credit events in the order given.
	WriteEvents(ctx context.Context, runID string, events []model.CreditEvent) error
	// Close releases the sink's resources.
	Close() error
}
