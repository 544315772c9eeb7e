// Package dedupe tracks distinct identifiers in first-seen order.
package dedupe

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
)

// Deduper records seen IDs so each is kept once.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// IDs returns the recorded IDs in first-seen order.
	IDs() []string

	Size() int64
}

// inMemoryDeduper keeps a map for membership and a slice for ordering.
type inMemoryDeduper struct {
	mu    sync.RWMutex
	seen  map[string]struct{}
	order []string
	size  atomic.Int64
	hint  int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{}, d.hint)
	d.order = make([]string, 0, d.hint)

	return d
}

// SeenAndRecord atomically checks if id was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}

	d.seen[id] = struct{}{}
	d.order = append(d.order, id)
	d.size.Add(1)
	return false
}

// IDs returns a copy of the recorded IDs in first-seen order.
func (d *inMemoryDeduper) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.order)
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
