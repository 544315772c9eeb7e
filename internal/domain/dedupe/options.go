// Package dedupe tracks distinct identifiers in first-seen order.
package dedupe

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithCapacityHint pre-sizes the deduper for an expected number of IDs.
func WithCapacityHint(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.hint = n
		}
	}
}
