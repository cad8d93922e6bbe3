// Package strategy defines the Strategy interface for rule-based signal
// generation and provides a Registry for managing multiple strategy
// implementations.
package strategy

import (
	"sort"

	"quantbt/internal/series"
)

// Diagnostics carries the intermediate rolling series a strategy computed
// while generating signals (moving averages, z-scores, momentum), keyed by
// name. It exists for inspection and plotting; the pipeline itself never
// reads it.
type Diagnostics map[string]series.Series

// Strategy is the interface all signal generators implement.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// GenerateSignals maps a price series to a signal series over exactly
	// the same timestamp domain. Signal values are -1, 0, or +1. Prices
	// shorter than the strategy's lookback produce neutral or default
	// signals rather than an error.
	GenerateSignals(prices series.Series) (series.Series, Diagnostics)
}

// Registry holds a named collection of strategies for lookup and enumeration.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Register adds a strategy to the registry, keyed by its Name().
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get retrieves a strategy by name. The second return value indicates whether
// the strategy was found.
func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// List returns a sorted slice of all registered strategy names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
