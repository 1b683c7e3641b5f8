// Package overrides provides Frequency Override sources: per-(label,
// feature) probabilities computed by association-rule mining that
// replace the classifier's own smoothed estimates for features flagged
// as frequent.
package overrides

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zpam/bayes-classifier/pkg/classifier"
)

// ErrNotFound is returned when no override is registered for a
// (label, feature) pair. The classifier recovers from it by falling
// back to its own estimate.
var ErrNotFound = errors.New("no override registered")

// Key identifies one override entry.
type Key struct {
	Label   classifier.Label
	Feature classifier.Feature
}

// Table is an in-memory override source. It is populated once from the
// mining collaborator's support counts and treated as read-only during
// inference; the lock only matters while the table is being built.
type Table struct {
	mu       sync.RWMutex
	probs    map[Key]float64
	frequent map[classifier.Feature]bool
}

// NewTable creates an empty override table.
func NewTable() *Table {
	return &Table{
		probs:    make(map[Key]float64),
		frequent: make(map[classifier.Feature]bool),
	}
}

// SetFrequent flags a feature as frequent. Only flagged features are
// consulted during scoring.
func (t *Table) SetFrequent(f classifier.Feature) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frequent[f] = true
}

// Set registers the override probability for a (label, feature) pair.
// Probabilities outside (0, 1] indicate a broken mining computation and
// are rejected here, before they can reach scoring.
func (t *Table) Set(l classifier.Label, f classifier.Feature, p float64) error {
	if p <= 0 || p > 1 {
		return fmt.Errorf("override p(%s|%s)=%g: %w", f, l, p, classifier.ErrInvalidOverride)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.probs[Key{l, f}] = p
	return nil
}

// IsFrequent reports whether f was flagged as frequent.
func (t *Table) IsFrequent(f classifier.Feature) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.frequent[f]
}

// Probability returns the registered override for (l, f), or ErrNotFound.
func (t *Table) Probability(l classifier.Label, f classifier.Feature) (float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.probs[Key{l, f}]
	if !ok {
		return 0, fmt.Errorf("p(%s|%s): %w", f, l, ErrNotFound)
	}
	return p, nil
}

// Probs returns a copy of all registered override probabilities.
func (t *Table) Probs() map[Key]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	probs := make(map[Key]float64, len(t.probs))
	for k, p := range t.probs {
		probs[k] = p
	}
	return probs
}

// FrequentFeatures returns a copy of all flagged features.
func (t *Table) FrequentFeatures() []classifier.Feature {
	t.mu.RLock()
	defer t.mu.RUnlock()

	features := make([]classifier.Feature, 0, len(t.frequent))
	for f, ok := range t.frequent {
		if ok {
			features = append(features, f)
		}
	}
	return features
}

var _ classifier.OverrideSource = (*Table)(nil)
