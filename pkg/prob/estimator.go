package prob

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBins is returned when an estimator is declared with a sample
// space smaller than the number of values already observed.
var ErrInvalidBins = errors.New("sample space smaller than observed values")

// ELEDist is a probability distribution fitted from a FreqDist using
// expected-likelihood estimation: every value in a declared sample space
// of size bins receives half an extra count, so unseen values keep
// non-zero mass and probabilities over the full space sum to 1.
//
//	Prob(v) = (count(v) + 0.5) / (total + 0.5*bins)
//
// The distribution is immutable once constructed; the caller must not
// keep incrementing the source FreqDist.
type ELEDist[T comparable] struct {
	freq *FreqDist[T]
	bins int
}

// NewELEDist fits a smoothed distribution over a sample space of size
// bins. bins must be at least the number of distinct observed values;
// bins == 0 is the degenerate empty distribution where every probability
// is 0.
func NewELEDist[T comparable](freq *FreqDist[T], bins int) (*ELEDist[T], error) {
	if bins < freq.Distinct() {
		return nil, fmt.Errorf("%w: bins=%d observed=%d", ErrInvalidBins, bins, freq.Distinct())
	}
	return &ELEDist[T]{freq: freq, bins: bins}, nil
}

// Prob returns the smoothed probability of v.
func (d *ELEDist[T]) Prob(v T) float64 {
	if d.bins == 0 {
		return 0
	}
	return (float64(d.freq.Count(v)) + 0.5) / (float64(d.freq.Total()) + 0.5*float64(d.bins))
}

// LogProb returns the base-2 logarithm of Prob(v). A zero probability
// yields negative infinity rather than an error.
func (d *ELEDist[T]) LogProb(v T) float64 {
	p := d.Prob(v)
	if p == 0 {
		return math.Inf(-1)
	}
	return math.Log2(p)
}

// Bins returns the declared sample-space size.
func (d *ELEDist[T]) Bins() int {
	return d.bins
}

// Samples returns the observed values, not the full declared sample
// space: values that only exist as smoothing mass are not enumerable.
func (d *ELEDist[T]) Samples() []T {
	return d.freq.Samples()
}
