package prob

import "math"

// SumLogs combines base-2 log values into the log of the sum of their
// exponentials, shifting by the maximum for numerical stability. An
// empty input sums zero probability mass and returns -Inf.
func SumLogs(logs []float64) float64 {
	if len(logs) == 0 {
		return math.Inf(-1)
	}
	max := logs[0]
	for _, l := range logs[1:] {
		if l > max {
			max = l
		}
	}
	if math.IsInf(max, -1) {
		return max
	}
	var sum float64
	for _, l := range logs {
		sum += math.Exp2(l - max)
	}
	return max + math.Log2(sum)
}

// LogDist is a distribution constructed directly from per-sample base-2
// log scores, normalized so the probabilities sum to 1. It carries a
// fixed sample order used for deterministic tie-breaking in Max, and is
// immutable once constructed.
type LogDist[T comparable] struct {
	logProbs map[T]float64
	order    []T
}

// NewLogDist normalizes logScores over the samples listed in order.
// Samples missing from logScores get zero probability. If every score is
// -Inf the distribution is empty: all probabilities are 0 and Max falls
// back to the first sample in order.
func NewLogDist[T comparable](logScores map[T]float64, order []T) *LogDist[T] {
	logs := make([]float64, 0, len(order))
	for _, s := range order {
		if lp, ok := logScores[s]; ok {
			logs = append(logs, lp)
		}
	}
	total := SumLogs(logs)

	normalized := make(map[T]float64, len(order))
	for _, s := range order {
		lp, ok := logScores[s]
		if !ok || math.IsInf(total, -1) {
			normalized[s] = math.Inf(-1)
			continue
		}
		normalized[s] = lp - total
	}
	return &LogDist[T]{
		logProbs: normalized,
		order:    append([]T(nil), order...),
	}
}

// Prob returns the normalized probability of s.
func (d *LogDist[T]) Prob(s T) float64 {
	lp, ok := d.logProbs[s]
	if !ok || math.IsInf(lp, -1) {
		return 0
	}
	return math.Exp2(lp)
}

// LogProb returns the normalized base-2 log probability of s, -Inf when
// s has no mass.
func (d *LogDist[T]) LogProb(s T) float64 {
	lp, ok := d.logProbs[s]
	if !ok {
		return math.Inf(-1)
	}
	return lp
}

// Samples returns the sample space in its fixed order.
func (d *LogDist[T]) Samples() []T {
	return append([]T(nil), d.order...)
}

// Probs returns the full sample-to-probability mapping.
func (d *LogDist[T]) Probs() map[T]float64 {
	probs := make(map[T]float64, len(d.order))
	for _, s := range d.order {
		probs[s] = d.Prob(s)
	}
	return probs
}

// Max returns the sample with the highest probability. Ties resolve to
// the sample that comes first in the fixed order, so repeated calls are
// stable.
func (d *LogDist[T]) Max() T {
	var best T
	bestLog := math.Inf(-1)
	for i, s := range d.order {
		lp := d.logProbs[s]
		if i == 0 || lp > bestLog {
			best = s
			bestLog = lp
		}
	}
	return best
}
