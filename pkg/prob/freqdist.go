package prob

// FreqDist counts occurrences of discrete values. It backs both the label
// prior and the per-(label, feature) value counts, so it is generic over
// the sample type. Counts only ever grow.
type FreqDist[T comparable] struct {
	counts map[T]int
	total  int
}

// NewFreqDist creates an empty frequency distribution.
func NewFreqDist[T comparable]() *FreqDist[T] {
	return &FreqDist[T]{
		counts: make(map[T]int),
	}
}

// Increment records one occurrence of v.
func (fd *FreqDist[T]) Increment(v T) {
	fd.counts[v]++
	fd.total++
}

// Add records n occurrences of v. Negative n is ignored.
func (fd *FreqDist[T]) Add(v T, n int) {
	if n <= 0 {
		return
	}
	fd.counts[v] += n
	fd.total += n
}

// Count returns how many times v was observed.
func (fd *FreqDist[T]) Count(v T) int {
	return fd.counts[v]
}

// Total returns the running sum of all counts.
func (fd *FreqDist[T]) Total() int {
	return fd.total
}

// Distinct returns the number of distinct observed values.
func (fd *FreqDist[T]) Distinct() int {
	return len(fd.counts)
}

// Samples returns the distinct observed values in unspecified order.
func (fd *FreqDist[T]) Samples() []T {
	samples := make([]T, 0, len(fd.counts))
	for v := range fd.counts {
		samples = append(samples, v)
	}
	return samples
}
