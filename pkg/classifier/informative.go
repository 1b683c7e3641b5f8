package classifier

import (
	"fmt"
	"io"
	"sort"
)

// FeatureValue is one (feature, value) pair from the conditional table.
type FeatureValue struct {
	Feature Feature
	Value   Value
}

// MostInformativeFeatures ranks the (feature, value) pairs observed
// under any label by the ratio of their highest to lowest per-label
// probability, descending, and returns the first n. Only labels whose
// conditional distribution actually observed the value participate in
// the ratio. Pairs whose minimum probability is exactly 0 are excluded:
// their ratio is infinite and not rankable (a known limitation — such
// pairs are perfect discriminators but never surface here).
func (m *Model) MostInformativeFeatures(n int) []FeatureValue {
	if m == nil {
		return nil
	}

	maxProb := make(map[FeatureValue]float64)
	minProb := make(map[FeatureValue]float64)
	excluded := make(map[FeatureValue]bool)

	for key, dist := range m.cond {
		for _, v := range dist.Samples() {
			fv := FeatureValue{key.feature, v}
			p := dist.Prob(v)
			if cur, ok := maxProb[fv]; !ok || p > cur {
				maxProb[fv] = p
			}
			if cur, ok := minProb[fv]; !ok || p < cur {
				minProb[fv] = p
			}
			if minProb[fv] == 0 {
				excluded[fv] = true
			}
		}
	}

	pairs := make([]FeatureValue, 0, len(maxProb))
	for fv := range maxProb {
		if !excluded[fv] {
			pairs = append(pairs, fv)
		}
	}

	ratio := func(fv FeatureValue) float64 {
		return maxProb[fv] / minProb[fv]
	}
	sort.Slice(pairs, func(i, j int) bool {
		ri, rj := ratio(pairs[i]), ratio(pairs[j])
		if ri != rj {
			return ri > rj
		}
		if pairs[i].Feature != pairs[j].Feature {
			return pairs[i].Feature < pairs[j].Feature
		}
		return pairs[i].Value < pairs[j].Value
	})

	if n >= 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}

// WriteMostInformative renders the top n informative features to w, one
// line per pair showing the two extreme labels and their probability
// ratio. Pairs observed under a single label carry no contrast and are
// skipped. When the lower-probability side is exactly 0 the ratio is
// rendered as "INF".
func (m *Model) WriteMostInformative(w io.Writer, n int) error {
	if m == nil || len(m.labels) == 0 {
		return ErrUntrained
	}

	for _, fv := range m.MostInformativeFeatures(n) {
		// Labels whose distribution observed this value, lowest
		// probability first; ties keep first-observed label order.
		var labels []Label
		for _, l := range m.labels {
			dist, ok := m.cond[labelFeature{l, fv.Feature}]
			if !ok {
				continue
			}
			for _, v := range dist.Samples() {
				if v == fv.Value {
					labels = append(labels, l)
					break
				}
			}
		}
		if len(labels) < 2 {
			continue
		}
		labelProb := func(l Label) float64 {
			p, _ := m.CondProb(l, fv.Feature, fv.Value)
			return p
		}
		sort.SliceStable(labels, func(i, j int) bool {
			return labelProb(labels[i]) < labelProb(labels[j])
		})

		low, high := labels[0], labels[len(labels)-1]
		ratio := "INF"
		if p := labelProb(low); p != 0 {
			ratio = fmt.Sprintf("%8.1f", labelProb(high)/p)
		}
		if _, err := fmt.Fprintf(w, "%24s = %-14s %6s : %-6s = %s : 1.0\n",
			fv.Feature, displayValue(fv.Value), truncate(string(high), 6), truncate(string(low), 6), ratio); err != nil {
			return err
		}
	}
	return nil
}

func displayValue(v Value) string {
	if v == Unset {
		return "<unset>"
	}
	return fmt.Sprintf("%q", string(v))
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// rune the way a byte slice would.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}
