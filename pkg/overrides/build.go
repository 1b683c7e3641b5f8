package overrides

import (
	"fmt"

	"github.com/zpam/bayes-classifier/pkg/classifier"
)

// BuildTable derives an override table from labeled examples and the
// mining collaborator's list of frequent features. Each entry is the
// feature's support ratio within its own label:
//
//	p(f|label) = examples with label containing f / examples with label
//
// Every label uses its own denominator; a shared denominator across
// labels would skew the override toward the larger class. Pairs with
// zero support get no entry at all, which makes the classifier fall
// back to its own smoothed estimate for them.
func BuildTable(examples []classifier.Example, frequent []classifier.Feature) (*Table, error) {
	table := NewTable()
	isFrequent := make(map[classifier.Feature]bool, len(frequent))
	for _, f := range frequent {
		table.SetFrequent(f)
		isFrequent[f] = true
	}

	labelTotals := make(map[classifier.Label]int)
	support := make(map[Key]int)
	for _, ex := range examples {
		labelTotals[ex.Label]++
		for f := range ex.Features {
			if isFrequent[f] {
				support[Key{ex.Label, f}]++
			}
		}
	}

	for key, n := range support {
		p := float64(n) / float64(labelTotals[key.Label])
		if err := table.Set(key.Label, key.Feature, p); err != nil {
			return nil, fmt.Errorf("build override table: %v", err)
		}
	}
	return table, nil
}
