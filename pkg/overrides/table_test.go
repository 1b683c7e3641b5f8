package overrides

import (
	"errors"
	"math"
	"testing"

	"github.com/zpam/bayes-classifier/pkg/classifier"
)

func TestTableSetValidation(t *testing.T) {
	table := NewTable()

	cases := []struct {
		p    float64
		want bool // valid
	}{
		{0.5, true},
		{1.0, true},
		{0.000001, true},
		{0, false},
		{-0.1, false},
		{1.1, false},
	}
	for _, tc := range cases {
		err := table.Set("spam", "w", tc.p)
		if tc.want && err != nil {
			t.Errorf("Set(%g) failed: %v", tc.p, err)
		}
		if !tc.want && !errors.Is(err, classifier.ErrInvalidOverride) {
			t.Errorf("Set(%g) error = %v, want ErrInvalidOverride", tc.p, err)
		}
	}
}

func TestTableLookup(t *testing.T) {
	table := NewTable()
	table.SetFrequent("w")
	if err := table.Set("spam", "w", 0.75); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if !table.IsFrequent("w") {
		t.Error("IsFrequent(w) = false, want true")
	}
	if table.IsFrequent("other") {
		t.Error("IsFrequent(other) = true, want false")
	}

	p, err := table.Probability("spam", "w")
	if err != nil {
		t.Fatalf("Probability failed: %v", err)
	}
	if p != 0.75 {
		t.Errorf("Probability = %g, want 0.75", p)
	}

	if _, err := table.Probability("ham", "w"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Probability(ham, w) error = %v, want ErrNotFound", err)
	}
}

func TestBuildTable(t *testing.T) {
	examples := []classifier.Example{
		{Features: classifier.FeatureSet{"f": "x", "g": "y"}, Label: "spam"},
		{Features: classifier.FeatureSet{"f": "x"}, Label: "spam"},
		{Features: classifier.FeatureSet{"f": "x"}, Label: "spam"},
		{Features: classifier.FeatureSet{"g": "y"}, Label: "spam"},
		{Features: classifier.FeatureSet{"f": "x"}, Label: "ham"},
		{Features: classifier.FeatureSet{"g": "y"}, Label: "ham"},
	}

	table, err := BuildTable(examples, []classifier.Feature{"f"})
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	if !table.IsFrequent("f") {
		t.Error("f should be flagged frequent")
	}
	if table.IsFrequent("g") {
		t.Error("g should not be flagged frequent")
	}

	// Each label's support uses its own denominator: 3 of 4 spam
	// examples carry f, 1 of 2 ham examples do.
	p, err := table.Probability("spam", "f")
	if err != nil {
		t.Fatalf("Probability(spam, f) failed: %v", err)
	}
	if math.Abs(p-0.75) > 1e-12 {
		t.Errorf("Probability(spam, f) = %g, want 0.75", p)
	}

	p, err = table.Probability("ham", "f")
	if err != nil {
		t.Fatalf("Probability(ham, f) failed: %v", err)
	}
	if math.Abs(p-0.5) > 1e-12 {
		t.Errorf("Probability(ham, f) = %g, want 0.5", p)
	}

	// g was never flagged, so no entries exist for it.
	if _, err := table.Probability("spam", "g"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Probability(spam, g) error = %v, want ErrNotFound", err)
	}
}

func TestBuildTableZeroSupportOmitted(t *testing.T) {
	// ham never carries f: no entry is created, so the classifier falls
	// back to its own smoothed estimate instead of hitting an invalid
	// zero override.
	examples := []classifier.Example{
		{Features: classifier.FeatureSet{"f": "x"}, Label: "spam"},
		{Features: classifier.FeatureSet{"g": "y"}, Label: "ham"},
	}

	table, err := BuildTable(examples, []classifier.Feature{"f"})
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	if _, err := table.Probability("ham", "f"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Probability(ham, f) error = %v, want ErrNotFound", err)
	}
}

func TestTableWithClassifier(t *testing.T) {
	examples := []classifier.Example{
		{Features: classifier.FeatureSet{"w": "buy"}, Label: "spam"},
		{Features: classifier.FeatureSet{"w": "buy"}, Label: "spam"},
		{Features: classifier.FeatureSet{"w": "buy"}, Label: "spam"},
		{Features: classifier.FeatureSet{"w": "hello"}, Label: "ham"},
		{Features: classifier.FeatureSet{"w": "hello"}, Label: "ham"},
		{Features: classifier.FeatureSet{"w": "hello"}, Label: "ham"},
	}

	model, err := classifier.Train(examples)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	table, err := BuildTable(examples, []classifier.Feature{"w"})
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	got, err := model.ClassifyWith(classifier.FeatureSet{"w": "buy"}, table)
	if err != nil {
		t.Fatalf("ClassifyWith failed: %v", err)
	}
	if got != "spam" {
		t.Errorf("ClassifyWith = %q, want spam", got)
	}

	scores, err := model.ScoreAllWith(classifier.FeatureSet{"w": "buy"}, table)
	if err != nil {
		t.Fatalf("ScoreAllWith failed: %v", err)
	}
	var sum float64
	for _, p := range scores {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("scores sum to %g, want 1", sum)
	}
}
