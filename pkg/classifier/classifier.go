// Package classifier implements a Naive Bayes classifier over documents
// represented as bags of named features. A trained Model holds P(label)
// and one P(value|label, feature) distribution per (label, feature)
// pair; scoring combines them under the independence assumption and
// normalizes the per-label log scores into a probability distribution.
package classifier

import (
	"errors"
	"fmt"
	"math"

	"github.com/zpam/bayes-classifier/pkg/prob"
)

// Label identifies a document category, e.g. "spam" or "ham".
type Label string

// Feature identifies one feature dimension, e.g. a word.
type Feature string

// Value is the value a feature takes in a document.
type Value string

// Unset is the reserved value recorded for documents that do not carry a
// feature at all. It must not be used as a real feature value.
const Unset Value = "\x00<unset>"

// FeatureSet maps feature names to their observed values for one document.
type FeatureSet map[Feature]Value

// Example is one labeled training document.
type Example struct {
	Features FeatureSet
	Label    Label
}

var (
	// ErrNoExamples is returned by Train when given an empty example set.
	ErrNoExamples = errors.New("no training examples")

	// ErrUntrained is returned when classifying with a model that holds
	// no labels.
	ErrUntrained = errors.New("model has not been trained")

	// ErrInvalidOverride is returned when an override source yields a
	// probability outside (0, 1]. A zero override is a bridge bug, not a
	// legitimate unseen event, and must not silently become -Inf.
	ErrInvalidOverride = errors.New("override probability outside (0, 1]")
)

// OverrideSource supplies externally computed probabilities for features
// that association-rule mining flagged as frequent. When IsFrequent
// reports true for a feature, Probability replaces the model's own
// estimate for that (label, feature) during scoring. A Probability error
// is recovered locally: the model falls back to its own estimate rather
// than failing the classification.
type OverrideSource interface {
	IsFrequent(f Feature) bool
	Probability(l Label, f Feature) (float64, error)
}

type labelFeature struct {
	label   Label
	feature Feature
}

// Model is an immutable trained Naive Bayes classifier. A Model is safe
// to share across goroutines; nothing mutates it after Train returns.
type Model struct {
	prior  *prob.ELEDist[Label]
	cond   map[labelFeature]*prob.ELEDist[Value]
	labels []Label // first-observed order, used for tie-breaking

	// Features with at least one conditional entry. Anything else in a
	// query is an unseen feature and is ignored during scoring.
	features map[Feature]struct{}
}

// Train fits a Model from labeled examples. The result depends only on
// the multiset of (feature, value, label) occurrences, never on the
// order of the input; the input order only fixes the label tie-break
// sequence used by Classify.
func Train(examples []Example) (*Model, error) {
	if len(examples) == 0 {
		return nil, ErrNoExamples
	}

	labelFreq := prob.NewFreqDist[Label]()
	var labelOrder []Label
	featureFreq := make(map[labelFeature]*prob.FreqDist[Value])
	featureValues := make(map[Feature]map[Value]struct{})

	for _, ex := range examples {
		if labelFreq.Count(ex.Label) == 0 {
			labelOrder = append(labelOrder, ex.Label)
		}
		labelFreq.Increment(ex.Label)

		for f, v := range ex.Features {
			key := labelFeature{ex.Label, f}
			fd, ok := featureFreq[key]
			if !ok {
				fd = prob.NewFreqDist[Value]()
				featureFreq[key] = fd
			}
			fd.Increment(v)

			vals, ok := featureValues[f]
			if !ok {
				vals = make(map[Value]struct{})
				featureValues[f] = vals
			}
			vals[v] = struct{}{}
		}
	}

	// Documents that never mention a feature implicitly vote for its
	// absence: attribute the shortfall between a label's example count
	// and the feature's recorded count to the reserved Unset value, and
	// add Unset to the feature's sample space.
	for _, label := range labelOrder {
		numSamples := labelFreq.Count(label)
		for f := range featureValues {
			key := labelFeature{label, f}
			fd, ok := featureFreq[key]
			if !ok {
				fd = prob.NewFreqDist[Value]()
				featureFreq[key] = fd
			}
			if missing := numSamples - fd.Total(); missing > 0 {
				fd.Add(Unset, missing)
				featureValues[f][Unset] = struct{}{}
			}
		}
	}

	prior, err := prob.NewELEDist(labelFreq, labelFreq.Distinct())
	if err != nil {
		return nil, fmt.Errorf("fit label prior: %v", err)
	}

	// Each feature's smoothing denominator uses its global distinct
	// value count, so all labels share the same sample space for a
	// given feature.
	cond := make(map[labelFeature]*prob.ELEDist[Value], len(featureFreq))
	for key, fd := range featureFreq {
		dist, err := prob.NewELEDist(fd, len(featureValues[key.feature]))
		if err != nil {
			return nil, fmt.Errorf("fit %s|%s: %v", key.feature, key.label, err)
		}
		cond[key] = dist
	}

	features := make(map[Feature]struct{}, len(featureValues))
	for f := range featureValues {
		features[f] = struct{}{}
	}

	return &Model{
		prior:    prior,
		cond:     cond,
		labels:   labelOrder,
		features: features,
	}, nil
}

// Labels returns the known labels in the order they were first observed
// during training.
func (m *Model) Labels() []Label {
	return append([]Label(nil), m.labels...)
}

// PriorProb returns the smoothed prior probability of a label.
func (m *Model) PriorProb(l Label) float64 {
	if m == nil || m.prior == nil {
		return 0
	}
	return m.prior.Prob(l)
}

// CondProb returns the smoothed probability of feature f taking value v
// under label l, and whether the (label, feature) pair is known at all.
func (m *Model) CondProb(l Label, f Feature, v Value) (float64, bool) {
	dist, ok := m.cond[labelFeature{l, f}]
	if !ok {
		return 0, false
	}
	return dist.Prob(v), true
}

// ScoreAll scores a feature set against every label and returns a
// normalized label-to-probability mapping.
func (m *Model) ScoreAll(fs FeatureSet) (map[Label]float64, error) {
	return m.ScoreAllWith(fs, nil)
}

// ScoreAllWith is ScoreAll with an optional override source consulted
// for features flagged as frequent. A nil source behaves exactly like
// ScoreAll.
func (m *Model) ScoreAllWith(fs FeatureSet, src OverrideSource) (map[Label]float64, error) {
	dist, err := m.scoreDist(fs, src)
	if err != nil {
		return nil, err
	}
	return dist.Probs(), nil
}

// Classify returns the most probable label for a feature set. Ties
// resolve to the label observed first during training.
func (m *Model) Classify(fs FeatureSet) (Label, error) {
	return m.ClassifyWith(fs, nil)
}

// ClassifyWith is Classify with an optional override source.
func (m *Model) ClassifyWith(fs FeatureSet, src OverrideSource) (Label, error) {
	dist, err := m.scoreDist(fs, src)
	if err != nil {
		return "", err
	}
	return dist.Max(), nil
}

func (m *Model) scoreDist(fs FeatureSet, src OverrideSource) (*prob.LogDist[Label], error) {
	if m == nil || len(m.labels) == 0 {
		return nil, ErrUntrained
	}

	// Discard feature names never seen with any label. Scoring them
	// would zero out every label instead of conveying no information.
	known := make(FeatureSet, len(fs))
	for f, v := range fs {
		if _, ok := m.features[f]; ok {
			known[f] = v
		}
	}

	logScores := make(map[Label]float64, len(m.labels))
	for _, label := range m.labels {
		logScores[label] = m.prior.LogProb(label)
	}

	for _, label := range m.labels {
		for f, v := range known {
			dist, ok := m.cond[labelFeature{label, f}]
			if !ok {
				// The feature exists for some other label only, which
				// rules this label out. Train never produces such a
				// model, but hand-built conditional tables can.
				logScores[label] = math.Inf(-1)
				continue
			}
			if src != nil && src.IsFrequent(f) {
				p, err := src.Probability(label, f)
				if err == nil {
					if p <= 0 || p > 1 {
						return nil, fmt.Errorf("%w: p(%s|%s)=%g", ErrInvalidOverride, f, label, p)
					}
					logScores[label] += math.Log2(p)
					continue
				}
				// Override lookup failed: fall back to our own estimate.
			}
			logScores[label] += dist.LogProb(v)
		}
	}

	return prob.NewLogDist(logScores, m.labels), nil
}
