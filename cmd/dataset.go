package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zpam/bayes-classifier/pkg/classifier"
	"github.com/zpam/bayes-classifier/pkg/config"
	"github.com/zpam/bayes-classifier/pkg/overrides"
)

// datasetRecord is one already-tokenized, labeled document as stored in
// a dataset file. Tokenization itself happens upstream.
type datasetRecord struct {
	Label    string            `json:"label" yaml:"label"`
	Features map[string]string `json:"features" yaml:"features"`
}

// loadDataset reads labeled feature sets from a JSON or YAML file.
func loadDataset(path string) ([]classifier.Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %v", err)
	}

	var records []datasetRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON dataset: %v", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse YAML dataset: %v", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}

	examples := make([]classifier.Example, 0, len(records))
	for i, rec := range records {
		if rec.Label == "" {
			return nil, fmt.Errorf("record %d has no label", i)
		}
		fs := make(classifier.FeatureSet, len(rec.Features))
		for f, v := range rec.Features {
			fs[classifier.Feature(f)] = classifier.Value(v)
		}
		examples = append(examples, classifier.Example{
			Features: fs,
			Label:    classifier.Label(rec.Label),
		})
	}
	return examples, nil
}

// parseFeatureSet parses an inline JSON object like {"word":"buy"}.
func parseFeatureSet(s string) (classifier.FeatureSet, error) {
	var raw map[string]string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse feature set: %v", err)
	}

	fs := make(classifier.FeatureSet, len(raw))
	for f, v := range raw {
		fs[classifier.Feature(f)] = classifier.Value(v)
	}
	return fs, nil
}

// buildOverrideSource assembles the configured override source from the
// training examples and the mined frequent-feature list. The returned
// closer is nil for the in-memory backend.
func buildOverrideSource(cfg *config.Config, examples []classifier.Example, frequent []string) (classifier.OverrideSource, func() error, error) {
	features := make([]classifier.Feature, 0, len(frequent))
	for _, f := range frequent {
		features = append(features, classifier.Feature(f))
	}

	table, err := overrides.BuildTable(examples, features)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Overrides.Backend == "redis" {
		src, err := overrides.NewRedisSource(cfg.RedisConfig())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect override source: %v", err)
		}
		if err := src.Publish(table); err != nil {
			src.Close()
			return nil, nil, err
		}
		return src, src.Close, nil
	}

	return table, nil, nil
}
