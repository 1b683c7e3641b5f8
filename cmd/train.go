package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/zpam/bayes-classifier/pkg/classifier"
	"github.com/zpam/bayes-classifier/pkg/config"
)

var (
	trainDataset  string
	trainConfig   string
	trainFraction float64
	trainTop      int
	trainFrequent []string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a classifier and evaluate it on a held-out split",
	Long: `Train a Naive Bayes classifier on a labeled dataset of feature sets.

The dataset is split into a training and an evaluation portion; accuracy
is reported per label, and the most informative features are printed at
the end. Passing --frequent enables frequency overrides for the listed
features during evaluation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if trainDataset == "" {
			return fmt.Errorf("--dataset must be specified")
		}

		cfg, err := loadTrainConfig()
		if err != nil {
			return err
		}

		examples, err := loadDataset(trainDataset)
		if err != nil {
			return err
		}

		split := int(float64(len(examples)) * cfg.Training.TrainFraction)
		if split == 0 {
			split = len(examples)
		}
		trainSet, testSet := examples[:split], examples[split:]

		fmt.Printf("Training set: %d examples\n", len(trainSet))
		fmt.Printf("Evaluation set: %d examples\n", len(testSet))

		start := time.Now()
		model, err := classifier.Train(trainSet)
		if err != nil {
			return fmt.Errorf("training failed: %v", err)
		}
		fmt.Printf("Trained %d labels in %v\n\n", len(model.Labels()), time.Since(start))

		var src classifier.OverrideSource
		if len(trainFrequent) > 0 {
			var closer func() error
			src, closer, err = buildOverrideSource(cfg, trainSet, trainFrequent)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer()
			}
			fmt.Printf("Frequency overrides enabled for %d features\n\n", len(trainFrequent))
		}

		fmt.Printf("Accuracy on training set:\n")
		if err := printAccuracy(model, trainSet, src); err != nil {
			return err
		}
		if len(testSet) > 0 {
			fmt.Printf("\nAccuracy on evaluation set:\n")
			if err := printAccuracy(model, testSet, src); err != nil {
				return err
			}
		}

		fmt.Printf("\nMost informative features:\n")
		return model.WriteMostInformative(os.Stdout, cfg.Output.TopFeatures)
	},
}

// printAccuracy reports classification accuracy per label. The core only
// exposes per-label probabilities; accuracy pairs are a view derived
// here.
func printAccuracy(model *classifier.Model, examples []classifier.Example, src classifier.OverrideSource) error {
	correct := make(map[classifier.Label]int)
	total := make(map[classifier.Label]int)

	for _, ex := range examples {
		got, err := model.ClassifyWith(ex.Features, src)
		if err != nil {
			return fmt.Errorf("classification failed: %v", err)
		}
		total[ex.Label]++
		if got == ex.Label {
			correct[ex.Label]++
		}
	}

	labels := model.Labels()
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	for _, label := range labels {
		if total[label] == 0 {
			continue
		}
		fmt.Printf("  %-12s %6.2f%% (%d/%d)\n",
			label, 100*float64(correct[label])/float64(total[label]), correct[label], total[label])
	}
	return nil
}

func loadTrainConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(trainConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}
	if trainFraction > 0 {
		cfg.Training.TrainFraction = trainFraction
	}
	if trainTop > 0 {
		cfg.Output.TopFeatures = trainTop
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return cfg, nil
}

func init() {
	trainCmd.Flags().StringVarP(&trainDataset, "dataset", "d", "", "Labeled dataset file (JSON or YAML)")
	trainCmd.Flags().StringVarP(&trainConfig, "config", "c", "", "Configuration file path")
	trainCmd.Flags().Float64Var(&trainFraction, "split", 0, "Training fraction override (0 uses config value)")
	trainCmd.Flags().IntVar(&trainTop, "top", 0, "Informative features to show (0 uses config value)")
	trainCmd.Flags().StringSliceVar(&trainFrequent, "frequent", nil, "Frequent features for override scoring")
}
