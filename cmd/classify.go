package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zpam/bayes-classifier/pkg/classifier"
	"github.com/zpam/bayes-classifier/pkg/config"
)

var (
	classifyDataset  string
	classifyConfig   string
	classifyInput    string
	classifyFrequent []string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a feature set against a trained model",
	Long: `Train on a labeled dataset and score a single feature set against it.

The feature set is an inline JSON object mapping feature names to
values, e.g. '{"word":"buy","caps":"yes"}'. All per-label probabilities
are printed along with the winning label.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if classifyDataset == "" {
			return fmt.Errorf("--dataset must be specified")
		}
		if classifyInput == "" {
			return fmt.Errorf("--features must be specified")
		}

		cfg, err := config.LoadConfig(classifyConfig)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}

		examples, err := loadDataset(classifyDataset)
		if err != nil {
			return err
		}

		fs, err := parseFeatureSet(classifyInput)
		if err != nil {
			return err
		}

		model, err := classifier.Train(examples)
		if err != nil {
			return fmt.Errorf("training failed: %v", err)
		}

		var src classifier.OverrideSource
		if len(classifyFrequent) > 0 {
			var closer func() error
			src, closer, err = buildOverrideSource(cfg, examples, classifyFrequent)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer()
			}
		}

		scores, err := model.ScoreAllWith(fs, src)
		if err != nil {
			return fmt.Errorf("scoring failed: %v", err)
		}

		type labelScore struct {
			label classifier.Label
			prob  float64
		}
		ranked := make([]labelScore, 0, len(scores))
		for label, p := range scores {
			ranked = append(ranked, labelScore{label, p})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].prob != ranked[j].prob {
				return ranked[i].prob > ranked[j].prob
			}
			return ranked[i].label < ranked[j].label
		})

		for _, ls := range ranked {
			fmt.Printf("  %-12s %.4f\n", ls.label, ls.prob)
		}

		winner, err := model.ClassifyWith(fs, src)
		if err != nil {
			return err
		}
		fmt.Printf("\nClassified as: %s\n", winner)
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyDataset, "dataset", "d", "", "Labeled dataset file (JSON or YAML)")
	classifyCmd.Flags().StringVarP(&classifyConfig, "config", "c", "", "Configuration file path")
	classifyCmd.Flags().StringVarP(&classifyInput, "features", "f", "", "Feature set to classify (inline JSON)")
	classifyCmd.Flags().StringSliceVar(&classifyFrequent, "frequent", nil, "Frequent features for override scoring")
}
