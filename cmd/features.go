package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zpam/bayes-classifier/pkg/classifier"
)

var (
	featuresDataset string
	featuresTop     int
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show the most informative features of a dataset",
	Long: `Train on a labeled dataset and rank its (feature, value) pairs by
discriminative power: the ratio between the highest and lowest
per-label probability of the pair.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if featuresDataset == "" {
			return fmt.Errorf("--dataset must be specified")
		}

		examples, err := loadDataset(featuresDataset)
		if err != nil {
			return err
		}

		model, err := classifier.Train(examples)
		if err != nil {
			return fmt.Errorf("training failed: %v", err)
		}

		return model.WriteMostInformative(os.Stdout, featuresTop)
	},
}

func init() {
	featuresCmd.Flags().StringVarP(&featuresDataset, "dataset", "d", "", "Labeled dataset file (JSON or YAML)")
	featuresCmd.Flags().IntVarP(&featuresTop, "top", "n", 30, "Number of features to show")
}
