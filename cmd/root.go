package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bayes",
	Short: "Naive Bayes feature-set classifier",
	Long: `bayes trains a Naive Bayes classifier on labeled feature sets and
scores unseen documents against it.

Documents are bags of named features produced by an external tokenizer;
training fits a smoothed label prior and per-(label, feature) value
distributions, and scoring combines them into per-label probabilities.
Features flagged as frequent by association-rule mining can have their
probabilities overridden from a precomputed table or a Redis store.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bayes - Naive Bayes feature-set classifier")
		fmt.Println("Use 'bayes --help' for usage information")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(featuresCmd)
}
