// Command benchcmp compares two benchmark_history files written by the bench
// suite and fails when the current run regressed.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var errRegressions = errors.New("significant performance regressions detected")

func newRootCommand() *cobra.Command {
	var (
		threshold float64
		output    string
	)

	cmd := &cobra.Command{
		Use:           "benchcmp <base.json> <current.json>",
		Short:         "Compare two benchmark result files",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadSummary(args[0])
			if err != nil {
				return err
			}
			current, err := loadSummary(args[1])
			if err != nil {
				return err
			}

			summary := compare(base, current, threshold)
			printComparison(cmd.OutOrStdout(), summary)

			if output != "" {
				data, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return fmt.Errorf("error creating comparison JSON: %w", err)
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("error writing comparison file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nComparison JSON written to %s\n", output)
			}

			if summary.RegressionBenchmarks > 0 {
				return fmt.Errorf("%d benchmarks: %w", summary.RegressionBenchmarks, errRegressions)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 5.0, "percent change treated as significant")
	cmd.Flags().StringVarP(&output, "output", "o", "benchmark-comparison.json", "comparison JSON path, empty to skip")
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
