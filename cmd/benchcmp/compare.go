package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
)

// BenchResult is one entry of a benchmark_history file
type BenchResult struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// BenchSummary is the file written by the bench suite
type BenchSummary struct {
	Timestamp string        `json:"timestamp"`
	CommitID  string        `json:"commit_id"`
	Branch    string        `json:"branch"`
	GoVersion string        `json:"go_version"`
	Results   []BenchResult `json:"results"`
}

// MetricComparison holds one metric from both runs
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
	IsImprovement bool    `json:"is_improvement"`
	IsSignificant bool    `json:"is_significant"`
}

// BenchmarkComparison holds every shared metric of one benchmark
type BenchmarkComparison struct {
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	MetricComparisons []MetricComparison `json:"metric_comparisons"`
	HasRegressions    bool               `json:"has_regressions"`
	Score             float64            `json:"score"`
	OverallAssessment string             `json:"overall_assessment"`
}

// ComparisonSummary is the report written to the output file
type ComparisonSummary struct {
	BaseCommit           string                `json:"base_commit"`
	CurrentCommit        string                `json:"current_commit"`
	TotalBenchmarks      int                   `json:"total_benchmarks"`
	ImprovedBenchmarks   int                   `json:"improved_benchmarks"`
	RegressionBenchmarks int                   `json:"regression_benchmarks"`
	BenchmarkComparisons []BenchmarkComparison `json:"benchmark_comparisons"`
}

func loadSummary(path string) (BenchSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BenchSummary{}, fmt.Errorf("error reading %s: %w", path, err)
	}
	var s BenchSummary
	if err := json.Unmarshal(data, &s); err != nil {
		return BenchSummary{}, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return s, nil
}

// metricsOf returns the metrics map with ns_per_op folded in
func metricsOf(r BenchResult) map[string]float64 {
	m := make(map[string]float64, len(r.Metrics)+1)
	for k, v := range r.Metrics {
		m[k] = v
	}
	if r.NsPerOp > 0 {
		m["ns_per_op"] = r.NsPerOp
	}
	return m
}

// compare matches benchmarks by name. A change of at least threshold
// percent is significant; a benchmark with a significant regression counts
// as a regression whatever its other metrics did.
func compare(base, current BenchSummary, threshold float64) ComparisonSummary {
	baseResults := make(map[string]BenchResult, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	summary := ComparisonSummary{
		BaseCommit:           base.CommitID,
		CurrentCommit:        current.CommitID,
		BenchmarkComparisons: []BenchmarkComparison{},
	}

	for _, cur := range current.Results {
		old, found := baseResults[cur.Name]
		if !found {
			continue
		}

		bc := BenchmarkComparison{
			Name:              cur.Name,
			Category:          cur.Category,
			MetricComparisons: []MetricComparison{},
		}
		oldMetrics := metricsOf(old)
		score := 0.0

		for name, curValue := range metricsOf(cur) {
			baseValue, found := oldMetrics[name]
			if !found {
				continue
			}

			change := 0.0
			if baseValue != 0 {
				change = (curValue - baseValue) / baseValue * 100
			}

			mc := MetricComparison{
				Name:          name,
				BaseValue:     baseValue,
				CurrentValue:  curValue,
				PercentChange: change,
				IsSignificant: math.Abs(change) >= threshold,
			}
			if isHigherBetterMetric(name) {
				mc.IsRegression = change < 0
				mc.IsImprovement = change > 0
			} else {
				mc.IsRegression = change > 0
				mc.IsImprovement = change < 0
			}

			if mc.IsRegression && mc.IsSignificant {
				bc.HasRegressions = true
			}
			if mc.IsImprovement {
				score += math.Abs(change)
			} else if mc.IsRegression {
				score -= math.Abs(change)
			}
			bc.MetricComparisons = append(bc.MetricComparisons, mc)
		}

		if n := len(bc.MetricComparisons); n > 0 {
			bc.Score = score / float64(n)
		}
		sort.Slice(bc.MetricComparisons, func(i, j int) bool {
			return math.Abs(bc.MetricComparisons[i].PercentChange) >
				math.Abs(bc.MetricComparisons[j].PercentChange)
		})

		switch {
		case bc.HasRegressions:
			bc.OverallAssessment = "REGRESSION"
			summary.RegressionBenchmarks++
		case bc.Score > 0:
			bc.OverallAssessment = "IMPROVEMENT"
			summary.ImprovedBenchmarks++
		default:
			bc.OverallAssessment = "NEUTRAL"
		}
		summary.BenchmarkComparisons = append(summary.BenchmarkComparisons, bc)
	}

	// Worst first
	sort.SliceStable(summary.BenchmarkComparisons, func(i, j int) bool {
		a, b := summary.BenchmarkComparisons[i], summary.BenchmarkComparisons[j]
		if a.HasRegressions != b.HasRegressions {
			return a.HasRegressions
		}
		return a.Score < b.Score
	})
	summary.TotalBenchmarks = len(summary.BenchmarkComparisons)
	return summary
}

// printComparison writes the human-readable report
func printComparison(w io.Writer, s ComparisonSummary) {
	fmt.Fprintf(w, "Benchmark Comparison: %s vs %s\n\n",
		truncateString(s.BaseCommit, 8),
		truncateString(s.CurrentCommit, 8))

	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "- Total benchmarks compared: %d\n", s.TotalBenchmarks)
	fmt.Fprintf(w, "- Improvements: %d\n", s.ImprovedBenchmarks)
	fmt.Fprintf(w, "- Regressions: %d\n\n", s.RegressionBenchmarks)

	if s.TotalBenchmarks == 0 {
		fmt.Fprintln(w, "No matching benchmarks found for comparison")
		return
	}

	fmt.Fprintln(w, "Benchmark Details (sorted by impact):")
	fmt.Fprintln(w, "======================================")

	for _, bc := range s.BenchmarkComparisons {
		indicator := "+"
		switch {
		case bc.HasRegressions:
			indicator = "x"
		case bc.Score < 0:
			indicator = "~"
		case bc.Score == 0:
			indicator = "="
		}
		fmt.Fprintf(w, "\n%s %s (%s):\n", indicator, bc.Name, bc.Category)

		for _, m := range bc.MetricComparisons {
			if m.PercentChange == 0 {
				continue
			}
			mark := " "
			if m.IsRegression && m.IsSignificant {
				mark = "v"
			} else if m.IsImprovement && m.IsSignificant {
				mark = "^"
			}
			fmt.Fprintf(w, "  %s %-22s: %+8.2f%% (%g -> %g)\n",
				mark, m.Name, m.PercentChange, m.BaseValue, m.CurrentValue)
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// isHigherBetterMetric reports whether a larger value is an improvement.
// Everything else (ns_per_op, heap_mb, longest_chain, ...) is lower-better.
func isHigherBetterMetric(name string) bool {
	for _, pattern := range []string{"_rate", "ops_per_sec", "operations", "throughput"} {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}
