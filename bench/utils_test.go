package chash_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/theflywheel/chash"
)

// BenchmarkMetrics represents metrics for a single benchmark
type BenchmarkMetrics struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results of one run
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

// heapAllocMB returns the live heap in megabytes after a collection
func heapAllocMB() float64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / (1024 * 1024)
}

// recordTableStats copies the directory shape into the metrics
func recordTableStats(metrics *BenchmarkMetrics, s chash.Stats) {
	metrics.Metrics["buckets"] = float64(s.Buckets)
	metrics.Metrics["used_buckets"] = float64(s.UsedBuckets)
	metrics.Metrics["longest_chain"] = float64(s.LongestChain)
	metrics.Metrics["rehashes"] = float64(s.Rehashes)
	metrics.Metrics["skipped_growths"] = float64(s.SkippedGrowths)
	if s.Buckets > 0 {
		metrics.Metrics["load_factor"] = float64(s.Entries) / float64(s.Buckets)
	}
}

// gitInfo reads the branch and short commit id from .git, if present
func gitInfo(repoRoot string) (branch, commitID string) {
	branch, commitID = "dev", "local"

	head, err := os.ReadFile(filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return branch, commitID
	}
	ref := strings.TrimSpace(string(head))
	if !strings.HasPrefix(ref, "ref: ") {
		if len(ref) >= 8 {
			commitID = ref[:8]
		}
		return branch, commitID
	}

	ref = strings.TrimPrefix(ref, "ref: ")
	branch = strings.TrimPrefix(ref, "refs/heads/")
	if data, err := os.ReadFile(filepath.Join(repoRoot, ".git", ref)); err == nil {
		commitID = strings.TrimSpace(string(data))
		if len(commitID) >= 8 {
			commitID = commitID[:8]
		}
	}
	return branch, commitID
}

// saveBenchmarkResult appends a result to benchmark_history/<resultsFile> in the repository root
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	// bench/ sits directly under the repository root
	repoRoot := filepath.Dir(currentDir)

	benchmarkDir := filepath.Join(repoRoot, "benchmark_history")
	if err := os.MkdirAll(benchmarkDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	branch, commitID := gitInfo(repoRoot)
	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		Results:   []BenchmarkMetrics{metrics},
	}

	// Merge with existing results if available
	latestFile := filepath.Join(benchmarkDir, resultsFile)
	if existing, err := os.ReadFile(latestFile); err == nil {
		var prev BenchmarkSummary
		if err := json.Unmarshal(existing, &prev); err == nil {
			summary.Results = append(prev.Results, metrics)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	if err := os.WriteFile(latestFile, data, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	fmt.Printf("Benchmark results saved to: %s\n", latestFile)
	return nil
}
