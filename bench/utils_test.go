package chainmap_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/theflywheel/chainmap"
)

// BenchmarkMetrics represents metrics for a single benchmark
type BenchmarkMetrics struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

// getMemoryUsage returns the current heap usage in human-readable form
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("Memory: Alloc=%s Sys=%s",
		humanize.IBytes(m.Alloc), humanize.IBytes(m.Sys))
}

// getMemoryStats returns the current memory stats as a map
func getMemoryStats() map[string]float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]float64{
		"alloc_mb": float64(m.Alloc) / (1024 * 1024),
		"sys_mb":   float64(m.Sys) / (1024 * 1024),
	}
}

// recordTableStats copies the bucket occupancy of t into metrics
func recordTableStats[K, V any](metrics *BenchmarkMetrics, t *chainmap.Table[K, V]) {
	s := t.Stats()
	metrics.Metrics["buckets"] = float64(s.Buckets)
	metrics.Metrics["empty_buckets"] = float64(s.EmptyBuckets)
	metrics.Metrics["longest_chain"] = float64(s.LongestChain)
	metrics.Metrics["resizes"] = float64(s.Resizes)
	if s.Buckets > 0 {
		metrics.Metrics["load_factor"] = float64(s.Items) / float64(s.Buckets)
	}
}

// gitInfo reads the current branch and short commit from the repository root
func gitInfo(repoRoot string) (commitID, branch string) {
	commitID, branch = "local", "dev"

	gitHead, err := os.ReadFile(filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return commitID, branch
	}
	headContent := strings.TrimSpace(string(gitHead))
	if !strings.HasPrefix(headContent, "ref: ") {
		// Detached HEAD holds the commit itself
		return shortCommit(headContent), branch
	}

	refPath := strings.TrimPrefix(headContent, "ref: ")
	branch = strings.TrimPrefix(refPath, "refs/heads/")
	if commitData, err := os.ReadFile(filepath.Join(repoRoot, ".git", refPath)); err == nil {
		commitID = shortCommit(strings.TrimSpace(string(commitData)))
	}
	return commitID, branch
}

func shortCommit(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// saveBenchmarkResult appends a benchmark result to benchmark_history/<resultsFile>
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// The benchmarks run from bench/, one level below the repository root
	repoRoot := filepath.Dir(currentDir)

	benchmarkDir := filepath.Join(repoRoot, "benchmark_history")
	if err := os.MkdirAll(benchmarkDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	commitID, branch := gitInfo(repoRoot)
	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		Results:   []BenchmarkMetrics{metrics},
	}

	// Merge with existing results if available
	latestFile := filepath.Join(benchmarkDir, resultsFile)
	if existingData, err := os.ReadFile(latestFile); err == nil {
		var existingSummary BenchmarkSummary
		if err := json.Unmarshal(existingData, &existingSummary); err == nil {
			summary.Results = append(existingSummary.Results, metrics)
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	if err := os.WriteFile(latestFile, jsonData, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	fmt.Printf("Benchmark results saved to: %s\n", latestFile)
	return nil
}
