// Package main provides a performance benchmarking tool for the insights CLI.
// It measures execution times across JavaScript repositories of different sizes
// for every tool, running each one multiple times with run history disabled and
// then recorded to SQLite, and writes CSV output for performance analysis.
//
// Prerequisites:
// - insights binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Repositories: left-pad, express, lodash, three.js
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the averages of one tool on one repository.
type BenchmarkResult struct {
	Repository  string
	Command     string
	NoHistory   string
	WithHistory string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Workers   int
	Runs      int
	TestRepos []string
	Commands  [][]string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:  os.Args[1],
		Timeout:   5 * time.Minute,
		Workers:   8,
		Runs:      3,
		TestRepos: []string{"left-pad", "express", "lodash", "three.js"},
		Commands: [][]string{
			{"js-complex"},
			{"js-complex", "--matrix"},
			{"loc", "--js-only"},
			{"dup-names", "--js-only"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	historyDB := filepath.Join(os.TempDir(), "insights_benchmark_history.db")
	defer func() { _ = os.Remove(historyDB) }()

	results := runBenchmarks(config, historyDB)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the insights binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("insights"); err != nil {
		return fmt.Errorf("insights binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runBenchmarks executes every command across the configured repositories
func runBenchmarks(config BenchmarkConfig, historyDB string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d workers, %d runs\n",
		len(config.TestRepos), config.Timeout, config.Workers, config.Runs)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)
		repoPath := filepath.Join(config.RepoBase, repo)

		for _, command := range config.Commands {
			noHistory := average(runBenchmark(config, repoPath, command, "none", ""))
			withHistory := average(runBenchmark(config, repoPath, command, "sqlite", historyDB))
			fmt.Printf("  %v: no history %s, sqlite history %s\n", command, noHistory, withHistory)

			results = append(results, BenchmarkResult{
				Repository:  repo,
				Command:     fmt.Sprint(command),
				NoHistory:   noHistory,
				WithHistory: withHistory,
			})
		}
	}

	return results
}

// runBenchmark executes one insights command several times and returns the
// durations of the runs that succeeded before the timeout
func runBenchmark(config BenchmarkConfig, repoPath string, command []string, backend, connStr string) []float64 {
	args := append([]string{}, command...)
	args = append(args,
		"--workers", fmt.Sprint(config.Workers),
		"--color", "no",
		"--analysis-backend", backend,
		"--analysis-db-connect", connStr,
	)

	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		cmd := exec.CommandContext(ctx, "insights", args...)
		cmd.Dir = repoPath

		start := time.Now()
		err := cmd.Run()
		if err == nil {
			times = append(times, time.Since(start).Seconds())
		}
		cancel()
	}
	return times
}

func average(times []float64) string {
	if len(times) == 0 {
		return "FAILED"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("insights_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"repo", "cmd", "no_history_avg", "sqlite_history_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.NoHistory, result.WithHistory}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by repository
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-10s %-30s no history: %-10s sqlite: %s\n", result.Repository, result.Command, result.NoHistory, result.WithHistory)
	}
}
