package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/devtriage/pyscope/internal/config"
	"github.com/devtriage/pyscope/pkg/engine"
	"github.com/devtriage/pyscope/pkg/history"
	"github.com/devtriage/pyscope/pkg/models"
	"github.com/devtriage/pyscope/pkg/report"
)

var (
	analyzeVerbose bool
	analyzeOut     string
	analyzeNoSave  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Analyze a Python project and report its metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "emit per-file progress to stderr")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "write the JSON report to this file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-history", false, "skip recording this run in the history database")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := args[0]

	if analyzeVerbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", root)
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	opts := engine.Options{Config: cfg}
	if analyzeVerbose {
		opts.ProgressCallback = func(relPath string, index, total int) {
			fmt.Fprintf(os.Stderr, "\r[%d/%d] %s", index, total, relPath)
		}
	}

	result, err := engine.AnalyzeProject(root, opts)
	if err != nil {
		if errors.Is(err, engine.ErrPathNotFound) || errors.Is(err, engine.ErrNotADirectory) {
			return fmt.Errorf("%s: %w", root, err)
		}
		return err
	}
	if analyzeVerbose {
		fmt.Fprintln(os.Stderr)
	}

	data, err := report.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if analyzeOut != "" {
		if err := os.WriteFile(analyzeOut, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if analyzeVerbose {
			fmt.Fprintf(os.Stderr, "report written to %s\n", analyzeOut)
		}
	} else {
		fmt.Println(string(data))
	}

	printSummary(result)

	if !analyzeNoSave {
		saveHistory(root, result)
	}

	return nil
}

// printSummary prints a short, color-coded overview to stderr so piping
// stdout to a file still leaves a human-readable summary on the
// terminal.
func printSummary(r *models.ProjectReport) {
	fmt.Fprintf(os.Stderr, "\nfiles analyzed: %d   LOC: %d   functions: %d\n",
		r.FilesAnalyzed, r.TotalLOC, r.TotalFunctions)

	complexityColor(r.AvgCyclomatic).Fprintf(os.Stderr, "avg cyclomatic: %.2f\n", r.AvgCyclomatic)
	complexityColor(r.AvgCognitive).Fprintf(os.Stderr, "avg cognitive:  %.2f\n", r.AvgCognitive)

	smellColor(r.TotalSmells).Fprintf(os.Stderr, "smells found:   %d\n", r.TotalSmells)
}

// complexityColor mirrors the severity-by-threshold coloring idiom:
// green below a warning threshold, yellow up to a critical threshold,
// red above it.
func complexityColor(value float64) *color.Color {
	switch {
	case value >= 20:
		return color.New(color.FgRed)
	case value >= 10:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func smellColor(count int) *color.Color {
	if count == 0 {
		return color.New(color.FgGreen)
	}
	return color.New(color.FgYellow)
}

func saveHistory(root string, result *models.ProjectReport) {
	dbPath, err := history.DefaultDBPath(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not set up history database: %v\n", err)
		return
	}

	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history database: %v\n", err)
		return
	}
	defer func() { _ = store.Close() }()

	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	if _, err := store.Save(absRoot, time.Now(), result); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save history snapshot: %v\n", err)
	}
}
