package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/devtriage/pyscope/pkg/history"
	"github.com/devtriage/pyscope/pkg/report"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past pyscope analysis runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list <path>",
	Short: "List past analysis runs for a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <path> <id>",
	Short: "Print the full stored report for one past run",
	Args:  cobra.ExactArgs(2),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")
	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	root := args[0]

	store, absRoot, err := openHistory(root)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshots, err := store.List(absRoot, historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(snapshots) == 0 {
		fmt.Println("no recorded runs for this project")
		return nil
	}

	for _, snap := range snapshots {
		fmt.Printf("%d\t%s\tfiles=%d\tloc=%d\tfunctions=%d\tsmells=%d\tavg_cyclomatic=%.2f\n",
			snap.ID, snap.RanAt.Format("2006-01-02 15:04:05"),
			snap.FilesAnalyzed, snap.TotalLOC, snap.TotalFunctions,
			snap.TotalSmells, snap.AvgCyclomatic)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	root, idArg := args[0], args[1]

	var id int64
	if _, err := fmt.Sscanf(idArg, "%d", &id); err != nil {
		return fmt.Errorf("invalid snapshot id %q: %w", idArg, err)
	}

	store, _, err := openHistory(root)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stored, err := store.Show(id)
	if err != nil {
		return fmt.Errorf("show history: %w", err)
	}

	data, err := report.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal stored report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func openHistory(root string) (*history.Store, string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	dbPath, err := history.DefaultDBPath(root)
	if err != nil {
		return nil, "", fmt.Errorf("resolve history database: %w", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, "", fmt.Errorf("no history database found under %s", root)
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open history database: %w", err)
	}
	return store, absRoot, nil
}
