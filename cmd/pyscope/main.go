// Command pyscope analyzes a directory of Python source files and
// reports per-file metrics plus an inter-file import dependency graph.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pyscope",
	Short: "Static analysis for Python projects",
	Long: `pyscope walks a Python source tree and reports, per file:
  - lines of code
  - cyclomatic and cognitive complexity per function
  - Halstead software-science metrics
  - code smells (long parameter lists, magic numbers)
  - an inter-file import dependency graph`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
