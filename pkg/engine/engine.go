// Package engine orchestrates the per-file analysers and the project
// walker into the engine's single entry point, AnalyzeProject.
package engine

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devtriage/pyscope/internal/config"
	"github.com/devtriage/pyscope/internal/deps"
	"github.com/devtriage/pyscope/pkg/graph"
	"github.com/devtriage/pyscope/pkg/metrics/cognitive"
	"github.com/devtriage/pyscope/pkg/metrics/cyclomatic"
	"github.com/devtriage/pyscope/pkg/metrics/halstead"
	"github.com/devtriage/pyscope/pkg/metrics/imports"
	"github.com/devtriage/pyscope/pkg/metrics/raw"
	"github.com/devtriage/pyscope/pkg/metrics/smells"
	"github.com/devtriage/pyscope/pkg/models"
	"github.com/devtriage/pyscope/pkg/pyast"
	sitter "github.com/smacker/go-tree-sitter"
)

// Engine-fatal errors, per the external-interfaces error tier.
var (
	ErrPathNotFound  = errors.New("path not found")
	ErrNotADirectory = errors.New("not a directory")
)

const targetExtension = ".py"

var prunedDirNames = map[string]bool{
	"__pycache__": true,
	"node_modules": true,
	"venv":        true,
	"env":         true,
}

// ProgressFunc is called once per discovered file, before it is
// analysed, so a caller (typically the CLI) can report progress.
type ProgressFunc func(relativePath string, index, total int)

// Options configures one AnalyzeProject invocation.
type Options struct {
	Config           *config.Config
	ProgressCallback ProgressFunc
}

// AnalyzeProject is the engine's entry point: given a project root
// directory, it walks every Python source file, analyses each in turn,
// and returns the aggregated report.
func AnalyzeProject(root string, opts Options) (*models.ProjectReport, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotFound
		}
		return nil, fmt.Errorf("stat project root: %w", err)
	}
	if !info.IsDir() {
		return nil, ErrNotADirectory
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	paths, err := discoverFiles(root, cfg)
	if err != nil {
		return nil, fmt.Errorf("discover source files: %w", err)
	}

	smellOpts := smells.Options{
		MaxParameters:     cfg.Smells.MaxParameters,
		ReportMagicNumber: cfg.Smells.ReportMagicNumber,
	}

	files := make([]models.FileReport, 0, len(paths))
	for i, relPath := range paths {
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(relPath, i+1, len(paths))
		}
		files = append(files, analyzeFile(root, relPath, smellOpts))
	}

	report := aggregate(files)
	report.Graph = graph.Resolve(files)
	report.ExternalDependencies = deps.ParseManifest(root)

	return &report, nil
}

// discoverFiles recursively enumerates every *.py file under root,
// applying the directory-pruning policy plus any configured exclude
// patterns. The walk uses filepath.Walk and the collected paths are
// sorted, so the order is deterministic within one invocation.
func discoverFiles(root string, cfg *config.Config) ([]string, error) {
	var found []string

	err := filepath.Walk(root, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}

		if info.IsDir() {
			name := info.Name()
			if p != root && shouldPruneDir(name) {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(p) != targetExtension {
			return nil
		}
		if cfg.ShouldIgnore(rel) {
			return nil
		}

		found = append(found, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

func shouldPruneDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return prunedDirNames[name]
}

// analyzeFile runs C1-C8 on one file in the order the File Analyser
// prescribes, degrading gracefully at each failure tier.
func analyzeFile(root, relPath string, smellOpts smells.Options) models.FileReport {
	source := models.SourceFile{
		AbsolutePath:        filepath.Join(root, relPath),
		ProjectRelativePath: relPath,
		ModuleName:          moduleName(relPath),
	}

	sourceBytes, err := pyast.ReadSource(source.AbsolutePath)
	if err != nil {
		msg := err.Error()
		return models.FileReport{Source: source, Error: &msg}
	}
	sourceText := string(sourceBytes)

	loc := raw.CountLOC(sourceText)

	tree, err := pyast.Parse(sourceBytes)
	if err != nil {
		return models.FileReport{
			Source: source,
			LOC:    loc,
			Smells: []models.Smell{{Kind: models.SmellSyntaxError, Message: err.Error(), LineNumber: 1}},
		}
	}
	defer tree.Close()

	halsteadReport := halstead.Calculate(tree.Root, tree.Source)
	functionReports := analyzeFunctions(tree.Root, tree.Source)
	smellReports := smells.Detect(tree.Root, tree.Source, smellOpts)
	importRefs := imports.Extract(tree.Root, tree.Source)

	return models.FileReport{
		Source:    source,
		LOC:       loc,
		Functions: functionReports,
		Smells:    smellReports,
		Halstead:  halsteadReport,
		Imports:   importRefs,
	}
}

func analyzeFunctions(root *sitter.Node, source []byte) []models.FunctionReport {
	defs := cyclomatic.FindDefinitions(root, source)
	reports := make([]models.FunctionReport, 0, len(defs))
	for _, def := range defs {
		reports = append(reports, models.FunctionReport{
			Name:       def.Name,
			LineNumber: def.Line,
			Cyclomatic: cyclomatic.Calculate(def.Node),
			Cognitive:  cognitive.Calculate(def.Node),
		})
	}
	return reports
}

// moduleName derives a dotted module name from a project-relative path,
// stripping the extension and eliding a trailing package-init segment.
func moduleName(relPath string) string {
	slashed := filepath.ToSlash(relPath)
	trimmed := strings.TrimSuffix(slashed, targetExtension)
	segments := strings.Split(trimmed, "/")
	if len(segments) > 0 && segments[len(segments)-1] == "__init__" {
		segments = segments[:len(segments)-1]
	}
	return strings.Join(segments, ".")
}

// aggregate computes the totals, averages, and file listing for the
// final report. Graph and external dependencies are filled in by the
// caller once this has run.
func aggregate(files []models.FileReport) models.ProjectReport {
	report := models.ProjectReport{Files: files}

	for _, f := range files {
		if f.Error != nil {
			continue
		}
		report.FilesAnalyzed++
		report.TotalLOC += f.LOC
		report.TotalFunctions += len(f.Functions)
		report.TotalSmells += len(f.Smells)

		for _, fn := range f.Functions {
			report.TotalCyclomatic += fn.Cyclomatic
			report.TotalCognitive += fn.Cognitive
		}

		report.TotalHalsteadVolume += f.Halstead.Volume
		report.TotalHalsteadDifficulty += f.Halstead.Difficulty
		report.TotalHalsteadEffort += f.Halstead.Effort
	}

	report.AvgCyclomatic = average(float64(report.TotalCyclomatic), report.TotalFunctions)
	report.AvgCognitive = average(float64(report.TotalCognitive), report.TotalFunctions)

	report.AvgHalsteadVolume = average(report.TotalHalsteadVolume, report.FilesAnalyzed)
	report.AvgHalsteadDifficulty = average(report.TotalHalsteadDifficulty, report.FilesAnalyzed)
	report.AvgHalsteadEffort = average(report.TotalHalsteadEffort, report.FilesAnalyzed)

	// Sums of rounded per-file values can carry float noise; keep the
	// totals at two decimals like the other float fields.
	report.TotalHalsteadVolume = math.Round(report.TotalHalsteadVolume*100) / 100
	report.TotalHalsteadDifficulty = math.Round(report.TotalHalsteadDifficulty*100) / 100
	report.TotalHalsteadEffort = math.Round(report.TotalHalsteadEffort*100) / 100

	return report
}

func average(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(total/float64(count)*100) / 100
}
