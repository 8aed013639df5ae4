// Package models defines the data shapes produced by a single analysis run.
package models

// SourceFile identifies one analysed file within the project tree.
type SourceFile struct {
	AbsolutePath        string `json:"absolute_path"`
	ProjectRelativePath string `json:"project_relative_path"`
	ModuleName          string `json:"module_name"`
}

// FunctionReport holds the complexity metrics for a single function,
// async function, or method definition.
type FunctionReport struct {
	Name       string `json:"name"`
	LineNumber int    `json:"line_number"`
	Cyclomatic int    `json:"cyclomatic"`
	Cognitive  int    `json:"cognitive"`
}

// HalsteadReport holds the software-science metrics for one file.
type HalsteadReport struct {
	H1         int     `json:"h1"`
	H2         int     `json:"h2"`
	N1         int     `json:"n1"`
	N2         int     `json:"n2"`
	Vocabulary int     `json:"vocabulary"`
	Length     int     `json:"length"`
	Volume     float64 `json:"volume"`
	Difficulty float64 `json:"difficulty"`
	Effort     float64 `json:"effort"`
	Time       float64 `json:"time"`
	Bugs       float64 `json:"bugs"`
}

// SmellKind enumerates the syntactic anti-patterns the detector flags.
type SmellKind string

const (
	SmellLongParameterList SmellKind = "LongParameterList"
	SmellMagicNumber       SmellKind = "MagicNumber"
	SmellSyntaxError       SmellKind = "SyntaxError"
)

// Smell is a single finding from the code-smell detector.
type Smell struct {
	Kind       SmellKind `json:"kind"`
	Message    string    `json:"message"`
	LineNumber int       `json:"line_number"`
}

// ImportRef is the lexical text of one import reference, exactly as it
// appears in source: "foo.bar", ".sibling", "..pkg.mod", or a bare ".".
type ImportRef string

// FileReport is the per-file result produced by the File Analyser.
type FileReport struct {
	Source   SourceFile       `json:"source"`
	LOC      int              `json:"loc"`
	Functions []FunctionReport `json:"functions"`
	Smells   []Smell          `json:"smells"`
	Halstead HalsteadReport   `json:"halstead"`
	Imports  []ImportRef      `json:"imports"`
	Error    *string          `json:"error,omitempty"`
}

// GraphNode is one analysed file in the dependency graph.
type GraphNode struct {
	ProjectRelativePath string `json:"project_relative_path"`
}

// GraphEdge is a directed, deduplicated import dependency between two
// files, identified by their project-relative paths.
type GraphEdge struct {
	Source string `json:"source_relative_path"`
	Target string `json:"target_relative_path"`
}

// DependencyGraph is the import graph resolved across the whole project.
type DependencyGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ProjectReport is the final, top-level artifact of one analysis run.
type ProjectReport struct {
	FilesAnalyzed int `json:"files_analyzed"`

	TotalLOC       int `json:"total_loc"`
	TotalFunctions int `json:"total_functions"`
	TotalSmells    int `json:"total_smells"`
	TotalCyclomatic int `json:"total_cyclomatic"`
	TotalCognitive  int `json:"total_cognitive"`

	AvgCyclomatic float64 `json:"avg_cyclomatic"`
	AvgCognitive  float64 `json:"avg_cognitive"`

	TotalHalsteadVolume     float64 `json:"total_halstead_volume"`
	TotalHalsteadDifficulty float64 `json:"total_halstead_difficulty"`
	TotalHalsteadEffort     float64 `json:"total_halstead_effort"`

	AvgHalsteadVolume     float64 `json:"avg_halstead_volume"`
	AvgHalsteadDifficulty float64 `json:"avg_halstead_difficulty"`
	AvgHalsteadEffort     float64 `json:"avg_halstead_effort"`

	ExternalDependencies []string `json:"external_dependencies"`

	Files []FileReport    `json:"files"`
	Graph DependencyGraph `json:"graph"`
}
