// Package graph resolves extracted import references to concrete
// project files and builds the final inter-file dependency graph. It
// runs as a second pass, after every file has been analysed.
package graph

import (
	"path"
	"strings"

	"github.com/devtriage/pyscope/pkg/models"
)

// analysedFile is the minimal per-file view the resolver needs.
type analysedFile struct {
	relativePath string
	moduleName   string
	imports      []models.ImportRef
}

// Resolve builds the dependency graph from every non-errored file's
// module name and import references, per the two-pass module-table
// lookup described in the import resolver design.
func Resolve(files []models.FileReport) models.DependencyGraph {
	var analysed []analysedFile
	nodes := make([]models.GraphNode, 0, len(files))

	moduleToPath := make(map[string]string)
	pathToModule := make(map[string]string)

	for _, f := range files {
		nodes = append(nodes, models.GraphNode{ProjectRelativePath: f.Source.ProjectRelativePath})
		if f.Error != nil {
			continue
		}
		moduleToPath[f.Source.ModuleName] = f.Source.ProjectRelativePath
		pathToModule[f.Source.ProjectRelativePath] = f.Source.ModuleName
		analysed = append(analysed, analysedFile{
			relativePath: f.Source.ProjectRelativePath,
			moduleName:   f.Source.ModuleName,
			imports:      f.Imports,
		})
	}

	seen := make(map[models.GraphEdge]bool)
	var edges []models.GraphEdge

	for _, f := range analysed {
		dirModule := packageDir(f.moduleName)
		if path.Base(f.relativePath) == "__init__.py" {
			// A package's __init__ module name already names its directory.
			dirModule = f.moduleName
		}
		for _, ref := range f.imports {
			target, ok := resolve(ref, f.relativePath, dirModule, moduleToPath)
			if !ok || target == f.relativePath {
				continue
			}
			edge := models.GraphEdge{Source: f.relativePath, Target: target}
			if seen[edge] {
				continue
			}
			seen[edge] = true
			edges = append(edges, edge)
		}
	}

	return models.DependencyGraph{Nodes: nodes, Edges: edges}
}

// packageDir is the module name of the directory containing a file's
// module (its "package"), i.e. the module name with its last dotted
// segment removed.
func packageDir(moduleName string) string {
	idx := strings.LastIndex(moduleName, ".")
	if idx < 0 {
		return ""
	}
	return moduleName[:idx]
}

func resolve(ref models.ImportRef, fromPath, dirModule string, moduleToPath map[string]string) (string, bool) {
	text := string(ref)

	switch {
	case text == ".":
		// dirModule already equals the containing package's own module
		// name, since a package's __init__ file has its trailing
		// "__init__" segment elided from its module name; fall back to
		// the unelided spelling for robustness.
		if p, ok := moduleToPath[dirModule]; ok {
			return p, true
		}
		candidate := joinModule(dirModule, "__init__")
		if p, ok := moduleToPath[candidate]; ok {
			return p, true
		}
		return "", false

	case strings.HasPrefix(text, "."):
		level := 0
		for level < len(text) && text[level] == '.' {
			level++
		}
		tail := text[level:]

		ancestor := dirModule
		for i := 0; i < level-1; i++ {
			ancestor = packageDir(ancestor)
		}

		candidate := ancestor
		if tail != "" {
			candidate = joinModule(ancestor, tail)
		}
		if p, ok := moduleToPath[candidate]; ok {
			return p, true
		}
		initCandidate := joinModule(candidate, "__init__")
		if p, ok := moduleToPath[initCandidate]; ok {
			return p, true
		}
		return "", false

	default:
		if p, ok := moduleToPath[text]; ok {
			return p, true
		}
		return prefixMatch(text, moduleToPath)
	}
}

// prefixMatch implements the permissive absolute-import fallback: accept
// the first known module where the import text is a prefix of the
// module, or the module is a prefix of the import text. Preferring the
// longest matching prefix, then lexicographic order, keeps the choice
// deterministic within a run without claiming more precision than the
// heuristic actually has.
func prefixMatch(text string, moduleToPath map[string]string) (string, bool) {
	bestModule := ""
	bestPath := ""
	bestLen := -1
	found := false

	for module, p := range moduleToPath {
		if !strings.HasPrefix(text, module) && !strings.HasPrefix(module, text) {
			continue
		}
		matchLen := len(module)
		if len(text) < matchLen {
			matchLen = len(text)
		}
		if !found || matchLen > bestLen || (matchLen == bestLen && module < bestModule) {
			found = true
			bestLen = matchLen
			bestModule = module
			bestPath = p
		}
	}

	if !found {
		return "", false
	}
	return bestPath, true
}

func joinModule(dir, tail string) string {
	if dir == "" {
		return tail
	}
	if tail == "" {
		return dir
	}
	return dir + "." + tail
}
