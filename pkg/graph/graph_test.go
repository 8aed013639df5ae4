package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devtriage/pyscope/pkg/graph"
	"github.com/devtriage/pyscope/pkg/models"
)

func file(relPath, moduleName string, imports ...models.ImportRef) models.FileReport {
	return models.FileReport{
		Source:  models.SourceFile{ProjectRelativePath: relPath, ModuleName: moduleName},
		Imports: imports,
	}
}

func TestResolveRelativeSingleDot(t *testing.T) {
	// a.py contains `from .b import x`; b.py is a sibling module.
	files := []models.FileReport{
		file("a.py", "a", ".b"),
		file("b.py", "b"),
	}

	g := graph.Resolve(files)

	assert.Len(t, g.Nodes, 2)
	assert.Equal(t, []models.GraphEdge{{Source: "a.py", Target: "b.py"}}, g.Edges)
}

func TestResolveAbsoluteExactMatch(t *testing.T) {
	// a third file imports pkg.mod, matching pkg/mod.py exactly.
	files := []models.FileReport{
		file("pkg/__init__.py", "pkg"),
		file("pkg/mod.py", "pkg.mod"),
		file("main.py", "main", "pkg.mod"),
	}

	g := graph.Resolve(files)

	assert.Contains(t, g.Edges, models.GraphEdge{Source: "main.py", Target: "pkg/mod.py"})
}

func TestResolveBareDotToInit(t *testing.T) {
	files := []models.FileReport{
		file("pkg/__init__.py", "pkg"),
		file("pkg/a.py", "pkg.a", "."),
	}

	g := graph.Resolve(files)
	assert.Contains(t, g.Edges, models.GraphEdge{Source: "pkg/a.py", Target: "pkg/__init__.py"})
}

func TestResolveNoSelfLoop(t *testing.T) {
	files := []models.FileReport{
		file("a.py", "a", "a"),
	}

	g := graph.Resolve(files)
	assert.Empty(t, g.Edges)
}

func TestResolveDeduplicatesEdges(t *testing.T) {
	files := []models.FileReport{
		file("a.py", "a", "b", "b"),
		file("b.py", "b"),
	}

	g := graph.Resolve(files)
	assert.Len(t, g.Edges, 1)
}

func TestResolveErroredFileStillAppearsAsNode(t *testing.T) {
	msg := "syntax error"
	files := []models.FileReport{
		{Source: models.SourceFile{ProjectRelativePath: "broken.py"}, Error: &msg},
		file("a.py", "a"),
	}

	g := graph.Resolve(files)
	assert.Len(t, g.Nodes, 2)
	assert.Empty(t, g.Edges)
}

func TestResolveUnresolvableImportProducesNoEdge(t *testing.T) {
	files := []models.FileReport{
		file("a.py", "a", "totally.unrelated.module"),
	}

	g := graph.Resolve(files)
	assert.Empty(t, g.Edges)
}
