package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtriage/pyscope/pkg/models"
)

func TestFileReportOmitsErrorWhenNil(t *testing.T) {
	fr := models.FileReport{Source: models.SourceFile{ProjectRelativePath: "a.py"}}

	data, err := json.Marshal(fr)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)
}

func TestFileReportIncludesErrorWhenSet(t *testing.T) {
	msg := "read source: permission denied"
	fr := models.FileReport{Source: models.SourceFile{ProjectRelativePath: "a.py"}, Error: &msg}

	data, err := json.Marshal(fr)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":"read source: permission denied"`)
}

func TestProjectReportRoundTrip(t *testing.T) {
	original := models.ProjectReport{
		FilesAnalyzed:  2,
		TotalLOC:       10,
		TotalFunctions: 2,
		Files: []models.FileReport{
			{Source: models.SourceFile{ProjectRelativePath: "a.py"}},
			{Source: models.SourceFile{ProjectRelativePath: "b.py"}},
		},
		Graph: models.DependencyGraph{
			Nodes: []models.GraphNode{{ProjectRelativePath: "a.py"}, {ProjectRelativePath: "b.py"}},
			Edges: []models.GraphEdge{{Source: "a.py", Target: "b.py"}},
		},
		ExternalDependencies: []string{"flask"},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded models.ProjectReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
