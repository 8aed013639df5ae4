package report_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtriage/pyscope/pkg/models"
	"github.com/devtriage/pyscope/pkg/report"
)

func sampleReport() *models.ProjectReport {
	return &models.ProjectReport{
		FilesAnalyzed: 1,
		TotalLOC:      3,
		Files: []models.FileReport{
			{Source: models.SourceFile{ProjectRelativePath: "a.py"}},
		},
		Graph: models.DependencyGraph{
			Nodes: []models.GraphNode{{ProjectRelativePath: "a.py"}},
		},
	}
}

func TestMarshalIsIndentedJSON(t *testing.T) {
	data, err := report.Marshal(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"files_analyzed\"")
}

func TestMarshalCompactRoundTripsThroughUnmarshal(t *testing.T) {
	original := sampleReport()
	data, err := report.MarshalCompact(original)
	require.NoError(t, err)

	decoded, err := report.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestMarshalFieldOrderMatchesStructOrder(t *testing.T) {
	data, err := report.Marshal(sampleReport())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	idxFiles := indexOf(string(data), `"files_analyzed"`)
	idxTotalLOC := indexOf(string(data), `"total_loc"`)
	idxFilesArray := indexOf(string(data), `"files"`)
	assert.True(t, idxFiles < idxTotalLOC)
	assert.True(t, idxTotalLOC < idxFilesArray)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
