package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexityColorThresholds(t *testing.T) {
	assert.NotNil(t, complexityColor(1))
	assert.NotNil(t, complexityColor(15))
	assert.NotNil(t, complexityColor(25))
}

func TestSmellColorThresholds(t *testing.T) {
	assert.NotNil(t, smellColor(0))
	assert.NotNil(t, smellColor(3))
}

func TestRunAnalyzeWritesReportFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("def f(x):\n    return x\n"), 0o644))

	outPath := filepath.Join(t.TempDir(), "report.json")

	analyzeVerbose = false
	analyzeOut = outPath
	analyzeNoSave = true
	t.Cleanup(func() {
		analyzeOut = ""
		analyzeNoSave = false
	})

	err := runAnalyze(analyzeCmd, []string{dir})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"files_analyzed"`)
}

func TestRunAnalyzeInvalidPath(t *testing.T) {
	analyzeVerbose = false
	analyzeOut = ""
	analyzeNoSave = true
	t.Cleanup(func() { analyzeNoSave = false })

	err := runAnalyze(analyzeCmd, []string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}
