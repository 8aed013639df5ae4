package history_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtriage/pyscope/pkg/history"
	"github.com/devtriage/pyscope/pkg/models"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyscope.db")
	store, err := history.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndList(t *testing.T) {
	store := openTestStore(t)

	r := &models.ProjectReport{FilesAnalyzed: 2, TotalLOC: 42, TotalFunctions: 3, AvgCyclomatic: 1.5}
	id, err := store.Save("/proj", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), r)
	require.NoError(t, err)
	assert.NotZero(t, id)

	snapshots, err := store.List("/proj", 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 2, snapshots[0].FilesAnalyzed)
	assert.Equal(t, 42, snapshots[0].TotalLOC)
	assert.InDelta(t, 1.5, snapshots[0].AvgCyclomatic, 0.001)
}

func TestListEmptyForUnknownProject(t *testing.T) {
	store := openTestStore(t)

	snapshots, err := store.List("/nowhere", 10)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestShowReturnsFullReport(t *testing.T) {
	store := openTestStore(t)

	r := &models.ProjectReport{
		FilesAnalyzed: 1,
		Files:         []models.FileReport{{Source: models.SourceFile{ProjectRelativePath: "a.py"}}},
	}
	id, err := store.Save("/proj", time.Now(), r)
	require.NoError(t, err)

	stored, err := store.Show(id)
	require.NoError(t, err)
	assert.Equal(t, r, stored)
}

func TestListOrdersMostRecentFirst(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Save("/proj", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), &models.ProjectReport{TotalLOC: 1})
	require.NoError(t, err)
	_, err = store.Save("/proj", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), &models.ProjectReport{TotalLOC: 2})
	require.NoError(t, err)

	snapshots, err := store.List("/proj", 10)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, 2, snapshots[0].TotalLOC)
	assert.Equal(t, 1, snapshots[1].TotalLOC)
}
