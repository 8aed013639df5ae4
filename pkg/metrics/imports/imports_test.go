package imports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtriage/pyscope/pkg/metrics/imports"
	"github.com/devtriage/pyscope/pkg/models"
	"github.com/devtriage/pyscope/pkg/pyast"
)

func extract(t *testing.T, source string) []models.ImportRef {
	t.Helper()
	tree, err := pyast.Parse([]byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return imports.Extract(tree.Root, tree.Source)
}

func TestPlainImport(t *testing.T) {
	refs := extract(t, "import os\nimport foo.bar\n")
	assert.Equal(t, []models.ImportRef{"os", "foo.bar"}, refs)
}

func TestAliasedImport(t *testing.T) {
	refs := extract(t, "import numpy as np\n")
	assert.Equal(t, []models.ImportRef{"numpy"}, refs)
}

func TestFromImportAbsolute(t *testing.T) {
	refs := extract(t, "from pkg.mod import thing\n")
	assert.Equal(t, []models.ImportRef{"pkg.mod"}, refs)
}

func TestFromImportBareDot(t *testing.T) {
	refs := extract(t, "from . import x\n")
	assert.Equal(t, []models.ImportRef{"."}, refs)
}

func TestFromImportSingleDotRelative(t *testing.T) {
	refs := extract(t, "from .sibling import x\n")
	assert.Equal(t, []models.ImportRef{".sibling"}, refs)
}

func TestFromImportDoubleDotRelative(t *testing.T) {
	refs := extract(t, "from ..pkg.mod import x\n")
	assert.Equal(t, []models.ImportRef{"..pkg.mod"}, refs)
}
