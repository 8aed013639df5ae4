package pyast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	data, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(data))
}

func TestReadSourceMissing(t *testing.T) {
	_, err := ReadSource("/nonexistent/path/mod.py")
	assert.Error(t, err)
}

func TestParseValid(t *testing.T) {
	tree, err := Parse([]byte("def f(x):\n    return x + 1\n"))
	require.NoError(t, err)
	defer tree.Close()

	assert.Equal(t, "module", tree.Root.Type())
	assert.False(t, tree.Root.HasError())
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("def f(x:\n    return\n"))
	assert.Error(t, err)
}
