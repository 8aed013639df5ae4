package smells_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtriage/pyscope/pkg/metrics/smells"
	"github.com/devtriage/pyscope/pkg/models"
	"github.com/devtriage/pyscope/pkg/pyast"
)

func detect(t *testing.T, source string, opts smells.Options) []models.Smell {
	t.Helper()
	tree, err := pyast.Parse([]byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return smells.Detect(tree.Root, tree.Source, opts)
}

func TestLongParameterList(t *testing.T) {
	found := detect(t, "def g(a,b,c,d,e,f):\n    return a+b+c+d+e+f\n", smells.DefaultOptions())
	require.Len(t, found, 1)
	assert.Equal(t, models.SmellLongParameterList, found[0].Kind)
	assert.Contains(t, found[0].Message, "6 parameters")
}

func TestLongParameterListUsesConfiguredThreshold(t *testing.T) {
	found := detect(t, "def g(a,b,c):\n    return a\n", smells.Options{MaxParameters: 2, ReportMagicNumber: true})
	require.Len(t, found, 1)
	assert.Equal(t, models.SmellLongParameterList, found[0].Kind)
}

func TestMagicNumberRightHandOnly(t *testing.T) {
	found := detect(t, "def h(x):\n    if x == 2:\n        return 'A'\n    return 'B'\n", smells.DefaultOptions())
	require.Len(t, found, 1)
	assert.Equal(t, models.SmellMagicNumber, found[0].Kind)
	assert.Contains(t, found[0].Message, "2")
}

func TestMagicNumberLeftHandIgnored(t *testing.T) {
	found := detect(t, "def h(x):\n    if 2 == x:\n        return 'A'\n    return 'B'\n", smells.DefaultOptions())
	assert.Empty(t, found)
}

func TestMagicNumberDisabled(t *testing.T) {
	found := detect(t, "def h(x):\n    if x == 2:\n        return 1\n    return 0\n",
		smells.Options{MaxParameters: 5, ReportMagicNumber: false})
	assert.Empty(t, found)
}

func TestLongParameterListNestedFunction(t *testing.T) {
	source := "def outer(a, b, c):\n" +
		"    def inner(p, q, r, s, t, u):\n" +
		"        return p\n" +
		"    return inner\n"
	found := detect(t, source, smells.DefaultOptions())
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "inner")
	assert.Equal(t, 2, found[0].LineNumber)
}
