package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("default page", func(t *testing.T) {
		s, err := Get("")
		require.NoError(t, err)
		assert.Contains(t, s, "# darc")
	})

	t.Run("topic", func(t *testing.T) {
		s, err := Get("tree")
		require.NoError(t, err)
		assert.Contains(t, s, "render.indent")
	})

	t.Run("case and alias", func(t *testing.T) {
		want, err := Get("search")
		require.NoError(t, err)

		got, err := Get(" FIND ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Get("nope")
		assert.ErrorIs(t, err, ErrUnknownTopic)
		assert.Contains(t, err.Error(), `"nope"`)
		assert.Contains(t, err.Error(), "show")
	})
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "import")
	assert.NotContains(t, names, "guide")
	assert.IsNonDecreasing(t, names)
}

func TestAliasesResolve(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	for alias, page := range aliases {
		assert.Contains(t, names, page, "alias %q", alias)
	}
}
