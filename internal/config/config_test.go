package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/config"
)

func TestDefaults(t *testing.T) {
	c := &config.Config{}
	assert.False(t, c.CaseSensitive())
	assert.Equal(t, "\t", c.Indent())
	assert.Equal(t, config.DefaultMaxName, c.MaxName())
	assert.Equal(t, config.DefaultMaxSlug, c.MaxSlug())
	assert.Equal(t, config.DefaultMaxLog, c.MaxLog())
	assert.Empty(t, c.UserName())
	assert.False(t, c.IsSet("render.indent"))
}

func TestSetGet(t *testing.T) {
	c := &config.Config{}

	require.NoError(t, c.Set("user.name", " alice "))
	require.NoError(t, c.Set("search.case_sensitive", "TRUE"))
	require.NoError(t, c.Set("render.indent", `\t\t`))
	require.NoError(t, c.Set("limits.max_slug", "64"))

	assert.Equal(t, "alice", c.UserName())
	assert.True(t, c.CaseSensitive())
	assert.Equal(t, "\t\t", c.Indent())
	assert.Equal(t, 64, c.MaxSlug())

	v, err := c.Get("render.indent")
	require.NoError(t, err)
	assert.Equal(t, `\t\t`, v)

	all := c.All()
	assert.Equal(t, "alice", all["user.name"])
	assert.Equal(t, "64", all["limits.max_slug"])
	assert.Len(t, all, len(config.ValidKeys()))
}

func TestSetRejects(t *testing.T) {
	c := &config.Config{}

	assert.ErrorIs(t, c.Set("nope", "x"), config.ErrUnknownKey)
	assert.ErrorIs(t, c.Set("search.case_sensitive", "maybe"), config.ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_name", "-1"), config.ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_slug", "5000"), config.ErrInvalidValue)
	assert.ErrorIs(t, c.Set("render.indent", "a\nb"), config.ErrInvalidValue)

	_, err := c.Get("nope")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestLoadLocalOverridesGlobal(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Chdir(tmp)

	global := &config.Config{}
	require.NoError(t, global.Set("user.name", "global-user"))
	require.NoError(t, global.SaveScope(config.ScopeGlobal))

	c, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "global-user", c.UserName())
	assert.Equal(t, config.ScopeGlobal, c.Scope())

	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "proj", ".darc"), 0755))
	t.Chdir(filepath.Join(tmp, "proj"))

	local := &config.Config{}
	require.NoError(t, local.Set("user.name", "local-user"))
	require.NoError(t, local.SaveScope(config.ScopeLocal))

	c, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, "local-user", c.UserName())
	assert.Equal(t, config.ScopeLocal, c.Scope())
}

func TestLoadMalformed(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Chdir(tmp)
	require.NoError(t, os.MkdirAll(".darc", 0755))
	require.NoError(t, os.WriteFile(config.LocalPath(), []byte("limits: [oops"), 0644))

	_, err := config.Load()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(config.LocalPath(), []byte("limits:\n  max_name: 0\n"), 0644))
	_, err = config.Load()
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}
