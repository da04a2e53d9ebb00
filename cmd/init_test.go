package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("basic init", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("init")
		env.contains(out, "Initialised darc catalog in .darc/darc.db")
		env.contains(out, "Tables: collection_related, collections, data_files, document_collections, document_metadata, document_related, document_terms, documents, terms")

		assert.FileExists(t, filepath.Join(env.dir, ".darc", "darc.db"))
		// init does not write config; that is "darc config"'s job
		assert.NoFileExists(t, filepath.Join(env.dir, ".darc", "config.yaml"))
	})

	t.Run("already initialised", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.runErr("init")
		assert.Error(t, err)
		assert.Contains(t, out, "already exists")
	})

	t.Run("force reinitialises", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed()
		env.contains(env.run("init", "--force"), "Reinitialised darc catalog")

		out := env.run("ls", "documents")
		assert.Empty(t, strings.TrimSpace(out))
	})

	t.Run("local database is gitignored", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init", "--db", "drafts", "--local")

		data, err := os.ReadFile(filepath.Join(env.dir, ".darc", ".gitignore"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "darc-drafts.db")
	})

	t.Run("json report", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("init", "--db", "drafts", "--local", "-o", "json")
		var created struct {
			Path   string   `json:"path"`
			Tables []string `json:"tables"`
			Local  bool     `json:"local"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &created))
		assert.Equal(t, filepath.Join(".darc", "darc-drafts.db"), created.Path)
		assert.Contains(t, created.Tables, "data_files")
		assert.True(t, created.Local)
	})

	t.Run("local with dir", func(t *testing.T) {
		env := newBareEnv(t)
		_, err := env.runErr("init", "--local", "--dir", t.TempDir())
		assert.Error(t, err)
	})

	t.Run("commands before init", func(t *testing.T) {
		env := newBareEnv(t)
		out, err := env.runErr("tree", "collection")
		assert.Error(t, err)
		assert.Contains(t, out, "darc not initialised")
	})
}
