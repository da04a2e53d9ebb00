package ingest_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/ingest"
	"github.com/jpl-au/darc/internal/service"
	"github.com/jpl-au/darc/internal/store"
)

func setupService(t *testing.T) service.Service {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	require.NoError(t, catalog.Init(true, "", false, ""))
	svc, err := catalog.New("")
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

// writePDF creates a small file with a PDF signature and a fixed mtime.
func writePDF(t *testing.T, name string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestDescribePath(t *testing.T) {
	mod := time.Unix(1700000000, 123456789)
	path := writePDF(t, "scan.bin", mod)

	f, err := ingest.DescribePath(path)
	require.NoError(t, err)
	assert.Equal(t, "scan.bin", f.FileName)
	assert.Equal(t, "application/pdf", f.MimeType, "type comes from content, not extension")
	assert.Equal(t, int64(1700000000), f.FileModifiedAt)
	assert.Equal(t, 123456789, f.FileModifiedNano)
	assert.Positive(t, f.Size)
}

func TestDescribePath_Directory(t *testing.T) {
	_, err := ingest.DescribePath(t.TempDir())
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	svc := setupService(t)
	ctx := catalog.WithUser(context.Background(), "tester")

	c := &store.Node{Kind: store.KindCollection, Name: "Deeds"}
	require.NoError(t, svc.AddNode(ctx, c))
	d := &store.Document{Title: "Title Deed"}
	require.NoError(t, svc.AddDocument(ctx, d, []int64{c.ID}, nil))

	path := writePDF(t, "deed.pdf", time.Unix(1600000000, 5))
	doc := store.ParseKey("title-deed")

	var buf bytes.Buffer
	r, err := ingest.Run(ctx, &buf, svc, path, ingest.Options{
		Document:  &doc,
		Format:    store.FormatScanned,
		SourceURL: "https://example.org/deed",
	})
	require.NoError(t, err)
	require.NotNil(t, r.File)
	assert.Len(t, r.File.ID, 36)
	assert.Equal(t, d.ID, *r.File.DocumentID)
	assert.Contains(t, buf.String(), "Added file "+r.File.ID)

	t.Run("log", func(t *testing.T) {
		require.NoError(t, ingest.Log(ctx, &bytes.Buffer{}, svc, r.File.ID, "fetched 200 OK"))
		require.NoError(t, ingest.Log(ctx, &bytes.Buffer{}, svc, r.File.ID, "checksum verified"))

		det, err := svc.Resolve(ctx, store.KindDataFile, store.Key{ID: r.File.ID})
		require.NoError(t, err)
		fd := det.(*catalog.FileDetail)
		assert.Equal(t, "fetched 200 OK\nchecksum verified", fd.File.SourceLog)
		assert.NotNil(t, fd.File.SourceRetrieved)
	})

	t.Run("unlink and relink", func(t *testing.T) {
		require.NoError(t, ingest.Link(ctx, &bytes.Buffer{}, svc, r.File.ID, nil))
		det, err := svc.Resolve(ctx, store.KindDataFile, store.Key{ID: r.File.ID})
		require.NoError(t, err)
		assert.Nil(t, det.(*catalog.FileDetail).Document)

		var out bytes.Buffer
		require.NoError(t, ingest.Link(ctx, &out, svc, r.File.ID, &doc))
		assert.Equal(t, "Linked file "+r.File.ID+" to document 1\n", out.String())
	})

	t.Run("unknown document", func(t *testing.T) {
		missing := store.ParseKey("nope")
		_, err := ingest.Run(ctx, &bytes.Buffer{}, svc, path, ingest.Options{Document: &missing})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
