package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jpl-au/darc/internal/store"
	"github.com/jpl-au/darc/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "darc-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)

	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

// writeOpts returns WriteOptions with test defaults.
func writeOpts(author string) store.WriteOptions {
	return store.WriteOptions{Author: author, At: 1700000000}
}

// mkNode creates a node and returns its id.
func mkNode(t *testing.T, s *store.SQLiteStore, kind store.Kind, name string, parent *int64) int64 {
	t.Helper()
	n := &store.Node{Kind: kind, Name: name, ParentID: parent}
	require.NoError(t, s.CreateNode(context.Background(), n, writeOpts("alice")))
	return n.ID
}

// mkDoc creates a document in the given collections and returns its id.
func mkDoc(t *testing.T, s *store.SQLiteStore, title string, collections []int64, terms []int64) int64 {
	t.Helper()
	d := &store.Document{Title: title}
	require.NoError(t, s.CreateDocument(context.Background(), d, collections, terms, writeOpts("alice")))
	return d.ID
}

func ptr(v int64) *int64 { return &v }

// --- Nodes ---

func TestStore_CreateAndReadNode(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	n := &store.Node{Kind: store.KindCollection, Name: "Annual Reports", Description: "yearly"}
	require.NoError(t, s.CreateNode(ctx, n, writeOpts("alice")))
	assert.NotZero(t, n.ID)
	assert.Equal(t, "annual-reports", n.Slug)

	got, err := s.Node(ctx, store.KindCollection, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annual Reports", got.Name)
	assert.Equal(t, "yearly", got.Description)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, "alice", got.CreatedBy)
	assert.Equal(t, int64(1700000000), got.CreatedAt)
	assert.True(t, got.IsRoot())

	bySlug, err := s.NodeBySlug(ctx, store.KindCollection, "annual-reports")
	require.NoError(t, err)
	assert.Equal(t, n.ID, bySlug.ID)

	bySlug, err = s.NodeBySlug(ctx, store.KindCollection, "Annual-Reports")
	require.NoError(t, err, "slug lookups ignore case")
	assert.Equal(t, n.ID, bySlug.ID)

	// Terms and collections are separate tables.
	_, err = s.Node(ctx, store.KindTerm, n.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_NodeErrors(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.Node(ctx, store.KindCollection, 999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.NodeBySlug(ctx, store.KindTerm, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Node(ctx, store.KindDocument, 1)
	assert.ErrorIs(t, err, store.ErrUnknownKind)

	err = s.CreateNode(ctx, &store.Node{Kind: store.KindTerm, Name: ""}, writeOpts("alice"))
	assert.ErrorIs(t, err, validate.ErrInvalidName)

	err = s.CreateNode(ctx, &store.Node{Kind: store.KindTerm, Name: "Orphan", ParentID: ptr(42)}, writeOpts("alice"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_DuplicateSlugRefused(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mkNode(t, s, store.KindTerm, "Finance", nil)
	err := s.CreateNode(ctx, &store.Node{Kind: store.KindTerm, Name: "FINANCE"}, writeOpts("bob"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	// The same slug in the other hierarchy is fine.
	mkNode(t, s, store.KindCollection, "Finance", nil)
}

func TestStore_AmbiguousSlug(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	mkNode(t, s, store.KindCollection, "Reports", nil)
	_, err := s.DB().Exec(`INSERT INTO collections (name, slug, created_at, modified_at) VALUES ('Reports again', 'reports', 0, 0)`)
	require.NoError(t, err)

	_, err = s.NodeBySlug(ctx, store.KindCollection, "reports")
	assert.ErrorIs(t, err, store.ErrAmbiguousSlug)
}

func TestStore_ChildrenAndRoots(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	root := mkNode(t, s, store.KindCollection, "Root", nil)
	mkNode(t, s, store.KindCollection, "Beta", &root)
	mkNode(t, s, store.KindCollection, "Alpha", &root)
	other := mkNode(t, s, store.KindCollection, "Another root", nil)

	kids, err := s.Children(ctx, store.KindCollection, root)
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, "Alpha", kids[0].Name)
	assert.Equal(t, "Beta", kids[1].Name)
	for _, k := range kids {
		require.NotNil(t, k.ParentID)
		assert.Equal(t, root, *k.ParentID)
	}

	roots, err := s.Roots(ctx, store.KindCollection)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, other, roots[0].ID)
	assert.Equal(t, root, roots[1].ID)

	none, err := s.Children(ctx, store.KindCollection, other)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := s.Nodes(ctx, store.KindCollection)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestStore_UpdateNodeRefusesCycle(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	a := mkNode(t, s, store.KindTerm, "A", nil)
	b := mkNode(t, s, store.KindTerm, "B", &a)
	c := mkNode(t, s, store.KindTerm, "C", &b)

	n, err := s.Node(ctx, store.KindTerm, a)
	require.NoError(t, err)

	n.ParentID = ptr(c)
	assert.ErrorIs(t, s.UpdateNode(ctx, n, writeOpts("bob")), store.ErrCycle)

	n.ParentID = ptr(a)
	assert.ErrorIs(t, s.UpdateNode(ctx, n, writeOpts("bob")), store.ErrCycle)

	// Moving a leaf elsewhere is fine and stamps the modifier.
	leaf, err := s.Node(ctx, store.KindTerm, c)
	require.NoError(t, err)
	leaf.ParentID = ptr(a)
	leaf.Name = "C renamed"
	require.NoError(t, s.UpdateNode(ctx, leaf, writeOpts("bob")))

	got, err := s.Node(ctx, store.KindTerm, c)
	require.NoError(t, err)
	assert.Equal(t, "C renamed", got.Name)
	assert.Equal(t, a, *got.ParentID)
	assert.Equal(t, "bob", got.ModifiedBy)
	assert.Equal(t, "alice", got.CreatedBy)
}

func TestStore_DeleteCollectionCascades(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	root := mkNode(t, s, store.KindCollection, "Root", nil)
	mid := mkNode(t, s, store.KindCollection, "Mid", &root)
	leaf := mkNode(t, s, store.KindCollection, "Leaf", &mid)
	keep := mkNode(t, s, store.KindCollection, "Keep", nil)
	doc := mkDoc(t, s, "Doc", []int64{leaf, keep}, nil)

	require.NoError(t, s.DeleteNode(ctx, store.KindCollection, root))

	for _, id := range []int64{root, mid, leaf} {
		_, err := s.Node(ctx, store.KindCollection, id)
		assert.ErrorIs(t, err, store.ErrNotFound)
	}
	members, err := s.Members(ctx, store.EdgeDocumentCollections, doc)
	require.NoError(t, err)
	assert.Equal(t, []int64{keep}, members)

	assert.ErrorIs(t, s.DeleteNode(ctx, store.KindCollection, root), store.ErrNotFound)
}

func TestStore_DeleteTermDetachesChildren(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	parent := mkNode(t, s, store.KindTerm, "Parent", nil)
	child := mkNode(t, s, store.KindTerm, "Child", &parent)

	require.NoError(t, s.DeleteNode(ctx, store.KindTerm, parent))

	got, err := s.Node(ctx, store.KindTerm, child)
	require.NoError(t, err)
	assert.True(t, got.IsRoot())
}

// --- Documents and relations ---

func TestStore_DocumentNeedsCollection(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	err := s.CreateDocument(ctx, &store.Document{Title: "Loose"}, nil, nil, writeOpts("alice"))
	assert.ErrorIs(t, err, store.ErrNoCollection)

	err = s.CreateDocument(ctx, &store.Document{Title: "Loose"}, []int64{77}, nil, writeOpts("alice"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs, "failed inserts must not leave rows behind")
}

func TestStore_MembersAndReverse(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	c1 := mkNode(t, s, store.KindCollection, "C1", nil)
	c2 := mkNode(t, s, store.KindCollection, "C2", nil)
	term := mkNode(t, s, store.KindTerm, "T", nil)
	d1 := mkDoc(t, s, "D1", []int64{c1, c2}, []int64{term})
	d2 := mkDoc(t, s, "D2", []int64{c1}, nil)

	got, err := s.Members(ctx, store.EdgeDocumentCollections, d1)
	require.NoError(t, err)
	assert.Equal(t, []int64{c1, c2}, got)

	got, err = s.Reverse(ctx, store.EdgeDocumentCollections, c1)
	require.NoError(t, err)
	assert.Equal(t, []int64{d1, d2}, got)

	got, err = s.Reverse(ctx, store.EdgeDocumentTerms, term)
	require.NoError(t, err)
	assert.Equal(t, []int64{d1}, got)

	// Removing the last collection is refused and rolled back.
	err = s.Unrelate(ctx, store.EdgeDocumentCollections, d2, c1, writeOpts("bob"))
	assert.ErrorIs(t, err, store.ErrNoCollection)
	got, err = s.Members(ctx, store.EdgeDocumentCollections, d2)
	require.NoError(t, err)
	assert.Equal(t, []int64{c1}, got)

	require.NoError(t, s.SetMembers(ctx, store.EdgeDocumentCollections, d2, []int64{c2}, writeOpts("bob")))
	got, err = s.Members(ctx, store.EdgeDocumentCollections, d2)
	require.NoError(t, err)
	assert.Equal(t, []int64{c2}, got)

	assert.ErrorIs(t, s.SetMembers(ctx, store.EdgeDocumentCollections, d2, nil, writeOpts("bob")), store.ErrNoCollection)
}

func TestStore_RelatedIsSymmetric(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	c := mkNode(t, s, store.KindCollection, "C", nil)
	a := mkDoc(t, s, "A", []int64{c}, nil)
	b := mkDoc(t, s, "B", []int64{c}, nil)
	x := mkDoc(t, s, "X", []int64{c}, nil)

	require.NoError(t, s.Relate(ctx, store.EdgeDocumentRelated, a, b, writeOpts("alice")))
	// Same fact from the other end is a no-op.
	require.NoError(t, s.Relate(ctx, store.EdgeDocumentRelated, b, a, writeOpts("alice")))
	require.NoError(t, s.Relate(ctx, store.EdgeDocumentRelated, x, a, writeOpts("alice")))

	var rows int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM document_related`).Scan(&rows))
	assert.Equal(t, 2, rows)

	got, err := s.Related(ctx, store.EdgeDocumentRelated, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{b, x}, got)

	got, err = s.Related(ctx, store.EdgeDocumentRelated, b)
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, got)

	// A pair stored in both directions still reads once.
	_, err = s.DB().Exec(`INSERT INTO document_related (from_id, to_id) VALUES (?, ?)`, b, a)
	require.NoError(t, err)
	got, err = s.Related(ctx, store.EdgeDocumentRelated, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{b, x}, got)

	err = s.Relate(ctx, store.EdgeDocumentRelated, a, a, writeOpts("alice"))
	assert.ErrorIs(t, err, validate.ErrInvalidRelation)

	require.NoError(t, s.Unrelate(ctx, store.EdgeDocumentRelated, a, b, writeOpts("alice")))
	got, err = s.Related(ctx, store.EdgeDocumentRelated, b)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Related(ctx, store.EdgeDocumentTerms, a)
	assert.ErrorIs(t, err, store.ErrUnknownEdge)
}

func TestStore_CollectionRelated(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	a := mkNode(t, s, store.KindCollection, "A", nil)
	b := mkNode(t, s, store.KindCollection, "B", nil)
	require.NoError(t, s.Relate(ctx, store.EdgeCollectionRelated, b, a, writeOpts("alice")))

	got, err := s.Related(ctx, store.EdgeCollectionRelated, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{b}, got)
}

// --- Search ---

func TestStore_SearchSubstring(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	c := mkNode(t, s, store.KindCollection, "Annual Reports", nil)
	mkNode(t, s, store.KindTerm, "Reporting", nil)
	mkDoc(t, s, "Q1 report", []int64{c}, nil)
	mkDoc(t, s, "Budget 50% cut", []int64{c}, nil)

	for _, needle := range []string{"Ann", "orts", "al Rep"} {
		got, err := s.SearchNodes(ctx, store.KindCollection, needle, false)
		require.NoError(t, err)
		assert.Len(t, got, 1, "needle %q", needle)
	}

	docs, err := s.SearchDocuments(ctx, "REPORT", false)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Q1 report", docs[0].Title)

	docs, err = s.SearchDocuments(ctx, "REPORT", true)
	require.NoError(t, err)
	assert.Empty(t, docs)

	// No wildcard interpretation.
	docs, err = s.SearchDocuments(ctx, "50%", false)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	docs, err = s.SearchDocuments(ctx, "_", false)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_SearchFoldsUnicode(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	c := mkNode(t, s, store.KindCollection, "Übersicht", nil)
	mkNode(t, s, store.KindTerm, "ÉTUDES", nil)
	mkDoc(t, s, "Ärzte Bericht", []int64{c}, nil)
	mkDoc(t, s, "Straße nach Köln", []int64{c}, nil)

	colls, err := s.SearchNodes(ctx, store.KindCollection, "über", false)
	require.NoError(t, err)
	assert.Len(t, colls, 1)

	terms, err := s.SearchNodes(ctx, store.KindTerm, "études", false)
	require.NoError(t, err)
	assert.Len(t, terms, 1)

	docs, err := s.SearchDocuments(ctx, "ärzte", false)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Ärzte Bericht", docs[0].Title)

	docs, err = s.SearchDocuments(ctx, "STRASSE", false)
	require.NoError(t, err)
	assert.Len(t, docs, 1, "full case folding maps ß to ss")

	docs, err = s.SearchDocuments(ctx, "ärzte", true)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

// --- Metadata and files ---

func TestStore_FirstMetadata(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	c := mkNode(t, s, store.KindCollection, "C", nil)
	d := mkDoc(t, s, "D", []int64{c}, nil)

	_, err := s.FirstMetadata(ctx, d)
	assert.ErrorIs(t, err, store.ErrNotFound)

	first := &store.Metadata{DocumentID: d, Payload: "<x:xmpmeta/>"}
	require.NoError(t, s.AddMetadata(ctx, first, writeOpts("alice")))
	require.NoError(t, s.AddMetadata(ctx, &store.Metadata{DocumentID: d, Payload: "second"}, writeOpts("alice")))

	got, err := s.FirstMetadata(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "<x:xmpmeta/>", got.Payload)

	require.NoError(t, s.DeleteDocument(ctx, d))
	_, err = s.Metadata(ctx, first.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "metadata cascades with its document")
}

func TestStore_FileUnlinkedWhenDocumentDeleted(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	c := mkNode(t, s, store.KindCollection, "C", nil)
	d := mkDoc(t, s, "D", []int64{c}, nil)

	f := &store.DataFile{DocumentID: &d, FileName: "scan.pdf", MimeType: "application/pdf",
		Size: 1024, FileModifiedAt: 1600000000, FileModifiedNano: 123456789, FormatType: store.FormatScanned}
	require.NoError(t, s.CreateFile(ctx, f, writeOpts("alice")))
	_, err := uuid.Parse(f.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteDocument(ctx, d))

	got, err := s.DataFile(ctx, f.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DocumentID)
	assert.Equal(t, "scan.pdf", got.FileName)
	assert.Equal(t, 123456789, got.FileModifiedNano)
	assert.Equal(t, store.FormatScanned, got.FormatType)

	// A later document with the same id never picks the file back up.
	d2 := mkDoc(t, s, "D again", []int64{c}, nil)
	got, err = s.DataFile(ctx, f.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DocumentID)

	require.NoError(t, s.SetFileDocument(ctx, f.ID, &d2, writeOpts("bob")))
	got, err = s.DataFile(ctx, f.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DocumentID)
	assert.Equal(t, d2, *got.DocumentID)
}

func TestStore_ListFilesOrder(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	c := mkNode(t, s, store.KindCollection, "C", nil)
	d := mkDoc(t, s, "D", []int64{c}, nil)

	mk := func(id string, at int64) {
		f := &store.DataFile{ID: id, DocumentID: &d, FileName: id[:4]}
		require.NoError(t, s.CreateFile(ctx, f, store.WriteOptions{Author: "alice", At: at}))
	}
	mk("bbbbbbbb-0000-4000-8000-000000000000", 100)
	mk("aaaaaaaa-0000-4000-8000-000000000000", 100)
	mk("cccccccc-0000-4000-8000-000000000000", 200)

	files, err := s.ListFiles(ctx, &d)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "cccc", files[0].FileName)
	assert.Equal(t, "aaaa", files[1].FileName)
	assert.Equal(t, "bbbb", files[2].FileName)

	err = s.CreateFile(ctx, &store.DataFile{ID: "not-a-uuid", FileName: "x"}, writeOpts("alice"))
	assert.ErrorIs(t, err, store.ErrInvalidValue)
	err = s.CreateFile(ctx, &store.DataFile{ID: "aaaaaaaa-0000-4000-8000-000000000000", FileName: "x"}, writeOpts("alice"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestStore_AppendRetrieveLog(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	f := &store.DataFile{FileName: "page.html", SourceURL: "https://example.org/page"}
	require.NoError(t, s.CreateFile(ctx, f, writeOpts("alice")))

	opts := store.WriteOptions{Author: "bot", At: 1700000500, MaxLog: 40}
	require.NoError(t, s.AppendRetrieveLog(ctx, f.ID, "200 OK", opts))
	require.NoError(t, s.AppendRetrieveLog(ctx, f.ID, "304 Not Modified", opts))

	got, err := s.DataFile(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "200 OK\n304 Not Modified", got.SourceLog)
	require.NotNil(t, got.SourceRetrieved)
	assert.Equal(t, int64(1700000500), *got.SourceRetrieved)
	assert.Equal(t, "bot", got.ModifiedBy)

	err = s.AppendRetrieveLog(ctx, f.ID, "this line pushes the log past its limit", opts)
	assert.ErrorIs(t, err, validate.ErrLogTooLarge)

	err = s.AppendRetrieveLog(ctx, uuid.NewString(), "x", opts)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- Maintenance ---

func TestStore_Stats(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	root := mkNode(t, s, store.KindCollection, "Root", nil)
	child := mkNode(t, s, store.KindCollection, "Child", &root)
	other := mkNode(t, s, store.KindCollection, "Other", nil)
	mkNode(t, s, store.KindTerm, "T", nil)
	d := mkDoc(t, s, "D", []int64{child}, nil)
	mkDoc(t, s, "E", []int64{other}, nil)
	require.NoError(t, s.CreateFile(ctx, &store.DataFile{DocumentID: &d, FileName: "f"}, writeOpts("alice")))
	require.NoError(t, s.CreateFile(ctx, &store.DataFile{FileName: "g"}, writeOpts("alice")))

	// Deleting the subtree leaves D outside every collection.
	require.NoError(t, s.DeleteNode(ctx, store.KindCollection, root))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Collections)
	assert.Equal(t, int64(1), st.RootCollections)
	assert.Equal(t, int64(1), st.Terms)
	assert.Equal(t, int64(2), st.Documents)
	assert.Equal(t, int64(1), st.Orphans)
	assert.Equal(t, int64(2), st.Files)
	assert.Equal(t, int64(1), st.UnlinkedFiles)
	assert.Equal(t, int64(1), st.Edges)
}

func TestStore_VacuumAndCheckpoint(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	root := mkNode(t, s, store.KindCollection, "Root", nil)
	for range 200 {
		mkNode(t, s, store.KindCollection, uuid.NewString(), &root)
	}
	require.NoError(t, s.DeleteNode(ctx, store.KindCollection, root))
	require.NoError(t, s.Checkpoint(ctx))

	reclaimed, err := s.Vacuum(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, reclaimed, int64(0))
}

func TestParseKey(t *testing.T) {
	k := store.ParseKey("42")
	assert.Equal(t, "42", k.ID)
	assert.Empty(t, k.Slug)

	id := uuid.NewString()
	k = store.ParseKey(id)
	assert.Equal(t, id, k.ID)

	k = store.ParseKey("annual-reports")
	assert.Empty(t, k.ID)
	assert.Equal(t, "annual-reports", k.Slug)

	k = store.ParseKey("Annual-Reports")
	assert.Equal(t, "annual-reports", k.Slug)
}
