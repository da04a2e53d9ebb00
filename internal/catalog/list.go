package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jpl-au/darc/internal/store"
)

// Summary is one row of a flat listing.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// String renders the row as "<id> - <title>".
func (s Summary) String() string {
	return s.ID + " - " + s.Title
}

// List returns every entity of a kind as id/title pairs. Documents and
// metadata are ordered by id, nodes by name and files newest first.
func (s *Service) List(ctx context.Context, kind store.Kind) ([]Summary, error) {
	out := []Summary{}
	switch kind {
	case store.KindTerm, store.KindCollection:
		nodes, err := s.store.Nodes(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			out = append(out, Summary{ID: itoa(n.ID), Title: n.Name})
		}
	case store.KindDocument:
		docs, err := s.store.ListDocuments(ctx)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			out = append(out, Summary{ID: itoa(d.ID), Title: d.Title})
		}
	case store.KindDataFile:
		files, err := s.store.ListFiles(ctx, nil)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			out = append(out, Summary{ID: f.ID, Title: f.FileName})
		}
	case store.KindMetadata:
		metas, err := s.store.ListMetadata(ctx)
		if err != nil {
			return nil, err
		}
		for _, m := range metas {
			out = append(out, Summary{ID: itoa(m.ID), Title: fmt.Sprintf("document %d", m.DocumentID)})
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return out, nil
}

// Stats returns aggregate catalog statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
