// resources.go implements MCP resource handlers for entity detail views.
//
// MCP resources provide read-only access via URI, enabling LLM clients to
// pull a detail view into context without a tool call.
//
// Design: Resource URIs follow darc://{kind}/{key}, where key is an id, a
// file UUID or a slug. The body is the plain text layout the CLI prints.

package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/darc/internal/catalog"
	"github.com/jpl-au/darc/internal/format"
	"github.com/jpl-au/darc/internal/log"
	"github.com/jpl-au/darc/internal/store"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyKey indicates a resource URI without an id or slug.
	ErrEmptyKey = errors.New("empty key")
)

// readEntity handles darc://{kind}/{key} resource requests.
func (h *handlers) readEntity(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}
	uri := req.Params.URI

	kind, key, err := parseEntityURI(uri)
	if err != nil {
		return nil, err
	}

	d, err := h.svc.Resolve(catalog.WithUser(ctx, h.user), kind, key)

	log.Event("mcp:resource", "read").Author(h.user).Kind(string(kind)).Key(key.String()).Write(err)

	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := format.Detail(&buf, d); err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     buf.String(),
		},
	}, nil
}

// parseEntityURI extracts kind and key from darc://{kind}/{key}.
func parseEntityURI(uri string) (store.Kind, store.Key, error) {
	const prefix = "darc://"
	rest, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return "", store.Key{}, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	kindStr, keyStr, ok := strings.Cut(rest, "/")
	if !ok || keyStr == "" {
		return "", store.Key{}, ErrEmptyKey
	}
	if strings.Contains(keyStr, "/") {
		return "", store.Key{}, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	kind, err := store.ParseKind(kindStr)
	if err != nil {
		return "", store.Key{}, err
	}
	return kind, store.ParseKey(keyStr), nil
}
