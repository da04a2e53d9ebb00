package catalog

import (
	"context"
	"strings"
)

type userKey struct{}

// WithUser returns a context carrying the current user's name. The catalog
// never authenticates; it only checks that a caller supplied an identity
// where one is required.
func WithUser(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, userKey{}, strings.TrimSpace(name))
}

// UserFrom returns the user carried by ctx, if any.
func UserFrom(ctx context.Context) (string, bool) {
	name, _ := ctx.Value(userKey{}).(string)
	return name, name != ""
}

// requireUser returns ErrUnauthenticated when ctx carries no identity.
func requireUser(ctx context.Context) error {
	if _, ok := UserFrom(ctx); !ok {
		return ErrUnauthenticated
	}
	return nil
}
