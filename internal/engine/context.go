package engine

import "context"

type queryIDKey struct{}

// WithQueryID returns a context carrying the ID Query should use.
func WithQueryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, queryIDKey{}, id)
}

// QueryIDFromContext returns the query ID stored by WithQueryID, or "".
func QueryIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(queryIDKey{}).(string)
	return id
}
