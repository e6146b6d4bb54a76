// Package identity carries the authenticated person through request contexts.
// It depends on nothing in the gymstats domain so every package can read it.
package identity

import "context"

// Principal is the logged in person as seen by request handlers.
type Principal struct {
	ID   string
	Name string
	Role string
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
