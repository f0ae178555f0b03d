package session

import "context"

type gateKey struct{}

// WithGate returns a context carrying g for the subtree that is allowed to
// read gated data.
func WithGate(ctx context.Context, g *Gate) context.Context {
	return context.WithValue(ctx, gateKey{}, g)
}

// FromContext returns the gate attached with WithGate, or a *ScopeError.
func FromContext(ctx context.Context) (*Gate, error) {
	g, ok := ctx.Value(gateKey{}).(*Gate)
	if !ok || g == nil {
		return nil, &ScopeError{}
	}
	return g, nil
}

// MustFromContext is FromContext for code that can only run below a gate.
// It panics with a *ScopeError otherwise.
func MustFromContext(ctx context.Context) *Gate {
	g, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return g
}
