package overlay

import (
	"context"

	"github.com/vk/assemblygo/internal/nodeid"
)

type targetKey struct{}

// WithTarget returns a context recording the element a chain is applied to.
func WithTarget(ctx context.Context, p nodeid.Path) context.Context {
	return context.WithValue(ctx, targetKey{}, p)
}

// TargetFromContext returns the path of the element currently being
// transformed. ok is false outside of a chain application.
func TargetFromContext(ctx context.Context) (nodeid.Path, bool) {
	p, ok := ctx.Value(targetKey{}).(nodeid.Path)
	return p, ok
}
