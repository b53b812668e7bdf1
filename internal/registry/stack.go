package registry

import (
	"context"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/nodeid"
)

// resolutionStack lists the elements being built on the current call
// chain, outermost first. It travels in the context so that every chain
// of nested lookups sees only its own builds.
type resolutionStack []nodeid.Path

type stackKey struct{}

func stackFromContext(ctx context.Context) resolutionStack {
	s, _ := ctx.Value(stackKey{}).(resolutionStack)
	return s
}

// withFrame returns a context whose stack has p pushed on top.
func withFrame(ctx context.Context, p nodeid.Path) context.Context {
	s := stackFromContext(ctx)
	next := make(resolutionStack, len(s), len(s)+1)
	copy(next, s)
	return context.WithValue(ctx, stackKey{}, append(next, p))
}

func (s resolutionStack) contains(p nodeid.Path) bool {
	for _, q := range s {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// cycleError reports the part of the stack from the first frame of p.
func (s resolutionStack) cycleError(p nodeid.Path) error {
	start := 0
	for i, q := range s {
		if q.Equal(p) {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(s)-start+1)
	for _, q := range s[start:] {
		cycle = append(cycle, q.String())
	}
	return &asmerrors.CyclicDependencyError{Cycle: append(cycle, p.String())}
}
