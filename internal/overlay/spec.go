package overlay

import (
	"context"
	"fmt"

	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/nodeid"
)

// Spec is a single overlay declaration.
type Spec struct {
	Kind      Kind
	Target    nodeid.Pattern
	Transform Transform
	Args      []any
	// Scope is the path of the declaring group. Set by the group.
	Scope nodeid.Path
}

// String describes the declaration for logs and errors.
func (s Spec) String() string {
	return fmt.Sprintf("%s overlay %s on %q in %q", s.Kind, s.Transform, s.Target.String(), s.Scope.String())
}

// Selects reports whether the overlay applies to the element at p. Only
// elements under the declaring group are selected, qualified targets
// included.
func (s Spec) Selects(p nodeid.Path) bool {
	rel, ok := p.Rel(s.Scope)
	if !ok {
		return false
	}
	if s.Target.Qualified() {
		return s.Target.MatchesExact(p)
	}
	return s.Target.Matches(rel)
}

// Chain is an ordered, immutable sequence of overlays of one kind bound to
// one element.
type Chain []Spec

// Apply folds the chain over v: the first declared overlay receives v, each
// following overlay receives its predecessor's result.
func (c Chain) Apply(ctx context.Context, r Resolver, target nodeid.Path, v any) (any, error) {
	if len(c) == 0 {
		return v, nil
	}
	ctx = WithTarget(ctx, target)
	logger := ctxlog.FromContext(ctx)

	acc := v
	for i, s := range c {
		logger.Debug("Applying overlay.", "target", target.String(), "kind", s.Kind.String(), "index", i, "transform", s.Transform.String())
		next, err := s.Transform.apply(ctx, r, acc, s.Args)
		if err != nil {
			return nil, fmt.Errorf("%s overlay #%d %s: %w", s.Kind, i, s.Transform, err)
		}
		acc = next
	}
	return acc, nil
}
