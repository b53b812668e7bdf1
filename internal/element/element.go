package element

import (
	"context"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/overlay"
)

// Element is a finished, immutable element definition.
type Element struct {
	path       nodeid.Path
	builder    Builder
	scope      *Scope
	values     overlay.Chain
	references overlay.Chain
}

// New creates an element. The chains are owned by the element afterwards.
func New(path nodeid.Path, builder Builder, scope *Scope, values, references overlay.Chain) *Element {
	return &Element{
		path:       path,
		builder:    builder,
		scope:      scope,
		values:     values,
		references: references,
	}
}

// Path returns the element's path.
func (e *Element) Path() nodeid.Path {
	return e.path
}

// Builder returns the element's builder.
func (e *Element) Builder() Builder {
	return e.builder
}

// ValueChain returns the value overlays bound to the element.
func (e *Element) ValueChain() overlay.Chain {
	return e.values
}

// ReferenceChain returns the reference overlays bound to the element.
func (e *Element) ReferenceChain() overlay.Chain {
	return e.references
}

// Construct runs the builder and the value chain. It is not memoized;
// memoization belongs to the registry.
func (e *Element) Construct(ctx context.Context, root Resolver) (any, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building element.", "path", e.path.String(), "builder", builderName(e.builder))

	raw, err := e.builder.Build(ctx, NewBuildContext(e.path, e.scope, root))
	if err != nil {
		return nil, &asmerrors.BuildError{Path: e.path.String(), Stage: "build", Cause: err}
	}

	final, err := e.values.Apply(ctx, root, e.path, raw)
	if err != nil {
		return nil, &asmerrors.BuildError{Path: e.path.String(), Stage: "value overlay", Cause: err}
	}
	return final, nil
}

// ApplyReferenceChain transforms a value handed out by a lookup. It runs
// fresh on every call.
func (e *Element) ApplyReferenceChain(ctx context.Context, root overlay.Resolver, v any) (any, error) {
	out, err := e.references.Apply(ctx, root, e.path, v)
	if err != nil {
		return nil, &asmerrors.BuildError{Path: e.path.String(), Stage: "reference overlay", Cause: err}
	}
	return out, nil
}

func builderName(b Builder) string {
	switch b.(type) {
	case Literal:
		return "literal"
	case Func:
		return "func"
	case Alias:
		return "alias"
	case Factory:
		return "factory"
	default:
		return "custom"
	}
}
