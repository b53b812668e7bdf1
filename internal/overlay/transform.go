package overlay

import (
	"context"
	"fmt"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/nodeid"
)

// Callable is a transform that can be invoked directly.
type Callable interface {
	Call(ctx context.Context, current any, args ...any) (any, error)
}

// Constructible is a transform that creates a new instance from the
// current value and the bound arguments.
type Constructible interface {
	New(ctx context.Context, current any, args ...any) (any, error)
}

// Func adapts an ordinary function to Callable.
type Func func(ctx context.Context, current any, args ...any) (any, error)

// Call implements Callable.
func (f Func) Call(ctx context.Context, current any, args ...any) (any, error) {
	return f(ctx, current, args...)
}

// Resolver resolves path transforms. The registry's Root implements it.
type Resolver interface {
	ResolveTransform(ctx context.Context, p nodeid.Path) (Transform, error)
}

// Transform is the invocation strategy of an overlay.
type Transform interface {
	apply(ctx context.Context, r Resolver, current any, args []any) (any, error)
	String() string
}

// FunctionOverlay invokes its Callable with the current value.
type FunctionOverlay struct {
	Fn Callable
}

func (t FunctionOverlay) apply(ctx context.Context, _ Resolver, current any, args []any) (any, error) {
	return t.Fn.Call(ctx, current, args...)
}

func (t FunctionOverlay) String() string {
	return fmt.Sprintf("func(%T)", t.Fn)
}

// ConstructorOverlay treats constructing a new instance as the call.
type ConstructorOverlay struct {
	Ctor Constructible
}

func (t ConstructorOverlay) apply(ctx context.Context, _ Resolver, current any, args []any) (any, error) {
	return t.Ctor.New(ctx, current, args...)
}

func (t ConstructorOverlay) String() string {
	return fmt.Sprintf("new(%T)", t.Ctor)
}

// PathOverlay refers to an element elsewhere in the assembly whose value
// is the actual transform.
type PathOverlay struct {
	Path nodeid.Path
}

func (t PathOverlay) apply(ctx context.Context, r Resolver, current any, args []any) (any, error) {
	if r == nil {
		return nil, &asmerrors.ResolutionError{Transform: t.String(), Message: "no resolver available for path transform"}
	}
	resolved, err := r.ResolveTransform(ctx, t.Path)
	if err != nil {
		return nil, err
	}
	if _, isPath := resolved.(PathOverlay); isPath {
		return nil, &asmerrors.ResolutionError{Transform: t.String(), Message: "path transform resolved to another path"}
	}
	return resolved.apply(ctx, r, current, args)
}

func (t PathOverlay) String() string {
	return "path(" + t.Path.String() + ")"
}

// FromValue picks the invocation strategy for v: direct invocation when v
// is callable, construction when it is only constructible. A Transform is
// returned unchanged.
func FromValue(v any) (Transform, error) {
	if t, ok := v.(Transform); ok {
		return t, nil
	}
	if fn, ok := asCallable(v); ok {
		return FunctionOverlay{Fn: fn}, nil
	}
	if ctor, ok := v.(Constructible); ok {
		return ConstructorOverlay{Ctor: ctor}, nil
	}
	return nil, &asmerrors.ResolutionError{
		Transform: fmt.Sprintf("%T", v),
		Message:   "value is neither callable nor constructible",
	}
}

// MustFromValue is like FromValue but panics; used for transforms declared in code.
func MustFromValue(v any) Transform {
	t, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return t
}

// asCallable recognizes Callable implementations and the plain function
// shapes accepted as overlays.
func asCallable(v any) (Callable, bool) {
	switch fn := v.(type) {
	case Callable:
		return fn, true
	case func(context.Context, any, ...any) (any, error):
		return Func(fn), true
	case func(any, ...any) (any, error):
		return Func(func(_ context.Context, current any, args ...any) (any, error) {
			return fn(current, args...)
		}), true
	case func(any) (any, error):
		return Func(func(_ context.Context, current any, _ ...any) (any, error) {
			return fn(current)
		}), true
	case func(any) any:
		return Func(func(_ context.Context, current any, _ ...any) (any, error) {
			return fn(current), nil
		}), true
	default:
		return nil, false
	}
}
