package element

import (
	"context"
	"fmt"

	"github.com/vk/assemblygo/internal/nodeid"
)

// Builder produces the raw value of an element.
type Builder interface {
	Build(ctx context.Context, bc *BuildContext) (any, error)
}

// Literal is a builder whose raw value is fixed at definition time.
type Literal struct {
	Value any
}

// Build implements Builder.
func (l Literal) Build(context.Context, *BuildContext) (any, error) {
	return l.Value, nil
}

// Func is a computed builder.
type Func func(ctx context.Context, bc *BuildContext) (any, error)

// Build implements Builder.
func (f Func) Build(ctx context.Context, bc *BuildContext) (any, error) {
	return f(ctx, bc)
}

// Alias builds by resolving another path of the assembly. When the target
// is a group the value is that group's view, which is how a group is
// re-exported under another name.
type Alias struct {
	Target nodeid.Path
}

// Build implements Builder.
func (a Alias) Build(ctx context.Context, bc *BuildContext) (any, error) {
	return bc.Root(ctx, a.Target)
}

// FactoryFunc is a named constructor registered in a catalog and invoked
// with arguments from a definition file.
type FactoryFunc func(ctx context.Context, bc *BuildContext, args ...any) (any, error)

// Factory is a builder invoking a catalog factory with bound arguments.
type Factory struct {
	Name string
	Fn   FactoryFunc
	Args []any
	// Bind, when set, computes the arguments on every build instead of Args.
	Bind func(ctx context.Context, bc *BuildContext) ([]any, error)
}

// Build implements Builder.
func (f Factory) Build(ctx context.Context, bc *BuildContext) (any, error) {
	if f.Fn == nil {
		return nil, fmt.Errorf("factory %q has no implementation", f.Name)
	}
	args := f.Args
	if f.Bind != nil {
		bound, err := f.Bind(ctx, bc)
		if err != nil {
			return nil, fmt.Errorf("arguments of factory %q: %w", f.Name, err)
		}
		args = bound
	}
	return f.Fn(ctx, bc, args...)
}
