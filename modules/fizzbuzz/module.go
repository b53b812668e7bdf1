package fizzbuzz

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/internal/element"
)

// Module implements the catalog.Module interface for this package.
type Module struct {
	// Out receives dispatched results. Defaults to os.Stdout.
	Out io.Writer
	// Log receives the call log. Defaults to os.Stderr.
	Log io.Writer
}

// Register registers the factories and the call-log overlay.
func (m *Module) Register(c *catalog.Catalog) {
	out, log := m.Out, m.Log
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = os.Stderr
	}

	c.RegisterFactory("fizzbuzz.divisor", newDivisor)
	c.RegisterFactory("fizzbuzz.echo", func(context.Context, *element.BuildContext, ...any) (any, error) {
		return Echo{}, nil
	})
	c.RegisterFactory("fizzbuzz.output", func(context.Context, *element.BuildContext, ...any) (any, error) {
		return NewOutput(out), nil
	})
	c.RegisterFactory("fizzbuzz.dispatcher", newDispatcher)
	c.RegisterTransform("fizzbuzz.call_log", &CallLog{w: log})
}

// newDivisor takes the divisor and the message.
func newDivisor(_ context.Context, _ *element.BuildContext, args ...any) (any, error) {
	if err := catalog.RequireArgs(args, 2); err != nil {
		return nil, err
	}
	divisor, err := catalog.IntArg(args, 0, 0)
	if err != nil {
		return nil, err
	}
	if divisor == 0 {
		return nil, fmt.Errorf("divisor must not be zero")
	}
	message, err := catalog.StringArg(args, 1, "")
	if err != nil {
		return nil, err
	}
	return &Divisor{Divisor: divisor, Message: message}, nil
}

// newDispatcher takes the handlers group and the output element, either
// as references or as names resolved from the dispatcher's own group
// outward.
func newDispatcher(ctx context.Context, bc *element.BuildContext, args ...any) (any, error) {
	g, err := catalog.RefArg(ctx, bc, args, 0, "handlers")
	if err != nil {
		return nil, err
	}
	group, ok := g.(HandlerGroup)
	if !ok {
		return nil, fmt.Errorf("argument 0 is not a group (got %T)", g)
	}

	o, err := catalog.RefArg(ctx, bc, args, 1, "output")
	if err != nil {
		return nil, err
	}
	output, ok := o.(*Output)
	if !ok {
		return nil, fmt.Errorf("argument 1 is not an output (got %T)", o)
	}

	return NewDispatcher(ctx, group, output)
}
