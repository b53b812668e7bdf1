package fizzbuzz

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/assemblygo/internal/ctxlog"
)

// HandlerGroup is the view of the group the dispatcher takes its handlers
// from.
type HandlerGroup interface {
	Names() []string
	Get(ctx context.Context, raw string) (any, error)
}

// Dispatcher hands each number to its handlers in definition order until
// one of them answers.
type Dispatcher struct {
	handlers []Handler
	output   *Output
}

// NewDispatcher resolves every element of group as a Handler.
func NewDispatcher(ctx context.Context, group HandlerGroup, output *Output) (*Dispatcher, error) {
	d := &Dispatcher{output: output}
	for _, name := range group.Names() {
		v, err := group.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		h, ok := v.(Handler)
		if !ok {
			return nil, fmt.Errorf("element %q is not a handler (got %T)", name, v)
		}
		d.handlers = append(d.handlers, h)
	}
	if len(d.handlers) == 0 {
		return nil, fmt.Errorf("dispatcher has no handlers")
	}
	return d, nil
}

// Dispatch handles a single number.
func (d *Dispatcher) Dispatch(n int) error {
	for _, h := range d.handlers {
		if v, ok := h.Handle(n); ok {
			d.output.Append(v)
			return nil
		}
	}
	return fmt.Errorf("no handler accepted %d", n)
}

// Run dispatches every number of a range. args is empty (1..20), a single
// "from..to" range, or two bounds.
func (d *Dispatcher) Run(ctx context.Context, args []string) error {
	from, to, err := parseRange(args)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Dispatching range.", "from", from, "to", to)
	for n := from; n <= to; n++ {
		if err := d.Dispatch(n); err != nil {
			return err
		}
	}
	return nil
}

func parseRange(args []string) (int, int, error) {
	switch len(args) {
	case 0:
		return 1, 20, nil
	case 1:
		bounds := strings.SplitN(args[0], "..", 2)
		if len(bounds) != 2 {
			return 0, 0, fmt.Errorf("invalid range %q: expected from..to", args[0])
		}
		return parseBounds(bounds[0], bounds[1])
	case 2:
		return parseBounds(args[0], args[1])
	default:
		return 0, 0, fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}
}

func parseBounds(a, b string) (int, int, error) {
	from, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q: %w", a, err)
	}
	to, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q: %w", b, err)
	}
	if from > to {
		return 0, 0, fmt.Errorf("invalid range %d..%d", from, to)
	}
	return from, to, nil
}
