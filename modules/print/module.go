package print

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/overlay"
)

// Module implements the catalog.Module interface for this package.
type Module struct {
	// Out receives the printed values. Defaults to os.Stdout.
	Out io.Writer
}

// Printer is the 'print.value' overlay. It writes the value it is applied
// to and passes it on unchanged.
type Printer struct {
	out io.Writer
}

// Call implements overlay.Callable.
func (p *Printer) Call(ctx context.Context, current any, args ...any) (any, error) {
	label := "(value)"
	if target, ok := overlay.TargetFromContext(ctx); ok {
		label = target.String()
	}
	if l, err := catalog.StringArg(args, 0, ""); err != nil {
		return nil, err
	} else if l != "" {
		label = l
	}
	ctxlog.FromContext(ctx).Info("Printing value", "label", label)

	switch v := current.(type) {
	case nil:
		fmt.Fprintf(p.out, "%s = (null)\n", label)
	case map[string]string:
		fmt.Fprintf(p.out, "%s:\n", label)
		for _, k := range sortedKeys(v) {
			fmt.Fprintf(p.out, "      %s = %q\n", k, v[k])
		}
	case map[string]any:
		fmt.Fprintf(p.out, "%s:\n", label)
		for _, k := range sortedKeys(v) {
			fmt.Fprintf(p.out, "      %s = %v\n", k, v[k])
		}
	default:
		fmt.Fprintf(p.out, "%s = %v\n", label, v)
	}
	return current, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Register registers the overlay with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	c.RegisterTransform("print.value", &Printer{out: out})
}
