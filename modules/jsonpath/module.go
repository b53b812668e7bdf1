// Package jsonpath provides value overlays that replace a constructed value
// with the part of it selected by a JSONPath expression.
package jsonpath

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/internal/ctxlog"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// First is the 'jsonpath.first' overlay. args[0] is the expression; the
// first match replaces the value. No match is an error.
func First(ctx context.Context, current any, args ...any) (any, error) {
	x, err := parse(args)
	if err != nil {
		return nil, err
	}
	results := x.Get(current)
	ctxlog.FromContext(ctx).Debug("JSONPath evaluated.", "expr", x.String(), "matches", len(results))
	if len(results) == 0 {
		return nil, fmt.Errorf("jsonpath '%s' matched nothing", x.String())
	}
	return results[0], nil
}

// All is the 'jsonpath.all' overlay. It replaces the value with every
// match, possibly none.
func All(ctx context.Context, current any, args ...any) (any, error) {
	x, err := parse(args)
	if err != nil {
		return nil, err
	}
	results := x.Get(current)
	ctxlog.FromContext(ctx).Debug("JSONPath evaluated.", "expr", x.String(), "matches", len(results))
	if results == nil {
		results = []any{}
	}
	return results, nil
}

func parse(args []any) (jp.Expr, error) {
	if err := catalog.RequireArgs(args, 1); err != nil {
		return nil, err
	}
	selector, err := catalog.StringArg(args, 0, "")
	if err != nil {
		return nil, err
	}
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}
	return x, nil
}

// Register registers the overlays with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterTransform("jsonpath.first", First)
	c.RegisterTransform("jsonpath.all", All)
}
