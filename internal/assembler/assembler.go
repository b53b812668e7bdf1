package assembler

import (
	"context"
	"fmt"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/internal/config"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/element"
	"github.com/vk/assemblygo/internal/group"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/overlay"
)

// Define adds the definitions of model to g. Use it to combine file-based
// definitions with groups declared in Go before calling Finish.
func Define(ctx context.Context, g *group.Group, model *config.Model, cat *catalog.Catalog) error {
	if model.ConfigDir != "" {
		if err := g.SetConfigDir(model.ConfigDir); err != nil {
			return err
		}
	}
	if model.Root == nil {
		return nil
	}
	a := &assembler{catalog: cat}
	return a.define(ctx, g, model.Root, nodeid.Root)
}

// Build defines model in a new root group and finishes it.
func Build(ctx context.Context, model *config.Model, cat *catalog.Catalog) (*group.Tree, error) {
	logger := ctxlog.FromContext(ctx)

	root := group.New()
	if err := Define(ctx, root, model, cat); err != nil {
		return nil, err
	}
	tree, err := root.Finish(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Assembly definitions built.", "files", len(model.Files), "elements", len(tree.Elements()))
	return tree, nil
}

type assembler struct {
	catalog *catalog.Catalog
}

func (a *assembler) define(ctx context.Context, g *group.Group, def *config.GroupDef, path nodeid.Path) error {
	logger := ctxlog.FromContext(ctx)

	for _, e := range def.Elements {
		if err := a.defineElement(g, e); err != nil {
			return originError(e.Origin, path.Child(e.Name), err)
		}
	}

	for _, sub := range def.Groups {
		sg, err := g.Subgroup(sub.Name)
		if err != nil {
			return originError(sub.Origin, path.Child(sub.Name), err)
		}
		if sub.ConfigDir != "" {
			if err := sg.SetConfigDir(sub.ConfigDir); err != nil {
				return originError(sub.Origin, path.Child(sub.Name), err)
			}
		}
		if err := a.define(ctx, sg, sub, path.Child(sub.Name)); err != nil {
			return err
		}
	}

	for _, o := range def.Overlays {
		if err := a.defineOverlay(g, o); err != nil {
			return originError(o.Origin, path, err)
		}
	}

	logger.Debug("Group defined.", "group", path.String(), "elements", len(def.Elements), "groups", len(def.Groups), "overlays", len(def.Overlays))
	return nil
}

func (a *assembler) defineElement(g *group.Group, e *config.ElementDef) error {
	switch e.Kind {
	case config.ElementValue:
		if e.ValueExpr != nil {
			return g.Func(e.Name, func(ctx context.Context, bc *element.BuildContext) (any, error) {
				return e.ValueExpr.Eval(ctx, bc.Lookup)
			})
		}
		return g.Value(e.Name, e.Value)
	case config.ElementAlias:
		return g.Alias(e.Name, e.Target)
	case config.ElementFactory:
		fn, err := a.catalog.Factory(e.Factory)
		if err != nil {
			return err
		}
		f := element.Factory{Name: e.Factory, Fn: fn, Args: e.Args}
		if e.ArgsExpr != nil {
			f.Bind = bindArgs(e.ArgsExpr)
		}
		return g.Element(e.Name, f)
	default:
		return fmt.Errorf("unsupported element kind %s", e.Kind)
	}
}

func (a *assembler) defineOverlay(g *group.Group, o *config.OverlayDef) error {
	kind, err := overlay.ParseKind(o.Kind)
	if err != nil {
		return err
	}

	var transform any
	switch {
	case o.Transform != "":
		t, err := a.catalog.Transform(o.Transform)
		if err != nil {
			return err
		}
		transform = t
	case o.Path != "":
		p, err := nodeid.Parse(o.Path)
		if err != nil {
			return fmt.Errorf("invalid overlay path %q: %w", o.Path, err)
		}
		transform = p
	default:
		return fmt.Errorf("overlay has neither a transform nor a path")
	}
	return g.Overlay(kind, o.Target, transform, o.Args...)
}

// bindArgs evaluates an args expression against the element's scope.
func bindArgs(expr config.Expr) func(context.Context, *element.BuildContext) ([]any, error) {
	return func(ctx context.Context, bc *element.BuildContext) ([]any, error) {
		v, err := expr.Eval(ctx, bc.Lookup)
		if err != nil {
			return nil, err
		}
		switch args := v.(type) {
		case nil:
			return nil, nil
		case []any:
			return args, nil
		default:
			return []any{args}, nil
		}
	}
}

// originError annotates err with where the failing definition came from.
func originError(origin string, p nodeid.Path, err error) error {
	msg := ""
	if origin != "" {
		msg = "defined at " + origin
	}
	return &asmerrors.ConfigError{Path: p.String(), Message: msg, Cause: err}
}
