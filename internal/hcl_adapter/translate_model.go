// This file contains the logic for translating HCL schema structs into the
// format-agnostic assembly model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/assemblygo/internal/config"
	"github.com/vk/assemblygo/internal/ctxlog"
)

type translator struct {
	file    string
	evalCtx *hcl.EvalContext
}

// group translates a group block and everything nested in it.
func (t *translator) group(ctx context.Context, b *groupBlock) (*config.GroupDef, error) {
	logger := ctxlog.FromContext(ctx).With("group", b.Name)
	logger.Debug("Translating HCL group to internal config model.")

	g := &config.GroupDef{Name: b.Name, Origin: t.origin(b.Remain)}
	if b.ConfigDir != nil {
		g.ConfigDir = config.ResolveDir(t.file, *b.ConfigDir)
	}
	if b.Name != "" {
		if err := rejectUnknown(b.Remain, groupBlockTypes...); err != nil {
			return nil, fmt.Errorf("in group '%s': %w", b.Name, err)
		}
	}

	for _, e := range b.Elements {
		if err := rejectUnknown(e.Remain); err != nil {
			return nil, fmt.Errorf("in element '%s': %w", e.Name, err)
		}
		def := &config.ElementDef{
			Name:    e.Name,
			Kind:    config.ElementFactory,
			Factory: e.Factory,
			Origin:  t.origin(e.Remain),
		}
		deferred, err := t.deferred(ctx, e.Args, true, "element", e.Name)
		if err != nil {
			return nil, err
		}
		if deferred != nil {
			def.ArgsExpr = deferred
		} else if def.Args, err = t.args(ctx, e.Args, "element", e.Name); err != nil {
			return nil, err
		}
		g.Elements = append(g.Elements, def)
	}

	for _, v := range b.Values {
		if err := rejectUnknown(v.Remain); err != nil {
			return nil, fmt.Errorf("in value '%s': %w", v.Name, err)
		}
		def := &config.ElementDef{
			Name:   v.Name,
			Kind:   config.ElementValue,
			Origin: t.origin(v.Remain),
		}
		deferred, err := t.deferred(ctx, v.Value, false, "value", v.Name)
		if err != nil {
			return nil, err
		}
		if deferred != nil {
			def.ValueExpr = deferred
			g.Elements = append(g.Elements, def)
			continue
		}

		val, diags := v.Value.Value(t.evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for '%s': %w", v.Name, diags)
		}
		if def.Value, err = ctyToNative(val); err != nil {
			return nil, fmt.Errorf("in value '%s': %w", v.Name, err)
		}
		g.Elements = append(g.Elements, def)
	}

	for _, a := range b.Aliases {
		if err := rejectUnknown(a.Remain); err != nil {
			return nil, fmt.Errorf("in alias '%s': %w", a.Name, err)
		}
		g.Elements = append(g.Elements, &config.ElementDef{
			Name:   a.Name,
			Kind:   config.ElementAlias,
			Target: a.Target,
			Origin: t.origin(a.Remain),
		})
	}

	for i, o := range b.Overlays {
		def, err := t.overlay(ctx, o)
		if err != nil {
			return nil, fmt.Errorf("in overlay #%d of group '%s': %w", i, b.Name, err)
		}
		g.Overlays = append(g.Overlays, def)
	}

	for _, sub := range b.Groups {
		subDef, err := t.group(ctx, sub)
		if err != nil {
			return nil, err
		}
		g.Groups = append(g.Groups, subDef)
	}
	return g, nil
}

// overlay translates an overlay block.
func (t *translator) overlay(ctx context.Context, o *overlayBlock) (*config.OverlayDef, error) {
	if err := rejectUnknown(o.Remain); err != nil {
		return nil, err
	}
	def := &config.OverlayDef{Kind: o.Kind, Target: o.Target, Origin: t.origin(o.Remain)}
	switch {
	case o.Transform != nil && o.Path != nil:
		return nil, fmt.Errorf("only one of 'transform' and 'path' may be set")
	case o.Transform != nil:
		def.Transform = *o.Transform
	case o.Path != nil:
		def.Path = *o.Path
	default:
		return nil, fmt.Errorf("one of 'transform' or 'path' is required")
	}

	args, err := t.args(ctx, o.Args, "overlay", o.Kind)
	if err != nil {
		return nil, err
	}
	def.Args = args
	return def, nil
}

// args evaluates an optional args attribute.
func (t *translator) args(ctx context.Context, expr hcl.Expression, ownerKind, ownerName string) ([]any, error) {
	if !isExprDefined(ctx, expr, "args") {
		return nil, nil
	}
	val, diags := expr.Value(t.evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid args for %s '%s': %w", ownerKind, ownerName, diags)
	}
	args, err := argsToNative(val)
	if err != nil {
		return nil, fmt.Errorf("in args of %s '%s': %w", ownerKind, ownerName, err)
	}
	return args, nil
}

// deferred returns a build-time expression when expr refers to other
// elements, and nil when it can be evaluated now.
func (t *translator) deferred(ctx context.Context, expr hcl.Expression, args bool, ownerKind, ownerName string) (config.Expr, error) {
	attrName := "value"
	if args {
		attrName = "args"
	}
	if !isExprDefined(ctx, expr, attrName) {
		return nil, nil
	}
	d, err := newDeferredExpr(expr, t.evalCtx, args)
	if err != nil {
		return nil, fmt.Errorf("in %s '%s': %w", ownerKind, ownerName, err)
	}
	if d == nil {
		return nil, nil
	}
	ctxlog.FromContext(ctx).Debug("Expression refers to other elements; evaluating it at build time.", "owner", ownerKind+" "+ownerName, "references", d.References())
	return d, nil
}

func (t *translator) origin(body hcl.Body) string {
	if body == nil {
		return t.file
	}
	r := body.MissingItemRange()
	if r.Filename == "" {
		return t.file
	}
	return fmt.Sprintf("%s:%d", r.Filename, r.Start.Line)
}

// isExprDefined checks if an HCL expression was actually present in the source
// code. The decoder populates omitted optional fields with zero-width
// placeholder expressions, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.", "attribute", attrName, "hcl_range", exprRange.String(), "is_defined", isDefined)
	return isDefined
}

// groupBlockTypes are the block types a file or a group may contain.
var groupBlockTypes = []string{"group", "element", "value", "alias", "overlay"}

// rejectUnknown reports attributes left over after decoding and blocks of
// a type other than allowed. A remain body still lists the blocks that were
// decoded, so JustAttributes complains about them and its diagnostics are
// not used.
func rejectUnknown(body hcl.Body, allowed ...string) error {
	if body == nil {
		return nil
	}
	attrs, _ := body.JustAttributes()
	if len(attrs) > 0 {
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("%s: unsupported argument %q", attrs[names[0]].Range.String(), names[0])
	}

	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	for _, block := range syntaxBody.Blocks {
		if !slices.Contains(allowed, block.Type) {
			return fmt.Errorf("%s: unsupported block %q", block.TypeRange.String(), block.Type)
		}
	}
	return nil
}
