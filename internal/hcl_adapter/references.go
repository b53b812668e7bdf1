// This file contains the logic for expressions that refer to other
// elements, such as `args = [handlers, output]`. They are kept unevaluated
// at load time and evaluated whenever the element is built, with every
// reference resolved through the assembly.

package hcl_adapter

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/assemblygo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// goValueType carries an arbitrary resolved Go value through an HCL
// expression. ctyToNative unwraps it.
var goValueType = cty.Capsule("assembly value", reflect.TypeOf((*any)(nil)).Elem())

// goToCty converts a resolved value. Scalars become their cty counterparts
// so functions such as format can use them; anything else is wrapped.
func goToCty(v any) cty.Value {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(x)
	case bool:
		return cty.BoolVal(x)
	case int:
		return cty.NumberIntVal(int64(x))
	case int64:
		return cty.NumberIntVal(x)
	case float64:
		return cty.NumberFloatVal(x)
	default:
		return cty.CapsuleVal(goValueType, &v)
	}
}

// reference is one element named by an expression: the root variable and
// the attribute steps after it.
type reference struct {
	steps []string
	rng   hcl.Range
}

func (r reference) name() string {
	return strings.Join(r.steps, ".")
}

// deferredExpr implements config.Expr for an HCL expression.
type deferredExpr struct {
	expr   hcl.Expression
	parent *hcl.EvalContext
	refs   []reference
	// args makes Eval return an []any the way args attributes convert.
	args bool
}

var _ config.Expr = (*deferredExpr)(nil)

// newDeferredExpr returns nil when expr refers to nothing. Attribute steps
// of a traversal name nested elements: `handlers.fizz` is the element fizz
// of the group handlers. Index and splat steps apply to the resolved value.
func newDeferredExpr(expr hcl.Expression, parent *hcl.EvalContext, args bool) (*deferredExpr, error) {
	traversals := expr.Variables()
	if len(traversals) == 0 {
		return nil, nil
	}

	d := &deferredExpr{expr: expr, parent: parent, args: args}
	seen := make(map[string]bool)
	for _, tr := range traversals {
		ref := reference{steps: []string{tr.RootName()}, rng: tr.SourceRange()}
		for _, step := range tr[1:] {
			attr, ok := step.(hcl.TraverseAttr)
			if !ok {
				break
			}
			ref.steps = append(ref.steps, attr.Name)
		}
		if seen[ref.name()] {
			continue
		}
		seen[ref.name()] = true
		d.refs = append(d.refs, ref)
	}

	for i, a := range d.refs {
		for _, b := range d.refs[i+1:] {
			if isPrefix(a.steps, b.steps) || isPrefix(b.steps, a.steps) {
				return nil, fmt.Errorf("%s: references %q and %q overlap; refer to the nested elements only", b.rng.String(), a.name(), b.name())
			}
		}
	}
	return d, nil
}

func isPrefix(prefix, steps []string) bool {
	return len(prefix) <= len(steps) && slices.Equal(prefix, steps[:len(prefix)])
}

// References implements config.Expr.
func (d *deferredExpr) References() []string {
	names := make([]string, 0, len(d.refs))
	for _, ref := range d.refs {
		names = append(names, ref.name())
	}
	return names
}

// Eval implements config.Expr.
func (d *deferredExpr) Eval(ctx context.Context, lookup config.LookupFunc) (any, error) {
	tree := make(map[string]any)
	for _, ref := range d.refs {
		v, err := lookup(ctx, ref.name())
		if err != nil {
			return nil, fmt.Errorf("%s: reference %q: %w", ref.rng.String(), ref.name(), err)
		}
		insertRef(tree, ref.steps, v)
	}

	evalCtx := d.parent.NewChild()
	evalCtx.Variables = make(map[string]cty.Value, len(tree))
	for name, node := range tree {
		evalCtx.Variables[name] = refValue(node)
	}

	val, diags := d.expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if d.args {
		return argsToNative(val)
	}
	return ctyToNative(val)
}

// refLeaf marks a resolved value in the variable tree, so resolved maps are
// not mistaken for intermediate groups.
type refLeaf struct {
	value any
}

func insertRef(tree map[string]any, steps []string, v any) {
	for _, step := range steps[:len(steps)-1] {
		next, ok := tree[step].(map[string]any)
		if !ok {
			next = make(map[string]any)
			tree[step] = next
		}
		tree = next
	}
	tree[steps[len(steps)-1]] = refLeaf{value: v}
}

func refValue(node any) cty.Value {
	inner, ok := node.(map[string]any)
	if !ok {
		return goToCty(node.(refLeaf).value)
	}
	attrs := make(map[string]cty.Value, len(inner))
	for name, child := range inner {
		attrs[name] = refValue(child)
	}
	return cty.ObjectVal(attrs)
}
