package element

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/overlay"
)

// fakeRoot resolves from a flat map of values.
type fakeRoot struct {
	values  map[string]any
	lookups []string
}

func (r *fakeRoot) Lookup(_ context.Context, p nodeid.Path) (any, error) {
	r.lookups = append(r.lookups, p.String())
	v, ok := r.values[p.String()]
	if !ok {
		return nil, &asmerrors.NotFoundError{Path: p.String()}
	}
	return v, nil
}

func (r *fakeRoot) Has(p nodeid.Path) bool {
	_, ok := r.values[p.String()]
	return ok
}

func (r *fakeRoot) ResolveTransform(_ context.Context, p nodeid.Path) (overlay.Transform, error) {
	return overlay.FromValue(r.values[p.String()])
}

func valueOverlay(fn overlay.Func) overlay.Spec {
	return overlay.Spec{Kind: overlay.Value, Transform: overlay.FunctionOverlay{Fn: fn}}
}

func TestConstruct_AppliesValueChain(t *testing.T) {
	inc := overlay.Func(func(_ context.Context, v any, _ ...any) (any, error) { return v.(int) + 1, nil })
	dbl := overlay.Func(func(_ context.Context, v any, _ ...any) (any, error) { return v.(int) * 2, nil })

	e := New(nodeid.MustParse("n"), Literal{Value: 3}, nil, overlay.Chain{valueOverlay(inc), valueOverlay(dbl)}, nil)
	v, err := e.Construct(context.Background(), &fakeRoot{})
	require.NoError(t, err)
	assert.Equal(t, 8, v)
}

func TestConstruct_WrapsBuilderFailure(t *testing.T) {
	boom := errors.New("boom")
	e := New(nodeid.MustParse("svc.db"), Func(func(context.Context, *BuildContext) (any, error) { return nil, boom }), nil, nil, nil)

	_, err := e.Construct(context.Background(), &fakeRoot{})
	require.ErrorIs(t, err, asmerrors.ErrBuild)
	require.ErrorIs(t, err, boom)

	var buildErr *asmerrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "svc.db", buildErr.Path)
	assert.Equal(t, "build", buildErr.Stage)
}

func TestConstruct_WrapsOverlayFailure(t *testing.T) {
	bad := overlay.Spec{Kind: overlay.Value, Transform: overlay.PathOverlay{Path: nodeid.MustParse("lib.number")}}
	e := New(nodeid.MustParse("x"), Literal{Value: 1}, nil, overlay.Chain{bad}, nil)

	_, err := e.Construct(context.Background(), &fakeRoot{values: map[string]any{"lib.number": 5}})
	require.ErrorIs(t, err, asmerrors.ErrResolution)

	var buildErr *asmerrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "value overlay", buildErr.Stage)
}

func TestApplyReferenceChain_RunsEveryCall(t *testing.T) {
	calls := 0
	count := overlay.Func(func(_ context.Context, v any, _ ...any) (any, error) {
		calls++
		return v, nil
	})
	ref := overlay.Spec{Kind: overlay.Reference, Transform: overlay.FunctionOverlay{Fn: count}}
	e := New(nodeid.MustParse("x"), Literal{Value: 1}, nil, nil, overlay.Chain{ref})

	for i := 0; i < 3; i++ {
		v, err := e.ApplyReferenceChain(context.Background(), &fakeRoot{}, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
	assert.Equal(t, 3, calls)
}

func TestBuildContext_ScopedLookup(t *testing.T) {
	root := &fakeRoot{values: map[string]any{
		"handlers.fizz":   "fizz",
		"handlers.shared": "inner",
		"shared":          "outer",
		"only_top":        "top",
		"lib.util.double": "double",
	}}

	scope := &Scope{Group: nodeid.MustParse("handlers"), ConfigDir: "/etc/app"}
	bc := NewBuildContext(nodeid.MustParse("handlers.buzz"), scope, root)
	ctx := context.Background()

	assert.Equal(t, "/etc/app", bc.ConfigDir())
	assert.Equal(t, "handlers.buzz", bc.Path().String())

	v, err := bc.Lookup(ctx, "fizz")
	require.NoError(t, err)
	assert.Equal(t, "fizz", v)

	v, err = bc.Lookup(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, "inner", v, "siblings shadow ancestors")

	v, err = bc.Lookup(ctx, "only_top")
	require.NoError(t, err)
	assert.Equal(t, "top", v)

	v, err = bc.Lookup(ctx, "lib.util.double")
	require.NoError(t, err)
	assert.Equal(t, "double", v)

	_, err = bc.Lookup(ctx, "missing")
	require.ErrorIs(t, err, asmerrors.ErrNotFound)

	_, err = bc.Lookup(ctx, "a..b")
	require.ErrorIs(t, err, asmerrors.ErrConfig)

	v, err = bc.Root(ctx, nodeid.MustParse("shared"))
	require.NoError(t, err)
	assert.Equal(t, "outer", v)
}

func TestBuilders(t *testing.T) {
	root := &fakeRoot{values: map[string]any{"target": 9}}
	bc := NewBuildContext(nodeid.MustParse("x"), nil, root)
	ctx := context.Background()

	v, err := Alias{Target: nodeid.MustParse("target")}.Build(ctx, bc)
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	f := Factory{Name: "sum", Args: []any{1, 2}, Fn: func(_ context.Context, _ *BuildContext, args ...any) (any, error) {
		return args[0].(int) + args[1].(int), nil
	}}
	v, err = f.Build(ctx, bc)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = Factory{Name: "empty"}.Build(ctx, bc)
	require.Error(t, err)

	bound := f
	bound.Bind = func(ctx context.Context, bc *BuildContext) ([]any, error) {
		v, err := bc.Lookup(ctx, "target")
		return []any{v, 1}, err
	}
	v, err = bound.Build(ctx, bc)
	require.NoError(t, err)
	assert.Equal(t, 10, v, "bound arguments replace Args")

	bound.Bind = func(context.Context, *BuildContext) ([]any, error) { return nil, errors.New("unbound") }
	_, err = bound.Build(ctx, bc)
	require.ErrorContains(t, err, `arguments of factory "sum": unbound`)
}
