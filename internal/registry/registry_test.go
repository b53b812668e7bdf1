package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/element"
	"github.com/vk/assemblygo/internal/group"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/overlay"
)

type service struct {
	name string
}

// newRoot finishes g and wraps it in a Root.
func newRoot(t *testing.T, g *group.Group) *Root {
	t.Helper()
	tree, err := g.Finish(context.Background())
	require.NoError(t, err)
	return New(tree)
}

func TestLookup_MaterializesOnce(t *testing.T) {
	builds := 0
	g := group.New()
	require.NoError(t, g.Func("svc", func(context.Context, *element.BuildContext) (any, error) {
		builds++
		return &service{name: "svc"}, nil
	}))
	root := newRoot(t, g)
	ctx := context.Background()

	first, err := root.Lookup(ctx, nodeid.MustParse("svc"))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		again, err := root.Lookup(ctx, nodeid.MustParse("svc"))
		require.NoError(t, err)
		assert.Same(t, first, again)
	}
	direct, err := root.Materialize(ctx, nodeid.MustParse("svc"))
	require.NoError(t, err)
	assert.Same(t, first, direct)
	assert.Equal(t, 1, builds)
}

func TestLookup_ReferenceChainRunsPerLookup(t *testing.T) {
	builds, valueRuns, refRuns := 0, 0, 0
	g := group.New()
	require.NoError(t, g.Func("svc", func(context.Context, *element.BuildContext) (any, error) {
		builds++
		return "svc", nil
	}))
	require.NoError(t, g.Overlay(overlay.Value, "svc", func(v any) any { valueRuns++; return v }))
	require.NoError(t, g.Overlay(overlay.Reference, "svc", func(v any) any { refRuns++; return v }))
	root := newRoot(t, g)

	const n = 5
	for i := 0; i < n; i++ {
		_, err := root.Lookup(context.Background(), nodeid.MustParse("svc"))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, valueRuns)
	assert.Equal(t, n, refRuns)

	_, err := root.Materialize(context.Background(), nodeid.MustParse("svc"))
	require.NoError(t, err)
	assert.Equal(t, n, refRuns, "Materialize does not apply reference overlays")
}

func TestLookup_ValueChainOrder(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Value("n", 3))
	require.NoError(t, g.Overlay(overlay.Value, "n", func(v any) any { return v.(int) + 1 }))
	require.NoError(t, g.Overlay(overlay.Value, "n", func(v any) any { return v.(int) * 2 }))
	root := newRoot(t, g)

	v, err := root.Lookup(context.Background(), nodeid.MustParse("n"))
	require.NoError(t, err)
	assert.Equal(t, 8, v)
}

func TestLookup_ReferenceChainDoesNotChangeMemo(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Value("n", 10))
	require.NoError(t, g.Overlay(overlay.Reference, "n", func(v any) any { return v.(int) + 1 }))
	root := newRoot(t, g)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		v, err := root.Lookup(ctx, nodeid.MustParse("n"))
		require.NoError(t, err)
		assert.Equal(t, 11, v)
	}
	v, err := root.Materialize(ctx, nodeid.MustParse("n"))
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestLookup_NotFound(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Group("handlers", func(h *group.Group) error { return h.Value("fizz", 1) }))
	root := newRoot(t, g)

	for _, raw := range []string{"nope", "handlers.nope", "handlers.fizz.deeper"} {
		_, err := root.Get(context.Background(), raw)
		require.ErrorIs(t, err, asmerrors.ErrNotFound, raw)
	}
	_, err := root.Get(context.Background(), "bad..path")
	require.ErrorIs(t, err, asmerrors.ErrNotFound)
}

func TestLookup_SelfReferenceIsCycle(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Func("a", func(ctx context.Context, bc *element.BuildContext) (any, error) {
		return bc.Lookup(ctx, "a")
	}))
	root := newRoot(t, g)

	_, err := root.Lookup(context.Background(), nodeid.MustParse("a"))
	require.ErrorIs(t, err, asmerrors.ErrCyclicDependency)

	var cyc *asmerrors.CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"a", "a"}, cyc.Cycle)
}

func TestLookup_IndirectCycle(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Value("entry", "ok"))
	require.NoError(t, g.Func("a", func(ctx context.Context, bc *element.BuildContext) (any, error) {
		return bc.Lookup(ctx, "b")
	}))
	require.NoError(t, g.Func("b", func(ctx context.Context, bc *element.BuildContext) (any, error) {
		if _, err := bc.Lookup(ctx, "entry"); err != nil {
			return nil, err
		}
		return bc.Lookup(ctx, "a")
	}))
	root := newRoot(t, g)

	_, err := root.Lookup(context.Background(), nodeid.MustParse("a"))
	var cyc *asmerrors.CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"a", "b", "a"}, cyc.Cycle)

	v, err := root.Lookup(context.Background(), nodeid.MustParse("entry"))
	require.NoError(t, err, "unrelated elements still resolve")
	assert.Equal(t, "ok", v)
}

func TestLookup_FailedBuildIsRetried(t *testing.T) {
	attempts := 0
	g := group.New()
	require.NoError(t, g.Func("flaky", func(context.Context, *element.BuildContext) (any, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("transient")
		}
		return "up", nil
	}))
	root := newRoot(t, g)
	ctx := context.Background()

	_, err := root.Lookup(ctx, nodeid.MustParse("flaky"))
	require.ErrorIs(t, err, asmerrors.ErrBuild)
	var buildErr *asmerrors.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "flaky", buildErr.Path)

	v, err := root.Lookup(ctx, nodeid.MustParse("flaky"))
	require.NoError(t, err)
	assert.Equal(t, "up", v)

	_, err = root.Lookup(ctx, nodeid.MustParse("flaky"))
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestLookup_FailedValueOverlayIsRetried(t *testing.T) {
	builds, fail := 0, true
	g := group.New()
	require.NoError(t, g.Func("x", func(context.Context, *element.BuildContext) (any, error) {
		builds++
		return 1, nil
	}))
	require.NoError(t, g.Overlay(overlay.Value, "x", func(v any) (any, error) {
		if fail {
			return nil, errors.New("overlay failed")
		}
		return v, nil
	}))
	root := newRoot(t, g)

	_, err := root.Lookup(context.Background(), nodeid.MustParse("x"))
	require.ErrorIs(t, err, asmerrors.ErrBuild)

	fail = false
	_, err = root.Lookup(context.Background(), nodeid.MustParse("x"))
	require.NoError(t, err)
	assert.Equal(t, 2, builds, "build and value overlays form one materialize step")
}

func TestLookup_PanickingBuildIsRetried(t *testing.T) {
	calls := 0
	g := group.New()
	require.NoError(t, g.Func("svc", func(context.Context, *element.BuildContext) (any, error) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return "ok", nil
	}))
	root := newRoot(t, g)
	ctx := context.Background()

	assert.Panics(t, func() { _, _ = root.Get(ctx, "svc") })

	v, err := root.Get(ctx, "svc")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestLookup_ConcurrentLookupsShareOneBuild(t *testing.T) {
	var builds atomic.Int32
	var applications atomic.Int32
	g := group.New()
	require.NoError(t, g.Func("svc", func(context.Context, *element.BuildContext) (any, error) {
		builds.Add(1)
		return &service{name: "svc"}, nil
	}))
	require.NoError(t, g.Value("tag", func(v any) any {
		applications.Add(1)
		return v
	}))
	require.NoError(t, g.Overlay(overlay.Reference, "svc", nodeid.MustParse("tag")))
	root := newRoot(t, g)
	ctx := context.Background()

	const workers = 8
	results := make([]any, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = root.Get(ctx, "svc")
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, int32(1), builds.Load())
	assert.Equal(t, int32(workers), applications.Load())
}

func TestLookup_GroupReturnsView(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Group("handlers", func(h *group.Group) error {
		if err := h.Value("fizz", "F"); err != nil {
			return err
		}
		return h.Group("nested", func(n *group.Group) error { return n.Value("deep", "D") })
	}))
	require.NoError(t, g.Alias("exported", "handlers"))
	root := newRoot(t, g)
	ctx := context.Background()

	v, err := root.Lookup(ctx, nodeid.MustParse("handlers"))
	require.NoError(t, err)
	view, ok := v.(*View)
	require.True(t, ok)
	assert.Equal(t, "handlers", view.Path().String())
	assert.Equal(t, []string{"fizz", "nested"}, view.Names())

	fizz, err := view.Get(ctx, "fizz")
	require.NoError(t, err)
	assert.Equal(t, "F", fizz)

	deep, err := view.Lookup(ctx, nodeid.MustParse("nested.deep"))
	require.NoError(t, err)
	assert.Equal(t, "D", deep)

	exported, err := root.Lookup(ctx, nodeid.MustParse("exported"))
	require.NoError(t, err)
	require.IsType(t, &View{}, exported)
	assert.Equal(t, "handlers", exported.(*View).Path().String())

	_, err = root.View(nodeid.MustParse("handlers.fizz"))
	require.ErrorIs(t, err, asmerrors.ErrNotFound)
}

type upper struct{}

func (upper) New(_ context.Context, current any, args ...any) (any, error) {
	return &service{name: current.(string) + args[0].(string)}, nil
}

func TestLookup_PathTransforms(t *testing.T) {
	resolutions := 0
	g := group.New()
	require.NoError(t, g.Group("lib", func(lib *group.Group) error {
		if err := lib.Value("suffix", func(v any, args ...any) (any, error) { return v.(string) + args[0].(string), nil }); err != nil {
			return err
		}
		if err := lib.Value("wrap", upper{}); err != nil {
			return err
		}
		if err := lib.Value("number", 7); err != nil {
			return err
		}
		return lib.Overlay(overlay.Reference, "suffix", func(v any) any { resolutions++; return v })
	}))
	require.NoError(t, g.Value("a", "x"))
	require.NoError(t, g.Value("b", "y"))
	require.NoError(t, g.Value("c", "z"))
	require.NoError(t, g.Value("d", "w"))
	require.NoError(t, g.Overlay(overlay.Value, "a", nodeid.MustParse("lib.suffix"), "!"))
	require.NoError(t, g.Overlay(overlay.Value, "b", nodeid.MustParse("lib.suffix"), "?"))
	require.NoError(t, g.Overlay(overlay.Value, "c", nodeid.MustParse("lib.wrap"), "+"))
	require.NoError(t, g.Overlay(overlay.Value, "d", nodeid.MustParse("lib.number")))
	root := newRoot(t, g)
	ctx := context.Background()

	a, err := root.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "x!", a)

	b, err := root.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "y?", b)
	assert.Equal(t, 2, resolutions, "the transform is looked up on every application")

	c, err := root.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, &service{name: "z+"}, c)

	_, err = root.Get(ctx, "d")
	require.ErrorIs(t, err, asmerrors.ErrResolution)
	require.ErrorIs(t, err, asmerrors.ErrBuild)
}

func TestResolveTransform_GroupIsNotATransform(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Group("lib", nil))
	root := newRoot(t, g)

	_, err := root.ResolveTransform(context.Background(), nodeid.MustParse("lib"))
	require.ErrorIs(t, err, asmerrors.ErrResolution)
}

func TestBuildContext_ConfigDirAndSiblings(t *testing.T) {
	g := group.New()
	require.NoError(t, g.SetConfigDir("/srv/config"))
	require.NoError(t, g.Value("port", 8080))
	require.NoError(t, g.Group("http", func(h *group.Group) error {
		return h.Func("addr", func(ctx context.Context, bc *element.BuildContext) (any, error) {
			port, err := bc.Lookup(ctx, "port")
			if err != nil {
				return nil, err
			}
			return map[string]any{"dir": bc.ConfigDir(), "port": port}, nil
		})
	}))
	root := newRoot(t, g)

	v, err := root.Get(context.Background(), "http.addr")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"dir": "/srv/config", "port": 8080}, v)
	assert.Equal(t, "/srv/config", root.ConfigDir())
}

func TestPaths_Sorted(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Value("zeta", 1))
	require.NoError(t, g.Group("alpha", func(a *group.Group) error { return a.Value("b", 2) }))
	root := newRoot(t, g)

	var got []string
	for _, p := range root.Paths() {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{"alpha.b", "zeta"}, got)
}
