package assembler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/internal/config"
	"github.com/vk/assemblygo/internal/element"
	"github.com/vk/assemblygo/internal/group"
	"github.com/vk/assemblygo/internal/registry"
)

type testModule struct{}

func (testModule) Register(c *catalog.Catalog) {
	c.RegisterFactory("test.join", func(ctx context.Context, bc *element.BuildContext, args ...any) (any, error) {
		return fmt.Sprint(args...), nil
	})
	c.RegisterFactory("test.dir", func(ctx context.Context, bc *element.BuildContext, args ...any) (any, error) {
		return bc.ConfigDir(), nil
	})
	c.RegisterTransform("test.suffix", func(v any, args ...any) (any, error) {
		return v.(string) + args[0].(string), nil
	})
}

func newCatalog() *catalog.Catalog {
	c := catalog.New()
	c.Load(testModule{})
	return c
}

func TestBuild(t *testing.T) {
	model := &config.Model{
		ConfigDir: "/srv",
		Root: &config.GroupDef{
			Elements: []*config.ElementDef{
				{Name: "suffix", Kind: config.ElementValue, Value: func(v any) any { return v.(string) + "?" }},
			},
			Groups: []*config.GroupDef{{
				Name: "app",
				Elements: []*config.ElementDef{
					{Name: "joined", Kind: config.ElementFactory, Factory: "test.join", Args: []any{"a", "b"}},
					{Name: "dir", Kind: config.ElementFactory, Factory: "test.dir"},
					{Name: "again", Kind: config.ElementAlias, Target: "app.joined"},
				},
				Groups: []*config.GroupDef{{
					Name:      "inner",
					ConfigDir: "/inner",
					Elements: []*config.ElementDef{
						{Name: "dir", Kind: config.ElementFactory, Factory: "test.dir"},
					},
				}},
				Overlays: []*config.OverlayDef{
					{Kind: "value", Target: "joined", Transform: "test.suffix", Args: []any{"!"}},
					{Kind: "reference", Target: "joined", Path: "suffix"},
				},
			}},
		},
	}

	tree, err := Build(context.Background(), model, newCatalog())
	require.NoError(t, err)
	root := registry.New(tree)
	ctx := context.Background()

	joined, err := root.Get(ctx, "app.joined")
	require.NoError(t, err)
	assert.Equal(t, "ab!?", joined)

	again, err := root.Get(ctx, "app.again")
	require.NoError(t, err)
	assert.Equal(t, "ab!?", again, "alias resolves through the target's reference chain")

	dir, err := root.Get(ctx, "app.dir")
	require.NoError(t, err)
	assert.Equal(t, "/srv", dir)

	inner, err := root.Get(ctx, "app.inner.dir")
	require.NoError(t, err)
	assert.Equal(t, "/inner", inner)
}

// lookupExpr is a config.Expr resolving its references into a slice.
type lookupExpr []string

func (e lookupExpr) References() []string { return e }

func (e lookupExpr) Eval(ctx context.Context, lookup config.LookupFunc) (any, error) {
	out := make([]any, 0, len(e))
	for _, name := range e {
		v, err := lookup(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func TestBuild_Expressions(t *testing.T) {
	model := &config.Model{Root: &config.GroupDef{
		Elements: []*config.ElementDef{
			{Name: "name", Kind: config.ElementValue, Value: "x"},
		},
		Groups: []*config.GroupDef{{
			Name: "app",
			Elements: []*config.ElementDef{
				{Name: "joined", Kind: config.ElementFactory, Factory: "test.join", ArgsExpr: lookupExpr{"name", "name"}},
				{Name: "list", Kind: config.ElementValue, ValueExpr: lookupExpr{"joined"}},
				{Name: "broken", Kind: config.ElementFactory, Factory: "test.join", ArgsExpr: lookupExpr{"nowhere"}},
			},
		}},
	}}

	tree, err := Build(context.Background(), model, newCatalog())
	require.NoError(t, err)
	root := registry.New(tree)
	ctx := context.Background()

	joined, err := root.Get(ctx, "app.joined")
	require.NoError(t, err)
	assert.Equal(t, "xx", joined)

	list, err := root.Get(ctx, "app.list")
	require.NoError(t, err)
	assert.Equal(t, []any{"xx"}, list)

	_, err = root.Get(ctx, "app.broken")
	require.ErrorIs(t, err, asmerrors.ErrNotFound)
	require.ErrorIs(t, err, asmerrors.ErrBuild)
}

func TestDefine_IntoExistingGroup(t *testing.T) {
	g := group.New()
	require.NoError(t, g.Value("native", 1))
	model := &config.Model{Root: &config.GroupDef{
		Elements: []*config.ElementDef{{Name: "loaded", Kind: config.ElementValue, Value: 2}},
	}}
	require.NoError(t, Define(context.Background(), g, model, newCatalog()))

	tree, err := g.Finish(context.Background())
	require.NoError(t, err)
	assert.Len(t, tree.Elements(), 2)
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		root    *config.GroupDef
		wantErr string
	}{
		{
			name:    "unknown factory",
			root:    &config.GroupDef{Elements: []*config.ElementDef{{Name: "x", Kind: config.ElementFactory, Factory: "nope", Origin: "a.hcl:3"}}},
			wantErr: `unknown factory "nope"`,
		},
		{
			name:    "unknown transform",
			root:    &config.GroupDef{Overlays: []*config.OverlayDef{{Kind: "value", Transform: "nope"}}},
			wantErr: `unknown transform "nope"`,
		},
		{
			name:    "invalid overlay kind",
			root:    &config.GroupDef{Overlays: []*config.OverlayDef{{Kind: "sideways", Transform: "test.suffix"}}},
			wantErr: `unknown overlay kind "sideways"`,
		},
		{
			name:    "invalid overlay path",
			root:    &config.GroupDef{Overlays: []*config.OverlayDef{{Kind: "value", Path: "a..b"}}},
			wantErr: `invalid overlay path "a..b"`,
		},
		{
			name: "duplicate names",
			root: &config.GroupDef{
				Elements: []*config.ElementDef{{Name: "x", Kind: config.ElementValue, Value: 1}},
				Groups:   []*config.GroupDef{{Name: "x"}},
			},
			wantErr: `"x"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(context.Background(), &config.Model{Root: tc.root}, newCatalog())
			require.Error(t, err)
			assert.ErrorIs(t, err, asmerrors.ErrConfig)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
