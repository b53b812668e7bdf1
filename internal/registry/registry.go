package registry

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/group"
	"github.com/vk/assemblygo/internal/inmemorystore"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/nodestore"
	"github.com/vk/assemblygo/internal/overlay"
)

// Root resolves paths of a finished tree. Lookups may run on several
// goroutines: concurrent requests for an element that is not yet
// materialized share one build.
type Root struct {
	tree   *group.Tree
	store  nodestore.Store
	builds singleflight.Group
}

// Option configures a Root.
type Option func(*Root)

// WithStore replaces the default in-memory memo table.
func WithStore(s nodestore.Store) Option {
	return func(r *Root) {
		r.store = s
	}
}

// New creates a Root over a finished tree.
func New(tree *group.Tree, opts ...Option) *Root {
	r := &Root{
		tree:  tree,
		store: inmemorystore.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tree returns the underlying definition tree.
func (r *Root) Tree() *group.Tree {
	return r.tree
}

// ConfigDir returns the config directory of the root group.
func (r *Root) ConfigDir() string {
	return r.tree.ConfigDir()
}

// Has reports whether p names a group or an element.
func (r *Root) Has(p nodeid.Path) bool {
	return r.tree.Has(p)
}

// Paths lists every element path in sorted order.
func (r *Root) Paths() []nodeid.Path {
	return r.tree.Elements()
}

// Get parses raw and looks it up.
func (r *Root) Get(ctx context.Context, raw string) (any, error) {
	p, err := nodeid.Parse(raw)
	if err != nil {
		return nil, &asmerrors.NotFoundError{Path: raw}
	}
	return r.Lookup(ctx, p)
}

// Lookup resolves p. For an element it returns the memoized final value
// passed through the element's reference chain; for a group it returns a
// View.
func (r *Root) Lookup(ctx context.Context, p nodeid.Path) (any, error) {
	node, err := r.tree.Find(p)
	if err != nil {
		return nil, err
	}
	if node.IsGroup() {
		return &View{root: r, path: p}, nil
	}

	v, err := r.materialize(ctx, node)
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Lookup: applying reference overlays.", "path", p.String(), "overlays", len(node.Element().ReferenceChain()))
	return node.Element().ApplyReferenceChain(ctx, r, v)
}

// Materialize returns the final value of the element at p without applying
// reference overlays. Groups materialize to their View.
func (r *Root) Materialize(ctx context.Context, p nodeid.Path) (any, error) {
	node, err := r.tree.Find(p)
	if err != nil {
		return nil, err
	}
	if node.IsGroup() {
		return &View{root: r, path: p}, nil
	}
	return r.materialize(ctx, node)
}

// View returns the view of the group at p.
func (r *Root) View(p nodeid.Path) (*View, error) {
	node, err := r.tree.Find(p)
	if err != nil {
		return nil, err
	}
	if !node.IsGroup() {
		return nil, &asmerrors.NotFoundError{Path: p.String(), Missing: p.String() + " (group)"}
	}
	return &View{root: r, path: p}, nil
}

func (r *Root) materialize(ctx context.Context, node *group.Node) (any, error) {
	p := node.Path()
	logger := ctxlog.FromContext(ctx).With("path", p.String())

	if v, ok, err := r.store.GetValue(ctx, p); err != nil {
		return nil, err
	} else if ok {
		logger.Debug("Materialize: memoized value reused.")
		return v, nil
	}

	stack := stackFromContext(ctx)
	if stack.contains(p) {
		return nil, stack.cycleError(p)
	}

	v, err, shared := r.builds.Do(p.String(), func() (any, error) {
		return r.build(ctx, node)
	})
	if shared {
		logger.Debug("Materialize: joined a build already in flight.")
	}
	return v, err
}

// build constructs the element unless another caller stored its value
// first. Unless the value is stored, the element is left pending, even
// when the builder panics, so the next lookup retries.
func (r *Root) build(ctx context.Context, node *group.Node) (_ any, err error) {
	p := node.Path()
	logger := ctxlog.FromContext(ctx).With("path", p.String())

	if v, ok, err := r.store.GetValue(ctx, p); err != nil || ok {
		return v, err
	}
	if err := r.store.SetStatus(ctx, p, nodestore.StatusBuilding); err != nil {
		return nil, err
	}

	stored := false
	defer func() {
		if stored {
			return
		}
		if resetErr := r.store.SetStatus(ctx, p, nodestore.StatusPending); resetErr != nil && err == nil {
			err = resetErr
		}
	}()

	v, err := node.Element().Construct(withFrame(ctx, p), r)
	if err != nil {
		logger.Debug("Materialize: build failed; element left unmaterialized.", "error", err)
		return nil, err
	}
	if err := r.store.SetValue(ctx, p, v); err != nil {
		return nil, err
	}
	stored = true
	logger.Debug("Materialize: element materialized.")
	return v, nil
}

// ResolveTransform implements overlay.Resolver. The element at p is looked
// up on every application, so its own reference overlays apply each time,
// and its value is dispatched through overlay.FromValue.
func (r *Root) ResolveTransform(ctx context.Context, p nodeid.Path) (overlay.Transform, error) {
	v, err := r.Lookup(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, isGroup := v.(*View); isGroup {
		return nil, &asmerrors.ResolutionError{Transform: p.String(), Message: "a group cannot be used as an overlay transform"}
	}

	t, err := overlay.FromValue(v)
	if err != nil {
		return nil, &asmerrors.ResolutionError{Transform: p.String(), Cause: err}
	}
	return t, nil
}
