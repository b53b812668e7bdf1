package element

import (
	"context"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/overlay"
)

// Resolver is the part of the registry visible to elements.
type Resolver interface {
	overlay.Resolver
	// Lookup resolves an absolute path, applying reference overlays.
	Lookup(ctx context.Context, p nodeid.Path) (any, error)
	// Has reports whether a definition exists at p.
	Has(p nodeid.Path) bool
}

// Scope is the immutable context a group hands to everything defined in it.
type Scope struct {
	Group     nodeid.Path
	ConfigDir string
}

// BuildContext is passed to a Builder for a single construction.
type BuildContext struct {
	path  nodeid.Path
	scope *Scope
	root  Resolver
}

// NewBuildContext creates the context for building the element at path.
func NewBuildContext(path nodeid.Path, scope *Scope, root Resolver) *BuildContext {
	if scope == nil {
		scope = &Scope{Group: path.Parent()}
	}
	return &BuildContext{path: path, scope: scope, root: root}
}

// Path returns the path of the element being built.
func (bc *BuildContext) Path() nodeid.Path {
	return bc.path
}

// ConfigDir returns the config directory inherited from the enclosing group.
func (bc *BuildContext) ConfigDir() string {
	return bc.scope.ConfigDir
}

// Lookup resolves a name the way definitions refer to each other: first
// relative to the element's own group, then relative to each enclosing
// group up to the root. name may be dotted.
func (bc *BuildContext) Lookup(ctx context.Context, name string) (any, error) {
	rel, err := nodeid.Parse(name)
	if err != nil {
		return nil, &asmerrors.ConfigError{Path: bc.path.String(), Message: "invalid reference", Cause: err}
	}
	if rel.IsRoot() {
		return nil, &asmerrors.NotFoundError{Path: name}
	}

	scope := bc.scope.Group
	for {
		candidate := scope.Join(rel)
		if bc.root.Has(candidate) {
			return bc.root.Lookup(ctx, candidate)
		}
		if scope.IsRoot() {
			break
		}
		scope = scope.Parent()
	}
	return nil, &asmerrors.NotFoundError{Path: bc.scope.Group.Join(rel).String(), Missing: name}
}

// Root resolves an absolute path.
func (bc *BuildContext) Root(ctx context.Context, p nodeid.Path) (any, error) {
	return bc.root.Lookup(ctx, p)
}
