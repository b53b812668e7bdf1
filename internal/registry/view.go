package registry

import (
	"context"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/nodeid"
)

// View is a lazy handle on a group of a Root.
type View struct {
	root *Root
	path nodeid.Path
}

// Path returns the group's absolute path.
func (v *View) Path() nodeid.Path {
	return v.path
}

// Names returns the group's child names in definition order.
func (v *View) Names() []string {
	node, err := v.root.tree.Find(v.path)
	if err != nil {
		return nil
	}
	return node.Children()
}

// Lookup resolves rel below the group.
func (v *View) Lookup(ctx context.Context, rel nodeid.Path) (any, error) {
	return v.root.Lookup(ctx, v.path.Join(rel))
}

// Get parses a dotted relative path and looks it up below the group.
func (v *View) Get(ctx context.Context, raw string) (any, error) {
	rel, err := nodeid.Parse(raw)
	if err != nil {
		return nil, &asmerrors.NotFoundError{Path: v.path.String() + "." + raw}
	}
	return v.Lookup(ctx, rel)
}

// String returns the group's path.
func (v *View) String() string {
	return "group(" + v.path.String() + ")"
}
