package group

import (
	"sort"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/element"
	"github.com/vk/assemblygo/internal/nodeid"
)

// Node is a position in a finished tree: a group or an element.
type Node struct {
	path     nodeid.Path
	scope    *element.Scope
	elem     *element.Element
	names    []string
	children map[string]*Node
}

// Path returns the node's path.
func (n *Node) Path() nodeid.Path {
	return n.path
}

// IsGroup reports whether the node is a group.
func (n *Node) IsGroup() bool {
	return n.elem == nil
}

// Element returns the element, or nil for groups.
func (n *Node) Element() *element.Element {
	return n.elem
}

// Scope returns the build scope of a group node.
func (n *Node) Scope() *element.Scope {
	return n.scope
}

// Children returns the child names of a group in definition order.
func (n *Node) Children() []string {
	return append([]string(nil), n.names...)
}

// Child returns a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Tree is a finished, immutable assembly definition.
type Tree struct {
	root     *Node
	elements map[string]*element.Element
}

// Root returns the root group node.
func (t *Tree) Root() *Node {
	return t.root
}

// ConfigDir returns the config directory of the root group.
func (t *Tree) ConfigDir() string {
	return t.root.scope.ConfigDir
}

// Find walks the tree along p.
func (t *Tree) Find(p nodeid.Path) (*Node, error) {
	n := t.root
	for _, seg := range p.Segments() {
		next, ok := n.children[seg]
		if !ok {
			return nil, &asmerrors.NotFoundError{Path: p.String(), Missing: n.path.Child(seg).String()}
		}
		n = next
	}
	return n, nil
}

// Has reports whether p names a group or an element.
func (t *Tree) Has(p nodeid.Path) bool {
	_, err := t.Find(p)
	return err == nil
}

// Element returns the element defined at p.
func (t *Tree) Element(p nodeid.Path) (*element.Element, bool) {
	e, ok := t.elements[p.String()]
	return e, ok
}

// Elements returns every element path in sorted order.
func (t *Tree) Elements() []nodeid.Path {
	keys := make([]string, 0, len(t.elements))
	for k := range t.elements {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	paths := make([]nodeid.Path, len(keys))
	for i, k := range keys {
		paths[i] = t.elements[k].Path()
	}
	return paths
}
