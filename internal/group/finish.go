package group

import (
	"context"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/element"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/overlay"
)

// finisher carries the state of a single Finish pass.
type finisher struct {
	tree     *Tree
	matches  map[*overlay.Spec]int
	declared []*overlay.Spec
	stack    map[*Group]bool
}

// Finish freezes g and every group reachable from it, binds overlays to
// the elements they select, and returns the resulting tree. g becomes the
// root group.
func (g *Group) Finish(ctx context.Context) (*Tree, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Finish: binding overlays to elements.")

	f := &finisher{
		tree:    &Tree{elements: make(map[string]*element.Element)},
		matches: make(map[*overlay.Spec]int),
		stack:   make(map[*Group]bool),
	}

	dir := ""
	if g.configDir != nil {
		dir = *g.configDir
	}
	root, err := f.walk(g, nodeid.Root, dir, nil)
	if err != nil {
		return nil, err
	}
	f.tree.root = root

	for _, s := range f.declared {
		if f.matches[s] == 0 {
			logger.Warn("Overlay matches no element.", "scope", s.Scope.String(), "target", s.Target.String(), "kind", s.Kind.String(), "transform", s.Transform.String())
		}
	}

	logger.Debug("Finish: tree frozen.", "elements", len(f.tree.elements), "overlays", len(f.declared))
	return f.tree, nil
}

func (f *finisher) walk(g *Group, path nodeid.Path, configDir string, inherited []*overlay.Spec) (*Node, error) {
	if f.stack[g] {
		return nil, &asmerrors.ConfigError{Path: path.String(), Message: "group is mounted inside itself"}
	}
	f.stack[g] = true
	defer delete(f.stack, g)

	g.finished = true
	if g.configDir != nil {
		configDir = *g.configDir
	}
	scope := &element.Scope{Group: path, ConfigDir: configDir}

	specs := make([]*overlay.Spec, 0, len(inherited)+len(g.overlays))
	specs = append(specs, inherited...)
	for i := range g.overlays {
		s := g.overlays[i]
		s.Scope = path
		specs = append(specs, &s)
		f.declared = append(f.declared, &s)
	}

	node := &Node{
		path:     path,
		scope:    scope,
		children: make(map[string]*Node, len(g.children)),
	}

	for _, c := range g.children {
		childPath := path.Child(c.name)

		var childNode *Node
		if c.group != nil {
			var err error
			if childNode, err = f.walk(c.group, childPath, configDir, specs); err != nil {
				return nil, err
			}
		} else {
			childNode = &Node{path: childPath, elem: f.bind(childPath, c.builder, scope, specs)}
			f.tree.elements[childPath.String()] = childNode.elem
		}

		node.names = append(node.names, c.name)
		node.children[c.name] = childNode
	}
	return node, nil
}

// bind partitions the overlays selecting path into its two chains.
func (f *finisher) bind(path nodeid.Path, b element.Builder, scope *element.Scope, specs []*overlay.Spec) *element.Element {
	var values, references overlay.Chain
	for _, s := range specs {
		if !s.Selects(path) {
			continue
		}
		f.matches[s]++
		switch s.Kind {
		case overlay.Reference:
			references = append(references, *s)
		default:
			values = append(values, *s)
		}
	}
	return element.New(path, b, scope, values, references)
}
