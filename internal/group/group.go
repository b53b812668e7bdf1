package group

import (
	"fmt"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/element"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/overlay"
)

// child is one named entry of a group. Exactly one of builder and group is set.
type child struct {
	name    string
	builder element.Builder
	group   *Group
	mounted bool
}

// Group is a namespace under definition.
type Group struct {
	configDir *string
	children  []*child
	index     map[string]*child
	overlays  []overlay.Spec
	finished  bool
}

// New creates an empty group.
func New() *Group {
	return &Group{index: make(map[string]*child)}
}

// SetConfigDir overrides the config directory for this group and every
// group nested in it that does not set its own.
func (g *Group) SetConfigDir(dir string) error {
	if err := g.checkOpen(""); err != nil {
		return err
	}
	g.configDir = &dir
	return nil
}

// Element defines a child element built by b.
func (g *Group) Element(name string, b element.Builder) error {
	if b == nil {
		return &asmerrors.ConfigError{Path: name, Message: "element has no builder"}
	}
	return g.add(&child{name: name, builder: b})
}

// Value defines an element whose raw value is v.
func (g *Group) Value(name string, v any) error {
	return g.Element(name, element.Literal{Value: v})
}

// Func defines a computed element.
func (g *Group) Func(name string, fn element.Func) error {
	if fn == nil {
		return &asmerrors.ConfigError{Path: name, Message: "element has no builder"}
	}
	return g.Element(name, fn)
}

// Alias defines an element resolving to another absolute path.
func (g *Group) Alias(name, target string) error {
	p, err := nodeid.Parse(target)
	if err != nil {
		return &asmerrors.ConfigError{Path: name, Message: "invalid alias target", Cause: err}
	}
	return g.Element(name, element.Alias{Target: p})
}

// Group defines a nested group and hands it to fn for definition.
func (g *Group) Group(name string, fn func(*Group) error) error {
	sub, err := g.Subgroup(name)
	if err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	return fn(sub)
}

// Subgroup defines and returns an empty nested group.
func (g *Group) Subgroup(name string) (*Group, error) {
	sub := New()
	if err := g.add(&child{name: name, group: sub}); err != nil {
		return nil, err
	}
	return sub, nil
}

// Mount attaches a separately defined group under name. Overlays declared
// here also reach the mounted group's elements.
func (g *Group) Mount(name string, other *Group) error {
	if other == nil {
		return &asmerrors.ConfigError{Path: name, Message: "cannot mount a nil group"}
	}
	return g.add(&child{name: name, group: other, mounted: true})
}

// Overlay declares an overlay in this group's scope. target is relative to
// the group ("" selects every descendant). transform may be an
// overlay.Transform, a nodeid.Path referring to an element that holds the
// transform, or any callable or constructible value.
func (g *Group) Overlay(kind overlay.Kind, target string, transform any, args ...any) error {
	if err := g.checkOpen(target); err != nil {
		return err
	}
	pattern, err := nodeid.ParsePattern(target)
	if err != nil {
		return &asmerrors.ConfigError{Path: target, Message: "invalid overlay target", Cause: err}
	}

	var t overlay.Transform
	if p, ok := transform.(nodeid.Path); ok {
		t = overlay.PathOverlay{Path: p}
	} else if t, err = overlay.FromValue(transform); err != nil {
		return err
	}

	g.overlays = append(g.overlays, overlay.Spec{
		Kind:      kind,
		Target:    pattern,
		Transform: t,
		Args:      append([]any(nil), args...),
	})
	return nil
}

// Len returns the number of direct children.
func (g *Group) Len() int {
	return len(g.children)
}

func (g *Group) add(c *child) error {
	if err := g.checkOpen(c.name); err != nil {
		return err
	}
	if err := nodeid.ParseName(c.name); err != nil {
		return &asmerrors.ConfigError{Path: c.name, Message: "invalid name", Cause: err}
	}
	if _, exists := g.index[c.name]; exists {
		return &asmerrors.ConfigError{Path: c.name, Message: fmt.Sprintf("%q is already defined in this group", c.name)}
	}
	g.children = append(g.children, c)
	g.index[c.name] = c
	return nil
}

func (g *Group) checkOpen(name string) error {
	if g.finished {
		return &asmerrors.ConfigError{Path: name, Message: "group is finished; no further definitions are possible"}
	}
	return nil
}
