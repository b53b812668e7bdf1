package config

import (
	"context"
	"fmt"
	"path/filepath"
)

// Model is the unified, format-agnostic representation of an assembly.
type Model struct {
	// ConfigDir is the directory exposed to builders. Relative values in
	// definition files are resolved against the defining file's directory.
	ConfigDir string
	// Root holds the top-level definitions of every loaded file.
	Root *GroupDef
	// Files lists the definition files that were loaded, in load order.
	Files []string
}

// NewModel returns an empty model with a root group.
func NewModel() *Model {
	return &Model{Root: &GroupDef{}}
}

// ElementKind tells how an element is built.
type ElementKind int

const (
	// ElementFactory is built by a named catalog factory.
	ElementFactory ElementKind = iota
	// ElementValue is a literal value.
	ElementValue
	// ElementAlias resolves to another path.
	ElementAlias
)

// String returns the block name used for the kind in definition files.
func (k ElementKind) String() string {
	switch k {
	case ElementFactory:
		return "element"
	case ElementValue:
		return "value"
	case ElementAlias:
		return "alias"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

// GroupDef is the format-agnostic representation of a `group` block.
type GroupDef struct {
	Name      string
	ConfigDir string
	Elements  []*ElementDef
	Groups    []*GroupDef
	Overlays  []*OverlayDef
	Origin    string
}

// ElementDef is the format-agnostic representation of an element, value or
// alias block. ArgsExpr replaces Args, and ValueExpr replaces Value, when
// the definition refers to other elements.
type ElementDef struct {
	Name      string
	Kind      ElementKind
	Factory   string
	Args      []any
	ArgsExpr  Expr
	Value     any
	ValueExpr Expr
	Target    string
	Origin    string
}

// LookupFunc resolves a dotted name the way definitions refer to each
// other: from the element's own group outward.
type LookupFunc func(ctx context.Context, name string) (any, error)

// Expr is a definition-file expression that refers to other elements. It
// is evaluated each time the element holding it is built.
type Expr interface {
	// References lists the dotted names the expression refers to.
	References() []string
	// Eval evaluates the expression, resolving every reference with lookup.
	Eval(ctx context.Context, lookup LookupFunc) (any, error)
}

// OverlayDef is the format-agnostic representation of an `overlay` block.
// Exactly one of Transform (a catalog name) and Path (an element holding
// the transform) is set.
type OverlayDef struct {
	Kind      string
	Target    string
	Transform string
	Path      string
	Args      []any
	Origin    string
}

// Merge appends the definitions of other into m. Top-level names must be
// unique across all merged files.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if m.Root == nil {
		m.Root = &GroupDef{}
	}
	if other.ConfigDir != "" {
		if m.ConfigDir != "" && m.ConfigDir != other.ConfigDir {
			return fmt.Errorf("conflicting config_dir: %q and %q", m.ConfigDir, other.ConfigDir)
		}
		m.ConfigDir = other.ConfigDir
	}
	if other.Root != nil {
		seen := make(map[string]string)
		for _, name := range m.Root.names() {
			seen[name.name] = name.origin
		}
		for _, name := range other.Root.names() {
			if origin, dup := seen[name.name]; dup {
				return fmt.Errorf("duplicate definition %q at %s (first defined at %s)", name.name, name.origin, origin)
			}
			seen[name.name] = name.origin
		}
		m.Root.Elements = append(m.Root.Elements, other.Root.Elements...)
		m.Root.Groups = append(m.Root.Groups, other.Root.Groups...)
		m.Root.Overlays = append(m.Root.Overlays, other.Root.Overlays...)
	}
	m.Files = append(m.Files, other.Files...)
	return nil
}

type namedOrigin struct {
	name   string
	origin string
}

func (g *GroupDef) names() []namedOrigin {
	out := make([]namedOrigin, 0, len(g.Elements)+len(g.Groups))
	for _, e := range g.Elements {
		out = append(out, namedOrigin{e.Name, e.Origin})
	}
	for _, sub := range g.Groups {
		out = append(out, namedOrigin{sub.Name, sub.Origin})
	}
	return out
}

// ResolveDir resolves a config_dir declared in file. Absolute and empty
// values are returned unchanged.
func ResolveDir(file, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(file), dir)
}
