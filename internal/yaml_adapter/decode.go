package yaml_adapter

import (
	"fmt"

	"github.com/vk/assemblygo/internal/config"
	"go.yaml.in/yaml/v4"
)

type decoder struct {
	file string
}

func (d *decoder) origin(n *yaml.Node) string {
	return fmt.Sprintf("%s:%d", d.file, n.Line)
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%s: %s", d.origin(n), fmt.Sprintf(format, args...))
}

// pairs iterates the key/value pairs of a mapping node in order.
func (d *decoder) pairs(n *yaml.Node, what string, fn func(key string, keyNode, val *yaml.Node) error) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return d.errorf(n, "%s must be a mapping", what)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if err := fn(keyNode.Value, keyNode, valNode); err != nil {
			return err
		}
	}
	return nil
}

// group decodes a group mapping. The document root is a group without a name.
func (d *decoder) group(name string, n *yaml.Node) (*config.GroupDef, error) {
	g := &config.GroupDef{Name: name, Origin: d.origin(n)}
	err := d.pairs(n, "group", func(key string, keyNode, val *yaml.Node) error {
		switch key {
		case "config_dir":
			dir, err := d.scalar(val, key)
			if err != nil {
				return err
			}
			g.ConfigDir = config.ResolveDir(d.file, dir)
			return nil
		case "elements":
			return d.pairs(val, key, func(name string, keyNode, def *yaml.Node) error {
				e, err := d.element(name, keyNode, def)
				if err != nil {
					return err
				}
				g.Elements = append(g.Elements, e)
				return nil
			})
		case "values":
			return d.pairs(val, key, func(name string, keyNode, def *yaml.Node) error {
				var v any
				if err := def.Decode(&v); err != nil {
					return d.errorf(def, "value %q: %v", name, err)
				}
				g.Elements = append(g.Elements, &config.ElementDef{Name: name, Kind: config.ElementValue, Value: v, Origin: d.origin(keyNode)})
				return nil
			})
		case "aliases":
			return d.pairs(val, key, func(name string, keyNode, def *yaml.Node) error {
				target, err := d.scalar(def, "alias "+name)
				if err != nil {
					return err
				}
				g.Elements = append(g.Elements, &config.ElementDef{Name: name, Kind: config.ElementAlias, Target: target, Origin: d.origin(keyNode)})
				return nil
			})
		case "groups":
			return d.pairs(val, key, func(name string, _, def *yaml.Node) error {
				sub, err := d.group(name, def)
				if err != nil {
					return err
				}
				g.Groups = append(g.Groups, sub)
				return nil
			})
		case "overlays":
			if val.Kind != yaml.SequenceNode {
				return d.errorf(val, "overlays must be a sequence")
			}
			for _, item := range val.Content {
				o, err := d.overlay(item)
				if err != nil {
					return err
				}
				g.Overlays = append(g.Overlays, o)
			}
			return nil
		default:
			return d.errorf(keyNode, "unsupported key %q", key)
		}
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (d *decoder) element(name string, keyNode, n *yaml.Node) (*config.ElementDef, error) {
	e := &config.ElementDef{Name: name, Kind: config.ElementFactory, Origin: d.origin(keyNode)}
	err := d.pairs(n, "element "+name, func(key string, keyNode, val *yaml.Node) error {
		switch key {
		case "factory":
			f, err := d.scalar(val, key)
			e.Factory = f
			return err
		case "args":
			args, err := d.args(val)
			e.Args = args
			return err
		default:
			return d.errorf(keyNode, "unsupported key %q in element %q", key, name)
		}
	})
	if err != nil {
		return nil, err
	}
	if e.Factory == "" {
		return nil, d.errorf(n, "element %q requires a factory", name)
	}
	return e, nil
}

func (d *decoder) overlay(n *yaml.Node) (*config.OverlayDef, error) {
	o := &config.OverlayDef{Origin: d.origin(n)}
	err := d.pairs(n, "overlay", func(key string, keyNode, val *yaml.Node) error {
		var err error
		switch key {
		case "kind":
			o.Kind, err = d.scalar(val, key)
		case "target":
			o.Target, err = d.scalar(val, key)
		case "transform":
			o.Transform, err = d.scalar(val, key)
		case "path":
			o.Path, err = d.scalar(val, key)
		case "args":
			o.Args, err = d.args(val)
		default:
			err = d.errorf(keyNode, "unsupported key %q in overlay", key)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	switch {
	case o.Kind == "":
		return nil, d.errorf(n, "overlay requires a kind")
	case o.Transform != "" && o.Path != "":
		return nil, d.errorf(n, "only one of 'transform' and 'path' may be set")
	case o.Transform == "" && o.Path == "":
		return nil, d.errorf(n, "one of 'transform' or 'path' is required")
	}
	return o, nil
}

func (d *decoder) scalar(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", d.errorf(n, "%s must be a string", what)
	}
	if n.Tag == "!!null" {
		return "", nil
	}
	return n.Value, nil
}

// args decodes an args value. A sequence yields its items; any other
// non-null value becomes a single argument.
func (d *decoder) args(n *yaml.Node) ([]any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, d.errorf(n, "args: %v", err)
	}
	switch a := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return a, nil
	default:
		return []any{a}, nil
	}
}
