package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is used to decode all possible top-level items from any file.
type fileRoot struct {
	ConfigDir *string         `hcl:"config_dir,optional"`
	Groups    []*groupBlock   `hcl:"group,block"`
	Elements  []*elementBlock `hcl:"element,block"`
	Values    []*valueBlock   `hcl:"value,block"`
	Aliases   []*aliasBlock   `hcl:"alias,block"`
	Overlays  []*overlayBlock `hcl:"overlay,block"`
	Remain    hcl.Body        `hcl:",remain"`
}

// groupBlock is a `group "name" { ... }` block.
type groupBlock struct {
	Name      string          `hcl:"name,label"`
	ConfigDir *string         `hcl:"config_dir,optional"`
	Groups    []*groupBlock   `hcl:"group,block"`
	Elements  []*elementBlock `hcl:"element,block"`
	Values    []*valueBlock   `hcl:"value,block"`
	Aliases   []*aliasBlock   `hcl:"alias,block"`
	Overlays  []*overlayBlock `hcl:"overlay,block"`
	Remain    hcl.Body        `hcl:",remain"`
}

// elementBlock is an `element "name" { ... }` block built by a factory.
type elementBlock struct {
	Name    string         `hcl:"name,label"`
	Factory string         `hcl:"factory"`
	Args    hcl.Expression `hcl:"args,optional"`
	Remain  hcl.Body       `hcl:",remain"`
}

// valueBlock is a `value "name" { value = ... }` block.
type valueBlock struct {
	Name   string         `hcl:"name,label"`
	Value  hcl.Expression `hcl:"value"`
	Remain hcl.Body       `hcl:",remain"`
}

// aliasBlock is an `alias "name" { target = "..." }` block.
type aliasBlock struct {
	Name   string   `hcl:"name,label"`
	Target string   `hcl:"target"`
	Remain hcl.Body `hcl:",remain"`
}

// overlayBlock is an `overlay "value"|"reference" { ... }` block.
type overlayBlock struct {
	Kind      string         `hcl:"kind,label"`
	Target    string         `hcl:"target,optional"`
	Transform *string        `hcl:"transform,optional"`
	Path      *string        `hcl:"path,optional"`
	Args      hcl.Expression `hcl:"args,optional"`
	Remain    hcl.Body       `hcl:",remain"`
}
