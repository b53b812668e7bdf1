package catalog

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/assemblygo/internal/asmerrors"
	"github.com/vk/assemblygo/internal/element"
	"github.com/vk/assemblygo/internal/overlay"
)

// Module is implemented by every package that contributes catalog entries.
type Module interface {
	Register(c *Catalog)
}

// Catalog holds all the registered factories and transforms.
type Catalog struct {
	factories  map[string]element.FactoryFunc
	transforms map[string]overlay.Transform
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{
		factories:  make(map[string]element.FactoryFunc),
		transforms: make(map[string]overlay.Transform),
	}
}

// Load registers every module in order.
func (c *Catalog) Load(modules ...Module) {
	for _, m := range modules {
		m.Register(c)
	}
}

// RegisterFactory registers an element factory under name.
func (c *Catalog) RegisterFactory(name string, fn element.FactoryFunc) {
	if fn == nil {
		panic(fmt.Sprintf("factory '%s' registered without a function", name))
	}
	if _, exists := c.factories[name]; exists {
		panic(fmt.Sprintf("factory with name '%s' already registered", name))
	}
	slog.Debug("Registering factory.", "name", name)
	c.factories[name] = fn
}

// RegisterTransform registers an overlay transform under name. v may be any
// value overlay.FromValue accepts.
func (c *Catalog) RegisterTransform(name string, v any) {
	if _, exists := c.transforms[name]; exists {
		panic(fmt.Sprintf("transform with name '%s' already registered", name))
	}
	t, err := overlay.FromValue(v)
	if err != nil {
		panic(fmt.Sprintf("transform '%s': %v", name, err))
	}
	slog.Debug("Registering transform.", "name", name, "strategy", t.String())
	c.transforms[name] = t
}

// Factory returns the factory registered under name.
func (c *Catalog) Factory(name string) (element.FactoryFunc, error) {
	fn, ok := c.factories[name]
	if !ok {
		return nil, &asmerrors.ConfigError{Message: fmt.Sprintf("unknown factory %q", name)}
	}
	return fn, nil
}

// Transform returns the transform registered under name.
func (c *Catalog) Transform(name string) (overlay.Transform, error) {
	t, ok := c.transforms[name]
	if !ok {
		return nil, &asmerrors.ConfigError{Message: fmt.Sprintf("unknown transform %q", name)}
	}
	return t, nil
}

// Factories returns the registered factory names, sorted.
func (c *Catalog) Factories() []string {
	return sortedKeys(c.factories)
}

// Transforms returns the registered transform names, sorted.
func (c *Catalog) Transforms() []string {
	return sortedKeys(c.transforms)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
