package integration_tests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/internal/element"
)

// recorderModule registers factories and transforms that record how often the
// engine calls them.
type recorderModule struct {
	mu     sync.Mutex
	builds map[string]int
	calls  map[string]int
	flaky  int
}

func newRecorder() *recorderModule {
	return &recorderModule{builds: make(map[string]int), calls: make(map[string]int)}
}

func (m *recorderModule) count(counter map[string]int, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counter[key]++
}

func (m *recorderModule) Builds(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds[path]
}

func (m *recorderModule) Calls(tag string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[tag]
}

func (m *recorderModule) Register(c *catalog.Catalog) {
	// rec.text builds args[0].
	c.RegisterFactory("rec.text", func(_ context.Context, bc *element.BuildContext, args ...any) (any, error) {
		m.count(m.builds, bc.Path().String())
		return catalog.StringArg(args, 0, "")
	})

	// rec.ref resolves args[0] the way definitions refer to each other.
	c.RegisterFactory("rec.ref", func(ctx context.Context, bc *element.BuildContext, args ...any) (any, error) {
		m.count(m.builds, bc.Path().String())
		name, err := catalog.StringArg(args, 0, "")
		if err != nil {
			return nil, err
		}
		return bc.Lookup(ctx, name)
	})

	// rec.join builds its arguments joined by commas.
	c.RegisterFactory("rec.join", func(_ context.Context, bc *element.BuildContext, args ...any) (any, error) {
		m.count(m.builds, bc.Path().String())
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, fmt.Sprint(a))
		}
		return strings.Join(parts, ","), nil
	})

	// rec.dir builds the config directory it sees.
	c.RegisterFactory("rec.dir", func(_ context.Context, bc *element.BuildContext, _ ...any) (any, error) {
		return bc.ConfigDir(), nil
	})

	// rec.flaky fails on its first build only.
	c.RegisterFactory("rec.flaky", func(_ context.Context, bc *element.BuildContext, _ ...any) (any, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.flaky++
		if m.flaky == 1 {
			return nil, errors.New("not ready yet")
		}
		return "ready", nil
	})

	// rec.suffix_fn builds a transform function appending args[0].
	c.RegisterFactory("rec.suffix_fn", func(_ context.Context, _ *element.BuildContext, args ...any) (any, error) {
		suffix, err := catalog.StringArg(args, 0, "")
		if err != nil {
			return nil, err
		}
		return func(v any) any { return v.(string) + suffix }, nil
	})

	// rec.tag appends "+tag" and counts its calls per tag.
	c.RegisterTransform("rec.tag", func(_ context.Context, current any, args ...any) (any, error) {
		tag, err := catalog.StringArg(args, 0, "")
		if err != nil {
			return nil, err
		}
		m.count(m.calls, tag)
		return current.(string) + "+" + tag, nil
	})
}
