package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/assemblygo/internal/assembler"
	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/internal/config"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/nodeid"
	"github.com/vk/assemblygo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
	model   *config.Model
	root    *registry.Root
}

// Runnable is implemented by elements the run command can start.
type Runnable interface {
	Run(ctx context.Context, args []string) error
}

// NewApp is the constructor for the main application. It loads the
// definitions, registers the modules and returns an App with a ready Root.
// Log output goes to logW. Without modules the core modules are used, with
// program output on os.Stdout.
func NewApp(logW io.Writer, appConfig *Config, modules ...catalog.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loadModel(ctx, DefaultLoaders(), appConfig.AssemblyPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load assembly: %w", err)
	}
	switch {
	case appConfig.ConfigDir != "":
		model.ConfigDir = appConfig.ConfigDir
	case model.ConfigDir == "":
		model.ConfigDir = defaultConfigDir(appConfig.AssemblyPaths)
	}
	logger.Debug("Assembly loaded and translated into unified model.", "files", len(model.Files), "config_dir", model.ConfigDir)

	cat := catalog.New()
	if len(modules) == 0 {
		modules = CoreModules(nil, nil)
	}
	cat.Load(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "factories", len(cat.Factories()), "transforms", len(cat.Transforms()))

	tree, err := assembler.Build(ctx, model, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble: %w", err)
	}
	logger.Info("Assembly ready.", "elements", len(tree.Elements()), "config_dir", tree.ConfigDir())

	return &App{
		logger:  logger,
		catalog: cat,
		model:   model,
		root:    registry.New(tree),
	}, nil
}

// Root returns the application's registry root.
func (a *App) Root() *registry.Root {
	return a.root
}

// Catalog returns the registered factories and transforms.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// ConfigDir returns the effective config directory.
func (a *App) ConfigDir() string {
	return a.root.ConfigDir()
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Lookup resolves a dotted path against the root.
func (a *App) Lookup(ctx context.Context, raw string) (any, error) {
	ctx = a.Context(ctx)
	a.logger.Debug("Looking up element.", "path", raw)
	return a.root.Get(ctx, raw)
}

// Paths lists every element path in sorted order.
func (a *App) Paths() []string {
	paths := a.root.Paths()
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

// Describe returns a one-line description of the element at raw.
func (a *App) Describe(raw string) (string, error) {
	p, err := nodeid.Parse(raw)
	if err != nil {
		return "", err
	}
	e, ok := a.root.Tree().Element(p)
	if !ok {
		return "", fmt.Errorf("no element at %q", raw)
	}
	return fmt.Sprintf("%s %T values=%d references=%d", p.String(), e.Builder(), len(e.ValueChain()), len(e.ReferenceChain())), nil
}
