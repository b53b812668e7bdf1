package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/assemblygo/internal/config"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/hcl_adapter"
	"github.com/vk/assemblygo/internal/yaml_adapter"
)

// DefaultLoaders returns the loaders for every supported definition format.
func DefaultLoaders() []config.Loader {
	return []config.Loader{
		hcl_adapter.NewLoader(),
		yaml_adapter.NewLoader(),
	}
}

// loadModel runs every loader over paths and merges the results.
func loadModel(ctx context.Context, loaders []config.Loader, paths []string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()

	for _, loader := range loaders {
		m, err := loader.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(m); err != nil {
			return nil, err
		}
		logger.Debug("Loader finished.", "extensions", loader.Extensions(), "files", len(m.Files))
	}

	if len(model.Files) == 0 {
		return nil, fmt.Errorf("no assembly files found in %v", paths)
	}
	return model, nil
}

// defaultConfigDir is the directory of the first assembly path.
func defaultConfigDir(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	p := paths[0]
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return p
	}
	return filepath.Dir(p)
}
