package yaml_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/assemblygo/internal/config"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/fsutil"
	"go.yaml.in/yaml/v4"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML assembly loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load reads every YAML file under paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}

		fileModel, err := l.decode(file, data)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("failed to merge YAML file %s: %w", file, err)
		}
	}

	logger.Debug("YAML loading complete.", "files", len(model.Files), "elements", len(model.Root.Elements), "groups", len(model.Root.Groups), "overlays", len(model.Root.Overlays))
	return model, nil
}

func (l *Loader) decode(file string, data []byte) (*config.Model, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", file, err)
	}

	m := &config.Model{Root: &config.GroupDef{}, Files: []string{file}}
	if len(doc.Content) == 0 {
		return m, nil
	}

	d := &decoder{file: file}
	root, err := d.group("", doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}
	m.ConfigDir = root.ConfigDir
	root.ConfigDir = ""
	m.Root = root
	return m, nil
}
