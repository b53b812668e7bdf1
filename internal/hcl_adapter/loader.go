package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/assemblygo/internal/config"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL assembly loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load orchestrates the entire HCL loading process. Every file is decoded
// on its own and merged into a single model in path order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.CollectFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	model := config.NewModel()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		fileModel, err := l.decodeFile(ctx, file, hclFile.Body)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("failed to merge HCL file %s: %w", file, err)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(model.Files), "elements", len(model.Root.Elements), "groups", len(model.Root.Groups), "overlays", len(model.Root.Overlays))
	return model, nil
}

// decodeFile decodes and translates a single parsed file.
func (l *Loader) decodeFile(ctx context.Context, file string, body hcl.Body) (*config.Model, error) {
	var root fileRoot
	evalCtx := newEvalContext()
	if diags := gohcl.DecodeBody(body, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}
	if err := rejectUnknown(root.Remain, groupBlockTypes...); err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
	}

	t := &translator{file: file, evalCtx: evalCtx}
	g, err := t.group(ctx, &groupBlock{
		ConfigDir: root.ConfigDir,
		Groups:    root.Groups,
		Elements:  root.Elements,
		Values:    root.Values,
		Aliases:   root.Aliases,
		Overlays:  root.Overlays,
		Remain:    root.Remain,
	})
	if err != nil {
		return nil, err
	}

	m := &config.Model{ConfigDir: g.ConfigDir, Root: g, Files: []string{file}}
	g.ConfigDir = ""
	return m, nil
}
