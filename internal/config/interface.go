package config

import (
	"context"
)

// Loader is the interface for a format-specific assembly loader.
type Loader interface {
	// Load reads definitions from the given files or directories and
	// translates them into the format-agnostic model. Multiple files are
	// merged into a single root group.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// Extensions lists the file extensions the loader understands.
	Extensions() []string
}
