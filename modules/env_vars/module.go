package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/vk/assemblygo/internal/catalog"
	"github.com/vk/assemblygo/internal/ctxlog"
	"github.com/vk/assemblygo/internal/element"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// All is the 'env_vars.all' factory. It snapshots the process environment.
func All(ctx context.Context, bc *element.BuildContext, args ...any) (any, error) {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	ctxlog.FromContext(ctx).Debug("Environment captured.", "element", bc.Path().String(), "count", len(envMap))
	return envMap, nil
}

// Get is the 'env_vars.get' factory: args are the variable name and an
// optional default used when the variable is unset.
func Get(ctx context.Context, bc *element.BuildContext, args ...any) (any, error) {
	if err := catalog.RequireArgs(args, 1); err != nil {
		return nil, err
	}
	name, err := catalog.StringArg(args, 0, "")
	if err != nil {
		return nil, err
	}
	def, err := catalog.StringArg(args, 1, "")
	if err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv(name); ok {
		return v, nil
	}
	return def, nil
}

// Register registers the factories with the catalog.
func (m *Module) Register(c *catalog.Catalog) {
	c.RegisterFactory("env_vars.all", All)
	c.RegisterFactory("env_vars.get", Get)
}
