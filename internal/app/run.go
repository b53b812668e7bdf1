package app

import (
	"context"
	"fmt"
)

// Run looks up the element at path and runs it. The element must implement
// Runnable.
func (a *App) Run(ctx context.Context, path string, args []string) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "path", path)

	v, err := a.root.Get(ctx, path)
	if err != nil {
		return err
	}
	r, ok := v.(Runnable)
	if !ok {
		return fmt.Errorf("element %q is not runnable (got %T)", path, v)
	}

	a.logger.Info("Running element.", "path", path)
	if err := r.Run(ctx, args); err != nil {
		return fmt.Errorf("run %q failed: %w", path, err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
