// Package testutil provides the harness shared by the integration tests:
// it writes definition files into a temporary directory and builds an App
// over them with captured output.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/assemblygo/internal/app"
	"github.com/vk/assemblygo/internal/catalog"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	LogOutput *app.SafeBuffer
	Out       *app.SafeBuffer
	CallLog   *app.SafeBuffer
	Err       error
	App       *app.App
}

// Options tweaks the harness.
type Options struct {
	// ConfigDir is passed through to app.Config.
	ConfigDir string
	// Modules replaces the core modules. Out and CallLog stay empty then.
	Modules []catalog.Module
}

// RunIntegrationTest writes files (relative name to content) into a fresh
// directory and builds an App over it. Startup errors are returned in Err.
func RunIntegrationTest(t *testing.T, files map[string]string, opts ...Options) *HarnessResult {
	t.Helper()

	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	res := &HarnessResult{
		Dir:       tmpDir,
		LogOutput: &app.SafeBuffer{},
		Out:       &app.SafeBuffer{},
		CallLog:   &app.SafeBuffer{},
	}

	modules := o.Modules
	if len(modules) == 0 {
		modules = app.CoreModules(res.Out, res.CallLog)
	}

	appConfig := &app.Config{
		AssemblyPaths: []string{tmpDir},
		ConfigDir:     o.ConfigDir,
		LogLevel:      "debug",
		LogFormat:     "text",
	}
	res.App, res.Err = app.NewApp(res.LogOutput, appConfig, modules...)

	t.Cleanup(func() {
		if os.Getenv("ASSEMBLYGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput.String())
		}
	})
	return res
}

// MustLookup resolves raw through the harness App and fails the test on error.
func (r *HarnessResult) MustLookup(t *testing.T, raw string) any {
	t.Helper()
	require.NoError(t, r.Err, "app failed to start")
	v, err := r.App.Lookup(context.Background(), raw)
	require.NoError(t, err, "lookup %q", raw)
	return v
}
