package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/assemblygo/internal/catalog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Logs are
// captured at debug level and dumped when ASSEMBLYGO_TEST_LOGS=true.
func SetupAppTest(t *testing.T, appConfig *Config, modules ...catalog.Module) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	if appConfig.LogFormat == "" {
		appConfig.LogFormat = "text"
	}
	testApp, err := NewApp(logBuffer, appConfig, modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("ASSEMBLYGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
