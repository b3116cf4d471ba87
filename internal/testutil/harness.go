package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/itemhub/internal/app"
	"github.com/vk/itemhub/internal/hcl"
	"github.com/vk/itemhub/internal/hub"
)

// SafeBuffer is a thread-safe buffer for capturing combined log and resolve
// output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunIntegrationTest runs the full startup-and-resolve cycle against the given
// HCL files with a default config and background context.
func RunIntegrationTest(t *testing.T, files map[string]string, components ...hub.Component) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithConfig(context.Background(), t, files, &app.Config{}, components...)
}

// RunIntegrationTestWithConfig runs the full startup-and-resolve cycle with a
// caller-provided config. The harness fills in the items path, log level, and
// log format; everything else on the config is the caller's.
func RunIntegrationTestWithConfig(ctx context.Context, t *testing.T, files map[string]string, appConfig *app.Config, components ...hub.Component) *HarnessResult {
	t.Helper()

	// Write all HCL files into a temporary items directory. Relative paths
	// with subdirectories are honored, so nested layouts can be tested.
	itemsDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(itemsDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig.ItemsPath = itemsDir
	appConfig.LogLevel = "debug"
	appConfig.LogFormat = "text"

	outBuffer := &SafeBuffer{}

	// Startup errors surface as panics inside app.NewApp, so the harness
	// recovers them and reports them as ordinary errors.
	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(outBuffer, appConfig, hcl.NewLoader(), components...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			Output: outBuffer.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("ITEMHUB_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), outBuffer.String())
	}

	return &HarnessResult{
		Output: outBuffer.String(),
		Err:    runErr,
		App:    testApp,
	}
}
