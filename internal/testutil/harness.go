package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/shaderdeps/internal/app"
	"github.com/vk/shaderdeps/internal/config"
	"github.com/vk/shaderdeps/internal/fsloader"
	"github.com/vk/shaderdeps/internal/hcl_adapter"
	"github.com/vk/shaderdeps/internal/registry"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg)
}

// RunIntegrationTestWithContext writes files below a temporary root, builds
// the app for cfg and runs its command. Relative ManifestPath and SourceDir
// values are taken from that root. With neither set, the compiled-in
// libraries are loaded.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	// 1. Write all files below a temporary root.
	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	// 2. Point the configuration at the written files.
	if cfg.ManifestPath != "" && !filepath.IsAbs(cfg.ManifestPath) {
		cfg.ManifestPath = filepath.Join(tmpDir, cfg.ManifestPath)
	}
	if cfg.SourceDir != "" && !filepath.IsAbs(cfg.SourceDir) {
		cfg.SourceDir = filepath.Join(tmpDir, cfg.SourceDir)
	}
	cfg.LogLevel = "debug"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	outBuffer := &app.SafeBuffer{}
	logBuffer := &app.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("SHADERDEPS_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		testApp = app.NewApp(outBuffer, logBuffer, appConfig, loaderFor(appConfig))
	}()

	if panicErr != nil {
		return &HarnessResult{
			Output:    outBuffer.String(),
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}
	t.Cleanup(testApp.Close)

	// 3. Run the configured command.
	runErr := testApp.Run(ctx)

	if os.Getenv("SHADERDEPS_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

func loaderFor(cfg *app.Config) config.Loader {
	switch {
	case cfg.ManifestPath != "":
		return hcl_adapter.NewLoader()
	case cfg.SourceDir != "":
		return fsloader.NewLoader(cfg.Extensions...)
	default:
		return registry.NewModuleLoader(app.CoreModules()...)
	}
}
