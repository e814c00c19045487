// Package testutil holds the end-to-end build harness shared by the app and
// catalog module tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/ipforge/internal/app"
	"github.com/vk/ipforge/internal/hcl_adapter"
	"github.com/vk/ipforge/internal/registry"
)

// HarnessResult holds the outcome of one harness build.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	// OutDir is <build_dir>/<build_name> of the run.
	OutDir string
}

// RunBuild writes files (relative path → content) into a temporary build
// directory and runs a complete build over it with the given modules, or the
// compiled-in catalog when none are given.
func RunBuild(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunBuildWithConfig(context.Background(), t, files, nil, modules...)
}

// RunBuildWithConfig is RunBuild with a hook to adjust the app configuration
// before the app is created.
func RunBuildWithConfig(ctx context.Context, t *testing.T, files map[string]string, configure func(*app.Config), modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	srcDir := filepath.Join(tmpDir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	for name, content := range files {
		path := filepath.Join(srcDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := &app.Config{
		BuildPath: srcDir,
		BuildDir:  filepath.Join(tmpDir, "build"),
		BuildName: "test",
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if configure != nil {
		configure(cfg)
	}

	logBuffer := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("IPFORGE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, cfg, hcl_adapter.NewLoader(), modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		OutDir:    testApp.OutputDir(),
	}
}
