package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shaderdeps/internal/app"
	"github.com/vk/shaderdeps/internal/fsloader"
	"github.com/vk/shaderdeps/internal/hcl_adapter"
	"github.com/vk/shaderdeps/internal/registry"
)

func TestRun_PanicRecovery(t *testing.T) {
	// --- Arrange ---
	// A missing dependency makes app.NewApp panic during startup.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.glsl"), []byte("#pragma REQUIRE(missing.glsl)\n"), 0o600))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, errOut, []string{"-src", dir})

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	assert.Contains(t, runErr.Error(), "application startup panicked")
	assert.Contains(t, runErr.Error(), "failed to resolve shader dependencies")
	assert.Contains(t, errOut.String(), "error: Dependency not found")
}

func TestRun_ShouldExit(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-h"})
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EmbeddedLibraries(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, run(out, &bytes.Buffer{}, []string{"builtins", "gpu_shader_material_geometry.glsl"}))
	assert.Equal(t, "FRAG_COORD|FRONT_FACING\n", out.String())
}

func TestNewLoader(t *testing.T) {
	assert.IsType(t, &hcl_adapter.Loader{}, newLoader(&app.Config{ManifestPath: "a.hcl"}))
	assert.IsType(t, &fsloader.Loader{}, newLoader(&app.Config{SourceDir: "src"}))
	assert.IsType(t, &registry.ModuleLoader{}, newLoader(&app.Config{}))
}
