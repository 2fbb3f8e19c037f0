package integration_tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shaderdeps/internal/app"
	"github.com/vk/shaderdeps/internal/testutil"
)

func TestLoader_HCLManifest(t *testing.T) {
	// --- Arrange ---
	manifestHCL := `
source "gpu_shader_material_inline.glsl" {
  text = <<EOT
#pragma REQUIRE(math.glsl)
void node_inline(in float a, out float b) { b = safe(a); }
EOT
}

directory {
  path = "lib"
}
`
	files := map[string]string{
		"shaders.hcl":   manifestHCL,
		"lib/math.glsl": "float safe(float a) { return a; }\n",
		"lib/notes.txt": "ignored",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{ManifestPath: "shaders.hcl", Command: app.CommandFunctions})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, "node_inline(in float, out float)  gpu_shader_material_inline.glsl\n", result.Output)

	reg := result.App.Registry()
	assert.Len(t, reg.Units(), 2)
	assert.Equal(t, []string{"gpu_shader_material_inline.glsl"}, reg.Dependents("math.glsl"))
}

func TestLoader_EmbeddedLibraries(t *testing.T) {
	t.Run("check", func(t *testing.T) {
		result := testutil.RunIntegrationTest(t, nil, app.Config{})
		require.NoError(t, result.Err)
		assert.Equal(t, "10 sources, 7 functions, 0 errors, 0 warnings\n", result.Output)
	})

	t.Run("resolve", func(t *testing.T) {
		result := testutil.RunIntegrationTest(t, nil, app.Config{Command: app.CommandResolve, Target: "draw_fullscreen_vert.glsl"})
		require.NoError(t, result.Err)
		iShared := strings.Index(result.Output, "#define eObjectInfoFlag uint")
		iView := strings.Index(result.Output, "gl_InstanceID")
		require.GreaterOrEqual(t, iShared, 0)
		require.GreaterOrEqual(t, iView, 0)
		assert.Less(t, iShared, iView)
	})

	t.Run("builtins", func(t *testing.T) {
		result := testutil.RunIntegrationTest(t, nil, app.Config{Command: app.CommandBuiltins, Target: "draw_fullscreen_vert.glsl"})
		require.NoError(t, result.Err)
		assert.Equal(t, "INSTANCE_ID|VERTEX_ID\n", result.Output)
	})

	t.Run("graph", func(t *testing.T) {
		result := testutil.RunIntegrationTest(t, nil, app.Config{Command: app.CommandGraph})
		require.NoError(t, result.Err)
		assert.Contains(t, result.Output, "gpu_shader_material_mix_color.glsl")
		assert.NotContains(t, result.Output, "lightcoral")
	})
}
