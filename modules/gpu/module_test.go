package gpu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/shaderdeps/internal/registry"
	"github.com/vk/shaderdeps/internal/shader"
)

func TestModule_ResolvesCleanly(t *testing.T) {
	ctx := context.Background()
	m, err := registry.NewModuleLoader(&Module{}).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 6, m.Len())

	r, err := registry.New(ctx, m, registry.Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Diagnostics())
	require.NoError(t, r.Validate(ctx))

	mix := r.Lookup("gpu_shader_material_mix_color.glsl")
	var deps []string
	for _, d := range mix.Dependencies() {
		deps = append(deps, d.Name)
	}
	assert.Equal(t, []string{"gpu_shader_common_math_utils.glsl", "gpu_shader_common_color_utils.glsl"}, deps)

	assert.Contains(t, r.Source("gpu_shader_shared.h"), "#define eGPUMaterialFlag uint\nconst uint ")
	assert.Equal(t, shader.BuiltinFrontFacing|shader.BuiltinFragCoord, r.Builtins("gpu_shader_material_geometry.glsl"))

	fn := r.Function("node_volume_principled")
	require.NotNil(t, fn)
	assert.Equal(t, "node_volume_principled(in vec4, in float, in float, in sampler3D, in vec3, inout float, out Closure)", fn.Signature())
	assert.Len(t, r.Functions(), 7)
	assert.Nil(t, r.Function("safe_divide"), "common utilities are not material libraries")
}
