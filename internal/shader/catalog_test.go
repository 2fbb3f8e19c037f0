package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Add(t *testing.T) {
	a := NewUnit("gpu_shader_material_a.glsl", "", "")
	b := NewUnit("gpu_shader_material_b.glsl", "", "")

	c := NewCatalog()
	first := &Function{Name: "node_f", Unit: a}
	assert.Nil(t, c.Add(first))

	t.Run("same unit repeat is dropped silently", func(t *testing.T) {
		assert.Nil(t, c.Add(&Function{Name: "node_f", Unit: a}))
		assert.Same(t, first, c.Lookup("node_f"))
	})

	t.Run("other unit returns previous definition", func(t *testing.T) {
		prev := c.Add(&Function{Name: "node_f", Unit: b})
		assert.Same(t, first, prev)
		assert.Same(t, first, c.Lookup("node_f"))
	})

	assert.Equal(t, 1, c.Len())
}

func TestCatalog_Use(t *testing.T) {
	u := NewUnit("gpu_shader_material_a.glsl", "", "")
	c := NewCatalog()
	c.Add(&Function{Name: "node_b", Unit: u})
	c.Add(&Function{Name: "node_a", Unit: u})

	used := map[string]struct{}{}
	fn := c.Use(used, "node_b")
	require.NotNil(t, fn)
	assert.Contains(t, used, "gpu_shader_material_a.glsl")

	assert.PanicsWithValue(t, `requested function "missing" not in the function library`, func() {
		c.Use(used, "missing")
	})

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "node_a", all[0].Name)
	assert.Equal(t, "node_b", all[1].Name)
}
