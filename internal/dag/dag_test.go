package dag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Empty(t, g.Nodes())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps.nodes)
	assert.NotNil(t, nodeA.dependents.nodes)

	g.AddNode("a") // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.Len(t, g.nodes, 2)
	assert.True(t, g.HasNode("b"))
	assert.False(t, g.HasNode("c"))
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)
		require.NoError(t, g.AddEdge("a", "b"), "duplicate edges are ignored")

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")

		_, err = g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")
		_, err = g.Dependents("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestEdgeOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"top", "z", "m", "a"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("z", "top"))
	require.NoError(t, g.AddEdge("m", "top"))
	require.NoError(t, g.AddEdge("a", "top"))

	deps, err := g.Dependencies("top")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "m", "a"}, deps, "insertion order, not sorted")
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	g.AddNode("a")
	g.AddNode("b")
	require.NoError(t, g.AddEdge("a", "b"))

	assert.True(t, g.RemoveEdge("a", "b"))
	assert.False(t, g.RemoveEdge("a", "b"))
	assert.False(t, g.RemoveEdge("a", "dne"))

	deps, _ := g.Dependencies("b")
	assert.Empty(t, deps)
	dependents, _ := g.Dependents("a")
	assert.Empty(t, dependents)
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a")) // Cycle
		err := g.DetectCycles()
		assert.ErrorContains(t, err, "cycle detected")

		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"a", "b", "a"}, cycle.Path)
		from, to := cycle.ClosingEdge()
		assert.Equal(t, "b", from)
		assert.Equal(t, "a", to)
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "a")) // Cycle back to the start
		err := g.DetectCycles()
		assert.EqualError(t, err, "cycle detected: a -> b -> c -> d -> a")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		// Component 1 (valid)
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		// Component 2 (has a cycle)
		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y")) // Cycle

		err := g.DetectCycles()
		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"y", "z", "y"}, cycle.Path)
	})

	t.Run("breaking the closing edge clears the cycle", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		var cycle *CycleError
		require.True(t, errors.As(g.DetectCycles(), &cycle))
		require.True(t, g.RemoveEdge(cycle.ClosingEdge()))
		assert.NoError(t, g.DetectCycles())
	})
}

func TestWriteDOT(t *testing.T) {
	g := New()
	g.AddNode("d.glsl")
	g.AddNode("a.glsl")
	require.NoError(t, g.AddEdge("d.glsl", "a.glsl"))

	var buf bytes.Buffer
	require.NoError(t, g.WriteDOT(&buf, "a.glsl"))

	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "->")
	assert.Regexp(t, `a\.glsl"? -> "?d\.glsl`, out)
	assert.Contains(t, out, "lightcoral")
}
