package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := Spa()

	t.Run("empty path resolves to root", func(t *testing.T) {
		node, ok := Resolve(root, nil)
		require.True(t, ok)
		assert.Same(t, root, node)
	})

	t.Run("valid walk", func(t *testing.T) {
		node, ok := Resolve(root, []string{"1", "3"})
		require.True(t, ok)
		assert.Equal(t, "Pedicure", node.Label)
		assert.False(t, node.IsLeaf())
	})

	t.Run("walk to leaf", func(t *testing.T) {
		node, ok := Resolve(root, []string{"1", "3", "1"})
		require.True(t, ok)
		assert.True(t, node.IsLeaf())
		assert.Equal(t, ActionDateOnly, node.Action)
	})

	t.Run("missing key fails immediately", func(t *testing.T) {
		_, ok := Resolve(root, []string{"9"})
		assert.False(t, ok)

		_, ok = Resolve(root, []string{"1", "99", "1"})
		assert.False(t, ok)
	})
}

func TestStepDoesNotAliasPath(t *testing.T) {
	path := []string{"1"}
	next := Step(path, "2")

	assert.Equal(t, []string{"1", "2"}, next)
	assert.Equal(t, []string{"1"}, path)

	// Appending to next must never write into path's backing array.
	_ = Step(next, "3")
	assert.Equal(t, []string{"1", "2"}, next)
}

func TestRender(t *testing.T) {
	root := Spa()

	opts := Render(root)
	require.Len(t, opts, 4)
	assert.Equal(t, Option{Key: "1", Label: "Pedir cita"}, opts[0])
	assert.Equal(t, Option{Key: "4", Label: "Otra pregunta"}, opts[3])

	leafNode, ok := Resolve(root, []string{"2"})
	require.True(t, ok)
	assert.Nil(t, Render(leafNode))
}

func TestAliasKey(t *testing.T) {
	root := Spa()

	for text, want := range map[string]string{
		"pedir cita": "1",
		"Pedir Cita": "1",
		"  cita  ":   "1",
		"dirección":  "2",
		"direccion":  "2",
		"INSTAGRAM":  "3",
	} {
		key, ok := root.AliasKey(text)
		require.True(t, ok, "alias %q not resolved", text)
		assert.Equal(t, want, key)
	}

	_, ok := root.AliasKey("otra cosa")
	assert.False(t, ok)

	// Aliases are per-node: the services branch declares none.
	servicios, ok := Resolve(root, []string{"1"})
	require.True(t, ok)
	_, ok = servicios.AliasKey("pedir cita")
	assert.False(t, ok)
}

func TestSpaLeafActions(t *testing.T) {
	root := Spa()

	// Every leaf must carry a known action tag; informational leaves need text.
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			switch n.Action {
			case ActionInformational:
				assert.NotEmpty(t, n.Reply, "informational leaf %q without reply", n.Label)
			case ActionDateOnly, ActionDesignEligible, ActionHandoff:
			default:
				t.Errorf("leaf %q has unknown action %q", n.Label, n.Action)
			}
			return
		}
		assert.Len(t, n.Keys, len(n.Children), "branch %q keys out of sync", n.Label)
		for _, k := range n.Keys {
			walk(n.Children[k])
		}
	}
	walk(root)
}
