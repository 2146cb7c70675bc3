// Package menu defines the static option tree shown to contacts and the
// navigation primitives the dialog engine drives it with. The tree is built
// once at startup and never mutated; the engine only ever asks whether the
// node a contact is standing on is a branch or a leaf, and which action a
// leaf carries.
package menu

import "strings"

// Action tags carried by leaf nodes. The engine dispatches on these to decide
// which sub-flow to enter once a leaf is selected.
const (
	ActionInformational  = "informational"
	ActionDateOnly       = "date-only"
	ActionDesignEligible = "design-eligible"
	ActionHandoff        = "free-text-handoff"
)

// Node is either a branch (ordered children) or a leaf (terminal action).
// A node with a non-empty Keys slice is a branch; Action and Reply are only
// meaningful on leaves.
type Node struct {
	Label    string
	Prompt   string   // optional header shown when the branch is entered
	Keys     []string // choice-keys in display order
	Children map[string]*Node
	Aliases  map[string]string // folded word forms accepted in place of a key
	Action   string
	Reply    string // fixed text for informational leaves
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Keys) == 0
}

// AliasKey resolves a typed word form ("pedir cita", "direccion") to the
// choice-key it stands for. Matching is case-insensitive on the trimmed text.
func (n *Node) AliasKey(text string) (string, bool) {
	key, ok := n.Aliases[strings.ToLower(strings.TrimSpace(text))]
	return key, ok
}

// Option is one selectable entry of a branch, in display order.
type Option struct {
	Key   string
	Label string
}

// Render returns the ordered (key, label) pairs of a branch, or nil for a leaf.
func Render(n *Node) []Option {
	if n == nil || n.IsLeaf() {
		return nil
	}
	opts := make([]Option, 0, len(n.Keys))
	for _, k := range n.Keys {
		opts = append(opts, Option{Key: k, Label: n.Children[k].Label})
	}
	return opts
}

// Resolve walks the tree from root following each key in path. It returns
// (nil, false) the instant a key is absent, signaling the caller to treat the
// path as stale and reset it. An empty path resolves to the root itself.
func Resolve(root *Node, path []string) (*Node, bool) {
	node := root
	for _, key := range path {
		child, ok := node.Children[key]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Step appends a chosen key to a path. The caller must have already validated
// that the key is a child of the node the path resolves to.
func Step(path []string, key string) []string {
	next := make([]string, 0, len(path)+1)
	next = append(next, path...)
	return append(next, key)
}

// branch builds a branch node from ordered (key, child) pairs.
func branch(label string, pairs ...childPair) *Node {
	n := &Node{Label: label, Children: make(map[string]*Node, len(pairs))}
	for _, p := range pairs {
		n.Keys = append(n.Keys, p.key)
		n.Children[p.key] = p.node
	}
	return n
}

type childPair struct {
	key  string
	node *Node
}

func child(key string, node *Node) childPair { return childPair{key: key, node: node} }

func leaf(label, action string) *Node { return &Node{Label: label, Action: action} }

func info(label, reply string) *Node {
	return &Node{Label: label, Action: ActionInformational, Reply: reply}
}

// Spa returns the current menu for Spa Milena Bravo. Service suboptions that
// involve nail design are design-eligible; pedicure suboptions go straight to
// the date request.
func Spa() *Node {
	manicureSub := func(service string) *Node {
		return branch(service,
			child("1", leaf("Normal", ActionDesignEligible)),
			child("2", leaf("Francesa", ActionDesignEligible)),
			child("3", leaf("Nail art", ActionDesignEligible)),
		)
	}

	servicios := branch("Pedir cita",
		child("1", manicureSub("Manicure tradicional")),
		child("2", manicureSub("Manicure en gel")),
		child("3", branch("Pedicure",
			child("1", leaf("Spa", ActionDateOnly)),
			child("2", leaf("Normal", ActionDateOnly)),
		)),
		child("4", branch("Paquete completo",
			child("1", leaf("Manicure + Pedicure", ActionDesignEligible)),
			child("2", leaf("Manicure + Gel", ActionDesignEligible)),
		)),
	)

	servicios.Prompt = "¡Perfecto! 💅 Vamos a agendar tu cita.\nEstos son nuestros servicios:"

	root := branch("Menú principal",
		child("1", servicios),
		child("2", info("Ver dirección", "Nuestra dirección es: Calle 53 #78-61. Barrio Los Colores, Medellín.")),
		child("3", info("Instagram", "Nuestro Instagram es: @milenabravo.co")),
		child("4", leaf("Otra pregunta", ActionHandoff)),
	)
	root.Prompt = "Cuéntame, ¿en qué puedo ayudarte?"
	root.Aliases = map[string]string{
		"pedir cita": "1",
		"cita":       "1",
		"dirección":  "2",
		"direccion":  "2",
		"instagram":  "3",
	}
	return root
}
