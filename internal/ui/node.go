package ui

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Node is a single UI element: panel, label, etc. It has optional class and id for CSS matching,
// bounds (position and size), and optional text for labels. A node with a Parent is
// positioned relative to the parent's resolved rectangle.
type Node struct {
	Type   string // "panel", "label", etc.
	Class  string // e.g. "tooltip" for .tooltip
	ID     string // e.g. "search" for #search
	Bounds Rect
	Text   string
	Parent *Node
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}
