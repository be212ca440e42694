package ui

import "fmt"

// Tooltip is the floating project title next to the pointer.
type Tooltip struct {
	node *Node
}

// NewTooltip creates the tooltip node, styled by .tooltip.
func NewTooltip() *Tooltip {
	return &Tooltip{node: NewNode("label", "tooltip", "", "")}
}

// AppendNodes appends the tooltip at (x, y) when visible. width is the measured text
// width; the caller measures because text metrics depend on the loaded font.
func (t *Tooltip) AppendNodes(dst []*Node, visible bool, text string, x, y, width, height float32) []*Node {
	if !visible || text == "" {
		return dst
	}
	t.node.Text = text
	t.node.Bounds = Rect{X: x, Y: y, Width: width, Height: height}
	return append(dst, t.node)
}

// ModalLineHeight is the vertical spacing of lines inside the detail panel.
const ModalLineHeight = 26

// Modal is the project detail panel: a backdrop, a panel and one label per line.
type Modal struct {
	backdrop *Node
	panel    *Node
	close    *Node
	lines    []*Node
}

// NewModal creates the modal nodes, styled by .modal-backdrop, .modal, .modal-close and .modal-line.
func NewModal() *Modal {
	m := &Modal{
		backdrop: NewNode("panel", "modal-backdrop", "", ""),
		panel:    NewNode("panel", "modal", "", ""),
	}
	m.close = NewNode("label", "modal-close", "", "x")
	m.close.Parent = m.panel
	return m
}

// AppendNodes appends the modal with lines when visible.
func (m *Modal) AppendNodes(dst []*Node, visible bool, lines []string) []*Node {
	if !visible {
		return dst
	}
	for len(m.lines) < len(lines) {
		n := NewNode("label", "modal-line", "", "")
		n.Parent = m.panel
		m.lines = append(m.lines, n)
	}
	dst = append(dst, m.backdrop, m.panel, m.close)
	for i, text := range lines {
		n := m.lines[i]
		n.Text = text
		n.Bounds = Rect{X: 0, Y: float32(24 + i*ModalLineHeight)}
		if i == 0 {
			n.Class = "modal-title"
		} else {
			n.Class = "modal-line"
		}
		dst = append(dst, n)
	}
	return dst
}

// CloseHit reports whether (x, y) is on the close control or outside the panel, using the
// boxes of the last layout.
func (m *Modal) CloseHit(boxes []Box, x, y float32) bool {
	var panel, closeBox *Rect
	for i := range boxes {
		switch boxes[i].Node {
		case m.panel:
			panel = &boxes[i].Rect
		case m.close:
			closeBox = &boxes[i].Rect
		}
	}
	if closeBox != nil && contains(*closeBox, x, y) {
		return true
	}
	return panel != nil && !contains(*panel, x, y)
}

func contains(r Rect, x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// SuggestionHeight is the row height of the autocomplete list.
const SuggestionHeight = 24

// Suggestions is the autocomplete list under the search bar.
type Suggestions struct {
	panel *Node
	rows  []*Node
}

// NewSuggestions creates the list, styled by .suggestions and .suggestion.
func NewSuggestions() *Suggestions {
	return &Suggestions{panel: NewNode("panel", "suggestions", "", "")}
}

// AppendNodes appends one row per item, the selected row styled by .suggestion-active.
func (s *Suggestions) AppendNodes(dst []*Node, items []string, selected int) []*Node {
	if len(items) == 0 {
		return dst
	}
	for len(s.rows) < len(items) {
		n := NewNode("label", "suggestion", "", "")
		n.Parent = s.panel
		s.rows = append(s.rows, n)
	}
	s.panel.Bounds.Height = float32(len(items) * SuggestionHeight)
	dst = append(dst, s.panel)
	for i, it := range items {
		n := s.rows[i]
		n.Text = it
		n.Bounds = Rect{Y: float32(i * SuggestionHeight), Height: SuggestionHeight}
		n.Class = "suggestion"
		if i == selected {
			n.Class = "suggestion-active"
		}
		dst = append(dst, n)
	}
	return dst
}

// Inspector is a right-side panel describing the hovered marker. Shown only when visible is
// true (terminal open and a marker hovered).
type Inspector struct {
	panel    *Node
	title    *Node
	name     *Node
	location *Node
	position *Node
	scale    *Node
	texture  *Node
}

// NewInspector creates an Inspector with nodes styled by the engine's CSS (.inspector, .inspector-title, etc.).
func NewInspector() *Inspector {
	in := &Inspector{
		panel:    NewNode("panel", "inspector", "", ""),
		title:    NewNode("label", "inspector-title", "", "Marker"),
		name:     NewNode("label", "inspector-name", "", ""),
		location: NewNode("label", "inspector-location", "", ""),
		position: NewNode("label", "inspector-position", "", ""),
		scale:    NewNode("label", "inspector-scale", "", ""),
		texture:  NewNode("label", "inspector-texture", "", ""),
	}
	for i, n := range []*Node{in.title, in.name, in.location, in.position, in.scale, in.texture} {
		n.Parent = in.panel
		n.Bounds = Rect{X: 0, Y: float32(4 + i*ModalLineHeight)}
	}
	return in
}

// Selection holds the data shown in the inspector.
// Pass this from the scene; ui does not depend on the globe.
type Selection struct {
	Name     string
	Location string
	Position [3]float32
	Scale    float32
	Texture  string
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from sel.
// When visible is false, dst is returned unchanged. Call every frame so visibility and content stay in sync.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection) []*Node {
	if !visible {
		return dst
	}
	in.name.Text = "Name: " + sel.Name
	in.location.Text = "Location: " + sel.Location
	in.position.Text = fmt.Sprintf("Position: %.2f, %.2f, %.2f", sel.Position[0], sel.Position[1], sel.Position[2])
	in.scale.Text = fmt.Sprintf("Scale: %.2f", sel.Scale)
	if sel.Texture != "" {
		in.texture.Text = "Texture: " + sel.Texture
	} else {
		in.texture.Text = "Texture: none"
	}
	return append(dst, in.panel, in.title, in.name, in.location, in.position, in.scale, in.texture)
}

// SearchPlaceholder is shown in the empty, unfocused search bar.
const SearchPlaceholder = "Search projects or places"

// SearchBar is the query input at the top of the globe, styled by #search.
type SearchBar struct {
	node *Node
}

// NewSearchBar creates the search bar node.
func NewSearchBar() *SearchBar {
	return &SearchBar{node: NewNode("input", "", "search", "")}
}

// AppendNodes appends the bar showing input, with a caret when focused.
func (s *SearchBar) AppendNodes(dst []*Node, input string, focused bool) []*Node {
	switch {
	case focused:
		s.node.Text = input + "|"
	case input == "":
		s.node.Text = SearchPlaceholder
	default:
		s.node.Text = input
	}
	return append(dst, s.node)
}

// Hit reports whether (x, y) is on the bar in the last layout.
func (s *SearchBar) Hit(boxes []Box, x, y float32) bool {
	for _, b := range boxes {
		if b.Node == s.node {
			return contains(b.Rect, x, y)
		}
	}
	return false
}
