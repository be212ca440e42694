package ui

import (
	"fmt"
	"os"
)

// Box is a node resolved for drawing: final screen rectangle, style and text.
type Box struct {
	Node  *Node
	Rect  Rect
	Style ComputedStyle
}

// Engine lays out overlay nodes against a stylesheet. Boxes come back in node order, which
// is also draw order. Styles are resolved again only when the sheet or the node set changes.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	selectors    []string
	cachedStyles []ComputedStyle
	cacheValid   bool
	boxes        []Box
}

// New returns an engine with no stylesheet.
func New() *Engine {
	return &Engine{}
}

// LoadCSS replaces the stylesheet with the one parsed from path.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return fmt.Errorf("ui: %s: %w", path, err)
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet replaces the stylesheet.
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// SetNodes replaces all nodes. Passing the same nodes in the same order, with unchanged
// class and id, keeps the style cache.
func (e *Engine) SetNodes(nodes []*Node) {
	if e.cacheValid && e.sameNodes(nodes) {
		return
	}
	e.nodes = append(e.nodes[:0], nodes...)
	e.selectors = e.selectors[:0]
	for _, n := range nodes {
		e.selectors = append(e.selectors, selectorKey(n))
	}
	e.cacheValid = false
}

func selectorKey(n *Node) string {
	return n.Class + "#" + n.ID
}

func (e *Engine) sameNodes(nodes []*Node) bool {
	if len(e.nodes) != len(nodes) {
		return false
	}
	for i, n := range nodes {
		if e.nodes[i] != n || e.selectors[i] != selectorKey(n) {
			return false
		}
	}
	return true
}

// declarations merges the declarations of every rule matching n, in sheet order.
func (e *Engine) declarations(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		if !rule.Matches(n) {
			continue
		}
		for k, v := range rule.Props {
			merged[k] = v
		}
	}
	return merged
}

// Layout resolves every node against a screen of the given size. Style sizes and pixel
// offsets override the node's own bounds; percentages place the node within the screen
// (or its parent). The returned slice is reused by the next call.
func (e *Engine) Layout(screenW, screenH int32) []Box {
	if !e.cacheValid {
		e.cachedStyles = e.cachedStyles[:0]
		for _, n := range e.nodes {
			e.cachedStyles = append(e.cachedStyles, ResolveProps(e.declarations(n)))
		}
		e.cacheValid = true
	}
	e.boxes = e.boxes[:0]
	resolved := make(map[*Node]Rect, len(e.nodes))
	for i, n := range e.nodes {
		style := e.cachedStyles[i]
		r := n.Bounds
		if style.Width > 0 {
			r.Width = float32(style.Width)
		}
		if style.Height > 0 {
			r.Height = float32(style.Height)
		}
		if style.HasLeft {
			r.X = float32(style.Left)
		}
		if style.HasTop {
			r.Y = float32(style.Top)
		}
		area := Rect{Width: float32(screenW), Height: float32(screenH)}
		if n.Parent != nil {
			if pr, ok := resolved[n.Parent]; ok {
				area = pr
				r.X += pr.X
				r.Y += pr.Y
			}
		}
		if style.LeftPct >= 0 {
			r.X = area.X + (area.Width-r.Width)*float32(style.LeftPct)/100
		}
		if style.TopPct >= 0 {
			r.Y = area.Y + (area.Height-r.Height)*float32(style.TopPct)/100
		}
		resolved[n] = r
		e.boxes = append(e.boxes, Box{Node: n, Rect: r, Style: style})
	}
	return e.boxes
}

// HasStylesheet reports whether any rules are loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}
