package scene

import (
	"portfolio-globe/internal/globe"
	"portfolio-globe/internal/ui"
	"portfolio-globe/internal/ui/draw"
)

// Tooltip text metrics, matching .tooltip in globe.css.
const (
	tooltipFontSize = 16
	tooltipPadding  = 6
)

// Frame is the 2D state drawn on top of the globe or grid this frame.
type Frame struct {
	Tooltip       globe.Tooltip
	Inspector     *ui.Selection // nil hides the inspector
	Headers       []*ui.Node
	SearchInput   string
	SearchFocused bool
	Suggestions   []string
	Selected      int
	ModalLines    []string // nil when the modal is closed
}

// Overlay lays out the 2D widgets with the ui engine and draws them.
type Overlay struct {
	engine   *ui.Engine
	renderer *draw.Renderer

	tooltip     *ui.Tooltip
	modal       *ui.Modal
	search      *ui.SearchBar
	suggestions *ui.Suggestions
	inspector   *ui.Inspector

	nodes []*ui.Node
	boxes []ui.Box
}

// NewOverlay returns an overlay drawing through renderer, styled by engine's stylesheet.
func NewOverlay(engine *ui.Engine, renderer *draw.Renderer) *Overlay {
	return &Overlay{
		engine:      engine,
		renderer:    renderer,
		tooltip:     ui.NewTooltip(),
		modal:       ui.NewModal(),
		search:      ui.NewSearchBar(),
		suggestions: ui.NewSuggestions(),
		inspector:   ui.NewInspector(),
	}
}

// Draw lays out and draws f on a screen of the given size. The modal is drawn last, on top.
func (o *Overlay) Draw(f Frame, width, height int32) {
	o.nodes = o.nodes[:0]
	o.nodes = append(o.nodes, f.Headers...)
	tw := o.renderer.MeasureText(f.Tooltip.Text, tooltipFontSize) + 2*tooltipPadding
	o.nodes = o.tooltip.AppendNodes(o.nodes, f.Tooltip.Visible, f.Tooltip.Text, f.Tooltip.X, f.Tooltip.Y, tw, tooltipFontSize+2*tooltipPadding)
	if f.Inspector != nil {
		o.nodes = o.inspector.AppendNodes(o.nodes, true, *f.Inspector)
	}
	o.nodes = o.search.AppendNodes(o.nodes, f.SearchInput, f.SearchFocused)
	o.nodes = o.suggestions.AppendNodes(o.nodes, f.Suggestions, f.Selected)
	o.nodes = o.modal.AppendNodes(o.nodes, f.ModalLines != nil, f.ModalLines)

	o.engine.SetNodes(o.nodes)
	o.boxes = o.engine.Layout(width, height)
	o.renderer.Boxes(o.boxes)
}

// ModalCloseHit reports whether a click at (x, y) dismisses the modal.
func (o *Overlay) ModalCloseHit(x, y float32) bool {
	return o.modal.CloseHit(o.boxes, x, y)
}

// SearchHit reports whether (x, y) is on the search bar.
func (o *Overlay) SearchHit(x, y float32) bool {
	return o.search.Hit(o.boxes, x, y)
}
