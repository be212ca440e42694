package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-globe/internal/grid"
	"portfolio-globe/internal/ui"
)

var (
	cellColor      = rl.NewColor(36, 36, 40, 255)
	cellHoverColor = rl.NewColor(70, 70, 78, 255)
)

// iconInset is the margin between a cell's edge and its image.
const iconInset = 6

// Grid draws the non-LOCATION layouts: one column of project icons per group.
type Grid struct {
	renderer *grid.Renderer
	textures *Textures
	headers  []*ui.Node
}

// NewGrid draws the layouts of renderer.
func NewGrid(renderer *grid.Renderer, tex *Textures) *Grid {
	return &Grid{renderer: renderer, textures: tex}
}

// HandleInput activates the icon under a left click unless blocked.
func (g *Grid) HandleInput(blocked bool) {
	if blocked || g.renderer.GlobeMounted() || !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	m := rl.GetMousePosition()
	g.renderer.Click(m.X, m.Y)
}

// Headers returns one .grid-header label per column, for the overlay.
func (g *Grid) Headers() []*ui.Node {
	l := g.renderer.Layout()
	if l.Globe {
		return nil
	}
	m := g.renderer.Metrics()
	for len(g.headers) < len(l.Columns) {
		g.headers = append(g.headers, ui.NewNode("label", "grid-header", "", ""))
	}
	for i, c := range l.Columns {
		x, _, w, _ := m.CellRect(i, 0)
		n := g.headers[i]
		n.Text = c.Label
		n.Bounds = ui.Rect{X: x, Y: m.OriginY, Width: w, Height: m.HeaderHeight}
	}
	return g.headers[:len(l.Columns)]
}

// Draw draws every cell with its icon; cells without a loaded image are left plain.
func (g *Grid) Draw() {
	l := g.renderer.Layout()
	if l.Globe {
		return
	}
	m := g.renderer.Metrics()
	mouse := rl.GetMousePosition()
	hovered, hasHover := l.CellAt(m, mouse.X, mouse.Y)
	for i, c := range l.Columns {
		for j, p := range c.Projects {
			x, y, w, h := m.CellRect(i, j)
			bg := cellColor
			if hasHover && hovered.ID == p.ID {
				bg = cellHoverColor
			}
			rl.DrawRectangleRec(rl.NewRectangle(x+1, y+1, w-2, h-2), bg)
			tex, ok := g.textures.Get(g.renderer.Icon(p))
			if !ok {
				continue
			}
			src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
			dst := rl.NewRectangle(x+iconInset, y+iconInset, w-2*iconInset, h-2*iconInset)
			rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
		}
	}
}
