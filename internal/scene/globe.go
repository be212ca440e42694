package scene

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"portfolio-globe/internal/globe"
	"portfolio-globe/internal/primitives"
)

// wheelPixels converts one raylib wheel notch into pixel-unit delta. Positive notches
// scroll up, which zooms in.
const wheelPixels = -100

// lightDir is the direction to the light: upper left, in front of the globe.
var lightDir = [3]float32{-0.6, 0.8, 1}

// Globe feeds raylib input to a globe.View and draws it into the view's surface rectangle.
type Globe struct {
	view     *globe.View
	prims    *primitives.Registry
	textures *Textures
	skybox   *Skybox

	target     rl.RenderTexture2D
	hasTarget  bool
	inside     bool
	pressed    bool
	lastMouse  rl.Vector2
	lastCursor rl.MouseCursor
}

// NewGlobe wraps view for drawing. skybox may be nil.
func NewGlobe(view *globe.View, prims *primitives.Registry, tex *Textures, skybox *Skybox) *Globe {
	return &Globe{view: view, prims: prims, textures: tex, skybox: skybox, lastMouse: rl.NewVector2(-1, -1), lastCursor: -1}
}

// View returns the wrapped view.
func (g *Globe) View() *globe.View { return g.view }

// Resize resizes the view's surface and the offscreen target it is drawn into.
func (g *Globe) Resize(width, height int32) {
	g.view.Resize(float32(width), float32(height))
	s := g.view.Surface()
	if g.hasTarget {
		rl.UnloadRenderTexture(g.target)
		g.hasTarget = false
	}
	if s.Width < 1 || s.Height < 1 {
		return
	}
	g.target = rl.LoadRenderTexture(int32(s.Width), int32(s.Height))
	g.hasTarget = true
}

// HandleInput translates this frame's mouse state into pointer events. When blocked
// (a modal or another widget owns the pointer) the globe sees the pointer leave.
func (g *Globe) HandleInput(blocked bool) {
	mouse := rl.GetMousePosition()
	x, y := mouse.X, mouse.Y
	inside := !blocked && rl.IsCursorOnScreen() && g.view.Surface().Contains(x, y)

	if g.inside && !inside {
		g.view.PointerLeave()
		g.pressed = false
	}
	g.inside = inside
	if !inside {
		g.lastMouse = mouse
		g.setCursor(rl.MouseCursorDefault)
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.view.PointerDown(x, y)
		g.pressed = true
	}
	if mouse != g.lastMouse {
		g.view.PointerMove(x, y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) && g.pressed {
		g.view.PointerUp(x, y)
		g.pressed = false
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.view.Wheel(wheel * wheelPixels)
	}
	g.lastMouse = mouse
	g.syncCursor()
}

func (g *Globe) syncCursor() {
	switch g.view.Cursor() {
	case globe.CursorPointer:
		g.setCursor(rl.MouseCursorPointingHand)
	case globe.CursorGrabbing:
		g.setCursor(rl.MouseCursorResizeAll)
	default:
		g.setCursor(rl.MouseCursorDefault)
	}
}

func (g *Globe) setCursor(c rl.MouseCursor) {
	if c == g.lastCursor {
		return
	}
	g.lastCursor = c
	rl.SetMouseCursor(c)
}

// Update advances the view's animation by one frame.
func (g *Globe) Update() {
	g.view.Update()
}

func camera3D(c globe.Camera) rl.Camera3D {
	p := c.Position()
	return rl.Camera3D{
		Position:   rl.NewVector3(p.X(), p.Y(), p.Z()),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the sphere and markers offscreen and blits the result onto the surface.
func (g *Globe) Draw() {
	if !g.hasTarget {
		return
	}
	cam := g.view.Camera()
	rcam := camera3D(cam)

	rl.BeginTextureMode(g.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginMode3D(rcam)
	if g.skybox != nil {
		g.skybox.Draw(rcam.Position)
	}
	pos := cam.Position()
	g.prims.SetView([3]float32{pos.X(), pos.Y(), pos.Z()}, lightDir)

	r := g.view.Radius()
	sphere := g.view.GlobeTransform().Mul4(mgl32.Scale3D(r, r, r))
	tex, ok := g.textures.Get(g.prims.Style().SphereTexture)
	if ok {
		g.prims.DrawWithTexture(primitives.Sphere, sphere, tex, 1)
	} else {
		g.prims.Draw(primitives.Sphere, sphere)
	}
	g.drawMarkers(cam.View())
	rl.EndMode3D()
	rl.EndTextureMode()

	s := g.view.Surface()
	src := rl.NewRectangle(0, 0, float32(g.target.Texture.Width), -float32(g.target.Texture.Height))
	rl.DrawTextureRec(g.target.Texture, src, rl.NewVector2(s.X, s.Y), rl.White)
}

// drawMarkers draws visible markers back to front so translucent planes blend correctly.
func (g *Globe) drawMarkers(view mgl32.Mat4) {
	items := g.view.DrawList()
	depth := make([]float32, len(items))
	for i, it := range items {
		depth[i] = view.Mul4x1(it.World.Col(3)).Z()
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return depth[idx[a]] < depth[idx[b]] })
	for _, i := range idx {
		it := items[i]
		tex, ok := g.textures.Get(it.Texture)
		if !ok {
			g.prims.Draw(primitives.Quad, it.World)
			continue
		}
		g.prims.DrawWithTexture(primitives.Quad, it.World, tex, it.Opacity)
	}
}

// Release frees the offscreen target and restores the default cursor.
func (g *Globe) Release() {
	if g.hasTarget {
		rl.UnloadRenderTexture(g.target)
		g.hasTarget = false
	}
	if g.inside {
		g.view.PointerLeave()
		g.inside = false
	}
	g.setCursor(rl.MouseCursorDefault)
}
