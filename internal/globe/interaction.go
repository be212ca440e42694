package globe

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"portfolio-globe/internal/events"
)

// Phase is the pointer gesture state: Idle → MouseDown → Dragging (or back to Idle as a click).
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMouseDown
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseMouseDown:
		return "mouse-down"
	case PhaseDragging:
		return "dragging"
	}
	return "idle"
}

// gesture is reset on every press.
type gesture struct {
	phase          Phase
	pressX, pressY float32
	prevX, prevY   float32
}

func (g gesture) pressed() bool { return g.phase != PhaseIdle }

// Phase returns the current gesture phase.
func (v *View) Phase() Phase { return v.gesture.phase }

// PointerDown starts a gesture at window point (x, y).
func (v *View) PointerDown(x, y float32) {
	v.gesture = gesture{phase: PhaseMouseDown, pressX: x, pressY: y, prevX: x, prevY: y}
	v.updateCursor()
}

// PointerMove handles pointer motion. While pressed it promotes the gesture to a drag once
// the pointer has moved more than DragThreshold pixels from the press on either axis, and a
// drag feeds rotation velocity. Hover picking runs on every move regardless of the gesture.
func (v *View) PointerMove(x, y float32) {
	g := &v.gesture
	if g.pressed() {
		if g.phase == PhaseMouseDown && (math32.Abs(x-g.pressX) > DragThreshold || math32.Abs(y-g.pressY) > DragThreshold) {
			g.phase = PhaseDragging
		}
		if g.phase == PhaseDragging {
			dx := x - g.prevX
			dy := y - g.prevY
			v.velocity = mgl32.Vec2{dy * RotationSpeed, dx * RotationSpeed}
			v.targetRotation = v.targetRotation.Add(v.velocity)
		}
		g.prevX, g.prevY = x, y
	}
	v.updateHover(x, y)
}

// PointerUp ends the gesture. A press that never became a drag is a click.
func (v *View) PointerUp(x, y float32) {
	wasClick := v.gesture.phase == PhaseMouseDown
	v.gesture = gesture{}
	if wasClick {
		v.click(x, y)
	}
	v.updateCursor()
}

// PointerLeave cancels any press or drag and clears hover, so a gesture can't stick when
// the pointer leaves the surface mid-drag.
func (v *View) PointerLeave() {
	v.gesture = gesture{}
	v.setHover(nil)
	v.hideTooltip()
	v.cursor = CursorGrab
}

// Wheel moves the zoom target by deltaY (pixel units, positive = away) and reports that
// the event was consumed, so the host must not scroll anything else with it.
func (v *View) Wheel(deltaY float32) (handled bool) {
	v.targetZoom = mgl32.Clamp(v.targetZoom+deltaY*ZoomSpeed, MinZoom, MaxZoom)
	return true
}

// Update advances one animation frame: velocity decay and coasting while released, then
// exponential easing of rotation and zoom toward their targets.
func (v *View) Update() {
	if !v.gesture.pressed() {
		v.velocity = v.velocity.Mul(Damping)
		v.targetRotation = v.targetRotation.Add(v.velocity)
	}
	v.rotation = v.rotation.Add(v.targetRotation.Sub(v.rotation).Mul(Inertia))
	v.zoom += (v.targetZoom - v.zoom) * ZoomSmoothing
	v.camera.Distance = v.zoom
}

// Pick returns the project id of the nearest visible marker under window point (x, y).
func (v *View) Pick(x, y float32) (int, bool) {
	m := v.pick(x, y)
	if m == nil {
		return 0, false
	}
	return m.Project.ID, true
}

func (v *View) pick(x, y float32) *Marker {
	nx, ny := v.surface.NDC(x, y)
	ray := v.camera.RayThrough(nx, ny)
	g := v.GlobeTransform()

	var best *Marker
	bestDist := math32.Inf(1)
	for _, m := range v.markers {
		if !m.Visible {
			continue
		}
		d, ok := intersectQuad(ray, g.Mul4(m.LocalTransform(v.opts.MarkerSize)))
		if ok && d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

func (v *View) updateHover(x, y float32) {
	m := v.pick(x, y)
	if m == nil {
		v.setHover(nil)
		v.hideTooltip()
		v.updateCursor()
		return
	}
	// setHover is a no-op for the marker already hovered; only the tooltip follows the pointer.
	v.setHover(m)
	v.showTooltip(m.Project.Title, x, y)
	v.cursor = CursorPointer
}

func (v *View) click(x, y float32) {
	m := v.pick(x, y)
	if m == nil {
		return
	}
	v.log.Debug().Int("project", m.Project.ID).Msg("marker activated")
	v.bus.MarkerActivated.Publish(events.MarkerActivated{Project: m.Project})
}

func (v *View) updateCursor() {
	switch {
	case v.hover.marker != nil:
		v.cursor = CursorPointer
	case v.gesture.phase == PhaseDragging:
		v.cursor = CursorGrabbing
	default:
		v.cursor = CursorGrab
	}
}
