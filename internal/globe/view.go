package globe

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"

	"portfolio-globe/internal/catalog"
	"portfolio-globe/internal/events"
	"portfolio-globe/internal/geo"
)

// Cursor is the pointer feedback the front-end should show over the surface.
type Cursor string

const (
	CursorGrab     Cursor = "grab"
	CursorGrabbing Cursor = "grabbing"
	CursorPointer  Cursor = "pointer"
)

// Tooltip is the floating project title shown next to a hovered marker.
type Tooltip struct {
	Text    string
	X, Y    float32
	Visible bool
}

// hoverState is None (marker == nil) or Hovering(marker). It names the marker itself, not
// the project id, so duplicate ids cannot alias. Only setHover changes it.
type hoverState struct {
	marker *Marker
}

// View is the interactive globe: markers on a textured sphere, drag rotation with
// inertia, smoothed zoom, and ray picking for hover and click. It is driven from a
// single goroutine: pointer calls as input arrives, Update once per frame.
type View struct {
	opts Options
	log  zerolog.Logger
	bus  *events.Bus

	markers []*Marker

	camera  Camera
	surface Rect

	rotation       mgl32.Vec2 // x, y radians
	targetRotation mgl32.Vec2
	velocity       mgl32.Vec2
	zoom           float32
	targetZoom     float32

	gesture gesture
	hover   hoverState
	tooltip *Tooltip
	cursor  Cursor

	unsubscribe []func()
}

// New builds the globe for projects. Projects whose location is missing from locs get no
// marker; a warning is logged and construction continues.
// The view listens for ModalClosed on bus to clear hover state after a detail panel closes.
func New(opts Options, projects []catalog.Project, locs catalog.Locations, bus *events.Bus, log zerolog.Logger) *View {
	opts = opts.withDefaults()
	if bus == nil {
		bus = events.NewBus()
	}
	v := &View{
		opts:       opts,
		log:        log,
		bus:        bus,
		zoom:       MaxZoom,
		targetZoom: MaxZoom,
		tooltip:    &Tooltip{},
		cursor:     CursorGrab,
	}
	v.camera = Camera{FovY: opts.FovY, Near: opts.Near, Far: opts.Far, Distance: v.zoom}
	v.Resize(opts.ViewportWidth, opts.ViewportHeight)

	v.markers = placeMarkers(projects, locs, opts.Radius, opts.MarkerSize, func(p catalog.Project) {
		v.log.Warn().Int("project", p.ID).Str("location", p.Location).Msg("no coordinate for location, marker skipped")
	})
	v.unsubscribe = append(v.unsubscribe, bus.ModalClosed.Subscribe(func(events.ModalClosed) {
		v.setHover(nil)
		v.hideTooltip()
	}))
	v.log.Debug().Int("markers", len(v.markers)).Int("projects", len(projects)).Msg("globe built")
	return v
}

// Markers returns a deep copy of the current markers. Mutating the result has no effect on the view.
func (v *View) Markers() []Marker {
	src := make([]Marker, len(v.markers))
	for i, m := range v.markers {
		src[i] = *m
	}
	var out []Marker
	if err := copier.CopyWithOption(&out, &src, copier.Option{DeepCopy: true}); err != nil {
		v.log.Error().Err(err).Msg("marker snapshot")
		return src
	}
	return out
}

// UpdateMarkersForSearch shows markers whose title, typology, program or location contains
// query (case-insensitive) at SearchScale and hides the rest at DimOpacity.
func (v *View) UpdateMarkersForSearch(query string) {
	v.applyFilter(func(p catalog.Project) bool {
		return catalog.MatchesQuery(p, query)
	})
}

// FilterMarkersByKeyword applies the same visual treatment as a search, using the curated
// keyword rules of catalog.MatchesKeyword.
func (v *View) FilterMarkersByKeyword(keyword string) {
	v.applyFilter(func(p catalog.Project) bool {
		return catalog.MatchesKeyword(p, keyword)
	})
}

// ResetAllMarkers makes every marker visible, opaque and unit scale.
func (v *View) ResetAllMarkers() {
	v.setHover(nil)
	v.hideTooltip()
	for _, m := range v.markers {
		m.resetVisual()
	}
}

func (v *View) applyFilter(match func(catalog.Project) bool) {
	// Hover is cleared first so a filtered marker never keeps its hover texture.
	v.setHover(nil)
	v.hideTooltip()
	for _, m := range v.markers {
		if match(m.Project) {
			m.Visible = true
			m.Opacity = 1
			m.Scale = SearchScale
		} else {
			m.Visible = false
			m.Opacity = DimOpacity
		}
	}
}

// Resize applies the surface sizing policy (90% of the viewport width, 70% of its height,
// centred) and updates the camera aspect.
func (v *View) Resize(viewportWidth, viewportHeight float32) {
	w := viewportWidth * SurfaceWidthFraction
	h := viewportHeight * SurfaceHeightFraction
	v.surface = Rect{
		X:      (viewportWidth - w) / 2,
		Y:      (viewportHeight - h) / 2,
		Width:  w,
		Height: h,
	}
	if h > 0 {
		v.camera.Aspect = w / h
	}
}

// Cleanup removes the tooltip. Bus subscriptions are left in place; see Detach.
func (v *View) Cleanup() {
	v.tooltip = nil
}

// Detach drops the view's bus subscriptions. Call it when the view is discarded for good.
func (v *View) Detach() {
	for _, u := range v.unsubscribe {
		u()
	}
	v.unsubscribe = nil
}

// Surface returns the render surface rectangle.
func (v *View) Surface() Rect { return v.surface }

// Camera returns the camera for this frame.
func (v *View) Camera() Camera { return v.camera }

// Cursor returns the cursor to show.
func (v *View) Cursor() Cursor { return v.cursor }

// Zoom returns the current and target camera distance.
func (v *View) Zoom() (current, target float32) { return v.zoom, v.targetZoom }

// Rotation returns the current and target globe rotation (x, y radians).
func (v *View) Rotation() (current, target mgl32.Vec2) { return v.rotation, v.targetRotation }

// Velocity returns the rotation velocity in radians per frame.
func (v *View) Velocity() mgl32.Vec2 { return v.velocity }

// Radius returns the sphere radius.
func (v *View) Radius() float32 { return v.opts.Radius }

// GlobeTransform is the rotation applied to the sphere and all markers.
func (v *View) GlobeTransform() mgl32.Mat4 {
	return geo.EulerXY(v.rotation.X(), v.rotation.Y())
}

// Tooltip returns the tooltip, or false once Cleanup has removed it.
func (v *View) Tooltip() (Tooltip, bool) {
	if v.tooltip == nil {
		return Tooltip{}, false
	}
	return *v.tooltip, true
}

// Hovered returns the project id of the hovered marker.
func (v *View) Hovered() (int, bool) {
	if v.hover.marker == nil {
		return 0, false
	}
	return v.hover.marker.Project.ID, true
}

// DrawItem is what the renderer needs for one visible marker.
type DrawItem struct {
	ProjectID int
	Texture   string
	World     mgl32.Mat4
	Opacity   float32
}

// DrawList returns the visible markers with their world transforms for this frame.
func (v *View) DrawList() []DrawItem {
	g := v.GlobeTransform()
	out := make([]DrawItem, 0, len(v.markers))
	for _, m := range v.markers {
		if !m.Visible {
			continue
		}
		out = append(out, DrawItem{
			ProjectID: m.Project.ID,
			Texture:   m.Texture(),
			World:     g.Mul4(m.LocalTransform(v.opts.MarkerSize)),
			Opacity:   m.Opacity,
		})
	}
	return out
}

// setHover is the only place hover state changes. The previous marker is always restored
// before the next one is raised, so at most one marker is ever in the hovered state.
func (v *View) setHover(next *Marker) {
	cur := v.hover.marker
	if cur == next {
		return
	}
	if cur != nil {
		cur.Active = TextureDefault
		cur.Scale = 1
	}
	if next == nil {
		v.hover = hoverState{}
		return
	}
	next.Active = TextureHover
	next.Scale = HoverScale
	v.hover = hoverState{marker: next}
}

func (v *View) hideTooltip() {
	if v.tooltip != nil {
		v.tooltip.Visible = false
	}
}

func (v *View) showTooltip(text string, x, y float32) {
	if v.tooltip == nil {
		return
	}
	v.tooltip.Text = text
	v.tooltip.X = x + tooltipOffset
	v.tooltip.Y = y + tooltipOffset
	v.tooltip.Visible = true
}
