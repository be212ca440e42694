package globe

// Interaction tuning. Values are per frame (the loop runs at a fixed 60 FPS) or per pixel.
const (
	// RotationSpeed converts pointer movement in pixels to radians of target rotation.
	RotationSpeed = 0.005
	// Damping is applied to the rotation velocity every frame the pointer is released.
	Damping = 0.95
	// Inertia is the fraction of the remaining rotation covered each frame.
	Inertia = 0.92
	// ZoomSpeed scales wheel delta (pixel units) into camera distance.
	ZoomSpeed = 0.001
	// ZoomSmoothing is the fraction of the remaining zoom covered each frame.
	ZoomSmoothing = 0.15
	MinZoom       = 11
	MaxZoom       = 12

	// DragThreshold is the press-relative movement, in pixels on either axis, that turns a press into a drag.
	DragThreshold = 3

	HoverScale  = 1.8
	SearchScale = 1.2
	DimOpacity  = 0.5

	// StackSpacing is the fraction of the marker size between co-located markers.
	StackSpacing = 0.13
	// SurfaceOffset lifts every marker off the sphere to avoid z-fighting.
	SurfaceOffset = 0.01

	// Surface sizing policy: fraction of the viewport given to the globe.
	SurfaceWidthFraction  = 0.9
	SurfaceHeightFraction = 0.7

	// tooltipOffset places the tooltip below and right of the pointer, in pixels.
	tooltipOffset = 12
)

// Options configures a View.
type Options struct {
	Radius     float32 // sphere radius in world units
	MarkerSize float32 // edge length of a marker plane at unit scale
	FovY       float32 // vertical field of view in degrees
	Near, Far  float32

	// Initial viewport; the surface is sized from it with the 90% × 70% policy.
	ViewportWidth, ViewportHeight float32
}

// DefaultOptions returns the standard globe: radius 5, 0.5-unit markers, 45° camera.
func DefaultOptions() Options {
	return Options{
		Radius:         5,
		MarkerSize:     0.5,
		FovY:           45,
		Near:           0.1,
		Far:            1000,
		ViewportWidth:  1280,
		ViewportHeight: 720,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Radius <= 0 {
		o.Radius = d.Radius
	}
	if o.MarkerSize <= 0 {
		o.MarkerSize = d.MarkerSize
	}
	if o.FovY <= 0 {
		o.FovY = d.FovY
	}
	if o.Near <= 0 {
		o.Near = d.Near
	}
	if o.Far <= o.Near {
		o.Far = d.Far
	}
	if o.ViewportWidth <= 0 || o.ViewportHeight <= 0 {
		o.ViewportWidth, o.ViewportHeight = d.ViewportWidth, d.ViewportHeight
	}
	return o
}
