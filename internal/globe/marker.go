package globe

import (
	"github.com/go-gl/mathgl/mgl32"

	"portfolio-globe/internal/catalog"
	"portfolio-globe/internal/geo"
)

// TextureKind selects which of a marker's two textures is shown.
type TextureKind int

const (
	TextureDefault TextureKind = iota
	TextureHover
)

// Marker is the renderable for one project: a flat, double-sided textured plane sitting
// just above the globe, stacked outward when several projects share a location.
type Marker struct {
	Project catalog.Project

	// Position and Normal are in globe space (before the globe's rotation).
	Position    mgl32.Vec3
	Normal      mgl32.Vec3
	Orientation mgl32.Mat4
	// Stack is the marker's index among projects at the same location.
	Stack int

	DefaultTexture string
	HoverTexture   string
	Active         TextureKind

	Visible bool
	Opacity float32
	Scale   float32
}

// Texture returns the reference of the texture currently shown.
func (m *Marker) Texture() string {
	if m.Active == TextureHover {
		return m.HoverTexture
	}
	return m.DefaultTexture
}

// LocalTransform places the unit quad in globe space: scale, orient, translate.
func (m *Marker) LocalTransform(size float32) mgl32.Mat4 {
	s := size * m.Scale
	return mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z()).
		Mul4(m.Orientation).
		Mul4(mgl32.Scale3D(s, s, s))
}

func (m *Marker) resetVisual() {
	m.Visible = true
	m.Opacity = 1
	m.Scale = 1
}

// placeMarkers builds one marker per project whose location resolves, in catalog order.
// Projects sharing a location are stacked outward by index*size*StackSpacing.
// Unknown locations are skipped and reported through skip.
func placeMarkers(projects []catalog.Project, locs catalog.Locations, radius, size float32, skip func(catalog.Project)) []*Marker {
	counts := make(map[string]int)
	out := make([]*Marker, 0, len(projects))
	for _, p := range projects {
		c, ok := locs.Lookup(p.Location)
		if !ok {
			if skip != nil {
				skip(p)
			}
			continue
		}
		idx := counts[p.Location]
		counts[p.Location] = idx + 1

		base := geo.LatLngToVector3(c.Lat, c.Lng, radius)
		n := geo.SurfaceNormal(base)
		pos := base.Add(n.Mul(float32(idx) * size * StackSpacing)).Add(n.Mul(SurfaceOffset))

		hover := p.HoverImage
		if hover == "" {
			hover = p.Image
		}
		m := &Marker{
			Project:        p,
			Position:       pos,
			Normal:         n,
			Orientation:    geo.OutwardLookAt(pos),
			Stack:          idx,
			DefaultTexture: p.Image,
			HoverTexture:   hover,
		}
		m.resetVisual()
		out = append(out, m)
	}
	return out
}
