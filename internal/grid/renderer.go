package grid

import (
	"github.com/rs/zerolog"

	"portfolio-globe/internal/catalog"
	"portfolio-globe/internal/events"
)

// GlobeHost creates and tears down the globe view. The renderer only calls it on
// transitions into and out of the LOCATION filter.
type GlobeHost interface {
	MountGlobe()
	UnmountGlobe()
}

// Renderer keeps the active layout and swaps the globe in for LOCATION. Column layouts
// are built from the visible projects, which search narrows.
type Renderer struct {
	visible         []catalog.Project
	host            GlobeHost
	bus             *events.Bus
	log             zerolog.Logger
	metrics         Metrics
	showHoverImages bool

	layout  Layout
	mounted bool
}

// NewRenderer returns a renderer with no layout applied.
func NewRenderer(projects []catalog.Project, host GlobeHost, bus *events.Bus, showHoverImages bool, log zerolog.Logger) *Renderer {
	return &Renderer{
		visible:         projects,
		host:            host,
		bus:             bus,
		log:             log,
		metrics:         DefaultMetrics(),
		showHoverImages: showHoverImages,
	}
}

// Apply switches to filter f.
func (r *Renderer) Apply(f Filter) {
	r.layout = Build(r.visible, f)
	switch {
	case r.layout.Globe && !r.mounted:
		r.host.MountGlobe()
		r.mounted = true
	case !r.layout.Globe && r.mounted:
		r.host.UnmountGlobe()
		r.mounted = false
	}
	r.log.Info().Str("filter", string(f)).Int("columns", len(r.layout.Columns)).Msg("layout applied")
	r.bus.LayoutChanged.Publish(events.LayoutChanged{Filter: string(f), Globe: r.layout.Globe})
}

// Narrow replaces the visible projects and rebuilds a column layout in place. The globe
// does its own dimming, so a LOCATION layout is left alone.
func (r *Renderer) Narrow(projects []catalog.Project) {
	r.visible = projects
	if r.layout.Filter == "" || r.layout.Globe {
		return
	}
	r.layout = Build(r.visible, r.layout.Filter)
	r.log.Debug().Int("visible", len(projects)).Int("columns", len(r.layout.Columns)).Msg("grid narrowed")
}

// Layout returns the active layout.
func (r *Renderer) Layout() Layout { return r.layout }

// GlobeMounted reports whether the globe is currently mounted.
func (r *Renderer) GlobeMounted() bool { return r.mounted }

// Metrics returns the cell geometry.
func (r *Renderer) Metrics() Metrics { return r.metrics }

// SetMetrics replaces the cell geometry.
func (r *Renderer) SetMetrics(m Metrics) { r.metrics = m }

// ShowHoverImages reports which image set the cells use.
func (r *Renderer) ShowHoverImages() bool { return r.showHoverImages }

// SetShowHoverImages toggles the image set.
func (r *Renderer) SetShowHoverImages(v bool) { r.showHoverImages = v }

// Icon returns the image for p under the current image set.
func (r *Renderer) Icon(p catalog.Project) string {
	return Icon(p, r.showHoverImages)
}

// Click activates the grid icon under (x, y). It reports whether a project was hit.
func (r *Renderer) Click(x, y float32) bool {
	if r.layout.Globe {
		return false
	}
	p, ok := r.layout.CellAt(r.metrics, x, y)
	if !ok {
		return false
	}
	r.bus.MarkerActivated.Publish(events.MarkerActivated{Project: p})
	return true
}
