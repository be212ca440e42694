package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-globe/internal/globe"
	"portfolio-globe/internal/ui/draw"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime overlays: FPS, heap size and the globe's interaction state.
// All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	renderer     *draw.Renderer
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New(renderer *draw.Renderer) *Debug {
	return &Debug{renderer: renderer}
}

// ToggleFPS flips the FPS overlay and returns the new state.
func (d *Debug) ToggleFPS() bool {
	d.ShowFPS = !d.ShowFPS
	return d.ShowFPS
}

// ToggleMem flips the heap counter drawn under the FPS line and returns the new state.
func (d *Debug) ToggleMem() bool {
	d.ShowMemAlloc = !d.ShowMemAlloc
	return d.ShowMemAlloc
}

// GlobeLines describes v for the overlay: zoom, rotation, gesture phase and hover.
func GlobeLines(v *globe.View) []string {
	zoom, targetZoom := v.Zoom()
	rot, _ := v.Rotation()
	hover := "none"
	if id, ok := v.Hovered(); ok {
		hover = fmt.Sprintf("#%d", id)
	}
	return []string{
		fmt.Sprintf("Zoom: %.2f -> %.2f", zoom, targetZoom),
		fmt.Sprintf("Rot: %.2f, %.2f", rot.X(), rot.Y()),
		fmt.Sprintf("Phase: %s  Hover: %s", v.Phase(), hover),
	}
}

// Draw renders the enabled overlays at the top right, then extra lines under them when
// the FPS overlay is on. FPS and memory text is only recomputed every updateInterval frames.
func (d *Debug) Draw(extra []string) {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	y := float32(fpsPadding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.line(d.lastFpsText, y)
		y += fpsLineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.line(d.lastMemText, y)
		y += fpsLineHeight
	}
	if !d.ShowFPS {
		return
	}
	for _, l := range extra {
		d.line(l, y)
		y += fpsLineHeight
	}
}

func (d *Debug) line(text string, y float32) {
	if text == "" {
		return
	}
	w := d.renderer.MeasureText(text, fpsFontSize)
	x := float32(rl.GetScreenWidth()) - w - fpsPadding
	d.renderer.Text(text, x, y, fpsFontSize, rl.Green)
}
