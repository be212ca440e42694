// Package draw renders laid-out ui boxes with raylib.
package draw

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-globe/internal/ui"
)

// fontPaths are tried in order; the first that exists is loaded. Falls back to raylib's default font.
var fontPaths = []string{
	"assets/fonts/Inter-Regular.ttf",
	"../../assets/fonts/Inter-Regular.ttf",
}

// fontLoadSize is the rasterised size; smaller sizes are scaled down from it.
const fontLoadSize = 48

// Renderer draws boxes: background, border, then text inset by the style's padding.
type Renderer struct {
	font rl.Font
}

// New returns a renderer using the raylib default font until LoadFont succeeds.
func New() *Renderer {
	return &Renderer{}
}

// LoadFont loads the first font found in fontPaths. Must be called after the window exists.
func (r *Renderer) LoadFont() bool {
	for _, p := range fontPaths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		f := rl.LoadFontEx(p, fontLoadSize, nil, 0)
		if f.Texture.ID == 0 {
			continue
		}
		rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
		r.font = f
		return true
	}
	return false
}

// Unload frees the loaded font.
func (r *Renderer) Unload() {
	if r.font.Texture.ID != 0 {
		rl.UnloadFont(r.font)
		r.font = rl.Font{}
	}
}

// Color converts a ui color.
func Color(c ui.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// MeasureText returns the width of text at size.
func (r *Renderer) MeasureText(text string, size int32) float32 {
	if r.font.Texture.ID != 0 {
		return rl.MeasureTextEx(r.font, text, float32(size), 1).X
	}
	return float32(rl.MeasureText(text, size))
}

// Text draws text at (x, y).
func (r *Renderer) Text(text string, x, y float32, size int32, c rl.Color) {
	if r.font.Texture.ID != 0 {
		rl.DrawTextEx(r.font, text, rl.NewVector2(x, y), float32(size), 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), size, c)
}

// Boxes draws boxes in order.
func (r *Renderer) Boxes(boxes []ui.Box) {
	for _, b := range boxes {
		rect := rl.NewRectangle(b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height)
		if b.Style.Background.A > 0 && rect.Width > 0 && rect.Height > 0 {
			rl.DrawRectangleRec(rect, Color(b.Style.Background))
		}
		if b.Style.HasBorder && rect.Width > 0 && rect.Height > 0 {
			rl.DrawRectangleLinesEx(rect, 1, Color(b.Style.Border))
		}
		if b.Node.Text != "" {
			pad := float32(b.Style.Padding)
			r.Text(b.Node.Text, b.Rect.X+pad, b.Rect.Y+pad, b.Style.FontSize, Color(b.Style.Color))
		}
	}
}
