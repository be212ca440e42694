package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"portfolio-globe/internal/textures"
)

// Textures maps image references to GPU textures. Files arrive from the prefetch
// channel; GPU uploads happen lazily on the main thread the first time a reference is drawn.
type Textures struct {
	log    zerolog.Logger
	paths  map[string]string       // reference -> local file
	loaded map[string]rl.Texture2D // local file -> texture
	failed map[string]bool
}

// NewTextures returns an empty texture map.
func NewTextures(log zerolog.Logger) *Textures {
	return &Textures{
		log:    log,
		paths:  make(map[string]string),
		loaded: make(map[string]rl.Texture2D),
		failed: make(map[string]bool),
	}
}

// Resolve records that ref is available at path.
func (t *Textures) Resolve(ref, path string) {
	t.paths[ref] = path
}

// Drain takes every result ready on results without blocking and returns how many arrived.
// Failed downloads are logged once; their markers draw untextured.
func (t *Textures) Drain(results <-chan textures.Result) int {
	n := 0
	for {
		select {
		case r, ok := <-results:
			if !ok {
				return n
			}
			n++
			if r.Err != nil {
				t.log.Warn().Err(r.Err).Str("ref", r.Ref).Msg("texture unavailable")
				continue
			}
			t.Resolve(r.Ref, r.Path)
		default:
			return n
		}
	}
}

// Get returns the texture for ref, uploading it on first use.
func (t *Textures) Get(ref string) (rl.Texture2D, bool) {
	path, ok := t.paths[ref]
	if !ok || t.failed[path] {
		return rl.Texture2D{}, false
	}
	if tex, ok := t.loaded[path]; ok {
		return tex, true
	}
	tex := rl.LoadTexture(path)
	if !rl.IsTextureValid(tex) {
		t.failed[path] = true
		t.log.Warn().Str("path", path).Msg("texture upload failed")
		return rl.Texture2D{}, false
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	t.loaded[path] = tex
	return tex, true
}

// Unload frees every uploaded texture.
func (t *Textures) Unload() {
	for p, tex := range t.loaded {
		rl.UnloadTexture(tex)
		delete(t.loaded, p)
	}
}
