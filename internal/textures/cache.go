// Package textures turns project image references (local paths or URLs, PNG, JPEG, GIF
// or WebP) into local PNG or JPEG files the renderer can load, bounded in size.
package textures

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/rs/zerolog"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"portfolio-globe/internal/catalog"
)

// ErrUnsupported is returned for references that are not a supported image format.
var ErrUnsupported = errors.New("unsupported image format")

var supported = map[string]bool{".png": true, ".jpg": true, ".gif": true, ".webp": true}

// DefaultMaxSize bounds the longest edge of a resolved texture in pixels.
const DefaultMaxSize = 512

// Cache resolves image references to local files under dir. Each reference is resolved
// at most once: concurrent callers share one resolution and later calls return the
// recorded path. Safe for concurrent use.
type Cache struct {
	dir     string
	maxSize int
	client  *http.Client
	log     zerolog.Logger

	mu       sync.Mutex
	resolved map[string]string
	flight   singleflight.Group
}

// NewCache returns a cache writing under dir. maxSize <= 0 disables downscaling.
func NewCache(dir string, maxSize int, log zerolog.Logger) *Cache {
	return &Cache{
		dir:      dir,
		maxSize:  maxSize,
		client:   &http.Client{Timeout: 60 * time.Second},
		log:      log,
		resolved: make(map[string]string),
	}
}

// Resolve returns a local path for ref. Remote refs are downloaded. WebP images and
// images larger than the size bound are re-encoded as PNG.
func (c *Cache) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("resolve: empty reference")
	}
	if p, ok := c.lookup(ref); ok {
		return p, nil
	}
	v, err, _ := c.flight.Do(ref, func() (any, error) {
		if p, ok := c.lookup(ref); ok {
			return p, nil
		}
		return c.resolve(ctx, ref)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Cache) lookup(ref string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.resolved[ref]
	return p, ok
}

func (c *Cache) resolve(ctx context.Context, ref string) (string, error) {
	if base, ok := strings.CutSuffix(ref, HoverSuffix); ok {
		return c.resolveHover(ctx, ref, base)
	}

	path := ref
	if isRemote(ref) {
		p, err := c.fetch(ctx, ref)
		if err != nil {
			return "", err
		}
		path = p
	} else if _, err := os.Stat(ref); err != nil {
		return "", fmt.Errorf("resolve %s: %w", ref, err)
	}

	out, err := c.normalize(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", ref, err)
	}
	c.log.Debug().Str("ref", ref).Str("path", out).Msg("texture resolved")

	c.mu.Lock()
	c.resolved[ref] = out
	c.mu.Unlock()
	return out, nil
}

func (c *Cache) resolveHover(ctx context.Context, ref, base string) (string, error) {
	src, err := c.Resolve(ctx, base)
	if err != nil {
		return "", err
	}
	out, err := c.DeriveHover(src)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", ref, err)
	}
	c.mu.Lock()
	c.resolved[ref] = out
	c.mu.Unlock()
	return out, nil
}

func (c *Cache) normalize(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	if !supported[ext] {
		return "", ErrUnsupported
	}

	var img image.Image
	var err error
	if ext == ".webp" {
		img, err = decodeWebP(path)
	} else {
		img, err = imgio.Open(path)
	}
	if err != nil {
		return "", err
	}

	scaled := c.fit(img)
	if ext != ".webp" && ext != ".gif" && scaled == img {
		return path, nil
	}
	out := filepath.Join(c.dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".png")
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", err
	}
	if err := imgio.Save(out, scaled, imgio.PNGEncoder()); err != nil {
		return "", err
	}
	return out, nil
}

// fit scales img down so its longest edge is at most maxSize, keeping the aspect ratio.
// It returns img itself when no scaling is needed.
func (c *Cache) fit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if c.maxSize <= 0 || (w <= c.maxSize && h <= c.maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*c.maxSize/w)
		w = c.maxSize
	} else {
		w = max(1, w*c.maxSize/h)
		h = c.maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}

func decodeWebP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return webp.Decode(f)
}

// Result is the outcome of resolving one reference.
type Result struct {
	Ref  string
	Path string
	Err  error
}

// Prefetch resolves refs with at most limit downloads in flight. Every ref yields one
// Result on the returned channel, which is closed when all are done. Failures do not
// stop the others and are reported only through Result.Err.
func (c *Cache) Prefetch(ctx context.Context, refs []string, limit int) <-chan Result {
	out := make(chan Result, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	go func() {
		defer close(out)
		for _, ref := range refs {
			g.Go(func() error {
				p, err := c.Resolve(ctx, ref)
				out <- Result{Ref: ref, Path: p, Err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()
	return out
}

// HoverSuffix marks a reference to the brightened copy of another reference.
const HoverSuffix = "#hover"

// HoverRef returns the reference of the derived hover image for ref.
func HoverRef(ref string) string {
	return ref + HoverSuffix
}

// WithDerivedHover returns projects with a derived hover reference filled in for every
// project that has an image but no hover image.
func WithDerivedHover(projects []catalog.Project) []catalog.Project {
	out := make([]catalog.Project, len(projects))
	copy(out, projects)
	for i := range out {
		if out[i].HoverImage == "" && out[i].Image != "" {
			out[i].HoverImage = HoverRef(out[i].Image)
		}
	}
	return out
}

// Refs returns the distinct image references of projects, in catalog order.
func Refs(projects []catalog.Project) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range projects {
		for _, r := range []string{p.Image, p.HoverImage} {
			if r == "" || seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// HoverBrightness is the brightness change applied to derived hover icons.
const HoverBrightness = 0.25

// DeriveHover writes a brightened copy of the resolved image at path into the cache dir,
// for projects that ship no hover image, and returns its path.
func (c *Cache) DeriveHover(path string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dst := filepath.Join(c.dir, base+"-hover.png")
	if err := Brighten(path, dst, HoverBrightness); err != nil {
		return "", err
	}
	return dst, nil
}

// Brighten writes a brightened copy of src to dst as PNG. change is in [-1, 1].
func Brighten(src, dst string, change float64) error {
	img, err := imgio.Open(src)
	if err != nil {
		return fmt.Errorf("brighten: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("brighten: %w", err)
	}
	if err := imgio.Save(dst, adjust.Brightness(img, change), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("brighten: %w", err)
	}
	return nil
}
