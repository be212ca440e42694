package textures

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-globe/internal/catalog"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, pngBytes(t, w, h, c), 0644))
}

func imageSize(t *testing.T, path string) (int, int) {
	t.Helper()
	img, err := imgio.Open(path)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestResolve_LocalSmallPNGUnchanged(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "small.png")
	writePNG(t, src, 8, 4, color.White)

	c := NewCache(filepath.Join(dir, "cache"), 16, zerolog.Nop())
	got, err := c.Resolve(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestResolve_DownscalesLargeImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	writePNG(t, src, 64, 32, color.White)

	c := NewCache(filepath.Join(dir, "cache"), 16, zerolog.Nop())
	got, err := c.Resolve(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache", "wide.png"), got)

	w, h := imageSize(t, got)
	assert.Equal(t, 16, w)
	assert.Equal(t, 8, h)
}

func TestResolve_Errors(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, 0, zerolog.Nop())

	_, err := c.Resolve(context.Background(), "")
	assert.Error(t, err)

	_, err = c.Resolve(context.Background(), filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hi"), 0644))
	_, err = c.Resolve(context.Background(), txt)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestResolve_DownloadsOnce(t *testing.T) {
	body := pngBytes(t, 4, 4, color.Black)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := NewCache(t.TempDir(), 0, zerolog.Nop())
	ref := srv.URL + "/img/cover?v=2"
	first, err := c.Resolve(context.Background(), ref)
	require.NoError(t, err)
	second, err := c.Resolve(context.Background(), ref)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, ".png", filepath.Ext(first))
	assert.Contains(t, filepath.Base(first), "cover-")
	w, h := imageSize(t, first)
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)
}

func TestPrefetch_ImageAndHoverShareOneResolution(t *testing.T) {
	body := pngBytes(t, 64, 64, color.RGBA{R: 60, G: 60, B: 60, A: 255})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := NewCache(t.TempDir(), 16, zerolog.Nop())
	img := srv.URL + "/tower.png"
	got := make(map[string]Result)
	for r := range c.Prefetch(context.Background(), []string{img, HoverRef(img)}, 2) {
		got[r.Ref] = r
	}
	require.Len(t, got, 2)
	require.NoError(t, got[img].Err)
	require.NoError(t, got[HoverRef(img)].Err)
	assert.Equal(t, int32(1), hits.Load())
	assert.NotEqual(t, got[img].Path, got[HoverRef(img)].Path)
	w, h := imageSize(t, got[img].Path)
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)
}

func TestPrefetch_FailureReportedOnlyInResult(t *testing.T) {
	var logs bytes.Buffer
	c := NewCache(t.TempDir(), 0, zerolog.New(&logs).Level(zerolog.InfoLevel))
	var results []Result
	for r := range c.Prefetch(context.Background(), []string{filepath.Join(t.TempDir(), "missing.png")}, 1) {
		results = append(results, r)
	}
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Empty(t, logs.String())
}

func TestResolve_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewCache(t.TempDir(), 0, zerolog.Nop())
	_, err := c.Resolve(context.Background(), srv.URL+"/gone.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestPrefetch(t *testing.T) {
	body := pngBytes(t, 2, 2, color.White)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := NewCache(t.TempDir(), 0, zerolog.Nop())
	refs := []string{srv.URL + "/a.png", srv.URL + "/bad.png", srv.URL + "/b.png"}

	got := make(map[string]Result)
	for r := range c.Prefetch(context.Background(), refs, 2) {
		got[r.Ref] = r
	}
	require.Len(t, got, 3)
	assert.NoError(t, got[refs[0]].Err)
	assert.Error(t, got[refs[1]].Err)
	assert.NoError(t, got[refs[2]].Err)
	assert.FileExists(t, got[refs[2]].Path)
}

func TestBrighten(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "base.png")
	writePNG(t, src, 2, 2, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	dst := filepath.Join(dir, "out", "bright.png")

	require.NoError(t, Brighten(src, dst, 0.5))

	img, err := imgio.Open(dst)
	require.NoError(t, err)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Greater(t, r>>8, uint32(100))

	assert.Error(t, Brighten(filepath.Join(dir, "none.png"), dst, 0.5))
}

func TestDeriveHover(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tower.png")
	writePNG(t, src, 2, 2, color.RGBA{R: 40, G: 40, B: 40, A: 255})

	c := NewCache(filepath.Join(dir, "cache"), 0, zerolog.Nop())
	got, err := c.DeriveHover(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache", "tower-hover.png"), got)
	assert.FileExists(t, got)
}

func TestResolve_HoverRef(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tower.png")
	writePNG(t, src, 2, 2, color.RGBA{R: 40, G: 40, B: 40, A: 255})

	c := NewCache(filepath.Join(dir, "cache"), 0, zerolog.Nop())
	got, err := c.Resolve(context.Background(), HoverRef(src))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache", "tower-hover.png"), got)

	_, err = c.Resolve(context.Background(), HoverRef(filepath.Join(dir, "none.png")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithDerivedHoverAndRefs(t *testing.T) {
	in := []catalog.Project{
		{ID: 1, Image: "a.png", HoverImage: "a-hover.png"},
		{ID: 2, Image: "b.png"},
		{ID: 3},
		{ID: 4, Image: "a.png", HoverImage: "a-hover.png"},
	}
	out := WithDerivedHover(in)
	assert.Equal(t, "", in[1].HoverImage)
	assert.Equal(t, "b.png#hover", out[1].HoverImage)
	assert.Equal(t, "", out[2].HoverImage)

	assert.Equal(t, []string{"a.png", "a-hover.png", "b.png", "b.png#hover"}, Refs(out))
}

func TestFilenameHelpers(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFromContentType("image/jpeg; charset=binary"))
	assert.Equal(t, ".webp", extensionFromURL("https://x.org/a/b.WEBP?x=1"))
	assert.Equal(t, ".jpg", extensionFromURL("https://x.org/a/b.jpeg"))
	assert.Equal(t, "", extensionFromURL("https://x.org/a/b.svg"))
	assert.Equal(t, "b", filenameFromURL("https://x.org/a/b.png#frag"))
	assert.Equal(t, "a_b_c", sanitizeFilename("a b/c"))
	assert.Equal(t, "image", sanitizeFilename(""))
	assert.NotEqual(t, urlHash("https://a.org/x.png"), urlHash("https://b.org/x.png"))
}
