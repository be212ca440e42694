package commands

import (
	"fmt"
	"strings"

	"portfolio-globe/internal/grid"
)

// Layouts switches the grid filter. *grid.Renderer satisfies it.
type Layouts interface {
	Apply(f grid.Filter)
	SetShowHoverImages(v bool)
	ShowHoverImages() bool
}

// Searcher applies queries and keyword filters. *search.Controller satisfies it.
type Searcher interface {
	SetQuery(q string)
	ApplyKeyword(k string)
	Clear()
}

// Zoomer receives wheel deltas. *globe.View satisfies it.
type Zoomer interface {
	Wheel(deltaY float32) bool
}

// Deps are the parts of the application the built-in commands drive.
type Deps struct {
	Layouts Layouts
	Search  Searcher
	// Globe returns the mounted globe, or nil when another layout is showing.
	Globe func() Zoomer
	// ToggleFPS flips the FPS overlay and returns the new state.
	ToggleFPS func() bool
	// ToggleMem flips the heap counter and returns the new state.
	ToggleMem func() bool
	// Save persists the current preferences.
	Save func() error
	// Print receives command output.
	Print func(string)
}

// Install registers the layout, filter, reset, hover, fps, mem, zoom, save and help commands on r.
func Install(r *Registry, d Deps) {
	out := d.Print
	if out == nil {
		out = func(string) {}
	}

	r.Register("layout", "layout CHRONOLOGICAL|EPOCH|ALPHABETICAL|PROGRAMMATIC|SCALE|LOCATION", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("layout: want one filter")
		}
		f, err := grid.ParseFilter(args[0])
		if err != nil {
			return fmt.Errorf("layout: %w", err)
		}
		d.Layouts.Apply(f)
		out("layout " + string(f))
		return nil
	})

	filterFlags := NewFlagSet("filter")
	keyword := filterFlags.StringP("keyword", "k", "", "curated keyword (HIGH-RISE, INTERIOR, BUILT, or a typology/program)")
	r.Register("filter", "filter [-k KEYWORD] [query...]", filterFlags, func(args []string) error {
		defer func() { *keyword = "" }()
		if *keyword != "" {
			d.Search.ApplyKeyword(*keyword)
			out("keyword " + *keyword)
			return nil
		}
		q := strings.Join(args, " ")
		d.Search.SetQuery(q)
		out("search " + q)
		return nil
	})

	r.Register("reset", "reset", nil, func([]string) error {
		d.Search.Clear()
		out("markers reset")
		return nil
	})

	hoverFlags := NewFlagSet("hover")
	images := hoverFlags.Bool("images", true, "show hover images in the grid")
	r.Register("hover", "hover [--images=true|false]", hoverFlags, func([]string) error {
		d.Layouts.SetShowHoverImages(*images)
		*images = true
		out(fmt.Sprintf("hover images %t", d.Layouts.ShowHoverImages()))
		return nil
	})

	r.Register("fps", "fps", nil, func([]string) error {
		if d.ToggleFPS == nil {
			return fmt.Errorf("fps: unavailable")
		}
		out(fmt.Sprintf("fps %t", d.ToggleFPS()))
		return nil
	})

	r.Register("mem", "mem", nil, func([]string) error {
		if d.ToggleMem == nil {
			return fmt.Errorf("mem: unavailable")
		}
		out(fmt.Sprintf("mem %t", d.ToggleMem()))
		return nil
	})

	zoomFlags := NewFlagSet("zoom")
	delta := zoomFlags.Float32P("delta", "d", 100, "wheel delta in pixels; negative zooms in")
	r.Register("zoom", "zoom [-d PIXELS]", zoomFlags, func([]string) error {
		defer func() { *delta = 100 }()
		var g Zoomer
		if d.Globe != nil {
			g = d.Globe()
		}
		if g == nil {
			return fmt.Errorf("zoom: globe not mounted")
		}
		g.Wheel(*delta)
		return nil
	})

	r.Register("save", "save", nil, func([]string) error {
		if d.Save == nil {
			return fmt.Errorf("save: unavailable")
		}
		if err := d.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		out("preferences saved")
		return nil
	})

	r.Register("help", "help", nil, func([]string) error {
		for _, l := range r.Help() {
			out(l)
		}
		return nil
	})
}
