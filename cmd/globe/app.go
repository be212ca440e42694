package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"portfolio-globe/internal/catalog"
	"portfolio-globe/internal/commands"
	"portfolio-globe/internal/config"
	"portfolio-globe/internal/debug"
	"portfolio-globe/internal/events"
	"portfolio-globe/internal/globe"
	"portfolio-globe/internal/grid"
	"portfolio-globe/internal/logger"
	"portfolio-globe/internal/modal"
	"portfolio-globe/internal/primitives"
	"portfolio-globe/internal/scene"
	"portfolio-globe/internal/search"
	"portfolio-globe/internal/terminal"
	"portfolio-globe/internal/textures"
	"portfolio-globe/internal/ui"
	"portfolio-globe/internal/ui/draw"
)

// app owns every part of the running program and implements grid.GlobeHost.
type app struct {
	prefs     config.Prefs
	configDir string
	log       zerolog.Logger
	logFile   io.Closer

	projects []catalog.Project
	locs     catalog.Locations
	bus      *events.Bus

	search *search.Controller
	modal  *modal.Controller
	layout *grid.Renderer

	style    primitives.Style
	prims    *primitives.Registry
	textures *scene.Textures
	results  <-chan textures.Result
	skybox   *scene.Skybox
	globe    *scene.Globe // nil unless the LOCATION layout is showing
	grid     *scene.Grid

	renderer *draw.Renderer
	engine   *ui.Engine
	overlay  *scene.Overlay
	term     *terminal.Terminal
	debug    *debug.Debug

	width, height int32
	filter        grid.Filter
}

func newApp(ctx context.Context, prefs config.Prefs, configDir string) (*app, error) {
	log, logFile, err := logger.Setup(prefs.LogLevel, prefs.LogsDir, os.Stderr)
	if err != nil {
		return nil, err
	}
	transcript := logger.New(filepath.Join(prefs.LogsDir, filepath.Base(logger.TranscriptPath)))
	log = log.Hook(transcript.Hook(zerolog.WarnLevel))

	cat, err := loadCatalog(prefs.Catalog)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}
	a := &app{
		prefs:     prefs,
		configDir: configDir,
		log:       log,
		logFile:   logFile,
		projects:  textures.WithDerivedHover(cat.Projects()),
		locs:      catalog.DefaultLocations(),
		bus:       events.NewBus(),
		width:     int32(prefs.Window.Width),
		height:    int32(prefs.Window.Height),
	}
	log.Info().Int("projects", len(a.projects)).Str("config", configDir).Msg("starting")

	a.search = search.New(a.projects, log)
	a.modal = modal.New(a.bus, log)
	a.layout = grid.NewRenderer(a.projects, a, a.bus, prefs.ShowHoverImages, log)
	a.search.SetNarrower(a.layout)

	a.style, err = primitives.LoadStyle(primitives.StylePath)
	if err != nil {
		log.Warn().Err(err).Msg("globe style, using defaults")
	}
	a.prims = primitives.NewRegistry(a.style)
	a.textures = scene.NewTextures(log)
	a.grid = scene.NewGrid(a.layout, a.textures)

	cache := textures.NewCache(prefs.Textures.Dir, prefs.Textures.MaxSize, log)
	refs := textures.Refs(a.projects)
	if a.style.SphereTexture != "" {
		refs = append(refs, a.style.SphereTexture)
	}
	a.results = cache.Prefetch(ctx, refs, prefs.Textures.PrefetchLimit)

	a.renderer = draw.New()
	a.engine = ui.New()
	if err := a.engine.LoadCSS(prefs.Stylesheet); err != nil {
		log.Warn().Err(err).Msg("stylesheet")
	}
	a.overlay = scene.NewOverlay(a.engine, a.renderer)

	reg := commands.NewRegistry()
	a.term = terminal.New(transcript, search.NewBar(a.search, reg, transcript), a.renderer)
	a.debug = debug.New(a.renderer)
	a.debug.ShowFPS = prefs.ShowFPS

	commands.Install(reg, commands.Deps{
		Layouts: a,
		Search:  a.search,
		Globe: func() commands.Zoomer {
			if a.globe == nil {
				return nil
			}
			return a.globe.View()
		},
		ToggleFPS: a.debug.ToggleFPS,
		ToggleMem: a.debug.ToggleMem,
		Save:      a.save,
		Print:     transcript.Log,
	})

	a.filter, err = grid.ParseFilter(prefs.Filter)
	if err != nil {
		log.Warn().Err(err).Msg("initial filter")
		a.filter = grid.Location
	}
	return a, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// Apply switches the layout and remembers it for save.
func (a *app) Apply(f grid.Filter) {
	a.filter = f
	a.layout.Apply(f)
}

// SetShowHoverImages toggles the grid image set.
func (a *app) SetShowHoverImages(v bool) { a.layout.SetShowHoverImages(v) }

// ShowHoverImages reports the grid image set.
func (a *app) ShowHoverImages() bool { return a.layout.ShowHoverImages() }

// MountGlobe builds a fresh globe view and points search at it.
func (a *app) MountGlobe() {
	opts := globe.DefaultOptions()
	opts.Radius = a.prefs.Globe.Radius
	opts.MarkerSize = a.prefs.Globe.MarkerSize
	opts.ViewportWidth = float32(a.width)
	opts.ViewportHeight = float32(a.height)

	v := globe.New(opts, a.projects, a.locs, a.bus, a.log)
	a.globe = scene.NewGlobe(v, a.prims, a.textures, a.skybox)
	a.globe.Resize(a.width, a.height)
	a.search.Attach(v)
}

// UnmountGlobe tears the globe down: tooltip, bus subscriptions, GPU target.
func (a *app) UnmountGlobe() {
	if a.globe == nil {
		return
	}
	a.search.Attach(nil)
	v := a.globe.View()
	v.Cleanup()
	v.Detach()
	a.globe.Release()
	a.globe = nil
}

func (a *app) save() error {
	p := a.prefs
	p.Filter = string(a.filter)
	p.ShowHoverImages = a.layout.ShowHoverImages()
	p.ShowFPS = a.debug.ShowFPS
	if err := config.Save(a.configDir, p); err != nil {
		return err
	}
	a.prefs = p
	return nil
}

// init runs once the window exists: fonts, skybox, first layout.
func (a *app) init() {
	if !a.renderer.LoadFont() {
		a.log.Debug().Msg("no font found, using raylib default")
	}
	a.skybox = scene.NewSkybox(a.style.Backdrop, a.log)
	a.Apply(a.filter)
}

func (a *app) resize(width, height int32) {
	a.width, a.height = width, height
	if a.globe != nil {
		a.globe.Resize(width, height)
	}
}

func (a *app) update() {
	a.textures.Drain(a.results)

	mouse := rl.GetMousePosition()
	clicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	modalOpen := a.modal.IsOpen()

	escFree := true
	if modalOpen {
		switch {
		case rl.IsKeyPressed(rl.KeyEscape):
			a.modal.Close()
			escFree = false
		case clicked && a.overlay.ModalCloseHit(mouse.X, mouse.Y):
			a.modal.Close()
		}
	}
	overSearch := a.overlay.SearchHit(mouse.X, mouse.Y)
	if clicked && !modalOpen {
		a.term.SetFocused(overSearch)
	}
	a.term.Update(escFree)

	// The frame that closes the modal must not also click through to the globe.
	blocked := modalOpen || a.modal.IsOpen() || overSearch
	if a.globe != nil {
		a.globe.HandleInput(blocked)
		a.globe.Update()
		return
	}
	a.grid.HandleInput(blocked)
}

func (a *app) draw() {
	f := scene.Frame{
		Headers:       a.grid.Headers(),
		SearchInput:   a.term.Bar().Input(),
		SearchFocused: a.term.Focused(),
		Suggestions:   a.term.Bar().Suggestions(),
		Selected:      a.term.Bar().Selected(),
		ModalLines:    a.modal.Lines(),
	}
	var status []string
	if a.globe != nil {
		a.globe.Draw()
		v := a.globe.View()
		if tt, ok := v.Tooltip(); ok {
			f.Tooltip = tt
		}
		if a.term.IsOpen() {
			f.Inspector = selection(v)
		}
		status = debug.GlobeLines(v)
	} else {
		a.grid.Draw()
	}
	a.overlay.Draw(f, a.width, a.height)
	a.term.Draw()
	a.debug.Draw(status)
}

// selection describes the hovered marker for the inspector, or nil.
func selection(v *globe.View) *ui.Selection {
	id, ok := v.Hovered()
	if !ok {
		return nil
	}
	for _, m := range v.Markers() {
		if m.Project.ID != id {
			continue
		}
		return &ui.Selection{
			Name:     m.Project.Title,
			Location: m.Project.Location,
			Position: [3]float32{m.Position.X(), m.Position.Y(), m.Position.Z()},
			Scale:    m.Scale,
			Texture:  m.Texture(),
		}
	}
	return nil
}

// release frees GPU resources while the context is still alive.
func (a *app) release() {
	a.UnmountGlobe()
	if a.skybox != nil {
		a.skybox.Unload()
	}
	a.textures.Unload()
	a.prims.Unload()
	a.renderer.Unload()
}

func (a *app) close() {
	a.modal.Stop()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
