package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-globe/internal/config"
)

// Background is the clear colour behind the globe and the grid.
var Background = rl.NewColor(12, 12, 14, 255)

// TargetFPS is fixed: globe damping and smoothing constants are per frame.
const TargetFPS = 60

// minWidth and minHeight keep the surface from collapsing when the window is shrunk.
const (
	minWidth  = 480
	minHeight = 320
)

// Loop is what Run drives each frame.
type Loop struct {
	// Init runs once after the window and GL context exist (textures, fonts, shaders).
	Init func()
	// Resize is called with the new screen size when the window is resized, and once before the first frame.
	Resize func(width, height int32)
	// Update handles input and advances animation.
	Update func()
	// Draw renders between BeginDrawing and EndDrawing, after the screen is cleared.
	Draw func()
	// Close runs before the window closes, while GPU resources can still be freed.
	Close func()
}

// Run opens a resizable window and runs the main loop until the window is closed.
// ESC is left to the application (it closes the modal or toggles the transcript).
func Run(win config.Window, l Loop) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()

	rl.SetWindowMinSize(minWidth, minHeight)
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(TargetFPS)

	if l.Init != nil {
		l.Init()
	}
	if l.Close != nil {
		defer l.Close()
	}
	if l.Resize != nil {
		l.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() && l.Resize != nil {
			l.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}
		if l.Update != nil {
			l.Update()
		}

		rl.BeginDrawing()
		rl.ClearBackground(Background)
		if l.Draw != nil {
			l.Draw()
		}
		rl.EndDrawing()
	}
}
