package terminal

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-globe/internal/logger"
	"portfolio-globe/internal/search"
	"portfolio-globe/internal/ui/draw"
)

const (
	// BottomMargin keeps the transcript clear of the window edge.
	BottomMargin = 16
	fontSize     = 18
	padding      = 8
	// Number of transcript lines drawn when the terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLength    = 200
)

var termChatBgColor = rl.NewColor(24, 24, 24, 230)

// Terminal owns the keyboard. Keys edit the search bar (plain text filters the globe as it
// is typed; "cmd ..." lines run commands on Enter). ESC shows or hides the transcript of
// submitted lines, command output and warnings.
type Terminal struct {
	log      *logger.Logger
	bar      *search.Bar
	renderer *draw.Renderer
	open     bool
	focused  bool
}

// New returns a closed terminal editing bar and showing log's transcript.
func New(log *logger.Logger, bar *search.Bar, renderer *draw.Renderer) *Terminal {
	return &Terminal{log: log, bar: bar, renderer: renderer}
}

// IsOpen returns true when the transcript is visible.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Focused reports whether the search bar shows a caret.
func (t *Terminal) Focused() bool {
	return t.focused
}

// SetFocused focuses or blurs the search bar.
func (t *Terminal) SetFocused(v bool) {
	t.focused = v
}

// Bar returns the search bar being edited.
func (t *Terminal) Bar() *search.Bar {
	return t.bar
}

// Update handles this frame's keys. escFree is false when something else (the modal)
// already consumed ESC this frame.
func (t *Terminal) Update(escFree bool) {
	if escFree && rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}

	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.focused = true
			t.bar.Insert(pasted)
		}
	} else {
		var typed []rune
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			typed = append(typed, c)
		}
		if len(typed) > 0 {
			t.focused = true
			t.bar.Insert(string(typed))
		}
	}
	if !t.focused {
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace):
		t.bar.Backspace()
	case rl.IsKeyPressed(rl.KeyDelete):
		t.bar.Clear()
	case rl.IsKeyPressed(rl.KeyDown):
		t.bar.Next()
	case rl.IsKeyPressed(rl.KeyUp):
		t.bar.Prev()
	case rl.IsKeyPressed(rl.KeyTab):
		t.bar.Complete()
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		// Errors are already in the transcript.
		_ = t.bar.Submit()
	}
}

// Draw draws the transcript at the bottom of the screen when open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	lines := t.log.Tail(maxLinesOnScreen)
	chatHeight := int32(maxLinesOnScreen*lineHeight + 2*padding)
	chatY := screenH - BottomMargin - chatHeight
	if chatY < 0 {
		chatHeight += chatY
		chatY = 0
	}
	rl.DrawRectangle(0, chatY, screenW, chatHeight, termChatBgColor)
	for i, line := range lines {
		if len(line) > maxLineLength {
			line = line[:maxLineLength-3] + "..."
		}
		y := float32(chatY + padding + int32(i*lineHeight))
		t.renderer.Text(line, padding, y, fontSize, rl.LightGray)
	}
}
