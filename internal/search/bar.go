package search

import (
	"strings"
	"unicode/utf8"

	"portfolio-globe/internal/catalog"
	"portfolio-globe/internal/commands"
)

// DefaultSuggestions is how many completions the bar shows.
const DefaultSuggestions = 6

// Executor runs a parsed "cmd ..." line. *commands.Registry satisfies it.
type Executor interface {
	Execute(args []string) error
}

// Transcript receives submitted lines and command errors. *logger.Logger satisfies it.
type Transcript interface {
	Log(line string)
}

// Bar is the search bar's editing state. Plain text is applied to the globe as it is
// typed; lines starting with "cmd " are run through the command registry on Submit.
type Bar struct {
	ctl   *Controller
	exec  Executor
	log   Transcript
	limit int

	input       string
	suggestions []string
	selected    int
}

// NewBar returns an empty bar. exec and log may be nil.
func NewBar(ctl *Controller, exec Executor, log Transcript) *Bar {
	return &Bar{ctl: ctl, exec: exec, log: log, limit: DefaultSuggestions, selected: -1}
}

// Input returns the text being edited.
func (b *Bar) Input() string { return b.input }

// Suggestions returns the current completions.
func (b *Bar) Suggestions() []string { return b.suggestions }

// Selected returns the highlighted completion, or -1.
func (b *Bar) Selected() int { return b.selected }

// IsCommand reports whether the input is a command line rather than a query.
func (b *Bar) IsCommand() bool {
	_, ok := commands.Parse(b.input)
	return ok
}

// Insert appends text at the end of the input.
func (b *Bar) Insert(text string) {
	if text == "" {
		return
	}
	b.input += text
	b.changed()
}

// Backspace removes the last rune.
func (b *Bar) Backspace() {
	if b.input == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.input)
	b.input = b.input[:len(b.input)-size]
	b.changed()
}

// Clear empties the input, which also resets every marker.
func (b *Bar) Clear() {
	b.input = ""
	b.changed()
}

// Next highlights the next completion, wrapping around.
func (b *Bar) Next() {
	if len(b.suggestions) == 0 {
		return
	}
	b.selected = (b.selected + 1) % len(b.suggestions)
}

// Prev highlights the previous completion, wrapping around.
func (b *Bar) Prev() {
	if len(b.suggestions) == 0 {
		return
	}
	if b.selected <= 0 {
		b.selected = len(b.suggestions) - 1
		return
	}
	b.selected--
}

// Complete replaces the input with the highlighted completion, or with the only
// completion when there is exactly one.
func (b *Bar) Complete() bool {
	switch {
	case b.selected >= 0 && b.selected < len(b.suggestions):
		b.input = b.suggestions[b.selected]
	case len(b.suggestions) == 1:
		b.input = b.suggestions[0]
	default:
		return false
	}
	b.changed()
	return true
}

// Submit finishes the line. Commands are executed and the input cleared; a query
// stays applied and only the completions are dismissed.
func (b *Bar) Submit() error {
	line := strings.TrimSpace(b.input)
	if line == "" {
		return nil
	}
	if b.selected >= 0 && !b.IsCommand() {
		b.Complete()
		line = b.input
	}
	b.logLine("> " + line)
	args, isCmd := commands.Parse(b.input)
	if !isCmd {
		b.ctl.SetQuery(line)
		b.dismiss()
		return nil
	}
	b.input = ""
	b.dismiss()
	if b.exec == nil {
		return nil
	}
	if err := b.exec.Execute(args); err != nil {
		b.logLine(err.Error())
		return err
	}
	return nil
}

func (b *Bar) changed() {
	b.selected = -1
	if b.IsCommand() {
		b.suggestions = nil
		// Typing "cmd" filtered the globe on the way; drop that query.
		if q := b.ctl.Query(); q != "" && strings.HasPrefix("cmd", catalog.Fold(q)) {
			b.ctl.Clear()
		}
		return
	}
	b.ctl.SetQuery(b.input)
	b.suggestions = b.ctl.Suggest(b.input, b.limit)
}

func (b *Bar) dismiss() {
	b.suggestions = nil
	b.selected = -1
}

func (b *Bar) logLine(s string) {
	if b.log != nil {
		b.log.Log(s)
	}
}
