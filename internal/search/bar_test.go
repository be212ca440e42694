package search

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execRecorder struct {
	args [][]string
	err  error
}

func (e *execRecorder) Execute(args []string) error {
	e.args = append(e.args, args)
	return e.err
}

type transcript struct {
	lines []string
}

func (t *transcript) Log(line string) { t.lines = append(t.lines, line) }

func newBar() (*Bar, *recorder, *execRecorder, *transcript) {
	r := &recorder{}
	ctl := New(testProjects(), zerolog.Nop())
	ctl.Attach(r)
	ex := &execRecorder{}
	tr := &transcript{}
	return NewBar(ctl, ex, tr), r, ex, tr
}

func TestBar_LiveQueryAndSuggestions(t *testing.T) {
	b, r, _, _ := newBar()

	b.Insert("sl")
	b.Insert("s")
	assert.Equal(t, "sls", b.Input())
	assert.Equal(t, []string{"SLS Hotel Tower", "SLS Lobby"}, b.Suggestions())
	assert.Equal(t, -1, b.Selected())

	b.Backspace()
	b.Backspace()
	b.Backspace()
	b.Backspace()
	assert.Equal(t, []string{"search:sl", "search:sls", "search:sl", "search:s", "reset"}, r.calls)
	assert.Empty(t, b.Suggestions())
}

func TestBar_SelectionWraps(t *testing.T) {
	b, _, _, _ := newBar()
	b.Prev()
	assert.Equal(t, -1, b.Selected())

	b.Insert("sls")
	b.Next()
	b.Next()
	assert.Equal(t, 1, b.Selected())
	b.Next()
	assert.Equal(t, 0, b.Selected())
	b.Prev()
	assert.Equal(t, 1, b.Selected())
}

func TestBar_SubmitQueryCompletesSelection(t *testing.T) {
	b, r, ex, tr := newBar()
	b.Insert("sls")
	b.Prev()

	require.NoError(t, b.Submit())
	assert.Equal(t, "SLS Lobby", b.Input())
	assert.Nil(t, b.Suggestions())
	assert.Equal(t, []string{"search:sls", "search:SLS Lobby", "search:SLS Lobby"}, r.calls)
	assert.Equal(t, []string{"> SLS Lobby"}, tr.lines)
	assert.Empty(t, ex.args)
}

func TestBar_Complete(t *testing.T) {
	b, _, _, _ := newBar()
	assert.False(t, b.Complete())

	b.Insert("dub")
	require.Equal(t, []string{"DUBAI"}, b.Suggestions())
	assert.True(t, b.Complete())
	assert.Equal(t, "DUBAI", b.Input())
}

func TestBar_Command(t *testing.T) {
	b, r, ex, tr := newBar()
	for _, ch := range []string{"c", "m", "d", " "} {
		b.Insert(ch)
	}
	assert.True(t, b.IsCommand())
	assert.Nil(t, b.Suggestions())
	// The partial "cmd" query is dropped once the line becomes a command.
	assert.Equal(t, []string{"search:c", "search:cm", "search:cmd", "reset"}, r.calls)

	b.Insert("layout EPOCH")
	require.NoError(t, b.Submit())
	assert.Equal(t, [][]string{{"layout", "EPOCH"}}, ex.args)
	assert.Equal(t, "", b.Input())
	assert.Equal(t, []string{"> cmd layout EPOCH"}, tr.lines)
}

func TestBar_CommandError(t *testing.T) {
	b, _, ex, tr := newBar()
	ex.err = errors.New("unknown command: nope")

	b.Insert("cmd nope")
	assert.EqualError(t, b.Submit(), "unknown command: nope")
	assert.Equal(t, []string{"> cmd nope", "unknown command: nope"}, tr.lines)
}

func TestBar_SubmitBlank(t *testing.T) {
	b, r, ex, tr := newBar()
	b.Insert("   ")
	require.NoError(t, b.Submit())
	assert.Empty(t, ex.args)
	assert.Empty(t, tr.lines)
	assert.Equal(t, []string{"reset"}, r.calls)

	b.Clear()
	assert.Equal(t, []string{"reset", "reset"}, r.calls)
}
