package search

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-globe/internal/catalog"
)

type recorder struct {
	calls []string
}

func (r *recorder) UpdateMarkersForSearch(q string)  { r.calls = append(r.calls, "search:"+q) }
func (r *recorder) FilterMarkersByKeyword(k string) { r.calls = append(r.calls, "keyword:"+k) }
func (r *recorder) ResetAllMarkers()                { r.calls = append(r.calls, "reset") }

func str(s string) *string { return &s }

func testProjects() []catalog.Project {
	return []catalog.Project{
		{ID: 1, Title: "SLS Hotel Tower", Location: "NEW YORK", Typology: str("HIGH-RISE"), Program: str("HOSPITALITY")},
		{ID: 2, Title: "SLS Lobby", Location: "NEW YORK", Typology: str("INTERIOR")},
		{ID: 3, Title: "Harbour Slip", Location: "ROTTERDAM", Program: str("CULTURE")},
		{ID: 4, Title: "Dune House", Location: "DUBAI"},
	}
}

func TestSetQuery_RoutesToTarget(t *testing.T) {
	r := &recorder{}
	c := New(testProjects(), zerolog.Nop())
	c.Attach(r)

	c.SetQuery("  sls ")
	c.SetQuery("   ")
	c.ApplyKeyword("BUILT")
	c.ApplyKeyword("")
	c.Clear()

	assert.Equal(t, []string{"search:sls", "reset", "keyword:BUILT", "reset", "reset"}, r.calls)
}

func TestAttach_ReplaysActiveFilter(t *testing.T) {
	c := New(testProjects(), zerolog.Nop())
	c.SetQuery("tower")

	r := &recorder{}
	c.Attach(r)
	assert.Equal(t, []string{"search:tower"}, r.calls)

	c.Attach(nil)
	c.ApplyKeyword("HIGH-RISE")
	r2 := &recorder{}
	c.Attach(r2)
	assert.Equal(t, []string{"keyword:HIGH-RISE"}, r2.calls)
	assert.Equal(t, "", c.Query())
	assert.Equal(t, "HIGH-RISE", c.Keyword())
}

func TestAttach_NothingActive(t *testing.T) {
	r := &recorder{}
	New(testProjects(), zerolog.Nop()).Attach(r)
	assert.Empty(t, r.calls)
}

func TestMatches(t *testing.T) {
	c := New(testProjects(), zerolog.Nop())

	ids := func(ps []catalog.Project) []int {
		var out []int
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []int{1, 2}, ids(c.Matches("SLS")))
	assert.Equal(t, []int{1, 2}, ids(c.Matches("new york")))
	assert.Equal(t, []int{3}, ids(c.Matches("culture")))
	assert.Equal(t, []int{2}, ids(c.Matches("Interior")))
	assert.Equal(t, []int{1, 2, 3, 4}, ids(c.Matches("")))
	assert.Empty(t, c.Matches("zzz"))
}

func TestSuggest(t *testing.T) {
	c := New(testProjects(), zerolog.Nop())

	// "sl" starts two titles and occurs inside "Harbour Slip".
	assert.Equal(t, []string{"SLS Hotel Tower", "SLS Lobby", "Harbour Slip"}, c.Suggest("sl", 0))
	assert.Equal(t, []string{"SLS Hotel Tower"}, c.Suggest("SL", 1))
	// Locations are de-duplicated.
	assert.Equal(t, []string{"NEW YORK"}, c.Suggest("new", 0))
	assert.Nil(t, c.Suggest("  ", 5))
	assert.Empty(t, c.Suggest("qqq", 5))
}

type narrowed struct {
	calls [][]int
}

func (n *narrowed) Narrow(ps []catalog.Project) {
	ids := []int{}
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	n.calls = append(n.calls, ids)
}

func TestSetNarrower_FollowsQueryAndKeywordWithoutGlobe(t *testing.T) {
	c := New(testProjects(), zerolog.Nop())
	n := &narrowed{}
	c.SetNarrower(n)

	c.SetQuery("sls")
	c.ApplyKeyword("INTERIOR")
	c.ApplyKeyword("CULTURE")
	c.Clear()

	assert.Equal(t, [][]int{
		{1, 2, 3, 4},
		{1, 2},
		{2},
		{3},
		{1, 2, 3, 4},
	}, n.calls)
}

func TestVisible_EmptyWhenNothingMatches(t *testing.T) {
	c := New(testProjects(), zerolog.Nop())
	c.SetQuery("zzz")
	assert.Empty(t, c.Visible())
	c.ApplyKeyword("HIGH-RISE")
	require.Len(t, c.Visible(), 1)
	assert.Equal(t, 1, c.Visible()[0].ID)
}
