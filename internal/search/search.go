package search

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"portfolio-globe/internal/catalog"
)

// Target is the marker surface a query is applied to. *globe.View satisfies it.
type Target interface {
	UpdateMarkersForSearch(query string)
	FilterMarkersByKeyword(keyword string)
	ResetAllMarkers()
}

// Narrower receives the projects left visible by the active query or keyword.
// *grid.Renderer satisfies it.
type Narrower interface {
	Narrow(projects []catalog.Project)
}

// Controller routes search-bar input to the mounted globe and the grid, and answers
// autocomplete. It holds the last query so a globe mounted later starts filtered.
type Controller struct {
	projects []catalog.Project
	target   Target
	grid     Narrower
	query    string
	keyword  string
	log      zerolog.Logger
}

// New returns a controller over projects with no target attached.
func New(projects []catalog.Project, log zerolog.Logger) *Controller {
	return &Controller{projects: projects, log: log}
}

// Attach sets the globe to drive and replays the current query or keyword on it.
// A nil target detaches.
func (c *Controller) Attach(t Target) {
	c.target = t
	if t == nil {
		return
	}
	switch {
	case c.keyword != "":
		t.FilterMarkersByKeyword(c.keyword)
	case c.query != "":
		t.UpdateMarkersForSearch(c.query)
	}
}

// SetNarrower sets the grid that follows the active filter and narrows it immediately.
func (c *Controller) SetNarrower(n Narrower) {
	c.grid = n
	c.narrow()
}

func (c *Controller) narrow() {
	if c.grid != nil {
		c.grid.Narrow(c.Visible())
	}
}

// Visible returns the projects passing the active keyword or query, in catalog order.
// With neither set every project is visible.
func (c *Controller) Visible() []catalog.Project {
	if c.keyword != "" {
		var out []catalog.Project
		for _, p := range c.projects {
			if catalog.MatchesKeyword(p, c.keyword) {
				out = append(out, p)
			}
		}
		return out
	}
	return c.Matches(c.query)
}

// Query returns the active free-text query.
func (c *Controller) Query() string { return c.query }

// Keyword returns the active keyword filter.
func (c *Controller) Keyword() string { return c.keyword }

// SetQuery applies a free-text query. A blank query resets every marker.
func (c *Controller) SetQuery(q string) {
	c.query = strings.TrimSpace(q)
	c.keyword = ""
	c.narrow()
	if c.target == nil {
		return
	}
	if c.query == "" {
		c.target.ResetAllMarkers()
		return
	}
	c.log.Debug().Str("query", c.query).Msg("search")
	c.target.UpdateMarkersForSearch(c.query)
}

// ApplyKeyword applies a curated keyword filter. Keywords are matched exactly.
func (c *Controller) ApplyKeyword(k string) {
	c.keyword = k
	c.query = ""
	c.narrow()
	if c.target == nil {
		return
	}
	if k == "" {
		c.target.ResetAllMarkers()
		return
	}
	c.log.Debug().Str("keyword", k).Msg("keyword filter")
	c.target.FilterMarkersByKeyword(k)
}

// Clear drops the query and keyword.
func (c *Controller) Clear() {
	c.SetQuery("")
}

// Matches returns the projects whose title, location, typology or program contains q,
// ignoring case, in catalog order. A blank q matches everything.
func (c *Controller) Matches(q string) []catalog.Project {
	q = strings.TrimSpace(q)
	var out []catalog.Project
	for _, p := range c.projects {
		if q == "" || catalog.MatchesQuery(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func candidates(p catalog.Project) []string {
	out := []string{p.Title, p.Location}
	for _, f := range []string{catalog.FieldTypology, catalog.FieldProgram} {
		if v, ok := p.Field(f); ok && v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Suggest returns up to limit distinct completions for prefix drawn from titles,
// locations, typologies and programs. Values starting with prefix come first, then
// values containing it; each group is sorted. limit <= 0 means no limit.
func (c *Controller) Suggest(prefix string, limit int) []string {
	needle := catalog.Fold(strings.TrimSpace(prefix))
	if needle == "" {
		return nil
	}
	seen := make(map[string]bool)
	var head, rest []string
	for _, p := range c.projects {
		for _, s := range candidates(p) {
			folded := catalog.Fold(s)
			if seen[folded] {
				continue
			}
			switch {
			case strings.HasPrefix(folded, needle):
				head = append(head, s)
			case strings.Contains(folded, needle):
				rest = append(rest, s)
			default:
				continue
			}
			seen[folded] = true
		}
	}
	sort.Strings(head)
	sort.Strings(rest)
	out := append(head, rest...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
