package grid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"portfolio-globe/internal/catalog"
)

// Filter selects how the grid groups projects.
type Filter string

const (
	Chronological Filter = "CHRONOLOGICAL"
	Epoch         Filter = "EPOCH"
	Alphabetical  Filter = "ALPHABETICAL"
	Programmatic  Filter = "PROGRAMMATIC"
	Scale         Filter = "SCALE"
	Location      Filter = "LOCATION"
)

// Filters lists every filter in toolbar order.
var Filters = []Filter{Chronological, Epoch, Alphabetical, Programmatic, Scale, Location}

// Other labels the column of projects with no usable value for the filter.
const Other = "OTHER"

var (
	epochOrder = []string{"PAST", "PRESENT", "FUTURE"}
	scaleOrder = []string{"S", "M", "L", "XL"}
)

// ParseFilter accepts a filter name in any case.
func ParseFilter(s string) (Filter, error) {
	want := Filter(strings.ToUpper(strings.TrimSpace(s)))
	for _, f := range Filters {
		if f == want {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Column is one labelled group of projects.
type Column struct {
	Label    string
	Projects []catalog.Project
}

// Layout is the result of grouping the catalog under a filter. A LOCATION layout has no
// columns; the globe is shown instead.
type Layout struct {
	Filter  Filter
	Columns []Column
	Globe   bool
}

// Build groups projects under f. Projects keep catalog order inside a column except under
// ALPHABETICAL, where they are sorted by title.
func Build(projects []catalog.Project, f Filter) Layout {
	l := Layout{Filter: f}
	switch f {
	case Location:
		l.Globe = true
	case Chronological:
		l.Columns = group(projects, func(p catalog.Project) string {
			if p.Year == 0 {
				return ""
			}
			return strconv.Itoa(p.Year)
		}, nil)
	case Epoch:
		l.Columns = group(projects, fieldKey(catalog.FieldEpoch), epochOrder)
	case Scale:
		l.Columns = group(projects, fieldKey(catalog.FieldScale), scaleOrder)
	case Programmatic:
		l.Columns = group(projects, fieldKey(catalog.FieldProgram), nil)
	case Alphabetical:
		l.Columns = group(projects, initial, nil)
		col := collate.New(language.English, collate.IgnoreCase)
		for _, c := range l.Columns {
			sort.SliceStable(c.Projects, func(i, j int) bool {
				return col.CompareString(c.Projects[i].Title, c.Projects[j].Title) < 0
			})
		}
	}
	return l
}

func fieldKey(name string) func(catalog.Project) string {
	return func(p catalog.Project) string {
		v, _ := p.Field(name)
		return v
	}
}

func initial(p catalog.Project) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(p.Title))
	if !unicode.IsLetter(r) {
		return ""
	}
	return strings.ToUpper(string(r))
}

// group buckets projects by key. With an order, only the listed keys get their own column
// and they appear in that order; otherwise keys are sorted. An empty or unlisted key goes
// to the OTHER column, which is always last.
func group(projects []catalog.Project, key func(catalog.Project) string, order []string) []Column {
	buckets := make(map[string][]catalog.Project)
	var other []catalog.Project
	allowed := make(map[string]bool, len(order))
	for _, k := range order {
		allowed[k] = true
	}
	for _, p := range projects {
		k := key(p)
		if k == "" || (order != nil && !allowed[k]) {
			other = append(other, p)
			continue
		}
		buckets[k] = append(buckets[k], p)
	}

	labels := order
	if labels == nil {
		for k := range buckets {
			labels = append(labels, k)
		}
		sort.Strings(labels)
	}
	var cols []Column
	for _, k := range labels {
		if ps, ok := buckets[k]; ok {
			cols = append(cols, Column{Label: k, Projects: ps})
		}
	}
	if len(other) > 0 {
		cols = append(cols, Column{Label: Other, Projects: other})
	}
	return cols
}

// Icon returns the image a grid cell shows for p.
func Icon(p catalog.Project, showHoverImages bool) string {
	if showHoverImages && p.HoverImage != "" {
		return p.HoverImage
	}
	return p.Image
}

// Metrics is the cell geometry used for drawing and hit testing, in pixels.
type Metrics struct {
	OriginX, OriginY float32
	CellWidth        float32
	CellHeight       float32
	ColumnGap        float32
	HeaderHeight     float32
}

// DefaultMetrics matches the stylesheet defaults.
func DefaultMetrics() Metrics {
	return Metrics{OriginX: 40, OriginY: 80, CellWidth: 96, CellHeight: 96, ColumnGap: 16, HeaderHeight: 28}
}

// CellRect returns the rectangle of project j in column i.
func (m Metrics) CellRect(i, j int) (x, y, w, h float32) {
	x = m.OriginX + float32(i)*(m.CellWidth+m.ColumnGap)
	y = m.OriginY + m.HeaderHeight + float32(j)*m.CellHeight
	return x, y, m.CellWidth, m.CellHeight
}

// CellAt returns the project whose cell contains (x, y).
func (l Layout) CellAt(m Metrics, x, y float32) (catalog.Project, bool) {
	if m.CellWidth <= 0 || m.CellHeight <= 0 {
		return catalog.Project{}, false
	}
	dx := x - m.OriginX
	dy := y - m.OriginY - m.HeaderHeight
	if dx < 0 || dy < 0 {
		return catalog.Project{}, false
	}
	stride := m.CellWidth + m.ColumnGap
	i := int(dx / stride)
	if dx-float32(i)*stride >= m.CellWidth || i >= len(l.Columns) {
		return catalog.Project{}, false
	}
	j := int(dy / m.CellHeight)
	if j >= len(l.Columns[i].Projects) {
		return catalog.Project{}, false
	}
	return l.Columns[i].Projects[j], true
}
