package grid

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-globe/internal/catalog"
	"portfolio-globe/internal/events"
)

func str(s string) *string { return &s }

func testProjects() []catalog.Project {
	return []catalog.Project{
		{ID: 1, Title: "sls hotel tower", Year: 2019, Image: "1.png", HoverImage: "1h.png", Program: str("HOSPITALITY"), Scale: str("XL"), Epoch: str("PRESENT")},
		{ID: 2, Title: "Archive", Year: 2010, Image: "2.png", Program: str("CULTURE"), Scale: str("M"), Epoch: str("PAST")},
		{ID: 3, Title: "Bridge", Year: 2019, Image: "3.png", Scale: str("XXL"), Epoch: str("FUTURE")},
		{ID: 4, Title: "atrium", Image: "4.png", Program: str("CULTURE"), Scale: str("S")},
		{ID: 5, Title: "8 Lanes", Year: 2031, Image: "5.png"},
	}
}

type column struct {
	label string
	ids   []int
}

func columns(l Layout) []column {
	var out []column
	for _, c := range l.Columns {
		col := column{label: c.Label}
		for _, p := range c.Projects {
			col.ids = append(col.ids, p.ID)
		}
		out = append(out, col)
	}
	return out
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" location ")
	require.NoError(t, err)
	assert.Equal(t, Location, f)

	for _, want := range Filters {
		got, err := ParseFilter(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = ParseFilter("colour")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		filter Filter
		want   []column
	}{
		{Chronological, []column{
			{"2010", []int{2}}, {"2019", []int{1, 3}}, {"2031", []int{5}}, {Other, []int{4}},
		}},
		{Epoch, []column{
			{"PAST", []int{2}}, {"PRESENT", []int{1}}, {"FUTURE", []int{3}}, {Other, []int{4, 5}},
		}},
		{Scale, []column{
			{"S", []int{4}}, {"M", []int{2}}, {"XL", []int{1}}, {Other, []int{3, 5}},
		}},
		{Programmatic, []column{
			{"CULTURE", []int{2, 4}}, {"HOSPITALITY", []int{1}}, {Other, []int{3, 5}},
		}},
		{Alphabetical, []column{
			{"A", []int{2, 4}}, {"B", []int{3}}, {"S", []int{1}}, {Other, []int{5}},
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			l := Build(testProjects(), tt.filter)
			assert.False(t, l.Globe)
			assert.Equal(t, tt.want, columns(l))
		})
	}
}

func TestBuild_AlphabeticalIgnoresCase(t *testing.T) {
	l := Build([]catalog.Project{
		{ID: 1, Title: "beta"}, {ID: 2, Title: "Alpha"}, {ID: 3, Title: "alder"},
	}, Alphabetical)
	assert.Equal(t, []column{{"A", []int{3, 2}}, {"B", []int{1}}}, columns(l))
}

func TestBuild_Location(t *testing.T) {
	l := Build(testProjects(), Location)
	assert.True(t, l.Globe)
	assert.Empty(t, l.Columns)
}

func TestIcon(t *testing.T) {
	ps := testProjects()
	assert.Equal(t, "1.png", Icon(ps[0], false))
	assert.Equal(t, "1h.png", Icon(ps[0], true))
	assert.Equal(t, "2.png", Icon(ps[1], true))
}

func TestCellAt(t *testing.T) {
	l := Build(testProjects(), Epoch)
	m := Metrics{CellWidth: 100, CellHeight: 50, ColumnGap: 10, HeaderHeight: 20}

	p, ok := l.CellAt(m, 5, 25)
	require.True(t, ok)
	assert.Equal(t, 2, p.ID)

	// Second cell of the OTHER column.
	x, y, _, _ := m.CellRect(3, 1)
	p, ok = l.CellAt(m, x+1, y+1)
	require.True(t, ok)
	assert.Equal(t, 5, p.ID)

	for name, pt := range map[string][2]float32{
		"header":       {5, 10},
		"gap":          {105, 25},
		"below column": {5, 20 + 50 + 1},
		"past columns": {4 * 110, 25},
		"negative":     {-1, 25},
	} {
		_, ok := l.CellAt(m, pt[0], pt[1])
		assert.False(t, ok, name)
	}
}

type host struct {
	mounts, unmounts int
}

func (h *host) MountGlobe()   { h.mounts++ }
func (h *host) UnmountGlobe() { h.unmounts++ }

func TestRenderer_MountsGlobeOnlyForLocation(t *testing.T) {
	h := &host{}
	bus := events.NewBus()
	var changes []events.LayoutChanged
	bus.LayoutChanged.Subscribe(func(e events.LayoutChanged) { changes = append(changes, e) })

	r := NewRenderer(testProjects(), h, bus, false, zerolog.Nop())
	r.Apply(Chronological)
	assert.Equal(t, 0, h.mounts)

	r.Apply(Location)
	r.Apply(Location)
	assert.Equal(t, 1, h.mounts)
	assert.True(t, r.GlobeMounted())

	r.Apply(Scale)
	assert.Equal(t, 1, h.unmounts)
	assert.False(t, r.GlobeMounted())

	require.Len(t, changes, 4)
	assert.Equal(t, events.LayoutChanged{Filter: "LOCATION", Globe: true}, changes[1])
	assert.Equal(t, events.LayoutChanged{Filter: "SCALE"}, changes[3])
}

func TestRenderer_ClickActivates(t *testing.T) {
	bus := events.NewBus()
	var got []int
	bus.MarkerActivated.Subscribe(func(e events.MarkerActivated) { got = append(got, e.Project.ID) })

	r := NewRenderer(testProjects(), &host{}, bus, false, zerolog.Nop())
	r.SetMetrics(Metrics{CellWidth: 100, CellHeight: 50, HeaderHeight: 20})
	r.Apply(Epoch)

	assert.True(t, r.Click(10, 30))
	assert.False(t, r.Click(10, 5))

	r.Apply(Location)
	assert.False(t, r.Click(10, 30))
	assert.Equal(t, []int{2}, got)
}

func TestRenderer_HoverImageToggle(t *testing.T) {
	r := NewRenderer(testProjects(), &host{}, events.NewBus(), true, zerolog.Nop())
	p := testProjects()[0]
	assert.Equal(t, "1h.png", r.Icon(p))
	r.SetShowHoverImages(false)
	assert.False(t, r.ShowHoverImages())
	assert.Equal(t, "1.png", r.Icon(p))
}

func TestRenderer_NarrowRebuildsColumns(t *testing.T) {
	r := NewRenderer(testProjects(), &host{}, events.NewBus(), false, zerolog.Nop())
	r.Apply(Epoch)
	require.Len(t, r.Layout().Columns, 4)

	ps := testProjects()
	r.Narrow([]catalog.Project{ps[0], ps[2]})
	assert.Equal(t, []column{
		{label: "PRESENT", ids: []int{1}},
		{label: "FUTURE", ids: []int{3}},
	}, columns(r.Layout()))

	r.Apply(Chronological)
	assert.Equal(t, []column{{label: "2019", ids: []int{1, 3}}}, columns(r.Layout()))

	r.Narrow(nil)
	assert.Empty(t, r.Layout().Columns)
}

func TestRenderer_NarrowLeavesGlobeLayout(t *testing.T) {
	h := &host{}
	r := NewRenderer(testProjects(), h, events.NewBus(), false, zerolog.Nop())
	r.Narrow(nil)
	r.Apply(Location)
	r.Narrow(testProjects()[:1])
	assert.True(t, r.Layout().Globe)
	assert.Equal(t, 1, h.mounts)
}
