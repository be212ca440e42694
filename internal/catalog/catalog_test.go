package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Greater(t, c.Len(), 0)

	p, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "SLS HOTEL TOWER", p.Title)
	scale, ok := p.Field(FieldScale)
	assert.True(t, ok)
	assert.Equal(t, "XL", scale)
}

func TestDefault_PreservesFileOrder(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	projects := c.Projects()
	for i := 1; i < len(projects); i++ {
		assert.Less(t, projects[i-1].ID, projects[i].ID)
	}
}

func TestParse_OptionalFieldsMissing(t *testing.T) {
	c, err := Parse([]byte(`
projects:
  - id: 7
    title: Bare
    location: LONDON
`))
	require.NoError(t, err)
	p, _ := c.ByID(7)
	for _, f := range []string{FieldTypology, FieldProgram, FieldScale, FieldEpoch} {
		_, ok := p.Field(f)
		assert.False(t, ok, f)
	}
	_, ok := p.Field("color")
	assert.False(t, ok)
}

func TestParse_DuplicateID(t *testing.T) {
	_, err := Parse([]byte(`
projects:
  - {id: 1, title: A}
  - {id: 1, title: B}
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestParse_EmptyTitle(t *testing.T) {
	_, err := Parse([]byte(`
projects:
  - {id: 1, title: "  "}
`))
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("projects: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog:")
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - {id: 3, title: Three}\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestProjects_ReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	ps := c.Projects()
	ps[0].Title = "changed"
	p, _ := c.ByID(ps[0].ID)
	assert.NotEqual(t, "changed", p.Title)
}

func TestDefaultLocations(t *testing.T) {
	locs := DefaultLocations()
	assert.Len(t, locs, 9)

	_, ok := locs.Lookup("LOW EARTH ORBIT")
	assert.False(t, ok)

	c, ok := locs.Lookup("LONDON")
	require.True(t, ok)
	assert.InDelta(t, 51.5, c.Lat, 0.01)

	locs["LONDON"] = Coordinate{}
	again, _ := DefaultLocations().Lookup("LONDON")
	assert.InDelta(t, 51.5, again.Lat, 0.01)
}

func TestDefault_ImagesShipWithRepo(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	root := filepath.Join("..", "..")
	for _, p := range c.Projects() {
		assert.FileExists(t, filepath.Join(root, p.Image), "project %d image", p.ID)
		if p.HoverImage != "" {
			assert.FileExists(t, filepath.Join(root, p.HoverImage), "project %d hover image", p.ID)
		}
	}
}
