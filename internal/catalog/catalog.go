package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var defaultCatalog []byte

var (
	// ErrDuplicateID is returned when two projects share an id.
	ErrDuplicateID = errors.New("duplicate project id")
	// ErrEmptyTitle is returned when a project has no title.
	ErrEmptyTitle = errors.New("project title is empty")
)

// Link is an external reference shown in the detail panel (press, drawings, client site).
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Project is one portfolio entry. Typology, Program, Scale and Epoch are optional and
// are read through Field so callers never dereference a nil pointer.
type Project struct {
	ID          int     `yaml:"id"`
	Title       string  `yaml:"title"`
	Year        int     `yaml:"year"`
	Location    string  `yaml:"location"`
	Image       string  `yaml:"image"`
	HoverImage  string  `yaml:"hoverImage"`
	Description string  `yaml:"description,omitempty"`
	Links       []Link  `yaml:"links,omitempty"`
	Typology    *string `yaml:"typology,omitempty"`
	Program     *string `yaml:"program,omitempty"`
	Scale       *string `yaml:"scale,omitempty"`
	Epoch       *string `yaml:"epoch,omitempty"`
}

// Optional field names accepted by Field.
const (
	FieldTypology = "typology"
	FieldProgram  = "program"
	FieldScale    = "scale"
	FieldEpoch    = "epoch"
)

// Field returns the value of an optional curatorial field and whether it is set.
func (p Project) Field(name string) (string, bool) {
	var v *string
	switch name {
	case FieldTypology:
		v = p.Typology
	case FieldProgram:
		v = p.Program
	case FieldScale:
		v = p.Scale
	case FieldEpoch:
		v = p.Epoch
	}
	if v == nil {
		return "", false
	}
	return *v, true
}

// Catalog is the read-only ordered list of projects.
type Catalog struct {
	projects []Project
	byID     map[int]int
}

type catalogFile struct {
	Projects []Project `yaml:"projects"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Order in the file is preserved; it drives marker stacking.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return New(f.Projects)
}

// New validates projects and wraps them in a Catalog.
func New(projects []Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, len(projects)),
		byID:     make(map[int]int, len(projects)),
	}
	for i, p := range projects {
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("catalog: project %d: %w", p.ID, ErrEmptyTitle)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: project %d: %w", p.ID, ErrDuplicateID)
		}
		c.byID[p.ID] = i
		c.projects[i] = p
	}
	return c, nil
}

// Projects returns a copy of the project list in catalog order.
func (c *Catalog) Projects() []Project {
	out := make([]Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// ByID looks a project up by id.
func (c *Catalog) ByID(id int) (Project, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Project{}, false
	}
	return c.projects[i], true
}
