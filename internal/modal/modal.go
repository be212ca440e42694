package modal

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"portfolio-globe/internal/catalog"
	"portfolio-globe/internal/events"
)

// Controller owns the project detail panel. It opens on MarkerActivated and announces
// ModalClosed when dismissed; the globe and grid never call it back directly.
type Controller struct {
	bus     *events.Bus
	log     zerolog.Logger
	current *catalog.Project
	unsub   func()
}

// New returns a controller subscribed to bus.
func New(bus *events.Bus, log zerolog.Logger) *Controller {
	c := &Controller{bus: bus, log: log}
	c.unsub = bus.MarkerActivated.Subscribe(func(e events.MarkerActivated) {
		c.Open(e.Project)
	})
	return c
}

// Open shows p. Opening over an already open panel replaces it without a close event.
func (c *Controller) Open(p catalog.Project) {
	c.current = &p
	c.log.Info().Int("project", p.ID).Str("title", p.Title).Msg("modal opened")
}

// Close hides the panel and publishes ModalClosed. Closing a closed panel is a no-op.
func (c *Controller) Close() {
	if c.current == nil {
		return
	}
	id := c.current.ID
	c.current = nil
	c.log.Info().Int("project", id).Msg("modal closed")
	c.bus.ModalClosed.Publish(events.ModalClosed{ProjectID: id})
}

// IsOpen reports whether a panel is showing.
func (c *Controller) IsOpen() bool {
	return c.current != nil
}

// Current returns the project shown.
func (c *Controller) Current() (catalog.Project, bool) {
	if c.current == nil {
		return catalog.Project{}, false
	}
	return *c.current, true
}

// Stop unsubscribes from the bus.
func (c *Controller) Stop() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}

// Lines formats the detail panel body for the open project: title, year and place,
// the curatorial fields that are set, the description and the links.
func (c *Controller) Lines() []string {
	p, ok := c.Current()
	if !ok {
		return nil
	}
	lines := []string{p.Title}
	head := p.Location
	if p.Year != 0 {
		head = fmt.Sprintf("%d, %s", p.Year, p.Location)
	}
	lines = append(lines, head)

	var tags []string
	for _, f := range []string{catalog.FieldTypology, catalog.FieldProgram, catalog.FieldScale, catalog.FieldEpoch} {
		if v, ok := p.Field(f); ok && v != "" {
			tags = append(tags, strings.ToUpper(f)+": "+v)
		}
	}
	if len(tags) > 0 {
		lines = append(lines, strings.Join(tags, "  "))
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	for _, l := range p.Links {
		lines = append(lines, l.Label+": "+l.URL)
	}
	return lines
}
