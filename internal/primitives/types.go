package primitives

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"portfolio-globe/internal/ui"
)

// StylePath is where the globe appearance is read from, relative to the working directory.
const StylePath = "assets/globe/style.yaml"

// styleDef is the YAML form of Style (e.g. assets/globe/style.yaml).
type styleDef struct {
	SphereColor      string     `yaml:"sphere_color,omitempty"`
	SphereTexture    string     `yaml:"sphere_texture,omitempty"`
	Backdrop         string     `yaml:"backdrop,omitempty"`
	Rings            int        `yaml:"rings,omitempty"`
	Slices           int        `yaml:"slices,omitempty"`
	Ambient          [3]float32 `yaml:"ambient,omitempty"`
	LightColor       [3]float32 `yaml:"light_color,omitempty"`
	LightIntensity   float32    `yaml:"light_intensity,omitempty"`
	SpecularPower    float32    `yaml:"specular_power,omitempty"`
	SpecularStrength float32    `yaml:"specular_strength,omitempty"`
	RimStrength      float32    `yaml:"rim_strength,omitempty"`
}

// Style is the appearance of the globe sphere and its lighting.
type Style struct {
	SphereColor   [4]uint8
	SphereTexture string // optional equirectangular map; empty draws a plain sphere
	Backdrop      string // optional local image behind the globe: a cubemap or a 2:1 panorama
	Rings, Slices int

	Ambient          [3]float32
	LightColor       [3]float32
	LightIntensity   float32
	SpecularPower    float32
	SpecularStrength float32
	RimStrength      float32
}

// DefaultStyle is a dim grey sphere with a soft warm-white light.
func DefaultStyle() Style {
	return Style{
		SphereColor:      [4]uint8{40, 44, 52, 255},
		Rings:            32,
		Slices:           48,
		Ambient:          [3]float32{0.2, 0.22, 0.26},
		LightColor:       [3]float32{1.0, 0.98, 0.95},
		LightIntensity:   0.75,
		SpecularPower:    48,
		SpecularStrength: 0.35,
		RimStrength:      0.4,
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Rings <= 0 {
		s.Rings = d.Rings
	}
	if s.Slices <= 0 {
		s.Slices = d.Slices
	}
	if s.SphereColor == ([4]uint8{}) {
		s.SphereColor = d.SphereColor
	}
	if s.LightColor == ([3]float32{}) {
		s.LightColor = d.LightColor
	}
	if s.LightIntensity <= 0 {
		s.LightIntensity = d.LightIntensity
	}
	if s.SpecularPower <= 0 {
		s.SpecularPower = d.SpecularPower
	}
	return s
}

// LoadStyle reads a style file. A missing file yields DefaultStyle and no error.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultStyle(), nil
	}
	if err != nil {
		return DefaultStyle(), err
	}
	var def styleDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return DefaultStyle(), fmt.Errorf("globe style %s: %w", path, err)
	}
	s := Style{
		SphereTexture:    def.SphereTexture,
		Backdrop:         def.Backdrop,
		Rings:            def.Rings,
		Slices:           def.Slices,
		Ambient:          def.Ambient,
		LightColor:       def.LightColor,
		LightIntensity:   def.LightIntensity,
		SpecularPower:    def.SpecularPower,
		SpecularStrength: def.SpecularStrength,
		RimStrength:      def.RimStrength,
	}
	if def.SphereColor != "" {
		c, ok := ui.ParseHexColor(def.SphereColor)
		if !ok {
			return DefaultStyle(), fmt.Errorf("globe style %s: bad sphere_color %q", path, def.SphereColor)
		}
		s.SphereColor = [4]uint8{c.R, c.G, c.B, c.A}
	}
	return s.withDefaults(), nil
}
