package ui

import (
	"strconv"
	"strings"
)

// Rule is one selector with its raw declarations, e.g. ".tooltip" -> {"padding": "6px"}.
type Rule struct {
	Selector string
	Props    map[string]string
}

// Matches reports whether the rule's ".class" or "#id" selector names n.
func (r Rule) Matches(n *Node) bool {
	if r.Selector == "" {
		return false
	}
	name := r.Selector[1:]
	switch r.Selector[0] {
	case '.':
		return n.Class != "" && n.Class == name
	case '#':
		return n.ID != "" && n.ID == name
	}
	return false
}

// Stylesheet holds rules in source order; later rules win.
type Stylesheet struct {
	Rules []Rule
}

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

var (
	Transparent = Color{}
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
)

// ComputedStyle is a node's resolved box and text style. A percentage offset places the box
// that fraction of the free space from the left/top; -1 means unset. Padding insets text.
type ComputedStyle struct {
	Background Color
	Color      Color
	Border     Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	HasLeft    bool
	HasTop     bool
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32
	FontSize   int32
}

// DefaultComputedStyle is white 20px text on nothing.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: Transparent,
		Color:      White,
		Border:     Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   20,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA, or the keyword "transparent".
func ParseHexColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return Transparent, true
	}
	if len(s) < 4 || s[0] != '#' {
		return Black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return Black, false
		}
	}
	switch len(hex) {
	case 3:
		return Color{hexByte(hex[0]) * 17, hexByte(hex[1]) * 17, hexByte(hex[2]) * 17, 255}, true
	case 6, 8:
		c := Color{
			R: hexByte(hex[0])<<4 + hexByte(hex[1]),
			G: hexByte(hex[2])<<4 + hexByte(hex[3]),
			B: hexByte(hex[4])<<4 + hexByte(hex[5]),
			A: 255,
		}
		if len(hex) == 8 {
			c.A = hexByte(hex[6])<<4 + hexByte(hex[7])
		}
		return c, true
	}
	return Black, false
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func hexByte(c byte) uint8 {
	v, _ := hexDigit(c)
	return v
}

// parseLength parses "12", "12px" or "25%". Percentages must lie in 0..100.
func parseLength(s string) (n int32, pct bool, ok bool) {
	s = strings.TrimSpace(s)
	if rest, found := strings.CutSuffix(s, "%"); found {
		v, err := strconv.Atoi(rest)
		if err != nil || v < 0 || v > 100 {
			return 0, false, false
		}
		return int32(v), true, true
	}
	v, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "px")))
	if err != nil {
		return 0, false, false
	}
	return int32(v), false, true
}

// pixels accepts only absolute lengths of at least least.
func pixels(v string, least int32) (int32, bool) {
	n, pct, ok := parseLength(v)
	return n, ok && !pct && n >= least
}

// setters apply one declaration to a style; unparsable values are ignored.
var setters = map[string]func(*ComputedStyle, string){
	"background": func(s *ComputedStyle, v string) { setColor(&s.Background, v) },
	"color":      func(s *ComputedStyle, v string) { setColor(&s.Color, v) },
	"border": func(s *ComputedStyle, v string) {
		if setColor(&s.Border, v) {
			s.HasBorder = true
		}
	},
	"width":     func(s *ComputedStyle, v string) { setPixels(&s.Width, v, 0) },
	"height":    func(s *ComputedStyle, v string) { setPixels(&s.Height, v, 0) },
	"padding":   func(s *ComputedStyle, v string) { setPixels(&s.Padding, v, 0) },
	"font-size": func(s *ComputedStyle, v string) { setPixels(&s.FontSize, v, 1) },
	"left": func(s *ComputedStyle, v string) {
		setOffset(v, &s.Left, &s.HasLeft, &s.LeftPct)
	},
	"top": func(s *ComputedStyle, v string) {
		setOffset(v, &s.Top, &s.HasTop, &s.TopPct)
	},
}

func init() {
	setters["background-color"] = setters["background"]
	setters["border-color"] = setters["border"]
	setters["x"] = setters["left"]
	setters["y"] = setters["top"]
}

func setColor(dst *Color, v string) bool {
	c, ok := ParseHexColor(v)
	if ok {
		*dst = c
	}
	return ok
}

func setPixels(dst *int32, v string, least int32) {
	if n, ok := pixels(v, least); ok {
		*dst = n
	}
}

func setOffset(v string, px *int32, hasPx *bool, pct *int32) {
	n, isPct, ok := parseLength(v)
	switch {
	case !ok:
	case isPct:
		*pct = n
	default:
		*px, *hasPx = n, true
	}
}

// ResolveProps builds a ComputedStyle from the merged declarations of every matching rule.
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		if set, ok := setters[k]; ok {
			set(&out, strings.TrimSpace(v))
		}
	}
	return out
}
