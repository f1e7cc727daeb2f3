// Package palette implements the site color scheme: two accent colors and
// two background tints that can either be set manually or derived by
// lightening the accents.
package palette

import (
	"fmt"
	"regexp"

	"siteforge/internal/services"
)

// Mode selects how a background tint is produced.
type Mode string

const (
	// ModeLighten derives the tint by mixing its accent color with white.
	ModeLighten Mode = "lighten"
	// ModeManual uses the operator-picked hex value as-is.
	ModeManual Mode = "manual"
)

// Styles is the color set written into the document's styles block.
type Styles struct {
	A1 string
	A2 string
	B1 string
	B2 string
}

// Palette holds the working color state. B1 follows A1 and B2 follows A2
// when their modes are ModeLighten.
type Palette struct {
	a1, a2, b1, b2 string
	b1Mix, b2Mix   int
	b1Mode, b2Mode Mode
}

// New returns the default palette.
func New() *Palette {
	return &Palette{
		a1:     "#4169e1",
		a2:     "#dc143c",
		b1:     "#f6f2ed",
		b2:     "#fbf9f7",
		b1Mix:  95,
		b2Mix:  98,
		b1Mode: ModeLighten,
		b2Mode: ModeManual,
	}
}

var (
	longHex  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	shortHex = regexp.MustCompile(`^#[0-9a-fA-F]{3}$`)
)

// Normalize coerces a color string to #rrggbb form. Short #abc hex is
// expanded; anything unrecognized falls back to black.
func Normalize(color string) string {
	switch {
	case color == "":
		return "#000000"
	case longHex.MatchString(color):
		return color
	case shortHex.MatchString(color):
		return "#" + string([]byte{color[1], color[1], color[2], color[2], color[3], color[3]})
	default:
		return "#000000"
	}
}

// HexToRGB parses a #rrggbb color. The leading # is optional.
func HexToRGB(hex string) (r, g, b uint8, ok bool) {
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}

// RGBToHex formats a color as #rrggbb.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// MixWithWhite lightens a hex color by mixing it with white at the given
// percentage (100 yields pure white). Unparseable input is returned as-is.
func MixWithWhite(hex string, percentage int) string {
	r, g, b, ok := HexToRGB(hex)
	if !ok {
		return hex
	}
	mix := float64(percentage) / 100
	blend := func(c uint8) uint8 {
		return uint8(float64(c) + (255-float64(c))*mix + 0.5)
	}
	return RGBToHex(blend(r), blend(g), blend(b))
}

// SetColor updates one of the four colors by key (a1, a2, b1, b2). Setting
// an accent re-derives its dependent tint when that tint is in lighten mode.
func (p *Palette) SetColor(key, value string) error {
	value = Normalize(value)
	switch key {
	case "a1":
		p.a1 = value
		if p.b1Mode == ModeLighten {
			p.b1 = MixWithWhite(p.a1, p.b1Mix)
		}
	case "a2":
		p.a2 = value
		if p.b2Mode == ModeLighten {
			p.b2 = MixWithWhite(p.a2, p.b2Mix)
		}
	case "b1":
		p.b1 = value
	case "b2":
		p.b2 = value
	default:
		return services.Wrap(services.ErrValidation, "palette", "set color", "unknown color key "+key, nil)
	}
	return nil
}

// SetMix updates a tint's mix percentage and re-derives it from its accent.
func (p *Palette) SetMix(key string, percent int) error {
	switch key {
	case "b1":
		p.b1Mix = percent
		p.b1 = MixWithWhite(p.a1, percent)
	case "b2":
		p.b2Mix = percent
		p.b2 = MixWithWhite(p.a2, percent)
	default:
		return services.Wrap(services.ErrValidation, "palette", "set mix", "unknown color key "+key, nil)
	}
	return nil
}

// SetMode switches a tint between lighten and manual. Entering lighten mode
// immediately re-derives the tint at the current mix.
func (p *Palette) SetMode(key string, mode Mode) error {
	switch key {
	case "b1":
		p.b1Mode = mode
		if mode == ModeLighten {
			p.b1 = MixWithWhite(p.a1, p.b1Mix)
		}
	case "b2":
		p.b2Mode = mode
		if mode == ModeLighten {
			p.b2 = MixWithWhite(p.a2, p.b2Mix)
		}
	default:
		return services.Wrap(services.ErrValidation, "palette", "set mode", "unknown color key "+key, nil)
	}
	return nil
}

// Styles snapshots the current colors for the document's styles block.
func (p *Palette) Styles() Styles {
	return Styles{A1: p.a1, A2: p.a2, B1: p.b1, B2: p.b2}
}

// LoadStyles overwrites colors from an imported document. Empty fields keep
// their current values.
func (p *Palette) LoadStyles(s Styles) {
	if s.A1 != "" {
		p.a1 = s.A1
	}
	if s.A2 != "" {
		p.a2 = s.A2
	}
	if s.B1 != "" {
		p.b1 = s.B1
	}
	if s.B2 != "" {
		p.b2 = s.B2
	}
}
