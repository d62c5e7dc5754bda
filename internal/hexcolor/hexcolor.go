// Package hexcolor converts "#RRGGBB" strings into the normalized sRGB
// component strings used by asset catalog color sets.
package hexcolor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalid is returned when a string is not a 6-digit hex color.
var ErrInvalid = errors.New("invalid hex color")

// Alpha is the fixed alpha component written for every color.
const Alpha = "1.000"

// Components holds normalized red/green/blue/alpha values, each formatted
// with exactly three decimal places.
type Components struct {
	Red   string `json:"red"`
	Green string `json:"green"`
	Blue  string `json:"blue"`
	Alpha string `json:"alpha"`
}

// HasPrefix reports whether hex carries its leading "#".
func HasPrefix(hex string) bool {
	return strings.HasPrefix(hex, "#")
}

// Parse parses a "#RRGGBB" or "RRGGBB" string into a color whose channels
// are byte/255.
func Parse(hex string) (colorful.Color, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return colorful.Color{}, fmt.Errorf("%w %q: must be 6 hex digits", ErrInvalid, hex)
	}
	if i := strings.IndexFunc(digits, notHexDigit); i >= 0 {
		return colorful.Color{}, fmt.Errorf("%w %q: bad digit %q", ErrInvalid, hex, digits[i])
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q: %v", ErrInvalid, hex, err)
	}
	return c, nil
}

// FromColor formats c's channels as component strings. Alpha is always [Alpha].
func FromColor(c colorful.Color) Components {
	return Components{
		Red:   format(c.R),
		Green: format(c.G),
		Blue:  format(c.B),
		Alpha: Alpha,
	}
}

// Convert parses hex and returns its components.
func Convert(hex string) (Components, error) {
	c, err := Parse(hex)
	if err != nil {
		return Components{}, err
	}
	return FromColor(c), nil
}

func format(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func notHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		return false
	}
	return true
}
