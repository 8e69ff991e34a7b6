package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidColor is returned for color strings that are neither hex nor a
// known color name.
var ErrInvalidColor = errors.New("invalid color")

// Color is a 0xAARRGGBB color. In YAML it is written as "#rrggbb",
// "#aarrggbb" or a CSS color name.
type Color uint32

// ParseColor parses a color string.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return 0, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, s)
		}
		return fromRGBA(c), nil
	}

	alpha := uint32(0xff)
	hex := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = uint32(a)
		hex = "#" + s[3:]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return Color(alpha<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
}

func fromRGBA(c color.RGBA) Color {
	return Color(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// ARGB returns the color as 0xAARRGGBB.
func (c Color) ARGB() uint32 { return uint32(c) }

func (c Color) String() string {
	rgb := colorful.Color{
		R: float64(c>>16&0xff) / 255,
		G: float64(c>>8&0xff) / 255,
		B: float64(c&0xff) / 255,
	}.Hex()
	if a := uint32(c) >> 24; a != 0xff {
		return fmt.Sprintf("#%02x%s", a, rgb[1:])
	}
	return rgb
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}
