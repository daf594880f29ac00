package icon

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// parseColor converts a CSS color string (hex or a CSS3 named color) to an
// NRGBA value. It accepts #rgb, #rrggbb, and #rrggbbaa hex forms.
func parseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unrecognized color %q", s)
}

func parseHexColor(s string) (color.NRGBA, error) {
	hex := s[1:]
	var r, g, b, a uint8
	a = 0xff
	switch len(hex) {
	case 3:
		n, err := hexNibbles(hex)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r = uint8(n[0]*16 + n[0])
		g = uint8(n[1]*16 + n[1])
		b = uint8(n[2]*16 + n[2])
	case 6, 8:
		n, err := hexNibbles(hex)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r = uint8(n[0]*16 + n[1])
		g = uint8(n[2]*16 + n[3])
		b = uint8(n[4]*16 + n[5])
		if len(hex) == 8 {
			a = uint8(n[6]*16 + n[7])
		}
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func hexNibbles(s string) ([]int, error) {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			out[i] = int(c - '0')
		case c >= 'a' && c <= 'f':
			out[i] = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			out[i] = int(c-'A') + 10
		default:
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return out, nil
}
