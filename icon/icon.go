// Package icon fetches icons from the Iconify API, direct URLs, or local
// files, applies color, size, background, and animation transforms, and
// exports the result as SVG or a raster format.
package icon

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies an output file format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatICO  Format = "ico"
)

// ParseFormat converts a string like "png" to a Format. The empty string
// maps to FormatSVG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	case "ico":
		return FormatICO, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected svg, png, webp, or ico)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Direction orients a gradient.
type Direction string

const (
	DirectionHorizontal Direction = "horizontal"
	DirectionVertical   Direction = "vertical"
	DirectionDiagonal   Direction = "diagonal"
)

// ParseDirection converts a string to a Direction. The empty string maps
// to DirectionHorizontal.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal":
		return DirectionHorizontal, nil
	case "vertical":
		return DirectionVertical, nil
	case "diagonal":
		return DirectionDiagonal, nil
	default:
		return "", fmt.Errorf("unsupported gradient direction %q (expected horizontal, vertical, or diagonal)", s)
	}
}

// Gradient is a two-stop linear gradient.
type Gradient struct {
	From      string
	To        string
	Direction Direction
}

func (g *Gradient) direction() Direction {
	if g.Direction == "" {
		return DirectionHorizontal
	}
	return g.Direction
}

// Request describes one icon generation. Exactly one of Icon, URL, or
// LocalFile must be set.
type Request struct {
	// Icon is an Iconify reference in "collection:name" or
	// "collection/name" form.
	Icon string

	// URL fetches the icon from a direct URL (SVG or raster).
	URL string

	// LocalFile reads the icon from disk (SVG or raster).
	LocalFile string

	// OutputName overrides the derived output file name (no extension).
	OutputName string

	// Color recolors the icon with a single solid color. Mutually
	// exclusive with Gradient.
	Color string

	// Gradient recolors the icon with a two-stop linear gradient.
	Gradient *Gradient

	// Size sets the rendered width and height in pixels. Nil keeps the
	// source dimensions for SVG output; raster output defaults to 256.
	Size *int

	Format Format

	// Background decoration. BgColor and BgGradient are mutually
	// exclusive.
	BgColor      string
	BgGradient   *Gradient
	BorderRadius int
	OutlineWidth int
	OutlineColor string

	// Animation is a preset name with an optional duration suffix,
	// e.g. "spin", "pulse:500ms", "flip-h:2s".
	Animation string
}

// Validate checks the request for structural errors. It never touches the
// network or the filesystem.
func (r *Request) Validate() error {
	sources := 0
	for _, s := range []string{r.Icon, r.URL, r.LocalFile} {
		if strings.TrimSpace(s) != "" {
			sources++
		}
	}
	if sources != 1 {
		return errors.New("exactly one of icon, url, or file must be provided")
	}
	if r.Size != nil && *r.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", *r.Size)
	}
	if r.Color != "" && r.Gradient != nil {
		return errors.New("color and gradient are mutually exclusive")
	}
	if r.BgColor != "" && r.BgGradient != nil {
		return errors.New("background color and background gradient are mutually exclusive")
	}
	if r.BorderRadius < 0 {
		return fmt.Errorf("border radius must not be negative, got %d", r.BorderRadius)
	}
	if r.OutlineWidth < 0 {
		return fmt.Errorf("outline width must not be negative, got %d", r.OutlineWidth)
	}
	if _, err := ParseFormat(string(r.Format)); err != nil {
		return err
	}
	if r.Animation != "" {
		if _, err := parseAnimation(r.Animation); err != nil {
			return err
		}
	}
	if r.Gradient != nil {
		if _, err := ParseDirection(string(r.Gradient.Direction)); err != nil {
			return err
		}
	}
	if r.BgGradient != nil {
		if _, err := ParseDirection(string(r.BgGradient.Direction)); err != nil {
			return err
		}
	}
	return nil
}

// format returns the request format with the default applied.
func (r *Request) format() Format {
	if r.Format == "" {
		return FormatSVG
	}
	return Format(strings.ToLower(string(r.Format)))
}

// sizeOr returns the requested size or the fallback.
func (r *Request) sizeOr(fallback int) int {
	if r.Size != nil {
		return *r.Size
	}
	return fallback
}

// Result describes a completed generation.
type Result struct {
	// Name is the output file name without extension.
	Name string

	// Path is the full path of the written file.
	Path string

	Format Format
}

// NotFoundError indicates that an icon reference could not be resolved:
// the reference did not parse, the source returned a non-2xx status, or a
// local file was missing.
type NotFoundError struct {
	Ref string
	Err error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("icon not found: %s: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("icon not found: %s", e.Ref)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
