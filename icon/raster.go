package icon

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"
)

// rasterize renders SVG bytes to a size x size RGBA image.
func rasterize(svgData []byte, size int) (*image.RGBA, error) {
	svgIcon, err := oksvg.ReadIconStream(bytes.NewReader(svgData), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg for rasterization: %w", err)
	}
	svgIcon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	svgIcon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}

// decodeRaster decodes PNG, JPEG, GIF, or WebP bytes.
func decodeRaster(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// fitImage shrinks img to fit within size x size, preserving aspect ratio.
// Images already within bounds are returned unchanged.
func fitImage(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || (b.Dx() <= size && b.Dy() <= size) {
		return img
	}
	return imaging.Fit(img, size, size, imaging.Lanczos)
}

// recolorImage replaces the color of every non-transparent pixel, keeping
// each pixel's alpha.
func recolorImage(img image.Image, c color.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i+3] > 0 {
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
		}
	}
	return out
}

// gradientImage recolors non-transparent pixels along a two-stop gradient
// across the image, keeping alpha.
func gradientImage(img image.Image, g *Gradient) (*image.NRGBA, error) {
	from, err := parseColor(g.From)
	if err != nil {
		return nil, err
	}
	to, err := parseColor(g.To)
	if err != nil {
		return nil, err
	}
	out := imaging.Clone(img)
	w := out.Rect.Dx()
	h := out.Rect.Dy()
	dir := g.direction()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*out.Stride + x*4
			if out.Pix[i+3] == 0 {
				continue
			}
			var ratio float64
			switch dir {
			case DirectionVertical:
				if h > 1 {
					ratio = float64(y) / float64(h-1)
				}
			case DirectionDiagonal:
				if w+h > 2 {
					ratio = float64(x+y) / float64(w+h-2)
				}
			default:
				if w > 1 {
					ratio = float64(x) / float64(w-1)
				}
			}
			out.Pix[i] = lerpByte(from.R, to.R, ratio)
			out.Pix[i+1] = lerpByte(from.G, to.G, ratio)
			out.Pix[i+2] = lerpByte(from.B, to.B, ratio)
		}
	}
	return out, nil
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

// embedRasterSVG wraps an image in an SVG document as a base64 PNG data URI.
func embedRasterSVG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode embedded png: %w", err)
	}
	b := img.Bounds()
	return embedDataURI(buf.Bytes(), "png", b.Dx(), b.Dy()), nil
}

// embedRawSVG wraps undecoded image bytes in an SVG document. Used when the
// bytes cannot be decoded locally but a browser may still render them.
func embedRawSVG(data []byte, subtype string, size int) []byte {
	return embedDataURI(data, subtype, size, size)
}

func embedDataURI(data []byte, subtype string, w, h int) []byte {
	b64 := base64.StdEncoding.EncodeToString(data)
	svg := fmt.Sprintf(
		`<svg xmlns="%s" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n"+
			`<image width="%d" height="%d" href="data:image/%s;base64,%s" />`+"\n"+
			`</svg>`,
		svgNamespace, w, h, w, h, w, h, subtype, b64,
	)
	return []byte(svg)
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func encodeWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return nil
}

func encodeAnimatedWebP(w io.Writer, frames []image.Image, frameDurationMS int) error {
	ani := nativewebp.Animation{
		Images:    frames,
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
		LoopCount: 0,
	}
	for i := range ani.Durations {
		ani.Durations[i] = uint(frameDurationMS)
		ani.Disposals[i] = 1
	}
	if err := nativewebp.EncodeAll(w, &ani, nil); err != nil {
		return fmt.Errorf("failed to encode animated webp: %w", err)
	}
	return nil
}

// encodeICO writes a single-image ICO file with a PNG payload. PNG payloads
// are valid in ICO since Vista and keep the file small at large sizes.
func encodeICO(w io.Writer, img image.Image) error {
	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return fmt.Errorf("failed to encode ico payload: %w", err)
	}
	b := img.Bounds()
	dim := func(n int) byte {
		if n >= 256 {
			return 0 // 0 means 256 in ICO directory entries
		}
		return byte(n)
	}
	header := struct {
		Reserved  uint16
		Type      uint16
		Count     uint16
		Width     byte
		Height    byte
		Colors    byte
		Reserved2 byte
		Planes    uint16
		BitCount  uint16
		Size      uint32
		Offset    uint32
	}{
		Type:     1,
		Count:    1,
		Width:    dim(b.Dx()),
		Height:   dim(b.Dy()),
		Planes:   1,
		BitCount: 32,
		Size:     uint32(payload.Len()),
		Offset:   22, // 6-byte header + 16-byte directory entry
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write ico header: %w", err)
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("failed to write ico payload: %w", err)
	}
	return nil
}

const animationFPS = 20

// animationFrames rasterizes the icon once and renders each frame by
// transforming the raster in image space, matching the SMIL presets closely
// enough for preview use. The background, when present, is rendered from
// the wrapped document so rect geometry and gradients match the SVG output.
func animationFrames(iconSVG, backgroundSVG []byte, size int, spec *animationSpec) ([]image.Image, int, error) {
	cycle := spec.dur
	if spec.kind == AnimationFlipH || spec.kind == AnimationFlipV {
		// Matches the SMIL timing: two holds of four flip durations each.
		cycle = spec.dur * 10
	}
	count := int(float64(animationFPS) * cycle.Seconds())
	if count < 1 {
		count = 1
	}
	frameMS := int(cycle.Seconds() * 1000 / float64(count))
	if frameMS < 1 {
		frameMS = 1
	}

	iconSize := size
	var background *image.NRGBA
	if backgroundSVG != nil {
		bg, err := rasterize(backgroundSVG, size)
		if err != nil {
			return nil, 0, err
		}
		background = imaging.Clone(bg)
		// The wrapped document scales the icon to 70% of the canvas.
		iconSize = int(float64(size) * 0.7)
		if iconSize < 1 {
			iconSize = 1
		}
	}
	base, err := rasterize(iconSVG, iconSize)
	if err != nil {
		return nil, 0, err
	}

	frames := make([]image.Image, 0, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count)
		layer := transformFrame(base, spec.kind, t, iconSize)
		canvas := imaging.New(size, size, color.NRGBA{})
		if background != nil {
			canvas = imaging.OverlayCenter(canvas, background, 1)
		}
		canvas = imaging.OverlayCenter(canvas, layer, 1)
		frames = append(frames, canvas)
	}
	return frames, frameMS, nil
}

func transformFrame(base *image.RGBA, kind string, t float64, size int) image.Image {
	switch kind {
	case AnimationSpin:
		rotated := imaging.Rotate(base, -360*t, color.NRGBA{})
		return imaging.CropCenter(rotated, size, size)
	case AnimationPulse:
		// Eased 1 -> 0.1 -> 1 over the cycle.
		s := 1 - 0.9*(0.5-0.5*math.Cos(2*math.Pi*t))
		return scaleFrame(base, s, s, size)
	case AnimationFlipH:
		return scaleFrame(base, flipScaleAt(t), 1, size)
	case AnimationFlipV:
		return scaleFrame(base, 1, flipScaleAt(t), size)
	default:
		return base
	}
}

// flipScaleAt returns the scale factor along the flipped axis at normalized
// cycle time t: hold at 1, sweep to -1 and back, hold, sweep again.
func flipScaleAt(t float64) float64 {
	const hold = 0.4 // each hold is 4 of 10 flip durations
	const sweep = 0.1
	sweepAt := func(local float64) float64 {
		// local in [0,1): 1 -> -1 -> 1
		if local < 0.5 {
			return 1 - 4*local
		}
		return -1 + 4*(local-0.5)
	}
	switch {
	case t < hold:
		return 1
	case t < hold+sweep:
		return sweepAt((t - hold) / sweep)
	case t < 2*hold+sweep:
		return 1
	default:
		return sweepAt((t - 2*hold - sweep) / sweep)
	}
}

func scaleFrame(base *image.RGBA, sx, sy float64, size int) image.Image {
	w := int(math.Max(1, math.Abs(sx)*float64(base.Bounds().Dx())))
	h := int(math.Max(1, math.Abs(sy)*float64(base.Bounds().Dy())))
	img := imaging.Resize(base, w, h, imaging.Linear)
	if sx < 0 {
		img = imaging.FlipH(img)
	}
	if sy < 0 {
		img = imaging.FlipV(img)
	}
	canvas := imaging.New(size, size, color.NRGBA{})
	return imaging.OverlayCenter(canvas, img, 1)
}
