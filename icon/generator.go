package icon

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/glyphgen/glyphgen/slogger"
	"github.com/glyphgen/glyphgen/web"
)

const (
	// DefaultSize is used for raster output when the request leaves the
	// size unset.
	DefaultSize = 256

	DefaultOutputDir = "output"
)

// Generator resolves icon sources and renders output files.
type Generator struct {
	outputDir       string
	fetcher         *web.Fetcher
	logger          slogger.Logger
	iconifyEndpoint string
	maxRetries      int
	retryBaseWait   time.Duration
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

func WithOutputDir(dir string) GeneratorOption {
	return func(g *Generator) { g.outputDir = dir }
}

func WithFetcher(f *web.Fetcher) GeneratorOption {
	return func(g *Generator) { g.fetcher = f }
}

func WithLogger(l slogger.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

func WithIconifyEndpoint(endpoint string) GeneratorOption {
	return func(g *Generator) { g.iconifyEndpoint = strings.TrimSuffix(endpoint, "/") }
}

func WithMaxRetries(n int) GeneratorOption {
	return func(g *Generator) { g.maxRetries = n }
}

func WithRetryBaseWait(d time.Duration) GeneratorOption {
	return func(g *Generator) { g.retryBaseWait = d }
}

// New creates a Generator with the given options.
func New(opts ...GeneratorOption) *Generator {
	g := &Generator{
		outputDir:       DefaultOutputDir,
		fetcher:         web.NewFetcher(),
		logger:          slogger.DevNull,
		iconifyEndpoint: DefaultIconifyEndpoint,
		maxRetries:      3,
		retryBaseWait:   500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate resolves the request's source, applies the requested transforms,
// and writes one output file. Validation failures and unparseable references
// return before any network or filesystem access.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	src, err := g.resolveSource(ctx, &req)
	if err != nil {
		return nil, err
	}

	svgData := src.data
	if !src.raster {
		svgData, err = g.transformVector(svgData, &req)
		if err != nil {
			return nil, err
		}
	}
	// Keep the still icon for frame-based raster animation before SMIL
	// elements go in.
	iconSVG := svgData
	if req.Animation != "" {
		svgData, err = animateSVG(svgData, req.Animation)
		if err != nil {
			return nil, err
		}
	}
	wrapped := req.BgColor != "" || req.BgGradient != nil || req.BorderRadius > 0 || req.OutlineWidth > 0
	if wrapped {
		svgData, err = g.wrapSVG(svgData, &req)
		if err != nil {
			return nil, err
		}
	}

	name := req.OutputName
	if name == "" {
		name = deriveName(&req)
	}
	format := req.format()
	outPath := filepath.Join(g.outputDir, name+"."+format.Ext())

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", g.outputDir, err)
	}

	switch format {
	case FormatSVG:
		if err := os.WriteFile(outPath, svgData, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", outPath, err)
		}
	case FormatPNG, FormatICO:
		img, err := rasterize(svgData, req.sizeOr(DefaultSize))
		if err != nil {
			return nil, err
		}
		if err := writeEncoded(outPath, format, func(f *os.File) error {
			if format == FormatICO {
				return encodeICO(f, img)
			}
			return encodePNG(f, img)
		}); err != nil {
			return nil, err
		}
	case FormatWebP:
		if err := g.writeWebP(outPath, svgData, iconSVG, wrapped, &req); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	g.logger.Info("generated icon", "name", name, "format", string(format), "path", outPath)
	return &Result{Name: name, Path: outPath, Format: format}, nil
}

func writeEncoded(outPath string, format Format, encode func(*os.File) error) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(outPath)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}

func (g *Generator) writeWebP(outPath string, svgData, iconSVG []byte, wrapped bool, req *Request) error {
	size := req.sizeOr(DefaultSize)
	if req.Animation != "" {
		spec, err := parseAnimation(req.Animation)
		if err != nil {
			return err
		}
		var backgroundSVG []byte
		if wrapped {
			backgroundSVG, err = g.wrapSVG([]byte(`<svg xmlns="`+svgNamespace+`" viewBox="0 0 24 24"></svg>`), req)
			if err != nil {
				return err
			}
		}
		frames, frameMS, err := animationFrames(iconSVG, backgroundSVG, size, spec)
		if err != nil {
			return err
		}
		return writeEncoded(outPath, FormatWebP, func(f *os.File) error {
			return encodeAnimatedWebP(f, frames, frameMS)
		})
	}
	img, err := rasterize(svgData, size)
	if err != nil {
		return err
	}
	return writeEncoded(outPath, FormatWebP, func(f *os.File) error {
		return encodeWebP(f, img)
	})
}

// source is resolved icon content: SVG bytes, possibly wrapping an embedded
// raster image.
type source struct {
	data   []byte
	raster bool
}

func (g *Generator) resolveSource(ctx context.Context, req *Request) (*source, error) {
	switch {
	case req.Icon != "":
		return g.resolveIconify(ctx, req)
	case req.URL != "":
		return g.resolveURL(ctx, req)
	default:
		return g.resolveLocalFile(req)
	}
}

func (g *Generator) resolveIconify(ctx context.Context, req *Request) (*source, error) {
	collection, name, err := parseIconRef(req.Icon)
	if err != nil {
		return nil, err
	}
	fetchColor := "currentColor"
	switch {
	case req.Gradient != nil:
		fetchColor = "black"
	case req.Color != "":
		fetchColor = req.Color
	}
	res, err := g.fetch(ctx, g.iconifyURL(collection, name, fetchColor))
	if err != nil {
		return nil, &NotFoundError{Ref: req.Icon, Err: err}
	}
	// The Iconify API answers unknown icons with a 404 page; anything that
	// is not an SVG document means the icon does not exist.
	if !looksLikeSVG(res.Data) {
		return nil, &NotFoundError{Ref: req.Icon, Err: errors.New("iconify returned no svg")}
	}
	return &source{data: res.Data}, nil
}

func looksLikeSVG(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "<svg") || strings.HasPrefix(trimmed, "<?xml")
}

func (g *Generator) resolveURL(ctx context.Context, req *Request) (*source, error) {
	res, err := g.fetch(ctx, req.URL)
	if err != nil {
		return nil, &NotFoundError{Ref: req.URL, Err: err}
	}
	lowerURL := strings.ToLower(req.URL)
	if strings.Contains(res.ContentType, "svg") || strings.HasSuffix(urlPath(lowerURL), ".svg") {
		return &source{data: res.Data}, nil
	}
	if strings.HasPrefix(res.ContentType, "image/") || hasRasterExt(lowerURL) {
		return g.embedRaster(res.Data, res.ContentType, req)
	}
	// Servers frequently mislabel SVG as text/plain or octet-stream.
	if looksLikeSVG(res.Data) {
		return &source{data: res.Data}, nil
	}
	return nil, &NotFoundError{Ref: req.URL, Err: fmt.Errorf("unsupported content type %q", res.ContentType)}
}

func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}

func hasRasterExt(s string) bool {
	p := urlPath(s)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp", ".gif"} {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

func (g *Generator) resolveLocalFile(req *Request) (*source, error) {
	ext := strings.ToLower(filepath.Ext(req.LocalFile))
	isJPEG := ext == ".jpg" || ext == ".jpeg"
	if isJPEG && (req.Color != "" || req.Gradient != nil) {
		return nil, errors.New("jpeg images do not support recoloring: use svg, png, or webp sources with transparency")
	}
	data, err := os.ReadFile(req.LocalFile)
	if err != nil {
		return nil, &NotFoundError{Ref: req.LocalFile, Err: err}
	}
	if ext == ".svg" {
		return &source{data: data}, nil
	}
	return g.embedRaster(data, "", req)
}

// embedRaster decodes raster bytes, fits them to the target size, applies
// pixel-level recoloring, and wraps the result in an SVG data URI. Bytes
// that fail to decode are embedded untouched with their declared subtype.
// JPEG sources are never recolored: without an alpha channel every pixel
// would be painted over.
func (g *Generator) embedRaster(data []byte, contentType string, req *Request) (*source, error) {
	img, format, err := decodeRaster(data)
	if err != nil {
		g.logger.Warn("could not decode raster image, embedding raw bytes", "error", err)
		subtype := "png"
		if i := strings.Index(contentType, "/"); i >= 0 {
			subtype = strings.SplitN(contentType[i+1:], ";", 2)[0]
		}
		return &source{data: embedRawSVG(data, subtype, req.sizeOr(DefaultSize)), raster: true}, nil
	}
	img = fitImage(img, req.sizeOr(DefaultSize))
	isJPEG := format == "jpeg"
	switch {
	case req.Gradient != nil && !isJPEG:
		img, err = gradientImage(img, req.Gradient)
		if err != nil {
			return nil, err
		}
	case req.Color != "" && !isJPEG:
		c, err := parseColor(req.Color)
		if err != nil {
			return nil, err
		}
		img = recolorImage(img, c)
	}
	svgData, err := embedRasterSVG(img)
	if err != nil {
		return nil, err
	}
	return &source{data: svgData, raster: true}, nil
}

// transformVector applies color and size transforms to an SVG document
// and reserializes it.
func (g *Generator) transformVector(svgData []byte, req *Request) ([]byte, error) {
	doc, err := parseSVG(svgData)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	ensureViewBox(root)
	switch {
	case req.Gradient != nil:
		applyGradient(root, req.Gradient)
	case req.Color != "":
		recolor(root, req.Color)
	}
	if req.Size != nil {
		setSize(root, *req.Size)
	}
	return renderSVG(doc)
}

// animateSVG injects the animation preset into any SVG document, vector or
// embedded raster alike.
func animateSVG(svgData []byte, animation string) ([]byte, error) {
	spec, err := parseAnimation(animation)
	if err != nil {
		return nil, err
	}
	doc, err := parseSVG(svgData)
	if err != nil {
		return nil, err
	}
	ensureViewBox(doc.Root())
	applyAnimation(doc, spec)
	return renderSVG(doc)
}

// wrapSVG places the icon on a decorated background canvas.
func (g *Generator) wrapSVG(svgData []byte, req *Request) ([]byte, error) {
	doc, err := parseSVG(svgData)
	if err != nil {
		return nil, err
	}
	ensureViewBox(doc.Root())
	out, err := wrapBackground(doc, req.sizeOr(DefaultSize), req)
	if err != nil {
		return nil, err
	}
	return renderSVG(out)
}

// deriveName picks an output file name from the source reference.
func deriveName(req *Request) string {
	switch {
	case req.Icon != "":
		name := strings.ReplaceAll(req.Icon, ":", "_")
		return strings.ReplaceAll(name, "/", "_")
	case req.URL != "":
		base := path.Base(urlPath(strings.ToLower(req.URL)))
		if stem := strings.TrimSuffix(base, path.Ext(base)); stem != "" && stem != "." && stem != "/" {
			return stem
		}
		return "icon"
	case req.LocalFile != "":
		base := filepath.Base(req.LocalFile)
		return strings.TrimSuffix(base, filepath.Ext(base))
	default:
		return "icon"
	}
}
