package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glyphgen/glyphgen/config"
	"github.com/glyphgen/glyphgen/icon"
)

type generateOptions struct {
	input        string
	color        string
	direction    string
	size         int
	format       string
	output       string
	bgColor      string
	bgDirection  string
	borderRadius int
	outlineWidth int
	outlineColor string
	animation    string
}

func defaultGenerateOptions() generateOptions {
	return generateOptions{
		direction:   "horizontal",
		bgDirection: "horizontal",
		size:        256,
		format:      "svg",
	}
}

var generateFlags = defaultGenerateOptions()

var generateCmd = &cobra.Command{
	Use:   "generate [ICON]",
	Short: "Generate a single icon",
	Long: "Generate an icon from an Iconify reference, a direct URL, or a local\n" +
		"file.\n\n" +
		"Examples:\n\n" +
		"  glyphgen generate simple-icons:openai --color white --size 254\n" +
		"  glyphgen generate mdi:home --color '(red,blue)' --format png\n" +
		"  glyphgen generate -i ./logo.png --bg-color '#0d1117' --border-radius 32",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var iconRef string
		if len(args) > 0 {
			iconRef = args[0]
		}
		if iconRef == "" && generateFlags.input == "" {
			return fmt.Errorf("provide ICON or --input")
		}
		if iconRef != "" && generateFlags.input != "" {
			return fmt.Errorf("use either ICON or --input, not both")
		}

		req, err := buildGenerateRequest(iconRef)
		if err != nil {
			return err
		}

		dir := outputDir
		if generateFlags.output != "" {
			dir = filepath.Dir(generateFlags.output)
		}
		gen := icon.New(icon.WithOutputDir(dir), icon.WithLogger(newLogger()))

		fmt.Println()
		fmt.Println(boldStyle.Sprint("Generating icon"))
		source := iconRef
		if source == "" {
			source = generateFlags.input
		}
		fmt.Printf("  Source: %s\n", source)
		fmt.Printf("  Size: %dpx\n", *req.Size)
		fmt.Printf("  Color: %s\n", orDefault(generateFlags.color, "original"))
		fmt.Printf("  Background: %s\n", orDefault(generateFlags.bgColor, "transparent"))
		fmt.Printf("  Border radius: %dpx\n", req.BorderRadius)
		fmt.Printf("  Animation: %s\n", orDefault(req.Animation, "none"))
		if req.OutlineWidth > 0 {
			fmt.Printf("  Outline: %dpx (%s)\n", req.OutlineWidth, req.OutlineColor)
		}

		result, err := gen.Generate(cmd.Context(), *req)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(successStyle.Sprintf("✓ Saved to %s", result.Path))
		fmt.Println()
		return nil
	},
}

// buildGenerateRequest resolves the positional/-i input into a request
// source and parses the color flags.
func buildGenerateRequest(iconRef string) (*icon.Request, error) {
	req := &icon.Request{
		Size:         &generateFlags.size,
		BorderRadius: generateFlags.borderRadius,
		OutlineWidth: generateFlags.outlineWidth,
		OutlineColor: generateFlags.outlineColor,
		Animation:    generateFlags.animation,
	}

	input := generateFlags.input
	switch {
	case iconRef != "":
		req.Icon = iconRef
	case isURL(input):
		req.URL = input
	case strings.Contains(input, ":") && !fileExists(input):
		// An Iconify reference passed through --input.
		req.Icon = input
	default:
		if !fileExists(input) {
			return nil, fmt.Errorf("file does not exist: %s", input)
		}
		req.LocalFile = input
	}

	var err error
	req.Color, req.Gradient, err = config.ParseColorSpec(generateFlags.color, generateFlags.direction)
	if err != nil {
		return nil, fmt.Errorf("icon color: %w", err)
	}
	req.BgColor, req.BgGradient, err = config.ParseColorSpec(generateFlags.bgColor, generateFlags.bgDirection)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	format := generateFlags.format
	if generateFlags.output != "" {
		base := filepath.Base(generateFlags.output)
		if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
			// Infer the format from the -o extension when it names one.
			if _, err := icon.ParseFormat(ext); err == nil {
				format = ext
			}
		}
		req.OutputName = strings.TrimSuffix(base, filepath.Ext(base))
	}
	req.Format, err = icon.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func isURL(value string) bool {
	u, err := url.Parse(value)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func init() {
	rootCmd.AddCommand(generateCmd)
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.input, "input", "i", "", "Local image file or direct URL")
	f.StringVar(&generateFlags.color, "color", "", "Icon color or gradient '(c1,c2)'")
	f.StringVar(&generateFlags.direction, "direction", "horizontal", "Icon gradient direction (horizontal, vertical, diagonal)")
	f.IntVar(&generateFlags.size, "size", 256, "Output size in pixels")
	f.StringVar(&generateFlags.format, "format", "svg", "Output format (svg, png, webp, ico)")
	f.StringVarP(&generateFlags.output, "output", "o", "", "Output file path")
	f.StringVar(&generateFlags.bgColor, "bg-color", "", "Background color or gradient '(c1,c2)'")
	f.StringVar(&generateFlags.bgDirection, "bg-direction", "horizontal", "Background gradient direction")
	f.IntVar(&generateFlags.borderRadius, "border-radius", 0, "Background corner radius in pixels")
	f.IntVar(&generateFlags.outlineWidth, "outline-width", 0, "Background outline width in pixels")
	f.StringVar(&generateFlags.outlineColor, "outline-color", "", "Background outline color")
	f.StringVar(&generateFlags.animation, "animation", "", "Animation preset, e.g. 'spin:2s', 'pulse:1.5s', 'flip-h:1s'")
}
