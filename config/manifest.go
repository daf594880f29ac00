// Package config parses batch manifest files describing a set of icons to
// generate, with shared defaults and per-icon overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/glyphgen/glyphgen/icon"
)

// Entry is one icon in a manifest. Name comes from the map key; the rest
// mirrors the generate options. Pointer fields distinguish a key that is
// absent from one set explicitly, so an entry can override a batch default
// with "none" or zero.
type Entry struct {
	Name         string
	Icon         string  `yaml:"icon"`
	URL          string  `yaml:"url"`
	LocalFile    string  `yaml:"local_file"`
	Color        *string `yaml:"color"`
	Direction    string  `yaml:"direction"`
	Size         *int    `yaml:"size"`
	Format       string  `yaml:"format"`
	BgColor      *string `yaml:"bg_color"`
	BgDirection  string  `yaml:"bg_direction"`
	BorderRadius *int    `yaml:"border_radius"`
	OutlineWidth *int    `yaml:"outline_width"`
	OutlineColor string  `yaml:"outline_color"`
	Animation    *string `yaml:"animation"`
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Manifest is a parsed batch file: defaults plus icons in file order.
type Manifest struct {
	Defaults Entry
	Icons    []Entry
}

type rawManifest struct {
	Defaults Entry         `yaml:"defaults"`
	Icons    yaml.MapSlice `yaml:"icons"`
}

// ParseFile loads a Manifest from a file. The file extension determines the
// format; JSON manifests go through the YAML parser too, which accepts JSON
// and preserves the icon order.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yml", ".yaml":
		return Parse(data)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// Parse loads a Manifest from YAML or JSON bytes.
func Parse(data []byte) (*Manifest, error) {
	var raw rawManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	if len(raw.Icons) == 0 {
		return nil, fmt.Errorf("manifest has no icons")
	}
	m := &Manifest{Defaults: raw.Defaults}
	for _, item := range raw.Icons {
		name := fmt.Sprintf("%v", item.Key)
		entry := Entry{Name: name}
		switch v := item.Value.(type) {
		case string:
			// Shorthand: the value is the Iconify reference.
			entry.Icon = v
		default:
			// Round-trip through YAML to decode the nested mapping with
			// strict field checking.
			encoded, err := yaml.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("icon %q: %w", name, err)
			}
			if err := yaml.UnmarshalWithOptions(encoded, &entry, yaml.Strict()); err != nil {
				return nil, fmt.Errorf("icon %q: %w", name, err)
			}
			entry.Name = name
		}
		m.Icons = append(m.Icons, entry)
	}
	return m, nil
}

// ParseColorSpec interprets a color flag value: plain values are solid
// colors, "(c1,c2)" is a two-stop gradient, and "none" or empty means no
// color at all.
func ParseColorSpec(value, direction string) (string, *icon.Gradient, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") {
		return "", nil, nil
	}
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		parts := strings.Split(value[1:len(value)-1], ",")
		if len(parts) != 2 {
			return "", nil, fmt.Errorf("gradient must have exactly 2 colors: (color1,color2)")
		}
		dir, err := icon.ParseDirection(direction)
		if err != nil {
			return "", nil, err
		}
		return "", &icon.Gradient{
			From:      strings.TrimSpace(parts[0]),
			To:        strings.TrimSpace(parts[1]),
			Direction: dir,
		}, nil
	}
	return value, nil, nil
}

// BatchRequest converts the manifest into a generator batch.
func (m *Manifest) BatchRequest() (icon.BatchRequest, error) {
	var batch icon.BatchRequest

	defColor, defGradient, err := ParseColorSpec(strOr(m.Defaults.Color), m.Defaults.Direction)
	if err != nil {
		return batch, fmt.Errorf("defaults: %w", err)
	}
	defBg, defBgGradient, err := ParseColorSpec(strOr(m.Defaults.BgColor), m.Defaults.BgDirection)
	if err != nil {
		return batch, fmt.Errorf("defaults: %w", err)
	}
	batch.Defaults = icon.BatchDefaults{
		Color:        defColor,
		Gradient:     defGradient,
		Size:         m.Defaults.Size,
		Format:       icon.Format(m.Defaults.Format),
		BgColor:      defBg,
		BgGradient:   defBgGradient,
		BorderRadius: intOr(m.Defaults.BorderRadius),
		OutlineWidth: intOr(m.Defaults.OutlineWidth),
		OutlineColor: m.Defaults.OutlineColor,
		Animation:    strOr(m.Defaults.Animation),
	}

	for _, e := range m.Icons {
		req, over, err := e.request()
		if err != nil {
			return batch, fmt.Errorf("icon %q: %w", e.Name, err)
		}
		batch.Entries = append(batch.Entries, icon.BatchEntry{Name: e.Name, Request: req, Overrides: over})
	}
	return batch, nil
}

func (e *Entry) request() (icon.Request, icon.BatchOverrides, error) {
	color, gradient, err := ParseColorSpec(strOr(e.Color), e.Direction)
	if err != nil {
		return icon.Request{}, icon.BatchOverrides{}, err
	}
	bgColor, bgGradient, err := ParseColorSpec(strOr(e.BgColor), e.BgDirection)
	if err != nil {
		return icon.Request{}, icon.BatchOverrides{}, err
	}
	req := icon.Request{
		Icon:         e.Icon,
		URL:          e.URL,
		LocalFile:    e.LocalFile,
		Color:        color,
		Gradient:     gradient,
		Size:         e.Size,
		Format:       icon.Format(strings.ToLower(e.Format)),
		BgColor:      bgColor,
		BgGradient:   bgGradient,
		BorderRadius: intOr(e.BorderRadius),
		OutlineWidth: intOr(e.OutlineWidth),
		OutlineColor: e.OutlineColor,
		Animation:    strOr(e.Animation),
	}
	over := icon.BatchOverrides{
		Paint:        e.Color != nil,
		Background:   e.BgColor != nil,
		BorderRadius: e.BorderRadius != nil,
		OutlineWidth: e.OutlineWidth != nil,
		Animation:    e.Animation != nil,
	}
	return req, over, nil
}
