package icon

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":     FormatSVG,
		"svg":  FormatSVG,
		"PNG":  FormatPNG,
		"webp": FormatWebP,
		"ico":  FormatICO,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("bmp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bmp")
}

func TestParseDirection(t *testing.T) {
	got, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirectionHorizontal, got)

	got, err = ParseDirection("Diagonal")
	require.NoError(t, err)
	assert.Equal(t, DirectionDiagonal, got)

	_, err = ParseDirection("sideways")
	require.Error(t, err)
}

func TestRequestValidate(t *testing.T) {
	valid := Request{Icon: "mdi:home"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  Request
		msg  string
	}{
		{"no source", Request{}, "exactly one"},
		{"two sources", Request{Icon: "mdi:home", URL: "https://example.com/a.svg"}, "exactly one"},
		{"zero size", Request{Icon: "mdi:home", Size: intPtr(0)}, "size must be positive"},
		{"negative size", Request{Icon: "mdi:home", Size: intPtr(-8)}, "size must be positive"},
		{"color and gradient", Request{
			Icon:     "mdi:home",
			Color:    "red",
			Gradient: &Gradient{From: "red", To: "blue"},
		}, "mutually exclusive"},
		{"bad format", Request{Icon: "mdi:home", Format: "tiff"}, "unsupported output format"},
		{"bad animation", Request{Icon: "mdi:home", Animation: "wobble"}, "unknown animation preset"},
		{"negative radius", Request{Icon: "mdi:home", BorderRadius: -1}, "border radius"},
		{"bad gradient direction", Request{
			Icon:     "mdi:home",
			Gradient: &Gradient{From: "red", To: "blue", Direction: "up"},
		}, "direction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDeriveName(t *testing.T) {
	assert.Equal(t, "mdi_home", deriveName(&Request{Icon: "mdi:home"}))
	assert.Equal(t, "fa6-solid_rocket", deriveName(&Request{Icon: "fa6-solid/rocket"}))
	assert.Equal(t, "logo", deriveName(&Request{URL: "https://example.com/assets/logo.png?v=2"}))
	assert.Equal(t, "sprite", deriveName(&Request{LocalFile: "/tmp/icons/sprite.svg"}))
}

func TestParseIconRef(t *testing.T) {
	collection, name, err := parseIconRef("mdi:home")
	require.NoError(t, err)
	assert.Equal(t, "mdi", collection)
	assert.Equal(t, "home", name)

	collection, name, err = parseIconRef("fa6-solid/arrow-up")
	require.NoError(t, err)
	assert.Equal(t, "fa6-solid", collection)
	assert.Equal(t, "arrow-up", name)

	for _, bad := range []string{"", "mdi", "mdi:home:extra", "Has Spaces:x", "mdi:"} {
		_, _, err := parseIconRef(bad)
		require.Error(t, err, bad)
		assert.True(t, IsNotFound(err), bad)
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, c)

	c, err = parseColor("#f80")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}, c)

	c, err = parseColor("#11223344")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, c)

	c, err = parseColor("SteelBlue")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 70, G: 130, B: 180, A: 0xff}, c)

	for _, bad := range []string{"", "#12", "#gggggg", "notacolor"} {
		_, err := parseColor(bad)
		require.Error(t, err, bad)
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Ref: "mdi:nope"}
	assert.Contains(t, err.Error(), "mdi:nope")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(assert.AnError))
}
