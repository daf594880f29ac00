package icon

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchOrderAndIsolation(t *testing.T) {
	fake := newFakeIconify(t, map[string]string{
		"/mdi/home.svg": sampleSVG,
		"/mdi/star.svg": sampleSVG,
	})
	gen := newTestGenerator(t, fake.server.URL)

	results := gen.Batch(context.Background(), BatchRequest{
		Defaults: BatchDefaults{Color: "#333333"},
		Entries: []BatchEntry{
			{Name: "home", Request: Request{Icon: "mdi:home"}},
			{Name: "broken", Request: Request{Icon: "mdi:does-not-exist"}},
			{Name: "star", Request: Request{Icon: "mdi:star"}},
		},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "home", results[0].Name)
	assert.NoError(t, results[0].Err)
	assert.FileExists(t, results[0].Path)

	// Failure recorded, later entries still processed.
	assert.Equal(t, "broken", results[1].Name)
	require.Error(t, results[1].Err)
	assert.True(t, IsNotFound(results[1].Err))

	assert.Equal(t, "star", results[2].Name)
	assert.NoError(t, results[2].Err)
}

func TestBatchDefaultsApplied(t *testing.T) {
	fake := newFakeIconify(t, map[string]string{"/mdi/home.svg": sampleSVG})
	gen := newTestGenerator(t, fake.server.URL)

	results := gen.Batch(context.Background(), BatchRequest{
		Defaults: BatchDefaults{Color: "#abcdef", Size: intPtr(72)},
		Entries: []BatchEntry{
			{Name: "home", Request: Request{Icon: "mdi:home"}},
		},
	})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	doc := mustParse(t, data)
	assert.Equal(t, "72", doc.Root().SelectAttrValue("width", ""))
	path := doc.Root().FindElement("./path")
	require.NotNil(t, path)
	assert.Equal(t, "#abcdef", path.SelectAttrValue("fill", ""))
}

func TestBatchEntryOverridesDefaults(t *testing.T) {
	fake := newFakeIconify(t, map[string]string{"/mdi/home.svg": sampleSVG})
	gen := newTestGenerator(t, fake.server.URL)

	results := gen.Batch(context.Background(), BatchRequest{
		Defaults: BatchDefaults{Color: "#000000", Size: intPtr(16)},
		Entries: []BatchEntry{
			{Name: "big", Request: Request{Icon: "mdi:home", Color: "#ffffff", Size: intPtr(512)}},
		},
	})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	doc := mustParse(t, data)
	assert.Equal(t, "512", doc.Root().SelectAttrValue("width", ""))
	path := doc.Root().FindElement("./path")
	require.NotNil(t, path)
	assert.Equal(t, "#ffffff", path.SelectAttrValue("fill", ""))
}

func TestMergeDefaultsPaintExclusivity(t *testing.T) {
	// An entry gradient suppresses the default solid color.
	merged := mergeDefaults(
		Request{Icon: "mdi:home", Gradient: &Gradient{From: "red", To: "blue"}},
		BatchDefaults{Color: "#000000"},
		BatchOverrides{},
	)
	assert.Empty(t, merged.Color)
	require.NotNil(t, merged.Gradient)

	// An entry color suppresses the default gradient.
	merged = mergeDefaults(
		Request{Icon: "mdi:home", Color: "green"},
		BatchDefaults{Gradient: &Gradient{From: "red", To: "blue"}},
		BatchOverrides{},
	)
	assert.Nil(t, merged.Gradient)
	assert.Equal(t, "green", merged.Color)

	// Decorations fall through when unset.
	merged = mergeDefaults(
		Request{Icon: "mdi:home"},
		BatchDefaults{BgColor: "#fff", BorderRadius: 8, Animation: "spin"},
		BatchOverrides{},
	)
	assert.Equal(t, "#fff", merged.BgColor)
	assert.Equal(t, 8, merged.BorderRadius)
	assert.Equal(t, "spin", merged.Animation)
}

func TestMergeDefaultsHonorsExplicitZeros(t *testing.T) {
	defaults := BatchDefaults{
		Color:        "#ffffff",
		BgColor:      "#000000",
		BorderRadius: 16,
		OutlineWidth: 4,
		Animation:    "spin",
	}

	// An entry that set each field explicitly keeps its zero values.
	merged := mergeDefaults(Request{Icon: "mdi:home"}, defaults, BatchOverrides{
		Paint:        true,
		Background:   true,
		BorderRadius: true,
		OutlineWidth: true,
		Animation:    true,
	})
	assert.Empty(t, merged.Color)
	assert.Nil(t, merged.Gradient)
	assert.Empty(t, merged.BgColor)
	assert.Nil(t, merged.BgGradient)
	assert.Zero(t, merged.BorderRadius)
	assert.Zero(t, merged.OutlineWidth)
	assert.Empty(t, merged.Animation)

	// Without the marks the same request inherits everything.
	merged = mergeDefaults(Request{Icon: "mdi:home"}, defaults, BatchOverrides{})
	assert.Equal(t, "#ffffff", merged.Color)
	assert.Equal(t, "#000000", merged.BgColor)
	assert.Equal(t, 16, merged.BorderRadius)
	assert.Equal(t, 4, merged.OutlineWidth)
	assert.Equal(t, "spin", merged.Animation)
}

func TestBatchEntryClearsDefaultDecoration(t *testing.T) {
	fake := newFakeIconify(t, map[string]string{"/mdi/home.svg": sampleSVG})
	gen := newTestGenerator(t, fake.server.URL)

	results := gen.Batch(context.Background(), BatchRequest{
		Defaults: BatchDefaults{BgColor: "#000000", BorderRadius: 16},
		Entries: []BatchEntry{
			{
				Name:      "plain",
				Request:   Request{Icon: "mdi:home"},
				Overrides: BatchOverrides{Background: true, BorderRadius: true},
			},
		},
	})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	doc := mustParse(t, data)
	assert.Nil(t, doc.Root().FindElement("./rect"))
}

func TestBatchUsesEntryNameAsOutputName(t *testing.T) {
	fake := newFakeIconify(t, map[string]string{"/mdi/home.svg": sampleSVG})
	gen := newTestGenerator(t, fake.server.URL)

	results := gen.Batch(context.Background(), BatchRequest{
		Entries: []BatchEntry{
			{Name: "front-door", Request: Request{Icon: "mdi:home"}},
		},
	})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "front-door", results[0].Name)
	assert.Contains(t, results[0].Path, "front-door.svg")
}
