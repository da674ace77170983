package emit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/recipe"
)

func sampleResult() recipe.Result {
	features := []construct.Feature{
		construct.NewFeature("upstream_filler", 0, 100, nil),
		construct.NewFeature("enhancer", 100, 160, map[string]any{
			"module":      "HS2",
			"orientation": "+",
		}),
	}
	events := []construct.Event{
		construct.NewEvent("ctcf_bracket_added", 100, map[string]any{"anchor": "left"}),
	}
	return recipe.Result{
		Construct:   construct.ReconstructConstruct("Sample", "ACGT", features, events),
		Experiment:  "enhancer_stacking",
		Description: "Sample entry.",
		Extra:       map[string]any{"layout": "distal"},
	}
}

func TestEntry_FixedKeys(t *testing.T) {
	entry := Entry(sampleResult(), "constructs/Sample_construct.fa")

	assert.Equal(t, "Sample", entry["construct"])
	assert.Equal(t, "enhancer_stacking", entry["experiment"])
	assert.Equal(t, "Sample entry.", entry["description"])
	assert.Equal(t, 4, entry["length"])
	assert.Equal(t, "constructs/Sample_construct.fa", entry["fasta"])
}

func TestEntry_MergesExtra(t *testing.T) {
	entry := Entry(sampleResult(), "x.fa")

	assert.Equal(t, "distal", entry["layout"])
}

func TestEntry_FixedKeysWinOverExtra(t *testing.T) {
	res := sampleResult()
	res.Extra = map[string]any{"construct": "spoofed"}

	entry := Entry(res, "x.fa")

	assert.Equal(t, "Sample", entry["construct"])
}

func TestEntry_FlattensFeatureMetadata(t *testing.T) {
	entry := Entry(sampleResult(), "x.fa")

	features, ok := entry["features"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, features, 2)

	assert.Equal(t, map[string]any{
		"label": "upstream_filler",
		"start": 0,
		"end":   100,
	}, features[0])
	assert.Equal(t, map[string]any{
		"label":       "enhancer",
		"start":       100,
		"end":         160,
		"module":      "HS2",
		"orientation": "+",
	}, features[1])
}

func TestEntry_FlattensEventMetadata(t *testing.T) {
	entry := Entry(sampleResult(), "x.fa")

	events, ok := entry["events"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, events, 1)

	assert.Equal(t, map[string]any{
		"event":    "ctcf_bracket_added",
		"position": 100,
		"anchor":   "left",
	}, events[0])
}

func TestManifest_Encode(t *testing.T) {
	m := NewManifest()
	m.Add(sampleResult(), "constructs/Sample_construct.fa")
	require.Equal(t, 1, m.Len())

	data, err := m.Encode()
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Sample", decoded[0]["construct"])
	assert.Equal(t, float64(4), decoded[0]["length"])
}

func TestManifest_EncodeEmpty(t *testing.T) {
	var m Manifest

	data, err := m.Encode()
	require.NoError(t, err)

	assert.Equal(t, "[]", string(data))
}

func TestManifest_PreservesBuildOrder(t *testing.T) {
	m := NewManifest()
	first := sampleResult()
	second := sampleResult()
	second.Construct = construct.ReconstructConstruct("Second", "ACGT", nil, nil)
	m.Add(first, "a.fa")
	m.Add(second, "b.fa")

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Sample", entries[0]["construct"])
	assert.Equal(t, "Second", entries[1]["construct"])
}
