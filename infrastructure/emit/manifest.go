package emit

import (
	"encoding/json"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/recipe"
)

// Manifest accumulates per-construct entries for one batch, in build
// order. The zero value is ready to use.
type Manifest struct {
	entries []map[string]any
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest { return &Manifest{} }

// Add appends the entry for one build result. The fasta path is the
// location the construct's FASTA document was written to, relative to
// the batch output root.
func (m *Manifest) Add(res recipe.Result, fastaPath string) {
	m.entries = append(m.entries, Entry(res, fastaPath))
}

// Len returns the number of accumulated entries.
func (m *Manifest) Len() int { return len(m.entries) }

// Entries returns the accumulated entries in build order.
func (m *Manifest) Entries() []map[string]any { return m.entries }

// Encode renders the manifest as an indented JSON array.
func (m *Manifest) Encode() ([]byte, error) {
	if len(m.entries) == 0 {
		return []byte("[]"), nil
	}
	return json.MarshalIndent(m.entries, "", "  ")
}

// Entry flattens one build result into its manifest object: the fixed
// keys (construct, experiment, description, length, fasta, features,
// events) merged with the recipe-specific keys from Result.Extra. Fixed
// keys win on collision.
func Entry(res recipe.Result, fastaPath string) map[string]any {
	c := res.Construct
	entry := make(map[string]any, len(res.Extra)+7)
	for k, v := range res.Extra {
		entry[k] = v
	}
	entry["construct"] = c.Name()
	entry["experiment"] = res.Experiment
	entry["description"] = res.Description
	entry["length"] = c.Length()
	entry["fasta"] = fastaPath
	entry["features"] = flattenFeatures(c.Features())
	entry["events"] = flattenEvents(c.Events())
	return entry
}

// flattenFeatures folds each feature's metadata into a single object
// alongside its label and coordinates.
func flattenFeatures(features []construct.Feature) []map[string]any {
	out := make([]map[string]any, 0, len(features))
	for _, f := range features {
		obj := make(map[string]any, 3)
		for k, v := range f.Metadata() {
			obj[k] = v
		}
		obj["label"] = f.Label()
		obj["start"] = f.Start()
		obj["end"] = f.End()
		out = append(out, obj)
	}
	return out
}

// flattenEvents folds each event's metadata into a single object
// alongside its name and position.
func flattenEvents(events []construct.Event) []map[string]any {
	out := make([]map[string]any, 0, len(events))
	for _, e := range events {
		obj := make(map[string]any, 2)
		for k, v := range e.Metadata() {
			obj[k] = v
		}
		obj["event"] = e.Name()
		obj["position"] = e.Position()
		out = append(out, obj)
	}
	return out
}
