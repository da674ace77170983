package construct

import "testing"

func TestNewFeature_CopiesMetadata(t *testing.T) {
	md := map[string]any{"module": "hs2"}
	f := NewFeature("enhancer_module", 0, 10, md)

	md["module"] = "MUTATED"
	if f.Metadata()["module"] != "hs2" {
		t.Error("NewFeature should copy the metadata map")
	}

	got := f.Metadata()
	got["module"] = "MUTATED"
	if f.Metadata()["module"] != "hs2" {
		t.Error("Metadata should return a copy")
	}
}

func TestFeature_Width(t *testing.T) {
	if w := NewFeature("x", 5, 12, nil).Width(); w != 7 {
		t.Errorf("Width() = %d, want 7", w)
	}
	if w := NewFeature("x", 5, 5, nil).Width(); w != 0 {
		t.Errorf("Width() = %d, want 0", w)
	}
}

func TestNewEvent_CopiesMetadata(t *testing.T) {
	md := map[string]any{"anchor": "right"}
	e := NewEvent("anchor_inverted", 500000, md)

	md["anchor"] = "MUTATED"
	if e.Metadata()["anchor"] != "right" {
		t.Error("NewEvent should copy the metadata map")
	}
}

func TestReconstructConstruct(t *testing.T) {
	feats := []Feature{NewFeature("promoter", 10, 20, nil)}
	events := []Event{NewEvent("spacer_deleted", 20, map[string]any{"length": 5})}

	c := ReconstructConstruct("LoopDeleted_10x", "ACGTACGTACGTACGTACGT", feats, events)

	if c.Name() != "LoopDeleted_10x" {
		t.Errorf("Name() = %q, want LoopDeleted_10x", c.Name())
	}
	if c.Length() != 20 {
		t.Errorf("Length() = %d, want 20", c.Length())
	}

	// Mutating the originals must not leak into the construct.
	feats[0] = NewFeature("MUTATED", 0, 0, nil)
	if c.Features()[0].Label() != "promoter" {
		t.Error("ReconstructConstruct should copy the feature slice")
	}

	got := c.Features()
	got[0] = NewFeature("MUTATED", 0, 0, nil)
	if c.Features()[0].Label() != "promoter" {
		t.Error("Features should return a copy")
	}
}
