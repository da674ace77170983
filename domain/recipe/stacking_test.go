package recipe

import (
	"errors"
	"strings"
	"testing"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/sequence"
)

func TestStackingConfig_FillerOnly(t *testing.T) {
	p := testParams()
	res := buildRecipe(t, StackingConfig{Name: "FillerOnly", Layout: StackingFillerOnly}, p)

	if got := res.Construct.Length(); got != p.ConstructLength {
		t.Errorf("Length() = %d, want %d", got, p.ConstructLength)
	}
	feats := res.Construct.Features()
	if len(feats) != 1 {
		t.Fatalf("got %d features, want 1 padding span", len(feats))
	}
	if feats[0].Label() != construct.LabelDownstreamFiller {
		t.Errorf("feature label = %q, want %q", feats[0].Label(), construct.LabelDownstreamFiller)
	}
	if feats[0].Start() != 0 || feats[0].End() != p.ConstructLength {
		t.Errorf("padding span = [%d,%d), want [0,%d)", feats[0].Start(), feats[0].End(), p.ConstructLength)
	}
}

func TestStackingConfig_PromoterOnly(t *testing.T) {
	p := testParams()
	res := buildRecipe(t, StackingConfig{
		Name:     "NoEnhancer",
		Layout:   StackingPromoterOnly,
		Promoter: "HBG1",
	}, p)

	prom := featureByLabel(t, res.Construct.Features(), "promoter")
	if prom.Start() != p.PromoterPos {
		t.Errorf("promoter start = %d, want %d", prom.Start(), p.PromoterPos)
	}
	if got := prom.Metadata()["length"]; got != 60 {
		t.Errorf("promoter length metadata = %v, want 60", got)
	}
	if res.Extra["promoter"] != "HBG1" {
		t.Errorf("extra promoter = %v, want HBG1", res.Extra["promoter"])
	}
	if _, ok := res.Extra["enhancer"]; ok {
		t.Error("promoter-only construct should not report an enhancer")
	}
}

func TestStackingConfig_Abutting(t *testing.T) {
	p := testParams()
	res := buildRecipe(t, StackingConfig{
		Name:     "E0",
		Layout:   StackingAbutting,
		Copies:   1,
		Enhancer: "HS2",
		Promoter: "HBG1",
	}, p)

	enh := featureByLabel(t, res.Construct.Features(), "enhancer")
	prom := featureByLabel(t, res.Construct.Features(), "promoter")
	if enh.End() != prom.Start() {
		t.Errorf("enhancer end %d does not abut promoter start %d", enh.End(), prom.Start())
	}
	if prom.Start() != p.PromoterPos {
		t.Errorf("promoter start = %d, want %d", prom.Start(), p.PromoterPos)
	}
}

func TestStackingConfig_DistalSingleCopy(t *testing.T) {
	p := testParams()
	res := buildRecipe(t, StackingConfig{
		Name:     "E100",
		Layout:   StackingDistal,
		Copies:   1,
		Enhancer: "HS2",
		Promoter: "HBG1",
	}, p)

	enh := featureByLabel(t, res.Construct.Features(), "enhancer")
	if enh.Start() != p.EnhancerPos {
		t.Errorf("enhancer start = %d, want %d", enh.Start(), p.EnhancerPos)
	}
	spacer := featureByLabel(t, res.Construct.Features(), "spacer_to_promoter")
	if spacer.End() != p.PromoterPos {
		t.Errorf("spacer end = %d, want %d", spacer.End(), p.PromoterPos)
	}
	if _, ok := res.Extra["copies"]; ok {
		t.Error("single copy layout should not report a copies extra")
	}
}

func TestStackingConfig_DistalBlock(t *testing.T) {
	p := testParams()
	res := buildRecipe(t, StackingConfig{
		Name:     "EC100-5x",
		Layout:   StackingDistal,
		Copies:   5,
		Enhancer: "HS2",
		Promoter: "HBG1",
	}, p)

	block := featureByLabel(t, res.Construct.Features(), "enhancer_block")
	if got := block.Width(); got != 5*60 {
		t.Errorf("block width = %d, want 300", got)
	}
	meta := block.Metadata()
	if meta["copies"] != 5 || meta["unit_length"] != 60 {
		t.Errorf("block metadata = %v, want copies 5 unit_length 60", meta)
	}
	if res.Extra["copies"] != 5 {
		t.Errorf("extra copies = %v, want 5", res.Extra["copies"])
	}
}

func TestStackingConfig_BlockOverflowsPromoterReserve(t *testing.T) {
	p := testParams()
	cfg := StackingConfig{
		Name:     "EC100-320x",
		Layout:   StackingDistal,
		Copies:   320,
		Enhancer: "HS2",
		Promoter: "HBG1",
	}
	_, err := cfg.Build(testLibrary(t), testCycler(t), p)
	if err == nil {
		t.Fatal("expected overflow error for 320 copies")
	}
	if !errors.Is(err, construct.ErrOverflow) {
		t.Errorf("error = %v, want ErrOverflow", err)
	}
	if !strings.Contains(err.Error(), "overflows promoter position") {
		t.Errorf("error %q does not describe the promoter overflow", err)
	}
	if !strings.Contains(err.Error(), "EC100-320x") {
		t.Errorf("error %q does not name the construct", err)
	}
}

func TestStackingConfig_LargeArrayOverflowsCanonicalGeometry(t *testing.T) {
	lib, err := sequence.NewLibrary(
		mustModule(t, "HS2", sequence.KindEnhancer, repeatToLen("TTAGGCAT", 1001)),
		mustModule(t, "HBG1", sequence.KindPromoter, repeatToLen("TATAAGGC", 60)),
	)
	if err != nil {
		t.Fatalf("NewLibrary() error: %v", err)
	}
	cfg := StackingConfig{
		Name:     "EC100-320x",
		Layout:   StackingDistal,
		Copies:   320,
		Enhancer: "HS2",
		Promoter: "HBG1",
	}
	_, err = cfg.Build(lib, testCycler(t), DefaultParams())
	if !errors.Is(err, construct.ErrOverflow) {
		t.Errorf("error = %v, want ErrOverflow for 320x1001 bp block", err)
	}
}

func TestStackingConfig_UnknownLayout(t *testing.T) {
	cfg := StackingConfig{Name: "Bad", Layout: StackingLayout("spiral")}
	_, err := cfg.Build(testLibrary(t), testCycler(t), testParams())
	if err == nil || !strings.Contains(err.Error(), "unknown stacking layout") {
		t.Errorf("error = %v, want unknown layout error", err)
	}
}

func TestCanonicalStacking(t *testing.T) {
	series := CanonicalStacking()
	wantNames := []string{
		"FillerOnly", "NoEnhancer", "E0", "E100",
		"EC100-2x", "EC100-5x", "EC100-10x", "EC100-160x", "EC100-320x",
	}
	if len(series) != len(wantNames) {
		t.Fatalf("got %d configs, want %d", len(series), len(wantNames))
	}
	for i, cfg := range series {
		if cfg.Name != wantNames[i] {
			t.Errorf("series[%d].Name = %q, want %q", i, cfg.Name, wantNames[i])
		}
	}
	if series[0].Layout != StackingFillerOnly {
		t.Errorf("FillerOnly layout = %q", series[0].Layout)
	}
	if series[8].Copies != 320 || series[8].Layout != StackingDistal {
		t.Errorf("EC100-320x = %+v, want 320 distal copies", series[8])
	}
}
