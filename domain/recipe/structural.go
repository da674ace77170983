package recipe

import (
	"fmt"
	"strings"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/sequence"
)

// ExperimentStructural labels the CTCF loop variant series.
const ExperimentStructural = "structural_variants"

// CTCFMotif is the high affinity CTCF consensus, forward strand.
const CTCFMotif = "CCGCGTGGTGGCAGGAGC"

// Anchor orientation vocabulary used in loop variant annotations.
const (
	AnchorForward = "forward"
	AnchorReverse = "reverse"
)

// LoopVariant selects the structural rearrangement applied to the
// anchored enhancer loop.
type LoopVariant string

// Loop variants, from the intact convergent loop to the relocated
// enhancer block.
const (
	LoopIntact    LoopVariant = "intact"
	LoopInverted  LoopVariant = "inverted"
	LoopDeleted   LoopVariant = "deleted"
	LoopRelocated LoopVariant = "relocated"
)

// StructuralConfig describes one loop variant: a tandem enhancer block
// between CTCF anchors, rearranged relative to the promoter. Gap fills
// in this family are unlabeled so the manifests carry only the placed
// parts.
type StructuralConfig struct {
	Name        string
	Description string
	Variant     LoopVariant
	Enhancer    string
	Promoter    string
	Copies      int
}

// ConstructName implements Recipe.
func (c StructuralConfig) ConstructName() string { return c.Name }

// ExperimentName implements Recipe.
func (c StructuralConfig) ExperimentName() string { return ExperimentStructural }

// FillerSeed implements Recipe.
func (c StructuralConfig) FillerSeed() int64 { return 0 }

// Build implements Recipe.
func (c StructuralConfig) Build(lib *sequence.Library, cyc *filler.Cycler, p Params) (Result, error) {
	b, err := construct.NewBuilder(c.Name, cyc)
	if err != nil {
		return Result{}, err
	}
	if err := c.layout(b, lib, p); err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", c.Name, err)
	}
	built, err := b.Finish(p.ConstructLength)
	if err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", c.Name, err)
	}
	return Result{
		Construct:   built,
		Experiment:  ExperimentStructural,
		Description: c.Description,
		FastaName:   c.Name + "_construct.fa",
		FastaHeader: c.Name + "_construct",
	}, nil
}

func (c StructuralConfig) layout(b *construct.Builder, lib *sequence.Library, p Params) error {
	enh, err := lib.Get(c.Enhancer)
	if err != nil {
		return err
	}
	prom, err := lib.Get(c.Promoter)
	if err != nil {
		return err
	}
	switch c.Variant {
	case LoopIntact:
		return c.buildIntact(b, enh, prom, p)
	case LoopInverted:
		return c.buildInverted(b, enh, prom, p)
	case LoopDeleted:
		return c.buildDeleted(b, enh, prom, p)
	case LoopRelocated:
		return c.buildRelocated(b, enh, prom, p)
	default:
		return fmt.Errorf("unknown loop variant %q", c.Variant)
	}
}

// loopHead lays the left anchor, the enhancer block and the right
// anchor shared by the in-place variants.
func (c StructuralConfig) loopHead(b *construct.Builder, enh sequence.Module, p Params, rightOrient string) error {
	if err := b.AppendTo(p.AnchorLeftPos, "", nil); err != nil {
		return err
	}
	if err := appendAnchor(b, AnchorForward, "left"); err != nil {
		return err
	}
	if err := b.AppendTo(p.EnhancerPos, "", nil); err != nil {
		return err
	}
	if err := b.AppendModuleBlock(enh, sequence.Forward, c.Copies, c.blockLabel(), nil); err != nil {
		return err
	}
	if err := b.AppendTo(p.AnchorRightPos, "", nil); err != nil {
		return err
	}
	return appendAnchor(b, rightOrient, "right")
}

// retainSpacer records and fills the gap between the right anchor and
// the promoter reserve.
func retainSpacer(b *construct.Builder, p Params) error {
	spacer := p.PromoterPos - b.Cursor()
	if spacer <= 0 {
		return nil
	}
	if err := b.RecordEvent("spacer_retained", map[string]any{"length": spacer}); err != nil {
		return err
	}
	return b.AppendFiller(spacer, "loop_spacer", nil)
}

func (c StructuralConfig) buildIntact(b *construct.Builder, enh, prom sequence.Module, p Params) error {
	if err := c.loopHead(b, enh, p, AnchorReverse); err != nil {
		return err
	}
	if err := retainSpacer(b, p); err != nil {
		return err
	}
	return appendPromoterSequence(b, prom)
}

func (c StructuralConfig) buildInverted(b *construct.Builder, enh, prom sequence.Module, p Params) error {
	if err := c.loopHead(b, enh, p, AnchorForward); err != nil {
		return err
	}
	if err := retainSpacer(b, p); err != nil {
		return err
	}
	if err := appendPromoterSequence(b, prom); err != nil {
		return err
	}
	return b.RecordEvent("anchor_inverted", map[string]any{"anchor": "right"})
}

func (c StructuralConfig) buildDeleted(b *construct.Builder, enh, prom sequence.Module, p Params) error {
	if err := c.loopHead(b, enh, p, AnchorReverse); err != nil {
		return err
	}
	if deleted := p.PromoterPos - b.Cursor(); deleted > 0 {
		if err := b.RecordEvent("spacer_deleted", map[string]any{"length": deleted}); err != nil {
			return err
		}
	}
	return appendPromoterSequence(b, prom)
}

func (c StructuralConfig) buildRelocated(b *construct.Builder, enh, prom sequence.Module, p Params) error {
	if err := b.AppendTo(p.AnchorLeftPos, "", nil); err != nil {
		return err
	}
	if err := appendAnchor(b, AnchorForward, "left"); err != nil {
		return err
	}
	if err := b.AppendTo(p.EnhancerPos, "", nil); err != nil {
		return err
	}
	if err := b.RecordEvent("enhancer_removed_from_loop", map[string]any{"copies": c.Copies}); err != nil {
		return err
	}
	if err := b.AppendTo(p.AnchorRightPos, "", nil); err != nil {
		return err
	}
	if err := appendAnchor(b, AnchorReverse, "right"); err != nil {
		return err
	}
	if err := b.AppendTo(p.PromoterPos, "", nil); err != nil {
		return err
	}
	if err := appendPromoterSequence(b, prom); err != nil {
		return err
	}
	if err := b.AppendTo(p.RelocatedPos, "", nil); err != nil {
		return err
	}
	if err := b.AppendModuleBlock(enh, sequence.Forward, c.Copies, c.blockLabel(), nil); err != nil {
		return err
	}
	return b.RecordEvent("enhancer_relocated", map[string]any{"to": p.RelocatedPos, "copies": c.Copies})
}

func (c StructuralConfig) blockLabel() string {
	return strings.ToLower(c.Enhancer) + "_block"
}

// appendAnchor places one CTCF anchor motif in the given orientation.
func appendAnchor(b *construct.Builder, orientation, anchor string) error {
	motif := CTCFMotif
	if orientation == AnchorReverse {
		motif = sequence.ReverseComplement(CTCFMotif)
	}
	meta := map[string]any{"anchor": anchor, "orientation": orientation}
	return b.AppendSequence(motif, "ctcf_anchor", meta)
}

// CanonicalStructuralVariants returns the four loop rearrangements of a
// 10x HS2 block anchored at 350/450 kb.
func CanonicalStructuralVariants() []StructuralConfig {
	return []StructuralConfig{
		{
			Name:        "LoopIntact_10x",
			Description: "10× HS2 array with convergent CTCF anchors at 350/450 kb; promoter at 500 kb.",
			Variant:     LoopIntact,
			Enhancer:    "HS2",
			Promoter:    "HBG1",
			Copies:      10,
		},
		{
			Name:        "LoopInverted_10x",
			Description: "Right CTCF anchor flipped to disrupt loop polarity while keeping enhancer position constant.",
			Variant:     LoopInverted,
			Enhancer:    "HS2",
			Promoter:    "HBG1",
			Copies:      10,
		},
		{
			Name:        "LoopDeleted_10x",
			Description: "Spacer between right anchor and promoter removed so promoter abuts the looped enhancer block.",
			Variant:     LoopDeleted,
			Enhancer:    "HS2",
			Promoter:    "HBG1",
			Copies:      10,
		},
		{
			Name:        "LoopRelocated_10x",
			Description: "Enhancer block moved to 800 kb; anchors remain around an empty loop near the promoter.",
			Variant:     LoopRelocated,
			Enhancer:    "HS2",
			Promoter:    "HBG1",
			Copies:      10,
		},
	}
}
