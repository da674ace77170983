package recipe

import (
	"fmt"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/sequence"
)

// ExperimentStacking labels the enhancer copy number series.
const ExperimentStacking = "enhancer_stacking"

// StackingLayout selects the structural variant of a stacking construct.
type StackingLayout string

// Stacking layouts, from background-only control to distal copy arrays.
const (
	// StackingFillerOnly is pure background with no placed parts.
	StackingFillerOnly StackingLayout = "filler_only"
	// StackingPromoterOnly places the promoter with no enhancer.
	StackingPromoterOnly StackingLayout = "promoter_only"
	// StackingAbutting places a single enhancer directly upstream of
	// the promoter.
	StackingAbutting StackingLayout = "abutting"
	// StackingDistal places the enhancer block at the enhancer
	// position, 100 kb upstream of the promoter.
	StackingDistal StackingLayout = "distal"
)

// StackingConfig describes one construct in the copy number series.
type StackingConfig struct {
	Name        string
	Description string
	Layout      StackingLayout
	// Copies is the tandem copy count for the distal layout; layouts
	// without an enhancer ignore it.
	Copies   int
	Enhancer string
	Promoter string
}

// ConstructName implements Recipe.
func (c StackingConfig) ConstructName() string { return c.Name }

// ExperimentName implements Recipe.
func (c StackingConfig) ExperimentName() string { return ExperimentStacking }

// FillerSeed implements Recipe.
func (c StackingConfig) FillerSeed() int64 { return 0 }

// Build implements Recipe.
func (c StackingConfig) Build(lib *sequence.Library, cyc *filler.Cycler, p Params) (Result, error) {
	b, err := construct.NewBuilder(c.Name, cyc)
	if err != nil {
		return Result{}, err
	}
	extra := map[string]any{"layout": string(c.Layout)}
	if err := c.layout(b, lib, p, extra); err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", c.Name, err)
	}
	built, err := b.Finish(p.ConstructLength)
	if err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", c.Name, err)
	}
	return Result{
		Construct:   built,
		Experiment:  ExperimentStacking,
		Description: c.Description,
		FastaName:   c.Name + "_construct.fa",
		FastaHeader: c.Name + "_construct",
		Extra:       extra,
	}, nil
}

func (c StackingConfig) layout(b *construct.Builder, lib *sequence.Library, p Params, extra map[string]any) error {
	switch c.Layout {
	case StackingFillerOnly:
		// Background only; Finish pads the whole window.
		return nil

	case StackingPromoterOnly:
		prom, err := lib.Get(c.Promoter)
		if err != nil {
			return err
		}
		if err := b.AppendTo(p.PromoterPos, "upstream_filler", nil); err != nil {
			return err
		}
		extra["promoter"] = prom.Name()
		return appendPromoterSequence(b, prom)

	case StackingAbutting:
		enh, prom, err := c.parts(lib)
		if err != nil {
			return err
		}
		if err := b.AppendTo(p.PromoterPos-enh.Len(), "upstream_filler", nil); err != nil {
			return err
		}
		if err := b.AppendModule(enh, sequence.Forward, "enhancer", nil); err != nil {
			return err
		}
		extra["enhancer"] = enh.Name()
		extra["promoter"] = prom.Name()
		return appendPromoterSequence(b, prom)

	case StackingDistal:
		enh, prom, err := c.parts(lib)
		if err != nil {
			return err
		}
		if err := b.AppendTo(p.EnhancerPos, "upstream_filler", nil); err != nil {
			return err
		}
		if c.Copies == 1 {
			if err := b.AppendModule(enh, sequence.Forward, "enhancer", nil); err != nil {
				return err
			}
		} else {
			if err := b.AppendModuleBlock(enh, sequence.Forward, c.Copies, "enhancer_block", nil); err != nil {
				return err
			}
			extra["copies"] = c.Copies
		}
		if err := guardPromoterReserve(b, p.PromoterPos); err != nil {
			return err
		}
		if err := b.AppendTo(p.PromoterPos, "spacer_to_promoter", nil); err != nil {
			return err
		}
		extra["enhancer"] = enh.Name()
		extra["promoter"] = prom.Name()
		return appendPromoterSequence(b, prom)

	default:
		return fmt.Errorf("unknown stacking layout %q", c.Layout)
	}
}

func (c StackingConfig) parts(lib *sequence.Library) (sequence.Module, sequence.Module, error) {
	enh, err := lib.Get(c.Enhancer)
	if err != nil {
		return sequence.Module{}, sequence.Module{}, err
	}
	prom, err := lib.Get(c.Promoter)
	if err != nil {
		return sequence.Module{}, sequence.Module{}, err
	}
	return enh, prom, nil
}

// CanonicalStacking returns the HS2 copy number series driving the HBG1
// promoter, from background-only control to a 320x tandem array. With
// the canonical 1.5 kb HS2 part the 160x and 320x arrays exceed the
// 100 kb domain between enhancer and promoter positions and fail the
// build with an overflow error.
func CanonicalStacking() []StackingConfig {
	series := []StackingConfig{
		{
			Name:        "FillerOnly",
			Description: "Neutral background only; no regulatory parts.",
			Layout:      StackingFillerOnly,
		},
		{
			Name:        "NoEnhancer",
			Description: "HBG1 promoter alone at 500 kb; no enhancer.",
			Layout:      StackingPromoterOnly,
			Promoter:    "HBG1",
		},
		{
			Name:        "E0",
			Description: "Single HS2 enhancer abutting the promoter.",
			Layout:      StackingAbutting,
			Copies:      1,
			Enhancer:    "HS2",
			Promoter:    "HBG1",
		},
		{
			Name:        "E100",
			Description: "Single HS2 enhancer 100 kb upstream of the promoter.",
			Layout:      StackingDistal,
			Copies:      1,
			Enhancer:    "HS2",
			Promoter:    "HBG1",
		},
	}
	for _, copies := range []int{2, 5, 10, 160, 320} {
		series = append(series, StackingConfig{
			Name:        fmt.Sprintf("EC100-%dx", copies),
			Description: fmt.Sprintf("%dx tandem HS2 array 100 kb upstream of the promoter.", copies),
			Layout:      StackingDistal,
			Copies:      copies,
			Enhancer:    "HS2",
			Promoter:    "HBG1",
		})
	}
	return series
}
