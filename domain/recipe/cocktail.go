package recipe

import (
	"fmt"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/sequence"
)

// ExperimentCocktail labels the heterotypic enhancer cocktail series.
const ExperimentCocktail = "heterotypic_cocktail"

// CocktailConfig describes a repeated heterotypic module cassette. The
// cassette opens at the domain start and must finish upstream of the
// promoter reserve.
type CocktailConfig struct {
	Name        string
	Description string
	// ModuleOrder lists module names in cassette order.
	ModuleOrder []string
	// OrientationPattern pairs one orientation with each module in
	// ModuleOrder.
	OrientationPattern []sequence.Orientation
	// ModuleSpacing is the filler gap between modules within a repeat.
	ModuleSpacing int
	// RepeatSpacing is the filler gap between repeats.
	RepeatSpacing int
	RepeatCount   int
	// CTCFBrackets flanks the whole cassette with a convergent CTCF
	// pair.
	CTCFBrackets bool
	// RepeatSeparator optionally names a module appended after every
	// repeat.
	RepeatSeparator string
	SeparatorOrient sequence.Orientation
	Promoter        string
}

// Validate checks the config for internal consistency.
func (c CocktailConfig) Validate() error {
	if len(c.OrientationPattern) != len(c.ModuleOrder) {
		return fmt.Errorf("cocktail %s: orientation pattern length %d does not match module order length %d",
			c.Name, len(c.OrientationPattern), len(c.ModuleOrder))
	}
	if c.RepeatCount < 1 {
		return fmt.Errorf("cocktail %s: repeat count must be positive, got %d", c.Name, c.RepeatCount)
	}
	return nil
}

// ConstructName implements Recipe.
func (c CocktailConfig) ConstructName() string { return c.Name }

// ExperimentName implements Recipe.
func (c CocktailConfig) ExperimentName() string { return ExperimentCocktail }

// FillerSeed implements Recipe.
func (c CocktailConfig) FillerSeed() int64 { return 0 }

// Build implements Recipe.
func (c CocktailConfig) Build(lib *sequence.Library, cyc *filler.Cycler, p Params) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
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
		Experiment:  ExperimentCocktail,
		Description: c.Description,
		FastaName:   c.Name + "_construct.fa",
		FastaHeader: c.Name + "_construct",
	}, nil
}

func (c CocktailConfig) layout(b *construct.Builder, lib *sequence.Library, p Params) error {
	prom, err := lib.Get(c.Promoter)
	if err != nil {
		return err
	}
	if err := b.AppendTo(p.DomainStart, "upstream_filler", nil); err != nil {
		return err
	}

	if c.CTCFBrackets {
		if err := appendBracket(b, lib, "left", sequence.Forward); err != nil {
			return err
		}
	}

	for repeat := 0; repeat < c.RepeatCount; repeat++ {
		for order, name := range c.ModuleOrder {
			mod, err := lib.Get(name)
			if err != nil {
				return err
			}
			meta := map[string]any{"repeat_index": repeat, "order_index": order}
			if err := b.AppendModule(mod, c.OrientationPattern[order], "enhancer_module", meta); err != nil {
				return err
			}
			if order < len(c.ModuleOrder)-1 {
				if err := b.AppendFiller(c.ModuleSpacing, "module_spacing", nil); err != nil {
					return err
				}
			}
		}
		if c.RepeatSeparator != "" {
			sep, err := lib.Get(c.RepeatSeparator)
			if err != nil {
				return err
			}
			meta := map[string]any{"repeat_index": repeat}
			if err := b.AppendModule(sep, c.SeparatorOrient, "repeat_separator", meta); err != nil {
				return err
			}
		}
		if repeat < c.RepeatCount-1 {
			if err := b.AppendFiller(c.RepeatSpacing, "repeat_spacing", nil); err != nil {
				return err
			}
		}
	}

	if c.CTCFBrackets {
		if err := appendBracket(b, lib, "right", sequence.Reverse); err != nil {
			return err
		}
	}

	if err := guardPromoterReserve(b, p.PromoterPos); err != nil {
		return err
	}
	if err := b.AppendTo(p.PromoterPos, "spacer_to_promoter", nil); err != nil {
		return err
	}
	return appendPromoterSequence(b, prom)
}

// appendBracket places one half of a convergent CTCF pair and records
// the bracket event at the post-append cursor.
func appendBracket(b *construct.Builder, lib *sequence.Library, anchor string, o sequence.Orientation) error {
	ctcf, err := lib.Get("CTCF")
	if err != nil {
		return err
	}
	if err := b.AppendModule(ctcf, o, "ctcf_bracket", map[string]any{"anchor": anchor}); err != nil {
		return err
	}
	return b.RecordEvent("ctcf_bracket_added", map[string]any{"anchor": anchor})
}

// CanonicalCocktails returns the six HS2/GATA1/HNF4A cocktail layouts:
// three spacing tiers plus order, orientation and CTCF separation
// controls.
func CanonicalCocktails() []CocktailConfig {
	forward := []sequence.Orientation{sequence.Forward, sequence.Forward, sequence.Forward}
	return []CocktailConfig{
		{
			Name:               "Cocktail_1kbForward",
			Description:        "HS2→GATA1→HNF4A repeated 12x with 1 kb intra-module and 2 kb inter-repeat spacing; CTCF brackets.",
			ModuleOrder:        []string{"HS2", "GATA1", "HNF4A"},
			OrientationPattern: forward,
			ModuleSpacing:      1_000,
			RepeatSpacing:      2_000,
			RepeatCount:        12,
			CTCFBrackets:       true,
			Promoter:           "HBG1",
		},
		{
			Name:               "Cocktail_5kbForward",
			Description:        "HS2→GATA1→HNF4A repeated 6x with 5 kb spacing; CTCF brackets.",
			ModuleOrder:        []string{"HS2", "GATA1", "HNF4A"},
			OrientationPattern: forward,
			ModuleSpacing:      5_000,
			RepeatSpacing:      5_000,
			RepeatCount:        6,
			CTCFBrackets:       true,
			Promoter:           "HBG1",
		},
		{
			Name:               "Cocktail_20kbForward",
			Description:        "HS2→GATA1→HNF4A repeated 3x with 20 kb spacing; CTCF brackets.",
			ModuleOrder:        []string{"HS2", "GATA1", "HNF4A"},
			OrientationPattern: forward,
			ModuleSpacing:      20_000,
			RepeatSpacing:      20_000,
			RepeatCount:        3,
			CTCFBrackets:       true,
			Promoter:           "HBG1",
		},
		{
			Name:               "Cocktail_5kbReverseOrder",
			Description:        "HNF4A→GATA1→HS2 reversed order repeated 6x with 5 kb spacing.",
			ModuleOrder:        []string{"HNF4A", "GATA1", "HS2"},
			OrientationPattern: forward,
			ModuleSpacing:      5_000,
			RepeatSpacing:      5_000,
			RepeatCount:        6,
			CTCFBrackets:       true,
			Promoter:           "HBG1",
		},
		{
			Name:               "Cocktail_5kbAltOrientation",
			Description:        "HS2(+), GATA1(-), HNF4A(+) repeated 6x with 5 kb spacing to test polarity sensitivity.",
			ModuleOrder:        []string{"HS2", "GATA1", "HNF4A"},
			OrientationPattern: []sequence.Orientation{sequence.Forward, sequence.Reverse, sequence.Forward},
			ModuleSpacing:      5_000,
			RepeatSpacing:      5_000,
			RepeatCount:        6,
			CTCFBrackets:       true,
			Promoter:           "HBG1",
		},
		{
			Name:               "Cocktail_CTCFSeparated",
			Description:        "HS2→GATA1→HNF4A repeated 5x with 2 kb spacing and CTCF separators between repeats.",
			ModuleOrder:        []string{"HS2", "GATA1", "HNF4A"},
			OrientationPattern: forward,
			ModuleSpacing:      2_000,
			RepeatSpacing:      3_000,
			RepeatCount:        5,
			CTCFBrackets:       true,
			RepeatSeparator:    "CTCF",
			SeparatorOrient:    sequence.Forward,
			Promoter:           "HBG1",
		},
	}
}
