package recipe

import (
	"fmt"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/sequence"
)

// Grammar sub-experiment identifiers used in manifest entries.
const (
	GrammarCellType    = "cell_type_specificity"
	GrammarPairwise    = "pairwise_cooperativity"
	GrammarCTCFSep     = "ctcf_separation"
	GrammarSpacing     = "short_range_spacing"
	GrammarOrientation = "orientation_effects"
)

// Default start-to-start gaps for the grammar layouts.
const (
	DefaultCellTypeSpacing = 100_000
	DefaultPairSpacing     = 5_000
)

// CellTypeConfig places a single enhancer at the domain start with the
// promoter a fixed gap downstream, for promoter-enhancer-cell matrix
// screens.
type CellTypeConfig struct {
	Name        string
	Description string
	Promoter    string
	Enhancer    string
	CellType    string
	// Expected classifies the combination (correct, wrong_enhancer,
	// wrong_cell or mismatch).
	Expected string
	// Spacing is the start-to-start gap from enhancer to promoter;
	// zero means DefaultCellTypeSpacing.
	Spacing int
}

// ConstructName implements Recipe.
func (c CellTypeConfig) ConstructName() string { return c.Name }

// ExperimentName implements Recipe.
func (c CellTypeConfig) ExperimentName() string { return GrammarCellType }

// FillerSeed implements Recipe.
func (c CellTypeConfig) FillerSeed() int64 { return 0 }

// Build implements Recipe.
func (c CellTypeConfig) Build(lib *sequence.Library, cyc *filler.Cycler, p Params) (Result, error) {
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
		Experiment:  GrammarCellType,
		Description: c.Description,
		FastaName:   c.Name + ".fa",
		FastaHeader: c.Name,
		Extra: map[string]any{
			"promoter":  c.Promoter,
			"enhancer":  c.Enhancer,
			"cell_type": c.CellType,
			"expected":  c.Expected,
		},
	}, nil
}

func (c CellTypeConfig) layout(b *construct.Builder, lib *sequence.Library, p Params) error {
	enh, err := lib.Get(c.Enhancer)
	if err != nil {
		return err
	}
	prom, err := lib.Get(c.Promoter)
	if err != nil {
		return err
	}
	spacing := c.Spacing
	if spacing == 0 {
		spacing = DefaultCellTypeSpacing
	}
	if err := b.AppendTo(p.DomainStart, "upstream_filler", nil); err != nil {
		return err
	}
	if err := b.AppendModule(enh, sequence.Forward, "enhancer", nil); err != nil {
		return err
	}
	if err := b.AppendTo(p.DomainStart+spacing, "spacer", nil); err != nil {
		return err
	}
	return b.AppendModule(prom, sequence.Forward, "promoter", nil)
}

// PairwiseConfig places one or two enhancers at the domain start with
// the promoter at the reserve position. It covers the cooperativity,
// CTCF separation, spacing screen and orientation grid layouts.
type PairwiseConfig struct {
	Name        string
	Description string
	Experiment  string
	Enhancer1   string
	// Enhancer2 empty builds a single-enhancer control.
	Enhancer2 string
	Promoter  string
	// Separator optionally names a module placed directly after the
	// first enhancer.
	Separator string
	// Spacing is the filler gap between the enhancers; zero places
	// them adjacent.
	Spacing      int
	Orientation1 sequence.Orientation
	Orientation2 sequence.Orientation
	Expected     string
}

// ConstructName implements Recipe.
func (c PairwiseConfig) ConstructName() string { return c.Name }

// ExperimentName implements Recipe.
func (c PairwiseConfig) ExperimentName() string { return c.Experiment }

// FillerSeed implements Recipe.
func (c PairwiseConfig) FillerSeed() int64 { return 0 }

// Build implements Recipe.
func (c PairwiseConfig) Build(lib *sequence.Library, cyc *filler.Cycler, p Params) (Result, error) {
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
		Experiment:  c.Experiment,
		Description: c.Description,
		FastaName:   c.Name + ".fa",
		FastaHeader: c.Name,
		Extra:       c.manifestExtra(),
	}, nil
}

func (c PairwiseConfig) layout(b *construct.Builder, lib *sequence.Library, p Params) error {
	enh1, err := lib.Get(c.Enhancer1)
	if err != nil {
		return err
	}
	prom, err := lib.Get(c.Promoter)
	if err != nil {
		return err
	}
	if err := b.AppendTo(p.DomainStart, "upstream_filler", nil); err != nil {
		return err
	}
	if err := b.AppendModule(enh1, c.orient1(), "enhancer1", nil); err != nil {
		return err
	}
	if c.Enhancer2 != "" {
		if c.Separator != "" {
			sep, err := lib.Get(c.Separator)
			if err != nil {
				return err
			}
			if err := b.AppendModule(sep, sequence.Forward, "separator", nil); err != nil {
				return err
			}
		}
		enh2, err := lib.Get(c.Enhancer2)
		if err != nil {
			return err
		}
		if err := b.AppendFiller(c.Spacing, "inter_enhancer_spacing", nil); err != nil {
			return err
		}
		if err := b.AppendModule(enh2, c.orient2(), "enhancer2", nil); err != nil {
			return err
		}
	}
	if err := b.AppendTo(p.PromoterPos, "spacer_to_promoter", nil); err != nil {
		return err
	}
	return b.AppendModule(prom, sequence.Forward, "promoter", nil)
}

func (c PairwiseConfig) orient1() sequence.Orientation {
	if c.Orientation1 == "" {
		return sequence.Forward
	}
	return c.Orientation1
}

func (c PairwiseConfig) orient2() sequence.Orientation {
	if c.Orientation2 == "" {
		return sequence.Forward
	}
	return c.Orientation2
}

func (c PairwiseConfig) manifestExtra() map[string]any {
	extra := map[string]any{"enhancer1": c.Enhancer1}
	switch c.Experiment {
	case GrammarPairwise:
		if c.Enhancer2 == "" {
			extra["enhancer2"] = nil
		} else {
			extra["enhancer2"] = c.Enhancer2
		}
		extra["expected"] = c.Expected
	case GrammarCTCFSep:
		extra["enhancer2"] = c.Enhancer2
		extra["separator"] = c.Separator
		extra["expected"] = c.Expected
	case GrammarSpacing:
		extra["enhancer2"] = c.Enhancer2
		extra["spacing"] = c.Spacing
	case GrammarOrientation:
		extra["enhancer2"] = c.Enhancer2
		extra["orientation1"] = string(c.orient1())
		extra["orientation2"] = string(c.orient2())
		extra["expected"] = c.Expected
	}
	return extra
}

// CanonicalCellTypeMatrix returns the promoter by enhancer by cell type
// screen: matched combinations plus wrong-enhancer, wrong-cell and
// double-mismatch controls for the HBG1, ALB and CD19 promoters.
func CanonicalCellTypeMatrix() []CellTypeConfig {
	combos := []struct {
		promoter, enhancer, cellType, expected string
	}{
		{"HBG1", "HS2", "K562", "correct"},
		{"HBG1", "GATA1", "K562", "correct"},
		{"HBG1", "KLF1", "K562", "correct"},
		{"HBG1", "TAL1", "K562", "correct"},
		{"HBG1", "HNF4A", "K562", "wrong_enhancer"},
		{"HBG1", "HS2", "HepG2", "wrong_cell"},
		{"HBG1", "HNF4A", "HepG2", "mismatch"},
		{"HBG1", "HS2", "GM12878", "wrong_cell"},
		{"HBG1", "HNF4A", "GM12878", "mismatch"},

		{"ALB", "HNF4A", "HepG2", "correct"},
		{"ALB", "HS2", "HepG2", "wrong_enhancer"},
		{"ALB", "GATA1", "HepG2", "wrong_enhancer"},
		{"ALB", "HNF4A", "K562", "wrong_cell"},
		{"ALB", "HS2", "K562", "mismatch"},
		{"ALB", "HNF4A", "GM12878", "wrong_cell"},
		{"ALB", "HS2", "GM12878", "mismatch"},

		{"CD19", "HS2", "GM12878", "wrong_enhancer"},
		{"CD19", "HNF4A", "GM12878", "wrong_enhancer"},
		{"CD19", "GATA1", "GM12878", "wrong_enhancer"},
		{"CD19", "HS2", "K562", "mismatch"},
		{"CD19", "HNF4A", "K562", "mismatch"},
		{"CD19", "HS2", "HepG2", "mismatch"},
		{"CD19", "HNF4A", "HepG2", "mismatch"},
	}
	configs := make([]CellTypeConfig, 0, len(combos))
	for _, combo := range combos {
		configs = append(configs, CellTypeConfig{
			Name: fmt.Sprintf("CellType_%s_%s_%s", combo.promoter, combo.enhancer, combo.cellType),
			Description: fmt.Sprintf("%s enhancer with the %s promoter assayed in %s.",
				combo.enhancer, combo.promoter, combo.cellType),
			Promoter: combo.promoter,
			Enhancer: combo.enhancer,
			CellType: combo.cellType,
			Expected: combo.expected,
			Spacing:  DefaultCellTypeSpacing,
		})
	}
	return configs
}

// CanonicalCooperativity returns the pairwise cooperativity screen:
// five single-enhancer controls, ten erythroid and hepatic pairs and
// two CTCF separation tests, all driving the HBG1 promoter.
func CanonicalCooperativity() []PairwiseConfig {
	var configs []PairwiseConfig
	for _, enh := range []string{"HS2", "GATA1", "KLF1", "TAL1", "HNF4A"} {
		configs = append(configs, PairwiseConfig{
			Name:        "Single_" + enh,
			Description: fmt.Sprintf("Single %s enhancer control upstream of the HBG1 promoter.", enh),
			Experiment:  GrammarPairwise,
			Enhancer1:   enh,
			Promoter:    "HBG1",
			Spacing:     DefaultPairSpacing,
			Expected:    "control",
		})
	}
	pairs := []struct {
		enh1, enh2, expected string
	}{
		{"HS2", "GATA1", "synergy"},
		{"HS2", "KLF1", "synergy"},
		{"HS2", "TAL1", "synergy"},
		{"GATA1", "KLF1", "synergy"},
		{"GATA1", "TAL1", "synergy"},
		{"KLF1", "TAL1", "synergy"},
		{"HS2", "HNF4A", "interference"},
		{"GATA1", "HNF4A", "interference"},
		{"KLF1", "HNF4A", "interference"},
		{"TAL1", "HNF4A", "interference"},
	}
	for _, pair := range pairs {
		configs = append(configs, PairwiseConfig{
			Name: fmt.Sprintf("Pair_%s_%s", pair.enh1, pair.enh2),
			Description: fmt.Sprintf("%s and %s enhancers %d bp apart upstream of the HBG1 promoter.",
				pair.enh1, pair.enh2, DefaultPairSpacing),
			Experiment: GrammarPairwise,
			Enhancer1:  pair.enh1,
			Enhancer2:  pair.enh2,
			Promoter:   "HBG1",
			Spacing:    DefaultPairSpacing,
			Expected:   pair.expected,
		})
	}
	ctcfTests := []struct {
		enh1, enh2, expected string
	}{
		{"HS2", "GATA1", "test_insulation"},
		{"HS2", "HNF4A", "control_already_independent"},
	}
	for _, test := range ctcfTests {
		configs = append(configs, PairwiseConfig{
			Name: fmt.Sprintf("CTCF_Sep_%s_%s", test.enh1, test.enh2),
			Description: fmt.Sprintf("%s and %s enhancers separated by a CTCF site.",
				test.enh1, test.enh2),
			Experiment: GrammarCTCFSep,
			Enhancer1:  test.enh1,
			Enhancer2:  test.enh2,
			Promoter:   "HBG1",
			Separator:  "CTCF",
			Spacing:    DefaultPairSpacing,
			Expected:   test.expected,
		})
	}
	return configs
}

// CanonicalSpacingScreen returns the HS2-GATA1 short range spacing
// series from adjacent placement to 10 kb.
func CanonicalSpacingScreen() []PairwiseConfig {
	spacings := []int{0, 100, 250, 500, 750, 1_000, 2_000, 3_000, 5_000, 10_000}
	configs := make([]PairwiseConfig, 0, len(spacings))
	for _, spacing := range spacings {
		configs = append(configs, PairwiseConfig{
			Name:        fmt.Sprintf("Spacing_%dbp_HS2_GATA1", spacing),
			Description: fmt.Sprintf("HS2 and GATA1 enhancers %d bp apart.", spacing),
			Experiment:  GrammarSpacing,
			Enhancer1:   "HS2",
			Enhancer2:   "GATA1",
			Promoter:    "HBG1",
			Spacing:     spacing,
		})
	}
	return configs
}

// CanonicalOrientationGrid returns four enhancer pairs crossed with all
// four orientation combinations.
func CanonicalOrientationGrid() []PairwiseConfig {
	pairs := []struct {
		enh1, enh2, expected string
	}{
		{"HS2", "GATA1", "expect_cooperativity"},
		{"HS2", "HNF4A", "expect_independence"},
		{"GATA1", "KLF1", "expect_cooperativity"},
		{"HS2", "CTCF", "CTCF_orientation_critical"},
	}
	orientations := []struct {
		o1, o2 sequence.Orientation
	}{
		{sequence.Forward, sequence.Forward},
		{sequence.Forward, sequence.Reverse},
		{sequence.Reverse, sequence.Forward},
		{sequence.Reverse, sequence.Reverse},
	}
	var configs []PairwiseConfig
	for _, pair := range pairs {
		for _, o := range orientations {
			configs = append(configs, PairwiseConfig{
				Name: fmt.Sprintf("Orient_%s%s_%s%s", pair.enh1, o.o1, pair.enh2, o.o2),
				Description: fmt.Sprintf("%s(%s) and %s(%s) enhancers %d bp apart upstream of the HBG1 promoter.",
					pair.enh1, o.o1, pair.enh2, o.o2, DefaultPairSpacing),
				Experiment:   GrammarOrientation,
				Enhancer1:    pair.enh1,
				Enhancer2:    pair.enh2,
				Promoter:     "HBG1",
				Spacing:      DefaultPairSpacing,
				Orientation1: o.o1,
				Orientation2: o.o2,
				Expected:     pair.expected,
			})
		}
	}
	return configs
}

// CanonicalGrammar returns all four grammar screens as one batch.
func CanonicalGrammar() []Recipe {
	var recipes []Recipe
	recipes = append(recipes, asRecipes(CanonicalCellTypeMatrix())...)
	recipes = append(recipes, asRecipes(CanonicalCooperativity())...)
	recipes = append(recipes, asRecipes(CanonicalSpacingScreen())...)
	recipes = append(recipes, asRecipes(CanonicalOrientationGrid())...)
	return recipes
}
