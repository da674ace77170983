// Package recipe defines declarative construct descriptions for the
// experiment families and the flat runners that interpret them through
// the sequence builder. Recipes are pure data; one recipe drives exactly
// one builder run.
package recipe

import (
	"fmt"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/sequence"
)

// Canonical construct geometry: 2^20 bp windows with the promoter
// reserve at 500 kb and the enhancer domain opening at 250 kb.
const (
	DefaultConstructLength = 1_048_576
	DefaultPromoterPos     = 500_000
	DefaultDomainStart     = 250_000
	DefaultEnhancerPos     = 400_000
	DefaultAnchorLeftPos   = 350_000
	DefaultAnchorRightPos  = 450_000
	DefaultRelocatedPos    = 800_000
	DefaultTFAPos          = 250_000
	DefaultTFSpacing       = 5_000
)

// Params holds the reserved coordinates shared by the experiment
// families. All placements are validated against these at build time.
type Params struct {
	ConstructLength int
	PromoterPos     int
	DomainStart     int
	EnhancerPos     int
	AnchorLeftPos   int
	AnchorRightPos  int
	RelocatedPos    int
	TFAPos          int
	TFSpacing       int
}

// DefaultParams returns the canonical coordinates.
func DefaultParams() Params {
	return Params{
		ConstructLength: DefaultConstructLength,
		PromoterPos:     DefaultPromoterPos,
		DomainStart:     DefaultDomainStart,
		EnhancerPos:     DefaultEnhancerPos,
		AnchorLeftPos:   DefaultAnchorLeftPos,
		AnchorRightPos:  DefaultAnchorRightPos,
		RelocatedPos:    DefaultRelocatedPos,
		TFAPos:          DefaultTFAPos,
		TFSpacing:       DefaultTFSpacing,
	}
}

// PromoterCenter returns the midpoint used by the distance decay family.
func (p Params) PromoterCenter() int { return p.ConstructLength / 2 }

// Result is one assembled construct together with its manifest fields
// and artifact naming. Recipe runners choose file naming and FASTA
// layout; the emitters render what the runner decided.
type Result struct {
	Construct   construct.Construct
	Experiment  string
	Description string
	FastaName   string
	FastaHeader string
	// LineWidth is the FASTA wrap column; zero writes the sequence
	// on a single line.
	LineWidth int
	// Extra carries family-specific manifest keys merged into the
	// construct's manifest entry.
	Extra map[string]any
}

// Recipe is a single construct description. Implementations are the
// per-family config records.
type Recipe interface {
	// ConstructName is the unique name of the construct this recipe
	// assembles.
	ConstructName() string
	// ExperimentName labels the manifest entry.
	ExperimentName() string
	// FillerSeed is the permutation seed for the background sequence;
	// zero builds over the base background unchanged.
	FillerSeed() int64
	// Build runs the recipe against a fresh builder. The cycler must be
	// exclusive to this build.
	Build(lib *sequence.Library, cyc *filler.Cycler, p Params) (Result, error)
}

// Family identifiers accepted by batch selection.
const (
	FamilyStacking   = "stacking"
	FamilyDistance   = "distance_decay"
	FamilyCocktail   = "cocktail"
	FamilyLogicGates = "logic_gates"
	FamilyGrammar    = "grammar"
	FamilyStructural = "structural_variants"
)

// Families returns the canonical recipe batches keyed by family
// identifier.
func Families() map[string][]Recipe {
	return map[string][]Recipe{
		FamilyStacking:   asRecipes(CanonicalStacking()),
		FamilyDistance:   asRecipes(CanonicalDistance()),
		FamilyCocktail:   asRecipes(CanonicalCocktails()),
		FamilyLogicGates: asRecipes(CanonicalLogicGates()),
		FamilyGrammar:    CanonicalGrammar(),
		FamilyStructural: asRecipes(CanonicalStructuralVariants()),
	}
}

// FamilyNames returns the known family identifiers in build order.
func FamilyNames() []string {
	return []string{
		FamilyStacking,
		FamilyDistance,
		FamilyCocktail,
		FamilyLogicGates,
		FamilyGrammar,
		FamilyStructural,
	}
}

// Batch resolves a family identifier to its canonical recipes. The
// identifier "all" returns every family's recipes in build order.
func Batch(family string) ([]Recipe, error) {
	families := Families()
	if family == "all" {
		var all []Recipe
		for _, name := range FamilyNames() {
			all = append(all, families[name]...)
		}
		return all, nil
	}
	recipes, ok := families[family]
	if !ok {
		return nil, fmt.Errorf("unknown recipe family %q (known: %v)", family, FamilyNames())
	}
	return recipes, nil
}

func asRecipes[R Recipe](configs []R) []Recipe {
	out := make([]Recipe, len(configs))
	for i, c := range configs {
		out[i] = c
	}
	return out
}

// guardPromoterReserve fails when the cursor has overrun the promoter
// reserve, the proxy for a repeat count or block length too large for
// the available domain.
func guardPromoterReserve(b *construct.Builder, promoterPos int) error {
	if b.Cursor() > promoterPos {
		return fmt.Errorf("overflows promoter position (cursor=%d, promoter=%d): %w",
			b.Cursor(), promoterPos, construct.ErrOverflow)
	}
	return nil
}

// appendPromoterSequence places a promoter module by raw sequence,
// recording its length the way the manifest consumers expect.
func appendPromoterSequence(b *construct.Builder, prom sequence.Module) error {
	return b.AppendSequence(prom.Sequence(), "promoter", map[string]any{"length": prom.Len()})
}
