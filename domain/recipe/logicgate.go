package recipe

import (
	"fmt"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/sequence"
)

// ExperimentLogicGates labels the Boolean logic gate series.
const ExperimentLogicGates = "logic_gates"

// GateDefinition describes one TF pair and the Boolean behavior it is
// expected to show. Each definition expands into four truth table
// constructs per cell type.
type GateDefinition struct {
	// GateType is AND, OR or XOR.
	GateType  string
	TFA       string
	TFB       string
	Promoter  string
	CellTypes []string
	// ExpectedPattern holds the expected outputs for truth table rows
	// 00, 01, 10 and 11, in that order.
	ExpectedPattern [4]int
	Rationale       string
}

// Conditions expands the definition into its four truth table
// constructs for one cell type.
func (g GateDefinition) Conditions(cellType string) []LogicGateConfig {
	return []LogicGateConfig{
		{Gate: g, BinaryCode: "00", CellType: cellType,
			Description: "Neither TF present (baseline)"},
		{Gate: g, BPresent: true, BinaryCode: "01", CellType: cellType,
			Description: fmt.Sprintf("Only %s", g.TFB)},
		{Gate: g, APresent: true, BinaryCode: "10", CellType: cellType,
			Description: fmt.Sprintf("Only %s", g.TFA)},
		{Gate: g, APresent: true, BPresent: true, BinaryCode: "11", CellType: cellType,
			Description: "Both TFs present"},
	}
}

// LogicGateConfig is one truth table condition of a gate definition.
// Absent TFs become zero-width site features so every condition shares
// identical coordinates.
type LogicGateConfig struct {
	Gate        GateDefinition
	APresent    bool
	BPresent    bool
	BinaryCode  string
	CellType    string
	Description string
}

// ConstructName implements Recipe.
func (c LogicGateConfig) ConstructName() string {
	return fmt.Sprintf("LogicGate_%s_%s_%s_%s_%s",
		c.Gate.GateType, c.Gate.TFA, c.Gate.TFB, c.BinaryCode, c.CellType)
}

// ExperimentName implements Recipe.
func (c LogicGateConfig) ExperimentName() string { return ExperimentLogicGates }

// FillerSeed implements Recipe.
func (c LogicGateConfig) FillerSeed() int64 { return 0 }

// ExpectedOutput returns the expected gate output for this truth table
// row.
func (c LogicGateConfig) ExpectedOutput() int {
	row := 0
	if c.APresent {
		row |= 2
	}
	if c.BPresent {
		row |= 1
	}
	return c.Gate.ExpectedPattern[row]
}

// Build implements Recipe.
func (c LogicGateConfig) Build(lib *sequence.Library, cyc *filler.Cycler, p Params) (Result, error) {
	name := c.ConstructName()
	b, err := construct.NewBuilder(name, cyc)
	if err != nil {
		return Result{}, err
	}
	if err := c.layout(b, lib, p); err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", name, err)
	}
	built, err := b.Finish(p.ConstructLength)
	if err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", name, err)
	}
	return Result{
		Construct:   built,
		Experiment:  ExperimentLogicGates,
		Description: c.Description,
		FastaName:   name + ".fasta",
		FastaHeader: name,
		LineWidth:   80,
		Extra: map[string]any{
			"gate_type":            c.Gate.GateType,
			"tf_a":                 c.Gate.TFA,
			"tf_b":                 c.Gate.TFB,
			"tf_a_present":         c.APresent,
			"tf_b_present":         c.BPresent,
			"binary_code":          c.BinaryCode,
			"promoter":             c.Gate.Promoter,
			"cell_type":            c.CellType,
			"expected_output":      c.ExpectedOutput(),
			"biological_rationale": c.Gate.Rationale,
		},
	}, nil
}

func (c LogicGateConfig) layout(b *construct.Builder, lib *sequence.Library, p Params) error {
	prom, err := lib.Get(c.Gate.Promoter)
	if err != nil {
		return err
	}
	if err := b.AppendTo(p.TFAPos, "upstream_filler", nil); err != nil {
		return err
	}
	if err := appendSite(b, lib, "TF_A_site", c.Gate.TFA, c.APresent); err != nil {
		return err
	}
	// TF spacing is start to start, so the spacer absorbs the site
	// length.
	if err := b.AppendTo(p.TFAPos+p.TFSpacing, "tf_spacer", nil); err != nil {
		return err
	}
	if err := appendSite(b, lib, "TF_B_site", c.Gate.TFB, c.BPresent); err != nil {
		return err
	}
	if err := b.AppendTo(p.PromoterPos, "promoter_spacer", nil); err != nil {
		return err
	}
	return b.AppendModule(prom, sequence.Forward, "promoter", nil)
}

// appendSite places a TF binding site, or a zero-width EMPTY marker for
// the absent condition.
func appendSite(b *construct.Builder, lib *sequence.Library, label, name string, present bool) error {
	if !present {
		return b.AppendSequence("", label, map[string]any{"module": "EMPTY", "orientation": "n/a"})
	}
	mod, err := lib.Get(name)
	if err != nil {
		return err
	}
	return b.AppendModule(mod, sequence.Forward, label, nil)
}

// CanonicalGates returns the thirteen gate definitions: five AND pairs,
// four OR pairs and four XOR pairs over the erythroid, pluripotency and
// hepatic modules.
func CanonicalGates() []GateDefinition {
	andPattern := [4]int{0, 0, 0, 1}
	orPattern := [4]int{0, 1, 1, 1}
	xorPattern := [4]int{0, 1, 1, 0}
	return []GateDefinition{
		{
			GateType: "AND", TFA: "OCT4", TFB: "SOX2", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: andPattern,
			Rationale:       "Oct4+Sox2 are THE canonical cooperative pair for pluripotency",
		},
		{
			GateType: "AND", TFA: "GATA1", TFB: "KLF1", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: andPattern,
			Rationale:       "Your finding: GATA1+KLF1 showed 1.26x synergy (strongest AND gate)",
		},
		{
			GateType: "AND", TFA: "GATA1", TFB: "TAL1", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: andPattern,
			Rationale:       "Erythroid master regulators, expected cooperativity",
		},
		{
			GateType: "AND", TFA: "HS2", TFB: "GATA1", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: andPattern,
			Rationale:       "Your surprising finding: showed interference (0.89x) - test if construct matters",
		},
		{
			GateType: "AND", TFA: "HS2", TFB: "KLF1", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: andPattern,
			Rationale:       "Your finding: showed 1.12x synergy - validate AND-like behavior",
		},
		{
			GateType: "OR", TFA: "GATA1", TFB: "GATA2", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: orPattern,
			Rationale:       "GATA1/2 are redundant in erythroid specification",
		},
		{
			GateType: "OR", TFA: "KLF1", TFB: "TAL1", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: orPattern,
			Rationale:       "Both activate erythroid genes - test redundancy",
		},
		{
			GateType: "OR", TFA: "GATA1", TFB: "KLF1", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: orPattern,
			Rationale:       "Compare OR vs AND behavior for same pair",
		},
		{
			GateType: "OR", TFA: "HS2", TFB: "TAL1", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: orPattern,
			Rationale:       "Your finding: 0.96x (independent) - should show OR-like saturation",
		},
		{
			GateType: "XOR", TFA: "GATA1", TFB: "PU1", Promoter: "HBG1",
			CellTypes:       []string{"K562"},
			ExpectedPattern: xorPattern,
			Rationale:       "THE canonical mutually exclusive pair (erythroid vs myeloid)",
		},
		{
			GateType: "XOR", TFA: "GATA1", TFB: "HNF4A", Promoter: "HBG1",
			CellTypes:       []string{"K562", "HepG2"},
			ExpectedPattern: xorPattern,
			Rationale:       "Your finding: 0.76x interference - test XOR hypothesis",
		},
		{
			GateType: "XOR", TFA: "TAL1", TFB: "HNF4A", Promoter: "HBG1",
			CellTypes:       []string{"K562", "HepG2"},
			ExpectedPattern: xorPattern,
			Rationale:       "Your finding: 0.66x (strongest interference) - prime XOR candidate",
		},
		{
			GateType: "XOR", TFA: "HS2", TFB: "HNF4A", Promoter: "HBG1",
			CellTypes:       []string{"K562", "HepG2"},
			ExpectedPattern: xorPattern,
			Rationale:       "Cross-lineage antagonism (erythroid vs hepatic)",
		},
	}
}

// CanonicalLogicGates expands every gate definition into its truth
// table conditions across all assigned cell types.
func CanonicalLogicGates() []LogicGateConfig {
	var configs []LogicGateConfig
	for _, gate := range CanonicalGates() {
		for _, cellType := range gate.CellTypes {
			configs = append(configs, gate.Conditions(cellType)...)
		}
	}
	return configs
}
