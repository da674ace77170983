package recipe

import (
	"fmt"

	"github.com/synthome/stitch/domain/construct"
	"github.com/synthome/stitch/domain/filler"
	"github.com/synthome/stitch/domain/sequence"
)

// ExperimentDistance labels the enhancer-promoter distance series.
const ExperimentDistance = "distance_decay_replicates"

// ReplicateSeeds are the background permutation seeds for the three
// technical replicates.
var ReplicateSeeds = []int64{42, 123, 987}

// CanonicalDistances are the enhancer offsets upstream of the promoter,
// in bp.
var CanonicalDistances = []int{1_000, 5_000, 10_000, 25_000, 50_000, 100_000, 200_000, 500_000}

// DistanceConfig places one enhancer a fixed distance upstream of a
// promoter centered in the construct. Replicates share coordinates and
// differ only in the permuted background.
type DistanceConfig struct {
	Name        string
	Description string
	Enhancer    string
	Promoter    string
	// Distance is the gap in bp between enhancer end and promoter
	// start.
	Distance  int
	Replicate int
	Seed      int64
}

// ConstructName implements Recipe.
func (c DistanceConfig) ConstructName() string { return c.Name }

// ExperimentName implements Recipe.
func (c DistanceConfig) ExperimentName() string { return ExperimentDistance }

// FillerSeed implements Recipe.
func (c DistanceConfig) FillerSeed() int64 { return c.Seed }

// Build implements Recipe.
func (c DistanceConfig) Build(lib *sequence.Library, cyc *filler.Cycler, p Params) (Result, error) {
	enh, err := lib.Get(c.Enhancer)
	if err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", c.Name, err)
	}
	prom, err := lib.Get(c.Promoter)
	if err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", c.Name, err)
	}

	promoterStart := p.PromoterCenter() - prom.Len()/2
	promoterEnd := promoterStart + prom.Len()
	enhancerEnd := promoterStart - c.Distance
	enhancerStart := enhancerEnd - enh.Len()

	b, err := construct.NewBuilder(c.Name, cyc)
	if err != nil {
		return Result{}, err
	}
	if err := c.layout(b, enh, prom, enhancerStart, promoterStart, promoterEnd, p); err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", c.Name, err)
	}
	built, err := b.Finish(p.ConstructLength)
	if err != nil {
		return Result{}, fmt.Errorf("construct %s: %w", c.Name, err)
	}
	return Result{
		Construct:   built,
		Experiment:  ExperimentDistance,
		Description: c.Description,
		FastaName:   c.Name + ".fa",
		FastaHeader: c.Name,
		LineWidth:   80,
		Extra: map[string]any{
			"enhancer_start":  enhancerStart,
			"enhancer_end":    enhancerEnd,
			"promoter_start":  promoterStart,
			"promoter_end":    promoterEnd,
			"distance_bp":     c.Distance,
			"enhancer_length": enh.Len(),
			"promoter_length": prom.Len(),
			"replicate":       c.Replicate,
			"seed":            c.Seed,
		},
	}, nil
}

func (c DistanceConfig) layout(b *construct.Builder, enh, prom sequence.Module, enhancerStart, promoterStart, promoterEnd int, p Params) error {
	if enhancerStart < 0 {
		return fmt.Errorf("enhancer would start at negative position %d: %w",
			enhancerStart, construct.ErrBackwardPlacement)
	}
	if promoterEnd > p.ConstructLength {
		return fmt.Errorf("promoter would extend beyond construct (%d > %d): %w",
			promoterEnd, p.ConstructLength, construct.ErrOverflow)
	}
	if err := b.AppendTo(enhancerStart, "upstream_filler", nil); err != nil {
		return err
	}
	if err := b.AppendModule(enh, sequence.Forward, "enhancer", nil); err != nil {
		return err
	}
	if err := b.AppendTo(promoterStart, "spacer_to_promoter", nil); err != nil {
		return err
	}
	return b.AppendModule(prom, sequence.Forward, "promoter", nil)
}

// CanonicalDistance returns the HS2-HBG1 distance series: eight
// distances by three seeded replicates.
func CanonicalDistance() []DistanceConfig {
	var configs []DistanceConfig
	for _, distance := range CanonicalDistances {
		for rep, seed := range ReplicateSeeds {
			configs = append(configs, DistanceConfig{
				Name: fmt.Sprintf("Distance_%dkb_rep%d", distance/1000, rep+1),
				Description: fmt.Sprintf("HS2 enhancer %d kb upstream of the centered HBG1 promoter; replicate %d.",
					distance/1000, rep+1),
				Enhancer:  "HS2",
				Promoter:  "HBG1",
				Distance:  distance,
				Replicate: rep + 1,
				Seed:      seed,
			})
		}
	}
	return configs
}
