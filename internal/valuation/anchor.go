package valuation

import (
	"context"
	"math"
	"sort"

	"github.com/bkellow/domainhawk/internal/logger"
	"github.com/bkellow/domainhawk/internal/match"
	"github.com/bkellow/domainhawk/internal/store"
)

const (
	// minRelevance is the floor below which a comp carries no evidential
	// weight for the target.
	minRelevance = 0.3
	// maxAnchorComps caps the sample at the most relevant comps.
	maxAnchorComps = 15
	// minAnchorComps is the smallest sample considered statistically
	// meaningful for a median.
	minAnchorComps = 3

	// The blended midpoint leans on the heuristic band but pulls toward
	// market evidence.
	blendBaseWeight = 0.60
	blendCompWeight = 0.40

	// Adjustment clamp: a thin comp sample must not swing the band by more
	// than these multipliers.
	minAdjustment = 0.5
	maxAdjustment = 3.0
)

// scoredComp pairs a sale with its relevance for one anchoring call.
type scoredComp struct {
	sale      store.ComparableSale
	relevance float64
}

// Anchorer adjusts heuristic valuation bands toward comparable-sale evidence.
type Anchorer struct {
	comps *CompCache
}

func NewAnchorer(comps *CompCache) *Anchorer {
	return &Anchorer{comps: comps}
}

// Anchor blends the base valuation band toward the relevance-weighted median
// of comparable sales. It always resolves: when too few relevant comps exist
// the input passes through untouched, and any internal fault degrades to the
// same pass-through rather than failing the caller. Anchoring is an
// enhancement, never a guarantee.
func (a *Anchorer) Anchor(ctx context.Context, domain string, base QuickValuation) (result Anchored) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn(ctx, "valuation anchoring failed, returning unanchored band",
				"domain", domain, "panic", r)
			result = passThrough(base, OutcomeDegraded)
		}
	}()

	comps := a.comps.Snapshot(ctx)
	if len(comps) == 0 {
		return passThrough(base, OutcomePassThrough)
	}

	targetTLD := match.TLD(domain)
	targetName := cleanName(domain)
	targetKeywords := ExtractKeywords(domain)

	scored := make([]scoredComp, 0, len(comps))
	for _, c := range comps {
		rel := Relevance(c, targetTLD, len(targetName), targetKeywords)
		if rel >= minRelevance {
			scored = append(scored, scoredComp{sale: c, relevance: rel})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].relevance > scored[j].relevance
	})
	if len(scored) > maxAnchorComps {
		scored = scored[:maxAnchorComps]
	}
	if len(scored) < minAnchorComps {
		return passThrough(base, OutcomePassThrough)
	}

	median := weightedMedianPrice(scored)

	baseMid := float64(base.ValueMin+base.ValueMax) / 2
	if baseMid <= 0 {
		return passThrough(base, OutcomePassThrough)
	}
	blendedMid := blendBaseWeight*baseMid + blendCompWeight*median

	adjustment := blendedMid / baseMid
	adjustment = math.Max(minAdjustment, math.Min(maxAdjustment, adjustment))

	newMin := int(math.Round(float64(base.ValueMin) * adjustment))
	newMax := int(math.Round(float64(base.ValueMax) * adjustment))

	// Re-tighten: an anchored band still has to look like a band, not a
	// guess. Bigger names get more slack.
	spread := 3
	if newMin >= 100_000 {
		spread = 5
	}
	if newMax > newMin*spread {
		newMax = newMin * spread
	}

	out := base
	out.ValueMin = newMin
	out.ValueMax = newMax

	return Anchored{
		QuickValuation:   out,
		Outcome:          OutcomeAnchored,
		CompAnchored:     true,
		CompMedian:       math.Round(median),
		CompCount:        len(scored),
		AnchorAdjustment: math.Round(adjustment*100) / 100,
	}
}

// weightedMedianPrice normalizes relevance into weights summing to 1, walks
// the comps in ascending price order, and returns the first price at which
// cumulative weight reaches one half.
func weightedMedianPrice(scored []scoredComp) float64 {
	total := 0.0
	for _, sc := range scored {
		total += sc.relevance
	}

	byPrice := make([]scoredComp, len(scored))
	copy(byPrice, scored)
	sort.Slice(byPrice, func(i, j int) bool {
		return byPrice[i].sale.SalePrice < byPrice[j].sale.SalePrice
	})

	cumulative := 0.0
	for _, sc := range byPrice {
		cumulative += sc.relevance / total
		if cumulative >= 0.5 {
			return sc.sale.SalePrice
		}
	}
	// Floating-point residue can leave the walk a hair short of 0.5.
	return byPrice[len(byPrice)-1].sale.SalePrice
}

func passThrough(base QuickValuation, outcome Outcome) Anchored {
	return Anchored{
		QuickValuation:   base,
		Outcome:          outcome,
		CompAnchored:     false,
		CompCount:        0,
		AnchorAdjustment: 1.0,
	}
}
