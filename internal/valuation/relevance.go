package valuation

import (
	"math"
	"strings"
	"time"

	"github.com/bkellow/domainhawk/internal/match"
	"github.com/bkellow/domainhawk/internal/store"
)

// Relevance sub-score weights. The four weighted factors sum to 1.0; the
// venue bonus is additive on top, so the score range is [0, 1.05].
const (
	weightTLD     = 0.40
	weightLength  = 0.25
	weightKeyword = 0.25
	weightRecency = 0.10
	venueBonus    = 0.05

	// substringFallback is the flat award when no keyword overlaps directly
	// but a target keyword appears inside the comp's name. Hand-tuned.
	substringFallback = 0.3

	// recencyHorizonYears is the sale age at which recency decays to zero.
	recencyHorizonYears = 6.0
	// lengthHorizon is the name-length difference at which similarity
	// decays to zero.
	lengthHorizon = 10.0
)

// Relevance computes a weighted comparability score between a target domain
// and a historical sale. Pure computation; the caller supplies the target's
// precomputed TLD, cleaned-name length, and keywords so scoring 1000 comps
// doesn't redo that work per comp.
func Relevance(comp store.ComparableSale, targetTLD string, targetNameLen int, targetKeywords []string) float64 {
	score := 0.0

	compTLD := comp.TLD
	if compTLD == "" {
		compTLD = match.TLD(comp.DomainName)
	}
	if strings.EqualFold(compTLD, targetTLD) {
		score += weightTLD
	}

	compName := cleanName(comp.DomainName)
	lengthSim := 1.0 - math.Abs(float64(len(compName)-targetNameLen))/lengthHorizon
	score += weightLength * math.Max(0, lengthSim)

	score += weightKeyword * keywordOverlap(compName, comp.DomainName, targetKeywords)

	score += weightRecency * recency(comp.SaleDate)

	if strings.EqualFold(comp.Venue, "end-user") {
		score += venueBonus
	}

	return score
}

// keywordOverlap returns the fraction of target keywords found in the comp's
// keywords, falling back to a flat substring award. No target keywords means
// no signal, scored as zero rather than neutral.
func keywordOverlap(compName, compDomain string, targetKeywords []string) float64 {
	if len(targetKeywords) == 0 {
		return 0
	}

	compWords := make(map[string]struct{})
	for _, w := range ExtractKeywords(compDomain) {
		compWords[w] = struct{}{}
	}

	hits := 0
	for _, kw := range targetKeywords {
		if _, ok := compWords[kw]; ok {
			hits++
		}
	}
	if hits > 0 {
		return float64(hits) / float64(len(targetKeywords))
	}

	if compName == "" {
		return 0
	}
	for _, kw := range targetKeywords {
		if strings.Contains(compName, kw) || strings.Contains(kw, compName) {
			return substringFallback
		}
	}
	return 0
}

// recency decays linearly from 1.0 (sold today) to 0 at the six-year
// horizon. An undated sale scores a neutral 0.5. A future-dated sale (clock
// skew in the venue data) caps at 1.0 rather than inflating the score.
func recency(saleDate *time.Time) float64 {
	if saleDate == nil {
		return 0.5
	}
	ageYears := time.Since(*saleDate).Hours() / (24 * 365.25)
	return math.Min(1, math.Max(0, 1.0-ageYears/recencyHorizonYears))
}
