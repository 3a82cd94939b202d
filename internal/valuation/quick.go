package valuation

import (
	"fmt"
	"math"

	"github.com/bkellow/domainhawk/internal/match"
	"github.com/bkellow/domainhawk/internal/wordlist"
)

// tldMultipliers discounts the base band for extensions with thinner resale
// markets. Unlisted TLDs get the long-tail default.
var tldMultipliers = map[string]float64{
	"com": 1.0,
	"ai":  0.9,
	"io":  0.7,
	"co":  0.6,
	"net": 0.45,
	"org": 0.4,
	"app": 0.4,
	"dev": 0.35,
	"xyz": 0.2,
}

const defaultTLDMultiplier = 0.15

// QuickEstimate produces the heuristic valuation band the anchorer treats as
// opaque input. Length, recognized keywords, and the extension drive a rough
// order-of-magnitude figure; comp anchoring does the actual market fitting.
func QuickEstimate(domainName string) QuickValuation {
	name := cleanName(domainName)
	if name == "" {
		return QuickValuation{Band: "unknown", Score: 0, ValueMin: 0, ValueMax: 0}
	}

	// Shorter names are worth more, until length stops mattering at all.
	var lengthBase float64
	switch n := len(name); {
	case n <= 3:
		lengthBase = 50_000
	case n <= 5:
		lengthBase = 12_000
	case n <= 8:
		lengthBase = 3_000
	case n <= 12:
		lengthBase = 800
	default:
		lengthBase = 150
	}

	keywordMult := 1.0
	score := 0.3
	for _, w := range ExtractKeywords(domainName) {
		if wordlist.IsPremium(w) {
			keywordMult *= 1.8
			score += 0.2
		} else {
			keywordMult *= 1.2
			score += 0.1
		}
	}

	if match.IsPronounceable(name) {
		keywordMult *= 1.15
		score += 0.1
	}

	tldMult, ok := tldMultipliers[match.TLD(domainName)]
	if !ok {
		tldMult = defaultTLDMultiplier
	}

	mid := lengthBase * keywordMult * tldMult
	valueMin := int(math.Round(mid * 0.6))
	valueMax := int(math.Round(mid * 1.6))
	score = math.Min(score, 0.95)

	return QuickValuation{
		Band:     bandLabel(mid),
		Score:    math.Round(score*100) / 100,
		ValueMin: valueMin,
		ValueMax: valueMax,
	}
}

func bandLabel(mid float64) string {
	switch {
	case mid >= 100_000:
		return "premium"
	case mid >= 10_000:
		return "strong"
	case mid >= 1_000:
		return "mid"
	default:
		return "starter"
	}
}

// FormatBand renders a band as a compact dollar range for embeds.
func FormatBand(v QuickValuation) string {
	return fmt.Sprintf("$%s – $%s", FormatDollars(v.ValueMin), FormatDollars(v.ValueMax))
}

// FormatDollars renders a price with a compact K/M suffix.
func FormatDollars(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 10_000:
		return fmt.Sprintf("%.0fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
