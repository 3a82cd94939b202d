// Package valuation anchors heuristic domain valuations to real comparable
// sales using weighted relevance scoring.
package valuation

// QuickValuation is the heuristic band estimate the anchorer enriches. It is
// treated as an opaque input; the anchorer never recomputes it.
type QuickValuation struct {
	Band     string  `json:"band"`
	Score    float64 `json:"score"`
	ValueMin int     `json:"value_min"`
	ValueMax int     `json:"value_max"`
}

// Outcome tags how an anchoring call resolved. The best-effort contract is
// explicit in the type: callers can always use the band, and the tag says
// whether comps actually moved it.
type Outcome string

const (
	// OutcomeAnchored means the band was adjusted toward comparable sales.
	OutcomeAnchored Outcome = "anchored"
	// OutcomePassThrough means too few relevant comps existed; the band is
	// the input unchanged.
	OutcomePassThrough Outcome = "pass_through"
	// OutcomeDegraded means fetching or scoring failed; the band is the
	// input unchanged and the failure was logged, not raised.
	OutcomeDegraded Outcome = "degraded"
)

// Anchored is a QuickValuation enriched with comparable-sale evidence.
// When CompAnchored is false the band equals the input and the adjustment
// is exactly 1.0.
type Anchored struct {
	QuickValuation
	Outcome          Outcome `json:"outcome"`
	CompAnchored     bool    `json:"comp_anchored"`
	CompMedian       float64 `json:"comp_median,omitempty"` // 0 unless anchored
	CompCount        int     `json:"comp_count"`
	AnchorAdjustment float64 `json:"anchor_adjustment"`
}
