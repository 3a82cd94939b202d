package processor

import (
	"strings"
	"testing"

	"github.com/bkellow/domainhawk/internal/ai"
	"github.com/bkellow/domainhawk/internal/auction"
	"github.com/bkellow/domainhawk/internal/valuation"
)

func TestBuildListingEmbed(t *testing.T) {
	builder := NewListingBuilder()

	listing := auction.Listing{
		Domain:      "cloudbank.com",
		URL:         "https://auctions.example.com/lots/1",
		CurrentBid:  255,
		NumBids:     7,
		NumWatchers: 31,
		Venue:       "GoDaddy Auctions",
	}
	cleaned := &ai.CleanedListing{
		Title:       "cloudbank.com",
		Description: "Aged domain, clean history.",
	}

	t.Run("Anchored valuation", func(t *testing.T) {
		val := valuation.Anchored{
			QuickValuation: valuation.QuickValuation{Band: "mid", ValueMin: 1788, ValueMax: 4769},
			Outcome:        valuation.OutcomeAnchored,
			CompAnchored:   true,
			CompCount:      12,
		}

		got := builder.BuildListingEmbed(listing, cleaned, val)

		if got.Title != "🌐 cloudbank.com" {
			t.Errorf("unexpected title %q", got.Title)
		}
		if got.URL != listing.URL {
			t.Errorf("expected URL %q, got %q", listing.URL, got.URL)
		}

		// Current bid field plus the estimate field; no buy-now price set.
		if len(got.Fields) != 2 {
			t.Fatalf("expected 2 fields, got %d", len(got.Fields))
		}
		estimate := got.Fields[1].Value
		if !strings.Contains(estimate, "anchored to 12 comparable sales") {
			t.Errorf("anchored estimate should cite its comp count, got %q", estimate)
		}
	})

	t.Run("Unanchored valuation", func(t *testing.T) {
		val := valuation.Anchored{
			QuickValuation: valuation.QuickValuation{Band: "mid", ValueMin: 1788, ValueMax: 4769},
			Outcome:        valuation.OutcomePassThrough,
		}

		got := builder.BuildListingEmbed(listing, cleaned, val)
		estimate := got.Fields[1].Value
		if strings.Contains(estimate, "anchored") {
			t.Errorf("pass-through estimate must not claim anchoring, got %q", estimate)
		}
	})
}

func TestBuildClosedEmbed(t *testing.T) {
	builder := NewListingBuilder()

	got := builder.BuildClosedEmbed("cloudbank.com", "https://auctions.example.com/lots/1", "Sold", 5000)
	if got.Title != "~~cloudbank.com~~" {
		t.Errorf("closed embed should strike through the domain, got %q", got.Title)
	}
	if !strings.Contains(got.Description, "$5000") {
		t.Errorf("sold embed should carry the sale price, got %q", got.Description)
	}

	unsold := builder.BuildClosedEmbed("cloudbank.com", "", "Closed", 0)
	if strings.Contains(unsold.Description, "$") {
		t.Errorf("closed-without-sale embed must not invent a price, got %q", unsold.Description)
	}
}

func TestGetColor(t *testing.T) {
	builder := NewListingBuilder()

	tests := []struct {
		bids, watchers int
		want           int
	}{
		{0, 0, 0x808080},
		{1, 1, 0xFFFF00},
		{2, 2, 0xFFA500},
		{5, 10, 0xFF0000},
	}

	for _, tt := range tests {
		if got := builder.getColor(tt.bids, tt.watchers); got != tt.want {
			t.Errorf("getColor(%d, %d) = %#x, want %#x", tt.bids, tt.watchers, got, tt.want)
		}
	}
}
