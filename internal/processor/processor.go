// Package processor runs the sweep pipeline: pull the newest auction
// listings, match them against saved watch patterns, and dispatch alerts.
package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/bkellow/domainhawk/internal/ai"
	"github.com/bkellow/domainhawk/internal/auction"
	"github.com/bkellow/domainhawk/internal/logger"
	"github.com/bkellow/domainhawk/internal/match"
	"github.com/bkellow/domainhawk/internal/store"
	"github.com/bkellow/domainhawk/internal/valuation"
)

// sweepParallelism bounds concurrent listing processing. Listings are
// independent; ordering between them doesn't matter.
const sweepParallelism = 4

// Storer is the persistence surface the pipeline needs.
type Storer interface {
	GetAllPatterns(ctx context.Context) ([]store.Pattern, error)
	GetListingRecord(ctx context.Context, listingID string) (*store.ListingRecord, error)
	SaveListingRecords(ctx context.Context, listingID, domain string, serverMsgs map[string]string) error
	TrimOldListings(ctx context.Context) error
	GetServerConfig(ctx context.Context, serverID string) (*store.ServerConfig, error)
	AddComparableSales(ctx context.Context, comps []store.ComparableSale) error
	Close() error
}

// AIService cleans raw listings for presentation.
type AIService interface {
	CleanListing(ctx context.Context, domain, sellerNotes string) (*ai.CleanedListing, error)
	Close()
}

// FeedFetcher pulls the newest listings from the auction feed.
type FeedFetcher interface {
	FetchNewestListings(ctx context.Context) ([]auction.Listing, error)
}

// DiscordMessenger is the outbound Discord surface the pipeline uses.
type DiscordMessenger interface {
	SendMessage(channelID, content string) error
	SendEmbed(channelID string, content string, embed *discordgo.MessageEmbed) (string, error)
	EditEmbed(channelID, messageID, content string, embed *discordgo.MessageEmbed) error
	AddReaction(channelID, messageID, emoji string) error
}

// Valuer anchors a heuristic band to comparable sales.
type Valuer interface {
	Anchor(ctx context.Context, domain string, base valuation.QuickValuation) valuation.Anchored
}

// CompInvalidator lets the pipeline flush the comp snapshot after it appends
// fresh sale evidence.
type CompInvalidator interface {
	Invalidate()
}

// userKey identifies one user's pattern set on one server.
type userKey struct {
	serverID string
	userID   string
}

// Pipeline wires the sweep dependencies together.
type Pipeline struct {
	db      Storer
	ai      AIService
	feed    FeedFetcher
	discord DiscordMessenger
	valuer  Valuer
	comps   CompInvalidator
	configs *ConfigCache
	builder *ListingBuilder
}

// NewPipeline constructs a Pipeline. The config cache is created internally
// with a short TTL so a 100-listing sweep doesn't hammer Firestore.
func NewPipeline(db Storer, aiSvc AIService, feed FeedFetcher, discord DiscordMessenger, valuer Valuer, comps CompInvalidator) *Pipeline {
	return &Pipeline{
		db:      db,
		ai:      aiSvc,
		feed:    feed,
		discord: discord,
		valuer:  valuer,
		comps:   comps,
		configs: NewConfigCache(db, time.Minute),
		builder: NewListingBuilder(),
	}
}

// Run sweeps the auction feed once: dedupes against listing records, matches
// new listings against every saved pattern set, and dispatches alerts. One
// bad listing never aborts the sweep.
func (p *Pipeline) Run(ctx context.Context) error {
	listings, err := p.feed.FetchNewestListings(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch auction feed: %w", err)
	}

	patterns, err := p.db.GetAllPatterns(ctx)
	if err != nil {
		return fmt.Errorf("failed to load patterns: %w", err)
	}

	// Group per user so match semantics (empty-set-matches-all, any-pattern
	// suffices) apply to each user's own set.
	byUser := make(map[userKey][]store.Pattern)
	for _, pt := range patterns {
		k := userKey{serverID: pt.ServerID, userID: pt.UserID}
		byUser[k] = append(byUser[k], pt)
	}

	// One engine per sweep: compiled patterns are shared across listings.
	engine := match.NewEngine()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepParallelism)
	for _, listing := range listings {
		l := listing
		g.Go(func() error {
			record, err := p.db.GetListingRecord(gctx, l.ID)
			isNew := record == nil || err != nil

			if !isNew {
				if err := p.handleExistingListing(gctx, l, record); err != nil {
					logger.Warn(gctx, "Failed to update listing status", "listing_id", l.ID, "error", err)
				}
				return nil
			}

			if strings.EqualFold(l.Status, "active") {
				p.processNewListing(gctx, engine, l, byUser)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Trim DB to prevent unlimited growth.
	if err := p.db.TrimOldListings(ctx); err != nil {
		logger.Warn(ctx, "Non-fatal: failed to trim old listings", "error", err)
	}

	return nil
}

// handleExistingListing reacts to status changes on listings we already
// posted: sold listings become comparable sales and their embeds get struck
// through; removed listings are left alone.
func (p *Pipeline) handleExistingListing(ctx context.Context, l auction.Listing, record *store.ListingRecord) error {
	sold := strings.EqualFold(l.Status, "sold")
	closed := strings.EqualFold(l.Status, "closed")
	if !sold && !closed {
		return nil
	}

	if sold && l.SalePrice > 0 {
		now := time.Now()
		comp := store.ComparableSale{
			DomainName: l.Domain,
			TLD:        match.TLD(l.Domain),
			SalePrice:  l.SalePrice,
			SaleDate:   &now,
			Venue:      l.Venue,
		}
		if err := p.db.AddComparableSales(ctx, []store.ComparableSale{comp}); err != nil {
			logger.Warn(ctx, "Failed to record comparable sale", "listing_id", l.ID, "error", err)
		} else {
			// New evidence must be visible to the next anchoring call, not
			// after the cache TTL happens to lapse.
			p.comps.Invalidate()
			logger.Info(ctx, "Recorded comparable sale", "domain", l.Domain, "price", l.SalePrice)
		}
	}

	status := "Closed"
	if sold {
		status = "Sold"
	}
	embed := p.builder.BuildClosedEmbed(l.Domain, l.URL, status, l.SalePrice)

	for serverID, msgID := range record.ServerMsgs {
		cfg, err := p.configs.GetServerConfig(ctx, serverID)
		if err != nil {
			logger.Warn(ctx, "Could not get config for server", "server_id", serverID, "error", err)
			continue
		}
		if err := p.discord.EditEmbed(cfg.FeedChannelID, msgID, "", embed); err != nil {
			logger.Warn(ctx, "Failed to strike out listing embed", "server_id", serverID, "error", err)
		}
	}

	return nil
}

// listingPrice is the price a budget filter compares against: the buy-now
// price when the seller set one, otherwise the current bid.
func listingPrice(l auction.Listing) float64 {
	if l.BuyNowPrice > 0 {
		return l.BuyNowPrice
	}
	return l.CurrentBid
}
