package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/bkellow/domainhawk/internal/ai"
	"github.com/bkellow/domainhawk/internal/auction"
	"github.com/bkellow/domainhawk/internal/logger"
	"github.com/bkellow/domainhawk/internal/match"
	"github.com/bkellow/domainhawk/internal/store"
	"github.com/bkellow/domainhawk/internal/valuation"
)

// processNewListing cleans the listing, matches it against every user's
// pattern set, anchors a valuation, and dispatches to each matched server.
func (p *Pipeline) processNewListing(ctx context.Context, engine *match.Engine, l auction.Listing, byUser map[userKey][]store.Pattern) {
	logger.Debug(ctx, "Processing NEW listing", "listing_id", l.ID, "domain", l.Domain)

	// 1. Tidy the listing for presentation. The AI is cosmetic: if it fails
	// we fall back to the raw fields rather than dropping the listing.
	cleaned, err := p.ai.CleanListing(ctx, l.Domain, l.SellerNotes)
	if err != nil {
		logger.Warn(ctx, "Gemini failed to clean listing, using raw fields", "listing_id", l.ID, "error", err)
		cleaned = &ai.CleanedListing{
			Title:       l.Domain,
			Description: l.SellerNotes,
			Venue:       l.Venue,
		}
	}

	// 2. Match against each user's pattern set.
	matches := make(map[string][]string) // serverID -> userIDs
	for key, patterns := range byUser {
		if p.userMatches(engine, patterns, l) {
			matches[key.serverID] = append(matches[key.serverID], key.userID)
		}
	}
	if len(matches) == 0 {
		return
	}

	// 3. Anchor a valuation estimate for the embed. Best effort: a degraded
	// outcome still carries the heuristic band.
	quick := valuation.QuickEstimate(l.Domain)
	anchored := p.valuer.Anchor(ctx, l.Domain, quick)

	embed := p.builder.BuildListingEmbed(l, cleaned, anchored)

	// 4. Dispatch to every matched server's feed channel and ping the
	// matched users in the ping channel.
	serverMsgs := make(map[string]string)
	for serverID, userIDs := range matches {
		cfg, err := p.configs.GetServerConfig(ctx, serverID)
		if err != nil {
			logger.Error(ctx, "Could not get config for server", "server_id", serverID, "error", err)
			continue
		}

		msgID, err := p.discord.SendEmbed(cfg.FeedChannelID, "", embed)
		if err != nil {
			logger.Error(ctx, "Failed to post listing to server", "server_id", serverID, "error", err)
			continue
		}

		// Default reaction voting
		_ = p.discord.AddReaction(cfg.FeedChannelID, msgID, "%F0%9F%91%8D") // Thumbs up
		_ = p.discord.AddReaction(cfg.FeedChannelID, msgID, "%F0%9F%91%8E") // Thumbs down

		serverMsgs[serverID] = msgID

		if len(userIDs) > 0 {
			var ping strings.Builder
			for _, uid := range userIDs {
				ping.WriteString(fmt.Sprintf("<@%s> ", uid))
			}
			ping.WriteString(fmt.Sprintf("- **Pattern match in the auction feed!** <https://discord.com/channels/%s/%s/%s>", serverID, cfg.FeedChannelID, msgID))
			_ = p.discord.SendMessage(cfg.PingChannelID, ping.String())
		}
	}

	// 5. Batch save all server message IDs so status updates can find them.
	if len(serverMsgs) > 0 {
		if err := p.db.SaveListingRecords(ctx, l.ID, l.Domain, serverMsgs); err != nil {
			logger.Error(ctx, "Failed to save listing records", "listing_id", l.ID, "error", err)
		}
	}
}

// userMatches applies one user's pattern set to a listing. Per-pattern TLD
// filters and budget caps narrow individual patterns; a user whose set has
// no enabled patterns matches everything (no patterns means no filtering).
func (p *Pipeline) userMatches(engine *match.Engine, patterns []store.Pattern, l auction.Listing) bool {
	name := match.SecondLevelName(l.Domain)
	price := listingPrice(l)

	enabled := 0
	for _, pt := range patterns {
		if !pt.Enabled {
			continue
		}
		enabled++
		if pt.TLDFilter != "" && !strings.EqualFold(match.TLD(l.Domain), pt.TLDFilter) {
			continue
		}
		if pt.MaxPrice > 0 && price > pt.MaxPrice {
			continue
		}
		if engine.Matches(pt, name) {
			return true
		}
	}

	return enabled == 0
}
