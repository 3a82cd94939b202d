package processor

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/bkellow/domainhawk/internal/ai"
	"github.com/bkellow/domainhawk/internal/auction"
	"github.com/bkellow/domainhawk/internal/valuation"
)

// ListingBuilder centralizes the logic for creating Discord embeds from
// auction listings.
type ListingBuilder struct{}

// NewListingBuilder returns a new instance of ListingBuilder.
func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{}
}

// BuildListingEmbed crafts a rich Discord embed for an auction listing, its
// cleaned metadata, and the anchored valuation estimate.
func (b *ListingBuilder) BuildListingEmbed(l auction.Listing, cleaned *ai.CleanedListing, val valuation.Anchored) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🌐 " + cleaned.Title,
		URL:         l.URL,
		Description: cleaned.Description,
		Color:       b.getColor(l.NumBids, l.NumWatchers),
		Fields:      []*discordgo.MessageEmbedField{},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • 🔨 %d bids | 👀 %d watching", l.Venue, l.NumBids, l.NumWatchers),
		},
		Timestamp: time.Unix(int64(l.EndTimeUtc), 0).Format(time.RFC3339),
	}

	if l.CurrentBid > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "💰 Current Bid",
			Value:  fmt.Sprintf("$%.0f", l.CurrentBid),
			Inline: true,
		})
	}
	if l.BuyNowPrice > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "⚡ Buy Now",
			Value:  fmt.Sprintf("$%.0f", l.BuyNowPrice),
			Inline: true,
		})
	}

	estimate := valuation.FormatBand(val.QuickValuation)
	if val.CompAnchored {
		estimate += fmt.Sprintf("\n*anchored to %d comparable sales*", val.CompCount)
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "📊 Estimated Value",
		Value:  estimate,
		Inline: true,
	})

	return embed
}

// BuildClosedEmbed creates a greyed-out version of an embed for sold or
// closed listings.
func (b *ListingBuilder) BuildClosedEmbed(domain, url, status string, salePrice float64) *discordgo.MessageEmbed {
	desc := fmt.Sprintf("This auction has ended (**%s**).", status)
	if salePrice > 0 {
		desc = fmt.Sprintf("This auction has ended (**%s** for $%.0f).", status, salePrice)
	}
	return &discordgo.MessageEmbed{
		Title:       "~~" + domain + "~~",
		URL:         url,
		Description: desc,
		Color:       0x2C2F33, // Discord Darker Grey
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Auction Closed",
		},
	}
}

// getColor returns a Discord hex color based on auction-heat heuristics.
func (b *ListingBuilder) getColor(bids, watchers int) int {
	interactions := bids*2 + watchers
	switch {
	case interactions >= 16:
		return 0xFF0000 // Lava Red
	case interactions >= 6:
		return 0xFFA500 // Orange
	case interactions >= 3:
		return 0xFFFF00 // Yellow
	default:
		return 0x808080 // Grey
	}
}
