package discord

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/bkellow/domainhawk/internal/store"
	"github.com/bkellow/domainhawk/internal/valuation"
)

func routeSlashCommand(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "setup":
		handleSetup(ctx, w, i)
	case "help":
		handleHelp(ctx, w, i)
	case "watch":
		handleWatchGroup(ctx, w, i)
	case "value":
		handleValue(ctx, w, i)
	default:
		respondError(w, "Unknown command")
	}
}

func handleSetup(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	// Only allow admins to run this (Discord permissions can enforce this, but double check)
	var feedChannelID, pingChannelID string
	options := i.ApplicationCommandData().Options
	for _, opt := range options {
		if opt.Name == "feed_channel" {
			feedChannelID = opt.Value.(string)
		} else if opt.Name == "ping_channel" {
			pingChannelID = opt.Value.(string)
		}
	}

	if feedChannelID == "" || pingChannelID == "" {
		respondError(w, "Both feed_channel and ping_channel are required.")
		return
	}

	projectID := os.Getenv("GCP_PROJECT_ID")
	db, err := store.NewStore(ctx, projectID)
	if err != nil {
		respondError(w, "Database connection failed.")
		return
	}
	defer db.Close()

	cfg := store.ServerConfig{
		FeedChannelID: feedChannelID,
		PingChannelID: pingChannelID,
	}

	if err := db.SaveServerConfig(ctx, i.GuildID, cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
		respondError(w, "Failed to completely save configuration.")
		return
	}

	writeJSON(w, discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("✅ **Setup Complete!**\n\nAuction listings will be posted to <#%s>.\nWatch alerts will ping in <#%s>.\n\nUsers can now run `/watch add` to get started!", feedChannelID, pingChannelID),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})

	// Send public welcome message via REST Client
	go func() {
		client := NewClient(os.Getenv("DISCORD_BOT_TOKEN"))
		client.SendMessage(pingChannelID, "👋 **Hello! Domain Hawk is now online!**\nRun `/help` to see how to set up watches for expiring domains.")
	}()
}

func handleHelp(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	embed := &discordgo.MessageEmbed{
		Title:       "🦅 Domain Hawk",
		Description: "I monitor expiring-domain auctions every few minutes and ping you when a name matching your watch patterns hits the block!",
		Color:       0x00FF00, // Green
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "🔔 `/watch add`",
				Value: "Opens a form where you describe the domains you want in plain English, or type a regex pattern yourself. Every pattern is safety-checked before it's saved.",
			},
			{
				Name:  "📋 `/watch list`",
				Value: "Shows all your active watch patterns and lets you delete them.",
			},
			{
				Name:  "💰 `/value example.com`",
				Value: "Gives a quick value estimate for any domain, anchored against recent comparable sales.",
			},
			{
				Name:  "🎯 How it works",
				Value: "1. A domain enters the expiry auction feed.\n2. I post it with a value estimate in the Feed channel.\n3. If it matches your pattern, I ping you in the Ping channel.",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Clean, fast, and serverless.",
		},
	}

	writeJSON(w, discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral, // Only the user who asked sees it
		},
	})
}

// handleWatchGroup routes the subcommands of `/watch`
func handleWatchGroup(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	subCommand := options[0].Name
	switch subCommand {
	case "add":
		handleWatchAddStart(ctx, w, i)
	case "list":
		handleWatchList(ctx, w, i)
	default:
		respondError(w, "Unknown subcommand")
	}
}

// handleWatchAddStart gives the user the choice between AI assistance and manual entry.
func handleWatchAddStart(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	embed := &discordgo.MessageEmbed{
		Title:       "🛠️ Create a New Watch",
		Description: "How would you like to set up your watch pattern?\n\n✨ **Help Me Write It**: Just tell me what domains you're looking for in plain English, and I'll generate a safe regex for you.\n\n⌨️ **I'll Type It Myself**: If you know exactly what regex you want (e.g., `^crypto`), you can type the pattern manually.",
		Color:       0x00B0F4,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "✨ Help Me Write It",
					Style:    discordgo.PrimaryButton,
					CustomID: "wizard_ai",
				},
				discordgo.Button{
					Label:    "⌨️ I'll Type It Myself",
					Style:    discordgo.SecondaryButton,
					CustomID: "wizard_manual",
				},
			},
		},
	}

	writeJSON(w, discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

// handleValue runs the comp-anchored estimator against a user-supplied domain.
func handleValue(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	var domain string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "domain" {
			domain, _ = opt.Value.(string)
		}
	}
	domain = strings.ToLower(strings.TrimSpace(domain))

	if domain == "" || !strings.Contains(domain, ".") {
		respondError(w, "Please provide a full domain name, e.g. `example.com`.")
		return
	}

	// Defer so the comp fetch doesn't run into Discord's 3 second deadline.
	writeJSON(w, discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})

	go processValue(context.Background(), i, domain)
}

func processValue(ctx context.Context, i *discordgo.Interaction, domain string) {
	client := NewClient(os.Getenv("DISCORD_BOT_TOKEN"))

	db, err := store.NewStore(ctx, os.Getenv("GCP_PROJECT_ID"))
	if err != nil {
		client.SendFollowupMessage(i, "⚠️ Database error.")
		return
	}
	defer db.Close()

	base := valuation.QuickEstimate(domain)
	anchorer := valuation.NewAnchorer(valuation.NewCompCache(db, 0))
	result := anchorer.Anchor(ctx, domain, base)

	desc := fmt.Sprintf("**Band:** %s\n**Estimated Range:** %s", result.Band, valuation.FormatBand(result.QuickValuation))
	if result.CompAnchored {
		desc += fmt.Sprintf("\n\n*Anchored to %d comparable sales (median %s, adjustment ×%.2f).*",
			result.CompCount, valuation.FormatDollars(int(result.CompMedian)), result.AnchorAdjustment)
	} else {
		desc += "\n\n*Not enough comparable sales to anchor. Heuristic estimate only.*"
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("💰 Value Estimate: `%s`", domain),
		Description: desc,
		Color:       0x00B0F4,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Estimates are directional, not appraisals.",
		},
	}

	if err := client.SendFollowupEmbedWithComponents(i, embed, nil); err != nil {
		log.Printf("Failed to send value followup: %v", err)
	}
}
