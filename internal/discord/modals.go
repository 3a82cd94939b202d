package discord

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/bkellow/domainhawk/internal/ai"
	"github.com/bkellow/domainhawk/internal/match"
	"github.com/bkellow/domainhawk/internal/store"
)

// routeModalSubmit handles the response when a user submits the wizard forms.
func routeModalSubmit(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	data := i.ModalSubmitData()

	// Immediately acknowledge the request so Discord doesn't timeout while Gemini thinks.
	writeJSON(w, discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})

	if data.CustomID == "modal_watch_wizard_ai" {
		rawQuery := data.Components[0].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value
		sanitizedQuery := Sanitize(rawQuery)
		go processAIWizard(context.Background(), i, sanitizedQuery)
	} else if strings.HasPrefix(data.CustomID, "modal_watch_wizard_manual") {
		// e.g. modal_watch_wizard_manual|edit_count
		editCount := 0
		parts := strings.Split(data.CustomID, "|")
		if len(parts) > 1 {
			fmt.Sscanf(parts[1], "%d", &editCount)
		}

		title := data.Components[0].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value
		pattern := data.Components[1].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value
		tldFilter := data.Components[2].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value
		maxPrice := data.Components[3].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value

		sanitizedTitle := Sanitize(title)
		sanitizedPattern := SanitizePattern(pattern)
		sanitizedTLD := strings.ToLower(Sanitize(tldFilter))

		price := 0.0
		if p, err := strconv.ParseFloat(strings.TrimSpace(maxPrice), 64); err == nil && p > 0 {
			price = p
		}

		go processManualWizard(context.Background(), i, sanitizedTitle, sanitizedPattern, sanitizedTLD, price, editCount)
	} else {
		client := NewClient(os.Getenv("DISCORD_BOT_TOKEN"))
		client.SendFollowupMessage(i, "⚠️ Unknown modal ID")
	}
}

func processAIWizard(ctx context.Context, i *discordgo.Interaction, query string) {
	client := NewClient(os.Getenv("DISCORD_BOT_TOKEN"))

	db, err := store.NewStore(ctx, os.Getenv("GCP_PROJECT_ID"))
	if err != nil {
		client.SendFollowupMessage(i, "⚠️ Database error.")
		return
	}
	defer db.Close()

	aiSvc, err := ai.NewAIClient(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		client.SendFollowupMessage(i, "⚠️ Could not connect to Gemini AI.")
		return
	}
	defer aiSvc.Close()

	wizard, err := aiSvc.RunPatternWizard(ctx, query, "")
	if err != nil {
		log.Printf("Gemini Wizard Error: %v", err)
		client.SendFollowupMessage(i, "⚠️ Gemini failed to parse your request. Try wording it differently.")
		return
	}

	if !wizard.IsValid {
		client.SendFollowupMessage(i, fmt.Sprintf("⚠️ I couldn't turn that into a watch pattern: %s", wizard.ErrorMessage))
		return
	}

	// Gemini output is untrusted input like any other. The same safety gate
	// that guards manual entry guards the wizard.
	verdict := match.ValidatePattern(wizard.Pattern)
	if !verdict.Safe {
		client.SendFollowupMessage(i, fmt.Sprintf("⚠️ The generated pattern `%s` failed the safety check: %s\nTry describing a narrower rule.", wizard.Pattern, verdict.Reason))
		return
	}

	color := 0x5865F2 // Blurple
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "🧩 Pattern",
			Value:  fmt.Sprintf("`%s`", wizard.Pattern),
			Inline: false,
		},
	}
	if wizard.TLDFilter != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "🌐 TLD Filter",
			Value:  fmt.Sprintf("`.%s` only", wizard.TLDFilter),
			Inline: true,
		})
	}
	if wizard.MaxPrice > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "💵 Max Price",
			Value:  fmt.Sprintf("$%.0f", wizard.MaxPrice),
			Inline: true,
		})
	}

	if wizard.TooBroad {
		color = 0xFEE75C // Yellow
		suggestions := ""
		for _, s := range wizard.BroadSuggestions {
			suggestions += fmt.Sprintf("• %s\n", s)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "⚠️ Pattern is Too Broad",
			Value:  fmt.Sprintf("> %s\n\n**Suggestions:**\n%s", wizard.BroadReason, suggestions),
			Inline: false,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎯 Watch Pattern Created",
		Description: fmt.Sprintf("I've converted your request into a safe regex over the domain name (minus the TLD).\n\n**Intent:** *\"%s\"*", query),
		Color:       color,
		Fields:      fields,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: "https://em-content.zobj.net/source/microsoft-teams/363/robot_1f916.png",
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "You can refine this watch anytime using /watch list",
		},
	}

	// Stage the pattern immediately; the confirm button just updates the UI
	// and the cancel button deletes the staged document.
	tempPattern := store.Pattern{
		UserID:      i.Member.User.ID,
		ServerID:    i.GuildID,
		Pattern:     wizard.Pattern,
		Kind:        store.KindRegex,
		TLDFilter:   wizard.TLDFilter,
		MaxPrice:    wizard.MaxPrice,
		Enabled:     true,
		Description: wizard.Description,
	}

	if err := db.AddPattern(ctx, tempPattern); err != nil {
		client.SendFollowupMessage(i, "⚠️ Failed to stage watch pattern in database.")
		return
	}

	patterns, _ := db.GetUserPatterns(ctx, i.GuildID, i.Member.User.ID)
	if len(patterns) == 0 {
		client.SendFollowupMessage(i, "⚠️ Failed to retrieve staged watch pattern.")
		return
	}
	stagedPatternID := patterns[0].ID

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "✅ Looks Good! - Save",
					Style:    discordgo.SuccessButton,
					CustomID: "confirm_watch|" + stagedPatternID,
				},
				discordgo.Button{
					Label:    "❌ Cancel",
					Style:    discordgo.DangerButton,
					CustomID: "cancel_watch|" + stagedPatternID,
				},
			},
		},
	}

	client.SendFollowupEmbedWithComponents(i, embed, components)
}

func processManualWizard(ctx context.Context, i *discordgo.Interaction, title, pattern, tldFilter string, maxPrice float64, editCount int) {
	client := NewClient(os.Getenv("DISCORD_BOT_TOKEN"))

	if editCount >= 3 {
		client.SendFollowupMessage(i, "⚠️ **Watch creation cancelled due to multiple invalid pattern attempts.** Please start over.")
		return
	}

	// Validation is local and instant. No model call is needed to tell a user
	// their regex is unsafe.
	verdict := match.ValidatePattern(pattern)
	if !verdict.Safe {
		desc := fmt.Sprintf("**Pattern Rejected:**\n`%s`\n\n**Reason:** %s", pattern, verdict.Reason)
		embed := &discordgo.MessageEmbed{
			Title:       "❌ Unsafe or Invalid Pattern",
			Description: desc,
			Color:       0xFF0000,
		}

		components := []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "✏️ Edit Pattern",
						Style:    discordgo.PrimaryButton,
						CustomID: fmt.Sprintf("edit_watch||%d", editCount+1),
					},
					discordgo.Button{
						Label:    "🗑️ Cancel Watch Creation",
						Style:    discordgo.DangerButton,
						CustomID: "cancel_watch_creation|",
					},
				},
			},
		}
		client.SendFollowupEmbedWithComponents(i, embed, components)
		return
	}

	db, err := store.NewStore(ctx, os.Getenv("GCP_PROJECT_ID"))
	if err != nil {
		client.SendFollowupMessage(i, "⚠️ Database error.")
		return
	}
	defer db.Close()

	// Valid pattern!
	desc := fmt.Sprintf("**Title:** *%s*\n**Pattern:** `%s`\n", title, pattern)
	if tldFilter != "" {
		desc += fmt.Sprintf("- **TLD Filter:** `.%s` only\n", tldFilter)
	}
	if maxPrice > 0 {
		desc += fmt.Sprintf("- **Max Price:** $%.0f\n", maxPrice)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "✅ Check Your Watch Pattern",
		Description: desc,
		Color:       0x00FF00,
	}

	tempPattern := store.Pattern{
		UserID:      i.Member.User.ID,
		ServerID:    i.GuildID,
		Pattern:     pattern,
		Kind:        store.KindRegex,
		TLDFilter:   tldFilter,
		MaxPrice:    maxPrice,
		Enabled:     true,
		Description: title,
	}

	if err := db.AddPattern(ctx, tempPattern); err != nil {
		client.SendFollowupMessage(i, "⚠️ Failed to stage watch pattern in database.")
		return
	}

	patterns, _ := db.GetUserPatterns(ctx, i.GuildID, i.Member.User.ID)
	if len(patterns) > 0 {
		stagedPatternID := patterns[0].ID
		components := []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "💾 Save Watch",
						Style:    discordgo.SuccessButton,
						CustomID: "confirm_watch|" + stagedPatternID + "|Manual",
					},
					discordgo.Button{
						Label:    "❌ Cancel",
						Style:    discordgo.DangerButton,
						CustomID: "cancel_watch|" + stagedPatternID + "|Manual",
					},
				},
			},
		}
		client.SendFollowupEmbedWithComponents(i, embed, components)
		return
	}
	client.SendFollowupMessage(i, "⚠️ System error while saving watch pattern.")
}
