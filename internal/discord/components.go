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
)

// manualEntryModal builds the watch entry form. editCount is carried in the
// modal custom ID so repeated invalid submissions can be capped.
func manualEntryModal(editCount string) discordgo.InteractionResponse {
	customID := "modal_watch_wizard_manual"
	if editCount != "" {
		customID += "|" + editCount
	}

	return discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: customID,
			Title:    "Manual Watch Entry",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  "text_title",
							Label:     "Name your watch (e.g., Short crypto names)",
							Style:     discordgo.TextInputShort,
							Required:  true,
							MaxLength: 50,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "text_pattern",
							Label:       "Regex (matched against name without TLD)",
							Style:       discordgo.TextInputShort,
							Placeholder: "^crypto",
							Required:    true,
							MaxLength:   200,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "text_tld",
							Label:       "TLD filter (optional, e.g. com)",
							Style:       discordgo.TextInputShort,
							Placeholder: "com",
							Required:    false,
							MaxLength:   10,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "text_max_price",
							Label:       "Max price in USD (optional)",
							Style:       discordgo.TextInputShort,
							Placeholder: "500",
							Required:    false,
							MaxLength:   10,
						},
					},
				},
			},
		},
	}
}

// routeComponentInteraction handles Button Clicks (Confirm/Cancel staged patterns, Delete Watches).
func routeComponentInteraction(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	data := i.MessageComponentData()
	parts := strings.Split(data.CustomID, "|")
	action := parts[0]

	db, err := store.NewStore(ctx, os.Getenv("GCP_PROJECT_ID"))
	if err != nil {
		respondError(w, "Database connection failed")
		return
	}
	defer db.Close()

	switch action {
	case "wizard_ai":
		writeJSON(w, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID: "modal_watch_wizard_ai",
				Title:    "Setup a Domain Watch",
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{
						Components: []discordgo.MessageComponent{
							discordgo.TextInput{
								CustomID:    "text_query",
								Label:       "What domains are you looking for?",
								Style:       discordgo.TextInputParagraph,
								Placeholder: "e.g. Short .com names starting with 'pay', under $300",
								Required:    true,
								MaxLength:   300,
							},
						},
					},
				},
			},
		})

	case "wizard_manual":
		// Pop the manual entry modal
		writeJSON(w, manualEntryModal(""))

	case "confirm_watch": // The pattern was already saved to DB in processAIWizard, so confirming just updates the UI.
		writeJSON(w, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "✨ **Watch Saved Successfully!**",
				Embeds:     nil,                            // Clear the embed
				Components: []discordgo.MessageComponent{}, // Clear the buttons
			},
		})

	case "cancel_watch":
		if len(parts) > 1 {
			db.DeletePattern(ctx, parts[1])
		}

		writeJSON(w, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "🚫 **Watch Cancelled.**",
				Embeds:     nil,
				Components: []discordgo.MessageComponent{},
			},
		})

	case "cancel_watch_creation":
		writeJSON(w, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "🚫 **Watch Creation Cancelled.**",
				Embeds:     nil,
				Components: []discordgo.MessageComponent{},
			},
		})

	case "edit_watch":
		editCount := "1"
		if len(parts) > 2 {
			editCount = parts[2]
		}
		writeJSON(w, manualEntryModal(editCount))

	case "delete_watch":
		if len(parts) > 1 {
			db.DeletePattern(ctx, parts[1])
		}
		// When they delete a watch from the list, update the message to basically just say "Deleted."
		writeJSON(w, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "🗑️ Watch removed.",
				Embeds:     i.Message.Embeds,
				Components: []discordgo.MessageComponent{},
			},
		})

	case "delete_all_watches":
		db.DeleteAllUserPatterns(ctx, i.GuildID, i.Member.User.ID)
		writeJSON(w, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "🚨 **All your watches on this server have been deleted.**",
				Embeds:     nil,
				Components: []discordgo.MessageComponent{},
			},
		})
	default:
		respondError(w, "Unknown component action")
	}
}

// handleWatchList fetches a user's patterns and displays them with inline delete buttons.
func handleWatchList(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	db, err := store.NewStore(ctx, os.Getenv("GCP_PROJECT_ID"))
	if err != nil {
		respondError(w, "Database connection error.")
		return
	}
	defer db.Close()

	userID := i.Member.User.ID
	if userID == "" {
		respondError(w, "Could not identify user.")
		return
	}

	patterns, err := db.GetUserPatterns(ctx, i.GuildID, userID)
	if err != nil {
		log.Printf("Error fetching user patterns for user %s: %v", userID, err)
		respondError(w, "Failed to load watches.")
		return
	}

	if len(patterns) == 0 {
		writeJSON(w, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "You don't have any active watches setup for this server.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}

	var rows []discordgo.MessageComponent
	desc := ""

	// We can only put 5 buttons per ActionRow, and max 5 ActionRows per message.
	// So we can show max 5 watches easily in one message. (We'll cap at 4 so we have room for Delete All).
	for idx, p := range patterns {
		if idx >= 4 {
			desc += "\n*...and more.*"
			break
		}

		label := p.Description
		if label == "" {
			label = p.Pattern
		}
		desc += fmt.Sprintf("**Watch #%d:** \"%s\" `%s`", idx+1, label, p.Pattern)
		if p.TLDFilter != "" {
			desc += fmt.Sprintf(" (`.%s` only)", p.TLDFilter)
		}
		if p.MaxPrice > 0 {
			desc += fmt.Sprintf(" (max $%.0f)", p.MaxPrice)
		}
		desc += "\n"

		btnRow := discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    fmt.Sprintf("🗑️ Delete #%d", idx+1),
					Style:    discordgo.SecondaryButton,
					CustomID: "delete_watch|" + p.ID,
				},
			},
		}
		rows = append(rows, btnRow)
	}

	// Add Delete All button at the end
	rows = append(rows, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "🚨 Delete All",
				Style:    discordgo.DangerButton,
				CustomID: "delete_all_watches|",
			},
		},
	})

	embed := &discordgo.MessageEmbed{
		Title:       "📋 Your Active Watches",
		Description: desc,
		Color:       0x00B0F4,
	}

	writeJSON(w, discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: rows,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}
