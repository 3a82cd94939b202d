package discord

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/bkellow/domainhawk/internal/logger"
)

// session exists purely so discordgo struct definitions are usable in webhook
// mode; it never opens a websocket.
var (
	session       *discordgo.Session
	globalLimiter = NewRateLimiter()
)

func init() {
	var err error
	session, err = discordgo.New("")
	if err != nil {
		log.Fatalf("Error creating discord session for types: %v", err)
	}
}

// publicKey loads and decodes the app's ed25519 verification key from the
// environment.
func publicKey() (ed25519.PublicKey, error) {
	raw := os.Getenv("DISCORD_PUBLIC_KEY")
	if raw == "" {
		return nil, fmt.Errorf("DISCORD_PUBLIC_KEY is not set")
	}

	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key has wrong length %d", len(decoded))
	}

	return ed25519.PublicKey(decoded), nil
}

// interactionUserID digs the acting user out of the payload. Guild
// interactions carry a Member, DM interactions a bare User.
func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// HandleInteraction is the webhook endpoint Discord hits for every slash
// command, button click, and modal submit. Signature verification comes
// first; an unverified request never reaches a handler.
func HandleInteraction(w http.ResponseWriter, r *http.Request) {
	key, err := publicKey()
	if err != nil {
		log.Printf("Interaction key error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !discordgo.VerifyInteraction(r, key) {
		log.Println("Interaction verification failed")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// VerifyInteraction restores r.Body after reading it.
	var interaction discordgo.Interaction
	if err := json.NewDecoder(r.Body).Decode(&interaction); err != nil {
		log.Printf("Error unmarshaling interaction: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Discord sends a PING during app setup and periodically afterward.
	if interaction.Type == discordgo.InteractionPing {
		writeJSON(w, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponsePong,
		})
		return
	}

	ctx := logger.WithRequestID(r.Context(), interaction.ID)

	userID := interactionUserID(&interaction)
	if userID != "" && !globalLimiter.Allow(userID) {
		logger.Warn(ctx, "Rate limit exceeded for user", "user_id", userID)
		respondError(w, "You are doing that too fast! Please wait a few seconds.")
		return
	}

	logger.Info(ctx, "Handling Discord interaction", "type", interaction.Type, "user", userID)

	routeInteraction(ctx, w, &interaction)
}

func routeInteraction(ctx context.Context, w http.ResponseWriter, i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		routeSlashCommand(ctx, w, i)
	case discordgo.InteractionMessageComponent:
		routeComponentInteraction(ctx, w, i)
	case discordgo.InteractionModalSubmit:
		routeModalSubmit(ctx, w, i)
	default:
		logger.Warn(ctx, "Unknown interaction type", "type", i.Type)
		http.Error(w, "Unknown Type", http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, resp discordgo.InteractionResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondError sends an ephemeral error message back to the user.
func respondError(w http.ResponseWriter, msg string) {
	writeJSON(w, discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("⚠️ Error: %s", msg),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
