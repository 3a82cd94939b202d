package processor

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bkellow/domainhawk/internal/ai"
	"github.com/bkellow/domainhawk/internal/auction"
	"github.com/bkellow/domainhawk/internal/discord"
	"github.com/bkellow/domainhawk/internal/logger"
	"github.com/bkellow/domainhawk/internal/store"
	"github.com/bkellow/domainhawk/internal/valuation"
)

// HandleCronSweep is the HTTP handler invoked by Cloud Scheduler.
func HandleCronSweep(w http.ResponseWriter, r *http.Request) {
	// Generate a simple request ID for the sweep run
	requestID := fmt.Sprintf("sweep-%d", time.Now().UnixNano())
	ctx := logger.WithRequestID(r.Context(), requestID)

	logger.Info(ctx, "Starting cron sweep pipeline")

	projectID := os.Getenv("GCP_PROJECT_ID")
	db, err := store.NewStore(ctx, projectID)
	if err != nil {
		logger.Error(ctx, "Failed to init db", "error", err)
		http.Error(w, "Failed to init db", http.StatusInternalServerError)
		return
	}
	defer db.Close()

	aiSvc, err := ai.NewAIClient(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		logger.Error(ctx, "Failed to init ai", "error", err)
		http.Error(w, "Failed to init ai", http.StatusInternalServerError)
		return
	}
	defer aiSvc.Close()

	feed := auction.NewClient(os.Getenv("AUCTION_FEED_URL"), os.Getenv("AUCTION_FEED_TOKEN"))
	discordClient := discord.NewClient(os.Getenv("DISCORD_BOT_TOKEN"))

	comps := valuation.NewCompCache(db, 0)
	anchorer := valuation.NewAnchorer(comps)

	pipeline := NewPipeline(db, aiSvc, feed, discordClient, anchorer, comps)
	if err := pipeline.Run(ctx); err != nil {
		logger.Error(ctx, "Pipeline failed", "error", err)
		http.Error(w, "Pipeline failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("✅ Sweep complete."))
}
