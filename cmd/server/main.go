package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bkellow/domainhawk/internal/discord"
	"github.com/bkellow/domainhawk/internal/processor"
)

func main() {
	_ = godotenv.Load() // Load .env file if it exists (for local testing)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}

	// Setup Discord Interactions webhook handler
	http.HandleFunc("/interactions", discord.HandleInteraction)

	// Setup Cloud Scheduler endpoint for the auction sweep
	http.HandleFunc("/cron/sweep", processor.HandleCronSweep)

	log.Printf("Listening on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Fatal: %v", err)
	}
}
