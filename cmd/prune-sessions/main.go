package main

import (
	"context"
	"fmt"
	"log"

	"github.com/blinkwall/blinkwall-api/internal/config"
	"github.com/blinkwall/blinkwall-api/internal/database"
)

// One-shot cleanup of expired sessions, for running from cron alongside the
// hourly in-process sweep.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	result, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		log.Fatalf("Failed to prune sessions: %v", err)
	}

	fmt.Printf("Pruned %d expired session(s)\n", result.RowsAffected())
}
