package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blinkwall/blinkwall-api/internal/config"
	"github.com/blinkwall/blinkwall-api/internal/database"
	"github.com/blinkwall/blinkwall-api/internal/handlers"
	authmw "github.com/blinkwall/blinkwall-api/internal/middleware"
	"github.com/blinkwall/blinkwall-api/internal/oauth"
	"github.com/blinkwall/blinkwall-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

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

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userService := services.NewUserService(db, cfg.AllowedEmailDomain)
	noteService := services.NewNoteService(db)
	sessionService := services.NewSessionService(db, cfg.SessionExpiry)

	google := oauth.NewGoogleProvider(cfg.Google)

	authHandler := handlers.NewAuthHandler(cfg, google, userService, sessionService)
	profileHandler := handlers.NewProfileHandler(userService)
	noteHandler := handlers.NewNoteHandler(noteService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/google", authHandler.Login)
	auth.Get("/google/callback", authHandler.Callback)
	auth.Post("/logout", authHandler.Logout)

	// Everything below needs a live session resolvable to a user.
	protected := api.Group("")
	protected.Use(authmw.Auth(sessionService, userService))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Post("/profile", profileHandler.Complete)

	protected.Get("/notes", noteHandler.List)
	protected.Delete("/notes/:id", noteHandler.Delete)

	// Posting additionally requires a completed profile.
	posting := api.Group("")
	posting.Use(authmw.Auth(sessionService, userService))
	posting.Use(authmw.RequireProfile())

	posting.Post("/notes", noteHandler.Create)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = sessionService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
