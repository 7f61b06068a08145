package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/statushub-dev/statushub/db"
	"github.com/statushub-dev/statushub/internal/auth"
	"github.com/statushub-dev/statushub/internal/config"
	"github.com/statushub-dev/statushub/internal/incident"
	"github.com/statushub-dev/statushub/internal/notify"
	"github.com/statushub-dev/statushub/internal/overview"
	"github.com/statushub-dev/statushub/internal/refresher"
	"github.com/statushub-dev/statushub/internal/router"
	"github.com/statushub-dev/statushub/internal/status"
	"github.com/statushub-dev/statushub/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	conn, err := db.ConnectDatabase(cfg.DatabaseDSN)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)

	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	hub := ws.NewHub(cfg.AllowedOrigins)
	mailer := notify.NewSMTPMailer(cfg)
	notifier := notify.NewNotifier(conn, hub, mailer)

	statusEngine := status.NewEngine(conn, notifier)
	incidentEngine := incident.NewEngine(conn)
	view := overview.NewView(conn)

	uptimeRefresher := refresher.New(conn, statusEngine, cfg.UptimeRefreshInterval)
	uptimeRefresher.Start()
	defer uptimeRefresher.Stop()

	r := router.NewRouter(router.Deps{
		DB:        conn,
		Config:    cfg,
		Tokens:    tokens,
		Status:    statusEngine,
		Incidents: incidentEngine,
		View:      view,
		Hub:       hub,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
