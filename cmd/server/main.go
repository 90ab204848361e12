package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"gymdesk/internal/adapters/backend"
	emailPkg "gymdesk/internal/adapters/email"
	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/storage"
	settingsStore "gymdesk/internal/adapters/storage/settings"
	"gymdesk/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	setupLogging()

	// Local settings database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("GYMDESK_DB", "gymdesk.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Query instrumentation wraps the raw handle
	timedDB := storage.NewTimedDB(db)
	settings := settingsStore.NewSQLiteStore(timedDB)

	ctx := context.Background()

	// Restore persisted panel state: theme and backend token
	holder := orchestrators.LoadTheme(ctx, settings)
	gate := orchestrators.RestoreSession(ctx, settings)

	apiBase := envOrDefault("GYMDESK_API_BASE_URL", "http://localhost:5000")
	client := backend.NewClient(apiBase, gate)

	// Configure email sender for report delivery
	reportFrom := envOrDefault("GYMDESK_REPORT_FROM", "GymDesk <reports@gymdesk.local>")
	var sender emailPkg.Sender
	if resendKey := os.Getenv("GYMDESK_RESEND_KEY"); resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, reportFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("GYMDESK_ENV") == "production" {
			log.Println("WARNING: GYMDESK_RESEND_KEY is not set — report email is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set GYMDESK_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux("static", &web.Ports{
		Backend:    client,
		Settings:   settings,
		Theme:      holder,
		Gate:       gate,
		Sender:     sender,
		ReportFrom: reportFrom,
	})

	addr := envOrDefault("GYMDESK_ADDR", ":8080")
	log.Printf("GymDesk %s starting on %s (env=%s, api=%s)", version, addr, envOrDefault("GYMDESK_ENV", "development"), apiBase)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// setupLogging installs a text slog handler. GYMDESK_LOG_LEVEL accepts
// debug, info, warn, or error; anything else means info.
func setupLogging() {
	level := slog.LevelInfo
	switch os.Getenv("GYMDESK_LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
