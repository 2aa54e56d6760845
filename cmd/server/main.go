// Command server runs the coaching API.
//
// Configuration is read from the environment:
//
//	PORT                  listen port (default 8080)
//	DB_PATH               SQLite database file (default data/coachdesk.db)
//	JWT_SECRET            session signing secret, required
//	S3_ENDPOINT           artifact store base URL, required
//	S3_REGION             artifact store region (default us-east-1)
//	S3_BUCKET             artifact bucket (default plans)
//	S3_ACCESS_KEY         artifact store credentials
//	S3_SECRET_KEY         artifact store credentials
//	SMTP_HOST             outbound mail relay, required
//	SMTP_PORT             relay port (default 587)
//	SMTP_USERNAME         relay credentials
//	SMTP_PASSWORD         relay credentials
//	SMTP_FROM             sender address shown to clients
//	GOOGLE_CLIENT_ID      Google sign-in credentials (optional)
//	GOOGLE_CLIENT_SECRET  Google sign-in credentials (optional)
//	GOOGLE_CALLBACK_URL   OAuth redirect URI (default derived from PORT)
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tlind/coachdesk/internal/mail"
	"github.com/tlind/coachdesk/internal/server"
	"github.com/tlind/coachdesk/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logger.Error("creating database directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("starting server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadConfig() (server.Config, error) {
	cfg := server.Config{
		Port:      envInt("PORT", 8080),
		DBPath:    envStr("DB_PATH", "data/coachdesk.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		S3: storage.S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    envStr("S3_REGION", "us-east-1"),
			Bucket:    envStr("S3_BUCKET", "plans"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
		SMTP: mail.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoogleCallbackURL == "" {
		cfg.GoogleCallbackURL = fmt.Sprintf("http://localhost:%d/api/auth/google/callback", cfg.Port)
	}

	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
