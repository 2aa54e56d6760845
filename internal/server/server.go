// Package server is the composition root: it opens the database, builds the
// renderer, artifact store and mailer, wires the services and handlers, and
// owns the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tlind/coachdesk/internal/auth"
	"github.com/tlind/coachdesk/internal/handler"
	"github.com/tlind/coachdesk/internal/mail"
	"github.com/tlind/coachdesk/internal/middleware"
	"github.com/tlind/coachdesk/internal/render"
	sqliteRepo "github.com/tlind/coachdesk/internal/repository/sqlite"
	"github.com/tlind/coachdesk/internal/service"
	"github.com/tlind/coachdesk/internal/storage"
)

// Config carries everything the server needs from the environment.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	S3   storage.S3Config
	SMTP mail.SMTPConfig

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency graph. Construction is fail-fast: a bad
// JWT secret or storage config stops the process before it accepts traffic.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return err
	}

	store, err := storage.NewS3Store(s.config.S3, s.logger)
	if err != nil {
		return err
	}

	sender, err := mail.NewSMTPSender(s.config.SMTP)
	if err != nil {
		return err
	}

	google := auth.NewGoogleProvider(
		s.config.GoogleClientID,
		s.config.GoogleClientSecret,
		s.config.GoogleCallbackURL,
	)

	notifier := mail.NewPlanNotifier(store, sender, s.logger)
	renderer := render.NewPDFRenderer()

	authSvc := service.NewAuthService(s.db, tokens, auth.NewPasswordService(), s.logger)
	clientSvc := service.NewClientService(s.db, s.logger)
	contentSvc := service.NewContentService(s.db, s.logger)
	settingsSvc := service.NewSettingsService(s.db, s.logger)
	planSvc := service.NewPlanService(s.db, s.db, s.db, renderer, store, notifier, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, google, s.logger)
	clientHandler := handler.NewClientHandler(clientSvc)
	contentHandler := handler.NewContentHandler(contentSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	planHandler := handler.NewPlanHandler(planSvc)

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public: session establishment.
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/google", authHandler.HandleGoogleLogin)
		r.Get("/auth/google/callback", authHandler.HandleGoogleCallback)

		// Everything else requires a session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Post("/clients", clientHandler.HandleCreate)
			r.Get("/clients", clientHandler.HandleList)
			r.Get("/clients/{id}", clientHandler.HandleGet)
			r.Put("/clients/{id}", clientHandler.HandleUpdate)
			r.Delete("/clients/{id}", clientHandler.HandleDelete)

			r.Post("/clients/{id}/plans/{kind}", planHandler.HandleGenerate)
			r.Get("/clients/{id}/plans/{kind}", planHandler.HandleStatus)
			r.Post("/clients/{id}/plans/{kind}/send", planHandler.HandleSend)
			r.Get("/clients/{id}/plans/{kind}/download", planHandler.HandleDownload)

			r.Post("/meals", contentHandler.HandleCreateMeal)
			r.Get("/meals", contentHandler.HandleListMeals)
			r.Get("/meals/{id}", contentHandler.HandleGetMeal)
			r.Put("/meals/{id}", contentHandler.HandleUpdateMeal)
			r.Delete("/meals/{id}", contentHandler.HandleDeleteMeal)

			r.Post("/exercises", contentHandler.HandleCreateExercise)
			r.Get("/exercises", contentHandler.HandleListExercises)
			r.Get("/exercises/{id}", contentHandler.HandleGetExercise)
			r.Put("/exercises/{id}", contentHandler.HandleUpdateExercise)
			r.Delete("/exercises/{id}", contentHandler.HandleDeleteExercise)

			r.Get("/settings/branding", settingsHandler.HandleGetBranding)
			r.Put("/settings/branding", settingsHandler.HandleUpdateBranding)
			r.Put("/settings/subscription", settingsHandler.HandleUpdateSubscription)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.Int("port", s.config.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
