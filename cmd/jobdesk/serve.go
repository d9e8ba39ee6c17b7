package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/auth"
	"github.com/dangerclosesec/jobdesk/internal/config"
	"github.com/dangerclosesec/jobdesk/internal/handler"
	"github.com/dangerclosesec/jobdesk/internal/middleware"
	"github.com/dangerclosesec/jobdesk/internal/repository"
	"github.com/dangerclosesec/jobdesk/internal/service"
	"github.com/dangerclosesec/jobdesk/internal/session"
	"github.com/dangerclosesec/jobdesk/internal/validation"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
)

// lockTTL bounds how long a publish or draft save may hold its session.
const lockTTL = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the authoring API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	logger := slog.Default()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	opportunityRepo := repository.NewOpportunityRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	auditLogRepo := repository.NewPostingAuditLogRepository(db)

	// Session storage
	sessions, closeSessions, err := setupSessions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setting up sessions: %w", err)
	}
	defer closeSessions()

	// Initialize cache service
	cacheService := service.NewCacheService(service.CacheConfig{
		TTL:         cfg.Cache.TTL,
		CleanupFreq: cfg.Cache.CleanupFreq,
	})
	defer cacheService.Close()

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize services
	companyResolver := service.NewCompanyResolver(companyRepo, cacheService)
	auditLogService := service.NewPostingAuditLogService(auditLogRepo)
	postingService := service.NewPostingService(
		sessions,
		companyResolver,
		service.NewRecordLoader(opportunityRepo, companyResolver),
		service.NewGateway(opportunityRepo),
		validation.New(),
		auditLogService,
	)

	// Initialize handlers
	postingHandler := handler.NewPostingHandler(postingService)
	companyHandler := handler.NewCompanyHandler(companyResolver)
	auditLogHandler := handler.NewAuditLogHandler(auditLogService)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))
		r.Use(middleware.AuthMiddleware(tokenManager))

		r.Route("/postings", func(r chi.Router) {
			r.Route("/sessions", postingHandler.Routes)
			r.Get("/{id}/audit", auditLogHandler.ForOpportunity)
		})
		r.Get("/companies/mine", companyHandler.Mine)
		r.Route("/audit-logs", func(r chi.Router) {
			r.Get("/", auditLogHandler.GetAuditLogs)
			r.Get("/{id}", auditLogHandler.GetAuditLogByID)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// setupSessions picks Redis when a URL is configured and falls back to an
// in-process store otherwise.
func setupSessions(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Redis.URL == "" {
		slog.Warn("REDIS_URL not set, keeping sessions in memory")
		return session.NewMemoryStore(cfg.Session.TTL, lockTTL), func() {}, nil
	}

	client, err := session.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			slog.Warn("closing redis client", "error", err)
		}
	}
	return session.NewRedisStore(client, cfg.Session.TTL, lockTTL), closeFn, nil
}
