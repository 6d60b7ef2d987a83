package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"papertrail/internal/auth"
	"papertrail/internal/config"
	"papertrail/internal/genai"
	genaiAnthropic "papertrail/internal/genai/anthropic"
	genaiScripted "papertrail/internal/genai/scripted"
	"papertrail/internal/handler"
	"papertrail/internal/middleware"
	"papertrail/internal/repository/postgres"
	repoS3 "papertrail/internal/repository/s3"
	"papertrail/internal/service/analysis"
	"papertrail/internal/service/document"
	"papertrail/internal/service/mailbox"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)

	objectStore, err := repoS3.NewStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create object store: %v", err)
	}

	// Setup generative provider
	client, err := genai.Setup(cfg, map[string]genai.ProviderFactory{
		"anthropic": func(cfg *config.Config) (genai.Client, error) {
			return genaiAnthropic.NewProvider(cfg.AnthropicAPIKey)
		},
		"scripted": func(cfg *config.Config) (genai.Client, error) {
			return genaiScripted.NewProvider(), nil
		},
	}, logger)
	if err != nil {
		log.Fatalf("Failed to setup generative provider: %v", err)
	}

	// Create services
	analysisService := analysis.NewService(client, cfg, time.Now, logger)
	mailboxService := mailbox.NewService(docRepo, logger)
	documentService := document.NewService(docRepo, objectStore, mailboxService, logger)

	// Create handlers
	analyzeHandler := handler.NewAnalyzeHandler(analysisService, logger)
	documentHandler := handler.NewDocumentHandler(documentService, logger)
	mailboxHandler := handler.NewMailboxHandler(mailboxService, logger)
	healthHandler := handler.NewHealthHandler()

	logger.Info("services initialized", "provider", client.Name())

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.HealthCheck)

	// Analysis route
	mux.HandleFunc("POST /api/documents/analyze", analyzeHandler.Analyze)

	// Document routes
	mux.HandleFunc("POST /api/documents", documentHandler.SaveDocument)
	mux.HandleFunc("GET /api/documents", documentHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", documentHandler.GetDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", documentHandler.DeleteDocument)

	// Mailbox routes
	mux.HandleFunc("GET /api/mailbox/tree", mailboxHandler.GetTree)
	mux.HandleFunc("GET /api/mailbox/columns", mailboxHandler.GetColumns)
	mux.HandleFunc("GET /api/events/upcoming", mailboxHandler.GetUpcomingEvents)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
