package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/souqtech-inc/souqtech-engine/pkg/adapters/amazon"
	"github.com/souqtech-inc/souqtech-engine/pkg/adapters/serper"
	"github.com/souqtech-inc/souqtech-engine/pkg/adapters/shopping"
	"github.com/souqtech-inc/souqtech-engine/pkg/cache"
	"github.com/souqtech-inc/souqtech-engine/pkg/config"
	"github.com/souqtech-inc/souqtech-engine/pkg/database"
	"github.com/souqtech-inc/souqtech-engine/pkg/handlers"
	"github.com/souqtech-inc/souqtech-engine/pkg/llm"
	"github.com/souqtech-inc/souqtech-engine/pkg/logging"
	"github.com/souqtech-inc/souqtech-engine/pkg/middleware"
	"github.com/souqtech-inc/souqtech-engine/pkg/repositories"
	"github.com/souqtech-inc/souqtech-engine/pkg/retry"
	"github.com/souqtech-inc/souqtech-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("llm_configured", cfg.Anthropic.IsConfigured()),
		zap.Bool("image_search_configured", cfg.Serper.IsConfigured()),
		zap.Bool("product_api_configured", cfg.Amazon.IsConfigured()),
		zap.Bool("database_configured", cfg.Database.IsConfigured()))

	ctx := context.Background()

	db := connectDatabase(ctx, cfg, logger)
	if db != nil {
		defer db.Close()
	}

	// An unset API key soft-disables the assistant: queries still work and
	// return a setup diagnostic instead of failing.
	var llmClient llm.LLMClient
	if cfg.Anthropic.IsConfigured() {
		client, err := llm.NewClient(&llm.Config{
			APIKey:      cfg.Anthropic.APIKey,
			Model:       cfg.Anthropic.Model,
			MaxTokens:   cfg.Anthropic.MaxTokens,
			Temperature: cfg.Anthropic.Temperature,
		}, logger)
		if err != nil {
			log.Fatalf("Failed to create LLM client: %v", err)
		}
		llmClient = client
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set; queries will return a setup diagnostic")
	}

	serperClient := serper.NewClient(&serper.Config{
		APIKey:  cfg.Serper.APIKey,
		BaseURL: cfg.Serper.BaseURL,
	}, logger)

	amazonClient := amazon.NewClient(&amazon.Config{
		AccessKey:   cfg.Amazon.AccessKey,
		SecretKey:   cfg.Amazon.SecretKey,
		PartnerTag:  cfg.Amazon.PartnerTag,
		Host:        cfg.Amazon.Host,
		Region:      cfg.Amazon.Region,
		Marketplace: cfg.Amazon.Marketplace,
	}, logger)

	conversationRepo := repositories.NewConversationRepository(db)
	clickRepo := repositories.NewClickRepository(db)
	affiliateRepo := repositories.NewAffiliateRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	affiliateCache := cache.NewAffiliateCache(affiliateRepo,
		time.Duration(cfg.Cache.TTLHours)*time.Hour, logger)

	orchestrator := services.NewOrchestrator(services.Deps{
		LLMClient:     llmClient,
		Images:        serperClient,
		Prices:        serperClient,
		ProductAPI:    amazonClient,
		Shopping:      shopping.NewGenerator(cfg.Amazon.PartnerTag),
		Cache:         affiliateCache,
		Conversations: conversationRepo,
	}, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewSearchHandler(orchestrator, conversationRepo, logger).RegisterRoutes(mux)
	handlers.NewConversationHandler(conversationRepo, logger).RegisterRoutes(mux)
	handlers.NewClickHandler(clickRepo, logger).RegisterRoutes(mux)
	handlers.NewAnalyticsHandler(analyticsRepo, logger).RegisterRoutes(mux)
	handlers.NewStaticHandler(cfg.StaticDir).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger.Named("http"))(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting souqtech-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// connectDatabase connects and migrates when DATABASE_URL is set; otherwise
// the engine runs without persistence. Startup retries cover the window
// where the database container is still coming up.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) *database.DB {
	if !cfg.Database.IsConfigured() {
		logger.Warn("DATABASE_URL not set; running without persistence")
		return nil
	}

	var db *database.DB
	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		var err error
		db, err = database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.URL,
			MaxConnections: cfg.Database.MaxConnections,
		})
		return err
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}

	sqlDB, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to open migration connection",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations",
			zap.String("error", logging.SanitizeError(err)))
	}

	return db
}
