package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"tradejournal/configs"
	"tradejournal/internal/adapter"
	"tradejournal/internal/database"
	delivery "tradejournal/internal/delivery/http"
	"tradejournal/internal/domain"
	"tradejournal/internal/infra"
	"tradejournal/internal/repository"
	"tradejournal/internal/service"
	"tradejournal/internal/usecase"
	"tradejournal/web"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	ctx := context.Background()

	// Initialize repositories
	settingsRepo := repository.NewFileSettingsRepository(cfg.Storage.SettingsPath, cfg.IsCloud)
	userRepo := repository.NewFileUserRepository(filepath.Join(cfg.Storage.DataDir, "users.json"))

	entryStore, cleanup, err := buildEntryStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize entry store: %v", err)
	}
	defer cleanup()

	// Initialize services
	marketService := service.NewMarketService(time.Duration(cfg.Market.CacheTTLSeconds) * time.Second)
	assistant := adapter.NewAnthropicClient(cfg.Anthropic.BaseURL, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	uploader := adapter.NewCloudinaryClient("")

	journalService := usecase.NewJournalService(assistant, marketService, settingsRepo, entryStore)

	// Background market refresh keeps the ticker warm
	scheduler := infra.NewScheduler(marketService, cfg.Market.RefreshSpec)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	e.Renderer = renderer

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		Auth:            cfg.Auth,
		WebHandler:      delivery.NewWebHandler(cfg.Auth),
		AuthHandler:     delivery.NewAuthHandler(userRepo, cfg.Auth),
		JournalHandler:  delivery.NewJournalHandler(journalService, cfg.Storage.Backend),
		MarketHandler:   delivery.NewMarketHandler(marketService),
		SettingsHandler: delivery.NewSettingsHandler(settingsRepo, cfg.IsCloud),
		ImageHandler:    delivery.NewImageHandler(uploader, settingsRepo),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Trading Journal starting on %s", addr)
	log.Printf("Environment: %s", cfg.Server.Env)
	log.Printf("Storage backend: %s", cfg.Storage.Backend)
	if cfg.Auth.MultiUser() {
		log.Println("Auth: invite-code registration")
	} else if cfg.Auth.Enabled() {
		log.Println("Auth: shared password (legacy)")
	} else {
		log.Println("Auth: disabled, running as default user")
	}

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// buildEntryStore selects the entry store for the configured backend. The
// returned cleanup closes backend resources on shutdown.
func buildEntryStore(ctx context.Context, cfg *configs.Config) (domain.EntryStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case configs.BackendPostgres:
		db, err := infra.NewDatabase(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return repository.NewPGEntryStore(db), db.Close, nil

	case configs.BackendDocument:
		return repository.NewDocEntryStore(cfg.Storage.JournalPath), noop, nil

	case configs.BackendJSON:
		return repository.NewJSONEntryStore(cfg.Storage.DataDir), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
