package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/chemistry-web/internal/config"
	"github.com/stemsi/chemistry-web/internal/content"
	"github.com/stemsi/chemistry-web/internal/database"
	"github.com/stemsi/chemistry-web/internal/dataset"
	"github.com/stemsi/chemistry-web/internal/handler"
	"github.com/stemsi/chemistry-web/internal/logger"
	"github.com/stemsi/chemistry-web/internal/offline"
	"github.com/stemsi/chemistry-web/internal/repository"
	"github.com/stemsi/chemistry-web/internal/router"
	"github.com/stemsi/chemistry-web/internal/service"
	"github.com/stemsi/chemistry-web/internal/validator"
	"github.com/stemsi/chemistry-web/internal/worker"
	"github.com/stemsi/chemistry-web/web"
)

const offlineSweepInterval = 10 * time.Minute

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("library_source", cfg.LibrarySource).
		Msg("Starting Chemistry Web")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Static Datasets ───────────────────────────────────────────────
	if err := dataset.Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded datasets")
	}

	// ─── Connect to PostgreSQL (optional) ──────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	if pool != nil {
		defer pool.Close()
	}

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Web Assets ────────────────────────────────────────────────────
	assetsFS := web.FS(cfg.WebDir)
	tmpl, err := web.Templates(assetsFS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}
	swTmpl, err := web.ServiceWorker(assetsFS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse service worker")
	}
	staticFS, err := web.Static(assetsFS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open static assets")
	}

	pages := content.NewRenderer()
	n, err := pages.Load(assetsFS, "content", "faq")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render content pages")
	}
	log.Info().Int("pages", n).Msg("Content pages rendered")

	// ─── Library Source ────────────────────────────────────────────────
	var librarySource repository.LibrarySource
	if cfg.UsePostgresLibrary() {
		if pool == nil {
			log.Fatal().Msg("LIBRARY_SOURCE=postgres requires DATABASE_URL")
		}
		librarySource = repository.NewPostgresLibraryRepository(pool)
	} else {
		librarySource = repository.NewFileLibraryRepository(cfg.LibraryPath)
	}

	// ─── Offline Cache Store ───────────────────────────────────────────
	var store offline.Store = offline.NewMemoryStore()
	if rdb != nil {
		store = offline.NewRedisStore(rdb)
	}
	offlineCache := offline.NewCache(store, cfg.CacheVersion, dataset.PrecachePaths, dataset.OfflineFallbackPath, log)

	// ─── Initialize Services ──────────────────────────────────────────
	quizService := service.NewQuizService(dataset.Banks(), dataset.DefaultBankID, log)
	periodicService := service.NewPeriodicService(dataset.Elements())
	libraryService := service.NewLibraryService(librarySource, rdb, log)
	balancerService := service.NewBalancerService()

	factRotator := worker.NewFactRotator(dataset.Facts, cfg.FactInterval, rdb, log)

	// ─── Prewarm Library ──────────────────────────────────────────────
	// The catalog is fetched once before accepting traffic. A failure is
	// kept by the service and rendered as the inline error block.
	if err := libraryService.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("Library load failed")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Page:     handler.NewPageHandler(quizService, periodicService, libraryService, balancerService, pages, factRotator, offlineCache, swTmpl, log),
		Quiz:     handler.NewQuizHandler(quizService),
		WS:       handler.NewWSHandler(quizService, tmpl, log, cfg.AllowedOrigins),
		Periodic: handler.NewPeriodicHandler(periodicService),
		Library:  handler.NewLibraryHandler(libraryService, log),
		Equation: handler.NewEquationHandler(balancerService),
		Chrome:   handler.NewChromeHandler(factRotator, log),
		System:   handler.NewSystemHandler(rdb, pool, libraryService, offlineCache, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, handlers, router.Assets{Templates: tmpl, Static: staticFS}, offlineCache, cfg, log)

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	offlineWorker := worker.NewOfflineWorker(offlineCache, offline.HandlerFetcher(r), offlineSweepInterval, log)

	go factRotator.Start(workerCtx)
	go offlineWorker.Start(workerCtx)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop the workers first so open fact streams see their channel
	// close and return, then stop accepting new HTTP requests (5s timeout).
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
