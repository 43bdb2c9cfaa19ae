package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yokuflik/price-tracker/internal/infrastructure/amadeus"
	"github.com/yokuflik/price-tracker/internal/infrastructure/cache"
	"github.com/yokuflik/price-tracker/internal/infrastructure/config"
	"github.com/yokuflik/price-tracker/internal/infrastructure/oauth"
	"github.com/yokuflik/price-tracker/internal/infrastructure/persistence"
	"github.com/yokuflik/price-tracker/internal/interface/repository"
	"github.com/yokuflik/price-tracker/internal/usecase"
	"github.com/yokuflik/price-tracker/pkg/logger"
	"github.com/yokuflik/price-tracker/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting flight price tracker")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracked flights and users live in PostgreSQL
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Flight history archive lives in MongoDB
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	flightRepo := repository.NewGormFlightRepository(gormDB, log)
	historyRepo := repository.NewMongoHistoryRepository(db)

	// Set up the Gmail notifier
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	notifier, err := repository.NewGmailNotifier(ctx, gmailOAuth.GetTokenSource(ctx), flightRepo, cfg.NotifyFrom, log)
	if err != nil {
		log.Fatal("Failed to create Gmail notifier", "error", err)
	}

	// Set up the provider client with its token and response caches
	m := metrics.NewMetrics("price_tracker")
	providerHTTP := &http.Client{Timeout: cfg.ProviderTimeout}
	tokens := amadeus.NewTokenCache(cfg.AmadeusTokenURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.TokenTTL, providerHTTP, log)
	offerCache := cache.NewOfferCache(cfg.OfferCacheTTL, cfg.OfferCacheCapacity)
	searchClient := amadeus.NewClient(cfg.AmadeusSearchURL, tokens, offerCache, cfg.MaxResults, providerHTTP, log, m)

	expander := usecase.NewSearchExpander(searchClient, log)
	reconciler := usecase.NewPriceReconciler(flightRepo, historyRepo, notifier, expander, cfg.WorkerCount, log, m)

	// Run the reconciliation job on a fixed interval. Cycles run on this
	// goroutine so shutdown can join it; a tick that fires mid-cycle is
	// coalesced by the ticker, and reconcileDone closes once the in-flight
	// cycle has finished its writes.
	reconcileDone := make(chan struct{})
	go func() {
		defer close(reconcileDone)

		reconciler.RunCycle(ctx)

		ticker := time.NewTicker(cfg.ReconcileInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Reconciliation job stopped")
				return
			case <-ticker.C:
				reconciler.RunCycle(ctx)
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Stop feeding the reconciler; in-flight flights finish
	<-reconcileDone

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flight price tracker stopped")
}
