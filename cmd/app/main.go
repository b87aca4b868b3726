package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/squad-arena/pkg/api"
	"github.com/chris/squad-arena/pkg/config"
	"github.com/chris/squad-arena/pkg/handlers"
	"github.com/chris/squad-arena/pkg/handlers/respond"
	"github.com/chris/squad-arena/pkg/ledger"
	"github.com/chris/squad-arena/pkg/matches"
	"github.com/chris/squad-arena/pkg/middleware"
	"github.com/chris/squad-arena/pkg/notify"
	"github.com/chris/squad-arena/pkg/scheduler"
	"github.com/chris/squad-arena/pkg/storage"
	dydbstore "github.com/chris/squad-arena/pkg/storage/dynamodb"
	"github.com/chris/squad-arena/pkg/storage/memory"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage and notifications
	var store storage.Storage
	var publisher notify.Publisher

	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store = memory.New()
	default:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.WalletsTable, cfg.TransactionsTable, cfg.MatchesTable)

		if cfg.NotifyQueueURL != "" {
			publisher = notify.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.NotifyQueueURL)
		}
	}

	ledgerService := ledger.NewService(store, publisher)
	engine := matches.NewEngine(store, ledgerService, publisher, matches.Config{CompleteAfter: cfg.MatchCompleteAfter})

	// Periodic jobs
	jobs := []scheduler.Job{scheduler.StatusJob(cfg.AutoStatusInterval, engine.AutoUpdateStatuses)}
	if cfg.Storage == config.StorageMemory {
		// No reconciliation lambda runs against the in-memory store.
		jobs = append(jobs, scheduler.StaleDepositJob(cfg.AutoStatusInterval, cfg.StaleDepositAge, ledgerService.FailStaleDeposits))
	}
	sched, err := scheduler.Start(ctx, jobs...)
	if err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Shutdown()

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx, time.Minute)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(limiter.Middleware)
	router.Use(middleware.Identity)

	api.HandlerWithOptions(handlers.NewApiHandler(ledgerService, engine), api.ChiServerOptions{
		BaseRouter:       router,
		ErrorHandlerFunc: respond.ParamError,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.HTTPPort, "storage", cfg.Storage)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
