package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cache "github.com/srgjo27/ticket_booking/internal/adapter/cache/redis"
	"github.com/srgjo27/ticket_booking/internal/adapter/handler"
	"github.com/srgjo27/ticket_booking/internal/adapter/middleware"
	"github.com/srgjo27/ticket_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/ticket_booking/internal/catalog"
	"github.com/srgjo27/ticket_booking/internal/core/services"
	"github.com/srgjo27/ticket_booking/internal/platform/config"
	"github.com/srgjo27/ticket_booking/internal/platform/database"
	"github.com/srgjo27/ticket_booking/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(logger.Config{Environment: cfg.App.Environment, Level: cfg.App.LogLevel})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed, err := catalog.Load(cfg.Catalog.SeedFile)
	if err != nil {
		return err
	}

	opts := []services.Option{
		services.WithLogger(log),
		services.WithPostCommitBuffer(cfg.Booking.PostCommitBuffer),
	}

	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		journal := postgres.NewBookingJournal(db)
		if err := journal.EnsureSchema(ctx); err != nil {
			return err
		}
		opts = append(opts, services.WithJournal(journal))
	}

	var createBookingMW []func(http.Handler) http.Handler

	if cfg.Redis.Enabled {
		log.Info("connecting to redis", zap.String("addr", cfg.Redis.Addr()))

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return err
		}
		log.Info("redis connected")

		opts = append(opts, services.WithAvailabilityMirror(cache.NewAvailabilityMirror(redisClient, cfg.Redis.AvailabilityTTL)))

		idem := middleware.DefaultIdempotencyConfig(redisClient)
		idem.TTL = cfg.Redis.IdempotencyTTL
		idem.Logger = log
		createBookingMW = append(createBookingMW, middleware.Idempotency(idem))
	}

	bookingService, err := services.NewBookingService(seed, opts...)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.Int("events", len(seed)))

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		bookingService.RunPostCommit(workerCtx)
	}()

	bookingHandler := handler.NewBookingHandler(bookingService, log)

	server := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: middleware.Chain(
			bookingHandler.Routes(createBookingMW...),
			middleware.RequestLogger(log),
			middleware.Recover(log),
		),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		cancelWorker()
		<-workerDone
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	cancelWorker()
	<-workerDone

	log.Info("server exiting")
	return nil
}
