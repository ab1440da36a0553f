package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracking/cmd"
	"tracking/internal/adapters/out/kafka"
	"tracking/internal/adapters/out/postgres"

	"github.com/facebookgo/clock"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	deps := cmd.Dependencies{
		Clock:   clock.New(),
		Chooser: newChooser(configs.SimulationSeed),
		Logger:  logger,
	}

	if configs.UsePostgres() {
		db, err := postgres.Open(configs.Postgres())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer closeDB(db, logger)
		deps.GormDB = db
	} else {
		logger.InfoContext(ctx, "DB_HOST is empty, keeping order history in memory")
	}

	if configs.UseKafka() {
		deps.KafkaWriter = kafka.NewWriter(configs.KafkaHost, configs.KafkaOrderChangedTopic)
	}

	app, err := cmd.NewCompositionRoot(configs, deps)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.ErrorContext(ctx, "Failed to close application", "error", closeErr)
		}
	}()

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.RunStream(gctx)
		return nil
	})
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server started", "port", configs.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newChooser seeds driver selection. A zero seed draws one from the clock.
func newChooser(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}
