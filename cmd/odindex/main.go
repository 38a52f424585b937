package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/od_index/internal/app"
	"github.com/Freeeeeet/od_index/internal/config"
	"github.com/Freeeeeet/od_index/internal/controller"
	"github.com/Freeeeeet/od_index/internal/directory"
	"github.com/Freeeeeet/od_index/internal/repository"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting OD request index",
		zap.String("environment", cfg.Environment),
		zap.Bool("bot_enabled", cfg.BotEnabled()))

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		return err
	}

	dir := directory.New(repository.NewStore(pool), directory.Config{
		WindowCapacity:   cfg.WindowCapacity,
		BootstrapTimeout: cfg.BootstrapTimeout,
		LoadConcurrency:  cfg.LoadConcurrency,
	}, logger)

	if err := dir.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap directory: %w", err)
	}
	for _, d := range dir.Degraded() {
		logger.Warn("Owner served with empty history", zap.String("student_id", d.StudentID), zap.Error(d.Err))
	}

	reloader := app.NewReloader(dir, cfg.HolderReloadInterval, logger)
	reloader.Start(ctx)
	defer reloader.Stop()

	if !cfg.BotEnabled() {
		logger.Info("TELEGRAM_TOKEN not set, running without bot")
		<-ctx.Done()
		return nil
	}

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(botInstance, dir, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return err
	}

	return botController.Start(ctx)
}
