package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/nataliaSk777/tochka-opory/internal/cache"
	"github.com/nataliaSk777/tochka-opory/internal/config"
	"github.com/nataliaSk777/tochka-opory/internal/delivery"
	"github.com/nataliaSk777/tochka-opory/internal/guided"
	"github.com/nataliaSk777/tochka-opory/internal/handlers"
	"github.com/nataliaSk777/tochka-opory/internal/httpserver"
	"github.com/nataliaSk777/tochka-opory/internal/logging"
	"github.com/nataliaSk777/tochka-opory/internal/metrics"
	"github.com/nataliaSk777/tochka-opory/internal/payments"
	"github.com/nataliaSk777/tochka-opory/internal/scheduler"
	"github.com/nataliaSk777/tochka-opory/internal/session"
	"github.com/nataliaSk777/tochka-opory/internal/storage"
	"github.com/nataliaSk777/tochka-opory/internal/support"
	"github.com/nataliaSk777/tochka-opory/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	logger.Info("starting tochka-opory")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("init telegram bot: %w", err)
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	m := metrics.Registry(cfg.MetricsNamespace)
	client := telegram.NewClient(bot, logger)
	sessions := session.NewStore()

	var seen httpserver.SeenCache
	if rc := cache.New(cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, logger); rc != nil {
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("redis ping failed", "error", err)
		}
		seen = rc
	}

	ykClient := payments.NewClient(payments.ClientConfig{
		ShopID:    cfg.YooShopID,
		SecretKey: cfg.YooSecretKey,
	}, logger)
	paySvc := payments.NewService(ykClient, db, client, m, logger, cfg.PriceRUB, cfg.ReturnURL)

	engine := delivery.NewEngine(db, client, m, logger, cfg.BonusProbability)

	h := &handlers.Handler{
		Client:    client,
		DB:        db,
		Sessions:  sessions,
		Guided:    guided.New(sessions, client, logger),
		Support:   support.New(sessions, client, logger),
		Engine:    engine,
		Payments:  paySvc,
		Metrics:   m,
		Logger:    logger,
		PriceText: cfg.PriceText,
	}

	sched, err := scheduler.Start(ctx, engine, scheduler.Config{
		Timezone:  cfg.Timezone,
		MorningAt: cfg.MorningAt,
		EveningAt: cfg.EveningAt,
		BonusAt:   cfg.BonusAt,
	}, logger)
	if err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() { _ = sched.Shutdown() }()

	srv := httpserver.New(cfg.HTTPAddr, logger, m, paySvc, seen)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	logger.Info("bot started", "username", bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			bot.StopReceivingUpdates()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
			return nil
		case err := <-errCh:
			return fmt.Errorf("http server error: %w", err)
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			h.HandleUpdate(ctx, upd)
		}
	}
}
