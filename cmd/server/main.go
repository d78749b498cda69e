package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	otpbots "github.com/loveawm50-hub/otp-bots.com"
	"github.com/loveawm50-hub/otp-bots.com/internal/config"
	"github.com/loveawm50-hub/otp-bots.com/internal/oxapay"
	"github.com/loveawm50-hub/otp-bots.com/internal/repository"
	"github.com/loveawm50-hub/otp-bots.com/internal/server"
	"github.com/loveawm50-hub/otp-bots.com/internal/service"
	"github.com/loveawm50-hub/otp-bots.com/internal/store"
	"github.com/loveawm50-hub/otp-bots.com/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pick the store backend
	orders, keys, cleanup, err := buildStores(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize store backend", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer cleanup()
	slog.Info("store backend ready", "backend", cfg.StoreBackend)

	// Signature verification
	verifier := oxapay.NewVerifier(cfg.OxaPayWebhookSecret)
	if verifier.Mode() == oxapay.SignatureDisabled {
		slog.Warn("webhook signature verification disabled: OXAPAY_WEBHOOK_SECRET not set")
	}
	if cfg.PublicBaseURL == "" {
		slog.Warn("PUBLIC_BASE_URL not set: processor callbacks cannot reach this instance")
	}

	// Outbound chat delivery
	sender, err := telegram.NewSender(cfg.BotToken, cfg.AdminChatID)
	if err != nil {
		slog.Error("failed to create telegram sender", "error", err)
		os.Exit(1)
	}
	if !sender.Enabled() {
		slog.Warn("telegram delivery disabled: BOT_TOKEN not set")
	}

	// Initialize services
	processor := oxapay.NewClient(cfg.OxaPayURL, cfg.OxaPayAPIKey, cfg.OxaPayMerchantID)
	orderService := service.NewOrderService(orders, keys, processor, sender, verifier, cfg.WebhookURL())
	verifyService := service.NewVerifyService(keys)

	// Start HTTP server
	srv := server.New(orderService, verifyService)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		slog.Info("starting server", "addr", addr)
		if err := srv.Listen(addr); err != nil {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	if err := srv.Shutdown(); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("server stopped gracefully")
}

func buildStores(ctx context.Context, cfg *config.Config) (store.OrderStore, store.KeyStore, func(), error) {
	switch cfg.StoreBackend {
	case "redis":
		client, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.NewRedisOrderStore(client, cfg.RedisTTLHours),
			store.NewRedisKeyStore(client, cfg.RedisTTLHours),
			func() { client.Close() }, nil

	case "postgres":
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		migrationsFS, err := fs.Sub(otpbots.MigrationsFS, "migrations")
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return store.NewPostgresOrderStore(pool),
			store.NewPostgresKeyStore(pool),
			pool.Close, nil

	case "memory":
		return store.NewMemoryOrderStore(), store.NewMemoryKeyStore(), func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
