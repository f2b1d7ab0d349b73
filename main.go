package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eggmart/api"
	"eggmart/config"
	"eggmart/internal/catalog"
	"eggmart/internal/notify"
	"eggmart/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading config: %v", err))
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx := context.Background()

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to open record store", zap.Error(err))
	}

	if err := catalog.NewService(store, logger).Seed(ctx); err != nil {
		logger.Fatal("failed to seed menu", zap.Error(err))
	}

	notifier, err := notify.New(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
	if err != nil {
		logger.Warn("telegram notifier unavailable", zap.Error(err))
	}

	r := gin.Default()
	api.InitRoutes(r, store, notifier, cfg.Shop.DefaultUPIID, logger)

	logger.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("shop", cfg.Shop.Name),
	)
	if err := r.Run(cfg.Server.Addr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}

func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "postgres":
		return storage.NewPostgresStore(ctx, cfg.DB)
	case "file":
		return storage.NewFileStore(cfg.File), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
