package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"agriintel/internal/analytics"
	"agriintel/internal/assistant"
	"agriintel/internal/config"
	"agriintel/internal/controller"
	"agriintel/internal/ingest"
	"agriintel/internal/notify"
	"agriintel/internal/repository"
	"agriintel/internal/server"
	"agriintel/internal/service"
	"agriintel/internal/store"
	"agriintel/internal/viewport"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err.Error())
		os.Exit(1)
	}

	db, err := repository.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err.Error())
		os.Exit(1)
	}

	if cfg.SeedOnStart {
		if err := repository.NewSeedRepository(db).SeedDatabase(); err != nil {
			logger.Error("failed to seed database", "error", err.Error())
			os.Exit(1)
		}
		logger.Info("database seeded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New()
	center := notify.NewCenter()

	// Subscribe before ingestion starts so the first farm delivery fits
	// the viewport.
	sync := viewport.NewSynchronizer(st, logger)

	src := repository.NewSource(db)
	sim := ingest.NewSimulator(src, st, center, ingest.Delays{
		Farm:       cfg.FarmDelay,
		NDVI:       cfg.NDVIDelay,
		Soil:       cfg.SoilDelay,
		Weather:    cfg.WeatherDelay,
		Market:     cfg.MarketDelay,
		CropHealth: cfg.CropHealthDelay,
	}, logger)
	sim.Start(ctx)
	defer sim.Stop()

	chatCfg := assistant.DefaultConfig()
	chatCfg.ReplyDelay = cfg.ReplyDelay
	chat := assistant.New(chatCfg, logger)
	chat.Start(ctx)
	defer chat.Stop()

	svc := service.NewDashboardService(st, sync, analytics.NewEngine(analytics.DefaultThresholds()), src)

	srv := server.New(cfg, server.Controllers{
		Dashboard:     controller.NewDashboardController(svc, logger),
		Notifications: controller.NewNotificationController(center, logger),
		Chat:          controller.NewChatController(chat, logger),
	}, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	logger.Info("server stopped")
}
