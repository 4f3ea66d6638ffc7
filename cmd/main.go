package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-badges/config"
	"github.com/Dosada05/tournament-badges/db"
	"github.com/Dosada05/tournament-badges/handlers"
	"github.com/Dosada05/tournament-badges/live"
	"github.com/Dosada05/tournament-badges/repositories"
	"github.com/Dosada05/tournament-badges/routes"
	"github.com/Dosada05/tournament-badges/services"
	"github.com/Dosada05/tournament-badges/storage"
	"github.com/itbasis/go-clock"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.DBAutoMigrate {
		if err := db.CreateSchema(ctx, dbConn); err != nil {
			logger.Error("failed to create database schema", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database schema ensured")
	}

	// Загрузчик картинок (Cloudflare R2) опционален
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, cfg.R2)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, badge image upload disabled")
	}

	// WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run(ctx)

	// Репозитории
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	badgeRepo := repositories.NewPostgresBadgeRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)

	// Сервисы
	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey, clock.New())
	userService := services.NewUserService(userRepo)
	badgeService := services.NewBadgeService(badgeRepo, userRepo, uploader, wsHub, logger)
	teamService := services.NewTeamService(teamRepo, tournamentRepo, userRepo, wsHub, logger)

	router := routes.SetupRoutes(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		User:      handlers.NewUserHandler(userService),
		Badge:     handlers.NewBadgeHandler(badgeService),
		Team:      handlers.NewTeamHandler(teamService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	}, routes.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AccessLog:      true,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
