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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/futliga/championship-system/cache"
	"github.com/futliga/championship-system/config"
	"github.com/futliga/championship-system/db"
	"github.com/futliga/championship-system/handlers"
	"github.com/futliga/championship-system/live"
	"github.com/futliga/championship-system/repositories"
	"github.com/futliga/championship-system/routes"
	"github.com/futliga/championship-system/services"
	"github.com/futliga/championship-system/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	handlers.SetLogger(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Загрузчик логотипов опционален: без R2 команда живёт без логотипа.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage is not configured, logo uploads are disabled")
	}

	// Кэш статистики тоже опционален: без Redis читаем напрямую из БД.
	var statsCache services.StatsCache
	if cfg.RedisAddr != "" {
		redisClient, redisErr := cache.NewClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if redisErr != nil {
			logger.Error("failed to connect to Redis", slog.Any("error", redisErr))
			os.Exit(1)
		}
		defer redisClient.Close()
		statsCache = redisClient
		logger.Info("redis cache connected", slog.String("addr", cfg.RedisAddr))
	} else {
		logger.Warn("redis is not configured, statistics cache is disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()
	dispatcher := live.NewDispatcher(hub)
	logger.Info("live hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	championshipRepo := repositories.NewPostgresChampionshipRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	eventRepo := repositories.NewPostgresMatchEventRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader, logger)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	championshipService := services.NewChampionshipService(dbConn, championshipRepo, standingRepo, matchRepo, userRepo, logger)
	matchService := services.NewMatchService(dbConn, matchRepo, eventRepo, standingRepo, teamRepo, logger)
	statisticsService := services.NewStatisticsService(standingRepo, eventRepo, championshipRepo, statsCache, logger)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	teamHandler := handlers.NewTeamHandler(teamService, playerService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	championshipHandler := handlers.NewChampionshipHandler(championshipService, matchService)
	matchHandler := handlers.NewMatchHandler(matchService, dispatcher)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, matchService)

	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		teamHandler,
		playerHandler,
		championshipHandler,
		matchHandler,
		statisticsHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
	}
	logger.Info("application exited")
}
