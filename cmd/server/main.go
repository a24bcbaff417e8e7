package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/cache"
	"github.com/talakunchi/exam-portal-service/internal/config"
	"github.com/talakunchi/exam-portal-service/internal/handlers"
	"github.com/talakunchi/exam-portal-service/internal/repositories/postgres"
	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
	"github.com/talakunchi/exam-portal-service/pkg"
)

const sessionTTL = time.Hour

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	slogger := utils.NewSlog(cfg.Environment)
	logger := utils.NewLogger(cfg.Environment)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	repo := postgres.NewRepository(db)
	defer repo.Close()

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	otpStore := cache.NewRedisOTPStore(redisClient)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	validator, err := utils.NewValidator()
	if err != nil {
		logger.Error("Failed to build validator", "error", err)
		os.Exit(1)
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, sessionTTL)
	serviceManager := services.NewManager(repo, publisher, otpStore, tokens, logger, validator)
	handlerManager := handlers.NewHandlerManager(serviceManager, tokens, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
