package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"egym/plan-service/internal/api"
	"egym/plan-service/internal/config"
	"egym/plan-service/internal/llm"
	"egym/plan-service/internal/logger"
	"egym/plan-service/internal/repository/mongo"
	"egym/plan-service/internal/service"
	"egym/plan-service/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	appLogger.Info("starting plan service", "address", cfg.Server.Address, "mode", cfg.Server.Mode)

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		appLogger.Fatal("could not connect to MongoDB", "error", err)
	}
	defer func() {
		appLogger.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			appLogger.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	appLogger.Info("database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureWorkoutPlanIndexes(ctx, appDB.Collection("workout_plans"))
		appLogger.Info("index creation process completed")
	}()

	// --- Completion Archive ---
	var archive storage.CompletionArchive
	if cfg.S3.BucketName != "" {
		archive, err = storage.NewS3Archive(cfg.S3)
		if err != nil {
			appLogger.Fatal("failed to initialize S3 completion archive", "error", err)
		}
	} else {
		appLogger.Info("no S3 bucket configured, completion archiving disabled")
		archive = storage.NewNoopArchive()
	}

	// --- LLM Client ---
	llmClient, err := llm.NewOpenAIClient(cfg.OpenAI, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize completion client", "error", err)
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoWorkoutPlanRepository(appDB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(userRepo, appLogger)
	planService := service.NewPlanService(userRepo, planRepo, llmClient, archive, appLogger)

	// --- Gin Engine ---
	if cfg.Server.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api.SetupRoutes(router, cfg.JWT.Secret, authService, profileService, planService)

	// Plan generation holds the request open for the whole completion call,
	// so the write timeout must outlive the completion timeout.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.OpenAI.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLogger.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("listen and serve error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		appLogger.Fatal("server forced to shutdown", "error", err)
	}

	appLogger.Info("server exiting")
}
