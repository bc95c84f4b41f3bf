package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/praxis-ed/praxis-api/internal/config"
	"github.com/praxis-ed/praxis-api/internal/database"
	"github.com/praxis-ed/praxis-api/internal/handler"
	"github.com/praxis-ed/praxis-api/internal/middleware"
	"github.com/praxis-ed/praxis-api/internal/models"
	"github.com/praxis-ed/praxis-api/internal/repository"
	"github.com/praxis-ed/praxis-api/internal/router"
	"github.com/praxis-ed/praxis-api/internal/service"
	"github.com/praxis-ed/praxis-api/pkg/roleplay"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Scenario{}, &models.Attempt{}, &models.Evaluation{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	gateway, err := roleplay.New(roleplay.Config{
		BaseURL: cfg.RoleplayBaseURL,
		APIKey:  cfg.RoleplayAPIKey,
		Timeout: cfg.RoleplayTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create roleplay client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	scenarioRepo := repository.NewScenarioRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	scenarioService := service.NewScenarioService(scenarioRepo, gateway, logger)
	evaluationService := service.NewEvaluationService(userRepo, attemptRepo, evaluationRepo, logger)
	progressService := service.NewProgressService(userRepo, attemptRepo, evaluationRepo, redisClient, cfg.ProgressCacheTTL, validate, logger)
	attemptService := service.NewAttemptService(attemptRepo, userRepo, scenarioRepo, gateway, evaluationService, progressService, validate, logger)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := scenarioService.SeedCatalog(seedCtx); err != nil {
		cancelSeed()
		log.Fatalf("failed to seed scenario catalog: %v", err)
	}
	cancelSeed()

	authHandler := handler.NewAuthHandler(authService, logger)
	scenarioHandler := handler.NewScenarioHandler(scenarioService, attemptService, logger)
	teacherHandler := handler.NewTeacherHandler(progressService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:     authHandler,
		ScenarioHandler: scenarioHandler,
		TeacherHandler:  teacherHandler,
		JWTMiddleware:   middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
