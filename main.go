package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/client"
	"github.com/fintrack/backend/internal/config"
	"github.com/fintrack/backend/internal/db"
	"github.com/fintrack/backend/internal/handler"
	"github.com/fintrack/backend/internal/ratelimit"
	"github.com/fintrack/backend/internal/service"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	postgres, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer postgres.Close()

	if err := postgres.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	tokenService, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to init token service: %v", err)
	}

	genaiClient, err := client.NewGenAIClient(cfg.AI)
	if err != nil {
		log.Fatalf("failed to init genai client: %v", err)
	}

	authService := service.NewAuthService(postgres, postgres, tokenService, cfg.Auth.LedgerTTL)
	categoryService := service.NewCategoryService(postgres)
	transactionService := service.NewTransactionService(postgres)
	classifyService := service.NewClassifyService(postgres, genaiClient, logger)
	advisorService := service.NewAdvisorService(postgres, genaiClient, logger)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	gptHandler := handler.NewGPTHandler(classifyService, advisorService)

	authLimiter := ratelimit.NewLimiter(5, time.Minute)
	defer authLimiter.Stop()

	router := gin.Default()
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigin))
	router.Use(handler.RequestLogMiddleware(logger))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", handler.RateLimitMiddleware(authLimiter), authHandler.Signup)
	auth.POST("/login", handler.RateLimitMiddleware(authLimiter), authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	categories := api.Group("/categories", handler.AuthMiddleware(authService))
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.POST("/createCategories", categoryHandler.CreateMany)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	transactions := api.Group("/transactions", handler.AuthMiddleware(authService))
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	gpt := api.Group("/gpt", handler.AuthMiddleware(authService))
	gpt.POST("/categorize", gptHandler.Categorize)
	gpt.GET("/recommendations", gptHandler.Recommendations)

	logger.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
