package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/cache"
	"github.com/MiguelRivas11/studio/db"
	"github.com/MiguelRivas11/studio/docsync"
	"github.com/MiguelRivas11/studio/handlers"
	"github.com/MiguelRivas11/studio/llm"
	"github.com/MiguelRivas11/studio/logger"
	"github.com/MiguelRivas11/studio/middleware"
	"github.com/MiguelRivas11/studio/mongodb"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		logger.Get().Warn("no .env file found, relying on environment variables")
	}
}

func main() {
	if err := logger.InitFromEnv(); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if err := mongodb.InitMongoDB(); err != nil {
		logger.Get().Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	defer mongodb.CloseMongoDB()

	if err := db.InitDB(); err != nil {
		logger.Get().Fatal("failed to initialize Postgres", zap.Error(err))
	}
	defer db.CloseDB()

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		handlers.HealthCache = cache.NewRedisCache(addr)
		logger.Get().Info("using Redis recommendation cache", zap.String("addr", addr))
	} else {
		handlers.HealthCache = cache.NewMemoryCache()
		logger.Get().Warn("REDIS_ADDR not set, recommendation cache is in-process only")
	}

	handlers.LLM = llm.NewOpenAIClient()
	handlers.PathStore = &mongodb.BatchStore{}

	queue := docsync.NewQueue(4, docsync.LogFailures{})
	queue.Start()
	handlers.WriteQueue = queue

	router := gin.Default()
	router.Use(middleware.CorsMiddleware)

	// EventSource cannot send an Authorization header; the stream handler
	// validates the token itself.
	router.GET("/api/goals/stream", handlers.StreamGoals)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware)
	{
		api.GET("/budget", handlers.GetBudget)
		api.PUT("/budget", handlers.UpdateBudget)

		api.GET("/goals", handlers.ListGoals)
		api.POST("/goals", handlers.CreateGoal)
		api.DELETE("/goals/:id", handlers.DeleteGoal)

		api.POST("/learn", handlers.GenerateLearningPath)
		api.GET("/learn", handlers.GetLearningPath)
		api.DELETE("/learn/:id", handlers.DeleteLearningPath)

		api.POST("/chat", handlers.HandleChat)
		api.POST("/health", handlers.HandleHealthAssessment)

		api.GET("/profile", handlers.GetProfile)
		api.PUT("/profile", handlers.UpdateProfile)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Get().Info("starting server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Get().Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Get().Error("server shutdown failed", zap.Error(err))
	}

	// Drain pending detached writes before the stores close.
	queue.Stop()
	logger.Get().Info("server stopped")
}
