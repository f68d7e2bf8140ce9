package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/weknowyourgame/wa-commerce-backend/internal/classifier"
	"github.com/weknowyourgame/wa-commerce-backend/internal/config"
	"github.com/weknowyourgame/wa-commerce-backend/internal/genai"
	"github.com/weknowyourgame/wa-commerce-backend/internal/handlers"
	"github.com/weknowyourgame/wa-commerce-backend/internal/pipeline"
	"github.com/weknowyourgame/wa-commerce-backend/internal/repository"
	"github.com/weknowyourgame/wa-commerce-backend/internal/webhook"
	"github.com/weknowyourgame/wa-commerce-backend/internal/whatsapp"
)

func main() {
	// Load .env file if it exists (for development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting service",
		zap.String("service", cfg.ServiceName),
		zap.String("port", cfg.Port),
		zap.String("ai_model", cfg.AIModel))

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()
	store := repository.NewStore(db, cfg.DBTimeout)

	provider, err := genai.NewCloudflareProvider(cfg.CloudflareAPIToken, cfg.CloudflareAccountID, cfg.AIModel, cfg.AITimeout)
	if err != nil {
		logger.Fatal("failed to init generation backend", zap.Error(err))
	}

	intentClassifier := classifier.New(provider, logger)
	pipe := pipeline.New(intentClassifier, store, provider, logger)
	waClient := whatsapp.NewClient(cfg.WhatsAppTimeout)

	var dedup webhook.Dedup = webhook.NoopDedup{}
	if cfg.RedisURL != "" {
		redisDedup, err := webhook.NewRedisDedup(cfg.RedisURL, cfg.DedupTTL, logger)
		if err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisDedup.Close()
		dedup = redisDedup
		logger.Info("webhook dedup enabled")
	} else {
		logger.Warn("REDIS_URL not set, webhook dedup disabled")
	}

	ingestor := webhook.NewIngestor(store, pipe, waClient, dedup, cfg.VerifyToken, logger)
	intentHandler := handlers.NewIntentHandler(pipe, logger)
	commerceHandler := handlers.NewCommerceHandler(store, logger)
	waHandler := handlers.NewWhatsAppHandler(store, waClient, logger)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "healthy", "service": cfg.ServiceName}
		if err := db.PingContext(c.Request.Context()); err != nil {
			status["database"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "healthy"
		c.JSON(http.StatusOK, status)
	})

	router.POST("/ai/intent", intentHandler.ProcessIntent)

	router.GET("/webhook", ingestor.Verify)
	router.POST("/webhook", ingestor.Receive)

	api := router.Group("/api")
	{
		api.GET("/products", commerceHandler.GetProducts)
		api.GET("/business-info", commerceHandler.GetBusinessInfo)
		api.GET("/orders/:id", commerceHandler.GetOrderByID)
		api.POST("/orders", commerceHandler.GetCustomerOrders)
		api.PUT("/orders/:id/status", commerceHandler.UpdateOrderStatus)
		api.GET("/user-info/:phoneNumber", commerceHandler.GetUserInfo)
		api.POST("/whatsapp/send-message", waHandler.SendMessage)
		api.POST("/whatsapp/send-interactive", waHandler.SendInteractive)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
