// File: campusporter/main.go
package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusporter/config"
	"campusporter/cron"
	"campusporter/handlers"
	"campusporter/middleware"
	"campusporter/routes"
	"campusporter/services/delivery"
	"campusporter/services/events"
	"campusporter/services/intelligence"
	"campusporter/services/notification"
	"campusporter/services/tasks"
	"campusporter/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Notification copy: Gemini when a key is configured, local templates otherwise.
	var generator notification.TextGenerator = notification.NewTemplateGenerator()
	geminiEnabled := false
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := intelligence.NewGeminiClient(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("main: Gemini unavailable, using template notifications", zap.Error(err))
		} else {
			defer gemini.Close()
			generator = gemini
			geminiEnabled = true
		}
	}

	redisClient, err := utils.InitCache()
	if err != nil {
		logger.Info("main: notification cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cache := intelligence.NewRedisContentCache(redisClient, config.AppConfig.NotificationCacheTTL)
		generator = intelligence.NewCachedGenerator(generator, cache, logger)
	}
	utils.StartHealthMonitor(rootCtx, redisClient, geminiEnabled, utils.HealthCheckInterval)

	broker := events.NewBroker()

	notificationService, err := notification.NewDefaultNotificationService(
		generator,
		notification.NewList(),
		config.AppConfig.NotificationTimeout,
		broker,
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	// State lives in memory and is reset from seed data on every start.
	store := delivery.NewMemoryStore(delivery.SeedRequests(
		time.Now(),
		config.AppConfig.DefaultCustomerName,
		config.AppConfig.DefaultPorterName,
	)...)
	deliveryService := delivery.NewDefaultDeliveryService(
		store,
		notificationService,
		broker,
		config.AppConfig.Locations,
		logger,
	)

	// Arrival reminders ride on the same Redis instance as the cache.
	if redisClient != nil {
		queueOpt := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}
		scheduler := tasks.NewAsynqScheduler(queueOpt, logger)
		defer scheduler.Close()
		deliveryService.SetReminderScheduler(scheduler)

		worker, err := cron.InitReminderWorker(queueOpt, deliveryService, notificationService, logger)
		if err != nil {
			logger.Warn("main: reminder worker unavailable", zap.Error(err))
		} else {
			defer worker.Shutdown()
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewDeliveryHandler(deliveryService, logger),
		handlers.NewNotificationHandler(notificationService, logger),
		handlers.NewEventsHandler(broker, logger),
		config.AppConfig.DefaultCustomerName,
		config.AppConfig.DefaultPorterName,
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	// Request contexts derive from rootCtx so stop() can end long-lived event streams.
	srv := &http.Server{
		Addr:        "0.0.0.0:" + port,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return rootCtx },
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
