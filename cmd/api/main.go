package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"agrosense/crop-advisor-backend/internal/charts"
	"agrosense/crop-advisor-backend/internal/climate"
	"agrosense/crop-advisor-backend/internal/config"
	"agrosense/crop-advisor-backend/internal/export"
	"agrosense/crop-advisor-backend/internal/locations"
	"agrosense/crop-advisor-backend/internal/notifications"
	"agrosense/crop-advisor-backend/internal/recommend"
	"agrosense/crop-advisor-backend/internal/satellite"
	"agrosense/crop-advisor-backend/internal/scheduler"
	"agrosense/crop-advisor-backend/internal/soil"
)

func main() {
	// .env is optional; container deployments set real env vars
	_ = godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	if os.Getenv("APP_ENV") == "development" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Connect to database. gorm owns the recommendations table, sqlx
	// owns the users table; both share the same database.
	dbURL := cfg.Database.GetDatabaseURL()
	gormDB, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to access database pool", zap.Error(err))
	}
	defer sqlDB.Close()
	if cfg.Database.MaxConnections > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxConnections)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	}

	sqlxDB, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer sqlxDB.Close()

	// Data sources
	climateClient := climate.NewClient(cfg.Climate.BaseURL, logger)
	satelliteClient := satellite.NewClient(cfg.Satellite.BaseURL, logger)
	soilClient := soil.NewClient(cfg.Soil.BaseURL, logger)

	// Progress stream
	progressHub := notifications.NewProgressHub(logger)
	defer progressHub.Close()
	progressHandler := notifications.NewHandler(progressHub, logger)

	// Recommendation pipeline
	recommendRepo, err := recommend.NewGormRepository(gormDB)
	if err != nil {
		logger.Fatal("Failed to prepare recommendations storage", zap.Error(err))
	}
	recommendService := recommend.NewService(recommendRepo, climateClient, satelliteClient, soilClient, progressHub, logger)
	recommendHandler := recommend.NewHandler(recommendService, logger)

	// User locations
	locationsRepo := locations.NewPostgresRepository(sqlxDB)
	if err := locationsRepo.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("Failed to prepare users storage", zap.Error(err))
	}
	locationsService := locations.NewService(locationsRepo, logger)
	locationsHandler := locations.NewHandler(locationsService, logger)

	// Exports and charts
	exportHandler := export.NewHandler(recommendService, logger)
	chartsHandler := charts.NewHandler(recommendService, satelliteClient, logger)

	// Retention job
	retention := scheduler.NewRetentionJob(recommendRepo, cfg.Retention, logger)
	if err := retention.Start(); err != nil {
		logger.Fatal("Failed to start retention job", zap.Error(err))
	}
	defer retention.Stop()

	// Setup Router
	if os.Getenv("APP_ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	{
		recommendHandler.RegisterRoutes(api)
		locationsHandler.RegisterRoutes(api)
		exportHandler.RegisterRoutes(api)
		chartsHandler.RegisterRoutes(api)
	}
	progressHandler.RegisterRoutes(router)

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
