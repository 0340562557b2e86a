package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/dealsense/dealsense/pkg/validator"

	"github.com/dealsense/dealsense/internal/adapter/handler"
	"github.com/dealsense/dealsense/internal/adapter/repository"
	"github.com/dealsense/dealsense/internal/infrastructure/database"
	"github.com/dealsense/dealsense/internal/infrastructure/storage"
	"github.com/dealsense/dealsense/internal/usecase/analytics"
	"github.com/dealsense/dealsense/internal/usecase/classify"
	"github.com/dealsense/dealsense/internal/usecase/clients"
	"github.com/dealsense/dealsense/internal/usecase/ingest"
	"github.com/dealsense/dealsense/internal/usecase/meetings"
	pkgai "github.com/dealsense/dealsense/pkg/ai"
	"github.com/dealsense/dealsense/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	log.Println("🔧 Initializing dependencies...")

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema is managed with sql-migrate; applying on boot is opt-in and
	// blocked in production.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying schema migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping boot-time migrations; use sql-migrate in CI/CD/production")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	log.Println("⚙️  Initializing repositories...")
	clientRepo := repository.NewClientRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	classificationRepo := repository.NewClassificationRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	log.Println("🤖 Initializing classifier...")
	classifier := pkgai.NewOpenAIClassifier(&cfg.Classifier)

	// Object storage is optional; without an endpoint uploads are simply
	// not archived.
	var archiver ingest.Archiver
	if cfg.Storage.Endpoint != "" {
		log.Println("🗄️  Connecting to object storage...")
		minioArchiver, err := storage.NewMinIOArchiver(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archiver = minioArchiver
	} else {
		log.Println("🗄️  Object storage not configured, uploads will not be archived")
	}

	log.Println("✨ Initializing services...")
	clientsService := clients.NewService(clientRepo, logger)
	meetingsService := meetings.NewService(meetingRepo, logger)
	classifyService := classify.NewService(meetingRepo, classificationRepo, classifier, cfg.Classifier, logger)
	ingestService := ingest.NewService(clientsService, meetingsService, classifyService, archiver, cfg.Ingest, logger)
	analyticsService := analytics.NewService(analyticsRepo, logger)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewIngest(ingestService, logger),
		handler.NewClassify(classifyService, logger),
		handler.NewClients(clientsService, analyticsService, logger),
		handler.NewMeetings(meetingsService, logger),
		handler.NewMetrics(analyticsService, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped")
}
