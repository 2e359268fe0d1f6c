package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"orgpulse-survey/internal/adapters/http/middleware"
	"orgpulse-survey/internal/adapters/http/routes"
	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/config"
	"orgpulse-survey/internal/core/services"
	"orgpulse-survey/internal/pkg/cache"

	"github.com/gofiber/fiber/v2"

	_ "orgpulse-survey/docs" // Swagger docs
)

// @title OrgPulse Survey API
// @version 1.0
// @description Organizational assessment survey backend
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@orgpulse.app

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host survey.orgpulse.app
// @BasePath /api/v1
// @schemes https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed master data (jobs, departments, initial admin)
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("Warning: failed to seed master data: %v", err)
	}

	// Process-wide TTL cache for master data reads
	appCache := cache.New()

	// Scheduled housekeeping: survey auto-completion at 03:00, login
	// log retention, cache reaping
	maintenanceService := services.NewMaintenanceService(
		repositories.NewSurveyRepository(db),
		repositories.NewLoginLogRepository(db),
		appCache,
	)
	maintenanceService.Start()
	defer maintenanceService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "OrgPulse Survey API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, cfg, and cache for dependency injection)
	routes.Setup(app, db, cfg, appCache)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
