package routes

import (
	"orgpulse-survey/internal/adapters/http/handlers"
	"orgpulse-survey/internal/adapters/http/middleware"
	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/config"
	"orgpulse-survey/internal/core/services"
	"orgpulse-survey/internal/pkg/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, c *cache.Cache) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	loginLogRepo := repositories.NewLoginLogRepository(db)
	surveyRepo := repositories.NewSurveyRepository(db)
	summaryRepo := repositories.NewSummaryRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	deptRepo := repositories.NewDepartmentRepository(db)
	problemRepo := repositories.NewProblemRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, loginLogRepo, cfg)
	userService := services.NewUserService(userRepo, cfg)
	surveyService := services.NewSurveyService(surveyRepo, summaryRepo)
	statsService := services.NewStatsService(db, userRepo)
	notificationService := services.NewNotificationService(notificationRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, authService)
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	statsHandler := handlers.NewStatsHandler(statsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	masterHandler := handlers.NewMasterHandler(jobRepo, deptRepo, c)
	problemHandler := handlers.NewProblemHandler(problemRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group. Every route in the group passes the CSRF guard:
	// safe methods receive the token cookie, unsafe methods must echo
	// it back in the header.
	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.CSRFGuard(cfg))

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)

	// User management routes (admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthRequired(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Survey routes (mixed: employee submit, admin manage)
	surveyRoutes := apiV1.Group("/surveys")
	surveyRoutes.Use(middleware.AuthRequired(cfg))
	setupSurveyRoutes(surveyRoutes, surveyHandler)

	// Stats routes
	statsRoutes := apiV1.Group("/stats")
	statsRoutes.Use(middleware.AuthRequired(cfg))
	setupStatsRoutes(statsRoutes, statsHandler)

	// Notification routes
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthRequired(cfg))
	setupNotificationRoutes(notificationRoutes, notificationHandler)

	// Master data routes (reads for everyone, writes admin only)
	masterRoutes := apiV1.Group("/master")
	masterRoutes.Use(middleware.AuthRequired(cfg))
	setupMasterRoutes(masterRoutes, masterHandler)

	// Problem report routes
	problemRoutes := apiV1.Group("/problems")
	problemRoutes.Use(middleware.AuthRequired(cfg))
	setupProblemRoutes(problemRoutes, problemHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited harder than the rest of the API
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)
	router.Post("/password/reset", middleware.AuthRateLimiter(), handler.RequestReset)

	// Protected routes
	router.Get("/me", middleware.AuthRequired(cfg), handler.Me)
	router.Put("/password", middleware.AuthRequired(cfg), handler.ChangePassword)
}

// setupUserRoutes configures user management routes (admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Post("/:id/reset/approve", handler.ApproveReset)
	router.Post("/:id/reset/reject", handler.RejectReset)
}

// setupSurveyRoutes configures survey routes
func setupSurveyRoutes(router fiber.Router, handler *handlers.SurveyHandler) {
	// Authenticated users
	router.Get("/active", handler.ListActive)
	router.Get("/:id", handler.Get)
	router.Post("/:id/responses", handler.Submit)
	router.Get("/:id/summary", handler.MySummary)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Get("/", handler.List)
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Put("/:id", handler.Update)
	adminRoutes.Delete("/:id", handler.Delete)
}

// setupStatsRoutes configures statistics routes
func setupStatsRoutes(router fiber.Router, handler *handlers.StatsHandler) {
	// Authenticated users see their own rows unless widened
	router.Get("/organizational", handler.Organizational)
	router.Get("/growth", handler.Growth)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Get("/managers", handler.Managers)
	adminRoutes.Get("/departments", handler.Departments)
	adminRoutes.Get("/participation/:id", handler.Participation)
	adminRoutes.Get("/overview", handler.Overview)
}

// setupNotificationRoutes configures notification routes
func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Get("/my", handler.My)
	router.Put("/:id/read", handler.MarkRead)

	router.Post("/", middleware.AdminOnly(), handler.Send)
}

// setupMasterRoutes configures master data routes
func setupMasterRoutes(router fiber.Router, handler *handlers.MasterHandler) {
	// Reads are open to any authenticated user
	router.Get("/jobs", handler.ListJobs)
	router.Get("/departments", handler.ListDepartments)

	// Writes are admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/jobs", handler.CreateJob)
	adminRoutes.Put("/jobs/:id", handler.UpdateJob)
	adminRoutes.Delete("/jobs/:id", handler.DeleteJob)
	adminRoutes.Post("/departments", handler.CreateDepartment)
	adminRoutes.Put("/departments/:id", handler.UpdateDepartment)
	adminRoutes.Delete("/departments/:id", handler.DeleteDepartment)
}

// setupProblemRoutes configures problem report routes
func setupProblemRoutes(router fiber.Router, handler *handlers.ProblemHandler) {
	router.Post("/", handler.Create)
	router.Get("/my", handler.My)

	// Admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Get("/", handler.List)
	adminRoutes.Put("/:id/resolve", handler.Resolve)
}
