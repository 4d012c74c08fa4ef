// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"skyfare/internal/config"
	"skyfare/internal/handlers"
	"skyfare/internal/middleware"
	"skyfare/internal/models"
	"skyfare/internal/repositories"
	"skyfare/internal/services/auth"
	"skyfare/internal/services/booking"
	"skyfare/internal/services/flightapi"
	"skyfare/internal/services/markup"
	"skyfare/internal/services/payment"
	"skyfare/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	markupRepo := repositories.NewMarkupRuleRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	markupService := markup.NewService(markupRepo, repositories.CacheService)

	flightService := flightapi.NewClient(
		config.GetEnv("FLIGHT_API_URL", "https://api.flightprovider.example.com/v1"),
		config.GetEnv("FLIGHT_API_KEY", ""),
	)
	paymentService := payment.NewService(config.GetEnv("STRIPE_SECRET_KEY", ""))

	bookingService := booking.NewService(bookingRepo, flightService, markupService, paymentService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	markupHandler := handlers.NewMarkupHandler(markupService, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService, flightService)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/health", handlers.HealthCheck(db))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to SkyFare API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	setupAccountRoutes(protected, authHandler, userHandler)
	setupBookingRoutes(protected, bookingHandler, markupHandler)
	setupAdminRoutes(app, authMiddleware, markupHandler, userHandler, bookingHandler)
}

func setupAccountRoutes(router fiber.Router, authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler) {
	router.Get("/profile", userHandler.GetProfile)
	router.Post("/change-password", authHandler.ChangePassword)
	router.Post("/logout", authHandler.LogoutUser)
}

func setupBookingRoutes(router fiber.Router, h *handlers.BookingHandler, markupHandler *handlers.MarkupHandler) {
	// Offer search and confirmation flows
	flights := router.Group("/flights")
	flights.Get("/offers", h.SearchOffers)
	flights.Get("/offers/:offerId/sell-summary", h.SellSummary)

	// Order tracking
	orders := router.Group("/orders", middleware.HasPermission(models.PermissionOrderRead))
	orders.Post("/", middleware.HasPermission(models.PermissionOrderWrite), h.ConfirmOrder)
	orders.Get("/", h.GetOrders)
	orders.Get("/:id", h.GetOrder)
	orders.Post("/:id/refunds", middleware.HasPermission(models.PermissionOrderWrite), h.RequestRefund)
	orders.Get("/:id/refunds", h.GetRefunds)
	orders.Post("/:id/ancillaries", middleware.HasPermission(models.PermissionOrderWrite), h.RequestAncillary)
	orders.Get("/:id/ancillaries", h.GetAncillaries)

	// Standalone markup calculation display
	router.Post("/markup/quote", markupHandler.Quote)
}

func setupAdminRoutes(
	app *fiber.App,
	authMiddleware *middleware.AuthMiddleware,
	markupHandler *handlers.MarkupHandler,
	userHandler *handlers.UserHandler,
	bookingHandler *handlers.BookingHandler,
) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	// Markup rule management
	admin.Get("/markup-rules", middleware.HasPermission(models.PermissionMarkupRead), markupHandler.ListRules)
	admin.Post("/markup-rules", middleware.HasPermission(models.PermissionMarkupWrite), markupHandler.UpsertRule)
	admin.Delete("/markup-rules/:id", middleware.HasPermission(models.PermissionMarkupWrite), markupHandler.DeleteRule)

	// User management
	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), userHandler.GetUsersPaginated)
	admin.Put("/users/:id/role", middleware.HasPermission(models.PermissionWriteAdmin), userHandler.ChangeUserRole)
	admin.Delete("/users/:id", middleware.HasPermission(models.PermissionWriteAdmin), userHandler.DeleteUser)

	// Cross-user order, refund and ancillary tables
	admin.Get("/orders", bookingHandler.GetOrders)
	admin.Get("/refunds", bookingHandler.GetRefunds)
	admin.Get("/ancillaries", bookingHandler.GetAncillaries)
}
