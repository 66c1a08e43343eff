package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tradejournal/configs"
	custommiddleware "tradejournal/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	Auth            configs.AuthConfig
	WebHandler      *WebHandler
	AuthHandler     *AuthHandler
	JournalHandler  *JournalHandler
	MarketHandler   *MarketHandler
	SettingsHandler *SettingsHandler
	ImageHandler    *ImageHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for polling endpoints to reduce noise
			path := c.Request().URL.Path
			return path == "/health" || path == "/api/market-data"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "trading-journal",
		})
	})

	authRequired := custommiddleware.AuthRequired(config.Auth)

	// Pages (form POSTs bind to the same handlers as the JSON API)
	e.GET("/", config.WebHandler.Index, authRequired)
	e.GET("/login", config.WebHandler.LoginPage)
	e.POST("/login", config.AuthHandler.Login)
	e.GET("/register", config.WebHandler.RegisterPage)
	e.POST("/register", config.AuthHandler.Register)
	e.GET("/logout", config.WebHandler.LogoutPage)

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	api.POST("/login", config.AuthHandler.Login)
	api.POST("/register", config.AuthHandler.Register)
	api.POST("/logout", config.AuthHandler.Logout)

	// Journal routes (protected)
	journal := api.Group("", authRequired)
	{
		journal.POST("/process-entry", config.JournalHandler.ProcessEntry)
		journal.POST("/save-journal", config.JournalHandler.SaveJournal)
		journal.GET("/view-journal", config.JournalHandler.ViewJournal)
		journal.GET("/list-entries", config.JournalHandler.ListEntries)
		journal.POST("/update-entry", config.JournalHandler.UpdateEntry)
		journal.POST("/delete-entry", config.JournalHandler.DeleteEntry)
		journal.POST("/clear-journal", config.JournalHandler.ClearJournal)

		journal.GET("/market-data", config.MarketHandler.Snapshot)

		journal.GET("/settings", config.SettingsHandler.Get)
		journal.POST("/settings", config.SettingsHandler.Update)

		journal.POST("/upload-image", config.ImageHandler.Upload)
	}
}
