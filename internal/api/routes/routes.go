package routes

import (
	"fleetpanel/internal/api/handlers"
	"fleetpanel/internal/api/middleware"
	"fleetpanel/internal/config"
	"fleetpanel/internal/services"
	"fleetpanel/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, log *zap.SugaredLogger) {
	// Initialize services
	authService := services.NewAuthService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg, log)
	dashboardHandler := handlers.NewDashboardHandler(cfg, log)
	serverHandler := handlers.NewServerHandler(cfg, log)
	profileHandler := handlers.NewProfileHandler(cfg, log)
	salesHandler := handlers.NewSalesHandler(cfg, log)

	// Page templates
	r.SetHTMLTemplate(web.Templates())

	// Middleware
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.LoadSession(authService))

	// Public routes
	r.GET("/", authHandler.Index)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Fleet Panel is running",
		})
	})

	// Session routes
	session := r.Group("")
	session.Use(middleware.RequireAuth())
	{
		session.GET("/logout", authHandler.Logout)
		session.GET("/dashboard", dashboardHandler.Dashboard)
		session.GET("/servers", serverHandler.List)
		session.GET("/profile", profileHandler.Show)
		session.POST("/profile/update", profileHandler.Update)
		session.GET("/sales", salesHandler.List)
		session.GET("/api/check/:id", serverHandler.Check)

		// Admin routes (soft denial for everyone else)
		admin := session.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/servers/add", serverHandler.Add)
			admin.GET("/servers/delete/:id", serverHandler.Delete)
		}
	}
}
