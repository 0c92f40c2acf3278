package main

import (
	"fmt"
	"os"

	"fleetpanel/internal/api/routes"
	"fleetpanel/internal/config"
	"fleetpanel/internal/logger"
	"fleetpanel/internal/models"
	"fleetpanel/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	defer log.Sync()

	configPath := os.Getenv("PANEL_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalw("failed to load config", "path", configPath, "error", err)
	}

	if err := models.InitDB(cfg); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}

	// Create default admin if database is empty
	authService := services.NewAuthService(cfg)
	if err := authService.CreateDefaultAdmin(); err != nil {
		log.Warnw("failed to create default admin", "error", err)
	}

	if err := authService.DeleteExpiredSessions(); err != nil {
		log.Warnw("failed to purge expired sessions", "error", err)
	}

	// Demo data for empty installs (config-gated)
	serverService := services.NewServerService(cfg)
	if err := serverService.SeedDemoServers(); err != nil {
		log.Warnw("failed to seed demo servers", "error", err)
	}
	salesService := services.NewSalesService(cfg)
	if err := salesService.SeedDemoData(); err != nil {
		log.Warnw("failed to seed demo sales", "error", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	routes.SetupRoutes(r, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Infow("starting fleet panel", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
