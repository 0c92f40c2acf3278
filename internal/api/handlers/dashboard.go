package handlers

import (
	"fleetpanel/internal/config"
	"fleetpanel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	serverService *services.ServerService
	userService   *services.UserService
	log           *zap.SugaredLogger
}

func NewDashboardHandler(cfg *config.Config, log *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{
		serverService: services.NewServerService(cfg),
		userService:   services.NewUserService(cfg),
		log:           log,
	}
}

// Dashboard renders the summary counts and the five most recent servers
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	total, online, problem, err := h.serverService.Counts()
	if err != nil {
		h.log.Errorw("failed to count servers", "error", err)
		render(c, 500, "dashboard.html", gin.H{
			"Title":          "Dashboard",
			"TotalServers":   0,
			"OnlineServers":  0,
			"ProblemServers": 0,
			"TotalUsers":     0,
			"FlashCategory":  "error",
			"FlashMessage":   "Could not load server statistics",
		})
		return
	}

	users, err := h.userService.Count()
	if err != nil {
		h.log.Errorw("failed to count users", "error", err)
	}

	servers, err := h.serverService.Recent(5)
	if err != nil {
		h.log.Errorw("failed to load recent servers", "error", err)
	}

	render(c, 200, "dashboard.html", gin.H{
		"Title":          "Dashboard",
		"TotalServers":   total,
		"OnlineServers":  online,
		"ProblemServers": problem,
		"TotalUsers":     users,
		"Servers":        servers,
	})
}
