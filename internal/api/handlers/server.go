package handlers

import (
	"errors"
	"strconv"

	"fleetpanel/internal/api/flash"
	"fleetpanel/internal/api/middleware"
	"fleetpanel/internal/config"
	"fleetpanel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServerHandler struct {
	serverService *services.ServerService
	log           *zap.SugaredLogger
}

func NewServerHandler(cfg *config.Config, log *zap.SugaredLogger) *ServerHandler {
	return &ServerHandler{
		serverService: services.NewServerService(cfg),
		log:           log,
	}
}

// List renders the full server list
func (h *ServerHandler) List(c *gin.Context) {
	servers, err := h.serverService.List()
	if err != nil {
		h.log.Errorw("failed to list servers", "error", err)
		render(c, 500, "servers.html", gin.H{
			"Title":         "Servers",
			"FlashCategory": "error",
			"FlashMessage":  "Could not load the server list",
		})
		return
	}
	render(c, 200, "servers.html", gin.H{
		"Title":   "Servers",
		"Servers": servers,
	})
}

// Add creates a server from the submitted form (admin only, enforced by the
// route). Missing name or IP is rejected with a notice.
func (h *ServerHandler) Add(c *gin.Context) {
	name := c.PostForm("name")
	ip := c.PostForm("ip")
	description := c.PostForm("description")

	if name == "" || ip == "" {
		flash.Set(c, flash.Error, "Name and IP address are required")
		c.Redirect(302, "/servers")
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.serverService.Add(name, ip, description, user.ID); err != nil {
		h.log.Errorw("failed to add server", "name", name, "error", err)
		flash.Set(c, flash.Error, "Could not add the server")
		c.Redirect(302, "/servers")
		return
	}

	flash.Set(c, flash.Success, "Server \""+name+"\" added")
	c.Redirect(302, "/servers")
}

// Delete removes a server by id. A missing id is a no-op: the list simply
// no longer contains it.
func (h *ServerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		flash.Set(c, flash.Error, "Invalid server id")
		c.Redirect(302, "/servers")
		return
	}

	if err := h.serverService.Delete(uint(id)); err != nil {
		h.log.Errorw("failed to delete server", "id", id, "error", err)
		flash.Set(c, flash.Error, "Could not delete the server")
		c.Redirect(302, "/servers")
		return
	}

	flash.Set(c, flash.Info, "Server deleted")
	c.Redirect(302, "/servers")
}

// Check randomizes and persists the server status, returning JSON for the
// page script.
func (h *ServerHandler) Check(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "error": "Invalid server id"})
		return
	}

	status, err := h.serverService.Check(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrServerNotFound) {
			// An unknown id is reported in-band, not as an HTTP error
			c.JSON(200, gin.H{"success": false})
			return
		}
		h.log.Errorw("failed to check server", "id", id, "error", err)
		c.JSON(500, gin.H{"success": false, "error": "Check failed"})
		return
	}

	c.JSON(200, gin.H{"success": true, "status": status})
}
