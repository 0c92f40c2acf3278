package handlers

import (
	"fleetpanel/internal/api/flash"
	"fleetpanel/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// render executes a page template with the session user and any pending flash
// notice merged into the data.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = middleware.CurrentUser(c)
	}
	if category, message, ok := flash.Pop(c); ok {
		data["FlashCategory"] = category
		data["FlashMessage"] = message
	}
	c.HTML(status, name, data)
}
