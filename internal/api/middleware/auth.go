package middleware

import (
	"strings"

	"fleetpanel/internal/api/flash"
	"fleetpanel/internal/models"
	"fleetpanel/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the session token between requests.
const SessionCookie = "panel_session"

// LoadSession resolves the session cookie into the request context when it is
// present and valid. It never rejects: public pages use it to know whether an
// authenticated user is browsing them.
func LoadSession(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := authService.GetSession(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user", &session.User)
		c.Set("user_id", session.UserID)
		c.Set("session", session)
		c.Next()
	}
}

// RequireAuth redirects unauthenticated page requests to the login form. API
// routes get a JSON 401 instead of a redirect.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); exists {
			c.Next()
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(401, gin.H{"success": false, "error": "Not authenticated"})
			c.Abort()
			return
		}

		flash.Set(c, flash.Error, "Please sign in first")
		c.Redirect(302, "/login")
		c.Abort()
	}
}

// RequireAdmin soft-denies non-admin sessions: an error notice and a redirect
// back to the server list, never a hard 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if exists && user.(*models.User).IsAdmin() {
			c.Next()
			return
		}

		flash.Set(c, flash.Error, "You do not have permission for that")
		c.Redirect(302, "/servers")
		c.Abort()
	}
}

// CurrentUser returns the authenticated user from the request context, or nil
func CurrentUser(c *gin.Context) *models.User {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	return user.(*models.User)
}

// CurrentSession returns the session from the request context, or nil
func CurrentSession(c *gin.Context) *models.Session {
	session, exists := c.Get("session")
	if !exists {
		return nil
	}
	return session.(*models.Session)
}
