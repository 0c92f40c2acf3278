package handlers

import (
	"fleetpanel/internal/api/flash"
	"fleetpanel/internal/api/middleware"
	"fleetpanel/internal/config"
	"fleetpanel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	userService *services.UserService
	log         *zap.SugaredLogger
}

func NewProfileHandler(cfg *config.Config, log *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{
		userService: services.NewUserService(cfg),
		log:         log,
	}
}

// Show renders the current user's profile. The row is re-read so an update
// from another session is not shadowed by the copy cached on the session.
func (h *ProfileHandler) Show(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if fresh, err := h.userService.GetUser(user.ID); err == nil {
		user = fresh
	} else {
		h.log.Errorw("failed to load profile", "user_id", user.ID, "error", err)
	}
	render(c, 200, "profile.html", gin.H{
		"Title":    "Profile",
		"User":     user,
		"Email":    user.Email,
		"FullName": user.FullName,
	})
}

// Update changes the email and full name of the current user. Field errors
// re-render the form with the submitted values.
func (h *ProfileHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	email := c.PostForm("email")
	fullName := c.PostForm("full_name")

	_, fieldErrs, err := h.userService.UpdateProfile(user.ID, email, fullName)
	if err != nil {
		h.log.Errorw("failed to update profile", "user_id", user.ID, "error", err)
		flash.Set(c, flash.Error, "Could not update the profile")
		c.Redirect(302, "/profile")
		return
	}

	if len(fieldErrs) > 0 {
		render(c, 200, "profile.html", gin.H{
			"Title":    "Profile",
			"Email":    email,
			"FullName": fullName,
			"Errors":   fieldErrs,
		})
		return
	}

	flash.Set(c, flash.Success, "Profile updated")
	c.Redirect(302, "/profile")
}
