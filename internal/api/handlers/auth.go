package handlers

import (
	"time"

	"fleetpanel/internal/api/flash"
	"fleetpanel/internal/api/middleware"
	"fleetpanel/internal/config"
	"fleetpanel/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
	log         *zap.SugaredLogger
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		log:         log,
	}
}

func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

// Index renders the landing page
func (h *AuthHandler) Index(c *gin.Context) {
	render(c, 200, "index.html", gin.H{"Title": "Fleet Panel"})
}

// ShowLogin renders the login form; authenticated users go to the dashboard
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(302, "/dashboard")
		return
	}
	render(c, 200, "login.html", gin.H{
		"Title": "Sign in",
		"Form":  &services.RegistrationInput{},
	})
}

// Login authenticates the submitted credentials. Every failure shows the same
// message so the form never reveals whether a login exists.
func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(302, "/dashboard")
		return
	}

	login := c.PostForm("login")
	password := c.PostForm("password")

	user, err := h.authService.Authenticate(login, password, requestMeta(c))
	if err != nil {
		flash.Set(c, flash.Error, "Invalid login or password")
		c.Redirect(302, "/login")
		return
	}

	token, err := h.authService.CreateSession(user)
	if err != nil {
		h.log.Errorw("failed to create session", "login", login, "error", err)
		flash.Set(c, flash.Error, "Something went wrong, please try again")
		c.Redirect(302, "/login")
		return
	}

	maxAge := int((24 * time.Hour).Seconds())
	if d, err := time.ParseDuration(h.cfg.JWT.ExpiresIn); err == nil {
		maxAge = int(d.Seconds())
	}
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)

	flash.Set(c, flash.Success, "Signed in successfully")
	c.Redirect(302, "/dashboard")
}

// ShowRegister renders the registration form
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(302, "/dashboard")
		return
	}
	render(c, 200, "register.html", gin.H{
		"Title": "Register",
		"Form":  &services.RegistrationInput{},
	})
}

// Register creates a user account. Validation failures re-render the form
// with every violated rule and the submitted values minus the password.
func (h *AuthHandler) Register(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(302, "/dashboard")
		return
	}

	input := &services.RegistrationInput{
		Login:    c.PostForm("login"),
		Password: c.PostForm("password"),
		FullName: c.PostForm("full_name"),
		Phone:    c.PostForm("phone"),
		Email:    c.PostForm("email"),
	}

	_, fieldErrs, err := h.authService.Register(input, requestMeta(c))
	if err != nil {
		h.log.Errorw("registration failed", "login", input.Login, "error", err)
		flash.Set(c, flash.Error, "Something went wrong, please try again")
		c.Redirect(302, "/register")
		return
	}

	if len(fieldErrs) > 0 {
		input.Password = ""
		render(c, 200, "register.html", gin.H{
			"Title":  "Register",
			"Form":   input,
			"Errors": fieldErrs,
		})
		return
	}

	flash.Set(c, flash.Success, "Registration complete, please sign in")
	c.Redirect(302, "/login")
}

// Logout audits the logout, drops the session and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if session != nil {
		if err := h.authService.Logout(session, requestMeta(c)); err != nil {
			h.log.Errorw("failed to delete session", "user_id", session.UserID, "error", err)
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)

	flash.Set(c, flash.Info, "You have been signed out")
	c.Redirect(302, "/")
}
