// Package flash implements one-shot notices carried across a redirect in a
// short-lived cookie and cleared on first read.
package flash

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const cookieName = "panel_flash"

// Notice categories rendered by the pages.
const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

// Set attaches a notice to the next rendered page
func Set(c *gin.Context, category, message string) {
	value := url.QueryEscape(category + "|" + message)
	c.SetCookie(cookieName, value, 300, "/", "", false, true)
}

// Pop reads and clears the pending notice, if any
func Pop(c *gin.Context) (category, message string, ok bool) {
	raw, err := c.Cookie(cookieName)
	if err != nil {
		return "", "", false
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	value, err := url.QueryUnescape(raw)
	if err != nil {
		return "", "", false
	}
	category, message, ok = strings.Cut(value, "|")
	return category, message, ok
}
