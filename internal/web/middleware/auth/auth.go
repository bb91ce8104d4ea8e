package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GoMembership/GoMembership/internal/web/handler"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

const (
	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"
	// LogoutPath is reachable without a session.
	LogoutPath = "/logout"
	// HomePath is where logged-in users visiting the login page are sent.
	HomePath = "/roles"
)

// public paths never require a session.
var public = []string{"/static", "/metrics", "/checkalive"}

// Middleware is a Fiber middleware that checks for user authentication.
func Middleware(c *fiber.Ctx) error {
	var (
		isLoginPage  = IsLoginPage(c)
		isLogoutPage = IsLogoutPage(c)
	)

	originalURL := strings.ToLower(c.OriginalURL())
	for _, prefix := range public {
		if strings.HasPrefix(originalURL, prefix) {
			return c.Next()
		}
	}

	// Allow logout page without authentication
	if isLogoutPage {
		return c.Next()
	}

	sessData, sessionID, err := session.FromCtx(c)
	if err != nil || sessData.User.ID == 0 {
		// If we're already on the login page, don't redirect (would cause loop)
		if isLoginPage {
			return c.Next()
		}

		return c.Redirect(LoginPath)
	}

	if isLoginPage {
		return c.Redirect(HomePath)
	}

	// session state for handlers, templates and the access log
	c.Locals(handler.LocalCurrentUser, sessData.User)
	c.Locals(handler.LocalSession, sessData)
	c.Locals(handler.LocalSessionID, sessionID)

	return c.Next()
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, LoginPath)
}

// IsLogoutPage checks if the current request is for the logout page.
func IsLogoutPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, LogoutPath)
}
