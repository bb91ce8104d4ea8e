// Package logout ends the session of the current user.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoMembership/GoMembership/internal/config"
	"github.com/GoMembership/GoMembership/internal/web/handler"
	"github.com/GoMembership/GoMembership/internal/web/handler/login"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

// Path is the logout route.
const Path = "/logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	// logout route (outside auth middleware protection)
	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	if sessionID := c.Cookies(session.CookieName); sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	// Clear the session cookie
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(login.Path)
}
