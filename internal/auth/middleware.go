package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoMembership/GoMembership/internal/web/handler"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

// Check decides whether the user may continue, e.g. (*Service).ManageRoles.
type Check func(s *Service, userID uint64, orgID uint) (bool, error)

// WithRight returns a Check for a single right.
func WithRight(right Right) Check {
	return func(s *Service, userID uint64, orgID uint) (bool, error) {
		return s.HasRight(userID, orgID, right)
	}
}

// SessionFromCtx returns the session data stored by the login middleware,
// falling back to the session cookie.
func SessionFromCtx(c *fiber.Ctx) (*session.Data, bool) {
	if data, ok := c.Locals(handler.LocalSession).(*session.Data); ok && data != nil {
		return data, true
	}

	data, _, err := session.FromCtx(c)
	if err != nil || data.User.ID == 0 {
		return nil, false
	}

	return data, true
}

// RequireRight creates Fiber middleware that ends the request with the access denied page
// unless check passes.
func RequireRight(authService *Service, check Check) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionData, ok := SessionFromCtx(c)
		if !ok {
			log.Error().Msg("no valid session")
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}

		allowed, err := check(authService, sessionData.User.ID, sessionData.OrgID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Msg("failed to check rights")
			return handler.InternalError(c)
		}

		if !allowed {
			log.Warn().Uint64("user_id", sessionData.User.ID).Str("path", c.Path()).
				Msg("user lacks required rights")

			return handler.Forbidden(c)
		}

		return c.Next()
	}
}

// AddRightsToLocals is a Fiber middleware that adds the user's rights to fiber.Locals
// for conditional rendering in templates.
func AddRightsToLocals(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionData, ok := SessionFromCtx(c)
		if !ok {
			return c.Next()
		}

		rights, err := authService.Rights(sessionData.User.ID, sessionData.OrgID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", sessionData.User.ID).Msg("failed to get user rights")
			return c.Next()
		}

		c.Locals("rights", rights)
		c.Locals("hasRight", func(r string) bool {
			return rights[Right(r)]
		})

		return c.Next()
	}
}
