package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/auth"
	"github.com/GoMembership/GoMembership/internal/config"
	"github.com/GoMembership/GoMembership/internal/db/controller/organization"
	"github.com/GoMembership/GoMembership/internal/db/models"
	"github.com/GoMembership/GoMembership/internal/web/handler"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"
	// RedirectPath is where a successful login continues.
	RedirectPath = "/roles"
	// Template is the login page.
	Template = "login"
)

// Form is the submitted login form.
type Form struct {
	Login    string `form:"login" validate:"required,max=100"`
	Password string `form:"password" validate:"required,max=256"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	localAuth *auth.LocalProvider
	validate  *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.localAuth = auth.NewLocalProvider(db)
	s.validate = validator.New(validator.WithRequiredStructEnabled())

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(Template, fiber.Map{
		"Title": s.cfg.Title,
	})
}

func (s *Service) renderError(c *fiber.Ctx, err error) error {
	return c.Render(Template, fiber.Map{
		"Title": s.cfg.Title,
		"error": err.Error(),
	})
}

// authenticate maps provider errors to the messages shown on the login page.
func (s *Service) authenticate(login, password string) (*models.User, error) {
	user, err := s.localAuth.Authenticate(login, password)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		return nil, ErrInvalidCredentials
	case errors.Is(err, auth.ErrUserAccountDisabled):
		return nil, ErrAccountDisabled
	default:
		log.Error().Err(err).Str("login", login).Msg("local authentication failed")
		return nil, ErrInternalServerError
	}
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.renderError(c, ErrInvalidFormData)
	}

	if err := s.validate.Struct(form); err != nil {
		return s.renderError(c, ErrInvalidFormData)
	}

	user, err := s.authenticate(form.Login, form.Password)
	if err != nil {
		log.Warn().Str("login", form.Login).Err(err).Msg("login failed")
		return s.renderError(c, err)
	}

	org, err := organization.GetByShortName(s.db, s.cfg.Organization)
	if err != nil {
		log.Error().Err(err).Str("organization", s.cfg.Organization).Msg("failed to load organization")
		return s.renderError(c, ErrInternalServerError)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.renderError(c, ErrInternalServerError)
	}

	user.Password = ""
	userSession := &session.Data{
		User:  *user,
		OrgID: org.ID,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.renderError(c, ErrInternalServerError)
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	log.Info().Str("login", user.Login).Uint("org_id", org.ID).Msg("user logged in")

	return c.Redirect(RedirectPath)
}
