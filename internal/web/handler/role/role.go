// Package role provides the role list, the role editor and its save endpoint.
package role

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/auth"
	"github.com/GoMembership/GoMembership/internal/config"
	controller "github.com/GoMembership/GoMembership/internal/db/controller/role"
	"github.com/GoMembership/GoMembership/internal/db/models"
	"github.com/GoMembership/GoMembership/internal/web/handler"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

const (
	// Path is the role list.
	Path = handler.RootPath + "roles"
	// PathEdit is the role editor, rol_id=0 creates a new role.
	PathEdit = Path + "/edit"
	// PathSave receives the editor form and the list actions.
	PathSave = Path + "/save"

	// TemplateList is the template of the role list.
	TemplateList = "roles/list"
	// TemplateEdit is the template of the role editor.
	TemplateEdit = "roles/edit"

	// ReplayKey names the rejected editor submission in the replay cache.
	ReplayKey = "roles_request"

	// TitleList is the page title of the role list.
	TitleList = "Roles"
	// TitleEdit is the page title when editing a role.
	TitleEdit = "Edit role"
	// TitleCreate is the page title when creating a role.
	TitleCreate = "Create role"

	// NavSection is the navigation section of all role pages.
	NavSection = "roles"

	// MsgInvalidParameter is shown for a malformed rol_id or mode.
	MsgInvalidParameter = "The request contains an invalid parameter."
	// MsgWebmasterProtected is shown when deleting or deactivating the webmaster role.
	MsgWebmasterProtected = "The webmaster role can not be deleted or deactivated."
)

// Save modes of PathSave.
const (
	ModeSave       = 2
	ModeDeactivate = 3
	ModeDelete     = 4
	ModeReactivate = 5
)

// Service is the role handler service.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	users       *auth.LocalProvider
	replay      *session.Replay
	validator   *validator.Validate
}

// Handler is the role handler.
var Handler = Service{}

// Init initializes the role handler and registers its routes.
// replay keeps rejected editor submissions until the editor shows them again.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service, replay *session.Replay) {
	if app == nil || cfg == nil || db == nil || authService == nil || replay == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService
	s.users = auth.NewLocalProvider(db)
	s.replay = replay
	s.validator = validator.New()

	manageRoles := auth.RequireRight(authService, (*auth.Service).ManageRoles)

	app.Get(Path, manageRoles, s.List)
	app.Get(PathEdit, manageRoles, s.Edit)
	app.Post(PathSave, manageRoles, s.Save)
}

// roleID reads the rol_id query parameter, absent means 0.
func roleID(c *fiber.Ctx) (uint, bool) {
	raw := c.Query("rol_id")
	if raw == "" {
		return 0, true
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(id), true
}

// sessionID is the key of the replay cache entries of the request.
func sessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(handler.LocalSessionID).(string); ok && id != "" {
		return id
	}

	return c.Cookies(session.CookieName)
}

// errDenied ends a request with the access denied page.
var errDenied = errors.New("access denied")

// loadRole returns the role if the user may edit it in the organization.
// Roles of other organizations are denied unless their category is global,
// only webmasters may touch the webmaster role.
func (s *Service) loadRole(sess *session.Data, id uint) (*models.Role, error) {
	r, err := controller.Get(s.db, id)
	if err != nil {
		return nil, err
	}

	if !r.Category.VisibleTo(sess.OrgID) {
		return nil, errDenied
	}

	if r.Webmaster {
		isWebmaster, err := s.authService.IsWebmaster(sess.User.ID, sess.OrgID)
		if err != nil {
			return nil, err
		}

		if !isWebmaster {
			return nil, errDenied
		}
	}

	return r, nil
}

// renderLoadError maps loadRole errors to the message pages.
func renderLoadError(c *fiber.Ctx, id uint, err error) error {
	switch {
	case errors.Is(err, errDenied):
		log.Warn().Uint("role_id", id).Msg("role belongs to another organization or is protected")
		return handler.Forbidden(c)
	case errors.Is(err, controller.ErrRoleNotFound):
		return handler.NotFound(c)
	default:
		log.Error().Err(err).Uint("role_id", id).Msg("failed to load role")
		return handler.InternalError(c)
	}
}
