package role

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoMembership/GoMembership/internal/auth"
	"github.com/GoMembership/GoMembership/internal/db/controller/preference"
	controller "github.com/GoMembership/GoMembership/internal/db/controller/role"
	"github.com/GoMembership/GoMembership/internal/db/models"
	"github.com/GoMembership/GoMembership/internal/web/handler"
	"github.com/GoMembership/GoMembership/internal/web/session"
)

// Save handles the editor form (mode 2) and the list actions deactivate (3),
// delete (4) and reactivate (5).
func (s *Service) Save(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromCtx(c)
	if !ok {
		return handler.Forbidden(c)
	}

	id, ok := roleID(c)
	if !ok {
		return handler.Message(c, fiber.StatusBadRequest, TitleEdit, MsgInvalidParameter)
	}

	mode, err := strconv.Atoi(c.Query("mode"))
	if err != nil {
		return handler.Message(c, fiber.StatusBadRequest, TitleEdit, MsgInvalidParameter)
	}

	switch mode {
	case ModeSave:
		return s.save(c, sess, id)
	case ModeDeactivate, ModeDelete, ModeReactivate:
		return s.changeState(c, sess, id, mode)
	default:
		return handler.Message(c, fiber.StatusBadRequest, TitleEdit, MsgInvalidParameter)
	}
}

func (s *Service) save(c *fiber.Ctx, sess *session.Data, id uint) error {
	var (
		r             = models.NewRole()
		systemAllowed bool
	)

	if id > 0 {
		loaded, err := s.loadRole(sess, id)
		if err != nil {
			return renderLoadError(c, id, err)
		}

		r = *loaded
		systemAllowed = r.Category.System
	}

	var form Form
	if err := c.BodyParser(&form); err != nil {
		log.Warn().Err(err).Uint("role_id", id).Msg("failed to parse role form")
		return s.reject(c, id, form, ErrInvalidFormData)
	}

	if err := form.Validate(s.validator); err != nil {
		return s.reject(c, id, form, err)
	}

	mods, err := preference.LoadModules(s.db, sess.OrgID)
	if err != nil {
		log.Error().Err(err).Uint("org_id", sess.OrgID).Msg("failed to load module preferences")
		return handler.InternalError(c)
	}

	if err = form.Apply(&r, mods); err != nil {
		return s.reject(c, id, form, err)
	}

	if r.Name == "" {
		return s.reject(c, id, form, ErrNameRequired)
	}

	if err = s.checkCategory(sess.OrgID, r.CategoryID, systemAllowed); err != nil {
		if !errors.Is(err, ErrInvalidCategory) {
			log.Error().Err(err).Uint("category_id", r.CategoryID).Msg("failed to load category")
			return handler.InternalError(c)
		}

		return s.reject(c, id, form, err)
	}

	if err = s.checkList(sess.OrgID, r.ListID); err != nil {
		if !errors.Is(err, ErrInvalidList) {
			log.Error().Err(err).Uint("org_id", sess.OrgID).Msg("failed to load lists")
			return handler.InternalError(c)
		}

		return s.reject(c, id, form, err)
	}

	taken, err := controller.NameTaken(s.db, sess.OrgID, r.CategoryID, r.Name, r.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check role name")
		return handler.InternalError(c)
	}

	if taken {
		return s.reject(c, id, form, ErrNameTaken)
	}

	dependents, err := s.allowedDependents(sess.OrgID, r.ID, form.DependentRoles)
	if err != nil {
		log.Error().Err(err).Msg("failed to load selectable roles")
		return handler.InternalError(c)
	}

	if err = controller.Save(s.db, &r, dependents, sess.User.ID); err != nil {
		log.Error().Err(err).Uint("role_id", id).Msg("failed to save role")
		return handler.InternalError(c)
	}

	log.Info().Uint("role_id", r.ID).Str("name", r.Name).Uint64("user_id", sess.User.ID).Msg("role saved")

	return c.Redirect(Path)
}

// reject keeps the submission for the editor and sends the user back to it.
func (s *Service) reject(c *fiber.Ctx, id uint, form Form, cause error) error {
	log.Debug().Err(cause).Uint("role_id", id).Msg("role form rejected")

	form.Error = cause.Error()
	if err := s.replay.Put(sessionID(c), ReplayKey, form); err != nil {
		log.Error().Err(err).Msg("failed to keep rejected role form")
		return handler.InternalError(c)
	}

	return c.Redirect(fmt.Sprintf("%s?rol_id=%d", PathEdit, id))
}

// checkCategory returns ErrInvalidCategory unless the category groups roles of the organization.
// System categories are only allowed for roles already in one.
func (s *Service) checkCategory(orgID, categoryID uint, systemAllowed bool) error {
	cat, err := controller.GetCategory(s.db, categoryID)
	if errors.Is(err, controller.ErrCategoryNotFound) {
		return ErrInvalidCategory
	}

	if err != nil {
		return err
	}

	if cat.Type != models.CategoryTypeRole || !cat.VisibleTo(orgID) || (cat.System && !systemAllowed) {
		return ErrInvalidCategory
	}

	return nil
}

// checkList returns ErrInvalidList unless the list is empty or a global list of the organization.
func (s *Service) checkList(orgID uint, listID *uint) error {
	if listID == nil {
		return nil
	}

	lists, err := controller.GlobalLists(s.db, orgID)
	if err != nil {
		return err
	}

	for _, l := range lists {
		if l.ID == *listID {
			return nil
		}
	}

	return ErrInvalidList
}

// allowedDependents drops submitted roles the organization can not select.
func (s *Service) allowedDependents(orgID, self uint, submitted []uint) ([]uint, error) {
	if len(submitted) == 0 {
		return nil, nil
	}

	selectable, err := controller.Selectable(s.db, orgID)
	if err != nil {
		return nil, err
	}

	allowed := make([]uint, 0, len(submitted))

	for _, r := range selectable {
		if r.ID != self && slices.Contains(submitted, r.ID) {
			allowed = append(allowed, r.ID)
		}
	}

	return allowed, nil
}

// changeState deactivates, reactivates or deletes the role.
func (s *Service) changeState(c *fiber.Ctx, sess *session.Data, id uint, mode int) error {
	if id == 0 {
		return handler.Message(c, fiber.StatusBadRequest, TitleList, MsgInvalidParameter)
	}

	r, err := s.loadRole(sess, id)
	if err != nil {
		return renderLoadError(c, id, err)
	}

	if r.Webmaster {
		return handler.Message(c, fiber.StatusBadRequest, TitleList, MsgWebmasterProtected)
	}

	target := Path

	switch mode {
	case ModeDelete:
		err = controller.Delete(s.db, id)
	case ModeReactivate:
		err = controller.SetValid(s.db, id, true, sess.User.ID)
		target = Path + "?inactive=1"
	default:
		err = controller.SetValid(s.db, id, false, sess.User.ID)
	}

	if err != nil {
		log.Error().Err(err).Uint("role_id", id).Int("mode", mode).Msg("failed to change role")
		return handler.InternalError(c)
	}

	log.Info().Uint("role_id", id).Int("mode", mode).Uint64("user_id", sess.User.ID).Msg("role changed")

	return c.Redirect(target)
}
