package daemon

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/auth"
	"github.com/GoMembership/GoMembership/internal/config"
	"github.com/GoMembership/GoMembership/internal/db/controller/organization"
	"github.com/GoMembership/GoMembership/internal/db/controller/preference"
	"github.com/GoMembership/GoMembership/internal/db/models"
)

const (
	seedLogin    = "admin"
	seedPassword = "changeme"
)

// defaultPreferences are written when the organization has no value yet.
var defaultPreferences = map[string]string{
	preference.EnableMailModule:          "true",
	preference.EnableAnnouncementsModule: "true",
	preference.EnableDatesModule:         "true",
	preference.EnablePhotoModule:         "true",
	preference.EnableDownloadModule:      "true",
	preference.EnableGuestbookModule:     "true",
	preference.EnableGbookComments4All:   "false",
	preference.EnableWeblinksModule:      "true",
	preference.SystemCurrency:            "EUR",
}

// seed prepares a fresh installation: the configured organization, its preferences,
// a role category with the webmaster and member roles and an admin account.
// Existing data is left alone.
func seed(cfg *config.Config, db *gorm.DB) error {
	org, err := organization.Ensure(db, cfg.Organization, cfg.Title)
	if err != nil {
		return err
	}

	current, err := preference.GetAll(db, org.ID)
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	for name, value := range defaultPreferences {
		if _, ok := current[name]; ok {
			continue
		}

		if _, err = preference.Set(db, org.ID, name, value); err != nil {
			return fmt.Errorf("failed to write preference %s: %w", name, err)
		}
	}

	var roles int64
	if err = db.Model(&models.Role{}).Count(&roles).Error; err != nil {
		return fmt.Errorf("failed to count roles: %w", err)
	}

	if roles > 0 {
		return nil
	}

	orgID := org.ID
	category := models.Category{
		OrgID:    &orgID,
		Type:     models.CategoryTypeRole,
		Name:     "Common",
		Sequence: 1,
		Default:  true,
	}

	if err = db.Create(&category).Error; err != nil {
		return fmt.Errorf("failed to create role category: %w", err)
	}

	webmaster := models.NewRole()
	webmaster.CategoryID = category.ID
	webmaster.Name = "Webmaster"
	webmaster.Description = "Members of this role may change all settings."
	webmaster.Webmaster = true
	webmaster.AssignRoles = true
	webmaster.AllListsView = true
	webmaster.ApproveUsers = true
	webmaster.EditUser = true
	webmaster.MailToAll = true
	webmaster.Profile = true
	webmaster.Announcements = true
	webmaster.Dates = true
	webmaster.Photo = true
	webmaster.Download = true
	webmaster.Guestbook = true
	webmaster.GuestbookComments = true
	webmaster.Weblinks = true

	member := models.NewRole()
	member.CategoryID = category.ID
	member.Name = "Member"
	member.Description = "All members of the organization."
	member.DefaultRegistration = true
	member.Profile = true

	for _, r := range []*models.Role{&webmaster, &member} {
		if err = db.Create(r).Error; err != nil {
			return fmt.Errorf("failed to create role %s: %w", r.Name, err)
		}
	}

	users := auth.NewLocalProvider(db)

	admin, err := users.CreateUser(seedLogin, "webmaster@localhost", seedPassword, "", "Webmaster")
	if errors.Is(err, auth.ErrUserNameOrEmailExists) {
		log.Warn().Str("login", seedLogin).Msg("seed user exists, assign the webmaster role manually")
		return nil
	}

	if err != nil {
		return err
	}

	if err = users.AddMember(admin.ID, webmaster.ID, false); err != nil {
		return err
	}

	log.Warn().Str("login", seedLogin).Msg("created the initial webmaster account, change its password")

	return nil
}
