// Package preference provides read and write access to the preferences of an organization.
package preference

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/db/models"
)

// Preference names.
const (
	EnableMailModule          = "enable_mail_module"
	EnableAnnouncementsModule = "enable_announcements_module"
	EnableDatesModule         = "enable_dates_module"
	EnablePhotoModule         = "enable_photo_module"
	EnableDownloadModule      = "enable_download_module"
	EnableGuestbookModule     = "enable_guestbook_module"
	EnableGbookComments4All   = "enable_gbook_comments4all"
	EnableWeblinksModule      = "enable_weblinks_module"
	SystemCurrency            = "system_currency"

	scopeQueryPattern = "org_id = ? AND name = ?"
)

var (
	// ErrPreferenceNotFound is returned when a preference is not found.
	ErrPreferenceNotFound = errors.New("preference not found")
	// ErrPreferenceNameEmpty is returned when a preference name is empty.
	ErrPreferenceNameEmpty = errors.New("preference name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Modules are the module switches deciding which role rights the editor offers.
type Modules struct {
	Mail                  bool
	Announcements         bool
	Dates                 bool
	Photo                 bool
	Download              bool
	Guestbook             bool
	GuestbookComments4All bool
	Weblinks              bool
	Currency              string
}

// Get retrieves a preference of the organization by its name.
func Get(db *gorm.DB, orgID uint, name string) (*models.Preference, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPreferenceNameEmpty
	}

	var p models.Preference
	result := db.Where(scopeQueryPattern, orgID, name).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// GetAll retrieves all preferences of the organization keyed by name.
func GetAll(db *gorm.DB, orgID uint) (map[string]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var prefs []models.Preference
	if err := db.Where("org_id = ?", orgID).Find(&prefs).Error; err != nil {
		return nil, err
	}

	out := make(map[string]string, len(prefs))
	for _, p := range prefs {
		out[p.Name] = p.Value
	}

	return out, nil
}

// Set creates or updates a preference of the organization (upsert operation).
func Set(db *gorm.DB, orgID uint, name, value string) (*models.Preference, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrPreferenceNameEmpty
	}

	p, err := Get(db, orgID, name)
	if errors.Is(err, ErrPreferenceNotFound) {
		p = &models.Preference{OrgID: orgID, Name: name, Value: value}
		if err = db.Create(p).Error; err != nil {
			return nil, err
		}

		return p, nil
	}
	if err != nil {
		return nil, err
	}

	p.Value = value
	if err = db.Save(p).Error; err != nil {
		return nil, err
	}

	return p, nil
}

// Delete removes a preference of the organization.
func Delete(db *gorm.DB, orgID uint, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrPreferenceNameEmpty
	}

	result := db.Where(scopeQueryPattern, orgID, name).Delete(&models.Preference{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPreferenceNotFound
	}

	return nil
}

// LoadModules reads the module switches of the organization.
// Missing or unparsable switches are off.
func LoadModules(db *gorm.DB, orgID uint) (Modules, error) {
	all, err := GetAll(db, orgID)
	if err != nil {
		return Modules{}, err
	}

	on := func(name string) bool {
		b, err := strconv.ParseBool(all[name])
		return err == nil && b
	}

	return Modules{
		Mail:                  on(EnableMailModule),
		Announcements:         on(EnableAnnouncementsModule),
		Dates:                 on(EnableDatesModule),
		Photo:                 on(EnablePhotoModule),
		Download:              on(EnableDownloadModule),
		Guestbook:             on(EnableGuestbookModule),
		GuestbookComments4All: on(EnableGbookComments4All),
		Weblinks:              on(EnableWeblinksModule),
		Currency:              all[SystemCurrency],
	}, nil
}
