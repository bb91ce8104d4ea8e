// Package organization looks up the organizations served by the application.
package organization

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/db/models"
)

var (
	// ErrOrganizationNotFound is returned when no organization has the short name.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByShortName returns the organization with the short name, ignoring case.
func GetByShortName(db *gorm.DB, shortName string) (*models.Organization, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var org models.Organization

	err := db.Where("UPPER(short_name) = ?", strings.ToUpper(strings.TrimSpace(shortName))).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, shortName)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get organization %s: %w", shortName, err)
	}

	return &org, nil
}

// Ensure returns the organization with the short name and creates it when missing.
func Ensure(db *gorm.DB, shortName, longName string) (*models.Organization, error) {
	org, err := GetByShortName(db, shortName)
	if err == nil || !errors.Is(err, ErrOrganizationNotFound) {
		return org, err
	}

	org = &models.Organization{ShortName: strings.ToUpper(strings.TrimSpace(shortName)), LongName: longName}
	if org.LongName == "" {
		org.LongName = org.ShortName
	}

	if err := db.Create(org).Error; err != nil {
		return nil, fmt.Errorf("failed to create organization %s: %w", shortName, err)
	}

	return org, nil
}
