// Package models contains database model definitions.
package models

// Organization is a club or association served by the application.
// Categories, lists and preferences are scoped to an organization.
type Organization struct {
	// ID is the unique identifier for the organization.
	ID uint `gorm:"primaryKey"`
	// ShortName is the unique abbreviation used in the configuration (e.g. "DEMO").
	ShortName string `gorm:"unique;size:10;not null"`
	// LongName is the full name of the organization.
	LongName string `gorm:"size:255;not null"`
	// Homepage is the url of the organization's website.
	Homepage string `gorm:"size:255"`
}

// TableName specifies the database table name for the Organization model.
func (Organization) TableName() string {
	return "organizations"
}
