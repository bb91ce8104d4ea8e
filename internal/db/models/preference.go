package models

// Preference is a named setting of an organization, such as a module switch.
type Preference struct {
	ID    uint   `gorm:"primaryKey"`
	OrgID uint   `gorm:"column:org_id;not null;uniqueIndex:idx_org_preference"`
	Name  string `gorm:"size:50;not null;uniqueIndex:idx_org_preference"`
	Value string `gorm:"size:255"`
}
