package models

// List is a saved member list configuration of an organization.
type List struct {
	// ID is the unique identifier for the list.
	ID uint `gorm:"primaryKey"`
	// OrgID references the owning organization.
	OrgID uint `gorm:"column:org_id;not null;index"`
	// Name of the list; unnamed lists are a user's last used configuration.
	Name *string `gorm:"size:255"`
	// Global lists are offered to all users of the organization.
	Global bool `gorm:"column:is_global"`
}

// TableName specifies the database table name for the List model.
func (List) TableName() string {
	return "lists"
}
