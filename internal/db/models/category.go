package models

// Category types.
const (
	// CategoryTypeRole groups roles.
	CategoryTypeRole = "ROL"
	// CategoryTypeLink groups web links.
	CategoryTypeLink = "LNK"
)

// Category groups roles (or other items, see Type) for display and scoping.
// A category without an organization is shared by all organizations.
type Category struct {
	// ID is the unique identifier for the category.
	ID uint `gorm:"primaryKey"`
	// OrgID references the owning organization; nil marks a global category.
	OrgID *uint `gorm:"column:org_id;index"`
	// Organization is the associated organization, if any.
	Organization *Organization `gorm:"foreignKey:OrgID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
	// Type tells which kind of items the category groups (see CategoryTypeRole).
	Type string `gorm:"size:10;not null;index"`
	// Name is the display name of the category.
	Name string `gorm:"size:100;not null"`
	// Sequence orders categories of the same type.
	Sequence int `gorm:"not null"`
	// System marks categories managed by the application, hidden from normal selection.
	System bool `gorm:"column:is_system"`
	// Default marks the category preselected for new items.
	Default bool `gorm:"column:is_default"`
}

// TableName specifies the database table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// Global reports whether the category is shared by all organizations.
func (c Category) Global() bool {
	return c.OrgID == nil
}

// VisibleTo reports whether items of the category may be used by the organization.
func (c Category) VisibleTo(orgID uint) bool {
	return c.OrgID == nil || *c.OrgID == orgID
}
