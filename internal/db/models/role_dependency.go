package models

import "time"

// RoleDependency makes members of the child role members of the parent role.
// The dependent roles of a role R are the rows with ParentRoleID R.
type RoleDependency struct {
	// ParentRoleID is the role whose membership derives from the child.
	ParentRoleID uint `gorm:"primaryKey;column:parent_role_id"`
	// ChildRoleID is the role providing the members.
	ChildRoleID uint `gorm:"primaryKey;column:child_role_id"`
	// Child is the associated child role.
	// When a role is deleted, its dependencies are removed (CASCADE).
	Child Role `gorm:"foreignKey:ChildRoleID;constraint:OnDelete:CASCADE"`
	// CreatedBy references the user who created the dependency.
	CreatedBy *uint64
	// CreatedAt is the timestamp when the dependency was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the RoleDependency model.
func (RoleDependency) TableName() string {
	return "role_dependencies"
}
