package models

import "time"

// Member assigns a user to a role.
type Member struct {
	// ID is the unique identifier for the membership.
	ID uint64 `gorm:"primaryKey"`
	// RoleID references the role.
	RoleID uint `gorm:"column:role_id;not null;index"`
	// Role is the associated role.
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// UserID references the user.
	UserID uint64 `gorm:"column:user_id;not null;index"`
	// User is the associated user.
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Leader marks the user as a leader of the role (see Role.LeaderRights).
	Leader bool
	// CreatedAt is the timestamp when the membership was created (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the Member model.
func (Member) TableName() string {
	return "members"
}
