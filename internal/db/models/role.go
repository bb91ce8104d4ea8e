package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ListView is the audience allowed to see the member list of a role.
type ListView int

// List view levels.
const (
	ListViewNobody ListView = iota
	ListViewRoleMembers
	ListViewAllMembers
)

// MailLevel is the audience allowed to send mails to a role.
type MailLevel int

// Mail levels.
const (
	MailNobody MailLevel = iota
	MailRoleMembers
	MailAllMembers
	MailGuests
)

// LeaderRights are the extra rights of role leaders.
type LeaderRights int

// Leader rights.
const (
	LeaderNone LeaderRights = iota
	LeaderAssign
	LeaderEdit
	LeaderAssignEdit
)

// CostPeriod is the number of payments per year, or CostPeriodUnique for a single payment.
type CostPeriod int

// Cost periods.
const (
	CostPeriodUnique     CostPeriod = -1
	CostPeriodNone       CostPeriod = 0
	CostPeriodYearly     CostPeriod = 1
	CostPeriodHalfYearly CostPeriod = 2
	CostPeriodQuarterly  CostPeriod = 4
	CostPeriodMonthly    CostPeriod = 12
)

// Role is a named membership grouping of an organization carrying a set of rights.
// Members of a valid role receive its rights.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// CategoryID references the category the role belongs to.
	CategoryID uint `gorm:"column:category_id;not null;index"`
	// Category is the associated category (enforced with a foreign key constraint).
	Category Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// Name is the display name of the role, unique within its category.
	Name string `gorm:"size:100;not null"`
	// Description is a free text shown next to the role.
	Description string `gorm:"size:4000"`
	// ListID references the default list used to show the members of the role.
	ListID *uint `gorm:"column:list_id"`

	// ThisListView is the audience allowed to see the member list.
	ThisListView ListView `gorm:"not null"`
	// MailThisRole is the audience allowed to send mails to the role.
	MailThisRole MailLevel `gorm:"not null"`
	// LeaderRights are the extra rights of the role leaders.
	LeaderRights LeaderRights `gorm:"not null"`
	// MaxMembers caps the number of members; 0 means unlimited.
	MaxMembers int `gorm:"not null"`
	// Cost is the membership fee, null when there is none.
	Cost decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	// CostPeriod is the payment interval of Cost.
	CostPeriod CostPeriod `gorm:"not null"`

	// StartDate and EndDate limit the period of an event role.
	StartDate *datatypes.Date
	EndDate   *datatypes.Date
	// StartTime and EndTime are the meeting hours.
	StartTime *datatypes.Time
	EndTime   *datatypes.Time
	// Weekday of the meeting, 0 none, 1 monday to 7 sunday.
	Weekday int `gorm:"not null"`
	// Location of the meeting.
	Location string `gorm:"size:100"`

	// DefaultRegistration assigns the role to newly registered users.
	DefaultRegistration bool

	// Rights granted to the members.
	AssignRoles       bool
	AllListsView      bool
	ApproveUsers      bool
	EditUser          bool
	MailToAll         bool
	Profile           bool
	Announcements     bool
	Dates             bool
	Photo             bool
	Download          bool
	Guestbook         bool
	GuestbookComments bool
	Weblinks          bool

	// Webmaster marks the protected administrator role.
	Webmaster bool
	// Valid is false for deactivated roles.
	Valid bool
	// Visible is false for roles hidden from member lists.
	Visible bool

	// CreatedBy references the user who created the role.
	CreatedBy *uint64
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// ChangedBy references the user who changed the role last.
	ChangedBy *uint64
	// ChangedAt is the timestamp of the last change.
	ChangedAt *time.Time
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}

// NewRole returns a role with the defaults of the editor: members see the list, all members may mail.
func NewRole() Role {
	return Role{
		ThisListView: ListViewRoleMembers,
		MailThisRole: MailAllMembers,
		Valid:        true,
		Visible:      true,
	}
}

// Expired reports whether the role has an end date before day.
func (r Role) Expired(day time.Time) bool {
	if r.EndDate == nil {
		return false
	}

	end := time.Time(*r.EndDate)
	y, m, d := day.Date()

	return end.Before(time.Date(y, m, d, 0, 0, 0, 0, end.Location()))
}
