package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/db/models"
)

// Service answers which rights a user has in an organization.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// memberRoles selects the valid roles of the user usable in the organization.
func (s *Service) memberRoles(userID uint64, orgID uint) *gorm.DB {
	return s.db.Table("roles").
		Joins("JOIN members ON members.role_id = roles.id").
		Joins("JOIN categories ON categories.id = roles.category_id").
		Where("members.user_id = ? AND roles.valid = ?", userID, true).
		Where("(categories.org_id = ? OR categories.org_id IS NULL)", orgID)
}

// HasRight checks if one of the user's roles grants the right.
func (s *Service) HasRight(userID uint64, orgID uint, right Right) (bool, error) {
	column, ok := right.Column()
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownRight, right)
	}

	var count int64

	err := s.memberRoles(userID, orgID).
		Where(column+" = ?", true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check right %s: %w", right, err)
	}

	return count > 0, nil
}

// IsWebmaster checks if the user is a member of the webmaster role.
func (s *Service) IsWebmaster(userID uint64, orgID uint) (bool, error) {
	return s.HasRight(userID, orgID, RightWebmaster)
}

// ManageRoles checks if the user may create and edit roles.
// Webmasters always may.
func (s *Service) ManageRoles(userID uint64, orgID uint) (bool, error) {
	var count int64

	err := s.memberRoles(userID, orgID).
		Where("(roles.assign_roles = ? OR roles.webmaster = ?)", true, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role management: %w", err)
	}

	return count > 0, nil
}

// Rights returns every right the user holds in the organization.
func (s *Service) Rights(userID uint64, orgID uint) (map[Right]bool, error) {
	var roles []models.Role

	if err := s.memberRoles(userID, orgID).Select("roles.*").Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("failed to load roles of user %d: %w", userID, err)
	}

	out := make(map[Right]bool, len(rightColumns))

	for _, r := range roles {
		out[RightAssignRoles] = out[RightAssignRoles] || r.AssignRoles
		out[RightAllListsView] = out[RightAllListsView] || r.AllListsView
		out[RightApproveUsers] = out[RightApproveUsers] || r.ApproveUsers
		out[RightEditUser] = out[RightEditUser] || r.EditUser
		out[RightMailToAll] = out[RightMailToAll] || r.MailToAll
		out[RightProfile] = out[RightProfile] || r.Profile
		out[RightAnnouncements] = out[RightAnnouncements] || r.Announcements
		out[RightDates] = out[RightDates] || r.Dates
		out[RightPhoto] = out[RightPhoto] || r.Photo
		out[RightDownload] = out[RightDownload] || r.Download
		out[RightGuestbook] = out[RightGuestbook] || r.Guestbook
		out[RightGuestbookComments] = out[RightGuestbookComments] || r.GuestbookComments
		out[RightWeblinks] = out[RightWeblinks] || r.Weblinks
		out[RightWebmaster] = out[RightWebmaster] || r.Webmaster
	}

	return out, nil
}
