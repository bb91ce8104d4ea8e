// Package role provides the database access of the role editor and the role list.
package role

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoMembership/GoMembership/internal/db/models"
)

const (
	orgScope     = "(categories.org_id = ? OR categories.org_id IS NULL)"
	joinCategory = "JOIN categories ON categories.id = roles.category_id"
)

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a role with its category.
func Get(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Role

	result := db.Preload("Category").First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, fmt.Errorf("failed to load role %d: %w", id, result.Error)
	}

	return &r, nil
}

// GetCategory retrieves a category by its ID.
func GetCategory(db *gorm.DB, id uint) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Category

	result := db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}

		return nil, fmt.Errorf("failed to load category %d: %w", id, result.Error)
	}

	return &c, nil
}

// Categories returns the role categories of the organization and the global ones in display order.
// System categories are included only when withSystem is set.
func Categories(db *gorm.DB, orgID uint, withSystem bool) ([]models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var cats []models.Category

	q := db.Where("type = ?", models.CategoryTypeRole).
		Where("(org_id = ? OR org_id IS NULL)", orgID)
	if !withSystem {
		q = q.Where("is_system = ?", false)
	}

	if err := q.Order("sequence, name").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	return cats, nil
}

// List returns the roles of the organization ordered by category and name.
// valid selects the active or the deactivated roles.
func List(db *gorm.DB, orgID uint, valid bool) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role

	err := db.Model(&models.Role{}).
		Select("roles.*").
		Joins(joinCategory).
		Where(orgScope, orgID).
		Where("roles.valid = ?", valid).
		Order("categories.sequence, roles.name").
		Preload("Category").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	return roles, nil
}

// Selectable returns the valid and visible roles the organization may use as dependent roles.
func Selectable(db *gorm.DB, orgID uint) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role

	err := db.Model(&models.Role{}).
		Select("roles.*").
		Joins(joinCategory).
		Where(orgScope, orgID).
		Where("roles.valid = ? AND roles.visible = ?", true, true).
		Order("categories.sequence, roles.name").
		Preload("Category").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load selectable roles: %w", err)
	}

	return roles, nil
}

// DependentRoleIDs returns the child role ids of the role.
func DependentRoleIDs(db *gorm.DB, roleID uint) ([]uint, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var ids []uint

	err := db.Model(&models.RoleDependency{}).
		Where("parent_role_id = ?", roleID).
		Order("child_role_id").
		Pluck("child_role_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load dependent roles of %d: %w", roleID, err)
	}

	return ids, nil
}

// MemberCounts returns the number of non-leader members per role.
// Roles without members are missing from the map.
func MemberCounts(db *gorm.DB, roleIDs []uint) (map[uint]int64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	out := make(map[uint]int64, len(roleIDs))
	if len(roleIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		RoleID uint
		Count  int64
	}

	err := db.Model(&models.Member{}).
		Select("role_id, COUNT(*) AS count").
		Where("role_id IN ? AND leader = ?", roleIDs, false).
		Group("role_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	for _, r := range rows {
		out[r.RoleID] = r.Count
	}

	return out, nil
}

// GlobalLists returns the named global lists of the organization.
func GlobalLists(db *gorm.DB, orgID uint) ([]models.List, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var lists []models.List

	err := db.Where("org_id = ? AND is_global = ? AND name IS NOT NULL", orgID, true).
		Order("name").
		Find(&lists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}

	return lists, nil
}

// NameTaken reports whether another role of the category, visible to the organization, uses the name.
// Names compare case insensitive.
func NameTaken(db *gorm.DB, orgID, categoryID uint, name string, exceptID uint) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64

	err := db.Model(&models.Role{}).
		Joins(joinCategory).
		Where(orgScope, orgID).
		Where("roles.category_id = ? AND roles.id <> ?", categoryID, exceptID).
		Where("LOWER(roles.name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role name: %w", err)
	}

	return count > 0, nil
}

// Save creates or updates the role and replaces its dependent roles in one transaction.
// A role with a member cap can not have dependent roles, they are dropped.
func Save(db *gorm.DB, r *models.Role, dependents []uint, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if r.MaxMembers > 0 {
		dependents = nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if r.ID == 0 {
			r.CreatedBy = &userID
		} else {
			r.ChangedBy = &userID
			r.ChangedAt = &now
		}

		if err := tx.Omit(clause.Associations).Save(r).Error; err != nil {
			return fmt.Errorf("failed to save role: %w", err)
		}

		if err := tx.Where("parent_role_id = ?", r.ID).Delete(&models.RoleDependency{}).Error; err != nil {
			return fmt.Errorf("failed to remove dependent roles: %w", err)
		}

		seen := make(map[uint]bool, len(dependents))

		for _, child := range dependents {
			if child == 0 || child == r.ID || seen[child] {
				continue
			}

			seen[child] = true

			if err := tx.Omit(clause.Associations).Create(&models.RoleDependency{
				ParentRoleID: r.ID,
				ChildRoleID:  child,
				CreatedBy:    &userID,
			}).Error; err != nil {
				return fmt.Errorf("failed to add dependent role %d: %w", child, err)
			}
		}

		return nil
	})
}

// SetValid activates or deactivates the role.
func SetValid(db *gorm.DB, id uint, valid bool, userID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Role{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"valid":      valid,
			"changed_by": userID,
			"changed_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update role %d: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}

	return nil
}

// Delete removes the role with its memberships and dependencies.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_role_id = ? OR child_role_id = ?", id, id).
			Delete(&models.RoleDependency{}).Error; err != nil {
			return fmt.Errorf("failed to remove dependencies of role %d: %w", id, err)
		}

		if err := tx.Where("role_id = ?", id).Delete(&models.Member{}).Error; err != nil {
			return fmt.Errorf("failed to remove members of role %d: %w", id, err)
		}

		result := tx.Delete(&models.Role{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete role %d: %w", id, result.Error)
		}

		if result.RowsAffected == 0 {
			return ErrRoleNotFound
		}

		return nil
	})
}

// DeactivateExpired deactivates the valid roles whose end date lies before day.
// It returns the number of deactivated roles.
func DeactivateExpired(db *gorm.DB, day time.Time) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())

	result := db.Model(&models.Role{}).
		Where("valid = ? AND webmaster = ? AND end_date IS NOT NULL AND end_date < ?", true, false, start).
		Update("valid", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate expired roles: %w", result.Error)
	}

	return result.RowsAffected, nil
}
