package auth

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/GoMembership/GoMembership/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(login, password string) (*models.User, error) {
	var user models.User

	err := p.db.Where("login = ? AND deleted_at IS NULL", strings.TrimSpace(login)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

// CreateUser creates a new active local user.
func (p *LocalProvider) CreateUser(login, email, password, firstName, lastName string) (*models.User, error) {
	var existingUser models.User

	err := p.db.Where("login = ? OR email = ?", login, email).First(&existingUser).Error
	if err == nil {
		return nil, ErrUserNameOrEmailExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.User{
		Active:    true,
		Login:     login,
		Email:     email,
		Password:  models.HashPassword(password),
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(userID uint64) (*models.User, error) {
	var user models.User

	err := p.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// DisplayNames returns "first last" (or the login) of the users keyed by id.
func (p *LocalProvider) DisplayNames(ids ...uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []models.User
	if err := p.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	for _, u := range users {
		name := strings.TrimSpace(u.FirstName + " " + u.LastName)
		if name == "" {
			name = u.Login
		}

		out[u.ID] = name
	}

	return out, nil
}

// AddMember makes the user a member of the role.
func (p *LocalProvider) AddMember(userID uint64, roleID uint, leader bool) error {
	m := models.Member{UserID: userID, RoleID: roleID, Leader: leader}

	if err := p.db.Omit("Role", "User").Create(&m).Error; err != nil {
		return fmt.Errorf("failed to add user %d to role %d: %w", userID, roleID, err)
	}

	return nil
}
