package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User represents a user account of the membership database.
// Rights come from the roles the user is a member of.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the user account is active and can log in.
	Active bool
	// Login is the unique name for login.
	Login string `gorm:"unique;size:100;not null"`
	// Email is the user's email address.
	Email string `gorm:"size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete timestamp (nil if not deleted, managed by GORM).
	DeletedAt *time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// LoginName returns the login, used by the access log.
func (u User) LoginName() string {
	return u.Login
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// It uses the default Argon2id parameters for secure password hashing.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// Returns true if the password matches, false otherwise.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
