// Package session keeps the login state and short-lived form state of a browser session.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/GoMembership/GoMembership/internal/db/models"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// ErrNoSession is returned when the session id is unknown or expired.
var ErrNoSession = errors.New("no session")

// Store is the global session store instance.
var Store *session.Store

// Data represents the session data structure.
type Data struct {
	User  models.User
	OrgID uint // organization the user works in
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return ErrNoSession
	}

	return json.Unmarshal(byteData, s)
}

// Delete removes the session data of the given session ID.
func Delete(sessionID string) error {
	return Store.Storage.Delete(sessionID)
}

// FromCtx reads the session data of the request cookie.
func FromCtx(c *fiber.Ctx) (*Data, string, error) {
	sessionID := c.Cookies(CookieName)
	if sessionID == "" {
		return nil, "", ErrNoSession
	}

	data := new(Data)
	if err := data.Read(sessionID); err != nil {
		return nil, sessionID, err
	}

	return data, sessionID, nil
}

// Init initializes the session store with the provided storage backend.
// A nil storage keeps sessions in memory.
func Init(storage fiber.Storage, exp time.Duration) {
	Store = session.New(session.Config{
		Storage:    storage,
		Expiration: exp,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
