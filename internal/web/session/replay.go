package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Replay holds a rejected form submission of one session until it is shown again.
// Entries are consumed by Take, a second Take finds nothing.
type Replay struct {
	storage fiber.Storage
	exp     time.Duration
}

// NewReplay creates a replay store on top of the session storage.
func NewReplay(storage fiber.Storage, exp time.Duration) *Replay {
	return &Replay{storage: storage, exp: exp}
}

func replayKey(sessionID, name string) string {
	return sessionID + ":" + name
}

// Put stores v for the session under name, replacing an earlier entry.
func (r *Replay) Put(sessionID, name string, v any) error {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	return r.storage.Set(replayKey(sessionID, name), out, r.exp)
}

// Take decodes the entry stored under name into v and deletes it.
// It reports false when there is no entry.
func (r *Replay) Take(sessionID, name string, v any) (bool, error) {
	key := replayKey(sessionID, name)

	raw, err := r.storage.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if len(raw) == 0 {
		return false, nil
	}

	if err = r.storage.Delete(key); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", name, err)
	}

	if err = json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	return true, nil
}
