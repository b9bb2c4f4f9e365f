// Package session stores per-visitor state across requests. The core
// does not coordinate access to a store; implementations provide their
// own synchronization.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Session associates a visitor with a bag of values until it expires.
type Session struct {
	ID        string
	Data      map[string]any
	ExpiresAt time.Time
}

// New creates a session with a random identifier.
func New(expiresAt time.Time) *Session {
	id := make([]byte, 16)
	if _, err := rand.Read(id); err != nil {
		panic("session: failed to read random bytes: " + err.Error())
	}
	return &Session{
		ID:        hex.EncodeToString(id),
		Data:      make(map[string]any),
		ExpiresAt: expiresAt,
	}
}

// Expired reports whether the session has expired as of now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Store persists sessions. Implementations must be safe for concurrent
// use by many workers.
type Store interface {
	// Create stores a new session.
	Create(s *Session) error
	// Load returns the session with the given id, or nil when absent.
	Load(id string) (*Session, error)
	// Save overwrites an existing session.
	Save(s *Session) error
	// Delete removes the session with the given id.
	Delete(id string) error
}
