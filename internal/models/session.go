package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind the session cookie. Only the
// sha256 of the opaque token is stored.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
