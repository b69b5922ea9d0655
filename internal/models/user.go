package models

import (
	"time"

	"github.com/google/uuid"
)

// User is created at first successful domain-gated login with an empty
// profile. Profile fields are written exactly once by the profile
// completion flow, which also flips ProfileCompleted.
type User struct {
	ID               uuid.UUID `json:"id"`
	GoogleID         string    `json:"-"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Nickname         string    `json:"nickname"`
	Year             *int      `json:"year,omitempty"`
	Department       string    `json:"department"`
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
