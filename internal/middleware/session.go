package middleware

import (
	"context"

	"github.com/blinkwall/blinkwall-api/internal/models"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	// SessionCookie is the name of the HTTP-only session cookie.
	SessionCookie = "bw_session"

	UserKey = "user"
)

type SessionValidator interface {
	Validate(ctx context.Context, token string) (uuid.UUID, error)
}

type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth resolves the session cookie to an existing user and attaches the
// user to the request context. It holds no state of its own: a request
// either continues with a resolved user or stops with a 401.
func Auth(sessions SessionValidator, users UserResolver) drift.HandlerFunc {
	return func(c *drift.Context) {
		cookie, err := c.Request.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			c.Unauthorized("unauthorized, please log in")
			return
		}

		userID, err := sessions.Validate(c.Request.Context(), cookie.Value)
		if err != nil {
			c.Unauthorized("invalid or expired session")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.Unauthorized("invalid or expired session")
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireProfile gates operations that need a completed profile. It must
// run after Auth.
func RequireProfile() drift.HandlerFunc {
	return func(c *drift.Context) {
		user := GetUser(c)
		if user == nil {
			c.Unauthorized("unauthorized, please log in")
			return
		}
		if !user.ProfileCompleted {
			c.Forbidden("profile incomplete, please update your profile")
			return
		}
		c.Next()
	}
}

func GetUser(c *drift.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
