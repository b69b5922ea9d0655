package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/blinkwall/blinkwall-api/internal/database"
	"github.com/google/uuid"
)

// SessionService is the server-side session store behind the session
// cookie: opaque tokens, stored hashed, one row per login.
type SessionService struct {
	db     *database.DB
	expiry time.Duration
}

func NewSessionService(db *database.DB, expiry time.Duration) *SessionService {
	return &SessionService{db: db, expiry: expiry}
}

func (s *SessionService) Expiry() time.Duration {
	return s.expiry
}

// Create issues a new session for the user and returns the raw token. Only
// the hash is persisted.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.expiry)
	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO sessions (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, HashToken(token), expiresAt)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a raw token to the owning user id. Expired or unknown
// tokens fail with the store's not-found error.
func (s *SessionService) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT user_id FROM sessions
		WHERE token_hash = $1 AND expires_at > NOW()
	`, HashToken(token)).Scan(&userID)
	return userID, err
}

func (s *SessionService) Revoke(ctx context.Context, token string) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, HashToken(token))
	return err
}

func (s *SessionService) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func (s *SessionService) CleanupExpired(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	return err
}

func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
