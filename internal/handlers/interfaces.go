package handlers

import (
	"context"
	"time"

	"github.com/blinkwall/blinkwall-api/internal/models"
	"github.com/blinkwall/blinkwall-api/internal/oauth"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromGoogle(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CompleteProfile(ctx context.Context, id uuid.UUID, name, nickname string, year int, department string) (*models.User, error)
}

// NoteServiceInterface defines the methods used by handlers from NoteService
type NoteServiceInterface interface {
	List(ctx context.Context, category string) ([]models.Note, error)
	Create(ctx context.Context, author *models.User, text, category string) (*models.Note, error)
	Delete(ctx context.Context, requesterID, noteID uuid.UUID) error
}

// SessionServiceInterface defines the methods used by handlers from SessionService
type SessionServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error
	Expiry() time.Duration
}
