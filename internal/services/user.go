package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blinkwall/blinkwall-api/internal/database"
	"github.com/blinkwall/blinkwall-api/internal/models"
	"github.com/blinkwall/blinkwall-api/internal/oauth"
	"github.com/google/uuid"
)

var (
	ErrEmailDomainNotAllowed = errors.New("email domain not allowed")
	ErrInvalidProfile        = errors.New("invalid profile: all fields are required and year must be between 1 and 4")
)

const userColumns = `id, google_id, email, name, nickname, year, department, profile_completed, created_at, updated_at`

type UserService struct {
	db                 *database.DB
	allowedEmailDomain string
}

func NewUserService(db *database.DB, allowedEmailDomain string) *UserService {
	return &UserService{db: db, allowedEmailDomain: allowedEmailDomain}
}

// FindOrCreateFromGoogle enforces the email domain gate before touching the
// store. An existing user is returned unchanged: name and email are never
// resynced from the provider after first login.
func (s *UserService) FindOrCreateFromGoogle(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	if !strings.HasSuffix(strings.ToLower(info.Email), strings.ToLower(s.allowedEmailDomain)) {
		return nil, ErrEmailDomainNotAllowed
	}

	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE google_id = $1
	`, info.ID).Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name, &user.Nickname,
		&user.Year, &user.Department, &user.ProfileCompleted, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == nil {
		return &user, nil
	}

	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (google_id, email, name)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, info.ID, info.Email, info.Name).Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name, &user.Nickname,
		&user.Year, &user.Department, &user.ProfileCompleted, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE id = $1
	`, id).Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name, &user.Nickname,
		&user.Year, &user.Department, &user.ProfileCompleted, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CompleteProfile overwrites every profile field and marks the profile
// complete. Validation happens before any write; re-running simply
// overwrites the previous values.
func (s *UserService) CompleteProfile(ctx context.Context, id uuid.UUID, name, nickname string, year int, department string) (*models.User, error) {
	name = strings.TrimSpace(name)
	nickname = strings.TrimSpace(nickname)
	department = strings.TrimSpace(department)
	if name == "" || nickname == "" || department == "" || year < 1 || year > 4 {
		return nil, ErrInvalidProfile
	}

	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET name = $1, nickname = $2, year = $3, department = $4, profile_completed = TRUE, updated_at = NOW()
		WHERE id = $5
		RETURNING `+userColumns+`
	`, name, nickname, year, department, id).Scan(
		&user.ID, &user.GoogleID, &user.Email, &user.Name, &user.Nickname,
		&user.Year, &user.Department, &user.ProfileCompleted, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
