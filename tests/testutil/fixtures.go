package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/blinkwall/blinkwall-api/internal/database"
	"github.com/blinkwall/blinkwall-api/internal/models"
	"github.com/blinkwall/blinkwall-api/internal/oauth"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values. The default user has
// a completed profile; use WithIncompleteProfile for a provisional one.
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	year := 2
	user := &models.User{
		GoogleID:         fmt.Sprintf("google-%d", f.counter),
		Email:            fmt.Sprintf("user%d@campus.edu", f.counter),
		Name:             fmt.Sprintf("Test User %d", f.counter),
		Nickname:         fmt.Sprintf("nick%d", f.counter),
		Year:             &year,
		Department:       "CSE",
		ProfileCompleted: true,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (google_id, email, name, nickname, year, department, profile_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, user.GoogleID, user.Email, user.Name, user.Nickname, user.Year, user.Department, user.ProfileCompleted).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithNickname sets the user's nickname
func WithNickname(nickname string) UserOption {
	return func(u *models.User) {
		u.Nickname = nickname
	}
}

// WithGoogleID sets the user's external subject id
func WithGoogleID(googleID string) UserOption {
	return func(u *models.User) {
		u.GoogleID = googleID
	}
}

// WithIncompleteProfile resets the user to its provisional state
func WithIncompleteProfile() UserOption {
	return func(u *models.User) {
		u.Nickname = ""
		u.Year = nil
		u.Department = ""
		u.ProfileCompleted = false
	}
}

// CreateNote creates a test note authored by the given user
func (f *Fixtures) CreateNote(t *testing.T, author *models.User, opts ...NoteOption) *models.Note {
	t.Helper()
	f.counter++

	note := &models.Note{
		Text:           fmt.Sprintf("test note %d", f.counter),
		Category:       models.CategoryForYou,
		AuthorID:       author.ID,
		AuthorNickname: author.Nickname,
	}

	for _, opt := range opts {
		opt(note)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO notes (text, category, author_id, author_nickname)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, note.Text, note.Category, note.AuthorID, note.AuthorNickname).Scan(
		&note.ID, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	return note
}

// NoteOption configures a test note
type NoteOption func(*models.Note)

// WithText sets the note text
func WithText(text string) NoteOption {
	return func(n *models.Note) {
		n.Text = text
	}
}

// WithCategory sets the note category
func WithCategory(category string) NoteOption {
	return func(n *models.Note) {
		n.Category = category
	}
}

// CreateSession inserts a session row for the user and returns nothing;
// callers that need a live token should go through SessionService.Create.
func (f *Fixtures) CreateSession(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO sessions (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
}

// GoogleUserInfo creates a test identity assertion
func GoogleUserInfo(id, email, name string) *oauth.UserInfo {
	return &oauth.UserInfo{
		ID:            id,
		Email:         email,
		EmailVerified: true,
		Name:          name,
	}
}
