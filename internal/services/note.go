package services

import (
	"context"
	"errors"
	"strings"

	"github.com/blinkwall/blinkwall-api/internal/database"
	"github.com/blinkwall/blinkwall-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrEmptyNote       = errors.New("note text cannot be empty")
	ErrNoteTooLong     = errors.New("note must be 15 words or less")
	ErrInvalidCategory = errors.New("invalid note category")
	ErrNoteNotFound    = errors.New("note not found")
	ErrNotNoteOwner    = errors.New("not authorized to delete this note")
)

const (
	maxNoteWords  = 15
	noteListLimit = 50
)

const noteColumns = `id, text, category, author_id, author_nickname, created_at, updated_at`

type NoteService struct {
	db *database.DB
}

func NewNoteService(db *database.DB) *NoteService {
	return &NoteService{db: db}
}

// List returns the newest notes first, capped at 50. "Featured" and
// "Events" filter exactly; anything else, including the empty string and
// "For You", means all categories.
func (s *NoteService) List(ctx context.Context, category string) ([]models.Note, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if category == models.CategoryFeatured || category == models.CategoryEvents {
		rows, err = s.db.Pool.Query(ctx, `
			SELECT `+noteColumns+`
			FROM notes WHERE category = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, category, noteListLimit)
	} else {
		rows, err = s.db.Pool.Query(ctx, `
			SELECT `+noteColumns+`
			FROM notes
			ORDER BY created_at DESC
			LIMIT $1
		`, noteListLimit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(
			&n.ID, &n.Text, &n.Category, &n.AuthorID, &n.AuthorNickname,
			&n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Create validates before any write: non-empty after trimming, at most 15
// whitespace-delimited words, category either absent (defaults to "For
// You") or one of the fixed set. The author's current nickname is
// snapshotted onto the note and never resynced.
func (s *NoteService) Create(ctx context.Context, author *models.User, text, category string) (*models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyNote
	}
	if len(strings.Fields(text)) > maxNoteWords {
		return nil, ErrNoteTooLong
	}
	if category == "" {
		category = models.CategoryForYou
	}
	if !models.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	var note models.Note
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO notes (text, category, author_id, author_nickname)
		VALUES ($1, $2, $3, $4)
		RETURNING `+noteColumns+`
	`, text, category, author.ID, author.Nickname).Scan(
		&note.ID, &note.Text, &note.Category, &note.AuthorID, &note.AuthorNickname,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete enforces ownership: only the note's author may remove it.
func (s *NoteService) Delete(ctx context.Context, requesterID, noteID uuid.UUID) error {
	var authorID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT author_id FROM notes WHERE id = $1
	`, noteID).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoteNotFound
	}
	if err != nil {
		return err
	}

	if authorID != requesterID {
		return ErrNotNoteOwner
	}

	_, err = s.db.Pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, noteID)
	return err
}
