package dto

import (
	"time"

	"github.com/google/uuid"
)

type NoteResponse struct {
	ID             uuid.UUID `json:"id"`
	Text           string    `json:"text"`
	Category       string    `json:"category"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}
