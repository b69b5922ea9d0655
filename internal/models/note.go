package models

import (
	"time"

	"github.com/google/uuid"
)

// Note categories. CategoryForYou doubles as the "all categories" sentinel
// when filtering a feed.
const (
	CategoryForYou   = "For You"
	CategoryFeatured = "Featured"
	CategoryEvents   = "Events"
)

func ValidCategory(category string) bool {
	switch category {
	case CategoryForYou, CategoryFeatured, CategoryEvents:
		return true
	}
	return false
}

// Note is immutable after creation. AuthorNickname is a snapshot of the
// author's nickname at posting time and is never resynced.
type Note struct {
	ID             uuid.UUID `json:"id"`
	Text           string    `json:"text"`
	Category       string    `json:"category"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
