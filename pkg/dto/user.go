package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Nickname         string    `json:"nickname"`
	Year             *int      `json:"year,omitempty"`
	Department       string    `json:"department"`
	ProfileCompleted bool      `json:"profile_completed"`
}

type CompleteProfileRequest struct {
	Name       string `json:"name"`
	Nickname   string `json:"nickname"`
	Year       int    `json:"year"`
	Department string `json:"department"`
}
