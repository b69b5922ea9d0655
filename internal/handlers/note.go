package handlers

import (
	"errors"

	"github.com/blinkwall/blinkwall-api/internal/middleware"
	"github.com/blinkwall/blinkwall-api/internal/models"
	"github.com/blinkwall/blinkwall-api/internal/services"
	"github.com/blinkwall/blinkwall-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type NoteHandler struct {
	noteService NoteServiceInterface
}

func NewNoteHandler(noteService NoteServiceInterface) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List returns the feed, optionally narrowed by the category query
// parameter. Reading needs a session but not a completed profile.
func (h *NoteHandler) List(c *drift.Context) {
	notes, err := h.noteService.List(c.Request.Context(), c.QueryParam("category"))
	if err != nil {
		c.InternalServerError("error fetching notes")
		return
	}

	resp := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, noteResponse(&n))
	}
	_ = c.JSON(200, resp)
}

func (h *NoteHandler) Create(c *drift.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		c.Unauthorized("unauthorized, please log in")
		return
	}

	var req dto.CreateNoteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), user, req.Text, req.Category)
	switch {
	case errors.Is(err, services.ErrEmptyNote):
		c.BadRequest("note text cannot be empty")
		return
	case errors.Is(err, services.ErrNoteTooLong):
		c.BadRequest("note must be 15 words or less")
		return
	case errors.Is(err, services.ErrInvalidCategory):
		c.BadRequest("invalid note category")
		return
	case err != nil:
		c.InternalServerError("error posting note")
		return
	}

	_ = c.JSON(201, noteResponse(note))
}

func (h *NoteHandler) Delete(c *drift.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		c.Unauthorized("unauthorized, please log in")
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid note id")
		return
	}

	err = h.noteService.Delete(c.Request.Context(), user.ID, noteID)
	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		c.NotFound("note not found")
		return
	case errors.Is(err, services.ErrNotNoteOwner):
		c.Forbidden("not authorized to delete this note")
		return
	case err != nil:
		c.InternalServerError("error deleting note")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "note deleted"})
}

func noteResponse(n *models.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:             n.ID,
		Text:           n.Text,
		Category:       n.Category,
		AuthorID:       n.AuthorID,
		AuthorNickname: n.AuthorNickname,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}
