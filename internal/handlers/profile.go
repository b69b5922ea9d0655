package handlers

import (
	"errors"

	"github.com/blinkwall/blinkwall-api/internal/middleware"
	"github.com/blinkwall/blinkwall-api/internal/services"
	"github.com/blinkwall/blinkwall-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ProfileHandler struct {
	userService UserServiceInterface
}

func NewProfileHandler(userService UserServiceInterface) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// Complete promotes a provisional account to a usable one. It sits behind
// the auth gate only: completing the profile is how the profile gate is
// passed in the first place.
func (h *ProfileHandler) Complete(c *drift.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		c.Unauthorized("unauthorized, please log in")
		return
	}

	var req dto.CompleteProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	updated, err := h.userService.CompleteProfile(c.Request.Context(), user.ID, req.Name, req.Nickname, req.Year, req.Department)
	if errors.Is(err, services.ErrInvalidProfile) {
		c.BadRequest("all fields are required and year must be between 1 and 4")
		return
	}
	if err != nil {
		c.InternalServerError("failed to update profile")
		return
	}

	_ = c.JSON(200, dto.UserResponse{
		ID:               updated.ID,
		Email:            updated.Email,
		Name:             updated.Name,
		Nickname:         updated.Nickname,
		Year:             updated.Year,
		Department:       updated.Department,
		ProfileCompleted: updated.ProfileCompleted,
	})
}
