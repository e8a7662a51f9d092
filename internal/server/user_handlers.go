package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/v1/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, user)
}

// UpdateMyProfile handles PATCH /api/v1/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.UpdateAccountInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)

	user, err := s.userService.UpdateAccount(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, user)
}

// ChangePassword handles POST /api/v1/users/me/password
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req service.ChangePasswordInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)

	if err := s.userService.ChangePassword(c.Context(), req); err != nil {
		return fail(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Password changed")
}

// GetChannelProfile handles GET /api/v1/channels/:id. Works for anonymous
// viewers; authenticated viewers also get their subscription state.
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	profile, err := s.userService.GetChannelProfile(c.Context(), channelID, viewerID)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, profile)
}
