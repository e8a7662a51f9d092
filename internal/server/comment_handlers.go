package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/v1/videos/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}

	page, err := s.commentService.ListComments(c.Context(), videoID, params.Page, params.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, page)
}

// AddComment handles POST /api/v1/videos/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.AddCommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)
	req.VideoID = videoID

	comment, err := s.commentService.AddComment(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, comment)
}

// UpdateComment handles PATCH /api/v1/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateCommentInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)
	req.CommentID = commentID

	comment, err := s.commentService.UpdateComment(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, comment)
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.commentService.DeleteComment(c.Context(), commentID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Comment deleted")
}
