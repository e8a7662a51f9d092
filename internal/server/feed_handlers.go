package server

import (
	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/v1/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}
	feed, err := s.feedService.GetFeed(c.Context(), currentUserID(c), params.Page, params.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, feed)
}
