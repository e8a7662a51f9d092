package server

import (
	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription handles POST /api/v1/subscriptions/toggle/:channelId
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}
	result, err := s.subService.ToggleSubscription(c.Context(), currentUserID(c), channelID)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, toggleStatus(result.Subscribed), result)
}

// GetSubscribedChannels handles GET /api/v1/subscriptions/my
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}
	page, err := s.subService.ListChannels(c.Context(), currentUserID(c), params.Page, params.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, page)
}

// GetChannelSubscribers handles GET /api/v1/subscriptions/channel/:channelId
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}
	page, err := s.subService.ListSubscribers(c.Context(), channelID, params.Page, params.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, page)
}
