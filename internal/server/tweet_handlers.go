package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/v1/tweets
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req service.CreateTweetInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)

	tweet, err := s.tweetService.CreateTweet(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, tweet)
}

// GetTweets handles GET /api/v1/tweets
func (s *Server) GetTweets(c *fiber.Ctx) error {
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}
	page, err := s.tweetService.ListTweets(c.Context(), params.Page, params.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, page)
}

// GetUserTweets handles GET /api/v1/users/:id/tweets
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}

	page, err := s.tweetService.ListUserTweets(c.Context(), userID, params.Page, params.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, page)
}

// UpdateTweet handles PATCH /api/v1/tweets/:id
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateTweetInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)
	req.TweetID = tweetID

	tweet, err := s.tweetService.UpdateTweet(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, tweet)
}

// DeleteTweet handles DELETE /api/v1/tweets/:id
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.tweetService.DeleteTweet(c.Context(), tweetID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Tweet deleted")
}
