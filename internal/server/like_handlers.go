package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

type toggleLikeRequest struct {
	VideoID   uint `json:"videoId"`
	CommentID uint `json:"commentId"`
	TweetID   uint `json:"tweetId"`
}

// toggleStatus maps toggle outcomes to the create/remove status convention:
// adding the record is a creation, removing it is a plain success.
func toggleStatus(added bool) int {
	if added {
		return fiber.StatusCreated
	}
	return fiber.StatusOK
}

// ToggleLike handles POST /api/v1/likes/toggle. The body must name exactly
// one target; zero or several targets fail before any state is touched.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	var req toggleLikeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	probe := models.Like{VideoID: req.VideoID, CommentID: req.CommentID, TweetID: req.TweetID}
	if probe.TargetCount() != 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Exactly one of videoId, commentId, or tweetId is required"))
	}

	userID := currentUserID(c)
	var result *service.ToggleResult
	var err error
	switch {
	case req.VideoID != 0:
		result, err = s.likeService.ToggleVideoLike(c.Context(), userID, req.VideoID)
	case req.CommentID != 0:
		result, err = s.likeService.ToggleCommentLike(c.Context(), userID, req.CommentID)
	default:
		result, err = s.likeService.ToggleTweetLike(c.Context(), userID, req.TweetID)
	}
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, toggleStatus(result.Liked), result)
}

// ToggleVideoLike handles POST /api/v1/likes/toggle/v/:videoId
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	result, err := s.likeService.ToggleVideoLike(c.Context(), currentUserID(c), videoID)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, toggleStatus(result.Liked), result)
}

// ToggleCommentLike handles POST /api/v1/likes/toggle/c/:commentId
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	result, err := s.likeService.ToggleCommentLike(c.Context(), currentUserID(c), commentID)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, toggleStatus(result.Liked), result)
}

// ToggleTweetLike handles POST /api/v1/likes/toggle/t/:tweetId and the
// parallel POST /api/v1/tweets/:tweetId/like path.
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}
	result, err := s.likeService.ToggleTweetLike(c.Context(), currentUserID(c), tweetID)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, toggleStatus(result.Liked), result)
}

// GetLikedVideos handles GET /api/v1/likes/videos
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}
	page, err := s.likeService.ListLikedVideos(c.Context(), currentUserID(c), params.Page, params.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, page)
}
