package server

import (
	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlaylist handles POST /api/v1/playlists
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req service.CreatePlaylistInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)

	playlist, err := s.playlistService.CreatePlaylist(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, playlist)
}

// GetPlaylist handles GET /api/v1/playlists/:id
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	playlist, err := s.playlistService.GetPlaylist(c.Context(), playlistID)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, playlist)
}

// GetUserPlaylists handles GET /api/v1/users/:id/playlists
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}
	page, err := s.playlistService.ListUserPlaylists(c.Context(), userID, params.Page, params.Limit)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, page)
}

// UpdatePlaylist handles PATCH /api/v1/playlists/:id
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdatePlaylistInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)
	req.PlaylistID = playlistID

	playlist, err := s.playlistService.UpdatePlaylist(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, playlist)
}

// DeletePlaylist handles DELETE /api/v1/playlists/:id
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.playlistService.DeletePlaylist(c.Context(), playlistID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Playlist deleted")
}

// AddVideoToPlaylist handles POST /api/v1/playlists/:id/videos/:videoId
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	if err := s.playlistService.AddVideo(c.Context(), playlistID, videoID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Video added to playlist")
}

// RemoveVideoFromPlaylist handles DELETE /api/v1/playlists/:id/videos/:videoId
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	if err := s.playlistService.RemoveVideo(c.Context(), playlistID, videoID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Video removed from playlist")
}
