package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

const (
	maxPlaylistNameLen        = 120
	maxPlaylistDescriptionLen = 2000
)

// PlaylistService handles playlists and their video memberships.
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

type CreatePlaylistInput struct {
	UserID      uint
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdatePlaylistInput struct {
	UserID      uint
	PlaylistID  uint
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, in CreatePlaylistInput) (*models.Playlist, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Playlist name is required")
	}
	if len(name) > maxPlaylistNameLen {
		return nil, models.NewValidationError("Playlist name is too long")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, models.NewValidationError("Playlist description is required")
	}
	if len(description) > maxPlaylistDescriptionLen {
		return nil, models.NewValidationError("Playlist description is too long")
	}

	playlist := &models.Playlist{
		Name:        name,
		Description: description,
		OwnerID:     in.UserID,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, models.NewInternalError(err)
	}
	return playlist, nil
}

func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistID uint) (*models.Playlist, error) {
	return s.playlistRepo.GetByID(ctx, playlistID)
}

func (s *PlaylistService) ListUserPlaylists(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error) {
	result, err := s.playlistRepo.ListByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, in.PlaylistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own playlists")
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(in.Name); v != "" {
		if len(v) > maxPlaylistNameLen {
			return nil, models.NewValidationError("Playlist name is too long")
		}
		updates["name"] = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		if len(v) > maxPlaylistDescriptionLen {
			return nil, models.NewValidationError("Playlist description is too long")
		}
		updates["description"] = v
	}
	if len(updates) == 0 {
		return nil, models.NewValidationError("No updatable fields provided")
	}

	if err := s.playlistRepo.Update(ctx, in.PlaylistID, updates); err != nil {
		return nil, err
	}
	return s.playlistRepo.GetByID(ctx, in.PlaylistID)
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, playlistID, userID uint) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own playlists")
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

// AddVideo appends a video to the caller's playlist. Adding a video that is
// already present succeeds without duplicating it.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, userID uint) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != userID {
		return models.NewForbiddenError("You can only modify your own playlists")
	}
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return err
	}

	if _, err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, userID uint) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != userID {
		return models.NewForbiddenError("You can only modify your own playlists")
	}

	removed, err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !removed {
		return models.NewNotFoundError("Video", videoID)
	}
	return nil
}
