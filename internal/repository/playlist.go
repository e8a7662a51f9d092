package repository

import (
	"context"
	"errors"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// PlaylistRepository defines persistence operations for playlists and their
// ordered video memberships.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uint) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	Delete(ctx context.Context, id uint) error
	AddVideo(ctx context.Context, playlistID, videoID uint) (bool, error)
	RemoveVideo(ctx context.Context, playlistID, videoID uint) (bool, error)
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository returns a new PlaylistRepository implementation.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

// GetByID loads the playlist and its videos in insertion order.
func (r *playlistRepository) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).Preload("Owner").First(&playlist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Playlist", id)
		}
		return nil, models.NewInternalError(err)
	}

	var videos []models.Video
	err := r.db.WithContext(ctx).Model(&models.Video{}).
		Joins("JOIN playlist_videos ON playlist_videos.video_id = videos.id").
		Where("playlist_videos.playlist_id = ?", id).
		Order("playlist_videos.position ASC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos

	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error) {
	query := r.db.WithContext(ctx).Model(&models.Playlist{}).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var playlists []models.Playlist
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}

	return models.NewPage(playlists, total, page, limit), nil
}

// Update applies a pre-filtered set of column updates. Callers are
// responsible for allow-listing the keys.
func (r *playlistRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Playlist", id)
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Playlist{}, id).Error
	})
}

// AddVideo appends the video at the next position in a single statement.
// Returns false when the video was already in the playlist, including when
// a concurrent request added it first.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO playlist_videos (playlist_id, video_id, position, created_at)
		 SELECT ?, ?, COALESCE(MAX(position), 0) + 1, CURRENT_TIMESTAMP
		 FROM playlist_videos WHERE playlist_id = ?
		 ON CONFLICT (playlist_id, video_id) DO NOTHING`,
		playlistID, videoID, playlistID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveVideo detaches the video. Returns false when it was not in the
// playlist.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
