package repository

import (
	"context"

	"clipstream/internal/cache"
	"clipstream/internal/models"
	"clipstream/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes across all
// likeable target kinds.
type LikeRepository interface {
	Toggle(ctx context.Context, like *models.Like) (bool, error)
	IsLiked(ctx context.Context, like *models.Like) (bool, error)
	CountForTarget(ctx context.Context, like *models.Like) (int64, error)
	ListLikedVideos(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like state for the target identified by the Like's
// non-zero target column and returns the resulting state. Both directions
// are single atomic statements: the delete reports whether a row existed,
// and the insert uses ON CONFLICT DO NOTHING so a concurrent duplicate
// resolves to "already liked" instead of an error.
func (r *likeRepository) Toggle(ctx context.Context, like *models.Like) (bool, error) {
	del := r.db.WithContext(ctx).
		Where("video_id = ? AND comment_id = ? AND tweet_id = ? AND liked_by_id = ?",
			like.VideoID, like.CommentID, like.TweetID, like.LikedByID).
		Delete(&models.Like{})
	if del.Error != nil {
		return false, del.Error
	}
	if del.RowsAffected > 0 {
		r.invalidateTarget(ctx, like)
		return false, nil
	}

	ins := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (video_id, comment_id, tweet_id, liked_by_id, created_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (video_id, comment_id, tweet_id, liked_by_id) DO NOTHING`,
		like.VideoID, like.CommentID, like.TweetID, like.LikedByID,
	)
	if ins.Error != nil {
		return false, ins.Error
	}
	if ins.RowsAffected == 0 {
		// A concurrent request inserted the row first.
		observability.ToggleConflicts.WithLabelValues("like").Inc()
	}
	r.invalidateTarget(ctx, like)
	return true, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, like *models.Like) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("video_id = ? AND comment_id = ? AND tweet_id = ? AND liked_by_id = ?",
			like.VideoID, like.CommentID, like.TweetID, like.LikedByID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) CountForTarget(ctx context.Context, like *models.Like) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("video_id = ? AND comment_id = ? AND tweet_id = ?",
			like.VideoID, like.CommentID, like.TweetID).
		Count(&count).Error
	return count, err
}

// ListLikedVideos returns a page of published videos the user has liked,
// most recently liked first.
func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error) {
	query := r.db.WithContext(ctx).Model(&models.Video{}).
		InnerJoins("Owner").
		Joins("JOIN likes ON likes.video_id = videos.id").
		Where("likes.liked_by_id = ? AND videos.published = ?", userID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var videos []models.Video
	err := query.
		Order("likes.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}

	return models.NewPage(videos, total, page, limit), nil
}

func (r *likeRepository) invalidateTarget(ctx context.Context, like *models.Like) {
	if like.VideoID != 0 {
		cache.InvalidateVideo(ctx, like.VideoID)
	}
}
