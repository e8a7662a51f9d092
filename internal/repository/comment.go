package repository

import (
	"context"
	"errors"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for video comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID uint, page, limit int) (*models.Page[models.Comment], error)
	Update(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByVideo returns a page of comments for a video joined with their
// authors, newest first.
func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint, page, limit int) (*models.Page[models.Comment], error) {
	query := r.db.WithContext(ctx).Model(&models.Comment{}).
		InnerJoins("Owner").
		Where("comments.video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := query.
		Order("comments.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return models.NewPage(comments, total, page, limit), nil
}

func (r *commentRepository) Update(ctx context.Context, id uint, content string) error {
	result := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
