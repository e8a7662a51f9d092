package repository

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/cache"
	"clipstream/internal/models"

	"gorm.io/gorm"
)

// VideoListParams controls filtering and ordering for video listings.
type VideoListParams struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortDesc bool
	OwnerID  uint
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	List(ctx context.Context, params VideoListParams) (*models.Page[models.Video], error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	TogglePublished(ctx context.Context, id uint) (bool, error)
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository returns a new VideoRepository implementation.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	key := cache.VideoKey(id)

	err := cache.Aside(ctx, key, &video, cache.VideoTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Owner").First(&video, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Video", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// sortColumns is the allow-list for user-supplied sort fields.
var sortColumns = map[string]string{
	"created_at": "videos.created_at",
	"views":      "videos.views",
	"duration":   "videos.duration",
	"title":      "videos.title",
}

// List returns a page of published videos joined with their owners. Rows
// whose owner no longer exists are excluded by the inner join.
func (r *videoRepository) List(ctx context.Context, params VideoListParams) (*models.Page[models.Video], error) {
	query := r.db.WithContext(ctx).Model(&models.Video{}).
		InnerJoins("Owner").
		Where("videos.published = ?", true)

	if params.OwnerID != 0 {
		query = query.Where("videos.owner_id = ?", params.OwnerID)
	}
	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(videos.title) LIKE ? OR LOWER(videos.description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "videos.created_at"
	}
	direction := "ASC"
	if params.SortDesc {
		direction = "DESC"
	}

	var videos []models.Video
	err := query.
		Order(column + " " + direction).
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}

	return models.NewPage(videos, total, params.Page, params.Limit), nil
}

// Update applies a pre-filtered set of column updates. Callers are
// responsible for allow-listing the keys.
func (r *videoRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	cache.InvalidateVideo(ctx, id)
	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Video{}, id).Error
	if err == nil {
		cache.InvalidateVideo(ctx, id)
	}
	return err
}

// IncrementViews bumps the view counter in a single column expression so
// concurrent plays never lose increments.
func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err == nil {
		cache.InvalidateVideo(ctx, id)
	}
	return err
}

// TogglePublished flips the publish flag and returns the new state.
func (r *videoRepository) TogglePublished(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).
		UpdateColumn("published", gorm.Expr("NOT published"))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, models.NewNotFoundError("Video", id)
	}
	cache.InvalidateVideo(ctx, id)

	var published bool
	err := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).
		Pluck("published", &published).Error
	return published, err
}
