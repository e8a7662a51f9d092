package repository

import (
	"context"
	"errors"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines persistence operations for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	List(ctx context.Context, page, limit int) (*models.Page[models.Tweet], error)
	ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Tweet], error)
	ListByOwners(ctx context.Context, ownerIDs []uint, page, limit int) (*models.Page[models.Tweet], error)
	Update(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository returns a new TweetRepository implementation.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).Preload("Owner").First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) List(ctx context.Context, page, limit int) (*models.Page[models.Tweet], error) {
	return r.list(r.db.WithContext(ctx).Model(&models.Tweet{}).
		InnerJoins("Owner"), page, limit)
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Tweet], error) {
	return r.list(r.db.WithContext(ctx).Model(&models.Tweet{}).
		InnerJoins("Owner").
		Where("tweets.owner_id = ?", ownerID), page, limit)
}

// ListByOwners returns a merged, newest-first page of tweets from any of the
// given owners. An empty owner set yields an empty page.
func (r *tweetRepository) ListByOwners(ctx context.Context, ownerIDs []uint, page, limit int) (*models.Page[models.Tweet], error) {
	if len(ownerIDs) == 0 {
		return models.NewPage([]models.Tweet{}, 0, page, limit), nil
	}
	return r.list(r.db.WithContext(ctx).Model(&models.Tweet{}).
		InnerJoins("Owner").
		Where("tweets.owner_id IN ?", ownerIDs), page, limit)
}

func (r *tweetRepository) list(query *gorm.DB, page, limit int) (*models.Page[models.Tweet], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var tweets []models.Tweet
	err := query.
		Order("tweets.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&tweets).Error
	if err != nil {
		return nil, err
	}

	return models.NewPage(tweets, total, page, limit), nil
}

func (r *tweetRepository) Update(ctx context.Context, id uint, content string) error {
	result := r.db.WithContext(ctx).Model(&models.Tweet{}).Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Tweet", id)
	}
	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tweet{}, id).Error
}
