package repository

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/observability"

	"gorm.io/gorm"
)

// SubscriptionRepository defines persistence operations for channel
// subscriptions.
type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error)
	SubscriberCount(ctx context.Context, channelID uint) (int64, error)
	ChannelIDsFor(ctx context.Context, subscriberID uint) ([]uint, error)
	ListSubscribers(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.User], error)
	ListChannels(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.User], error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository
// implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Toggle flips the subscription between subscriber and channel and returns
// the resulting state. Same atomic delete-then-insert shape as like
// toggling; a concurrent duplicate insert resolves to "already subscribed".
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	del := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&models.Subscription{})
	if del.Error != nil {
		return false, del.Error
	}
	if del.RowsAffected > 0 {
		return false, nil
	}

	ins := r.db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (subscriber_id, channel_id) DO NOTHING`,
		subscriberID, channelID,
	)
	if ins.Error != nil {
		return false, ins.Error
	}
	if ins.RowsAffected == 0 {
		observability.ToggleConflicts.WithLabelValues("subscription").Inc()
	}
	return true, nil
}

func (r *subscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepository) SubscriberCount(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

// ChannelIDsFor returns the IDs of every channel the subscriber follows.
// The feed uses this to scope its tweet query.
func (r *subscriptionRepository) ChannelIDsFor(ctx context.Context, subscriberID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Pluck("channel_id", &ids).Error
	return ids, err
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.User], error) {
	return r.listUsers(r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID), page, limit)
}

func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.User], error) {
	return r.listUsers(r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID), page, limit)
}

func (r *subscriptionRepository) listUsers(query *gorm.DB, page, limit int) (*models.Page[models.User], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := query.
		Order("subscriptions.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return models.NewPage(users, total, page, limit), nil
}
