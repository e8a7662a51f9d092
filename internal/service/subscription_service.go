package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

// SubscriptionService toggles and lists channel subscriptions.
type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

// SubscriptionResult reports the state after a toggle and the channel's new
// subscriber count.
type SubscriptionResult struct {
	Subscribed      bool  `json:"subscribed"`
	SubscriberCount int64 `json:"subscriberCount"`
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

func (s *SubscriptionService) ToggleSubscription(ctx context.Context, subscriberID, channelID uint) (*SubscriptionResult, error) {
	if subscriberID == channelID {
		return nil, models.NewValidationError("You cannot subscribe to your own channel")
	}
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	subscribed, err := s.subRepo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	count, err := s.subRepo.SubscriberCount(ctx, channelID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &SubscriptionResult{Subscribed: subscribed, SubscriberCount: count}, nil
}

func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.User], error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		return nil, err
	}
	result, err := s.subRepo.ListSubscribers(ctx, channelID, page, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

func (s *SubscriptionService) ListChannels(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.User], error) {
	if _, err := s.userRepo.GetByID(ctx, subscriberID); err != nil {
		return nil, err
	}
	result, err := s.subRepo.ListChannels(ctx, subscriberID, page, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return result, nil
}
