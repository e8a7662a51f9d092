package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

// FeedService assembles a user's home feed from the channels they follow.
type FeedService struct {
	subRepo   repository.SubscriptionRepository
	tweetRepo repository.TweetRepository
}

func NewFeedService(subRepo repository.SubscriptionRepository, tweetRepo repository.TweetRepository) *FeedService {
	return &FeedService{subRepo: subRepo, tweetRepo: tweetRepo}
}

// GetFeed returns a newest-first page of tweets from every channel the user
// subscribes to. A user with no subscriptions gets an empty page, not an
// error.
func (s *FeedService) GetFeed(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Tweet], error) {
	channelIDs, err := s.subRepo.ChannelIDsFor(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	feed, err := s.tweetRepo.ListByOwners(ctx, channelIDs, page, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return feed, nil
}
