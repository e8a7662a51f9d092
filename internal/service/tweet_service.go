package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

const maxTweetLen = 280

// TweetService handles short status posts.
type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

type CreateTweetInput struct {
	UserID  uint
	Content string `json:"content"`
}

type UpdateTweetInput struct {
	UserID  uint
	TweetID uint
	Content string `json:"content"`
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) CreateTweet(ctx context.Context, in CreateTweetInput) (*models.Tweet, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Tweet content is required")
	}
	if utf8.RuneCountInString(content) > maxTweetLen {
		return nil, models.NewValidationError("Tweet exceeds 280 characters")
	}

	tweet := &models.Tweet{Content: content, OwnerID: in.UserID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, models.NewInternalError(err)
	}
	// Echo the owner profile so the response matches a later fetch.
	if owner, err := s.userRepo.GetByID(ctx, in.UserID); err == nil {
		tweet.Owner = *owner
	}
	return tweet, nil
}

func (s *TweetService) ListTweets(ctx context.Context, page, limit int) (*models.Page[models.Tweet], error) {
	result, err := s.tweetRepo.List(ctx, page, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

func (s *TweetService) GetTweet(ctx context.Context, tweetID uint) (*models.Tweet, error) {
	return s.tweetRepo.GetByID(ctx, tweetID)
}

func (s *TweetService) ListUserTweets(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Tweet], error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	result, err := s.tweetRepo.ListByOwner(ctx, userID, page, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, in UpdateTweetInput) (*models.Tweet, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Tweet content is required")
	}
	if utf8.RuneCountInString(content) > maxTweetLen {
		return nil, models.NewValidationError("Tweet exceeds 280 characters")
	}

	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own tweets")
	}

	if err := s.tweetRepo.Update(ctx, in.TweetID, content); err != nil {
		return nil, err
	}
	tweet.Content = content
	return tweet, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, tweetID, userID uint) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own tweets")
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}
