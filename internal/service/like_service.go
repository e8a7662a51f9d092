package service

import (
	"context"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

// LikeService toggles likes on videos, comments and tweets.
type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

// ToggleResult reports the state after a toggle and the target's new count.
type ToggleResult struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID uint) (*ToggleResult, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.toggle(ctx, &models.Like{VideoID: videoID, LikedByID: userID})
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (*ToggleResult, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.toggle(ctx, &models.Like{CommentID: commentID, LikedByID: userID})
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, userID, tweetID uint) (*ToggleResult, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return nil, err
	}
	return s.toggle(ctx, &models.Like{TweetID: tweetID, LikedByID: userID})
}

func (s *LikeService) ListLikedVideos(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error) {
	result, err := s.likeRepo.ListLikedVideos(ctx, userID, page, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

func (s *LikeService) toggle(ctx context.Context, like *models.Like) (*ToggleResult, error) {
	liked, err := s.likeRepo.Toggle(ctx, like)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	count, err := s.likeRepo.CountForTarget(ctx, like)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &ToggleResult{Liked: liked, Count: count}, nil
}
