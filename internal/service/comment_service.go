package service

import (
	"context"
	"strings"

	"clipstream/internal/models"
	"clipstream/internal/repository"
)

const maxCommentLen = 10000

// CommentService handles comments on videos.
type CommentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

type AddCommentInput struct {
	UserID  uint
	VideoID uint
	Content string `json:"content"`
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string `json:"content"`
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment is too long")
	}

	// The video must exist; a comment on a missing video is a 404.
	if _, err := s.videoRepo.GetByID(ctx, in.VideoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		VideoID: in.VideoID,
		OwnerID: in.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, videoID uint, page, limit int) (*models.Page[models.Comment], error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	result, err := s.commentRepo.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment is too long")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	if err := s.commentRepo.Update(ctx, in.CommentID, content); err != nil {
		return nil, err
	}
	comment.Content = content
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
