package service

import (
	"context"
	"strings"

	"clipstream/internal/middleware"
	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/storage"
)

const (
	maxVideoTitleLen       = 300
	maxVideoDescriptionLen = 5000
)

// MediaUploader is the slice of the media store the video service needs.
type MediaUploader interface {
	Upload(ctx context.Context, kind, objectName, contentType string, content []byte) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// VideoService handles video publishing and catalog operations.
type VideoService struct {
	videoRepo repository.VideoRepository
	media     MediaUploader
	thumbs    *ThumbnailProcessor
}

type MediaFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type PublishVideoInput struct {
	OwnerID     uint
	Title       string
	Description string
	Duration    float64
	Video       MediaFile
	Thumbnail   MediaFile
}

type ListVideosInput struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortDesc bool
	OwnerID  uint
}

type UpdateVideoInput struct {
	UserID      uint
	VideoID     uint
	Title       string   `json:"title" form:"title"`
	Description string   `json:"description" form:"description"`
	Duration    *float64 `json:"duration" form:"duration"`
	Thumbnail   *MediaFile
}

func NewVideoService(videoRepo repository.VideoRepository, media MediaUploader) *VideoService {
	return &VideoService{videoRepo: videoRepo, media: media, thumbs: NewThumbnailProcessor()}
}

// PublishVideo uploads the media files and creates the catalog record.
// When the record insert fails after an upload succeeded, the uploaded
// objects are removed so the media host holds no orphans.
func (s *VideoService) PublishVideo(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxVideoTitleLen {
		return nil, models.NewValidationError("Title is too long")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if len(description) > maxVideoDescriptionLen {
		return nil, models.NewValidationError("Description is too long")
	}
	if in.Duration <= 0 {
		return nil, models.NewValidationError("Duration must be greater than zero")
	}
	if len(in.Video.Content) == 0 {
		return nil, models.NewValidationError("Video file is required")
	}
	if len(in.Thumbnail.Content) == 0 {
		return nil, models.NewValidationError("Thumbnail file is required")
	}

	normalized, err := s.thumbs.Process(in.Thumbnail.Content)
	if err != nil {
		return nil, models.NewValidationError("Thumbnail must be a valid JPEG, PNG, or WebP image")
	}
	in.Thumbnail = MediaFile{Filename: "thumb.jpg", ContentType: "image/jpeg", Content: normalized}

	videoObject := storage.NewObjectName(storage.ObjectKindVideo, in.Video.Filename)
	videoURL, err := s.media.Upload(ctx, storage.ObjectKindVideo, videoObject, in.Video.ContentType, in.Video.Content)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	thumbObject := storage.NewObjectName(storage.ObjectKindThumbnail, in.Thumbnail.Filename)
	thumbURL, err := s.media.Upload(ctx, storage.ObjectKindThumbnail, thumbObject, in.Thumbnail.ContentType, in.Thumbnail.Content)
	if err != nil {
		s.cleanupObject(ctx, videoObject)
		return nil, models.NewInternalError(err)
	}

	video := &models.Video{
		Title:        title,
		Description:  description,
		Duration:     in.Duration,
		VideoURL:     videoURL,
		ThumbnailURL: thumbURL,
		Published:    true,
		OwnerID:      in.OwnerID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.cleanupObject(ctx, videoObject)
		s.cleanupObject(ctx, thumbObject)
		return nil, models.NewInternalError(err)
	}
	return video, nil
}

// GetVideo returns the video. Unpublished videos are only visible to their
// owner; everyone else gets the same not-found as a missing row.
func (s *VideoService) GetVideo(ctx context.Context, videoID, viewerID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.Published && video.OwnerID != viewerID {
		return nil, models.NewNotFoundError("Video", videoID)
	}
	return video, nil
}

func (s *VideoService) ListVideos(ctx context.Context, in ListVideosInput) (*models.Page[models.Video], error) {
	page, err := s.videoRepo.List(ctx, repository.VideoListParams{
		Page:     in.Page,
		Limit:    in.Limit,
		Query:    in.Query,
		SortBy:   in.SortBy,
		SortDesc: in.SortDesc,
		OwnerID:  in.OwnerID,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return page, nil
}

// UpdateVideo applies the allow-listed metadata fields after an ownership
// check.
func (s *VideoService) UpdateVideo(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own videos")
	}

	updates := map[string]any{}
	if v := strings.TrimSpace(in.Title); v != "" {
		if len(v) > maxVideoTitleLen {
			return nil, models.NewValidationError("Title is too long")
		}
		updates["title"] = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		if len(v) > maxVideoDescriptionLen {
			return nil, models.NewValidationError("Description is too long")
		}
		updates["description"] = v
	}
	if in.Duration != nil {
		if *in.Duration <= 0 {
			return nil, models.NewValidationError("Duration must be greater than zero")
		}
		updates["duration"] = *in.Duration
	}
	if in.Thumbnail != nil && len(in.Thumbnail.Content) > 0 {
		normalized, err := s.thumbs.Process(in.Thumbnail.Content)
		if err != nil {
			return nil, models.NewValidationError("Thumbnail must be a valid JPEG, PNG, or WebP image")
		}
		thumbObject := storage.NewObjectName(storage.ObjectKindThumbnail, "thumb.jpg")
		thumbURL, err := s.media.Upload(ctx, storage.ObjectKindThumbnail, thumbObject, "image/jpeg", normalized)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		updates["thumbnail_url"] = thumbURL
	}
	if len(updates) == 0 {
		return nil, models.NewValidationError("No updatable fields provided")
	}

	if err := s.videoRepo.Update(ctx, in.VideoID, updates); err != nil {
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, in.VideoID)
}

func (s *VideoService) DeleteVideo(ctx context.Context, videoID, userID uint) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if video.OwnerID != userID {
		return models.NewForbiddenError("You can only delete your own videos")
	}
	return s.videoRepo.Delete(ctx, videoID)
}

func (s *VideoService) TogglePublished(ctx context.Context, videoID, userID uint) (bool, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return false, err
	}
	if video.OwnerID != userID {
		return false, models.NewForbiddenError("You can only publish or unpublish your own videos")
	}
	return s.videoRepo.TogglePublished(ctx, videoID)
}

// RecordView bumps the view counter. Failures are logged, not surfaced;
// losing a count is better than failing a playback.
func (s *VideoService) RecordView(ctx context.Context, videoID uint) {
	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to record view", "video_id", videoID, "error", err.Error())
	}
}

func (s *VideoService) cleanupObject(ctx context.Context, objectName string) {
	if err := s.media.Remove(ctx, objectName); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to clean up orphaned media object",
			"object", objectName, "error", err.Error())
	}
}
