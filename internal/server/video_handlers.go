package server

import (
	"io"
	"mime/multipart"
	"strconv"

	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetVideos handles GET /api/v1/videos
func (s *Server) GetVideos(c *fiber.Ctx) error {
	params, err := s.parsePageParams(c)
	if err != nil {
		return nil
	}

	var ownerID uint
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid userId parameter"))
		}
		ownerID = uint(parsed)
	}

	sortDesc := true
	if raw := c.Query("sortType"); raw != "" {
		switch raw {
		case "asc":
			sortDesc = false
		case "desc":
			sortDesc = true
		default:
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid sortType parameter"))
		}
	}

	page, err := s.videoService.ListVideos(c.Context(), service.ListVideosInput{
		Page:     params.Page,
		Limit:    params.Limit,
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortDesc: sortDesc,
		OwnerID:  ownerID,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, page)
}

// GetVideo handles GET /api/v1/videos/:id and records the view.
func (s *Server) GetVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	video, err := s.videoService.GetVideo(c.Context(), videoID, viewerID)
	if err != nil {
		return fail(c, err)
	}

	s.videoService.RecordView(c.Context(), videoID)
	return models.RespondWithData(c, fiber.StatusOK, video)
}

// PublishVideo handles POST /api/v1/videos (multipart form)
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	// Kill switch: set FEATURE_FLAGS="video_uploads=off" to pause uploads
	// without a redeploy.
	if !s.flags.Enabled("video_uploads", currentUserID(c), true) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Video uploads are temporarily disabled"))
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("videoFile is required"))
	}
	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("thumbnail is required"))
	}

	var duration float64
	if raw := c.FormValue("duration"); raw != "" {
		duration, err = strconv.ParseFloat(raw, 64)
		if err != nil || duration < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid duration"))
		}
	}

	videoMedia, err := readMediaFile(videoFile)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	thumbMedia, err := readMediaFile(thumbFile)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	video, err := s.videoService.PublishVideo(c.Context(), service.PublishVideoInput{
		OwnerID:     currentUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Duration:    duration,
		Video:       videoMedia,
		Thumbnail:   thumbMedia,
	})
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, video)
}

// UpdateVideo handles PATCH /api/v1/videos/:id
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateVideoInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.UserID = currentUserID(c)
	req.VideoID = videoID

	// Multipart requests may carry a replacement thumbnail.
	if file, ferr := c.FormFile("thumbnail"); ferr == nil {
		media, err := readMediaFile(file)
		if err != nil {
			return fail(c, models.NewInternalError(err))
		}
		req.Thumbnail = &media
	}

	video, err := s.videoService.UpdateVideo(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, video)
}

// DeleteVideo handles DELETE /api/v1/videos/:id
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.videoService.DeleteVideo(c.Context(), videoID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return models.RespondWithMessage(c, fiber.StatusOK, "Video deleted")
}

// TogglePublishVideo handles PATCH /api/v1/videos/:id/toggle-publish
func (s *Server) TogglePublishVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	published, err := s.videoService.TogglePublished(c.Context(), videoID, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, fiber.Map{"published": published})
}

func readMediaFile(header *multipart.FileHeader) (service.MediaFile, error) {
	file, err := header.Open()
	if err != nil {
		return service.MediaFile{}, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return service.MediaFile{}, err
	}

	return service.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
