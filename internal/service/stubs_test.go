package service

import (
	"context"
	"errors"
	"testing"

	"clipstream/internal/models"
	"clipstream/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hand-written stubs for the repository interfaces. Each field defaults to a
// benign implementation so tests only override what they assert on.

type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getCredentialsFn func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	updateFn         func(context.Context, uint, map[string]any) error
	updatePasswordFn func(context.Context, uint, string) error
	deleteFn         func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetCredentials(ctx context.Context, id uint) (*models.User, error) {
	return s.getCredentialsFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Update(ctx context.Context, id uint, updates map[string]any) error {
	return s.updateFn(ctx, id, updates)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return s.updatePasswordFn(ctx, id, hashed)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getCredentialsFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1}, nil
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1}, nil
		},
		updateFn:         func(_ context.Context, _ uint, _ map[string]any) error { return nil },
		updatePasswordFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
	}
}

type videoRepoStub struct {
	createFn          func(context.Context, *models.Video) error
	getByIDFn         func(context.Context, uint) (*models.Video, error)
	listFn            func(context.Context, repository.VideoListParams) (*models.Page[models.Video], error)
	updateFn          func(context.Context, uint, map[string]any) error
	deleteFn          func(context.Context, uint) error
	incrementViewsFn  func(context.Context, uint) error
	togglePublishedFn func(context.Context, uint) (bool, error)
}

func (s *videoRepoStub) Create(ctx context.Context, v *models.Video) error { return s.createFn(ctx, v) }
func (s *videoRepoStub) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	return s.getByIDFn(ctx, id)
}
func (s *videoRepoStub) List(ctx context.Context, params repository.VideoListParams) (*models.Page[models.Video], error) {
	return s.listFn(ctx, params)
}
func (s *videoRepoStub) Update(ctx context.Context, id uint, updates map[string]any) error {
	return s.updateFn(ctx, id, updates)
}
func (s *videoRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *videoRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *videoRepoStub) TogglePublished(ctx context.Context, id uint) (bool, error) {
	return s.togglePublishedFn(ctx, id)
}

func noopVideoRepo() *videoRepoStub {
	return &videoRepoStub{
		createFn: func(_ context.Context, _ *models.Video) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Video, error) {
			return &models.Video{ID: id, Published: true, OwnerID: 1}, nil
		},
		listFn: func(_ context.Context, p repository.VideoListParams) (*models.Page[models.Video], error) {
			return models.NewPage([]models.Video{}, 0, p.Page, p.Limit), nil
		},
		updateFn:          func(_ context.Context, _ uint, _ map[string]any) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		incrementViewsFn:  func(_ context.Context, _ uint) error { return nil },
		togglePublishedFn: func(_ context.Context, _ uint) (bool, error) { return false, nil },
	}
}

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByVideoFn func(context.Context, uint, int, int) (*models.Page[models.Comment], error)
	updateFn      func(context.Context, uint, string) error
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByVideo(ctx context.Context, videoID uint, page, limit int) (*models.Page[models.Comment], error) {
	return s.listByVideoFn(ctx, videoID, page, limit)
}
func (s *commentRepoStub) Update(ctx context.Context, id uint, content string) error {
	return s.updateFn(ctx, id, content)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, OwnerID: 1}, nil
		},
		listByVideoFn: func(_ context.Context, _ uint, page, limit int) (*models.Page[models.Comment], error) {
			return models.NewPage([]models.Comment{}, 0, page, limit), nil
		},
		updateFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type tweetRepoStub struct {
	createFn       func(context.Context, *models.Tweet) error
	getByIDFn      func(context.Context, uint) (*models.Tweet, error)
	listFn         func(context.Context, int, int) (*models.Page[models.Tweet], error)
	listByOwnerFn  func(context.Context, uint, int, int) (*models.Page[models.Tweet], error)
	listByOwnersFn func(context.Context, []uint, int, int) (*models.Page[models.Tweet], error)
	updateFn       func(context.Context, uint, string) error
	deleteFn       func(context.Context, uint) error
}

func (s *tweetRepoStub) Create(ctx context.Context, tw *models.Tweet) error {
	return s.createFn(ctx, tw)
}
func (s *tweetRepoStub) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tweetRepoStub) List(ctx context.Context, page, limit int) (*models.Page[models.Tweet], error) {
	return s.listFn(ctx, page, limit)
}
func (s *tweetRepoStub) ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Tweet], error) {
	return s.listByOwnerFn(ctx, ownerID, page, limit)
}
func (s *tweetRepoStub) ListByOwners(ctx context.Context, ownerIDs []uint, page, limit int) (*models.Page[models.Tweet], error) {
	return s.listByOwnersFn(ctx, ownerIDs, page, limit)
}
func (s *tweetRepoStub) Update(ctx context.Context, id uint, content string) error {
	return s.updateFn(ctx, id, content)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Tweet, error) {
			return &models.Tweet{ID: id, OwnerID: 1}, nil
		},
		listFn: func(_ context.Context, page, limit int) (*models.Page[models.Tweet], error) {
			return models.NewPage([]models.Tweet{}, 0, page, limit), nil
		},
		listByOwnerFn: func(_ context.Context, _ uint, page, limit int) (*models.Page[models.Tweet], error) {
			return models.NewPage([]models.Tweet{}, 0, page, limit), nil
		},
		listByOwnersFn: func(_ context.Context, _ []uint, page, limit int) (*models.Page[models.Tweet], error) {
			return models.NewPage([]models.Tweet{}, 0, page, limit), nil
		},
		updateFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type likeRepoStub struct {
	toggleFn          func(context.Context, *models.Like) (bool, error)
	isLikedFn         func(context.Context, *models.Like) (bool, error)
	countForTargetFn  func(context.Context, *models.Like) (int64, error)
	listLikedVideosFn func(context.Context, uint, int, int) (*models.Page[models.Video], error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, l *models.Like) (bool, error) {
	return s.toggleFn(ctx, l)
}
func (s *likeRepoStub) IsLiked(ctx context.Context, l *models.Like) (bool, error) {
	return s.isLikedFn(ctx, l)
}
func (s *likeRepoStub) CountForTarget(ctx context.Context, l *models.Like) (int64, error) {
	return s.countForTargetFn(ctx, l)
}
func (s *likeRepoStub) ListLikedVideos(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error) {
	return s.listLikedVideosFn(ctx, userID, page, limit)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn:         func(_ context.Context, _ *models.Like) (bool, error) { return true, nil },
		isLikedFn:        func(_ context.Context, _ *models.Like) (bool, error) { return false, nil },
		countForTargetFn: func(_ context.Context, _ *models.Like) (int64, error) { return 0, nil },
		listLikedVideosFn: func(_ context.Context, _ uint, page, limit int) (*models.Page[models.Video], error) {
			return models.NewPage([]models.Video{}, 0, page, limit), nil
		},
	}
}

type subRepoStub struct {
	toggleFn          func(context.Context, uint, uint) (bool, error)
	isSubscribedFn    func(context.Context, uint, uint) (bool, error)
	subscriberCountFn func(context.Context, uint) (int64, error)
	channelIDsForFn   func(context.Context, uint) ([]uint, error)
	listSubscribersFn func(context.Context, uint, int, int) (*models.Page[models.User], error)
	listChannelsFn    func(context.Context, uint, int, int) (*models.Page[models.User], error)
}

func (s *subRepoStub) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.toggleFn(ctx, subscriberID, channelID)
}
func (s *subRepoStub) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	return s.isSubscribedFn(ctx, subscriberID, channelID)
}
func (s *subRepoStub) SubscriberCount(ctx context.Context, channelID uint) (int64, error) {
	return s.subscriberCountFn(ctx, channelID)
}
func (s *subRepoStub) ChannelIDsFor(ctx context.Context, subscriberID uint) ([]uint, error) {
	return s.channelIDsForFn(ctx, subscriberID)
}
func (s *subRepoStub) ListSubscribers(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.User], error) {
	return s.listSubscribersFn(ctx, channelID, page, limit)
}
func (s *subRepoStub) ListChannels(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.User], error) {
	return s.listChannelsFn(ctx, subscriberID, page, limit)
}

func noopSubRepo() *subRepoStub {
	return &subRepoStub{
		toggleFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isSubscribedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		subscriberCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		channelIDsForFn:   func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		listSubscribersFn: func(_ context.Context, _ uint, page, limit int) (*models.Page[models.User], error) {
			return models.NewPage([]models.User{}, 0, page, limit), nil
		},
		listChannelsFn: func(_ context.Context, _ uint, page, limit int) (*models.Page[models.User], error) {
			return models.NewPage([]models.User{}, 0, page, limit), nil
		},
	}
}

type playlistRepoStub struct {
	createFn      func(context.Context, *models.Playlist) error
	getByIDFn     func(context.Context, uint) (*models.Playlist, error)
	listByOwnerFn func(context.Context, uint, int, int) (*models.Page[models.Playlist], error)
	updateFn      func(context.Context, uint, map[string]any) error
	deleteFn      func(context.Context, uint) error
	addVideoFn    func(context.Context, uint, uint) (bool, error)
	removeVideoFn func(context.Context, uint, uint) (bool, error)
}

func (s *playlistRepoStub) Create(ctx context.Context, p *models.Playlist) error {
	return s.createFn(ctx, p)
}
func (s *playlistRepoStub) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	return s.getByIDFn(ctx, id)
}
func (s *playlistRepoStub) ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error) {
	return s.listByOwnerFn(ctx, ownerID, page, limit)
}
func (s *playlistRepoStub) Update(ctx context.Context, id uint, updates map[string]any) error {
	return s.updateFn(ctx, id, updates)
}
func (s *playlistRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *playlistRepoStub) AddVideo(ctx context.Context, playlistID, videoID uint) (bool, error) {
	return s.addVideoFn(ctx, playlistID, videoID)
}
func (s *playlistRepoStub) RemoveVideo(ctx context.Context, playlistID, videoID uint) (bool, error) {
	return s.removeVideoFn(ctx, playlistID, videoID)
}

func noopPlaylistRepo() *playlistRepoStub {
	return &playlistRepoStub{
		createFn: func(_ context.Context, _ *models.Playlist) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Playlist, error) {
			return &models.Playlist{ID: id, OwnerID: 1}, nil
		},
		listByOwnerFn: func(_ context.Context, _ uint, page, limit int) (*models.Page[models.Playlist], error) {
			return models.NewPage([]models.Playlist{}, 0, page, limit), nil
		},
		updateFn:      func(_ context.Context, _ uint, _ map[string]any) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		addVideoFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		removeVideoFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// mediaStub records uploads and removals for orphan cleanup assertions.
type mediaStub struct {
	uploads  []string
	removals []string
	uploadFn func(kind, objectName string) (string, error)
}

func (s *mediaStub) Upload(_ context.Context, kind, objectName, _ string, _ []byte) (string, error) {
	if s.uploadFn != nil {
		url, err := s.uploadFn(kind, objectName)
		if err != nil {
			return "", err
		}
		s.uploads = append(s.uploads, objectName)
		return url, nil
	}
	s.uploads = append(s.uploads, objectName)
	return "http://media.local/" + objectName, nil
}

func (s *mediaStub) Remove(_ context.Context, objectName string) error {
	s.removals = append(s.removals, objectName)
	return nil
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	assertAppError(t, err, "VALIDATION_ERROR")
}

func assertForbiddenError(t *testing.T, err error) {
	assertAppError(t, err, "FORBIDDEN")
}

func assertNotFoundError(t *testing.T, err error) {
	assertAppError(t, err, "NOT_FOUND")
}

func assertUnauthorizedError(t *testing.T, err error) {
	assertAppError(t, err, "UNAUTHORIZED")
}
