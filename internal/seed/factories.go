// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"clipstream/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// demoPassword is the plaintext password shared by all seeded accounts so
// developers can log in as any of them.
const demoPassword = "SeededPass123!"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rng  *rand.Rand
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	return &Factory{db: db, rng: rand.New(rand.NewSource(seed)), opts: opts}
}

// CreateUser persists a user with a realistic profile. The username is made
// collision-resistant with a numeric suffix.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := gofakeit.Name()
	username := fmt.Sprintf("%s%d",
		strings.ToLower(strings.ReplaceAll(name, " ", "_")), f.rng.Intn(10000))
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Password: string(hash),
		FullName: name,
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/300?u=%s", gofakeit.UUID()),
	}
	user.CreatedAt = f.pastTime()

	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateVideo persists a published video owned by the given user.
func (f *Factory) CreateVideo(owner *models.User, overrides ...func(*models.Video)) (*models.Video, error) {
	id := gofakeit.UUID()
	video := &models.Video{
		Title:        gofakeit.Sentence(4 + f.rng.Intn(5)),
		Description:  gofakeit.Paragraph(1, 2, 8, "\n"),
		Duration:     10 + f.rng.Float64()*590,
		VideoURL:     fmt.Sprintf("https://media.clipstream.dev/media/videos/%s.mp4", id),
		ThumbnailURL: fmt.Sprintf("https://media.clipstream.dev/media/thumbnails/%s.jpg", id),
		Views:        int64(f.rng.Intn(50000)),
		Published:    true,
		OwnerID:      owner.ID,
	}
	video.CreatedAt = f.pastTime()

	for _, override := range overrides {
		override(video)
	}
	if err := f.db.Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// CreateComment persists a comment by the user on the video.
func (f *Factory) CreateComment(owner *models.User, video *models.Video) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(3 + f.rng.Intn(15)),
		VideoID: video.ID,
		OwnerID: owner.ID,
	}
	comment.CreatedAt = f.pastTime()
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateTweet persists a short channel post by the user.
func (f *Factory) CreateTweet(owner *models.User) (*models.Tweet, error) {
	tweet := &models.Tweet{
		Content: gofakeit.Sentence(5 + f.rng.Intn(20)),
		OwnerID: owner.ID,
	}
	tweet.CreatedAt = f.pastTime()
	if err := f.db.Create(tweet).Error; err != nil {
		return nil, err
	}
	return tweet, nil
}

// Subscribe links subscriber to channel, skipping self-pairs and duplicates.
func (f *Factory) Subscribe(subscriber, channel *models.User) error {
	if subscriber.ID == channel.ID {
		return nil
	}
	sub := &models.Subscription{SubscriberID: subscriber.ID, ChannelID: channel.ID}
	err := f.db.Create(sub).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// LikeVideo records a like of the video by the user, skipping duplicates.
func (f *Factory) LikeVideo(user *models.User, video *models.Video) error {
	like := &models.Like{VideoID: video.ID, LikedByID: user.ID}
	err := f.db.Create(like).Error
	if err != nil && isDuplicate(err) {
		return nil
	}
	return err
}

// CreatePlaylist persists a playlist and its ordered memberships.
func (f *Factory) CreatePlaylist(owner *models.User, videos []*models.Video) (*models.Playlist, error) {
	playlist := &models.Playlist{
		Name:        gofakeit.HipsterSentence(3),
		Description: gofakeit.Sentence(8),
		OwnerID:     owner.ID,
	}
	if err := f.db.Create(playlist).Error; err != nil {
		return nil, err
	}
	for i, v := range videos {
		row := &models.PlaylistVideo{PlaylistID: playlist.ID, VideoID: v.ID, Position: i + 1}
		if err := f.db.Create(row).Error; err != nil {
			return nil, err
		}
	}
	return playlist, nil
}

// pastTime returns a timestamp spread over the recent past so feeds and
// sort orders look lived-in.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

func isDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "unique constraint")
}
