package seed

import (
	"fmt"
	"log"

	"clipstream/internal/models"

	"gorm.io/gorm"
)

// Options controls the size and shape of a seeding run.
type Options struct {
	NumUsers       int
	VideosPerUser  int
	TweetsPerUser  int
	CommentsPer    int // comments created per video
	SubsPerUser    int // channels each user subscribes to
	LikesPerVideo  int
	PlaylistsPer   int // playlists per user
	UnpublishedPct int // percentage of videos left unpublished
	MaxDays        int // spread of created_at timestamps
	RandSeed       int64
}

// DefaultOptions returns a mid-sized demo dataset configuration.
func DefaultOptions() Options {
	return Options{
		NumUsers:       25,
		VideosPerUser:  4,
		TweetsPerUser:  3,
		CommentsPer:    5,
		SubsPerUser:    6,
		LikesPerVideo:  8,
		PlaylistsPer:   1,
		UnpublishedPct: 10,
		MaxDays:        90,
	}
}

// Seeder populates the database with demo content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll deletes all seeded content. Order matters: join and reference
// rows go before the rows they point at.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"playlist_videos", "playlists", "likes", "subscriptions",
		"comments", "tweets", "videos", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Run creates a community of users with videos, tweets, comments, likes,
// subscriptions, and playlists according to the configured options.
func (s *Seeder) Run() error {
	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	videos := make([]*models.Video, 0, s.opts.NumUsers*s.opts.VideosPerUser)
	for _, user := range users {
		for i := 0; i < s.opts.VideosPerUser; i++ {
			unpublished := s.factory.rng.Intn(100) < s.opts.UnpublishedPct
			video, err := s.factory.CreateVideo(user, func(v *models.Video) {
				if unpublished {
					v.Published = false
					v.Views = 0
				}
			})
			if err != nil {
				return fmt.Errorf("creating video: %w", err)
			}
			videos = append(videos, video)
		}
		for i := 0; i < s.opts.TweetsPerUser; i++ {
			if _, err := s.factory.CreateTweet(user); err != nil {
				return fmt.Errorf("creating tweet: %w", err)
			}
		}
	}
	log.Printf("seeded %d videos", len(videos))

	for _, video := range videos {
		for i := 0; i < s.opts.CommentsPer; i++ {
			author := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, video); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
		for i := 0; i < s.opts.LikesPerVideo; i++ {
			fan := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.LikeVideo(fan, video); err != nil {
				return fmt.Errorf("liking video: %w", err)
			}
		}
	}

	for _, user := range users {
		for i := 0; i < s.opts.SubsPerUser; i++ {
			channel := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.Subscribe(user, channel); err != nil {
				return fmt.Errorf("subscribing: %w", err)
			}
		}
		for i := 0; i < s.opts.PlaylistsPer; i++ {
			picks := s.pickVideos(videos, 3+s.factory.rng.Intn(4))
			if _, err := s.factory.CreatePlaylist(user, picks); err != nil {
				return fmt.Errorf("creating playlist: %w", err)
			}
		}
	}
	log.Println("seeding complete")
	return nil
}

// pickVideos selects up to n distinct published videos.
func (s *Seeder) pickVideos(videos []*models.Video, n int) []*models.Video {
	picked := make([]*models.Video, 0, n)
	seen := make(map[uint]bool)
	for attempts := 0; len(picked) < n && attempts < n*4; attempts++ {
		v := videos[s.factory.rng.Intn(len(videos))]
		if !v.Published || seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		picked = append(picked, v)
	}
	return picked
}
