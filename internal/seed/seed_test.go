package seed

import (
	"fmt"
	"testing"

	"clipstream/internal/database"
	"clipstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Named shared-cache DB so each test gets its own in-memory database
	// even when the pool opens more than one connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestSeeder_Run(t *testing.T) {
	db := setupSeedDB(t)

	opts := Options{
		NumUsers:       5,
		VideosPerUser:  2,
		TweetsPerUser:  1,
		CommentsPer:    2,
		SubsPerUser:    3,
		LikesPerVideo:  2,
		PlaylistsPer:   1,
		UnpublishedPct: 0,
		RandSeed:       42,
	}
	s := NewSeeder(db, opts)
	require.NoError(t, s.Run())

	var users, videos, tweets, comments int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Video{}).Count(&videos)
	db.Model(&models.Tweet{}).Count(&tweets)
	db.Model(&models.Comment{}).Count(&comments)

	assert.EqualValues(t, 5, users)
	assert.EqualValues(t, 10, videos)
	assert.EqualValues(t, 5, tweets)
	assert.EqualValues(t, 20, comments)

	// No self-subscriptions and no duplicate pairs.
	var selfSubs int64
	db.Model(&models.Subscription{}).Where("subscriber_id = channel_id").Count(&selfSubs)
	assert.Zero(t, selfSubs)

	var pairs []struct {
		SubscriberID uint
		ChannelID    uint
		N            int64
	}
	db.Model(&models.Subscription{}).
		Select("subscriber_id, channel_id, count(*) as n").
		Group("subscriber_id, channel_id").
		Having("count(*) > 1").
		Scan(&pairs)
	assert.Empty(t, pairs)

	// Playlist memberships are positioned from 1 without duplicates.
	var positions []int
	db.Model(&models.PlaylistVideo{}).
		Where("playlist_id = (SELECT MIN(id) FROM playlists)").
		Order("position").
		Pluck("position", &positions)
	for i, p := range positions {
		assert.Equal(t, i+1, p)
	}
}

func TestSeeder_ClearAll(t *testing.T) {
	db := setupSeedDB(t)

	s := NewSeeder(db, Options{NumUsers: 2, VideosPerUser: 1, RandSeed: 7})
	require.NoError(t, s.Run())
	require.NoError(t, s.ClearAll())

	var users, videos int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Video{}).Count(&videos)
	assert.Zero(t, users)
	assert.Zero(t, videos)
}

func TestFactory_CreateUser(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db, Options{RandSeed: 1})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.Contains(t, user.Email, "@")
	assert.NotEqual(t, demoPassword, user.Password)
}
