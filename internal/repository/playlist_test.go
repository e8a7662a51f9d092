package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistRepository_AddVideo_AppendsAtNextPosition(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (playlist_id, video_id) DO NOTHING`)).
		WithArgs(1, 5, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	added, err := repo.AddVideo(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaylistRepository_AddVideo_AlreadyPresent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO playlist_videos`).
		WithArgs(1, 5, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.AddVideo(ctx, 1, 5)
	require.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaylistRepository_RemoveVideo(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "playlist_videos" WHERE`).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.RemoveVideo(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaylistRepository_RemoveVideo_NotInPlaylist(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "playlist_videos" WHERE`).
		WithArgs(1, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := repo.RemoveVideo(ctx, 1, 9)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaylistRepository_GetByID_LoadsVideosInOrder(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlaylistRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "playlists" WHERE`).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id"}).
			AddRow(1, "Watch later", 7))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "alice"))
	mock.ExpectQuery(`ORDER BY playlist_videos\.position ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(3, "First").
			AddRow(9, "Second"))

	playlist, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Watch later", playlist.Name)
	require.Len(t, playlist.Videos, 2)
	assert.Equal(t, "First", playlist.Videos[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
