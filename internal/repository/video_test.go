package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepository_List_PublishedOnlyWithOwnerJoin(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "videos" INNER JOIN "users" "Owner"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT .* FROM "videos" INNER JOIN "users" "Owner"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "views", "owner_id", "created_at"}).
			AddRow(1, "First clip", 10, 7, time.Now()).
			AddRow(2, "Second clip", 3, 8, time.Now()))

	page, err := repo.List(ctx, VideoListParams{Page: 1, Limit: 10, SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "First clip", page.Items[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_List_RejectsUnknownSortColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "videos"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// An unrecognized sort field must fall back to created_at, never be
	// interpolated into the query.
	mock.ExpectQuery(`ORDER BY videos\.created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.List(ctx, VideoListParams{Page: 1, Limit: 10, SortBy: "views; DROP TABLE videos"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_IncrementViews_SingleExpression(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "videos" SET "views"=views + $1 WHERE id = $2`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.IncrementViews(ctx, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_Update_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "videos" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(ctx, 404, map[string]any{"title": "new title"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
