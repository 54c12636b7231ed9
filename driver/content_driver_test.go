package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDriver(t *testing.T) (*ContentDriver, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewContentDriver(mock), mock
}

var articleColumns = []string{
	"id", "title", "summary", "content", "category", "slug",
	"published", "featured", "created_at", "updated_at", "tag_names",
}

func TestGetArticlesBatch_FirstPage(t *testing.T) {
	d, mock := newMockDriver(t)

	now := time.Now()
	mock.ExpectQuery("SELECT a.id, a.title").
		WithArgs(200).
		WillReturnRows(pgxmock.NewRows(articleColumns).
			AddRow("a1", "First", "Sum", "Body", "engineering", "first", true, false, now, now, []string{"go"}).
			AddRow("a2", "Second", "Sum", "Body", "engineering", "second", true, true, now.Add(-time.Hour), now.Add(-time.Hour), []string{}))

	articles, lastUpdatedAt, lastID, err := d.GetArticlesBatch(context.Background(), nil, "", 200)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "a1", articles[0].ID)
	assert.Equal(t, []string{"go"}, articles[0].Tags)

	// Cursor advances to the last row of the page.
	assert.Equal(t, "a2", lastID)
	require.NotNil(t, lastUpdatedAt)
	assert.WithinDuration(t, now.Add(-time.Hour), *lastUpdatedAt, time.Second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetArticlesBatch_KeysetPage(t *testing.T) {
	d, mock := newMockDriver(t)

	cursor := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE \\(a.updated_at, a.id\\) <").
		WithArgs(cursor, "a5", 200).
		WillReturnRows(pgxmock.NewRows(articleColumns))

	articles, lastUpdatedAt, lastID, err := d.GetArticlesBatch(context.Background(), &cursor, "a5", 200)
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Nil(t, lastUpdatedAt)
	assert.Empty(t, lastID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetArticlesBatch_QueryError(t *testing.T) {
	d, mock := newMockDriver(t)

	mock.ExpectQuery("SELECT a.id, a.title").
		WithArgs(200).
		WillReturnError(errors.New("connection refused"))

	_, _, _, err := d.GetArticlesBatch(context.Background(), nil, "", 200)
	assert.Error(t, err)
}

func TestGetArticleByID_NotFound(t *testing.T) {
	d, mock := newMockDriver(t)

	mock.ExpectQuery("WHERE a.id =").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(articleColumns))

	row, err := d.GetArticleByID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, row, "a missing record is nil, not an error")
}

func TestGetArticleByID_Found(t *testing.T) {
	d, mock := newMockDriver(t)

	now := time.Now()
	mock.ExpectQuery("WHERE a.id =").
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows(articleColumns).
			AddRow("a1", "First", "Sum", "Body", "engineering", "first", true, false, now, now, []string{"go", "testing"}))

	row, err := d.GetArticleByID(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "First", row.Title)
	assert.Equal(t, []string{"go", "testing"}, row.Tags)
}

func TestGetToolsBatch_FirstPage(t *testing.T) {
	d, mock := newMockDriver(t)

	now := time.Now()
	mock.ExpectQuery("FROM tools").
		WithArgs(100).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "description", "notes", "platform", "category", "url", "tags",
			"published", "featured", "created_at", "updated_at",
		}).AddRow("t1", "ripgrep", "fast grep", "daily driver", "cli", "search", "https://example.com", []string{"rust"}, true, false, now, now))

	tools, _, lastID, err := d.GetToolsBatch(context.Background(), nil, "", 100)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "ripgrep", tools[0].Name)
	assert.Equal(t, "cli", tools[0].Platform)
	assert.Equal(t, "t1", lastID)
}

func TestGetProfileEntryByID_Found(t *testing.T) {
	d, mock := newMockDriver(t)

	now := time.Now()
	mock.ExpectQuery("FROM profile_entries").
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "section", "label", "value", "visible", "created_at", "updated_at",
		}).AddRow("p1", "bio", "Bio", "I build search systems.", true, now, now))

	row, err := d.GetProfileEntryByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "bio", row.Section)
	assert.Equal(t, "I build search systems.", row.Value)
}
