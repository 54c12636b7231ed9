package driver

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"search-hub/logger"
)

// Pool is the subset of pgxpool.Pool the content driver needs. Tests
// substitute a pgxmock pool.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// ContentDriver reads the content collaborator's Postgres tables. It is
// read-only: search-hub never writes to the system of record.
type ContentDriver struct {
	pool Pool
}

func NewContentDriver(pool Pool) *ContentDriver {
	return &ContentDriver{pool: pool}
}

// NewContentDriverFromConfig creates a ContentDriver with a connection pool
// built from environment variables.
func NewContentDriverFromConfig(ctx context.Context) (*ContentDriver, error) {
	pool, err := initDatabasePool(ctx)
	if err != nil {
		return nil, err
	}
	return &ContentDriver{pool: pool}, nil
}

// initDatabasePool initializes the database connection pool
func initDatabasePool(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		// Construct DATABASE_URL from individual environment variables
		dbHost := os.Getenv("DB_HOST")
		dbPort := os.Getenv("DB_PORT")
		dbName := os.Getenv("DB_NAME")
		dbUser := os.Getenv("SEARCH_HUB_DB_USER")
		dbPassword := os.Getenv("SEARCH_HUB_DB_PASSWORD")

		if dbHost == "" || dbPort == "" || dbName == "" || dbUser == "" || dbPassword == "" {
			return nil, &DriverError{
				Op:  "initDatabasePool",
				Err: "database connection parameters are not set. Required: DB_HOST, DB_PORT, DB_NAME, SEARCH_HUB_DB_USER, SEARCH_HUB_DB_PASSWORD",
			}
		}

		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, dbHost, dbPort, dbName)
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: "failed to parse database URL: " + err.Error(),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: "failed to create database pool: " + err.Error(),
		}
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, &DriverError{
			Op:  "initDatabasePool",
			Err: "failed to ping database: " + err.Error(),
		}
	}

	logger.Logger.Info("Database connected successfully")
	return pool, nil
}

// Close closes the database connection pool
func (d *ContentDriver) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// GetArticlesBatch fetches a page of articles with their tag names using
// keyset pagination over (updated_at, id) descending.
func (d *ContentDriver) GetArticlesBatch(ctx context.Context, lastUpdatedAt *time.Time, lastID string, limit int) ([]ArticleRow, *time.Time, string, error) {
	var query string
	var args []any

	if lastUpdatedAt == nil || lastUpdatedAt.IsZero() {
		query = `
			SELECT a.id, a.title, a.summary, a.content, a.category, a.slug,
				   a.published, a.featured, a.created_at, a.updated_at,
				   COALESCE(
					   array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL),
					   '{}'
				   ) as tag_names
			FROM articles a
			LEFT JOIN article_tags at ON a.id = at.article_id
			LEFT JOIN tags t ON at.tag_id = t.id
			GROUP BY a.id
			ORDER BY a.updated_at DESC, a.id DESC
			LIMIT $1
		`
		args = []any{limit}
	} else {
		query = `
			SELECT a.id, a.title, a.summary, a.content, a.category, a.slug,
				   a.published, a.featured, a.created_at, a.updated_at,
				   COALESCE(
					   array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL),
					   '{}'
				   ) as tag_names
			FROM articles a
			LEFT JOIN article_tags at ON a.id = at.article_id
			LEFT JOIN tags t ON at.tag_id = t.id
			WHERE (a.updated_at, a.id) < ($1, $2)
			GROUP BY a.id
			ORDER BY a.updated_at DESC, a.id DESC
			LIMIT $3
		`
		args = []any{*lastUpdatedAt, lastID, limit}
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, "", &DriverError{Op: "GetArticlesBatch", Err: err.Error()}
	}
	defer rows.Close()

	var articles []ArticleRow
	var finalUpdatedAt *time.Time
	var finalID string

	for rows.Next() {
		var row ArticleRow
		err = rows.Scan(&row.ID, &row.Title, &row.Summary, &row.Content, &row.Category, &row.Slug,
			&row.Published, &row.Featured, &row.CreatedAt, &row.UpdatedAt, &row.Tags)
		if err != nil {
			return nil, nil, "", &DriverError{Op: "GetArticlesBatch", Err: err.Error()}
		}
		articles = append(articles, row)
		updatedAt := row.UpdatedAt
		finalUpdatedAt = &updatedAt
		finalID = row.ID
	}

	if err := rows.Err(); err != nil {
		return nil, nil, "", &DriverError{Op: "GetArticlesBatch", Err: err.Error()}
	}

	return articles, finalUpdatedAt, finalID, nil
}

// GetArticleByID fetches one article with its tags.
func (d *ContentDriver) GetArticleByID(ctx context.Context, id string) (*ArticleRow, error) {
	query := `
		SELECT a.id, a.title, a.summary, a.content, a.category, a.slug,
			   a.published, a.featured, a.created_at, a.updated_at,
			   COALESCE(
				   array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL),
				   '{}'
			   ) as tag_names
		FROM articles a
		LEFT JOIN article_tags at ON a.id = at.article_id
		LEFT JOIN tags t ON at.tag_id = t.id
		WHERE a.id = $1
		GROUP BY a.id
	`

	var row ArticleRow
	err := d.pool.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Title, &row.Summary, &row.Content, &row.Category, &row.Slug,
		&row.Published, &row.Featured, &row.CreatedAt, &row.UpdatedAt, &row.Tags)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, &DriverError{Op: "GetArticleByID", Err: err.Error()}
	}
	return &row, nil
}

// GetToolsBatch fetches a page of curated tools.
func (d *ContentDriver) GetToolsBatch(ctx context.Context, lastUpdatedAt *time.Time, lastID string, limit int) ([]ToolRow, *time.Time, string, error) {
	var query string
	var args []any

	if lastUpdatedAt == nil || lastUpdatedAt.IsZero() {
		query = `
			SELECT id, name, description, notes, platform, category, url, tags,
				   published, featured, created_at, updated_at
			FROM tools
			ORDER BY updated_at DESC, id DESC
			LIMIT $1
		`
		args = []any{limit}
	} else {
		query = `
			SELECT id, name, description, notes, platform, category, url, tags,
				   published, featured, created_at, updated_at
			FROM tools
			WHERE (updated_at, id) < ($1, $2)
			ORDER BY updated_at DESC, id DESC
			LIMIT $3
		`
		args = []any{*lastUpdatedAt, lastID, limit}
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, "", &DriverError{Op: "GetToolsBatch", Err: err.Error()}
	}
	defer rows.Close()

	var tools []ToolRow
	var finalUpdatedAt *time.Time
	var finalID string

	for rows.Next() {
		var row ToolRow
		err = rows.Scan(&row.ID, &row.Name, &row.Description, &row.Notes, &row.Platform, &row.Category,
			&row.URL, &row.Tags, &row.Published, &row.Featured, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, nil, "", &DriverError{Op: "GetToolsBatch", Err: err.Error()}
		}
		tools = append(tools, row)
		updatedAt := row.UpdatedAt
		finalUpdatedAt = &updatedAt
		finalID = row.ID
	}

	if err := rows.Err(); err != nil {
		return nil, nil, "", &DriverError{Op: "GetToolsBatch", Err: err.Error()}
	}

	return tools, finalUpdatedAt, finalID, nil
}

// GetToolByID fetches one tool.
func (d *ContentDriver) GetToolByID(ctx context.Context, id string) (*ToolRow, error) {
	query := `
		SELECT id, name, description, notes, platform, category, url, tags,
			   published, featured, created_at, updated_at
		FROM tools
		WHERE id = $1
	`

	var row ToolRow
	err := d.pool.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.Description, &row.Notes, &row.Platform, &row.Category,
		&row.URL, &row.Tags, &row.Published, &row.Featured, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, &DriverError{Op: "GetToolByID", Err: err.Error()}
	}
	return &row, nil
}

// GetResourcesBatch fetches a page of resources.
func (d *ContentDriver) GetResourcesBatch(ctx context.Context, lastUpdatedAt *time.Time, lastID string, limit int) ([]ResourceRow, *time.Time, string, error) {
	var query string
	var args []any

	if lastUpdatedAt == nil || lastUpdatedAt.IsZero() {
		query = `
			SELECT id, title, description, kind, category, url, tags,
				   published, featured, created_at, updated_at
			FROM resources
			ORDER BY updated_at DESC, id DESC
			LIMIT $1
		`
		args = []any{limit}
	} else {
		query = `
			SELECT id, title, description, kind, category, url, tags,
				   published, featured, created_at, updated_at
			FROM resources
			WHERE (updated_at, id) < ($1, $2)
			ORDER BY updated_at DESC, id DESC
			LIMIT $3
		`
		args = []any{*lastUpdatedAt, lastID, limit}
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, "", &DriverError{Op: "GetResourcesBatch", Err: err.Error()}
	}
	defer rows.Close()

	var resources []ResourceRow
	var finalUpdatedAt *time.Time
	var finalID string

	for rows.Next() {
		var row ResourceRow
		err = rows.Scan(&row.ID, &row.Title, &row.Description, &row.Kind, &row.Category,
			&row.URL, &row.Tags, &row.Published, &row.Featured, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, nil, "", &DriverError{Op: "GetResourcesBatch", Err: err.Error()}
		}
		resources = append(resources, row)
		updatedAt := row.UpdatedAt
		finalUpdatedAt = &updatedAt
		finalID = row.ID
	}

	if err := rows.Err(); err != nil {
		return nil, nil, "", &DriverError{Op: "GetResourcesBatch", Err: err.Error()}
	}

	return resources, finalUpdatedAt, finalID, nil
}

// GetResourceByID fetches one resource.
func (d *ContentDriver) GetResourceByID(ctx context.Context, id string) (*ResourceRow, error) {
	query := `
		SELECT id, title, description, kind, category, url, tags,
			   published, featured, created_at, updated_at
		FROM resources
		WHERE id = $1
	`

	var row ResourceRow
	err := d.pool.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Title, &row.Description, &row.Kind, &row.Category,
		&row.URL, &row.Tags, &row.Published, &row.Featured, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, &DriverError{Op: "GetResourceByID", Err: err.Error()}
	}
	return &row, nil
}

// GetProfileEntriesBatch fetches a page of profile entries.
func (d *ContentDriver) GetProfileEntriesBatch(ctx context.Context, lastUpdatedAt *time.Time, lastID string, limit int) ([]ProfileEntryRow, *time.Time, string, error) {
	var query string
	var args []any

	if lastUpdatedAt == nil || lastUpdatedAt.IsZero() {
		query = `
			SELECT id, section, label, value, visible, created_at, updated_at
			FROM profile_entries
			ORDER BY updated_at DESC, id DESC
			LIMIT $1
		`
		args = []any{limit}
	} else {
		query = `
			SELECT id, section, label, value, visible, created_at, updated_at
			FROM profile_entries
			WHERE (updated_at, id) < ($1, $2)
			ORDER BY updated_at DESC, id DESC
			LIMIT $3
		`
		args = []any{*lastUpdatedAt, lastID, limit}
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, "", &DriverError{Op: "GetProfileEntriesBatch", Err: err.Error()}
	}
	defer rows.Close()

	var entries []ProfileEntryRow
	var finalUpdatedAt *time.Time
	var finalID string

	for rows.Next() {
		var row ProfileEntryRow
		err = rows.Scan(&row.ID, &row.Section, &row.Label, &row.Value, &row.Visible, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, nil, "", &DriverError{Op: "GetProfileEntriesBatch", Err: err.Error()}
		}
		entries = append(entries, row)
		updatedAt := row.UpdatedAt
		finalUpdatedAt = &updatedAt
		finalID = row.ID
	}

	if err := rows.Err(); err != nil {
		return nil, nil, "", &DriverError{Op: "GetProfileEntriesBatch", Err: err.Error()}
	}

	return entries, finalUpdatedAt, finalID, nil
}

// GetProfileEntryByID fetches one profile entry.
func (d *ContentDriver) GetProfileEntryByID(ctx context.Context, id string) (*ProfileEntryRow, error) {
	query := `
		SELECT id, section, label, value, visible, created_at, updated_at
		FROM profile_entries
		WHERE id = $1
	`

	var row ProfileEntryRow
	err := d.pool.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Section, &row.Label, &row.Value, &row.Visible, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, &DriverError{Op: "GetProfileEntryByID", Err: err.Error()}
	}
	return &row, nil
}
