package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Saves() store.Saves             { return &saves{db: s.db} }
func (s *pgStore) Credentials() store.Credentials { return &credentials{db: s.db} }

// HealthPing implements health.Pinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
// Ping-only: schema setup is handled by deployment migrations.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.PingContext(ctx)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// --- Saves ---

type saves struct{ db *sql.DB }

func (s *saves) UpsertBatch(ctx context.Context, rows []*model.Save) error {
	if len(rows) == 0 {
		return nil
	}

	ins := psql.Insert("saves").Columns(
		"user_id", "source_id", "url", "title", "content", "excerpt",
		"site_name", "author", "author_handle", "author_image_url",
		"source", "created_at",
	)
	for _, r := range rows {
		ins = ins.Values(
			r.UserID, r.SourceID, r.URL, r.Title, r.Content, r.Excerpt,
			r.SiteName, r.Author, r.AuthorHandle, r.AuthorImageURL,
			r.Source, r.CreatedAt,
		)
	}
	// Last write wins on the (user_id, source_id) key.
	ins = ins.Suffix(`ON CONFLICT (user_id, source_id) DO UPDATE SET
        url = EXCLUDED.url,
        title = EXCLUDED.title,
        content = EXCLUDED.content,
        excerpt = EXCLUDED.excerpt,
        site_name = EXCLUDED.site_name,
        author = EXCLUDED.author,
        author_handle = EXCLUDED.author_handle,
        author_image_url = EXCLUDED.author_image_url,
        source = EXCLUDED.source,
        created_at = EXCLUDED.created_at`)

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert saves: %w", err)
	}
	return nil
}

func (s *saves) ListByUser(ctx context.Context, userID, source string) ([]*model.Save, error) {
	q := psql.Select(
		"user_id", "source_id", "url", "title", "content", "excerpt",
		"site_name", "author", "author_handle", "author_image_url",
		"source", "created_at",
	).From("saves").Where(sq.Eq{"user_id": userID}).OrderBy("created_at DESC")
	if source != "" {
		q = q.Where(sq.Eq{"source": source})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Save
	for rows.Next() {
		var m model.Save
		if err := rows.Scan(&m.UserID, &m.SourceID, &m.URL, &m.Title, &m.Content, &m.Excerpt,
			&m.SiteName, &m.Author, &m.AuthorHandle, &m.AuthorImageURL, &m.Source, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- Credentials ---

type credentials struct{ db *sql.DB }

func (c *credentials) Get(ctx context.Context, userID, provider string) (*model.Credential, error) {
	var out model.Credential
	row := c.db.QueryRowContext(ctx, `
        SELECT user_id, provider, access_token, refresh_token, expires_at
        FROM integrations WHERE user_id=$1 AND provider=$2
    `, userID, provider)
	if err := row.Scan(&out.UserID, &out.Provider, &out.AccessToken, &out.RefreshToken, &out.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *credentials) Put(ctx context.Context, m *model.Credential) (*model.Credential, error) {
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO integrations (user_id, provider, access_token, refresh_token, expires_at)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (user_id, provider) DO UPDATE SET
            access_token = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            expires_at = EXCLUDED.expires_at
    `, m.UserID, m.Provider, m.AccessToken, m.RefreshToken, m.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("upsert credential: %w", err)
	}
	out := *m
	return &out, nil
}

func (c *credentials) ListUsers(ctx context.Context, provider string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT user_id FROM integrations WHERE provider=$1 ORDER BY user_id
    `, provider)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
