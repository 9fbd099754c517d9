package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/store"
)

// New opens (or creates) a SQLite database at path, ensures the schema, and
// returns a store backed by it.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB allows wiring with an existing connection (used by the factory
// and by tests).
func NewWithDB(db *sql.DB) store.Store { return &liteStore{db: db} }

type liteStore struct{ db *sql.DB }

func (s *liteStore) Saves() store.Saves             { return &saves{db: s.db} }
func (s *liteStore) Credentials() store.Credentials { return &credentials{db: s.db} }

// HealthPing implements health.Pinger for the SQLite-backed store.
func (s *liteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// --- Saves ---

type saves struct{ db *sql.DB }

func (s *saves) UpsertBatch(ctx context.Context, rows []*model.Save) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO saves (user_id, source_id, url, title, content, excerpt,
            site_name, author, author_handle, author_image_url, source, created_at)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT (user_id, source_id) DO UPDATE SET
            url = excluded.url,
            title = excluded.title,
            content = excluded.content,
            excerpt = excluded.excerpt,
            site_name = excluded.site_name,
            author = excluded.author,
            author_handle = excluded.author_handle,
            author_image_url = excluded.author_image_url,
            source = excluded.source,
            created_at = excluded.created_at
    `)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.UserID, r.SourceID, r.URL, r.Title, r.Content, r.Excerpt,
			r.SiteName, r.Author, r.AuthorHandle, r.AuthorImageURL, r.Source, r.CreatedAt); err != nil {
			return fmt.Errorf("upsert save %s: %w", r.SourceID, err)
		}
	}
	return tx.Commit()
}

func (s *saves) ListByUser(ctx context.Context, userID, source string) ([]*model.Save, error) {
	query := `
        SELECT user_id, source_id, url, title, content, excerpt,
            site_name, author, author_handle, author_image_url, source, created_at
        FROM saves WHERE user_id=?`
	args := []interface{}{userID}
	if source != "" {
		query += ` AND source=?`
		args = append(args, source)
	}
	query += ` ORDER BY created_at DESC`

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
        FROM integrations WHERE user_id=? AND provider=?
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
        VALUES (?,?,?,?,?)
        ON CONFLICT (user_id, provider) DO UPDATE SET
            access_token = excluded.access_token,
            refresh_token = excluded.refresh_token,
            expires_at = excluded.expires_at
    `, m.UserID, m.Provider, m.AccessToken, m.RefreshToken, m.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("upsert credential: %w", err)
	}
	out := *m
	return &out, nil
}

func (c *credentials) ListUsers(ctx context.Context, provider string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
        SELECT user_id FROM integrations WHERE provider=? ORDER BY user_id
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
