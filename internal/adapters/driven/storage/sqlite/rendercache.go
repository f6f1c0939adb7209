package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
)

// renderCache implements driven.RenderCache.
type renderCache struct {
	store *Store
}

var _ driven.RenderCache = (*renderCache)(nil)

// Get retrieves a render by key.
func (c *renderCache) Get(ctx context.Context, key driven.RenderKey) (*domain.RenderedLocale, bool, error) {
	row := c.store.db.QueryRowContext(ctx, `
		SELECT payload FROM render_cache
		WHERE article_id = ? AND locale = ? AND content_hash = ?
	`, string(key.ArticleID), key.Locale.String(), key.ContentHash)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scanning render: %w", err)
	}

	var rendered domain.RenderedLocale
	if err := json.Unmarshal([]byte(payload), &rendered); err != nil {
		return nil, false, fmt.Errorf("unmarshalling render: %w", err)
	}
	return &rendered, true, nil
}

// Put stores a render, replacing older renders of the same locale.
func (c *renderCache) Put(ctx context.Context, key driven.RenderKey, rendered *domain.RenderedLocale) error {
	if rendered == nil {
		return nil
	}
	payload, err := json.Marshal(rendered)
	if err != nil {
		return fmt.Errorf("marshalling render: %w", err)
	}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM render_cache WHERE article_id = ? AND locale = ? AND content_hash <> ?
	`, string(key.ArticleID), key.Locale.String(), key.ContentHash); err != nil {
		return fmt.Errorf("evicting stale renders: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO render_cache (article_id, locale, content_hash, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(article_id, locale, content_hash) DO UPDATE SET
			payload = excluded.payload,
			created_at = CURRENT_TIMESTAMP
	`, string(key.ArticleID), key.Locale.String(), key.ContentHash, string(payload)); err != nil {
		return fmt.Errorf("saving render: %w", err)
	}

	return tx.Commit()
}

// Purge removes every render.
func (c *renderCache) Purge(ctx context.Context) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM render_cache"); err != nil {
		return fmt.Errorf("purging renders: %w", err)
	}
	return nil
}

// Len returns the number of stored renders.
func (c *renderCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM render_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting renders: %w", err)
	}
	return n, nil
}
