// Package cache stores fetched question-bank payloads for offline
// replay. Payloads can be large, so the cache is evicted aggressively
// and write failures are treated as quota exhaustion, not fatal errors.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Fetcher fetches a URL over the network, expecting JSON back.
type Fetcher interface {
	GetJSON(ctx context.Context, url string) (json.RawMessage, error)
}

type Cache struct {
	db      *sqlx.DB
	fetcher Fetcher
	logger  *slog.Logger
}

func New(db *sqlx.DB, fetcher Fetcher, logger *slog.Logger) *Cache {
	return &Cache{
		db:      db,
		fetcher: fetcher,
		logger:  logger.With("component", "cache"),
	}
}

// FetchCached serves url from the cache if present, else fetches it,
// stores it and returns it. A failed store never blocks returning the
// fetched payload: the cache is scrubbed on the assumption the storage
// quota is full, and the write retried once.
func (c *Cache) FetchCached(ctx context.Context, url string, timeout time.Duration) (json.RawMessage, error) {
	var value string
	err := c.db.GetContext(ctx, &value, "SELECT value FROM cache WHERE url = ?", url)
	if err == nil {
		return json.RawMessage(value), nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	fetchCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	data, err := c.fetcher.GetJSON(fetchCtx, url)
	if err != nil {
		return nil, err
	}

	if err := c.put(ctx, url, data); err != nil {
		c.logger.Warn("cache write failed, scrubbing cache", "url", url, "error", err)
		if _, err := c.db.ExecContext(ctx, "DELETE FROM cache"); err != nil {
			c.logger.Warn("cache scrub failed", "error", err)
		}
		if err := c.put(ctx, url, data); err != nil {
			c.logger.Warn("cache write failed after scrub", "url", url, "error", err)
		}
	}

	return data, nil
}

func (c *Cache) put(ctx context.Context, url string, data json.RawMessage) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO cache (url, value) VALUES (?, ?)
		ON CONFLICT (url) DO UPDATE SET value = excluded.value`,
		url, string(data),
	)
	return err
}

// ListCachedURLs returns the set of URLs currently cached.
func (c *Cache) ListCachedURLs(ctx context.Context) (map[string]struct{}, error) {
	var urls []string
	if err := c.db.SelectContext(ctx, &urls, "SELECT url FROM cache"); err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		out[u] = struct{}{}
	}
	return out, nil
}

// EvictExcept removes every entry whose URL is not in expected. With
// invert set it removes the entries that are in expected instead,
// which is only useful for diagnostics.
func (c *Cache) EvictExcept(ctx context.Context, expected map[string]struct{}, invert bool) error {
	urls, err := c.ListCachedURLs(ctx)
	if err != nil {
		return err
	}

	var doomed []string
	for u := range urls {
		_, keep := expected[u]
		if keep == invert {
			doomed = append(doomed, u)
		}
	}
	if len(doomed) == 0 {
		return nil
	}

	query, args, err := sqlx.In("DELETE FROM cache WHERE url IN (?)", doomed)
	if err != nil {
		return err
	}
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	c.logger.Debug("evicted cache entries", "count", len(doomed), "urls", strings.Join(doomed, ", "))
	return nil
}

// InjectCache seeds an entry directly, bypassing the network.
func (c *Cache) InjectCache(ctx context.Context, url string, data json.RawMessage) error {
	return c.put(ctx, url, data)
}
