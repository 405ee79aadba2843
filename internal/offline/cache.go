package offline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog"
)

// Cache is one named version of the offline cache over a Store.
type Cache struct {
	store    Store
	version  string
	paths    []string
	precache map[string]bool
	fallback string
	log      zerolog.Logger
}

// NewCache creates a cache for version that precaches paths and answers
// failures with fallbackPath.
func NewCache(store Store, version string, paths []string, fallbackPath string, log zerolog.Logger) *Cache {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return &Cache{
		store:    store,
		version:  version,
		paths:    append([]string(nil), paths...),
		precache: set,
		fallback: fallbackPath,
		log:      log.With().Str("component", "offline_cache").Str("version", version).Logger(),
	}
}

// Version returns the cache name.
func (c *Cache) Version() string { return c.version }

// Paths returns the precache list.
func (c *Cache) Paths() []string { return append([]string(nil), c.paths...) }

// Precached reports whether path is on the precache list.
func (c *Cache) Precached(path string) bool { return c.precache[path] }

// Key builds the store key of path rendered for variant. The empty variant
// is the one Install fetches.
func Key(path, variant string) string {
	if variant == "" {
		return path
	}
	return path + "?variant=" + variant
}

// Lookup returns the stored entry for key in the current version.
func (c *Cache) Lookup(ctx context.Context, key string) (*Entry, error) {
	return c.store.Get(ctx, c.version, key)
}

// Remember stores a fresh response for a precached path. Anything else,
// including non-200 responses, is ignored.
func (c *Cache) Remember(ctx context.Context, path, variant string, e Entry) error {
	if !c.Precached(path) || e.Status != http.StatusOK {
		return nil
	}
	return c.store.Put(ctx, c.version, Key(path, variant), e)
}

// Fallback returns the stored fallback page, preferring the variant.
func (c *Cache) Fallback(ctx context.Context, variant string) (*Entry, error) {
	if variant != "" {
		if e, err := c.Lookup(ctx, Key(c.fallback, variant)); err == nil {
			return e, nil
		}
	}
	return c.Lookup(ctx, Key(c.fallback, ""))
}

// Fetcher produces the network response for a path.
type Fetcher func(ctx context.Context, path string) (Entry, error)

// HandlerFetcher serves paths through h in-process.
func HandlerFetcher(h http.Handler) Fetcher {
	return func(ctx context.Context, path string) (Entry, error) {
		req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return NewEntry(rec.Code, rec.Header(), rec.Body.Bytes()), nil
	}
}

// Install fetches every precache path and stores the successful ones.
// Individual failures are logged and skipped.
func (c *Cache) Install(ctx context.Context, fetch Fetcher) (int, error) {
	stored := 0
	for _, p := range c.paths {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		e, err := fetch(ctx, p)
		if err == nil && e.Status != http.StatusOK {
			err = fmt.Errorf("status %d", e.Status)
		}
		if err != nil {
			c.log.Warn().Err(err).Str("path", p).Msg("Failed to precache path, skipping")
			continue
		}
		if err := c.store.Put(ctx, c.version, Key(p, ""), e); err != nil {
			c.log.Warn().Err(err).Str("path", p).Msg("Failed to store precached path")
			continue
		}
		stored++
	}

	c.log.Info().Int("stored", stored).Int("total", len(c.paths)).Msg("Offline cache installed")
	return stored, nil
}

// Activate deletes every stored version other than the current one and
// returns the names it removed.
func (c *Cache) Activate(ctx context.Context) ([]string, error) {
	versions, err := c.store.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	var removed []string
	var errs []error
	for _, v := range versions {
		if v == c.version {
			continue
		}
		n, err := c.store.DeleteVersion(ctx, v)
		if err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", v, err))
			continue
		}
		c.log.Info().Str("old_version", v).Int("entries", n).Msg("Deleted old offline cache")
		removed = append(removed, v)
	}
	return removed, errors.Join(errs...)
}
