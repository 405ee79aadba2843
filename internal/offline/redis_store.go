package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/chemistry-web/internal/config"
)

// RedisStore keeps each entry in a hash, with a per-version set indexing
// the stored keys and one set listing the versions.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Put(ctx context.Context, version, key string, e Entry) error {
	header, err := json.Marshal(e.Header)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	entryKey := config.CacheKey.OfflineEntryKey(version, key)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, entryKey)
	pipe.HSet(ctx, entryKey,
		"status", e.Status,
		"header", header,
		"body", e.Body,
		"etag", e.ETag,
		"stored_at", e.StoredAt.Format(time.RFC3339),
	)
	pipe.SAdd(ctx, config.CacheKey.OfflineIndexKey(version), key)
	pipe.SAdd(ctx, config.CacheKey.OfflineVersionsKey(), version)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store offline entry: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, version, key string) (*Entry, error) {
	fields, err := s.rdb.HGetAll(ctx, config.CacheKey.OfflineEntryKey(version, key)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrMiss
	}

	status, err := strconv.Atoi(fields["status"])
	if err != nil {
		return nil, fmt.Errorf("parse status: %w", err)
	}
	e := &Entry{
		Status: status,
		Body:   []byte(fields["body"]),
		ETag:   fields["etag"],
	}
	if err := json.Unmarshal([]byte(fields["header"]), &e.Header); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, fields["stored_at"]); err == nil {
		e.StoredAt = t
	}
	return e, nil
}

func (s *RedisStore) Keys(ctx context.Context, version string) ([]string, error) {
	keys, err := s.rdb.SMembers(ctx, config.CacheKey.OfflineIndexKey(version)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) Versions(ctx context.Context) ([]string, error) {
	versions, err := s.rdb.SMembers(ctx, config.CacheKey.OfflineVersionsKey()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	sort.Strings(versions)
	return versions, nil
}

func (s *RedisStore) DeleteVersion(ctx context.Context, version string) (int, error) {
	keys, err := s.Keys(ctx, version)
	if err != nil {
		return 0, err
	}

	pipe := s.rdb.TxPipeline()
	for _, k := range keys {
		pipe.Del(ctx, config.CacheKey.OfflineEntryKey(version, k))
	}
	pipe.Del(ctx, config.CacheKey.OfflineIndexKey(version))
	pipe.SRem(ctx, config.CacheKey.OfflineVersionsKey(), version)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("delete offline version: %w", err)
	}
	return len(keys), nil
}
