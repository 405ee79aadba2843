package offline

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrMiss = errors.New("offline cache miss")

// Store persists entries grouped by cache version.
type Store interface {
	Put(ctx context.Context, version, key string, e Entry) error
	Get(ctx context.Context, version, key string) (*Entry, error)
	Keys(ctx context.Context, version string) ([]string, error)
	Versions(ctx context.Context) ([]string, error)
	DeleteVersion(ctx context.Context, version string) (int, error)
}

// MemoryStore is the in-process Store used when Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	versions map[string]map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{versions: make(map[string]map[string]Entry)}
}

func (s *MemoryStore) Put(_ context.Context, version, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.versions[version]
	if !ok {
		entries = make(map[string]Entry)
		s.versions[version] = entries
	}
	entries[key] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, version, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.versions[version][key]
	if !ok {
		return nil, ErrMiss
	}
	return &e, nil
}

func (s *MemoryStore) Keys(_ context.Context, version string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.versions[version]))
	for k := range s.versions[version] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Versions(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.versions))
	for v := range s.versions {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) DeleteVersion(_ context.Context, version string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.versions[version])
	delete(s.versions, version)
	return n, nil
}
