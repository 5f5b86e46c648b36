package cache

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultMaxEntries = 1024

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a TTL cache shared by the components it is injected into.
// When full it drops expired entries first, then the entry closest to expiry.
// Delete bumps a per-key generation so loads started before it are not cached.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	gens       map[string]uint64
	ttl        time.Duration
	maxEntries int
	flight     singleflight.Group
	now        func() time.Time
}

type Option func(*Store)

// WithMaxEntries bounds the number of cached keys. Zero or less disables the bound.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		s.maxEntries = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries:    make(map[string]entry),
		gens:       make(map[string]uint64),
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key builds a cache key from an endpoint and its query params. url.Values.Encode sorts by key.
func Key(endpoint string, params url.Values) string {
	endpoint = strings.TrimSpace(endpoint)
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e, now) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && s.expired(current, now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under key. The last write for a key wins.
func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(key, value)
}

// setIfCurrent stores value only when key has not been deleted since gen was read.
func (s *Store) setIfCurrent(key string, value any, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gens[key] != gen {
		return false
	}
	s.setLocked(key, value)
	return true
}

func (s *Store) setLocked(key string, value any) {
	now := s.now()
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictExpired(now)
		if len(s.entries) >= s.maxEntries {
			s.evictOne()
		}
	}
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.gens[key]++
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	gen := s.generation(key)
	value, err, _ := s.flight.Do(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfCurrent(key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) generation(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[key]
}

func (s *Store) expired(e entry, now time.Time) bool {
	return s.ttl > 0 && !e.expiresAt.After(now)
}

func (s *Store) evictExpired(now time.Time) {
	for key, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, key)
		}
	}
}

func (s *Store) evictOne() {
	var (
		victim string
		oldest time.Time
		found  bool
	)
	for key, e := range s.entries {
		if !found || e.expiresAt.Before(oldest) || (e.expiresAt.Equal(oldest) && key < victim) {
			victim, oldest, found = key, e.expiresAt, true
		}
	}
	if found {
		delete(s.entries, victim)
	}
}
