// Package querycache stores fetched list and detail results for one console
// session. Keys are segment lists so invalidation can match whole prefixes.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultStaleTime  = 60 * time.Second
	DefaultMaxEntries = 256

	keySeparator = "\x1f"
)

// Key identifies a cached result, e.g. {"admin", "users", "list", "limit=10&page=1"}.
type Key []string

func (k Key) String() string { return strings.Join(k, keySeparator) }

// HasPrefix reports whether prefix matches k segment by segment.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// With returns a new key extended by segments; k is left untouched.
func (k Key) With(segments ...string) Key {
	out := make(Key, 0, len(k)+len(segments))
	out = append(out, k...)
	return append(out, segments...)
}

// overlaps is true when one key is a prefix of the other.
func (k Key) overlaps(other Key) bool {
	return k.HasPrefix(other) || other.HasPrefix(k)
}

// Entry is a read-only view of a cached value.
type Entry struct {
	Key         Key
	Data        any
	UpdatedAt   time.Time
	Invalidated bool
}

type entry struct {
	key         Key
	data        any
	updatedAt   time.Time
	accessedAt  time.Time
	invalidated bool
}

type listener struct {
	prefix Key
	fn     func(Key)
}

type Options struct {
	// StaleTime defaults to 60s; a negative value makes every read refetch.
	StaleTime  time.Duration
	MaxEntries int
	Now        func() time.Time
}

// Cache is safe for concurrent use. Fetches for the same key share one call.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	listeners  map[uint64]listener
	nextID     uint64
	group      singleflight.Group
	staleTime  time.Duration
	maxEntries int
	now        func() time.Time
}

func New(opts Options) *Cache {
	if opts.StaleTime < 0 {
		opts.StaleTime = 0
	} else if opts.StaleTime == 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{
		entries:    make(map[string]*entry),
		listeners:  make(map[uint64]listener),
		staleTime:  opts.StaleTime,
		maxEntries: opts.MaxEntries,
		now:        opts.Now,
	}
}

// Get returns the cached entry for key, fresh or not.
func (c *Cache) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return Entry{}, false
	}
	e.accessedAt = c.now()
	return e.view(), true
}

// IsFresh reports whether key holds data younger than the stale time that has
// not been invalidated since.
func (c *Cache) IsFresh(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.String()]
	return ok && c.freshLocked(e)
}

// Set stores data under key as a fresh result.
func (c *Cache) Set(key Key, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, data)
}

// Fetch returns fresh cached data or runs fn, sharing one in-flight call per key.
// A failed fetch leaves the cache untouched.
func (c *Cache) Fetch(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key.String()]; ok && c.freshLocked(e) {
		e.accessedAt = c.now()
		data := e.data
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()
	return c.Refresh(ctx, key, fn)
}

// Refresh runs fn regardless of freshness, still deduplicating concurrent calls.
func (c *Cache) Refresh(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	data, err, _ := c.group.Do(key.String(), func() (any, error) {
		data, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, data)
		return data, nil
	})
	return data, err
}

// Invalidate marks every entry under prefix as stale and notifies the
// subscribers whose prefix overlaps it. It returns the number of entries marked.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	marked := 0
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.invalidated = true
			marked++
		}
	}
	notify := make([]func(Key), 0, len(c.listeners))
	for _, l := range c.listeners {
		if l.prefix.overlaps(prefix) {
			notify = append(notify, l.fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range notify {
		fn(prefix)
	}
	return marked
}

// Remove drops every entry under prefix without notifying anyone.
func (c *Cache) Remove(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for id, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Subscribe registers fn for invalidations overlapping prefix.
func (c *Cache) Subscribe(prefix Key, fn func(Key)) (unsubscribe func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.listeners[id] = listener{prefix: prefix.With(), fn: fn}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) freshLocked(e *entry) bool {
	return !e.invalidated && c.now().Sub(e.updatedAt) < c.staleTime
}

func (c *Cache) setLocked(key Key, data any) {
	now := c.now()
	id := key.String()
	if e, ok := c.entries[id]; ok {
		e.data = data
		e.updatedAt = now
		e.accessedAt = now
		e.invalidated = false
		return
	}
	c.entries[id] = &entry{key: key.With(), data: data, updatedAt: now, accessedAt: now}
	for len(c.entries) > c.maxEntries {
		c.evictLocked(id)
	}
}

// evictLocked drops the least recently used entry other than keep.
func (c *Cache) evictLocked(keep string) {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, e := range c.entries {
		if id == keep {
			continue
		}
		if oldestID == "" || e.accessedAt.Before(oldestAt) {
			oldestID, oldestAt = id, e.accessedAt
		}
	}
	if oldestID == "" {
		return
	}
	delete(c.entries, oldestID)
}

func (e *entry) view() Entry {
	return Entry{Key: e.key.With(), Data: e.data, UpdatedAt: e.updatedAt, Invalidated: e.invalidated}
}

// Fetch is the typed form of Cache.Fetch.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	return typed[T](c.Fetch(ctx, key, func(ctx context.Context) (any, error) { return fn(ctx) }))
}

// Refresh is the typed form of Cache.Refresh.
func Refresh[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	return typed[T](c.Refresh(ctx, key, func(ctx context.Context) (any, error) { return fn(ctx) }))
}

// Get is the typed form of Cache.Get.
func Get[T any](c *Cache, key Key) (T, bool) {
	var zero T
	e, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	data, ok := e.Data.(T)
	return data, ok
}

func typed[T any](data any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if data == nil {
		return zero, nil
	}
	out, ok := data.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: cached %T is not %T", data, zero)
	}
	return out, nil
}
