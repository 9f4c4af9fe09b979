package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(max int) (*Cache, *clock) {
	clk := &clock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	return New(Options{StaleTime: time.Minute, MaxEntries: max, Now: clk.Now}), clk
}

func TestKeyHasPrefixMatchesWholeSegments(t *testing.T) {
	t.Parallel()

	key := Key{"admin", "users", "list", "page=1"}
	cases := map[string]struct {
		prefix   Key
		expected bool
	}{
		"resource": {Key{"admin", "users"}, true},
		"self":     {key, true},
		"partial":  {Key{"admin", "user"}, false},
		"other":    {Key{"admin", "courses"}, false},
		"longer":   {Key{"admin", "users", "list", "page=1", "x"}, false},
		"empty":    {Key{}, true},
	}
	for name, tc := range cases {
		if got := key.HasPrefix(tc.prefix); got != tc.expected {
			t.Fatalf("%s: expected %v, got %v", name, tc.expected, got)
		}
	}
}

func TestFetchUsesFreshDataUntilStale(t *testing.T) {
	t.Parallel()

	cache, clk := newTestCache(10)
	key := Key{"admin", "users", "list", "page=1"}
	var calls int32
	fetch := func(context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	first, _ := Fetch(context.Background(), cache, key, fetch)
	second, _ := Fetch(context.Background(), cache, key, fetch)
	if first != 1 || second != 1 {
		t.Fatalf("expected cached value 1 twice, got %d and %d", first, second)
	}

	clk.Advance(61 * time.Second)
	third, _ := Fetch(context.Background(), cache, key, fetch)
	if third != 2 {
		t.Fatalf("expected refetch after stale time, got %d", third)
	}
}

func TestFetchDeduplicatesInFlightCalls(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(10)
	key := Key{"admin", "events", "list", "page=1"}
	release := make(chan struct{})
	var calls int32

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Fetch(context.Background(), cache, key, func(context.Context) (string, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return "ok", nil
			})
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected one in-flight fetch, got %d", got)
	}
}

func TestFailedFetchLeavesCacheUntouched(t *testing.T) {
	t.Parallel()

	cache, clk := newTestCache(10)
	key := Key{"admin", "users", "list", "page=1"}
	cache.Set(key, "previous")
	clk.Advance(2 * time.Minute)

	_, err := Fetch(context.Background(), cache, key, func(context.Context) (string, error) {
		return "", errors.New("boom")
	})
	if err == nil {
		t.Fatalf("expected fetch error")
	}
	got, ok := Get[string](cache, key)
	if !ok || got != "previous" {
		t.Fatalf("expected previous data kept, got %q", got)
	}
}

func TestInvalidateMarksPrefixAndNotifiesOverlappingSubscribers(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(10)
	usersPage1 := Key{"admin", "users", "list", "page=1"}
	usersPage2 := Key{"admin", "users", "list", "page=2"}
	userDetail := Key{"admin", "users", "detail", "u-1"}
	courses := Key{"admin", "courses", "list", "page=1"}
	for _, key := range []Key{usersPage1, usersPage2, userDetail, courses} {
		cache.Set(key, "data")
	}

	var listCalls, detailCalls, courseCalls int32
	stopList := cache.Subscribe(Key{"admin", "users", "list"}, func(Key) { atomic.AddInt32(&listCalls, 1) })
	defer stopList()
	cache.Subscribe(Key{"admin", "users", "detail", "u-1"}, func(Key) { atomic.AddInt32(&detailCalls, 1) })
	cache.Subscribe(Key{"admin", "courses"}, func(Key) { atomic.AddInt32(&courseCalls, 1) })

	if marked := cache.Invalidate(Key{"admin", "users"}); marked != 3 {
		t.Fatalf("expected 3 user entries marked, got %d", marked)
	}
	if cache.IsFresh(usersPage2) || cache.IsFresh(userDetail) {
		t.Fatalf("expected user entries stale")
	}
	if !cache.IsFresh(courses) {
		t.Fatalf("expected course entry untouched")
	}
	if listCalls != 1 || detailCalls != 1 || courseCalls != 0 {
		t.Fatalf("unexpected notifications list=%d detail=%d course=%d", listCalls, detailCalls, courseCalls)
	}

	cache.Invalidate(Key{"admin", "users", "detail", "u-2"})
	if listCalls != 1 || detailCalls != 1 {
		t.Fatalf("expected unrelated detail invalidation to notify nobody, got list=%d detail=%d", listCalls, detailCalls)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(10)
	var calls int32
	stop := cache.Subscribe(Key{"admin", "posts"}, func(Key) { atomic.AddInt32(&calls, 1) })
	stop()
	stop()
	cache.Invalidate(Key{"admin", "posts"})
	if calls != 0 {
		t.Fatalf("expected no notification after unsubscribe, got %d", calls)
	}
}

func TestSetEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	cache, clk := newTestCache(2)
	a, b, c := Key{"a"}, Key{"b"}, Key{"c"}
	cache.Set(a, 1)
	clk.Advance(time.Second)
	cache.Set(b, 2)
	clk.Advance(time.Second)
	cache.Get(a)
	clk.Advance(time.Second)
	cache.Set(c, 3)

	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
	if _, ok := cache.Get(b); ok {
		t.Fatalf("expected b evicted")
	}
	if _, ok := cache.Get(a); !ok {
		t.Fatalf("expected a kept after recent access")
	}
}

func TestRemoveDropsPrefix(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(10)
	cache.Set(Key{"admin", "users", "list"}, 1)
	cache.Set(Key{"admin", "courses", "list"}, 2)
	if removed := cache.Remove(Key{"admin", "users"}); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one entry left, got %d", cache.Len())
	}
}
