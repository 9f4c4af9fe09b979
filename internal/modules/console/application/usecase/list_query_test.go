package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/querycache"
)

type userRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// recordingFetcher serves pages and remembers every query it saw.
type recordingFetcher struct {
	mu      sync.Mutex
	queries []domain.FilterState
	fetched chan domain.FilterState
	fail    error
}

func newRecordingFetcher() *recordingFetcher {
	return &recordingFetcher{fetched: make(chan domain.FilterState, 16)}
}

func (f *recordingFetcher) fetch(_ context.Context, query domain.FilterState) (*domain.Page[userRow], error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	fail := f.fail
	f.mu.Unlock()
	f.fetched <- query
	if fail != nil {
		return nil, fail
	}
	return &domain.Page[userRow]{
		Records:      []userRow{{ID: "u-1", Name: "Test User " + query.Search}},
		Page:         query.Page,
		Limit:        query.Limit,
		TotalPages:   3,
		TotalRecords: 25,
	}, nil
}

func (f *recordingFetcher) calls() []domain.FilterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.FilterState, len(f.queries))
	copy(out, f.queries)
	return out
}

func newUsersQuery(t *testing.T, cache *querycache.Cache, fetch ListFetcher[userRow]) *ListQuery[userRow] {
	t.Helper()
	q := NewListQuery(context.Background(), cache, fetch, ListQueryOptions{
		Resource:       "users",
		Initial:        domain.NewFilterState(10),
		SearchDebounce: 20 * time.Millisecond,
	})
	t.Cleanup(q.Close)
	return q
}

func TestListQueryLoadAndCacheHit(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	fetcher := newRecordingFetcher()
	q := newUsersQuery(t, cache, fetcher.fetch)

	if state := q.Snapshot().State; state != domain.ViewIdle {
		t.Fatalf("expected idle before load, got %s", state)
	}
	if err := q.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := q.Snapshot()
	if snap.State != domain.ViewSuccess || snap.Data == nil || snap.Data.Records[0].Name != "Test User " {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	// A second view on the same key is served from the cache.
	other := newUsersQuery(t, cache, fetcher.fetch)
	if err := other.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(fetcher.calls()); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
	if other.Snapshot().State != domain.ViewSuccess {
		t.Fatalf("expected cached success, got %s", other.Snapshot().State)
	}
}

func TestListQuerySetQueryUnchangedIsNoop(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	fetcher := newRecordingFetcher()
	q := newUsersQuery(t, cache, fetcher.fetch)
	if err := q.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := q.SetQuery(context.Background(), func(prev domain.FilterState) domain.FilterState { return prev.WithPage(1) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(fetcher.calls()); got != 1 {
		t.Fatalf("expected no refetch for an unchanged key, got %d fetches", got)
	}

	if err := q.SetQuery(context.Background(), func(prev domain.FilterState) domain.FilterState { return prev.WithFilter("role", "admin") }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := fetcher.calls()
	if len(calls) != 2 || calls[1].Filter("role") != "admin" {
		t.Fatalf("expected a fetch with role=admin, got %v", calls)
	}
}

func TestListQueryDebouncedSearchFetchesOnce(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	fetcher := newRecordingFetcher()
	q := newUsersQuery(t, cache, fetcher.fetch)
	if err := q.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-fetcher.fetched

	q.TypeSearch("a")
	q.TypeSearch("ab")
	q.TypeSearch("abc")
	if q.SearchInput() != "abc" {
		t.Fatalf("expected search box to update at once, got %q", q.SearchInput())
	}
	if q.Query().Search != "" {
		t.Fatalf("expected committed search to wait for the debounce, got %q", q.Query().Search)
	}

	select {
	case query := <-fetcher.fetched:
		if query.Search != "abc" {
			t.Fatalf("expected q=abc, got %q", query.Search)
		}
	case <-time.After(time.Second):
		t.Fatal("expected debounced fetch")
	}

	time.Sleep(60 * time.Millisecond)
	if got := len(fetcher.calls()); got != 2 {
		t.Fatalf("expected exactly one search fetch, got %d total", got)
	}
}

func TestListQueryKeepsPlaceholderAndIgnoresStaleResponse(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	fetch := func(ctx context.Context, query domain.FilterState) (*domain.Page[userRow], error) {
		if query.Page == 2 {
			started <- struct{}{}
			<-release
		}
		return &domain.Page[userRow]{Records: []userRow{{ID: "page-" + query.CanonicalKey()}}, Page: query.Page, Limit: query.Limit}, nil
	}
	q := newUsersQuery(t, cache, fetch)
	if err := q.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := q.Snapshot().Data

	done := make(chan error, 1)
	go func() {
		done <- q.SetQuery(context.Background(), func(prev domain.FilterState) domain.FilterState { return prev.WithPage(2) })
	}()
	<-started

	loading := q.Snapshot()
	if !loading.IsLoading || !loading.IsPlaceholder || loading.Data != first {
		t.Fatalf("expected previous page kept as placeholder, got %+v", loading)
	}

	if err := q.SetQuery(context.Background(), func(prev domain.FilterState) domain.FilterState { return prev.WithPage(3) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := q.Snapshot()
	if snap.Query.Page != 3 || snap.Data == nil || snap.Data.Page != 3 {
		t.Fatalf("expected page 3 to win, got %+v", snap)
	}
	pageTwo := domain.NewFilterState(10).WithPage(2)
	if _, ok := querycache.Get[*domain.Page[userRow]](cache, ListKey("users", pageTwo)); !ok {
		t.Fatal("expected the late page 2 response to stay cached under its own key")
	}
}

func TestListQueryErrorState(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	fetcher := newRecordingFetcher()
	fetcher.fail = errors.New("connection refused")
	q := newUsersQuery(t, cache, fetcher.fetch)

	if err := q.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	snap := q.Snapshot()
	if !snap.IsError || snap.Err != domain.LoadFailedMessage {
		t.Fatalf("expected generic load error, got %+v", snap)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected nothing cached, got %d entries", cache.Len())
	}
}

func TestListQueryRefetchesOnInvalidationOnlyWhenMounted(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	fetcher := newRecordingFetcher()
	q := newUsersQuery(t, cache, fetcher.fetch)

	cache.Invalidate(ResourceScope("users"))
	if got := len(fetcher.calls()); got != 0 {
		t.Fatalf("expected idle view to ignore invalidation, got %d fetches", got)
	}

	if err := q.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.Invalidate(DetailKey("users", "u-1"))
	if got := len(fetcher.calls()); got != 1 {
		t.Fatalf("expected detail invalidation to leave lists alone, got %d fetches", got)
	}
	cache.Invalidate(ResourceScope("users"))
	if got := len(fetcher.calls()); got != 2 {
		t.Fatalf("expected one refetch, got %d fetches", got)
	}
	cache.Invalidate(ResourceScope("courses"))
	if got := len(fetcher.calls()); got != 2 {
		t.Fatalf("expected other resources to be ignored, got %d fetches", got)
	}
}
