package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/apiclient"
	"impactAdminWs/internal/platform/querycache"
)

var ErrQueryClosed = errors.New("query is closed")

// ListFetcher loads one page of a resource for the given filter state.
type ListFetcher[T any] func(ctx context.Context, query domain.FilterState) (*domain.Page[T], error)

type ListQueryOptions struct {
	Resource       string
	Initial        domain.FilterState
	SearchDebounce time.Duration
}

// ListSnapshot is what a list view renders.
type ListSnapshot[T any] struct {
	Query         domain.FilterState `json:"query"`
	Data          *domain.Page[T]    `json:"data,omitempty"`
	State         domain.ViewState   `json:"state"`
	IsLoading     bool               `json:"isLoading"`
	IsError       bool               `json:"isError"`
	IsPlaceholder bool               `json:"isPlaceholder"`
	Search        string             `json:"search"`
	Err           string             `json:"error,omitempty"`
}

// ListQuery owns the filter state of one list view and keeps its data in sync
// with the session cache.
type ListQuery[T any] struct {
	ctx      context.Context
	cache    *querycache.Cache
	fetch    ListFetcher[T]
	resource string
	debounce *Debouncer

	mu          sync.Mutex
	query       domain.FilterState
	search      string
	data        *domain.Page[T]
	state       domain.ViewState
	placeholder bool
	err         string
	closed      bool
	onChange    func(ListSnapshot[T])

	unsubscribe func()
}

// NewListQuery builds an idle list. ctx bounds the fetches started by
// invalidations and debounced search.
func NewListQuery[T any](ctx context.Context, cache *querycache.Cache, fetch ListFetcher[T], opts ListQueryOptions) *ListQuery[T] {
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = DefaultSearchDebounce
	}
	initial := opts.Initial.Normalize()
	q := &ListQuery[T]{
		ctx:      ctx,
		cache:    cache,
		fetch:    fetch,
		resource: opts.Resource,
		debounce: NewDebouncer(opts.SearchDebounce),
		query:    initial,
		search:   initial.Search,
		state:    domain.ViewIdle,
	}
	q.unsubscribe = cache.Subscribe(ListScope(opts.Resource), q.onInvalidate)
	return q
}

// OnChange registers the renderer for snapshots.
func (q *ListQuery[T]) OnChange(fn func(ListSnapshot[T])) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

// Load mounts the view and fetches the current page, serving fresh cache
// entries without a request.
func (q *ListQuery[T]) Load(ctx context.Context) error {
	q.mu.Lock()
	query := q.query
	q.mu.Unlock()
	return q.run(ctx, query, false)
}

// Refetch ignores freshness and requests the current page again.
func (q *ListQuery[T]) Refetch(ctx context.Context) error {
	q.mu.Lock()
	query := q.query
	q.mu.Unlock()
	return q.run(ctx, query, true)
}

// SetQuery applies updater to the current filter state. An unchanged state
// triggers nothing.
func (q *ListQuery[T]) SetQuery(ctx context.Context, updater domain.Updater) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueryClosed
	}
	next := updater(q.query.Clone()).Normalize()
	if next.Equal(q.query) {
		q.mu.Unlock()
		return nil
	}
	q.query = next
	q.search = next.Search
	q.mu.Unlock()
	return q.run(ctx, next, false)
}

// TypeSearch updates the search box at once and commits the term after the
// debounce window. Only the last term typed within the window is fetched.
func (q *ListQuery[T]) TypeSearch(text string) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.search = text
	snap, notify := q.snapshotLocked(), q.onChange
	q.mu.Unlock()
	publish(notify, snap)

	q.debounce.Trigger(func() {
		_ = q.SetQuery(q.ctx, func(prev domain.FilterState) domain.FilterState {
			return prev.WithSearch(text)
		})
	})
}

func (q *ListQuery[T]) SearchInput() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.search
}

func (q *ListQuery[T]) Query() domain.FilterState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.query.Clone()
}

func (q *ListQuery[T]) Snapshot() ListSnapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// Close unmounts the view. Responses still in flight are dropped.
func (q *ListQuery[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	q.debounce.Stop()
	q.unsubscribe()
}

func (q *ListQuery[T]) onInvalidate(querycache.Key) {
	q.mu.Lock()
	mounted := !q.closed && q.state != domain.ViewIdle
	q.mu.Unlock()
	if mounted {
		_ = q.Refetch(q.ctx)
	}
}

func (q *ListQuery[T]) run(ctx context.Context, query domain.FilterState, force bool) error {
	key := ListKey(q.resource, query)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueryClosed
	}
	if !force && q.cache.IsFresh(key) {
		if page, ok := querycache.Get[*domain.Page[T]](q.cache, key); ok {
			q.applySuccessLocked(page)
			snap, notify := q.snapshotLocked(), q.onChange
			q.mu.Unlock()
			publish(notify, snap)
			return nil
		}
	}
	q.state = domain.ViewLoading
	q.placeholder = q.data != nil
	q.err = ""
	snap, notify := q.snapshotLocked(), q.onChange
	q.mu.Unlock()
	publish(notify, snap)

	loader := func(ctx context.Context) (*domain.Page[T], error) { return q.fetch(ctx, query) }
	var (
		page *domain.Page[T]
		err  error
	)
	if force {
		page, err = querycache.Refresh(ctx, q.cache, key, loader)
	} else {
		page, err = querycache.Fetch(ctx, q.cache, key, loader)
	}

	q.mu.Lock()
	if q.closed || !q.query.Equal(query) {
		// The cache kept the page under its own key; the view moved on.
		q.mu.Unlock()
		return err
	}
	if err != nil {
		q.state = domain.ViewError
		q.placeholder = false
		q.err = loadErrorMessage(err)
	} else {
		q.applySuccessLocked(page)
	}
	snap, notify = q.snapshotLocked(), q.onChange
	q.mu.Unlock()
	publish(notify, snap)
	return err
}

func (q *ListQuery[T]) applySuccessLocked(page *domain.Page[T]) {
	q.data = page
	q.state = domain.ViewSuccess
	q.placeholder = false
	q.err = ""
}

func (q *ListQuery[T]) snapshotLocked() ListSnapshot[T] {
	return ListSnapshot[T]{
		Query:         q.query.Clone(),
		Data:          q.data,
		State:         q.state,
		IsLoading:     q.state == domain.ViewLoading,
		IsError:       q.state == domain.ViewError,
		IsPlaceholder: q.placeholder,
		Search:        q.search,
		Err:           q.err,
	}
}

func loadErrorMessage(err error) string {
	if message := apiclient.ServerMessage(err); message != "" {
		return message
	}
	return domain.LoadFailedMessage
}

func publish[S any](fn func(S), snap S) {
	if fn != nil {
		fn(snap)
	}
}
