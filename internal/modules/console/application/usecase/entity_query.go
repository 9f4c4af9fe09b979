package usecase

import (
	"context"
	"sync"

	"impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/querycache"
)

// EntityFetcher loads one record by id.
type EntityFetcher[T any] func(ctx context.Context, id string) (T, error)

type EntitySnapshot[T any] struct {
	ID        string           `json:"id"`
	Data      *T               `json:"data,omitempty"`
	State     domain.ViewState `json:"state"`
	IsLoading bool             `json:"isLoading"`
	IsError   bool             `json:"isError"`
	Err       string           `json:"error,omitempty"`
}

// EntityQuery is the detail-page counterpart of ListQuery.
type EntityQuery[T any] struct {
	ctx      context.Context
	cache    *querycache.Cache
	fetch    EntityFetcher[T]
	resource string
	id       string

	mu       sync.Mutex
	data     *T
	state    domain.ViewState
	err      string
	closed   bool
	onChange func(EntitySnapshot[T])

	unsubscribe func()
}

func NewEntityQuery[T any](ctx context.Context, cache *querycache.Cache, resource, id string, fetch EntityFetcher[T]) *EntityQuery[T] {
	q := &EntityQuery[T]{
		ctx:      ctx,
		cache:    cache,
		fetch:    fetch,
		resource: resource,
		id:       id,
		state:    domain.ViewIdle,
	}
	q.unsubscribe = cache.Subscribe(q.Key(), q.onInvalidate)
	return q
}

func (q *EntityQuery[T]) ID() string { return q.id }

func (q *EntityQuery[T]) Key() querycache.Key { return DetailKey(q.resource, q.id) }

func (q *EntityQuery[T]) OnChange(fn func(EntitySnapshot[T])) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

func (q *EntityQuery[T]) Load(ctx context.Context) error { return q.run(ctx, false) }

func (q *EntityQuery[T]) Refetch(ctx context.Context) error { return q.run(ctx, true) }

// SetData writes data straight into the cache and the view, without a request.
func (q *EntityQuery[T]) SetData(data T) {
	q.cache.Set(q.Key(), data)
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.data = &data
	q.state = domain.ViewSuccess
	q.err = ""
	snap, notify := q.snapshotLocked(), q.onChange
	q.mu.Unlock()
	publish(notify, snap)
}

func (q *EntityQuery[T]) Snapshot() EntitySnapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

func (q *EntityQuery[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()
	q.unsubscribe()
}

func (q *EntityQuery[T]) onInvalidate(querycache.Key) {
	q.mu.Lock()
	mounted := !q.closed && q.state != domain.ViewIdle
	q.mu.Unlock()
	if mounted {
		_ = q.Refetch(q.ctx)
	}
}

func (q *EntityQuery[T]) run(ctx context.Context, force bool) error {
	key := q.Key()

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueryClosed
	}
	q.state = domain.ViewLoading
	q.err = ""
	snap, notify := q.snapshotLocked(), q.onChange
	q.mu.Unlock()
	publish(notify, snap)

	loader := func(ctx context.Context) (T, error) { return q.fetch(ctx, q.id) }
	var (
		data T
		err  error
	)
	if force {
		data, err = querycache.Refresh(ctx, q.cache, key, loader)
	} else {
		data, err = querycache.Fetch(ctx, q.cache, key, loader)
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return err
	}
	if err != nil {
		q.state = domain.ViewError
		q.err = loadErrorMessage(err)
	} else {
		q.data = &data
		q.state = domain.ViewSuccess
	}
	snap, notify = q.snapshotLocked(), q.onChange
	q.mu.Unlock()
	publish(notify, snap)
	return err
}

func (q *EntityQuery[T]) snapshotLocked() EntitySnapshot[T] {
	return EntitySnapshot[T]{
		ID:        q.id,
		Data:      q.data,
		State:     q.state,
		IsLoading: q.state == domain.ViewLoading,
		IsError:   q.state == domain.ViewError,
		Err:       q.err,
	}
}
