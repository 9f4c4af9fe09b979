package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"impactAdminWs/internal/modules/console/application/port"
	"impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/apiclient"
	"impactAdminWs/internal/platform/querycache"
	"impactAdminWs/internal/shared/validation"
)

type MutationOptions[In, Out any] struct {
	Name           string
	SuccessMessage string
	ErrorMessage   string
	// PreferServerMessage toasts the API message on failure when one is present.
	PreferServerMessage bool
	Validate            func(In) error
	// OnSuccess runs before invalidation, typically to write detail cache data.
	OnSuccess  func(In, Out)
	Invalidate func(In, Out) []querycache.Key
}

// Mutation wraps one write call with its toasts and cache invalidation.
type Mutation[In, Out any] struct {
	cache    *querycache.Cache
	notifier port.Notifier
	run      func(context.Context, In) (Out, error)
	opts     MutationOptions[In, Out]

	mu     sync.Mutex
	status domain.MutationStatus
	err    error
}

func NewMutation[In, Out any](cache *querycache.Cache, notifier port.Notifier, run func(context.Context, In) (Out, error), opts MutationOptions[In, Out]) *Mutation[In, Out] {
	return &Mutation[In, Out]{
		cache:    cache,
		notifier: notifier,
		run:      run,
		opts:     opts,
		status:   domain.MutationIdle,
	}
}

// Mutate validates in, performs the call, then reports and invalidates.
// A failed call leaves the cache as it was.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	var zero Out
	if m.opts.Validate != nil {
		if err := m.opts.Validate(in); err != nil {
			m.finish(domain.MutationError, err)
			m.notify(err.Error(), domain.ToastError)
			return zero, err
		}
	}

	m.finish(domain.MutationPending, nil)
	out, err := m.run(ctx, in)
	if err != nil {
		m.finish(domain.MutationError, err)
		slog.Debug("mutation failed", slog.String("mutation", m.opts.Name), slog.Any("error", err))
		if !apiclient.IsUnauthorized(err) {
			m.notify(m.failureMessage(err), domain.ToastError)
		}
		return zero, err
	}

	m.finish(domain.MutationSuccess, nil)
	m.notify(m.opts.SuccessMessage, domain.ToastSuccess)
	if m.opts.OnSuccess != nil {
		m.opts.OnSuccess(in, out)
	}
	if m.opts.Invalidate != nil && m.cache != nil {
		for _, key := range m.opts.Invalidate(in, out) {
			m.cache.Invalidate(key)
		}
	}
	return out, nil
}

func (m *Mutation[In, Out]) Status() domain.MutationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Err is the error of the last attempt, if it failed.
func (m *Mutation[In, Out]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mutation[In, Out]) finish(status domain.MutationStatus, err error) {
	m.mu.Lock()
	m.status = status
	m.err = err
	m.mu.Unlock()
}

func (m *Mutation[In, Out]) failureMessage(err error) string {
	if m.opts.PreferServerMessage {
		if message := apiclient.ServerMessage(err); message != "" {
			return message
		}
	}
	if m.opts.ErrorMessage == "" {
		return err.Error()
	}
	return m.opts.ErrorMessage
}

func (m *Mutation[In, Out]) notify(message string, variant domain.ToastVariant) {
	if m.notifier != nil {
		m.notifier.Emit(message, variant)
	}
}

// IsValidationError reports whether err was raised before any request was sent.
func IsValidationError(err error) bool {
	return errors.Is(err, validation.ErrInvalid)
}
