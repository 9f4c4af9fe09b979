package usecase

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"impactAdminWs/internal/modules/console/application/port"
	"impactAdminWs/internal/modules/console/domain"
)

// toastSeq numbers toasts across every bus in the process.
var toastSeq atomic.Uint64

// ToastBus fans toasts out to the renderers currently subscribed. Nothing is
// queued: a toast emitted with no subscriber is dropped.
type ToastBus struct {
	mu          sync.RWMutex
	subscribers map[uint64]func(domain.Toast)
	nextID      uint64
	now         func() time.Time
}

func NewToastBus() *ToastBus {
	return &ToastBus{
		subscribers: make(map[uint64]func(domain.Toast)),
		now:         time.Now,
	}
}

// Emit publishes message to every subscriber.
func (b *ToastBus) Emit(message string, variant domain.ToastVariant) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	b.mu.RLock()
	subscribers := make([]func(domain.Toast), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		subscribers = append(subscribers, fn)
	}
	b.mu.RUnlock()

	if len(subscribers) == 0 {
		slog.Debug("toast dropped without renderer", slog.String("message", message), slog.String("variant", string(variant)))
		return
	}

	toast := domain.Toast{
		ID:        toastSeq.Add(1),
		Message:   message,
		Variant:   variant,
		CreatedAt: b.now().UTC(),
	}
	for _, fn := range subscribers {
		fn(toast)
	}
}

// Success is shorthand for Emit(message, ToastSuccess).
func (b *ToastBus) Success(message string) { b.Emit(message, domain.ToastSuccess) }

// Error is shorthand for Emit(message, ToastError).
func (b *ToastBus) Error(message string) { b.Emit(message, domain.ToastError) }

// Subscribe attaches a renderer until the returned func is called.
func (b *ToastBus) Subscribe(fn func(domain.Toast)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subscribers[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
		})
	}
}

// Subscribers reports how many renderers are attached.
func (b *ToastBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

var _ port.Notifier = (*ToastBus)(nil)
