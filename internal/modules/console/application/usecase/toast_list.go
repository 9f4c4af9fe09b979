package usecase

import (
	"sync"
	"time"

	"impactAdminWs/internal/modules/console/domain"
)

const DefaultToastTTL = 3 * time.Second

// ToastList is the renderer side of the bus: an ordered list of visible toasts,
// each removed after the display window or on dismiss.
type ToastList struct {
	mu          sync.Mutex
	items       []domain.Toast
	timers      map[uint64]*time.Timer
	ttl         time.Duration
	onChange    func([]domain.Toast)
	unsubscribe func()
	closed      bool
}

// NewToastList subscribes to bus. onChange receives a copy of the visible list
// after every change and may be nil.
func NewToastList(bus *ToastBus, ttl time.Duration, onChange func([]domain.Toast)) *ToastList {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	l := &ToastList{
		timers:   make(map[uint64]*time.Timer),
		ttl:      ttl,
		onChange: onChange,
	}
	l.unsubscribe = bus.Subscribe(l.push)
	return l
}

func (l *ToastList) push(toast domain.Toast) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.items = append(l.items, toast)
	id := toast.ID
	l.timers[id] = time.AfterFunc(l.ttl, func() { l.Dismiss(id) })
	items := l.snapshotLocked()
	l.mu.Unlock()
	l.emit(items)
}

// Dismiss removes the toast with id; it reports whether it was visible.
func (l *ToastList) Dismiss(id uint64) bool {
	l.mu.Lock()
	index := -1
	for i, toast := range l.items {
		if toast.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		l.mu.Unlock()
		return false
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	if timer, ok := l.timers[id]; ok {
		timer.Stop()
		delete(l.timers, id)
	}
	items := l.snapshotLocked()
	closed := l.closed
	l.mu.Unlock()
	if !closed {
		l.emit(items)
	}
	return true
}

// Items returns the visible toasts in display order.
func (l *ToastList) Items() []domain.Toast {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Close detaches from the bus and stops pending expiries.
func (l *ToastList) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	for id, timer := range l.timers {
		timer.Stop()
		delete(l.timers, id)
	}
	l.items = nil
	l.mu.Unlock()
	l.unsubscribe()
}

func (l *ToastList) snapshotLocked() []domain.Toast {
	out := make([]domain.Toast, len(l.items))
	copy(out, l.items)
	return out
}

func (l *ToastList) emit(items []domain.Toast) {
	if l.onChange != nil {
		l.onChange(items)
	}
}
