package infrastructure

import (
	"context"
	"sync"

	"impactAdminWs/internal/modules/console/application/port"
	"impactAdminWs/internal/modules/console/domain"
)

// HandlerRegistry routes broker messages by the topic they were read from.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string][]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Topic()] = append(r.handlers[h.Topic()], h)
}

// Topics lists every registered broker topic.
func (r *HandlerRegistry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, topic string, msg *domain.Message) error {
	r.mu.RLock()
	handlers := r.handlers[topic]
	r.mu.RUnlock()
	for _, handler := range handlers {
		if err := handler.Handle(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}
