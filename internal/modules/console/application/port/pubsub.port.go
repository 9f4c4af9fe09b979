package port

import (
	"context"

	"impactAdminWs/internal/modules/console/domain"
)

// Broadcaster sends messages to connected console clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles the change events read from one broker topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// CacheInvalidator marks a resource stale in every live console session.
type CacheInvalidator interface {
	InvalidateResource(resource string) int
}
