package handler

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"impactAdminWs/internal/modules/console/application/port"
	"impactAdminWs/internal/modules/console/application/usecase"
	"impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/shared/normalization"
)

// EntityChangedHandler turns a backend change event read from one broker topic
// into cache invalidation in every live session plus a "<entity>.changed" relay.
type EntityChangedHandler struct {
	kafkaTopic  string
	resources   []string
	invalidator port.CacheInvalidator
	broadcastUC *usecase.BroadcastUseCase
}

// NewEntityChangedHandler binds kafkaTopic to the console resources it affects.
func NewEntityChangedHandler(kafkaTopic string, resources []string, invalidator port.CacheInvalidator, broadcastUC *usecase.BroadcastUseCase) *EntityChangedHandler {
	clean := make([]string, 0, len(resources))
	for _, r := range resources {
		if v := strings.TrimSpace(r); v != "" {
			clean = append(clean, v)
		}
	}
	return &EntityChangedHandler{
		kafkaTopic:  kafkaTopic,
		resources:   clean,
		invalidator: invalidator,
		broadcastUC: broadcastUC,
	}
}

func (h *EntityChangedHandler) Topic() string { return h.kafkaTopic }

func (h *EntityChangedHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	entity := normalization.NormalizeEntity(msg.Entity)
	if entity == "" && len(h.resources) > 0 {
		entity = h.resources[0]
	}

	invalidated := 0
	if h.invalidator != nil {
		for _, resource := range h.affected(entity) {
			invalidated += h.invalidator.InvalidateResource(resource)
		}
	}
	slog.Info("entity change applied",
		slog.String("topic", h.kafkaTopic),
		slog.String("entity", entity),
		slog.String("action", msg.Action),
		slog.String("resourceId", msg.ResourceID),
		slog.Int("invalidated", invalidated),
	)

	relay := *msg
	relay.Entity = entity
	relay.Topic = domain.ChangedTopic(entity)
	h.broadcastUC.Execute(ctx, &relay)
	return nil
}

// affected adds the event's own resource when a shared topic carries an
// entity the handler was not configured for.
func (h *EntityChangedHandler) affected(entity string) []string {
	if !normalization.IsValidEntity(entity) || slices.Contains(h.resources, entity) {
		return h.resources
	}
	return append(slices.Clone(h.resources), entity)
}

var _ port.TopicHandler = (*EntityChangedHandler)(nil)
