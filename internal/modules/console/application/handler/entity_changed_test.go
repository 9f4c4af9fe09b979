package handler

import (
	"context"
	"sync"
	"testing"

	"impactAdminWs/internal/modules/console/application/usecase"
	"impactAdminWs/internal/modules/console/domain"
)

type countingInvalidator struct {
	mu        sync.Mutex
	resources []string
}

func (c *countingInvalidator) InvalidateResource(resource string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = append(c.resources, resource)
	return 1
}

type recordingBroadcaster struct {
	messages []*domain.Message
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	r.messages = append(r.messages, msg)
}

func TestEntityChangedHandlerInvalidatesAndRelays(t *testing.T) {
	t.Parallel()

	invalidator := &countingInvalidator{}
	broadcaster := &recordingBroadcaster{}
	h := NewEntityChangedHandler("impact.courses", []string{"courses", " partner-courses "}, invalidator, usecase.NewBroadcastUseCase(broadcaster))

	if h.Topic() != "impact.courses" {
		t.Fatalf("expected topic impact.courses, got %q", h.Topic())
	}
	msg := &domain.Message{Topic: "course.updated", Entity: "courses", Action: "updated", ResourceID: "c1"}
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(invalidator.resources) != 2 || invalidator.resources[0] != "courses" || invalidator.resources[1] != "partner-courses" {
		t.Fatalf("expected both course scopes invalidated, got %v", invalidator.resources)
	}
	if len(broadcaster.messages) != 1 || broadcaster.messages[0].Topic != "courses.changed" {
		t.Fatalf("expected one courses.changed relay, got %+v", broadcaster.messages)
	}
	if msg.Topic != "course.updated" {
		t.Fatalf("expected the original message untouched, got %q", msg.Topic)
	}
}

func TestEntityChangedHandlerFallsBackToResourceName(t *testing.T) {
	t.Parallel()

	broadcaster := &recordingBroadcaster{}
	h := NewEntityChangedHandler("impact.users", []string{"users"}, nil, usecase.NewBroadcastUseCase(broadcaster))
	if err := h.Handle(context.Background(), &domain.Message{Action: "deleted"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(broadcaster.messages) != 1 || broadcaster.messages[0].Topic != "users.changed" {
		t.Fatalf("expected users.changed, got %+v", broadcaster.messages)
	}
}

func TestEntityChangedHandlerNormalizesEventEntity(t *testing.T) {
	t.Parallel()

	invalidator := &countingInvalidator{}
	broadcaster := &recordingBroadcaster{}
	h := NewEntityChangedHandler("impact.engagement", []string{"rewards"}, invalidator, usecase.NewBroadcastUseCase(broadcaster))

	if err := h.Handle(context.Background(), &domain.Message{Entity: "Booking", Action: "created"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invalidator.resources) != 2 || invalidator.resources[1] != "bookings" {
		t.Fatalf("expected rewards and bookings invalidated, got %v", invalidator.resources)
	}
	if broadcaster.messages[0].Topic != "bookings.changed" {
		t.Fatalf("expected bookings.changed, got %q", broadcaster.messages[0].Topic)
	}
}
