package broker

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestDecodeMessage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		topic      string
		value      string
		entity     string
		action     string
		out        string
		resourceID string
	}{
		"json event": {
			topic: "impact.users", value: `{"entity":"users","action":"updated","resourceId":"u1"}`,
			entity: "users", action: "updated", out: "users.updated", resourceID: "u1",
		},
		"numeric id": {
			topic: "impact.payments", value: `{"entity":"payments","action":"refunded","resourceId":4200,"metadata":{"amount":12.5,"by":"op1"}}`,
			entity: "payments", action: "refunded", out: "payments.refunded", resourceID: "4200",
		},
		"explicit topic": {
			topic: "impact.users", value: `{"entity":"users","action":"deleted","topic":"custom.topic"}`,
			entity: "users", action: "deleted", out: "custom.topic",
		},
		"entity from topic": {
			topic: "impact.courses", value: `{"action":"created"}`,
			entity: "courses", action: "created", out: "courses.created",
		},
		"raw payload": {
			topic: "impact.events.cancelled", value: `not json`,
			entity: "events", action: "cancelled", out: "impact.events.cancelled",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			msg := decodeMessage(kafka.Message{Topic: tc.topic, Value: []byte(tc.value)})
			if msg.Entity != tc.entity || msg.Action != tc.action || msg.Topic != tc.out {
				t.Fatalf("expected %s/%s on %s, got %s/%s on %s", tc.entity, tc.action, tc.out, msg.Entity, msg.Action, msg.Topic)
			}
			if msg.ResourceID != tc.resourceID {
				t.Fatalf("expected resource id %q, got %q", tc.resourceID, msg.ResourceID)
			}
		})
	}
}

func TestDecodeMessageKeepsStringMetadata(t *testing.T) {
	t.Parallel()

	msg := decodeMessage(kafka.Message{Topic: "impact.payments", Value: []byte(`{"action":"refunded","metadata":{"amount":12.5,"by":" op1 ","nested":{"x":1}}}`)})
	if msg.Metadata["amount"] != "12.5" || msg.Metadata["by"] != "op1" {
		t.Fatalf("expected converted metadata, got %v", msg.Metadata)
	}
	if _, ok := msg.Metadata["nested"]; ok {
		t.Fatalf("expected nested values dropped, got %v", msg.Metadata)
	}
}
