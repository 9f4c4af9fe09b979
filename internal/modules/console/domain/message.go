package domain

import "time"

// Message is the envelope pushed to console clients and decoded from change events.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity,omitempty"`
	Action     string            `json:"action,omitempty"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewMessage stamps a message for entity/action with the canonical topic.
func NewMessage(entity, action string, data any) *Message {
	return &Message{
		Topic:     CustomTopic(entity, action),
		Entity:    entity,
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
