package domain

import (
	"encoding/json"
	"strings"

	"impactAdminWs/internal/shared/sanitize"
	"impactAdminWs/internal/shared/validation"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type Audience string

const (
	AudienceSingle      Audience = "single"
	AudienceAllUsers    Audience = "all-users"
	AudienceAllPartners Audience = "all-partners"
)

// NotificationDraft is what the composer submits. Metadata is raw JSON text.
type NotificationDraft struct {
	Audience Audience         `json:"audience" validate:"required,oneof=single all-users all-partners"`
	UserID   string           `json:"userId,omitempty" validate:"required_if=Audience single"`
	Title    string           `json:"title" validate:"required"`
	Body     string           `json:"body,omitempty"`
	Type     NotificationType `json:"type" validate:"required,oneof=info success warning error"`
	Metadata string           `json:"metadata,omitempty"`
}

// Notification is the request body for both the single and broadcast endpoints.
type Notification struct {
	UserID   string           `json:"userId,omitempty"`
	Audience Audience         `json:"audience,omitempty"`
	Title    string           `json:"title"`
	Body     string           `json:"body,omitempty"`
	Type     NotificationType `json:"type"`
	Data     map[string]any   `json:"data,omitempty"`
}

func (n Notification) IsBroadcast() bool { return n.Audience != "" }

// Build sanitizes the text, parses the metadata and validates the draft.
func (d NotificationDraft) Build() (Notification, error) {
	d.Title = sanitize.PlainText(d.Title)
	d.Body = sanitize.PlainText(d.Body)
	d.UserID = strings.TrimSpace(d.UserID)
	if d.Type == "" {
		d.Type = NotificationInfo
	}
	if err := validation.Struct(d); err != nil {
		return Notification{}, err
	}
	data, err := ParseMetadata(d.Metadata)
	if err != nil {
		return Notification{}, err
	}

	out := Notification{Title: d.Title, Body: d.Body, Type: d.Type, Data: data}
	if d.Audience == AudienceSingle {
		out.UserID = d.UserID
	} else {
		out.Audience = d.Audience
	}
	return out, nil
}

// ParseMetadata decodes the composer's JSON object. Blank text means no metadata.
func ParseMetadata(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, validation.Fail("metadata", "Invalid JSON in metadata")
	}
	return data, nil
}
