package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"impactAdminWs/internal/shared/validation"
)

func TestCourseInstructorAcceptsBothShapes(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		payload string
		id      string
		label   string
		nested  bool
	}{
		"id":       {payload: `{"_id":"c1","title":"Go","price":0,"published":true,"instructor":"u-9"}`, id: "u-9", label: "u-9"},
		"embedded": {payload: `{"_id":"c1","title":"Go","price":10,"published":false,"instructor":{"_id":"u-9","name":"Asha","email":"a@x.io"}}`, id: "u-9", label: "Asha", nested: true},
		"missing":  {payload: `{"_id":"c1","title":"Go","price":10,"published":false}`},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var course Course
			if err := json.Unmarshal([]byte(tc.payload), &course); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if course.Instructor.ID() != tc.id {
				t.Fatalf("expected id %q, got %q", tc.id, course.Instructor.ID())
			}
			if _, ok := course.Instructor.Embedded(); ok != tc.nested {
				t.Fatalf("expected embedded=%v", tc.nested)
			}
			if got := course.InstructorLabel(); got != tc.label {
				t.Fatalf("expected label %q, got %q", tc.label, got)
			}
		})
	}
}

func TestPostUserNullDecodes(t *testing.T) {
	t.Parallel()

	var post Post
	if err := json.Unmarshal([]byte(`{"_id":"p1","user":null,"content":"hi","status":"pending"}`), &post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !post.User.IsZero() {
		t.Fatalf("expected empty user reference, got %q", post.User.ID())
	}
}

func TestNotificationDraftBuild(t *testing.T) {
	t.Parallel()

	single, err := NotificationDraft{
		Audience: AudienceSingle,
		UserID:   " u-1 ",
		Title:    "<b>Welcome</b>",
		Body:     "Tom & Jerry<script>x()</script>",
		Type:     NotificationSuccess,
		Metadata: `{"courseId":"c1"}`,
	}.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single.UserID != "u-1" || single.IsBroadcast() {
		t.Fatalf("expected single notification to u-1, got %+v", single)
	}
	if single.Title != "Welcome" || single.Body != "Tom & Jerry" {
		t.Fatalf("expected plain text, got %q / %q", single.Title, single.Body)
	}
	if single.Data["courseId"] != "c1" {
		t.Fatalf("expected metadata parsed, got %v", single.Data)
	}

	broadcast, err := NotificationDraft{Audience: AudienceAllPartners, Title: "Payout", Type: NotificationInfo}.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if broadcast.Audience != AudienceAllPartners || broadcast.UserID != "" || broadcast.Data != nil {
		t.Fatalf("unexpected broadcast %+v", broadcast)
	}
}

func TestNotificationDraftRejections(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		draft NotificationDraft
		field string
	}{
		"bad json":         {draft: NotificationDraft{Audience: AudienceAllUsers, Title: "x", Type: NotificationInfo, Metadata: "{oops"}, field: "metadata"},
		"missing user":     {draft: NotificationDraft{Audience: AudienceSingle, Title: "x", Type: NotificationInfo}, field: "userId"},
		"bad type":         {draft: NotificationDraft{Audience: AudienceAllUsers, Title: "x", Type: "loud"}, field: "type"},
		"markup-only":      {draft: NotificationDraft{Audience: AudienceAllUsers, Title: "<i></i>", Type: NotificationInfo}, field: "title"},
		"unknown audience": {draft: NotificationDraft{Audience: "everyone", Title: "x", Type: NotificationInfo}, field: "audience"},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.draft.Build()
			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Fatalf("expected failure on %s, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestSettingsAndPasswordValidation(t *testing.T) {
	t.Parallel()

	if err := (Settings{InviteSignupPoints: 10, PointsToCurrencyRate: 0.5}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Settings{PointsToCurrencyRate: -1}).Validate(); err == nil {
		t.Fatal("expected negative rate to fail")
	}
	if err := (PasswordChange{CurrentPassword: "old-secret", NewPassword: "short"}).Validate(); err == nil {
		t.Fatal("expected short password to fail")
	}
	if err := (PasswordChange{CurrentPassword: "same-secret", NewPassword: "same-secret"}).Validate(); err == nil {
		t.Fatal("expected unchanged password to fail")
	}
	if err := (PasswordChange{CurrentPassword: "old-secret", NewPassword: "new-secret"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReplyInputSanitizes(t *testing.T) {
	t.Parallel()

	if err := (ReplyInput{TicketID: "t1", Message: "<p></p>"}).Validate(); err == nil {
		t.Fatal("expected empty reply to fail after sanitizing")
	}
	clean := ReplyInput{TicketID: " t1 ", Message: "<b>Fixed</b> now"}.Clean()
	if clean.TicketID != "t1" || clean.Message != "Fixed now" {
		t.Fatalf("unexpected clean reply %+v", clean)
	}
}

func TestSubscriptionPatchBody(t *testing.T) {
	t.Parallel()

	body := SubscriptionPatch{Plan: PlanGold, ClearExpiry: true}.Body()
	if body["plan"] != PlanGold {
		t.Fatalf("expected plan gold, got %v", body)
	}
	if value, ok := body["expiresAt"]; !ok || value != nil {
		t.Fatalf("expected explicit null expiry, got %v", body)
	}
	if _, ok := body["status"]; ok {
		t.Fatalf("expected status omitted, got %v", body)
	}
	if err := (UpdateSubscriptionInput{UserID: "u1"}).Validate(); err == nil {
		t.Fatal("expected empty patch to fail")
	}
}

func TestUserInputs(t *testing.T) {
	t.Parallel()

	if err := (UpdateRoleInput{ID: "u1", Role: "superuser"}).Validate(); err == nil {
		t.Fatal("expected unknown role to fail")
	}
	if err := (UpdateRoleInput{ID: "u1", Role: RolePartnerRequest}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (CreateUserInput{Name: "Asha", Role: RoleUser}).Validate(); err == nil {
		t.Fatal("expected contact requirement to fail")
	}
	if err := (CreateUserInput{Name: "Asha", Phone: "+911234", Role: RoleUser}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsPartnerRole(RolePartnerRequest) || IsPartnerRole(RoleAdmin) {
		t.Fatal("unexpected partner role classification")
	}
}

func TestEventSeatsLeft(t *testing.T) {
	t.Parallel()

	event := Event{Capacity: 3, Bookings: []EventBooking{{ID: "b1"}, {ID: "b2"}}}
	if got := event.SeatsLeft(); got != 1 {
		t.Fatalf("expected 1 seat, got %d", got)
	}
	event.BookingsCount = 5
	if got := event.SeatsLeft(); got != 0 {
		t.Fatalf("expected 0 seats, got %d", got)
	}
}
