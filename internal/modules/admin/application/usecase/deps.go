// Package usecase composes the console primitives into one page per admin
// resource: its list or detail query, its mutations and its delete gates.
package usecase

import (
	"context"
	"time"

	"impactAdminWs/internal/modules/admin/application/port"
	cport "impactAdminWs/internal/modules/console/application/port"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/querycache"
)

// Deps is what every page of one console session shares.
type Deps struct {
	Cache          *querycache.Cache
	Toasts         cport.Notifier
	Services       port.Services
	SearchDebounce time.Duration
}

type toastText struct {
	success string
	failure string
}

var (
	textRole         = toastText{"Role updated", "Failed to update role"}
	textStatus       = toastText{"Status updated", "Failed to update status"}
	textMembership   = toastText{"Membership updated", "Failed to update membership"}
	textDeleteUser   = toastText{"User deleted", "Failed to delete user"}
	textCreateUser   = toastText{"User created", "Failed to create user"}
	textCourseUpdate = toastText{"Course updated", "Failed to update course"}
	textCourseDelete = toastText{"Course deleted", "Failed to delete course"}
	textCourseCreate = toastText{"Course created", "Failed to create course"}
	textEventUpdate  = toastText{"Event updated", "Failed to update event"}
	textEventDelete  = toastText{"Event deleted", "Failed to delete event"}
	textEventCreate  = toastText{"Event created", "Failed to create event"}
	textBooking      = toastText{"Booking updated", "Failed to update booking"}
	textSubscription = toastText{"Subscription updated", "Failed to update subscription"}
	textRedemption   = toastText{"Redemption updated", "Failed to update redemption"}
	textTicketStatus = toastText{"Ticket status updated", "Failed to update ticket status"}
	textReply        = toastText{"Reply added", "Failed to add reply"}
	textPostStatus   = toastText{"Post status updated", "Failed to update post status"}
	textBulkPosts    = toastText{"Posts updated", "Failed to update posts"}
	textSettings     = toastText{"Settings updated", "Failed to update settings"}
	textPassword     = toastText{"Password updated", "Failed to update password"}
	textNotification = toastText{"Notification sent", "Failed to send notification"}
	textAvatar       = toastText{"Avatar uploaded", "Failed to upload avatar"}
)

func options[In, Out any](name string, text toastText) cusecase.MutationOptions[In, Out] {
	return cusecase.MutationOptions[In, Out]{
		Name:           name,
		SuccessMessage: text.success,
		ErrorMessage:   text.failure,
	}
}

// invalidate returns an Invalidate hook covering the given resources.
func invalidate[In, Out any](resources ...string) func(In, Out) []querycache.Key {
	return func(In, Out) []querycache.Key {
		keys := make([]querycache.Key, 0, len(resources))
		for _, resource := range resources {
			keys = append(keys, cusecase.ResourceScope(resource))
		}
		return keys
	}
}

func newList[T any](ctx context.Context, deps Deps, resource string, initial console.FilterState, fetch cusecase.ListFetcher[T]) *cusecase.ListQuery[T] {
	return cusecase.NewListQuery(ctx, deps.Cache, fetch, cusecase.ListQueryOptions{
		Resource:       resource,
		Initial:        initial,
		SearchDebounce: deps.SearchDebounce,
	})
}

// initialOr falls back to the resource's default first page.
func initialOr(initial *console.FilterState, limit int) console.FilterState {
	if initial != nil {
		return initial.Normalize()
	}
	return console.NewFilterState(limit)
}

// deleteGate wraps a delete mutation in a confirmation dialog and opens it.
func deleteGate(title, description string, run func(context.Context) error) *cusecase.ConfirmGate {
	gate := cusecase.NewConfirmGate(console.ConfirmDialog{
		Title:        title,
		Description:  description,
		ConfirmLabel: "Delete",
		Destructive:  true,
	}, run)
	gate.Open()
	return gate
}

type empty = struct{}

func discard[In any](run func(context.Context, In) error) func(context.Context, In) (empty, error) {
	return func(ctx context.Context, in In) (empty, error) {
		return empty{}, run(ctx, in)
	}
}
