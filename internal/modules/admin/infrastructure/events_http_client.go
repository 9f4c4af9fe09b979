package infrastructure

import (
	"context"
	"fmt"
	"net/http"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/domain"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/apiclient"
)

type EventsHTTPClient struct {
	rest *apiclient.Client
}

func NewEventsHTTPClient(rest *apiclient.Client) *EventsHTTPClient {
	return &EventsHTTPClient{rest: rest}
}

func (c *EventsHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.Event], error) {
	path, err := listPath("events", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.Event]](ctx, c.rest, path, queryValues("events", query))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return page, nil
}

func (c *EventsHTTPClient) Get(ctx context.Context, id string) (domain.Event, error) {
	path, err := detailPath("events", id)
	if err != nil {
		return domain.Event{}, err
	}
	event, err := apiclient.Get[domain.Event](ctx, c.rest, path, nil)
	if err != nil {
		return domain.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return event, nil
}

// Create goes through the public events endpoint; admins have no create route.
func (c *EventsHTTPClient) Create(ctx context.Context, in domain.CreateEventInput) (domain.Event, error) {
	path, err := listPath("events-public", "")
	if err != nil {
		return domain.Event{}, err
	}
	event, err := apiclient.Send[domain.Event](ctx, c.rest, http.MethodPost, path, in)
	if err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (c *EventsHTTPClient) Update(ctx context.Context, id string, patch domain.EventPatch) (domain.Event, error) {
	path, err := detailPath("events", id)
	if err != nil {
		return domain.Event{}, err
	}
	event, err := apiclient.Send[domain.Event](ctx, c.rest, http.MethodPatch, path, patch)
	if err != nil {
		return domain.Event{}, fmt.Errorf("update event %s: %w", id, err)
	}
	return event, nil
}

func (c *EventsHTTPClient) Delete(ctx context.Context, id string) error {
	path, err := detailPath("events", id)
	if err != nil {
		return err
	}
	if err := apiclient.Exec(ctx, c.rest, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

// BookingsHTTPClient lists event bookings and flips their status.
type BookingsHTTPClient struct {
	rest *apiclient.Client
}

func NewBookingsHTTPClient(rest *apiclient.Client) *BookingsHTTPClient {
	return &BookingsHTTPClient{rest: rest}
}

func (c *BookingsHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.Booking], error) {
	path, err := listPath("bookings", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.Booking]](ctx, c.rest, path, queryValues("bookings", query))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return page, nil
}

func (c *BookingsHTTPClient) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	path, err := detailPath("bookings", id)
	if err != nil {
		return err
	}
	if err := apiclient.Exec(ctx, c.rest, http.MethodPatch, path, map[string]any{"status": status}); err != nil {
		return fmt.Errorf("update booking %s: %w", id, err)
	}
	return nil
}

var (
	_ port.EventService   = (*EventsHTTPClient)(nil)
	_ port.BookingService = (*BookingsHTTPClient)(nil)
)
