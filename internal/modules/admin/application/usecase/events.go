package usecase

import (
	"context"

	"impactAdminWs/internal/modules/admin/domain"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
)

type eventMutations struct {
	update *cusecase.Mutation[domain.UpdateEventInput, domain.Event]
	remove *cusecase.Mutation[string, empty]
}

func newEventMutations(deps Deps, onEvent func(domain.Event)) eventMutations {
	events := deps.Services.Events

	updateOpts := options[domain.UpdateEventInput, domain.Event]("events.update", textEventUpdate)
	updateOpts.Validate = domain.UpdateEventInput.Validate
	updateOpts.Invalidate = invalidate[domain.UpdateEventInput, domain.Event](domain.ResourceEvents)
	if onEvent != nil {
		updateOpts.OnSuccess = func(_ domain.UpdateEventInput, event domain.Event) { onEvent(event) }
	}

	removeOpts := options[string, empty]("events.delete", textEventDelete)
	removeOpts.Invalidate = invalidate[string, empty](domain.ResourceEvents, domain.ResourceBookings)

	return eventMutations{
		update: cusecase.NewMutation(deps.Cache, deps.Toasts, func(ctx context.Context, in domain.UpdateEventInput) (domain.Event, error) {
			return events.Update(ctx, in.ID, in.Patch)
		}, updateOpts),
		remove: cusecase.NewMutation(deps.Cache, deps.Toasts, discard(events.Delete), removeOpts),
	}
}

func (m eventMutations) Update(ctx context.Context, in domain.UpdateEventInput) (domain.Event, error) {
	return m.update.Mutate(ctx, in)
}

// SetStatus approves or rejects an event.
func (m eventMutations) SetStatus(ctx context.Context, id string, status domain.EventStatus) (domain.Event, error) {
	return m.update.Mutate(ctx, domain.UpdateEventInput{ID: id, Patch: domain.EventPatch{Status: &status}})
}

func (m eventMutations) RequestDelete(id string) *cusecase.ConfirmGate {
	return deleteGate("Delete event", "This removes the event and cancels its bookings.", func(ctx context.Context) error {
		_, err := m.remove.Mutate(ctx, id)
		return err
	})
}

type EventsPage struct {
	eventMutations
	List   *cusecase.ListQuery[domain.Event]
	create *cusecase.Mutation[domain.CreateEventInput, domain.Event]
}

func NewEventsPage(ctx context.Context, deps Deps, initial *console.FilterState) *EventsPage {
	createOpts := options[domain.CreateEventInput, domain.Event]("events.create", textEventCreate)
	createOpts.Validate = domain.CreateEventInput.Validate
	createOpts.Invalidate = invalidate[domain.CreateEventInput, domain.Event](domain.ResourceEvents)

	return &EventsPage{
		eventMutations: newEventMutations(deps, nil),
		List:           newList(ctx, deps, domain.ResourceEvents, initialOr(initial, domain.DefaultListLimit), deps.Services.Events.List),
		create:         cusecase.NewMutation(deps.Cache, deps.Toasts, deps.Services.Events.Create, createOpts),
	}
}

func (p *EventsPage) Create(ctx context.Context, in domain.CreateEventInput) (domain.Event, error) {
	return p.create.Mutate(ctx, in)
}

func (p *EventsPage) Close() { p.List.Close() }

type EventDetailPage struct {
	eventMutations
	Detail *cusecase.EntityQuery[domain.Event]
}

func NewEventDetailPage(ctx context.Context, deps Deps, id string) *EventDetailPage {
	detail := cusecase.NewEntityQuery(ctx, deps.Cache, domain.ResourceEvents, id, deps.Services.Events.Get)
	return &EventDetailPage{
		eventMutations: newEventMutations(deps, func(event domain.Event) {
			if event.ID == id {
				detail.SetData(event)
			}
		}),
		Detail: detail,
	}
}

func (p *EventDetailPage) Close() { p.Detail.Close() }

type BookingsPage struct {
	List   *cusecase.ListQuery[domain.Booking]
	update *cusecase.Mutation[domain.UpdateBookingInput, empty]
}

func NewBookingsPage(ctx context.Context, deps Deps, initial *console.FilterState) *BookingsPage {
	bookings := deps.Services.Bookings

	opts := options[domain.UpdateBookingInput, empty]("bookings.update_status", textBooking)
	opts.Validate = domain.UpdateBookingInput.Validate
	opts.Invalidate = invalidate[domain.UpdateBookingInput, empty](domain.ResourceBookings, domain.ResourceEvents)

	return &BookingsPage{
		List: newList(ctx, deps, domain.ResourceBookings, initialOr(initial, domain.DefaultListLimit), bookings.List),
		update: cusecase.NewMutation(deps.Cache, deps.Toasts, discard(func(ctx context.Context, in domain.UpdateBookingInput) error {
			return bookings.UpdateStatus(ctx, in.ID, in.Status)
		}), opts),
	}
}

func (p *BookingsPage) UpdateStatus(ctx context.Context, in domain.UpdateBookingInput) error {
	_, err := p.update.Mutate(ctx, in)
	return err
}

func (p *BookingsPage) Close() { p.List.Close() }
