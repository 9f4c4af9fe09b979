package domain

import (
	"time"

	"impactAdminWs/internal/shared/normalization"
	"impactAdminWs/internal/shared/validation"
)

type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingCancelled BookingStatus = "cancelled"
)

// EventBooking is a booking embedded in an event detail.
type EventBooking struct {
	ID        string                          `json:"_id"`
	User      normalization.Reference[Person] `json:"user"`
	Status    BookingStatus                   `json:"status"`
	CreatedAt string                          `json:"createdAt,omitempty"`
	UpdatedAt string                          `json:"updatedAt,omitempty"`
}

type Event struct {
	ID            string         `json:"_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Date          string         `json:"date"`
	Capacity      int            `json:"capacity"`
	Bookings      []EventBooking `json:"bookings,omitempty"`
	BookingsCount int            `json:"bookingsCount,omitempty"`
	Status        EventStatus    `json:"status,omitempty"`
	BannerURL     string         `json:"bannerUrl,omitempty"`
	IsFree        bool           `json:"isFree,omitempty"`
	Price         float64        `json:"price,omitempty"`
	CreatedAt     string         `json:"createdAt,omitempty"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
}

// SeatsLeft never goes below zero.
func (e Event) SeatsLeft() int {
	booked := e.BookingsCount
	if booked == 0 {
		booked = len(e.Bookings)
	}
	if left := e.Capacity - booked; left > 0 {
		return left
	}
	return 0
}

// IsUpcoming compares the event date with now; unparseable dates count as past.
func (e Event) IsUpcoming(now time.Time) bool {
	at, err := time.Parse(time.RFC3339, e.Date)
	if err != nil {
		return false
	}
	return at.After(now)
}

type EventPatch struct {
	Title       *string      `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string      `json:"description,omitempty"`
	Date        *string      `json:"date,omitempty"`
	Capacity    *int         `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Status      *EventStatus `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
}

type UpdateEventInput struct {
	ID    string     `json:"id" validate:"required"`
	Patch EventPatch `json:"patch"`
}

func (in UpdateEventInput) Validate() error { return validation.Struct(in) }

type CreateEventInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date" validate:"required"`
	Capacity    int     `json:"capacity,omitempty" validate:"gte=0"`
	IsFree      bool    `json:"isFree,omitempty"`
	Price       float64 `json:"price,omitempty" validate:"gte=0"`
	BannerURL   string  `json:"bannerUrl,omitempty" validate:"omitempty,url"`
}

func (in CreateEventInput) Validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if in.IsFree && in.Price > 0 {
		return validation.Fail("price", "price must be 0 for a free event")
	}
	return nil
}

// Booking is one row of the bookings page.
type Booking struct {
	ID         string        `json:"_id"`
	EventID    string        `json:"eventId"`
	EventTitle string        `json:"eventTitle"`
	UserID     string        `json:"userId,omitempty"`
	UserName   string        `json:"userName,omitempty"`
	UserEmail  string        `json:"userEmail,omitempty"`
	Status     BookingStatus `json:"status"`
	CreatedAt  string        `json:"createdAt,omitempty"`
}

type UpdateBookingInput struct {
	ID     string        `json:"id" validate:"required"`
	Status BookingStatus `json:"status" validate:"required,oneof=booked cancelled"`
}

func (in UpdateBookingInput) Validate() error { return validation.Struct(in) }
