package domain

import (
	"strings"

	"impactAdminWs/internal/shared/normalization"
	"impactAdminWs/internal/shared/sanitize"
	"impactAdminWs/internal/shared/validation"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketClosed     TicketStatus = "closed"
)

type Ticket struct {
	ID        string                          `json:"_id"`
	User      normalization.Reference[Person] `json:"user"`
	Subject   string                          `json:"subject"`
	Message   string                          `json:"message"`
	Status    TicketStatus                    `json:"status"`
	CreatedAt string                          `json:"createdAt,omitempty"`
}

type TicketReply struct {
	ID        string                          `json:"_id"`
	User      normalization.Reference[Person] `json:"user"`
	Message   string                          `json:"message"`
	CreatedAt string                          `json:"createdAt,omitempty"`
}

type TicketDetail struct {
	Ticket
	Replies []TicketReply `json:"replies,omitempty"`
}

type UpdateTicketStatusInput struct {
	ID     string       `json:"id" validate:"required"`
	Status TicketStatus `json:"status" validate:"required,oneof=open in_progress closed"`
}

func (in UpdateTicketStatusInput) Validate() error { return validation.Struct(in) }

type ReplyInput struct {
	TicketID string `json:"ticketId" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// Clean strips markup from the reply before it is validated and sent.
func (in ReplyInput) Clean() ReplyInput {
	in.TicketID = strings.TrimSpace(in.TicketID)
	in.Message = sanitize.PlainText(in.Message)
	return in
}

func (in ReplyInput) Validate() error { return validation.Struct(in.Clean()) }
