package domain

import "time"

type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastError   ToastVariant = "error"
)

// Toast is one transient notification. IDs are process-wide and never reused.
type Toast struct {
	ID        uint64       `json:"id"`
	Message   string       `json:"message"`
	Variant   ToastVariant `json:"variant"`
	CreatedAt time.Time    `json:"createdAt"`
}
