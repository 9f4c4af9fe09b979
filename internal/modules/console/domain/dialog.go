package domain

const (
	DefaultConfirmLabel = "Confirm"
	DefaultCancelLabel  = "Cancel"
	PendingConfirmLabel = "Working..."
)

// ConfirmDialog describes the consequence of a destructive action.
type ConfirmDialog struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ConfirmLabel string `json:"confirmLabel,omitempty"`
	CancelLabel  string `json:"cancelLabel,omitempty"`
	Destructive  bool   `json:"destructive"`
}

// GateState is what the dialog renders at a given instant.
type GateState struct {
	ID              string `json:"id"`
	Open            bool   `json:"open"`
	Pending         bool   `json:"pending"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	ConfirmLabel    string `json:"confirmLabel"`
	CancelLabel     string `json:"cancelLabel"`
	Destructive     bool   `json:"destructive"`
	ConfirmDisabled bool   `json:"confirmDisabled"`
	CancelDisabled  bool   `json:"cancelDisabled"`
	Error           string `json:"error,omitempty"`
}
