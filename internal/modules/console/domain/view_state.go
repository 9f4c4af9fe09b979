package domain

// ViewState is the lifecycle of one list or detail view.
type ViewState string

const (
	ViewIdle    ViewState = "idle"
	ViewLoading ViewState = "loading"
	ViewSuccess ViewState = "success"
	ViewError   ViewState = "error"
)

// MutationStatus is the lifecycle of one mutation session.
type MutationStatus string

const (
	MutationIdle    MutationStatus = "idle"
	MutationPending MutationStatus = "pending"
	MutationSuccess MutationStatus = "success"
	MutationError   MutationStatus = "error"
)

// LoadFailedMessage replaces a table whose list failed to load.
const LoadFailedMessage = "Failed to load data"
