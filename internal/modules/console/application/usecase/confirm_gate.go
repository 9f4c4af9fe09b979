package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"impactAdminWs/internal/modules/console/domain"
)

var (
	ErrGateClosed  = errors.New("confirmation dialog is not open")
	ErrGatePending = errors.New("confirmation already in progress")
)

// ConfirmGate guards a destructive action behind an explicit confirm step.
// The action only runs from Confirm, and the dialog only closes when it succeeds.
type ConfirmGate struct {
	id     string
	dialog domain.ConfirmDialog
	action func(context.Context) error

	mu       sync.Mutex
	open     bool
	pending  bool
	lastErr  error
	onChange func(domain.GateState)
}

func NewConfirmGate(dialog domain.ConfirmDialog, action func(context.Context) error) *ConfirmGate {
	if dialog.ConfirmLabel == "" {
		dialog.ConfirmLabel = domain.DefaultConfirmLabel
	}
	if dialog.CancelLabel == "" {
		dialog.CancelLabel = domain.DefaultCancelLabel
	}
	return &ConfirmGate{
		id:     uuid.NewString(),
		dialog: dialog,
		action: action,
	}
}

func (g *ConfirmGate) ID() string { return g.id }

// OnChange registers the dialog renderer.
func (g *ConfirmGate) OnChange(fn func(domain.GateState)) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

// Open shows the dialog. Reopening an open dialog is a no-op.
func (g *ConfirmGate) Open() {
	g.mu.Lock()
	if g.open {
		g.mu.Unlock()
		return
	}
	g.open = true
	g.lastErr = nil
	state, notify := g.stateLocked(), g.onChange
	g.mu.Unlock()
	publish(notify, state)
}

// Cancel closes the dialog without running the action. It is refused while
// the action is in flight.
func (g *ConfirmGate) Cancel() bool {
	g.mu.Lock()
	if !g.open || g.pending {
		g.mu.Unlock()
		return false
	}
	g.open = false
	state, notify := g.stateLocked(), g.onChange
	g.mu.Unlock()
	publish(notify, state)
	return true
}

// Confirm runs the action once. On error the dialog stays open for a retry.
func (g *ConfirmGate) Confirm(ctx context.Context) error {
	g.mu.Lock()
	if !g.open {
		g.mu.Unlock()
		return ErrGateClosed
	}
	if g.pending {
		g.mu.Unlock()
		return ErrGatePending
	}
	g.pending = true
	g.lastErr = nil
	state, notify := g.stateLocked(), g.onChange
	g.mu.Unlock()
	publish(notify, state)

	err := g.action(ctx)

	g.mu.Lock()
	g.pending = false
	g.lastErr = err
	if err == nil {
		g.open = false
	}
	state, notify = g.stateLocked(), g.onChange
	g.mu.Unlock()
	publish(notify, state)
	return err
}

// State returns what the dialog currently renders.
func (g *ConfirmGate) State() domain.GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *ConfirmGate) stateLocked() domain.GateState {
	state := domain.GateState{
		ID:              g.id,
		Open:            g.open,
		Pending:         g.pending,
		Title:           g.dialog.Title,
		Description:     g.dialog.Description,
		ConfirmLabel:    g.dialog.ConfirmLabel,
		CancelLabel:     g.dialog.CancelLabel,
		Destructive:     g.dialog.Destructive,
		ConfirmDisabled: g.pending,
		CancelDisabled:  g.pending,
	}
	if g.pending {
		state.ConfirmLabel = domain.PendingConfirmLabel
	}
	if g.lastErr != nil {
		state.Error = g.lastErr.Error()
	}
	return state
}
