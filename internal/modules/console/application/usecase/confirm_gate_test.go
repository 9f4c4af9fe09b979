package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"impactAdminWs/internal/modules/console/domain"
)

func newDeleteGate(action func(context.Context) error) *ConfirmGate {
	return NewConfirmGate(domain.ConfirmDialog{
		Title:        "Delete user",
		Description:  "This cannot be undone.",
		ConfirmLabel: "Delete",
		Destructive:  true,
	}, action)
}

func TestConfirmGateNeverRunsWithoutConfirm(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	gate := newDeleteGate(func(context.Context) error {
		calls.Add(1)
		return nil
	})

	if err := gate.Confirm(context.Background()); !errors.Is(err, ErrGateClosed) {
		t.Fatalf("expected ErrGateClosed, got %v", err)
	}
	gate.Open()
	if !gate.Cancel() {
		t.Fatal("expected cancel to close the dialog")
	}
	if gate.State().Open {
		t.Fatal("expected dialog closed after cancel")
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no action, got %d calls", calls.Load())
	}
}

func TestConfirmGatePendingState(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	gate := newDeleteGate(func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	gate.Open()

	done := make(chan error, 1)
	go func() { done <- gate.Confirm(context.Background()) }()
	<-started

	state := gate.State()
	if !state.Pending || !state.ConfirmDisabled || !state.CancelDisabled {
		t.Fatalf("expected pending with disabled buttons, got %+v", state)
	}
	if state.ConfirmLabel != domain.PendingConfirmLabel {
		t.Fatalf("expected label %q, got %q", domain.PendingConfirmLabel, state.ConfirmLabel)
	}
	if gate.Cancel() {
		t.Fatal("expected cancel to be refused while pending")
	}
	if err := gate.Confirm(context.Background()); !errors.Is(err, ErrGatePending) {
		t.Fatalf("expected ErrGatePending, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state = gate.State()
	if state.Open || state.Pending {
		t.Fatalf("expected closed dialog after success, got %+v", state)
	}
	if state.ConfirmLabel != "Delete" {
		t.Fatalf("expected label restored, got %q", state.ConfirmLabel)
	}
}

func TestConfirmGateFailureKeepsDialogOpen(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	gate := newDeleteGate(func(context.Context) error {
		if attempts.Add(1) == 1 {
			return errors.New("Failed to delete user")
		}
		return nil
	})

	var states []domain.GateState
	gate.OnChange(func(state domain.GateState) { states = append(states, state) })
	gate.Open()

	if err := gate.Confirm(context.Background()); err == nil {
		t.Fatal("expected first attempt to fail")
	}
	state := gate.State()
	if !state.Open || state.Pending || state.Error == "" {
		t.Fatalf("expected open dialog with error, got %+v", state)
	}

	if err := gate.Confirm(context.Background()); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if gate.State().Open {
		t.Fatal("expected dialog closed after retry")
	}
	// open, pending, failed, pending, closed
	if len(states) != 5 {
		t.Fatalf("expected 5 state changes, got %d", len(states))
	}
}

func TestConfirmGateDefaultLabels(t *testing.T) {
	t.Parallel()

	gate := NewConfirmGate(domain.ConfirmDialog{Title: "Delete course"}, func(context.Context) error { return nil })
	state := gate.State()
	if state.ConfirmLabel != domain.DefaultConfirmLabel || state.CancelLabel != domain.DefaultCancelLabel {
		t.Fatalf("expected default labels, got %+v", state)
	}
	if state.ID == "" || state.ID != gate.ID() {
		t.Fatalf("expected gate id in state, got %q", state.ID)
	}
}
