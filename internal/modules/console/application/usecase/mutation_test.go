package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/apiclient"
	"impactAdminWs/internal/platform/querycache"
	"impactAdminWs/internal/shared/validation"
)

type recordedToast struct {
	message string
	variant domain.ToastVariant
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []recordedToast
}

func (n *recordingNotifier) Emit(message string, variant domain.ToastVariant) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, recordedToast{message: message, variant: variant})
}

func (n *recordingNotifier) all() []recordedToast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]recordedToast(nil), n.toasts...)
}

type roleInput struct {
	ID   string
	Role string
}

func roleMutation(cache *querycache.Cache, notifier *recordingNotifier, run func(context.Context, roleInput) (userRow, error)) *Mutation[roleInput, userRow] {
	return NewMutation(cache, notifier, run, MutationOptions[roleInput, userRow]{
		Name:                "users.update_role",
		SuccessMessage:      "Role updated",
		ErrorMessage:        "Failed to update role",
		PreferServerMessage: true,
		Validate: func(in roleInput) error {
			return validation.Var("role", in.Role, "required,oneof=user partner admin")
		},
		Invalidate: func(roleInput, userRow) []querycache.Key {
			return []querycache.Key{ResourceScope("users")}
		},
	})
}

func TestMutationSuccessInvalidatesAndRefetchesOnce(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	fetcher := newRecordingFetcher()
	list := newUsersQuery(t, cache, fetcher.fetch)
	if err := list.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifier := &recordingNotifier{}
	m := roleMutation(cache, notifier, func(_ context.Context, in roleInput) (userRow, error) {
		return userRow{ID: in.ID}, nil
	})
	if _, err := m.Mutate(context.Background(), roleInput{ID: "u-1", Role: "admin"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(fetcher.calls()); got != 2 {
		t.Fatalf("expected exactly one refetch after success, got %d fetches", got)
	}
	toasts := notifier.all()
	if len(toasts) != 1 || toasts[0].message != "Role updated" || toasts[0].variant != domain.ToastSuccess {
		t.Fatalf("expected one success toast, got %v", toasts)
	}
	if m.Status() != domain.MutationSuccess {
		t.Fatalf("expected success status, got %s", m.Status())
	}
}

func TestMutationFailureKeepsCacheAndToastsOnce(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err      error
		expected string
	}{
		"server message": {err: &apiclient.Error{Status: 400, Message: "Invalid role"}, expected: "Invalid role"},
		"fallback":       {err: fmt.Errorf("%w: connection reset", apiclient.ErrTransport), expected: "Failed to update role"},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cache := querycache.New(querycache.Options{})
			fetcher := newRecordingFetcher()
			list := newUsersQuery(t, cache, fetcher.fetch)
			if err := list.Load(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			before := list.Snapshot().Data

			notifier := &recordingNotifier{}
			m := roleMutation(cache, notifier, func(context.Context, roleInput) (userRow, error) {
				return userRow{}, tc.err
			})
			if _, err := m.Mutate(context.Background(), roleInput{ID: "u-1", Role: "admin"}); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}

			toasts := notifier.all()
			if len(toasts) != 1 || toasts[0].message != tc.expected || toasts[0].variant != domain.ToastError {
				t.Fatalf("expected one error toast %q, got %v", tc.expected, toasts)
			}
			if got := len(fetcher.calls()); got != 1 {
				t.Fatalf("expected no refetch after failure, got %d fetches", got)
			}
			if !cache.IsFresh(ListKey("users", list.Query())) || list.Snapshot().Data != before {
				t.Fatal("expected cached list untouched")
			}
			if m.Status() != domain.MutationError {
				t.Fatalf("expected error status, got %s", m.Status())
			}
		})
	}
}

func TestMutationUnauthorizedSkipsToast(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	m := roleMutation(querycache.New(querycache.Options{}), notifier, func(context.Context, roleInput) (userRow, error) {
		return userRow{}, fmt.Errorf("patch role: %w", apiclient.ErrUnauthorized)
	})
	if _, err := m.Mutate(context.Background(), roleInput{ID: "u-1", Role: "admin"}); !apiclient.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if toasts := notifier.all(); len(toasts) != 0 {
		t.Fatalf("expected no toast, got %v", toasts)
	}
}

func TestMutationValidationFailsBeforeRequest(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	called := false
	m := roleMutation(querycache.New(querycache.Options{}), notifier, func(context.Context, roleInput) (userRow, error) {
		called = true
		return userRow{}, nil
	})

	_, err := m.Mutate(context.Background(), roleInput{ID: "u-1", Role: "superuser"})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Fatal("expected no request for invalid input")
	}
	toasts := notifier.all()
	if len(toasts) != 1 || toasts[0].variant != domain.ToastError {
		t.Fatalf("expected one error toast, got %v", toasts)
	}
}

func TestMutationRepeatedStatusUpdateIsStable(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	var (
		mu     sync.Mutex
		status = "active"
	)
	detail := NewEntityQuery(context.Background(), cache, "users", "u-1", func(context.Context, string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		return status, nil
	})
	t.Cleanup(detail.Close)
	if err := detail.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifier := &recordingNotifier{}
	m := NewMutation(cache, notifier, func(_ context.Context, next string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		status = next
		return status, nil
	}, MutationOptions[string, string]{
		SuccessMessage: "Status updated",
		ErrorMessage:   "Failed to update status",
		OnSuccess:      func(_ string, out string) { detail.SetData(out) },
		Invalidate: func(string, string) []querycache.Key {
			return []querycache.Key{ResourceScope("users")}
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := m.Mutate(context.Background(), "suspended"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snap := detail.Snapshot()
		if snap.Data == nil || *snap.Data != "suspended" || snap.State != domain.ViewSuccess {
			t.Fatalf("expected suspended after attempt %d, got %+v", i+1, snap)
		}
	}
	if got := len(notifier.all()); got != 2 {
		t.Fatalf("expected one toast per call, got %d", got)
	}
}

func TestEntityQuerySetDataUpdatesCache(t *testing.T) {
	t.Parallel()

	cache := querycache.New(querycache.Options{})
	fetches := 0
	detail := NewEntityQuery(context.Background(), cache, "courses", "c-1", func(context.Context, string) (userRow, error) {
		fetches++
		return userRow{ID: "c-1", Name: "Intro"}, nil
	})
	t.Cleanup(detail.Close)

	detail.SetData(userRow{ID: "c-1", Name: "Renamed"})
	if err := detail.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetches != 0 {
		t.Fatalf("expected fresh detail data to skip the request, got %d fetches", fetches)
	}
	if snap := detail.Snapshot(); snap.Data == nil || snap.Data.Name != "Renamed" {
		t.Fatalf("expected renamed course, got %+v", snap)
	}
	if cached, ok := querycache.Get[userRow](cache, DetailKey("courses", "c-1")); !ok || cached.Name != "Renamed" {
		t.Fatalf("expected cache to hold the new record, got %+v", cached)
	}
}
