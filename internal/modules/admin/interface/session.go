package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/application/usecase"
	"impactAdminWs/internal/modules/admin/domain"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/modules/console/infrastructure"
	"impactAdminWs/internal/platform/apiclient"
	"impactAdminWs/internal/platform/querycache"
	"impactAdminWs/internal/shared/auth"
)

var (
	ErrPageNotOpen       = errors.New("page is not open")
	ErrUnknownPage       = errors.New("unknown page")
	ErrUnknownDialog     = errors.New("unknown dialog")
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrSessionClosed     = errors.New("session is closed")
)

// Outbox is where a session writes. *infrastructure.Client implements it.
type Outbox interface {
	SendDomainMessage(msg *console.Message)
	SendAndClose(msg *console.Message)
}

// ServicesFactory builds the REST services of one session around its token.
// onUnauthorized must run whenever the API answers 401.
type ServicesFactory func(tokens auth.TokenStore, onUnauthorized func()) port.Services

type SessionConfig struct {
	StaleTime       time.Duration
	SearchDebounce  time.Duration
	ToastTTL        time.Duration
	CacheMaxEntries int
}

// Session is one operator's console: its query cache, its toasts, the pages it
// has open and the dialogs waiting for an answer.
type Session struct {
	id         string
	operatorID string
	out        Outbox
	tokens     *auth.MemoryTokenStore
	cache      *querycache.Cache
	toasts     *cusecase.ToastList
	deps       usecase.Deps

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	pages  map[string]*pageView
	gates  map[string]*cusecase.ConfirmGate
	closed bool

	expireOnce sync.Once
	closeOnce  sync.Once
}

func NewSession(id, operatorID, token string, out Outbox, services ServicesFactory, cfg SessionConfig) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:         id,
		operatorID: operatorID,
		out:        out,
		tokens:     auth.NewMemoryTokenStore(token),
		cache: querycache.New(querycache.Options{
			StaleTime:  cfg.StaleTime,
			MaxEntries: cfg.CacheMaxEntries,
		}),
		ctx:    ctx,
		cancel: cancel,
		pages:  make(map[string]*pageView),
		gates:  make(map[string]*cusecase.ConfirmGate),
	}
	bus := cusecase.NewToastBus()
	s.toasts = cusecase.NewToastList(bus, cfg.ToastTTL, func(items []console.Toast) {
		s.publish(console.ToastEntity, console.ActionList, "", items)
	})
	s.deps = usecase.Deps{
		Cache:          s.cache,
		Toasts:         bus,
		Services:       services(s.tokens, s.Expire),
		SearchDebounce: cfg.SearchDebounce,
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) OperatorID() string { return s.operatorID }

// Start greets the client with the pages it may open.
func (s *Session) Start() {
	s.publish(console.SystemEntity, console.ActionConnected, s.id, map[string]any{
		"sessionId":  s.id,
		"operatorId": s.operatorID,
		"pages":      PageTopics(),
	})
}

// Uploader returns an avatar uploader bound to this session's cache and toasts.
func (s *Session) Uploader() *usecase.AvatarUploader {
	return usecase.NewAvatarUploader(s.cache, s.deps.Services.Uploads, s.deps.Toasts)
}

// InvalidateResource marks every cached query of resource stale and refetches
// the open pages showing it.
func (s *Session) InvalidateResource(resource string) int {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return 0
	}
	return s.cache.Invalidate(cusecase.ResourceScope(resource))
}

// Expire ends the session after the API rejected its token. The client is
// told where to go before the connection closes.
func (s *Session) Expire() {
	s.expireOnce.Do(func() {
		s.tokens.ClearToken()
		slog.Info("console session expired", slog.String("sessionId", s.id), slog.String("operatorId", s.operatorID))
		s.finish(console.TopicSessionExpired, console.ActionExpired)
	})
}

// Logout drops the token and closes the connection.
func (s *Session) Logout() {
	s.expireOnce.Do(func() {
		s.tokens.ClearToken()
		slog.Info("console session logged out", slog.String("sessionId", s.id), slog.String("operatorId", s.operatorID))
		s.finish(console.TopicSessionClosed, console.ActionClosed)
	})
}

func (s *Session) finish(topic, action string) {
	msg := console.NewMessage(console.SessionEntity, action, map[string]string{"redirect": domain.LoginRoute})
	msg.Topic = topic
	msg.ResourceID = s.id
	msg.Metadata = s.metadata()
	s.out.SendAndClose(msg)
}

// Close releases every page, dialog and toast timer. It is safe to call twice.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		pages := s.pages
		s.pages = make(map[string]*pageView)
		s.gates = make(map[string]*cusecase.ConfirmGate)
		s.mu.Unlock()

		for _, view := range pages {
			view.close()
		}
		s.toasts.Close()
		s.cancel()
	})
}

// Handle runs one command read from the socket. Failures that were not already
// shown as a toast or a view error come back as command.error.
func (s *Session) Handle(ctx context.Context, cmd infrastructure.Command) {
	topic := normalizePage(cmd.Topic)
	action := cmd.ActionKey()

	var err error
	if topic == "" {
		err = s.handleSessionCommand(ctx, action, cmd.Payload)
	} else {
		err = s.handlePageCommand(ctx, topic, action, cmd.Payload)
	}
	if err == nil || apiclient.IsUnauthorized(err) {
		return
	}
	slog.Debug("console command failed", slog.String("sessionId", s.id), slog.String("topic", topic), slog.String("action", action), slog.Any("error", err))
	s.sendCommandError(topic, action, err)
}

func (s *Session) handleSessionCommand(ctx context.Context, action string, payload json.RawMessage) error {
	switch action {
	case "confirm":
		in, err := decodePayload[dialogPayload](payload)
		if err != nil {
			return err
		}
		gate := s.gate(in.DialogID)
		if gate == nil {
			return ErrUnknownDialog
		}
		err = gate.Confirm(ctx)
		if errors.Is(err, cusecase.ErrGateClosed) || errors.Is(err, cusecase.ErrGatePending) {
			return err
		}
		// a failed action stays visible in the dialog and as a toast
		return nil
	case "cancel":
		in, err := decodePayload[dialogPayload](payload)
		if err != nil {
			return err
		}
		gate := s.gate(in.DialogID)
		if gate == nil {
			return ErrUnknownDialog
		}
		if !gate.Cancel() {
			return cusecase.ErrGatePending
		}
		return nil
	case "dismiss_toast":
		in, err := decodePayload[toastPayload](payload)
		if err != nil {
			return err
		}
		s.toasts.Dismiss(in.ID)
		return nil
	case "logout":
		s.Logout()
		return nil
	default:
		return ErrUnsupportedAction
	}
}

func (s *Session) handlePageCommand(ctx context.Context, topic, action string, payload json.RawMessage) error {
	switch action {
	case "open":
		req, err := decodePayload[openRequest](payload)
		if err != nil {
			return err
		}
		view, err := s.open(topic, req)
		if err != nil {
			return err
		}
		s.logLoad(view, view.load(ctx))
		return nil
	case "close":
		s.mu.Lock()
		view := s.pages[topic]
		delete(s.pages, topic)
		s.mu.Unlock()
		if view != nil {
			view.close()
		}
		return nil
	}

	s.mu.Lock()
	view := s.pages[topic]
	s.mu.Unlock()
	if view == nil {
		return fmt.Errorf("%w: %s", ErrPageNotOpen, topic)
	}

	if action == "refetch" {
		s.logLoad(view, view.refetch(ctx))
		return nil
	}
	if view.list != nil {
		if handled, err := s.handleListCommand(ctx, view, action, payload); handled {
			return err
		}
	}
	run, ok := view.actions[action]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnsupportedAction, action, topic)
	}
	return run(ctx, payload)
}

// handleListCommand drives the filter state of a list page. Fetch failures
// already surface in the list snapshot.
func (s *Session) handleListCommand(ctx context.Context, view *pageView, action string, payload json.RawMessage) (bool, error) {
	var updater console.Updater
	switch action {
	case "search":
		in, err := decodePayload[searchPayload](payload)
		if err != nil {
			return true, err
		}
		view.list.TypeSearch(in.Q)
		return true, nil
	case "filter":
		in, err := decodePayload[filterPayload](payload)
		if err != nil {
			return true, err
		}
		updater = func(prev console.FilterState) console.FilterState { return prev.WithFilter(in.Key, in.Value) }
	case "filters":
		in, err := decodePayload[filtersPayload](payload)
		if err != nil {
			return true, err
		}
		updater = func(prev console.FilterState) console.FilterState { return prev.WithFilters(in.Filters) }
	case "page":
		in, err := decodePayload[pagePayload](payload)
		if err != nil {
			return true, err
		}
		updater = func(prev console.FilterState) console.FilterState { return prev.WithPage(in.Page) }
	case "limit":
		in, err := decodePayload[limitPayload](payload)
		if err != nil {
			return true, err
		}
		updater = func(prev console.FilterState) console.FilterState { return prev.WithLimit(in.Limit) }
	default:
		return false, nil
	}
	s.logLoad(view, view.list.SetQuery(ctx, updater))
	return true, nil
}

// open builds the page for topic, replacing the one already open there.
func (s *Session) open(topic string, req openRequest) (*pageView, error) {
	build, ok := pageBuilders[topic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, topic)
	}
	req.ID = strings.TrimSpace(req.ID)
	view, err := build(s, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		view.close()
		return nil, ErrSessionClosed
	}
	previous := s.pages[topic]
	s.pages[topic] = view
	s.mu.Unlock()

	if previous != nil {
		previous.close()
	}
	return view, nil
}

// openGate tracks a confirmation dialog until it closes.
func (s *Session) openGate(gate *cusecase.ConfirmGate) {
	s.mu.Lock()
	s.gates[gate.ID()] = gate
	s.mu.Unlock()

	gate.OnChange(func(state console.GateState) {
		s.publish(console.DialogEntity, console.ActionState, state.ID, state)
		if !state.Open {
			s.mu.Lock()
			delete(s.gates, state.ID)
			s.mu.Unlock()
		}
	})
	state := gate.State()
	s.publish(console.DialogEntity, console.ActionState, state.ID, state)
}

func (s *Session) gate(id string) *cusecase.ConfirmGate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gates[strings.TrimSpace(id)]
}

func (s *Session) publish(entity, action, resourceID string, data any) {
	msg := console.NewMessage(entity, action, data)
	msg.ResourceID = resourceID
	msg.Metadata = s.metadata()
	s.out.SendDomainMessage(msg)
}

func (s *Session) metadata() map[string]string {
	return map[string]string{
		"sessionId":  s.id,
		"operatorId": s.operatorID,
	}
}

func (s *Session) sendCommandError(topic, action string, err error) {
	message := apiclient.ServerMessage(err)
	if message == "" {
		message = err.Error()
	}
	msg := console.NewMessage(console.CommandEntity, console.ActionError, map[string]string{
		"topic":   topic,
		"action":  action,
		"message": message,
	})
	msg.Metadata = s.metadata()
	msg.Metadata["action"] = action
	s.out.SendDomainMessage(msg)
}

func (s *Session) logLoad(view *pageView, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	slog.Debug("console page load failed", slog.String("sessionId", s.id), slog.String("page", view.topic), slog.String("id", view.id), slog.Any("error", err))
}

type openRequest struct {
	ID    string               `json:"id,omitempty"`
	Query *console.FilterState `json:"query,omitempty"`
}

type dialogPayload struct {
	DialogID string `json:"dialogId"`
}

type toastPayload struct {
	ID uint64 `json:"id"`
}

type searchPayload struct {
	Q string `json:"q"`
}

type filterPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type filtersPayload struct {
	Filters map[string]string `json:"filters"`
}

type pagePayload struct {
	Page int `json:"page"`
}

type limitPayload struct {
	Limit int `json:"limit"`
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) == 0 || string(raw) == "null" {
		return payload, nil
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return payload, nil
}
