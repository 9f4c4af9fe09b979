package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/application/usecase"
	"impactAdminWs/internal/modules/admin/domain"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/modules/console/infrastructure"
	"impactAdminWs/internal/shared/auth"
)

type stubValidator struct{}

func (stubValidator) Validate(token string) (*auth.Claims, error) {
	if token != "good-token" {
		return nil, auth.ErrInvalidToken
	}
	claims := &auth.Claims{Role: "admin"}
	claims.Subject = "op1"
	return claims, nil
}

type stubAuth struct {
	calls int
	err   error
}

func (s *stubAuth) Login(_ context.Context, credentials domain.Credentials) (domain.Session, error) {
	s.calls++
	if s.err != nil {
		return domain.Session{}, s.err
	}
	return domain.Session{AccessToken: "good-token", User: domain.SessionUser{ID: "op1", Email: credentials.Email, Role: "admin"}}, nil
}

func newAuthHandler(authSvc *stubAuth) *AuthHandler {
	return NewAuthHandler(usecase.NewAuthUseCase(authSvc), stubValidator{}, CookieConfig{Name: "admin_token"})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected a JSON body, got %q", rec.Body.String())
	}
	return body
}

func TestLoginSetsTokenCookie(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ops@impact.club","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := newAuthHandler(&stubAuth{}).Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "admin_token" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != "good-token" || !cookie.HttpOnly {
		t.Fatalf("expected an http-only admin_token cookie, got %+v", cookie)
	}
	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	if data["redirect"] != domain.DashboardRoute {
		t.Fatalf("expected redirect to %s, got %v", domain.DashboardRoute, data["redirect"])
	}
}

func TestLoginValidatesBeforeCallingTheAPI(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	authSvc := &stubAuth{}

	err := newAuthHandler(authSvc).Login(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if authSvc.calls != 0 {
		t.Fatalf("expected no API call, got %d", authSvc.calls)
	}
}

func TestSessionEndpointRedirects(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cookie        string
		authenticated bool
		redirect      string
	}{
		"no token":      {cookie: "", authenticated: false, redirect: domain.LoginRoute},
		"invalid token": {cookie: "stale", authenticated: false, redirect: domain.LoginRoute},
		"valid token":   {cookie: "good-token", authenticated: true, redirect: domain.DashboardRoute},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "admin_token", Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			if err := newAuthHandler(&stubAuth{}).Session(e.NewContext(req, rec)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			data, _ := decodeBody(t, rec)["data"].(map[string]any)
			if data["authenticated"] != tc.authenticated || data["redirect"] != tc.redirect {
				t.Fatalf("expected authenticated=%v redirect=%s, got %v", tc.authenticated, tc.redirect, data)
			}
		})
	}
}

func TestConsoleHandlerRejectsMissingToken(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ws/console", nil)
	rec := httptest.NewRecorder()
	handler := NewConsoleHandler(infrastructure.NewHub(), NewSessionRegistry(), stubValidator{}, nil, ConsoleConfig{TokenCookie: "admin_token"})

	err := handler(e.NewContext(req, rec))

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	body, _ := httpErr.Message.(map[string]any)
	if body["redirect"] != domain.LoginRoute {
		t.Fatalf("expected redirect to %s, got %v", domain.LoginRoute, body)
	}
}

func TestConsoleWebsocketOpensPage(t *testing.T) {
	users := &stubUsers{}
	services := func(_ auth.TokenStore, onUnauthorized func()) port.Services {
		users.expire = onUnauthorized
		return port.Services{Users: users}
	}
	sessions := NewSessionRegistry()
	e := echo.New()
	e.GET("/ws/console", NewConsoleHandler(infrastructure.NewHub(), sessions, stubValidator{}, services, ConsoleConfig{
		TokenCookie: "admin_token",
		SendBuffer:  16,
		Session:     SessionConfig{StaleTime: time.Minute, ToastTTL: time.Minute},
	}))
	server := httptest.NewServer(e)
	defer server.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer good-token")
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/console", header)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	readUntil := func(topic string) console.Message {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		for {
			var msg console.Message
			if err := conn.ReadJSON(&msg); err != nil {
				t.Fatalf("waiting for %s: %v", topic, err)
			}
			if msg.Topic == topic {
				return msg
			}
		}
	}

	connected := readUntil(console.TopicSystemConnected)
	if connected.Metadata["operatorId"] != "op1" {
		t.Fatalf("expected operator op1, got %v", connected.Metadata)
	}
	if sessions.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", sessions.Len())
	}

	if err := conn.WriteJSON(infrastructure.Command{Action: "open", Topic: "users"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	for {
		list := readUntil("users.list")
		data, _ := list.Data.(map[string]any)
		if data["state"] == string(console.ViewSuccess) {
			break
		}
	}
}
