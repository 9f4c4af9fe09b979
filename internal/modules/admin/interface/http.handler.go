package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/domain"
	admininfra "impactAdminWs/internal/modules/admin/infrastructure"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/modules/console/infrastructure"
	"impactAdminWs/internal/platform/apiclient"
	"impactAdminWs/internal/shared/auth"
	"impactAdminWs/internal/shared/httputil"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ConsoleConfig is what the websocket endpoint needs beyond its collaborators.
type ConsoleConfig struct {
	TokenCookie string
	SendBuffer  int
	Session     SessionConfig
}

// NewRESTServices builds a ServicesFactory talking to the REST API at baseURL.
func NewRESTServices(baseURL string, opts ...apiclient.Option) ServicesFactory {
	return func(tokens auth.TokenStore, onUnauthorized func()) port.Services {
		all := make([]apiclient.Option, 0, len(opts)+1)
		all = append(all, opts...)
		all = append(all, apiclient.WithUnauthorizedHandler(onUnauthorized))
		return admininfra.NewServices(apiclient.New(baseURL, tokens, all...))
	}
}

var authErrors = httputil.NewErrorMapper().
	WithMapping(auth.ErrMissingToken, http.StatusUnauthorized, "missing token").
	WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token").
	WithMapping(auth.ErrForbiddenRole, http.StatusForbidden, "forbidden").
	WithDefault(http.StatusUnauthorized, "unauthorized")

// rejectUnauthenticated answers like the console's own guard: the client is
// sent back to the login screen.
func rejectUnauthenticated(err error) *echo.HTTPError {
	info := authErrors.Map(err)
	return echo.NewHTTPError(info.Status, map[string]any{
		"success":  false,
		"message":  info.Message,
		"redirect": domain.LoginRoute,
	}).SetInternal(err)
}

// authenticate resolves the operator token from header, cookie or query.
func authenticate(r *http.Request, validator auth.TokenValidator, cookieName string) (string, *auth.Claims, error) {
	token := auth.ExtractToken(r, cookieName)
	if token == "" {
		return "", nil, auth.ErrMissingToken
	}
	claims, err := validator.Validate(token)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// NewConsoleHandler exposes /ws/console. Each connection gets its own session
// with a private cache, toast list and REST client.
func NewConsoleHandler(
	hub *infrastructure.Hub,
	sessions *SessionRegistry,
	validator auth.TokenValidator,
	services ServicesFactory,
	cfg ConsoleConfig,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		token, claims, err := authenticate(c.Request(), validator, cfg.TokenCookie)
		if err != nil {
			slog.Warn("console ws auth failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			logger.Warnf("console ws rejected ip=%s reqID=%s: %v", peerIP, requestID, err)
			return rejectUnauthenticated(err)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("console ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			logger.Errorf("console ws upgrade failed ip=%s reqID=%s: %v", peerIP, requestID, err)
			return err
		}

		operatorID := claims.OperatorID()
		sessionID := uuid.NewString()

		var session *Session
		client := infrastructure.NewClient(hub, conn, operatorID, sessionID, cfg.SendBuffer,
			func(ctx context.Context, _ *infrastructure.Client, cmd infrastructure.Command) {
				session.Handle(ctx, cmd)
			})
		session = NewSession(sessionID, operatorID, token, client, services, cfg.Session)
		sessions.Add(session)
		client.AddCloseHook(func(*infrastructure.Client) {
			sessions.Remove(sessionID)
			slog.Info("console session closed", slog.String("sessionId", sessionID), slog.String("operatorId", operatorID))
		})

		hub.AttachClient(client, changedTopics())

		go client.WritePump()
		go client.ReadPump()

		session.Start()
		slog.Info("console session opened", slog.String("sessionId", sessionID), slog.String("operatorId", operatorID), slog.String("role", claims.Role))
		logger.Infof("console connected operator=%s session=%s ip=%s reqID=%s", operatorID, sessionID, peerIP, requestID)
		return nil
	}
}

// changedTopics are the relay topics every console client listens to.
func changedTopics() []string {
	resources := domain.Resources()
	topics := make([]string, 0, len(resources))
	for _, resource := range resources {
		topics = append(topics, console.ChangedTopic(resource))
	}
	return topics
}

// NewHealthHandler reports liveness and the number of open sessions.
func NewHealthHandler(sessions *SessionRegistry) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": sessions.Len(),
		})
	}
}
