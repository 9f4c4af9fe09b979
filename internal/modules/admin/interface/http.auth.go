package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"impactAdminWs/internal/modules/admin/application/usecase"
	"impactAdminWs/internal/modules/admin/domain"
	"impactAdminWs/internal/platform/apiclient"
	"impactAdminWs/internal/shared/auth"
	"impactAdminWs/internal/shared/httputil"
	"impactAdminWs/internal/shared/validation"
)

const loginTimeout = 10 * time.Second

// CookieConfig describes the cookie carrying the operator token.
type CookieConfig struct {
	Name   string
	Secure bool
}

var loginErrors = httputil.NewErrorMapper().
	WithMapping(validation.ErrInvalid, http.StatusBadRequest, "").
	WithMapping(apiclient.ErrUnauthorized, http.StatusUnauthorized, "invalid credentials").
	WithMapping(apiclient.ErrBadRequest, http.StatusBadRequest, "").
	WithMapping(apiclient.ErrForbidden, http.StatusForbidden, "").
	WithMapping(apiclient.ErrRejected, http.StatusUnauthorized, "").
	WithMapping(apiclient.ErrTransport, http.StatusBadGateway, "api unavailable").
	WithMapping(apiclient.ErrServer, http.StatusBadGateway, "api unavailable").
	WithDefault(http.StatusInternalServerError, "unable to sign in")

// AuthHandler serves the login flow the console's route guard relies on.
type AuthHandler struct {
	auth      *usecase.AuthUseCase
	validator auth.TokenValidator
	cookie    CookieConfig
}

func NewAuthHandler(authUC *usecase.AuthUseCase, validator auth.TokenValidator, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: authUC, validator: validator, cookie: cookie}
}

// Login exchanges credentials for a token and stores it in the cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var credentials domain.Credentials
	if err := c.Bind(&credentials); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "invalid payload",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), loginTimeout)
	defer cancel()

	session, redirect, err := h.auth.Login(ctx, credentials)
	if err != nil {
		slog.Warn("admin login failed", slog.String("ip", c.RealIP()), slog.Any("error", err))
		return loginErrors.HTTPError(err)
	}

	c.SetCookie(h.tokenCookie(session.AccessToken, 0))
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"user":     session.User,
			"redirect": redirect,
		},
	})
}

// Logout expires the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.tokenCookie("", -1))
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]string{"redirect": domain.LoginRoute},
	})
}

// Session tells the console where to go: the dashboard with a usable token,
// the login screen otherwise.
func (h *AuthHandler) Session(c echo.Context) error {
	_, claims, err := authenticate(c.Request(), h.validator, h.cookie.Name)
	authenticated := err == nil
	data := map[string]any{
		"authenticated": authenticated,
		"redirect":      domain.RedirectFor(authenticated),
	}
	if authenticated {
		data["operatorId"] = claims.OperatorID()
		data["role"] = claims.Role
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": data})
}

func (h *AuthHandler) tokenCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
