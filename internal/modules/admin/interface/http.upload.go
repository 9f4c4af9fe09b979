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
)

const (
	avatarField   = "file"
	uploadTimeout = 30 * time.Second
)

var uploadErrors = httputil.NewErrorMapper().
	WithMapping(apiclient.ErrUnauthorized, http.StatusUnauthorized, "").
	WithMapping(apiclient.ErrBadRequest, http.StatusBadRequest, "").
	WithMapping(apiclient.ErrForbidden, http.StatusForbidden, "").
	WithMapping(apiclient.ErrRejected, http.StatusBadRequest, "").
	WithMapping(apiclient.ErrTransport, http.StatusBadGateway, "api unavailable").
	WithMapping(apiclient.ErrServer, http.StatusBadGateway, "api unavailable").
	WithDefault(http.StatusInternalServerError, "upload failed")

// NewAvatarUploadHandler forwards a multipart avatar to the REST API. With a
// ?session= of the same operator the upload runs through that console session,
// so its profile view refreshes and the toast shows there.
func NewAvatarUploadHandler(sessions *SessionRegistry, validator auth.TokenValidator, services ServicesFactory, cookieName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, claims, err := authenticate(c.Request(), validator, cookieName)
		if err != nil {
			return rejectUnauthenticated(err)
		}

		header, err := c.FormFile(avatarField)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "missing file",
			})
		}
		file, err := header.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"success": false,
				"message": "unreadable file",
			})
		}
		defer file.Close()

		uploader := usecase.NewAvatarUploader(nil, services(auth.NewMemoryTokenStore(token), func() {}).Uploads, nil)
		if session, ok := sessions.Get(c.QueryParam("session")); ok && session.OperatorID() == claims.OperatorID() {
			uploader = session.Uploader()
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), uploadTimeout)
		defer cancel()

		url, err := uploader.Upload(ctx, usecase.AvatarFile{Filename: header.Filename, Content: file})
		if err != nil {
			slog.Warn("avatar upload failed", slog.String("operatorId", claims.OperatorID()), slog.Any("error", err))
			return uploadErrors.HTTPError(err)
		}
		slog.Info("avatar uploaded", slog.String("operatorId", claims.OperatorID()), slog.String("filename", header.Filename))
		return c.JSON(http.StatusOK, map[string]any{
			"success": true,
			"data":    domain.AvatarUpload{URL: url},
		})
	}
}
