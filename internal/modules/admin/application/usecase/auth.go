package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/domain"
)

// AuthUseCase signs an operator in against the REST API.
type AuthUseCase struct {
	auth port.AuthService
}

func NewAuthUseCase(auth port.AuthService) *AuthUseCase {
	return &AuthUseCase{auth: auth}
}

// Login validates the credentials before calling the API and returns the
// session together with the route the console should open next.
func (uc *AuthUseCase) Login(ctx context.Context, credentials domain.Credentials) (domain.Session, string, error) {
	if err := credentials.Validate(); err != nil {
		return domain.Session{}, domain.LoginRoute, err
	}
	session, err := uc.auth.Login(ctx, credentials)
	if err != nil {
		slog.Info("admin login rejected", slog.String("email", credentials.Email), slog.Any("error", err))
		return domain.Session{}, domain.LoginRoute, fmt.Errorf("admin login: %w", err)
	}
	return session, domain.RedirectFor(true), nil
}
