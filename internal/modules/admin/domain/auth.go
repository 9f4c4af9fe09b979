package domain

import "impactAdminWs/internal/shared/validation"

const (
	LoginRoute     = "/login"
	DashboardRoute = "/admin/dashboard"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c Credentials) Validate() error { return validation.Struct(c) }

type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is what the login endpoint returns.
type Session struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	User         SessionUser `json:"user"`
}

// RedirectFor returns where the console should send an operator with or without a token.
func RedirectFor(hasToken bool) string {
	if hasToken {
		return DashboardRoute
	}
	return LoginRoute
}

type AvatarUpload struct {
	URL string `json:"url"`
}
