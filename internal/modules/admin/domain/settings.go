package domain

import "impactAdminWs/internal/shared/validation"

type Profile struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type Settings struct {
	RegistrationEnabled  bool    `json:"registrationEnabled"`
	MaintenanceMessage   string  `json:"maintenanceMessage"`
	InviteSignupPoints   int     `json:"inviteSignupPoints" validate:"gte=0"`
	InviteGoldPoints     int     `json:"inviteGoldPoints" validate:"gte=0"`
	PointsToCurrencyRate float64 `json:"pointsToCurrencyRate" validate:"gte=0"`
	MinRedeemPoints      int     `json:"minRedeemPoints" validate:"gte=0"`
}

func (s Settings) Validate() error { return validation.Struct(s) }

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
}

func (p PasswordChange) Validate() error { return validation.Struct(p) }
