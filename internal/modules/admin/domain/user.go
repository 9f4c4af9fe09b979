package domain

import (
	"strings"

	"impactAdminWs/internal/shared/validation"
)

type Role string

const (
	RoleUser           Role = "user"
	RolePartnerRequest Role = "partner_request"
	RolePartner        Role = "partner"
	RoleAdmin          Role = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusPending   UserStatus = "pending"
	UserStatusSuspended UserStatus = "suspended"
)

type MembershipTier string

const (
	MembershipFree MembershipTier = "free"
	MembershipGold MembershipTier = "gold"
)

// IsPartnerRole reports whether role belongs on the partners page.
func IsPartnerRole(role Role) bool {
	return role == RolePartner || role == RolePartnerRequest
}

// Person is the short user shape embedded in courses, posts, tickets and bookings.
type Person struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

func (p Person) Identifier() string { return p.ID }

// Label is the best human name for the person.
func (p Person) Label() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if p.Email != "" {
		return p.Email
	}
	return p.ID
}

type UserSubscription struct {
	Plan      string  `json:"plan,omitempty"`
	Status    string  `json:"status,omitempty"`
	ExpiresAt *string `json:"expiresAt,omitempty"`
}

type User struct {
	ID                  string            `json:"_id"`
	Name                string            `json:"name"`
	Email               string            `json:"email"`
	Phone               string            `json:"phone,omitempty"`
	Role                Role              `json:"role"`
	Status              UserStatus        `json:"status"`
	Rewards             int               `json:"rewards,omitempty"`
	MembershipTier      string            `json:"membershipTier,omitempty"`
	IsSuspended         bool              `json:"isSuspended,omitempty"`
	Avatar              string            `json:"avatar,omitempty"`
	CoursesCreatedCount int               `json:"coursesCreatedCount,omitempty"`
	EventBookingsCount  int               `json:"eventBookingsCount,omitempty"`
	Subscription        *UserSubscription `json:"subscription,omitempty"`
	CreatedAt           string            `json:"createdAt,omitempty"`
	UpdatedAt           string            `json:"updatedAt,omitempty"`
}

type CreateUserInput struct {
	Name           string         `json:"name" validate:"required"`
	Email          string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string         `json:"phone,omitempty"`
	Role           Role           `json:"role" validate:"required,oneof=user partner_request partner admin"`
	Status         UserStatus     `json:"status,omitempty" validate:"omitempty,oneof=active pending suspended"`
	MembershipTier MembershipTier `json:"membershipTier,omitempty" validate:"omitempty,oneof=free gold"`
	Password       string         `json:"password,omitempty" validate:"omitempty,min=8"`
}

func (in CreateUserInput) Validate() error {
	if strings.TrimSpace(in.Email) == "" && strings.TrimSpace(in.Phone) == "" {
		return validation.Fail("email", "email or phone is required")
	}
	return validation.Struct(in)
}

type UpdateRoleInput struct {
	ID   string `json:"id" validate:"required"`
	Role Role   `json:"role" validate:"required,oneof=user partner_request partner admin"`
}

func (in UpdateRoleInput) Validate() error { return validation.Struct(in) }

type UpdateStatusInput struct {
	ID     string     `json:"id" validate:"required"`
	Status UserStatus `json:"status" validate:"required,oneof=active pending suspended"`
}

func (in UpdateStatusInput) Validate() error { return validation.Struct(in) }

type UpdateMembershipInput struct {
	ID             string         `json:"id" validate:"required"`
	MembershipTier MembershipTier `json:"membershipTier" validate:"required,oneof=free gold"`
}

func (in UpdateMembershipInput) Validate() error { return validation.Struct(in) }
