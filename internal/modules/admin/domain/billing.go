package domain

import (
	"impactAdminWs/internal/shared/normalization"
	"impactAdminWs/internal/shared/validation"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID        string        `json:"_id"`
	User      string        `json:"user"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	Plan      string        `json:"plan"`
	Status    PaymentStatus `json:"status"`
	CreatedAt string        `json:"createdAt,omitempty"`
}

type SubscriptionPlan string

const (
	PlanFree SubscriptionPlan = "free"
	PlanGold SubscriptionPlan = "gold"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionExpired  SubscriptionStatus = "expired"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

type Subscription struct {
	Plan      SubscriptionPlan   `json:"plan"`
	Status    SubscriptionStatus `json:"status"`
	ExpiresAt *string            `json:"expiresAt,omitempty"`
}

// Subscriber is one row of the subscriptions page.
type Subscriber struct {
	ID           string        `json:"_id"`
	Name         string        `json:"name,omitempty"`
	Email        string        `json:"email,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// SubscriptionPatch changes only the fields that are set. ClearExpiry sends an
// explicit null expiry.
type SubscriptionPatch struct {
	Plan        SubscriptionPlan   `json:"plan,omitempty" validate:"omitempty,oneof=free gold"`
	Status      SubscriptionStatus `json:"status,omitempty" validate:"omitempty,oneof=active expired canceled"`
	ExpiresAt   *string            `json:"expiresAt,omitempty"`
	ClearExpiry bool               `json:"clearExpiry,omitempty"`
}

// Body renders the PATCH body, keeping an explicit null expiry when asked.
func (p SubscriptionPatch) Body() map[string]any {
	body := make(map[string]any, 3)
	if p.Plan != "" {
		body["plan"] = p.Plan
	}
	if p.Status != "" {
		body["status"] = p.Status
	}
	switch {
	case p.ExpiresAt != nil:
		body["expiresAt"] = *p.ExpiresAt
	case p.ClearExpiry:
		body["expiresAt"] = nil
	}
	return body
}

type UpdateSubscriptionInput struct {
	UserID string            `json:"userId" validate:"required"`
	Patch  SubscriptionPatch `json:"patch"`
}

func (in UpdateSubscriptionInput) Validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if len(in.Patch.Body()) == 0 {
		return validation.Fail("patch", "patch must change plan, status or expiresAt")
	}
	return nil
}

type RedemptionStatus string

const (
	RedemptionPending  RedemptionStatus = "pending"
	RedemptionApproved RedemptionStatus = "approved"
	RedemptionRejected RedemptionStatus = "rejected"
	RedemptionPaid     RedemptionStatus = "paid"
)

type Redemption struct {
	ID           string                          `json:"_id"`
	User         normalization.Reference[Person] `json:"user"`
	Points       int                             `json:"points"`
	Amount       float64                         `json:"amount"`
	Status       RedemptionStatus                `json:"status"`
	PayoutMethod string                          `json:"payoutMethod,omitempty"`
	Note         string                          `json:"note,omitempty"`
	CreatedAt    string                          `json:"createdAt,omitempty"`
}

type UpdateRedemptionInput struct {
	ID     string           `json:"id" validate:"required"`
	Status RedemptionStatus `json:"status" validate:"required,oneof=pending approved rejected paid"`
}

func (in UpdateRedemptionInput) Validate() error { return validation.Struct(in) }
