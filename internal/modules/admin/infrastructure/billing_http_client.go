package infrastructure

import (
	"context"
	"fmt"
	"net/http"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/domain"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/apiclient"
)

type PaymentsHTTPClient struct {
	rest *apiclient.Client
}

func NewPaymentsHTTPClient(rest *apiclient.Client) *PaymentsHTTPClient {
	return &PaymentsHTTPClient{rest: rest}
}

func (c *PaymentsHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.Payment], error) {
	path, err := listPath("payments", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.Payment]](ctx, c.rest, path, queryValues("payments", query))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return page, nil
}

type SubscriptionsHTTPClient struct {
	rest *apiclient.Client
}

func NewSubscriptionsHTTPClient(rest *apiclient.Client) *SubscriptionsHTTPClient {
	return &SubscriptionsHTTPClient{rest: rest}
}

func (c *SubscriptionsHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.Subscriber], error) {
	path, err := listPath("subscriptions", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.Subscriber]](ctx, c.rest, path, queryValues("subscriptions", query))
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return page, nil
}

// Update patches the subscription embedded in the user record.
func (c *SubscriptionsHTTPClient) Update(ctx context.Context, userID string, patch domain.SubscriptionPatch) error {
	path, err := detailPath("user-subscription", userID)
	if err != nil {
		return err
	}
	if err := apiclient.Exec(ctx, c.rest, http.MethodPatch, path, patch.Body()); err != nil {
		return fmt.Errorf("update subscription of %s: %w", userID, err)
	}
	return nil
}

type RewardsHTTPClient struct {
	rest *apiclient.Client
}

func NewRewardsHTTPClient(rest *apiclient.Client) *RewardsHTTPClient {
	return &RewardsHTTPClient{rest: rest}
}

func (c *RewardsHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.Redemption], error) {
	path, err := listPath("rewards", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.Redemption]](ctx, c.rest, path, queryValues("rewards", query))
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	return page, nil
}

func (c *RewardsHTTPClient) UpdateStatus(ctx context.Context, id string, status domain.RedemptionStatus) (domain.Redemption, error) {
	path, err := detailPath("rewards", id)
	if err != nil {
		return domain.Redemption{}, err
	}
	redemption, err := apiclient.Send[domain.Redemption](ctx, c.rest, http.MethodPatch, path, map[string]any{"status": status})
	if err != nil {
		return domain.Redemption{}, fmt.Errorf("update redemption %s: %w", id, err)
	}
	return redemption, nil
}

var (
	_ port.PaymentService      = (*PaymentsHTTPClient)(nil)
	_ port.SubscriptionService = (*SubscriptionsHTTPClient)(nil)
	_ port.RewardService       = (*RewardsHTTPClient)(nil)
)
