package usecase

import (
	"context"

	"impactAdminWs/internal/modules/admin/domain"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
)

// PaymentsPage is read only.
type PaymentsPage struct {
	List *cusecase.ListQuery[domain.Payment]
}

func NewPaymentsPage(ctx context.Context, deps Deps, initial *console.FilterState) *PaymentsPage {
	return &PaymentsPage{
		List: newList(ctx, deps, domain.ResourcePayments, initialOr(initial, domain.DefaultListLimit), deps.Services.Payments.List),
	}
}

func (p *PaymentsPage) Close() { p.List.Close() }

type SubscriptionsPage struct {
	List   *cusecase.ListQuery[domain.Subscriber]
	update *cusecase.Mutation[domain.UpdateSubscriptionInput, empty]
}

func NewSubscriptionsPage(ctx context.Context, deps Deps, initial *console.FilterState) *SubscriptionsPage {
	subscriptions := deps.Services.Subscriptions

	opts := options[domain.UpdateSubscriptionInput, empty]("subscriptions.update", textSubscription)
	opts.Validate = domain.UpdateSubscriptionInput.Validate
	opts.Invalidate = invalidate[domain.UpdateSubscriptionInput, empty](domain.ResourceSubscriptions, domain.ResourceUsers)

	return &SubscriptionsPage{
		List: newList(ctx, deps, domain.ResourceSubscriptions, initialOr(initial, domain.DefaultListLimit), subscriptions.List),
		update: cusecase.NewMutation(deps.Cache, deps.Toasts, discard(func(ctx context.Context, in domain.UpdateSubscriptionInput) error {
			return subscriptions.Update(ctx, in.UserID, in.Patch)
		}), opts),
	}
}

func (p *SubscriptionsPage) Update(ctx context.Context, in domain.UpdateSubscriptionInput) error {
	_, err := p.update.Mutate(ctx, in)
	return err
}

func (p *SubscriptionsPage) Close() { p.List.Close() }

// RewardsPage lists point redemptions, twenty to a page.
type RewardsPage struct {
	List   *cusecase.ListQuery[domain.Redemption]
	update *cusecase.Mutation[domain.UpdateRedemptionInput, domain.Redemption]
}

func NewRewardsPage(ctx context.Context, deps Deps, initial *console.FilterState) *RewardsPage {
	rewards := deps.Services.Rewards

	opts := options[domain.UpdateRedemptionInput, domain.Redemption]("rewards.update_status", textRedemption)
	opts.Validate = domain.UpdateRedemptionInput.Validate
	opts.Invalidate = invalidate[domain.UpdateRedemptionInput, domain.Redemption](domain.ResourceRewards)

	return &RewardsPage{
		List: newList(ctx, deps, domain.ResourceRewards, initialOr(initial, domain.RedemptionsListLimit), rewards.List),
		update: cusecase.NewMutation(deps.Cache, deps.Toasts, func(ctx context.Context, in domain.UpdateRedemptionInput) (domain.Redemption, error) {
			return rewards.UpdateStatus(ctx, in.ID, in.Status)
		}, opts),
	}
}

func (p *RewardsPage) UpdateStatus(ctx context.Context, in domain.UpdateRedemptionInput) (domain.Redemption, error) {
	return p.update.Mutate(ctx, in)
}

func (p *RewardsPage) Close() { p.List.Close() }
