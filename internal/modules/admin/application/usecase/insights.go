package usecase

import (
	"context"

	"impactAdminWs/internal/modules/admin/domain"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
)

// DashboardPage shows the platform totals.
type DashboardPage struct {
	Stats *cusecase.EntityQuery[domain.DashboardStats]
}

func NewDashboardPage(ctx context.Context, deps Deps) *DashboardPage {
	analytics := deps.Services.Analytics
	return &DashboardPage{
		Stats: cusecase.NewEntityQuery(ctx, deps.Cache, domain.ResourceStats, domain.DashboardStatsDetailID,
			func(ctx context.Context, _ string) (domain.DashboardStats, error) {
				return analytics.Stats(ctx)
			}),
	}
}

func (p *DashboardPage) Close() { p.Stats.Close() }

type AuditLogsPage struct {
	List *cusecase.ListQuery[domain.AuditLog]
}

func NewAuditLogsPage(ctx context.Context, deps Deps, initial *console.FilterState) *AuditLogsPage {
	return &AuditLogsPage{
		List: newList(ctx, deps, domain.ResourceAuditLogs, initialOr(initial, domain.DefaultListLimit), deps.Services.AuditLogs.List),
	}
}

func (p *AuditLogsPage) Close() { p.List.Close() }

// AnalyticsPage lists partner earnings.
type AnalyticsPage struct {
	List *cusecase.ListQuery[domain.PartnerEarnings]
}

func NewAnalyticsPage(ctx context.Context, deps Deps, initial *console.FilterState) *AnalyticsPage {
	return &AnalyticsPage{
		List: newList(ctx, deps, domain.ResourceAnalytics, initialOr(initial, domain.PartnerEarningsLimit), deps.Services.Analytics.PartnerEarnings),
	}
}

func (p *AnalyticsPage) Close() { p.List.Close() }
