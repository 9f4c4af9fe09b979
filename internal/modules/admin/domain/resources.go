package domain

// Resource names used as cache scopes and websocket entities.
const (
	ResourceUsers          = "users"
	ResourceCourses        = "courses"
	ResourcePartnerCourses = "partner-courses"
	ResourceEvents         = "events"
	ResourceBookings       = "bookings"
	ResourcePayments       = "payments"
	ResourceSubscriptions  = "subscriptions"
	ResourceRewards        = "rewards"
	ResourceSupport        = "support"
	ResourcePosts          = "posts"
	ResourceAuditLogs      = "audit-logs"
	ResourceAnalytics      = "analytics"
	ResourceSettings       = "settings"
	ResourceStats          = "stats"
)

// Default page sizes per list.
const (
	DefaultListLimit       = 10
	PostsListLimit         = 20
	RedemptionsListLimit   = 20
	PartnerEarningsLimit   = 10
	DashboardStatsDetailID = "dashboard"
	PlatformSettingsID     = "platform"
	AdminProfileID         = "me"
)

// Resources lists every resource that can receive change events.
func Resources() []string {
	return []string{
		ResourceUsers,
		ResourceCourses,
		ResourcePartnerCourses,
		ResourceEvents,
		ResourceBookings,
		ResourcePayments,
		ResourceSubscriptions,
		ResourceRewards,
		ResourceSupport,
		ResourcePosts,
		ResourceAuditLogs,
		ResourceAnalytics,
		ResourceSettings,
		ResourceStats,
	}
}
