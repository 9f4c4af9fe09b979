package normalization

import (
	"sort"
	"strings"
)

// entityAliases maps the names used by change events, commands and routes to the
// canonical resource name used for cache scopes.
var entityAliases = map[string]string{
	// Empty/default
	"":        "",
	"-":       "",
	"default": "",

	// Users and partners share the users resource.
	"user":             "users",
	"users":            "users",
	"partner":          "users",
	"partners":         "users",
	"partner-request":  "users",
	"partner-requests": "users",
	"member":           "users",
	"members":          "users",

	// Courses
	"course":          "courses",
	"courses":         "courses",
	"lesson":          "courses",
	"lessons":         "courses",
	"partner-course":  "partner-courses",
	"partner-courses": "partner-courses",

	// Events
	"event":  "events",
	"events": "events",

	// Bookings
	"booking":        "bookings",
	"bookings":       "bookings",
	"event-booking":  "bookings",
	"event-bookings": "bookings",

	// Payments
	"payment":  "payments",
	"payments": "payments",

	// Subscriptions
	"subscription":  "subscriptions",
	"subscriptions": "subscriptions",

	// Rewards
	"reward":             "rewards",
	"rewards":            "rewards",
	"redemption":         "rewards",
	"redemptions":        "rewards",
	"reward-redemption":  "rewards",
	"reward-redemptions": "rewards",

	// Support
	"support":         "support",
	"ticket":          "support",
	"tickets":         "support",
	"support-ticket":  "support",
	"support-tickets": "support",

	// Posts
	"post":  "posts",
	"posts": "posts",

	// Audit logs (multiple formats)
	"audit-log":  "audit-logs",
	"audit-logs": "audit-logs",
	"auditlog":   "audit-logs",
	"auditlogs":  "audit-logs",

	// Analytics
	"analytics":        "analytics",
	"earnings":         "analytics",
	"partner-earnings": "analytics",

	// Settings
	"setting":  "settings",
	"settings": "settings",
	"profile":  "settings",
	"me":       "settings",

	// Notifications
	"notification":  "notifications",
	"notifications": "notifications",

	// Dashboard stats
	"stats":     "stats",
	"dashboard": "stats",
}

// NormalizeEntity converts various entity name formats to their canonical form.
//
// Example:
//
//	NormalizeEntity("Redemption") => "rewards"
//	NormalizeEntity("AUDIT_LOG") => "audit-logs"
//	NormalizeEntity("partner") => "users"
func NormalizeEntity(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	normalized := strings.ReplaceAll(trimmed, "_", "-")

	if canonical, found := entityAliases[normalized]; found {
		return canonical
	}
	return normalized
}

// IsValidEntity checks if the given name resolves to a known resource.
func IsValidEntity(raw string) bool {
	normalized := NormalizeEntity(raw)
	if normalized == "" {
		return false
	}
	for _, canonical := range entityAliases {
		if canonical == normalized {
			return true
		}
	}
	return false
}

// GetAllValidEntities returns the sorted canonical resource names.
func GetAllValidEntities() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, canonical := range entityAliases {
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}
