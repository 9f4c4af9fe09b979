package infrastructure

import (
	"fmt"
	"net/url"
	"strings"

	"impactAdminWs/internal/modules/admin/application/port"
	console "impactAdminWs/internal/modules/console/domain"
)

type pathBuilder func(string) (string, error)

type endpoint struct {
	listPath      pathBuilder
	detailPath    pathBuilder
	filterAliases map[string]string
}

var endpoints = map[string]endpoint{
	"users": {
		listPath:   staticPathBuilder("/api/v1/admin/users"),
		detailPath: resourcePathBuilder("/api/v1/admin/users"),
	},
	"user-subscription": {
		detailPath: requiredValuePathBuilder("/api/v1/admin/users/%s/subscription"),
	},
	"courses": {
		listPath:   staticPathBuilder("/api/v1/admin/courses"),
		detailPath: resourcePathBuilder("/api/v1/admin/courses"),
		filterAliases: map[string]string{
			"pricetype": "priceType",
		},
	},
	"partner-courses": {
		listPath: requiredValuePathBuilder("/api/v1/admin/partners/%s/courses"),
	},
	"events": {
		listPath:   staticPathBuilder("/api/v1/admin/events"),
		detailPath: resourcePathBuilder("/api/v1/admin/events"),
	},
	"events-public": {
		listPath: staticPathBuilder("/api/v1/events"),
	},
	"bookings": {
		listPath:   staticPathBuilder("/api/v1/admin/bookings"),
		detailPath: resourcePathBuilder("/api/v1/admin/bookings"),
		filterAliases: map[string]string{
			"eventid": "event",
			"userid":  "user",
		},
	},
	"payments": {
		listPath: staticPathBuilder("/api/v1/admin/payments"),
	},
	"subscriptions": {
		listPath: staticPathBuilder("/api/v1/admin/subscriptions"),
	},
	"rewards": {
		listPath:   staticPathBuilder("/api/v1/admin/rewards/redemptions"),
		detailPath: resourcePathBuilder("/api/v1/admin/rewards/redemptions"),
	},
	"support": {
		listPath:   staticPathBuilder("/api/v1/admin/support/tickets"),
		detailPath: resourcePathBuilder("/api/v1/admin/support/tickets"),
	},
	"support-public": {
		detailPath: resourcePathBuilder("/api/v1/support/tickets"),
	},
	"posts": {
		listPath:   staticPathBuilder("/api/v1/admin/posts"),
		detailPath: resourcePathBuilder("/api/v1/admin/posts"),
	},
	"audit-logs": {
		listPath: staticPathBuilder("/api/v1/admin/audit-logs"),
	},
	"analytics": {
		listPath: staticPathBuilder("/api/v1/admin/analytics/partners-earnings"),
	},
}

const (
	pathPostsBulkStatus    = "/api/v1/admin/posts/bulk-status"
	pathStats              = "/api/v1/admin/stats"
	pathSettings           = "/api/v1/admin/settings"
	pathProfile            = "/api/v1/admin/me"
	pathPassword           = "/api/v1/admin/me/password"
	pathNotificationSingle = "/api/v1/notifications/test"
	pathNotificationAll    = "/api/v1/notifications/broadcast"
	pathAvatarUpload       = "/api/v1/uploads/avatar"
	pathLogin              = "/api/v1/admin/login"
)

func staticPathBuilder(path string) pathBuilder {
	trimmed := strings.TrimSpace(path)
	return func(string) (string, error) {
		if trimmed == "" {
			return "", fmt.Errorf("missing path configuration")
		}
		return trimmed, nil
	}
}

func requiredValuePathBuilder(format string) pathBuilder {
	trimmed := strings.TrimSpace(format)
	return func(value string) (string, error) {
		identifier := strings.TrimSpace(value)
		if identifier == "" {
			return "", port.ErrMissingID
		}
		return fmt.Sprintf(trimmed, url.PathEscape(identifier)), nil
	}
}

func resourcePathBuilder(base string) pathBuilder {
	trimmed := strings.TrimSpace(base)
	return func(value string) (string, error) {
		identifier := strings.TrimSpace(value)
		if identifier == "" {
			return "", port.ErrMissingID
		}
		return strings.TrimRight(trimmed, "/") + "/" + url.PathEscape(identifier), nil
	}
}

func lookup(resource string) endpoint {
	e, ok := endpoints[resource]
	if !ok {
		panic("admin endpoint not configured: " + resource)
	}
	return e
}

func listPath(resource, value string) (string, error) {
	return lookup(resource).listPath(value)
}

func detailPath(resource, id string) (string, error) {
	return lookup(resource).detailPath(id)
}

// actionPath builds "<detail>/<action>", e.g. /api/v1/admin/users/42/role.
func actionPath(resource, id, action string) (string, error) {
	path, err := detailPath(resource, id)
	if err != nil {
		return "", err
	}
	return path + "/" + action, nil
}

func (e endpoint) mapFilterKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}
	if len(e.filterAliases) == 0 {
		return trimmed
	}
	aliased, ok := e.filterAliases[strings.ToLower(trimmed)]
	if !ok {
		return trimmed
	}
	return strings.TrimSpace(aliased)
}

// queryValues renders the filter state the same way for every resource.
func queryValues(resource string, query console.FilterState) url.Values {
	return query.ToURLValues(lookup(resource).mapFilterKey)
}
