package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/domain"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/apiclient"
)

type AuditLogsHTTPClient struct {
	rest *apiclient.Client
}

func NewAuditLogsHTTPClient(rest *apiclient.Client) *AuditLogsHTTPClient {
	return &AuditLogsHTTPClient{rest: rest}
}

func (c *AuditLogsHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.AuditLog], error) {
	path, err := listPath("audit-logs", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.AuditLog]](ctx, c.rest, path, queryValues("audit-logs", query))
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return page, nil
}

type AnalyticsHTTPClient struct {
	rest *apiclient.Client
}

func NewAnalyticsHTTPClient(rest *apiclient.Client) *AnalyticsHTTPClient {
	return &AnalyticsHTTPClient{rest: rest}
}

func (c *AnalyticsHTTPClient) PartnerEarnings(ctx context.Context, query console.FilterState) (*console.Page[domain.PartnerEarnings], error) {
	path, err := listPath("analytics", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.PartnerEarnings]](ctx, c.rest, path, queryValues("analytics", query))
	if err != nil {
		return nil, fmt.Errorf("list partner earnings: %w", err)
	}
	return page, nil
}

// Stats tolerates an empty payload and reports zeros.
func (c *AnalyticsHTTPClient) Stats(ctx context.Context) (domain.DashboardStats, error) {
	stats, err := apiclient.Get[*domain.DashboardStats](ctx, c.rest, pathStats, nil)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("get stats: %w", err)
	}
	if stats == nil {
		return domain.DashboardStats{}.WithDefaults(), nil
	}
	return stats.WithDefaults(), nil
}

type SettingsHTTPClient struct {
	rest *apiclient.Client
}

func NewSettingsHTTPClient(rest *apiclient.Client) *SettingsHTTPClient {
	return &SettingsHTTPClient{rest: rest}
}

func (c *SettingsHTTPClient) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := apiclient.Get[domain.Settings](ctx, c.rest, pathSettings, nil)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (c *SettingsHTTPClient) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	updated, err := apiclient.Send[domain.Settings](ctx, c.rest, http.MethodPut, pathSettings, settings)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return updated, nil
}

func (c *SettingsHTTPClient) Profile(ctx context.Context) (domain.Profile, error) {
	profile, err := apiclient.Get[domain.Profile](ctx, c.rest, pathProfile, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (c *SettingsHTTPClient) UpdatePassword(ctx context.Context, change domain.PasswordChange) error {
	if err := apiclient.Exec(ctx, c.rest, http.MethodPatch, pathPassword, change); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

type NotificationsHTTPClient struct {
	rest *apiclient.Client
}

func NewNotificationsHTTPClient(rest *apiclient.Client) *NotificationsHTTPClient {
	return &NotificationsHTTPClient{rest: rest}
}

// Send posts to the single-user or broadcast endpoint depending on the audience.
func (c *NotificationsHTTPClient) Send(ctx context.Context, notification domain.Notification) error {
	path := pathNotificationSingle
	if notification.IsBroadcast() {
		path = pathNotificationAll
	} else if strings.TrimSpace(notification.UserID) == "" {
		return port.ErrMissingID
	}
	if err := apiclient.Exec(ctx, c.rest, http.MethodPost, path, notification); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

type UploadsHTTPClient struct {
	rest *apiclient.Client
}

func NewUploadsHTTPClient(rest *apiclient.Client) *UploadsHTTPClient {
	return &UploadsHTTPClient{rest: rest}
}

func (c *UploadsHTTPClient) UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error) {
	upload, err := apiclient.Upload[domain.AvatarUpload](ctx, c.rest, pathAvatarUpload, "file", filename, content)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return upload.URL, nil
}

type AuthHTTPClient struct {
	rest *apiclient.Client
}

func NewAuthHTTPClient(rest *apiclient.Client) *AuthHTTPClient {
	return &AuthHTTPClient{rest: rest}
}

func (c *AuthHTTPClient) Login(ctx context.Context, credentials domain.Credentials) (domain.Session, error) {
	session, err := apiclient.Send[domain.Session](ctx, c.rest, http.MethodPost, pathLogin, credentials)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if strings.TrimSpace(session.AccessToken) == "" {
		return domain.Session{}, fmt.Errorf("login: %w", apiclient.ErrRejected)
	}
	return session, nil
}

// NewServices wires every REST-backed service onto one client.
func NewServices(rest *apiclient.Client) port.Services {
	return port.Services{
		Users:         NewUsersHTTPClient(rest),
		Courses:       NewCoursesHTTPClient(rest),
		Events:        NewEventsHTTPClient(rest),
		Bookings:      NewBookingsHTTPClient(rest),
		Payments:      NewPaymentsHTTPClient(rest),
		Subscriptions: NewSubscriptionsHTTPClient(rest),
		Rewards:       NewRewardsHTTPClient(rest),
		Support:       NewSupportHTTPClient(rest),
		Posts:         NewPostsHTTPClient(rest),
		AuditLogs:     NewAuditLogsHTTPClient(rest),
		Analytics:     NewAnalyticsHTTPClient(rest),
		Settings:      NewSettingsHTTPClient(rest),
		Notifications: NewNotificationsHTTPClient(rest),
		Uploads:       NewUploadsHTTPClient(rest),
	}
}

var (
	_ port.AuditLogService     = (*AuditLogsHTTPClient)(nil)
	_ port.AnalyticsService    = (*AnalyticsHTTPClient)(nil)
	_ port.SettingsService     = (*SettingsHTTPClient)(nil)
	_ port.NotificationService = (*NotificationsHTTPClient)(nil)
	_ port.UploadService       = (*UploadsHTTPClient)(nil)
	_ port.AuthService         = (*AuthHTTPClient)(nil)
)
