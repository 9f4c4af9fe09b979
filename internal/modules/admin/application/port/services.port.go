package port

import (
	"context"
	"errors"
	"io"

	"impactAdminWs/internal/modules/admin/domain"
	console "impactAdminWs/internal/modules/console/domain"
)

// ErrMissingID is returned before any request when a call needs an id and got none.
var ErrMissingID = errors.New("missing resource id")

type UserService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.User], error)
	Get(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, in domain.CreateUserInput) (domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (domain.User, error)
	UpdateMembership(ctx context.Context, id string, tier domain.MembershipTier) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

type CourseService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.Course], error)
	Get(ctx context.Context, id string) (domain.Course, error)
	Create(ctx context.Context, in domain.CreateCourseInput) (domain.Course, error)
	Update(ctx context.Context, id string, patch domain.CoursePatch) (domain.Course, error)
	Delete(ctx context.Context, id string) error
	ListByPartner(ctx context.Context, partnerID string) ([]domain.Course, error)
}

type EventService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.Event], error)
	Get(ctx context.Context, id string) (domain.Event, error)
	Create(ctx context.Context, in domain.CreateEventInput) (domain.Event, error)
	Update(ctx context.Context, id string, patch domain.EventPatch) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type BookingService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.Booking], error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

type PaymentService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.Payment], error)
}

type SubscriptionService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.Subscriber], error)
	Update(ctx context.Context, userID string, patch domain.SubscriptionPatch) error
}

type RewardService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.Redemption], error)
	UpdateStatus(ctx context.Context, id string, status domain.RedemptionStatus) (domain.Redemption, error)
}

type SupportService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.Ticket], error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
	Get(ctx context.Context, id string) (domain.TicketDetail, error)
	Reply(ctx context.Context, id, message string) (domain.TicketDetail, error)
}

type PostService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.Post], error)
	UpdateStatus(ctx context.Context, id string, status domain.PostStatus) (domain.Post, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.PostStatus) (domain.BulkResult, error)
}

type AuditLogService interface {
	List(ctx context.Context, query console.FilterState) (*console.Page[domain.AuditLog], error)
}

type AnalyticsService interface {
	PartnerEarnings(ctx context.Context, query console.FilterState) (*console.Page[domain.PartnerEarnings], error)
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) (domain.Settings, error)
	Profile(ctx context.Context) (domain.Profile, error)
	UpdatePassword(ctx context.Context, change domain.PasswordChange) error
}

type NotificationService interface {
	Send(ctx context.Context, notification domain.Notification) error
}

type UploadService interface {
	UploadAvatar(ctx context.Context, filename string, content io.Reader) (string, error)
}

type AuthService interface {
	Login(ctx context.Context, credentials domain.Credentials) (domain.Session, error)
}

// Services bundles every resource service a console session needs.
type Services struct {
	Users         UserService
	Courses       CourseService
	Events        EventService
	Bookings      BookingService
	Payments      PaymentService
	Subscriptions SubscriptionService
	Rewards       RewardService
	Support       SupportService
	Posts         PostService
	AuditLogs     AuditLogService
	Analytics     AnalyticsService
	Settings      SettingsService
	Notifications NotificationService
	Uploads       UploadService
}
