package transport

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/application/usecase"
	"impactAdminWs/internal/modules/admin/domain"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
)

// Page topics a client can open. Detail pages need an id.
const (
	PageDashboard      = "dashboard"
	PageUsers          = "users"
	PageUser           = "user"
	PagePartners       = "partners"
	PageCourses        = "courses"
	PageCourse         = "course"
	PagePartnerCourses = "partner-courses"
	PageEvents         = "events"
	PageEvent          = "event"
	PageBookings       = "bookings"
	PagePayments       = "payments"
	PageSubscriptions  = "subscriptions"
	PageRewards        = "rewards"
	PageSupport        = "support"
	PageTicket         = "ticket"
	PagePosts          = "posts"
	PageAuditLogs      = "audit-logs"
	PageAnalytics      = "analytics"
	PageSettings       = "settings"
	PageNotifications  = "notifications"
)

type listControls interface {
	Load(ctx context.Context) error
	Refetch(ctx context.Context) error
	SetQuery(ctx context.Context, updater console.Updater) error
	TypeSearch(text string)
}

type entityControls interface {
	Load(ctx context.Context) error
	Refetch(ctx context.Context) error
}

type pageAction func(ctx context.Context, payload json.RawMessage) error

// pageView is an open page as the session sees it.
type pageView struct {
	topic    string
	id       string
	list     listControls
	entities []entityControls
	actions  map[string]pageAction
	closer   func()
}

func newView(topic, id string, closer func()) *pageView {
	return &pageView{
		topic:   topic,
		id:      id,
		actions: make(map[string]pageAction),
		closer:  closer,
	}
}

func (v *pageView) on(action string, run pageAction) *pageView {
	v.actions[action] = run
	return v
}

func (v *pageView) load(ctx context.Context) error {
	var errs []error
	if v.list != nil {
		errs = append(errs, v.list.Load(ctx))
	}
	for _, entity := range v.entities {
		errs = append(errs, entity.Load(ctx))
	}
	return errors.Join(errs...)
}

func (v *pageView) refetch(ctx context.Context) error {
	var errs []error
	if v.list != nil {
		errs = append(errs, v.list.Refetch(ctx))
	}
	for _, entity := range v.entities {
		errs = append(errs, entity.Refetch(ctx))
	}
	return errors.Join(errs...)
}

func (v *pageView) close() {
	if v.closer != nil {
		v.closer()
	}
}

func bindList[T any](s *Session, view *pageView, q *cusecase.ListQuery[T], render func(cusecase.ListSnapshot[T]) any) {
	q.OnChange(func(snap cusecase.ListSnapshot[T]) {
		var data any = snap
		if render != nil {
			data = render(snap)
		}
		s.publish(view.topic, console.ActionList, view.id, data)
	})
	view.list = q
}

func bindEntity[T any](s *Session, view *pageView, q *cusecase.EntityQuery[T]) {
	q.OnChange(func(snap cusecase.EntitySnapshot[T]) {
		s.publish(view.topic, console.ActionDetail, q.ID(), snap)
	})
	view.entities = append(view.entities, q)
}

// mutate decodes the payload and runs fn. Mutation failures reach the operator
// as toasts, so only decoding errors are returned.
func mutate[In, Out any](fn func(context.Context, In) (Out, error)) pageAction {
	return func(ctx context.Context, payload json.RawMessage) error {
		in, err := decodePayload[In](payload)
		if err != nil {
			return err
		}
		_, _ = fn(ctx, in)
		return nil
	}
}

func mutateErr[In any](fn func(context.Context, In) error) pageAction {
	return mutate(func(ctx context.Context, in In) (struct{}, error) {
		return struct{}{}, fn(ctx, in)
	})
}

type idPayload struct {
	ID string `json:"id"`
}

// requestDelete opens the confirmation dialog for a delete. fixedID is used by
// detail pages, list pages read the id from the payload.
func requestDelete(s *Session, request func(id string) *cusecase.ConfirmGate, fixedID string) pageAction {
	return func(_ context.Context, payload json.RawMessage) error {
		id := fixedID
		if id == "" {
			in, err := decodePayload[idPayload](payload)
			if err != nil {
				return err
			}
			id = strings.TrimSpace(in.ID)
		}
		if id == "" {
			return port.ErrMissingID
		}
		s.openGate(request(id))
		return nil
	}
}

type pageBuilder func(s *Session, req openRequest) (*pageView, error)

var pageBuilders = map[string]pageBuilder{
	PageDashboard:      openDashboard,
	PageUsers:          openUsers,
	PageUser:           openUser,
	PagePartners:       openPartners,
	PageCourses:        openCourses,
	PageCourse:         openCourse,
	PagePartnerCourses: openPartnerCourses,
	PageEvents:         openEvents,
	PageEvent:          openEvent,
	PageBookings:       openBookings,
	PagePayments:       openPayments,
	PageSubscriptions:  openSubscriptions,
	PageRewards:        openRewards,
	PageSupport:        openSupport,
	PageTicket:         openTicket,
	PagePosts:          openPosts,
	PageAuditLogs:      openAuditLogs,
	PageAnalytics:      openAnalytics,
	PageSettings:       openSettings,
	PageNotifications:  openNotifications,
}

// PageTopics lists the pages in a stable order.
func PageTopics() []string {
	topics := make([]string, 0, len(pageBuilders))
	for topic := range pageBuilders {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

func normalizePage(raw string) string {
	page := strings.ToLower(strings.TrimSpace(raw))
	page = strings.ReplaceAll(page, "_", "-")
	switch page {
	case "", "-", "session":
		return ""
	case "partner-course":
		return PagePartnerCourses
	case "audit-log", "audit":
		return PageAuditLogs
	case "tickets":
		return PageSupport
	case "redemptions":
		return PageRewards
	case "stats":
		return PageDashboard
	}
	return page
}

func requireID(req openRequest) error {
	if req.ID == "" {
		return port.ErrMissingID
	}
	return nil
}

func openDashboard(s *Session, _ openRequest) (*pageView, error) {
	p := usecase.NewDashboardPage(s.ctx, s.deps)
	view := newView(PageDashboard, domain.DashboardStatsDetailID, p.Close)
	bindEntity(s, view, p.Stats)
	return view, nil
}

func openUsers(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewUsersPage(s.ctx, s.deps, req.Query)
	view := newView(PageUsers, "", p.Close)
	bindList(s, view, p.List, nil)
	return view.
		on("update_role", mutate(p.UpdateRole)).
		on("update_status", mutate(p.UpdateStatus)).
		on("update_membership", mutate(p.UpdateMembership)).
		on("create", mutate(p.Create)).
		on("delete", requestDelete(s, p.RequestDelete, "")), nil
}

func openUser(s *Session, req openRequest) (*pageView, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	p := usecase.NewUserDetailPage(s.ctx, s.deps, req.ID)
	view := newView(PageUser, req.ID, p.Close)
	bindEntity(s, view, p.Detail)
	return view.
		on("update_role", mutate(p.UpdateRole)).
		on("update_status", mutate(p.UpdateStatus)).
		on("update_membership", mutate(p.UpdateMembership)).
		on("delete", requestDelete(s, p.RequestDelete, req.ID)), nil
}

// partnerList adds the partner-only rows to a users snapshot.
type partnerList struct {
	cusecase.ListSnapshot[domain.User]
	Visible []domain.User `json:"visible"`
}

func openPartners(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewPartnersPage(s.ctx, s.deps, req.Query)
	view := newView(PagePartners, "", p.Close)
	bindList(s, view, p.List, func(snap cusecase.ListSnapshot[domain.User]) any {
		return partnerList{ListSnapshot: snap, Visible: p.Visible(snap)}
	})
	return view.
		on("update_role", mutate(p.UpdateRole)).
		on("update_status", mutate(p.UpdateStatus)).
		on("update_membership", mutate(p.UpdateMembership)).
		on("delete", requestDelete(s, p.RequestDelete, "")), nil
}

func openCourses(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewCoursesPage(s.ctx, s.deps, req.Query)
	view := newView(PageCourses, "", p.Close)
	bindList(s, view, p.List, nil)
	return view.
		on("update", mutate(p.Update)).
		on("toggle_published", mutate(p.TogglePublished)).
		on("create", mutate(p.Create)).
		on("delete", requestDelete(s, p.RequestDelete, "")), nil
}

func openCourse(s *Session, req openRequest) (*pageView, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	p := usecase.NewCourseDetailPage(s.ctx, s.deps, req.ID)
	view := newView(PageCourse, req.ID, p.Close)
	bindEntity(s, view, p.Detail)
	return view.
		on("update", mutate(p.Update)).
		on("toggle_published", mutate(p.TogglePublished)).
		on("delete", requestDelete(s, p.RequestDelete, req.ID)), nil
}

// openPartnerCourses takes the partner id.
func openPartnerCourses(s *Session, req openRequest) (*pageView, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	p := usecase.NewPartnerCoursesPage(s.ctx, s.deps, req.ID)
	view := newView(PagePartnerCourses, req.ID, p.Close)
	bindEntity(s, view, p.Courses)
	return view.
		on("update", mutate(p.Update)).
		on("toggle_published", mutate(p.TogglePublished)).
		on("delete", requestDelete(s, p.RequestDelete, "")), nil
}

type eventStatusPayload struct {
	ID     string             `json:"id"`
	Status domain.EventStatus `json:"status"`
}

func setEventStatus(setStatus func(context.Context, string, domain.EventStatus) (domain.Event, error), fixedID string) pageAction {
	return mutate(func(ctx context.Context, in eventStatusPayload) (domain.Event, error) {
		if fixedID != "" && in.ID == "" {
			in.ID = fixedID
		}
		return setStatus(ctx, in.ID, in.Status)
	})
}

func openEvents(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewEventsPage(s.ctx, s.deps, req.Query)
	view := newView(PageEvents, "", p.Close)
	bindList(s, view, p.List, nil)
	return view.
		on("update", mutate(p.Update)).
		on("update_status", setEventStatus(p.SetStatus, "")).
		on("create", mutate(p.Create)).
		on("delete", requestDelete(s, p.RequestDelete, "")), nil
}

func openEvent(s *Session, req openRequest) (*pageView, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	p := usecase.NewEventDetailPage(s.ctx, s.deps, req.ID)
	view := newView(PageEvent, req.ID, p.Close)
	bindEntity(s, view, p.Detail)
	return view.
		on("update", mutate(p.Update)).
		on("update_status", setEventStatus(p.SetStatus, req.ID)).
		on("delete", requestDelete(s, p.RequestDelete, req.ID)), nil
}

func openBookings(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewBookingsPage(s.ctx, s.deps, req.Query)
	view := newView(PageBookings, "", p.Close)
	bindList(s, view, p.List, nil)
	return view.on("update_status", mutateErr(p.UpdateStatus)), nil
}

func openPayments(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewPaymentsPage(s.ctx, s.deps, req.Query)
	view := newView(PagePayments, "", p.Close)
	bindList(s, view, p.List, nil)
	return view, nil
}

func openSubscriptions(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewSubscriptionsPage(s.ctx, s.deps, req.Query)
	view := newView(PageSubscriptions, "", p.Close)
	bindList(s, view, p.List, nil)
	return view.on("update_subscription", mutateErr(p.Update)), nil
}

func openRewards(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewRewardsPage(s.ctx, s.deps, req.Query)
	view := newView(PageRewards, "", p.Close)
	bindList(s, view, p.List, nil)
	return view.on("update_status", mutate(p.UpdateStatus)), nil
}

func openSupport(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewSupportPage(s.ctx, s.deps, req.Query)
	view := newView(PageSupport, "", p.Close)
	bindList(s, view, p.List, nil)
	return view.on("update_status", mutateErr(p.UpdateStatus)), nil
}

type replyPayload struct {
	Message string `json:"message"`
}

type ticketStatusPayload struct {
	Status domain.TicketStatus `json:"status"`
}

func openTicket(s *Session, req openRequest) (*pageView, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}
	p := usecase.NewTicketPage(s.ctx, s.deps, req.ID)
	view := newView(PageTicket, req.ID, p.Close)
	bindEntity(s, view, p.Detail)
	return view.
		on("reply", mutate(func(ctx context.Context, in replyPayload) (domain.TicketDetail, error) {
			return p.Reply(ctx, in.Message)
		})).
		on("update_status", mutateErr(func(ctx context.Context, in ticketStatusPayload) error {
			return p.UpdateStatus(ctx, in.Status)
		})), nil
}

func openPosts(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewPostsPage(s.ctx, s.deps, req.Query)
	view := newView(PagePosts, "", p.Close)
	bindList(s, view, p.List, nil)
	return view.
		on("update_status", mutate(p.UpdateStatus)).
		on("bulk_status", mutate(p.BulkUpdateStatus)), nil
}

func openAuditLogs(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewAuditLogsPage(s.ctx, s.deps, req.Query)
	view := newView(PageAuditLogs, "", p.Close)
	bindList(s, view, p.List, nil)
	return view, nil
}

func openAnalytics(s *Session, req openRequest) (*pageView, error) {
	p := usecase.NewAnalyticsPage(s.ctx, s.deps, req.Query)
	view := newView(PageAnalytics, "", p.Close)
	bindList(s, view, p.List, nil)
	return view, nil
}

func openSettings(s *Session, _ openRequest) (*pageView, error) {
	p := usecase.NewSettingsPage(s.ctx, s.deps)
	view := newView(PageSettings, "", p.Close)
	bindEntity(s, view, p.Settings)
	bindEntity(s, view, p.Profile)
	return view.
		on("update", mutate(p.Update)).
		on("update_password", mutateErr(p.ChangePassword)), nil
}

func openNotifications(s *Session, _ openRequest) (*pageView, error) {
	p := usecase.NewNotificationsPage(s.deps)
	view := newView(PageNotifications, "", p.Close)
	return view.on("send", mutateErr(p.Send)), nil
}
