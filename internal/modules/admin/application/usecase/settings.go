package usecase

import (
	"context"
	"io"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/domain"
	cport "impactAdminWs/internal/modules/console/application/port"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	"impactAdminWs/internal/platform/querycache"
)

// SettingsPage holds the platform settings form and the operator's profile.
type SettingsPage struct {
	Settings *cusecase.EntityQuery[domain.Settings]
	Profile  *cusecase.EntityQuery[domain.Profile]
	update   *cusecase.Mutation[domain.Settings, domain.Settings]
	password *cusecase.Mutation[domain.PasswordChange, empty]
}

func NewSettingsPage(ctx context.Context, deps Deps) *SettingsPage {
	settings := deps.Services.Settings
	page := &SettingsPage{
		Settings: cusecase.NewEntityQuery(ctx, deps.Cache, domain.ResourceSettings, domain.PlatformSettingsID,
			func(ctx context.Context, _ string) (domain.Settings, error) { return settings.Get(ctx) }),
		Profile: cusecase.NewEntityQuery(ctx, deps.Cache, domain.ResourceSettings, domain.AdminProfileID,
			func(ctx context.Context, _ string) (domain.Profile, error) { return settings.Profile(ctx) }),
	}

	updateOpts := options[domain.Settings, domain.Settings]("settings.update", textSettings)
	updateOpts.PreferServerMessage = true
	updateOpts.Validate = domain.Settings.Validate
	updateOpts.OnSuccess = func(_ domain.Settings, saved domain.Settings) { page.Settings.SetData(saved) }

	passwordOpts := options[domain.PasswordChange, empty]("settings.update_password", textPassword)
	passwordOpts.PreferServerMessage = true
	passwordOpts.Validate = domain.PasswordChange.Validate

	page.update = cusecase.NewMutation(deps.Cache, deps.Toasts, settings.Update, updateOpts)
	page.password = cusecase.NewMutation(deps.Cache, deps.Toasts, discard(settings.UpdatePassword), passwordOpts)
	return page
}

func (p *SettingsPage) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	return p.update.Mutate(ctx, settings)
}

func (p *SettingsPage) ChangePassword(ctx context.Context, change domain.PasswordChange) error {
	_, err := p.password.Mutate(ctx, change)
	return err
}

func (p *SettingsPage) Close() {
	p.Settings.Close()
	p.Profile.Close()
}

// NotificationsPage is the notification composer.
type NotificationsPage struct {
	send *cusecase.Mutation[domain.NotificationDraft, empty]
}

func NewNotificationsPage(deps Deps) *NotificationsPage {
	notifications := deps.Services.Notifications

	opts := options[domain.NotificationDraft, empty]("notifications.send", textNotification)
	opts.PreferServerMessage = true
	opts.Validate = func(draft domain.NotificationDraft) error {
		_, err := draft.Build()
		return err
	}

	return &NotificationsPage{
		send: cusecase.NewMutation(deps.Cache, deps.Toasts, discard(func(ctx context.Context, draft domain.NotificationDraft) error {
			notification, err := draft.Build()
			if err != nil {
				return err
			}
			return notifications.Send(ctx, notification)
		}), opts),
	}
}

func (p *NotificationsPage) Send(ctx context.Context, draft domain.NotificationDraft) error {
	_, err := p.send.Mutate(ctx, draft)
	return err
}

func (p *NotificationsPage) Close() {}

type AvatarFile struct {
	Filename string
	Content  io.Reader
}

// AvatarUploader stores an avatar image and refreshes the profile. Toasts are
// only emitted when a notifier is given.
type AvatarUploader struct {
	upload *cusecase.Mutation[AvatarFile, string]
}

func NewAvatarUploader(cache *querycache.Cache, uploads port.UploadService, toasts cport.Notifier) *AvatarUploader {
	opts := options[AvatarFile, string]("uploads.avatar", textAvatar)
	opts.PreferServerMessage = true
	opts.Invalidate = func(AvatarFile, string) []querycache.Key {
		return []querycache.Key{cusecase.DetailKey(domain.ResourceSettings, domain.AdminProfileID)}
	}
	return &AvatarUploader{
		upload: cusecase.NewMutation(cache, toasts, func(ctx context.Context, file AvatarFile) (string, error) {
			return uploads.UploadAvatar(ctx, file.Filename, file.Content)
		}, opts),
	}
}

func (u *AvatarUploader) Upload(ctx context.Context, file AvatarFile) (string, error) {
	return u.upload.Mutate(ctx, file)
}
