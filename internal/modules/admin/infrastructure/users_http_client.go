package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/domain"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/apiclient"
)

// UsersHTTPClient implements port.UserService against /api/v1/admin/users.
type UsersHTTPClient struct {
	rest *apiclient.Client
}

func NewUsersHTTPClient(rest *apiclient.Client) *UsersHTTPClient {
	return &UsersHTTPClient{rest: rest}
}

func (c *UsersHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.User], error) {
	path, err := listPath("users", "")
	if err != nil {
		return nil, err
	}
	slog.Debug("users list fetch", slog.String("query", query.CanonicalKey()))
	page, err := apiclient.Get[*console.Page[domain.User]](ctx, c.rest, path, queryValues("users", query))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return page, nil
}

func (c *UsersHTTPClient) Get(ctx context.Context, id string) (domain.User, error) {
	path, err := detailPath("users", id)
	if err != nil {
		return domain.User{}, err
	}
	user, err := apiclient.Get[domain.User](ctx, c.rest, path, nil)
	if err != nil {
		return domain.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

func (c *UsersHTTPClient) Create(ctx context.Context, in domain.CreateUserInput) (domain.User, error) {
	path, err := listPath("users", "")
	if err != nil {
		return domain.User{}, err
	}
	user, err := apiclient.Send[domain.User](ctx, c.rest, http.MethodPost, path, in)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (c *UsersHTTPClient) UpdateRole(ctx context.Context, id string, role domain.Role) (domain.User, error) {
	return c.patch(ctx, id, "role", map[string]any{"role": role})
}

func (c *UsersHTTPClient) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (domain.User, error) {
	return c.patch(ctx, id, "status", map[string]any{"status": status})
}

func (c *UsersHTTPClient) UpdateMembership(ctx context.Context, id string, tier domain.MembershipTier) (domain.User, error) {
	return c.patch(ctx, id, "membership", map[string]any{"membershipTier": tier})
}

func (c *UsersHTTPClient) Delete(ctx context.Context, id string) error {
	path, err := detailPath("users", id)
	if err != nil {
		return err
	}
	if err := apiclient.Exec(ctx, c.rest, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

func (c *UsersHTTPClient) patch(ctx context.Context, id, action string, body map[string]any) (domain.User, error) {
	path, err := actionPath("users", id, action)
	if err != nil {
		return domain.User{}, err
	}
	user, err := apiclient.Send[domain.User](ctx, c.rest, http.MethodPatch, path, body)
	if err != nil {
		return domain.User{}, fmt.Errorf("update user %s %s: %w", id, action, err)
	}
	return user, nil
}

var _ port.UserService = (*UsersHTTPClient)(nil)
