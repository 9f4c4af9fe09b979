package infrastructure

import (
	"context"
	"fmt"
	"net/http"

	"impactAdminWs/internal/modules/admin/application/port"
	"impactAdminWs/internal/modules/admin/domain"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/apiclient"
)

type SupportHTTPClient struct {
	rest *apiclient.Client
}

func NewSupportHTTPClient(rest *apiclient.Client) *SupportHTTPClient {
	return &SupportHTTPClient{rest: rest}
}

func (c *SupportHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.Ticket], error) {
	path, err := listPath("support", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.Ticket]](ctx, c.rest, path, queryValues("support", query))
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return page, nil
}

func (c *SupportHTTPClient) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	path, err := actionPath("support", id, "status")
	if err != nil {
		return err
	}
	if err := apiclient.Exec(ctx, c.rest, http.MethodPatch, path, map[string]any{"status": status}); err != nil {
		return fmt.Errorf("update ticket %s: %w", id, err)
	}
	return nil
}

// Get and Reply use the shared support routes, which return the replies too.
func (c *SupportHTTPClient) Get(ctx context.Context, id string) (domain.TicketDetail, error) {
	path, err := detailPath("support-public", id)
	if err != nil {
		return domain.TicketDetail{}, err
	}
	ticket, err := apiclient.Get[domain.TicketDetail](ctx, c.rest, path, nil)
	if err != nil {
		return domain.TicketDetail{}, fmt.Errorf("get ticket %s: %w", id, err)
	}
	return ticket, nil
}

func (c *SupportHTTPClient) Reply(ctx context.Context, id, message string) (domain.TicketDetail, error) {
	path, err := actionPath("support-public", id, "replies")
	if err != nil {
		return domain.TicketDetail{}, err
	}
	ticket, err := apiclient.Send[domain.TicketDetail](ctx, c.rest, http.MethodPost, path, map[string]any{"message": message})
	if err != nil {
		return domain.TicketDetail{}, fmt.Errorf("reply to ticket %s: %w", id, err)
	}
	return ticket, nil
}

type PostsHTTPClient struct {
	rest *apiclient.Client
}

func NewPostsHTTPClient(rest *apiclient.Client) *PostsHTTPClient {
	return &PostsHTTPClient{rest: rest}
}

func (c *PostsHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.Post], error) {
	path, err := listPath("posts", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.Post]](ctx, c.rest, path, queryValues("posts", query))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return page, nil
}

func (c *PostsHTTPClient) UpdateStatus(ctx context.Context, id string, status domain.PostStatus) (domain.Post, error) {
	path, err := actionPath("posts", id, "status")
	if err != nil {
		return domain.Post{}, err
	}
	post, err := apiclient.Send[domain.Post](ctx, c.rest, http.MethodPatch, path, map[string]any{"status": status})
	if err != nil {
		return domain.Post{}, fmt.Errorf("update post %s: %w", id, err)
	}
	return post, nil
}

func (c *PostsHTTPClient) BulkUpdateStatus(ctx context.Context, ids []string, status domain.PostStatus) (domain.BulkResult, error) {
	if len(ids) == 0 {
		return domain.BulkResult{}, port.ErrMissingID
	}
	body := map[string]any{"ids": ids, "status": status}
	result, err := apiclient.Send[domain.BulkResult](ctx, c.rest, http.MethodPatch, pathPostsBulkStatus, body)
	if err != nil {
		return domain.BulkResult{}, fmt.Errorf("bulk update posts: %w", err)
	}
	return result, nil
}

var (
	_ port.SupportService = (*SupportHTTPClient)(nil)
	_ port.PostService    = (*PostsHTTPClient)(nil)
)
