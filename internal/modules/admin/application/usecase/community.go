package usecase

import (
	"context"

	"impactAdminWs/internal/modules/admin/domain"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/querycache"
)

func newTicketStatusMutation(deps Deps) *cusecase.Mutation[domain.UpdateTicketStatusInput, empty] {
	support := deps.Services.Support
	opts := options[domain.UpdateTicketStatusInput, empty]("support.update_status", textTicketStatus)
	opts.Validate = domain.UpdateTicketStatusInput.Validate
	opts.Invalidate = invalidate[domain.UpdateTicketStatusInput, empty](domain.ResourceSupport)
	return cusecase.NewMutation(deps.Cache, deps.Toasts, discard(func(ctx context.Context, in domain.UpdateTicketStatusInput) error {
		return support.UpdateStatus(ctx, in.ID, in.Status)
	}), opts)
}

type SupportPage struct {
	List   *cusecase.ListQuery[domain.Ticket]
	status *cusecase.Mutation[domain.UpdateTicketStatusInput, empty]
}

func NewSupportPage(ctx context.Context, deps Deps, initial *console.FilterState) *SupportPage {
	return &SupportPage{
		List:   newList(ctx, deps, domain.ResourceSupport, initialOr(initial, domain.DefaultListLimit), deps.Services.Support.List),
		status: newTicketStatusMutation(deps),
	}
}

func (p *SupportPage) UpdateStatus(ctx context.Context, in domain.UpdateTicketStatusInput) error {
	_, err := p.status.Mutate(ctx, in)
	return err
}

func (p *SupportPage) Close() { p.List.Close() }

// TicketPage shows one ticket with its replies.
type TicketPage struct {
	Detail *cusecase.EntityQuery[domain.TicketDetail]
	status *cusecase.Mutation[domain.UpdateTicketStatusInput, empty]
	reply  *cusecase.Mutation[domain.ReplyInput, domain.TicketDetail]
}

func NewTicketPage(ctx context.Context, deps Deps, id string) *TicketPage {
	support := deps.Services.Support
	detail := cusecase.NewEntityQuery(ctx, deps.Cache, domain.ResourceSupport, id, support.Get)

	replyOpts := options[domain.ReplyInput, domain.TicketDetail]("support.reply", textReply)
	replyOpts.Validate = domain.ReplyInput.Validate
	replyOpts.OnSuccess = func(in domain.ReplyInput, ticket domain.TicketDetail) {
		if in.TicketID == id {
			detail.SetData(ticket)
		}
	}
	replyOpts.Invalidate = func(domain.ReplyInput, domain.TicketDetail) []querycache.Key {
		return []querycache.Key{cusecase.ListScope(domain.ResourceSupport)}
	}

	return &TicketPage{
		Detail: detail,
		status: newTicketStatusMutation(deps),
		reply: cusecase.NewMutation(deps.Cache, deps.Toasts, func(ctx context.Context, in domain.ReplyInput) (domain.TicketDetail, error) {
			in = in.Clean()
			return support.Reply(ctx, in.TicketID, in.Message)
		}, replyOpts),
	}
}

// Reply strips markup from the message before sending it.
func (p *TicketPage) Reply(ctx context.Context, message string) (domain.TicketDetail, error) {
	return p.reply.Mutate(ctx, domain.ReplyInput{TicketID: p.Detail.ID(), Message: message}.Clean())
}

func (p *TicketPage) UpdateStatus(ctx context.Context, status domain.TicketStatus) error {
	_, err := p.status.Mutate(ctx, domain.UpdateTicketStatusInput{ID: p.Detail.ID(), Status: status})
	return err
}

func (p *TicketPage) Close() { p.Detail.Close() }

// PostsPage moderates community posts, twenty to a page.
type PostsPage struct {
	List   *cusecase.ListQuery[domain.Post]
	status *cusecase.Mutation[domain.UpdatePostStatusInput, domain.Post]
	bulk   *cusecase.Mutation[domain.BulkPostStatusInput, domain.BulkResult]
}

func NewPostsPage(ctx context.Context, deps Deps, initial *console.FilterState) *PostsPage {
	posts := deps.Services.Posts

	statusOpts := options[domain.UpdatePostStatusInput, domain.Post]("posts.update_status", textPostStatus)
	statusOpts.Validate = domain.UpdatePostStatusInput.Validate
	statusOpts.Invalidate = invalidate[domain.UpdatePostStatusInput, domain.Post](domain.ResourcePosts)

	bulkOpts := options[domain.BulkPostStatusInput, domain.BulkResult]("posts.bulk_status", textBulkPosts)
	bulkOpts.Validate = domain.BulkPostStatusInput.Validate
	bulkOpts.Invalidate = invalidate[domain.BulkPostStatusInput, domain.BulkResult](domain.ResourcePosts)

	return &PostsPage{
		List: newList(ctx, deps, domain.ResourcePosts, initialOr(initial, domain.PostsListLimit), posts.List),
		status: cusecase.NewMutation(deps.Cache, deps.Toasts, func(ctx context.Context, in domain.UpdatePostStatusInput) (domain.Post, error) {
			return posts.UpdateStatus(ctx, in.ID, in.Status)
		}, statusOpts),
		bulk: cusecase.NewMutation(deps.Cache, deps.Toasts, func(ctx context.Context, in domain.BulkPostStatusInput) (domain.BulkResult, error) {
			return posts.BulkUpdateStatus(ctx, in.IDs, in.Status)
		}, bulkOpts),
	}
}

func (p *PostsPage) UpdateStatus(ctx context.Context, in domain.UpdatePostStatusInput) (domain.Post, error) {
	return p.status.Mutate(ctx, in)
}

func (p *PostsPage) BulkUpdateStatus(ctx context.Context, in domain.BulkPostStatusInput) (domain.BulkResult, error) {
	return p.bulk.Mutate(ctx, in)
}

func (p *PostsPage) Close() { p.List.Close() }
