package usecase

import (
	"context"

	"impactAdminWs/internal/modules/admin/domain"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
)

// userMutations is shared by the users list, the partners list and the user
// detail page. User mutations toast the server message when there is one.
type userMutations struct {
	role       *cusecase.Mutation[domain.UpdateRoleInput, domain.User]
	status     *cusecase.Mutation[domain.UpdateStatusInput, domain.User]
	membership *cusecase.Mutation[domain.UpdateMembershipInput, domain.User]
	remove     *cusecase.Mutation[string, empty]
}

func newUserMutations(deps Deps, onUser func(domain.User)) userMutations {
	users := deps.Services.Users

	removeOpts := options[string, empty]("users.delete", textDeleteUser)
	removeOpts.PreferServerMessage = true
	removeOpts.Invalidate = invalidate[string, empty](domain.ResourceUsers)

	return userMutations{
		role: userMutation(deps, "users.update_role", textRole, domain.UpdateRoleInput.Validate, onUser,
			func(ctx context.Context, in domain.UpdateRoleInput) (domain.User, error) {
				return users.UpdateRole(ctx, in.ID, in.Role)
			}),
		status: userMutation(deps, "users.update_status", textStatus, domain.UpdateStatusInput.Validate, onUser,
			func(ctx context.Context, in domain.UpdateStatusInput) (domain.User, error) {
				return users.UpdateStatus(ctx, in.ID, in.Status)
			}),
		membership: userMutation(deps, "users.update_membership", textMembership, domain.UpdateMembershipInput.Validate, onUser,
			func(ctx context.Context, in domain.UpdateMembershipInput) (domain.User, error) {
				return users.UpdateMembership(ctx, in.ID, in.MembershipTier)
			}),
		remove: cusecase.NewMutation(deps.Cache, deps.Toasts, discard(users.Delete), removeOpts),
	}
}

func userMutation[In any](deps Deps, name string, text toastText, validate func(In) error, onUser func(domain.User), run func(context.Context, In) (domain.User, error)) *cusecase.Mutation[In, domain.User] {
	opts := options[In, domain.User](name, text)
	opts.PreferServerMessage = true
	opts.Validate = validate
	opts.Invalidate = invalidate[In, domain.User](domain.ResourceUsers)
	if onUser != nil {
		opts.OnSuccess = func(_ In, user domain.User) { onUser(user) }
	}
	return cusecase.NewMutation(deps.Cache, deps.Toasts, run, opts)
}

func (m userMutations) UpdateRole(ctx context.Context, in domain.UpdateRoleInput) (domain.User, error) {
	return m.role.Mutate(ctx, in)
}

func (m userMutations) UpdateStatus(ctx context.Context, in domain.UpdateStatusInput) (domain.User, error) {
	return m.status.Mutate(ctx, in)
}

func (m userMutations) UpdateMembership(ctx context.Context, in domain.UpdateMembershipInput) (domain.User, error) {
	return m.membership.Mutate(ctx, in)
}

// RequestDelete opens the confirmation dialog; the user is only deleted on Confirm.
func (m userMutations) RequestDelete(id string) *cusecase.ConfirmGate {
	return deleteGate("Delete user", "This permanently removes the user and their data.", func(ctx context.Context) error {
		_, err := m.remove.Mutate(ctx, id)
		return err
	})
}

// UsersPage backs the users table.
type UsersPage struct {
	userMutations
	List   *cusecase.ListQuery[domain.User]
	create *cusecase.Mutation[domain.CreateUserInput, domain.User]
}

func NewUsersPage(ctx context.Context, deps Deps, initial *console.FilterState) *UsersPage {
	createOpts := options[domain.CreateUserInput, domain.User]("users.create", textCreateUser)
	createOpts.PreferServerMessage = true
	createOpts.Validate = domain.CreateUserInput.Validate
	createOpts.Invalidate = invalidate[domain.CreateUserInput, domain.User](domain.ResourceUsers)

	return &UsersPage{
		userMutations: newUserMutations(deps, nil),
		List:          newList(ctx, deps, domain.ResourceUsers, initialOr(initial, domain.DefaultListLimit), deps.Services.Users.List),
		create:        cusecase.NewMutation(deps.Cache, deps.Toasts, deps.Services.Users.Create, createOpts),
	}
}

func (p *UsersPage) Create(ctx context.Context, in domain.CreateUserInput) (domain.User, error) {
	return p.create.Mutate(ctx, in)
}

func (p *UsersPage) Close() { p.List.Close() }

// PartnersPage reads the users list and shows partner accounts only, unless a
// role filter asks for something else.
type PartnersPage struct {
	userMutations
	List *cusecase.ListQuery[domain.User]
}

func NewPartnersPage(ctx context.Context, deps Deps, initial *console.FilterState) *PartnersPage {
	return &PartnersPage{
		userMutations: newUserMutations(deps, nil),
		List:          newList(ctx, deps, domain.ResourceUsers, initialOr(initial, domain.DefaultListLimit), deps.Services.Users.List),
	}
}

// Visible filters the records of snap for the partners table.
func (p *PartnersPage) Visible(snap cusecase.ListSnapshot[domain.User]) []domain.User {
	if snap.Data == nil {
		return nil
	}
	role := domain.Role(snap.Query.Filter("role"))
	out := make([]domain.User, 0, len(snap.Data.Records))
	for _, user := range snap.Data.Records {
		if role != "" {
			if user.Role == role {
				out = append(out, user)
			}
			continue
		}
		if domain.IsPartnerRole(user.Role) {
			out = append(out, user)
		}
	}
	return out
}

func (p *PartnersPage) Close() { p.List.Close() }

// UserDetailPage shows one user; mutations write the returned record straight
// into the detail cache.
type UserDetailPage struct {
	userMutations
	Detail *cusecase.EntityQuery[domain.User]
}

func NewUserDetailPage(ctx context.Context, deps Deps, id string) *UserDetailPage {
	detail := cusecase.NewEntityQuery(ctx, deps.Cache, domain.ResourceUsers, id, deps.Services.Users.Get)
	return &UserDetailPage{
		userMutations: newUserMutations(deps, func(user domain.User) {
			if user.ID == id {
				detail.SetData(user)
			}
		}),
		Detail: detail,
	}
}

func (p *UserDetailPage) Close() { p.Detail.Close() }
