package usecase

import (
	"context"

	"impactAdminWs/internal/modules/admin/domain"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	console "impactAdminWs/internal/modules/console/domain"
)

// Course writes show up in both the catalogue and the per-partner lists.
var courseScopes = []string{domain.ResourceCourses, domain.ResourcePartnerCourses}

type courseMutations struct {
	update *cusecase.Mutation[domain.UpdateCourseInput, domain.Course]
	remove *cusecase.Mutation[string, empty]
}

func newCourseMutations(deps Deps, onCourse func(domain.Course)) courseMutations {
	courses := deps.Services.Courses

	updateOpts := options[domain.UpdateCourseInput, domain.Course]("courses.update", textCourseUpdate)
	updateOpts.Validate = domain.UpdateCourseInput.Validate
	updateOpts.Invalidate = invalidate[domain.UpdateCourseInput, domain.Course](courseScopes...)
	if onCourse != nil {
		updateOpts.OnSuccess = func(_ domain.UpdateCourseInput, course domain.Course) { onCourse(course) }
	}

	removeOpts := options[string, empty]("courses.delete", textCourseDelete)
	removeOpts.Invalidate = invalidate[string, empty](courseScopes...)

	return courseMutations{
		update: cusecase.NewMutation(deps.Cache, deps.Toasts, func(ctx context.Context, in domain.UpdateCourseInput) (domain.Course, error) {
			return courses.Update(ctx, in.ID, in.Patch)
		}, updateOpts),
		remove: cusecase.NewMutation(deps.Cache, deps.Toasts, discard(courses.Delete), removeOpts),
	}
}

func (m courseMutations) Update(ctx context.Context, in domain.UpdateCourseInput) (domain.Course, error) {
	return m.update.Mutate(ctx, in)
}

// TogglePublished is an update that only touches the published flag.
func (m courseMutations) TogglePublished(ctx context.Context, in domain.TogglePublishedInput) (domain.Course, error) {
	published := in.Published
	return m.update.Mutate(ctx, domain.UpdateCourseInput{ID: in.ID, Patch: domain.CoursePatch{Published: &published}})
}

func (m courseMutations) RequestDelete(id string) *cusecase.ConfirmGate {
	return deleteGate("Delete course", "This removes the course and its lessons.", func(ctx context.Context) error {
		_, err := m.remove.Mutate(ctx, id)
		return err
	})
}

type CoursesPage struct {
	courseMutations
	List   *cusecase.ListQuery[domain.Course]
	create *cusecase.Mutation[domain.CreateCourseInput, domain.Course]
}

func NewCoursesPage(ctx context.Context, deps Deps, initial *console.FilterState) *CoursesPage {
	createOpts := options[domain.CreateCourseInput, domain.Course]("courses.create", textCourseCreate)
	createOpts.Validate = domain.CreateCourseInput.Validate
	createOpts.Invalidate = invalidate[domain.CreateCourseInput, domain.Course](courseScopes...)

	return &CoursesPage{
		courseMutations: newCourseMutations(deps, nil),
		List:            newList(ctx, deps, domain.ResourceCourses, initialOr(initial, domain.DefaultListLimit), deps.Services.Courses.List),
		create:          cusecase.NewMutation(deps.Cache, deps.Toasts, deps.Services.Courses.Create, createOpts),
	}
}

func (p *CoursesPage) Create(ctx context.Context, in domain.CreateCourseInput) (domain.Course, error) {
	return p.create.Mutate(ctx, in)
}

func (p *CoursesPage) Close() { p.List.Close() }

type CourseDetailPage struct {
	courseMutations
	Detail *cusecase.EntityQuery[domain.Course]
}

func NewCourseDetailPage(ctx context.Context, deps Deps, id string) *CourseDetailPage {
	detail := cusecase.NewEntityQuery(ctx, deps.Cache, domain.ResourceCourses, id, deps.Services.Courses.Get)
	return &CourseDetailPage{
		courseMutations: newCourseMutations(deps, func(course domain.Course) {
			if course.ID == id {
				detail.SetData(course)
			}
		}),
		Detail: detail,
	}
}

func (p *CourseDetailPage) Close() { p.Detail.Close() }

// PartnerCoursesPage lists the courses of one partner. The API returns them
// unpaged, so the list is cached as a detail entry keyed by partner id.
type PartnerCoursesPage struct {
	courseMutations
	Courses *cusecase.EntityQuery[[]domain.Course]
}

func NewPartnerCoursesPage(ctx context.Context, deps Deps, partnerID string) *PartnerCoursesPage {
	return &PartnerCoursesPage{
		courseMutations: newCourseMutations(deps, nil),
		Courses:         cusecase.NewEntityQuery(ctx, deps.Cache, domain.ResourcePartnerCourses, partnerID, deps.Services.Courses.ListByPartner),
	}
}

func (p *PartnerCoursesPage) Close() { p.Courses.Close() }
