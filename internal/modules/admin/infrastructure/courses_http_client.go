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

type CoursesHTTPClient struct {
	rest *apiclient.Client
}

func NewCoursesHTTPClient(rest *apiclient.Client) *CoursesHTTPClient {
	return &CoursesHTTPClient{rest: rest}
}

func (c *CoursesHTTPClient) List(ctx context.Context, query console.FilterState) (*console.Page[domain.Course], error) {
	path, err := listPath("courses", "")
	if err != nil {
		return nil, err
	}
	page, err := apiclient.Get[*console.Page[domain.Course]](ctx, c.rest, path, queryValues("courses", query))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return page, nil
}

func (c *CoursesHTTPClient) Get(ctx context.Context, id string) (domain.Course, error) {
	path, err := detailPath("courses", id)
	if err != nil {
		return domain.Course{}, err
	}
	course, err := apiclient.Get[domain.Course](ctx, c.rest, path, nil)
	if err != nil {
		return domain.Course{}, fmt.Errorf("get course %s: %w", id, err)
	}
	return course, nil
}

func (c *CoursesHTTPClient) Create(ctx context.Context, in domain.CreateCourseInput) (domain.Course, error) {
	path, err := listPath("courses", "")
	if err != nil {
		return domain.Course{}, err
	}
	course, err := apiclient.Send[domain.Course](ctx, c.rest, http.MethodPost, path, in)
	if err != nil {
		return domain.Course{}, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func (c *CoursesHTTPClient) Update(ctx context.Context, id string, patch domain.CoursePatch) (domain.Course, error) {
	path, err := detailPath("courses", id)
	if err != nil {
		return domain.Course{}, err
	}
	course, err := apiclient.Send[domain.Course](ctx, c.rest, http.MethodPatch, path, patch)
	if err != nil {
		return domain.Course{}, fmt.Errorf("update course %s: %w", id, err)
	}
	return course, nil
}

func (c *CoursesHTTPClient) Delete(ctx context.Context, id string) error {
	path, err := detailPath("courses", id)
	if err != nil {
		return err
	}
	if err := apiclient.Exec(ctx, c.rest, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	return nil
}

// ListByPartner returns every course of one partner; the endpoint is not paginated.
func (c *CoursesHTTPClient) ListByPartner(ctx context.Context, partnerID string) ([]domain.Course, error) {
	path, err := listPath("partner-courses", partnerID)
	if err != nil {
		return nil, err
	}
	courses, err := apiclient.Get[[]domain.Course](ctx, c.rest, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list partner %s courses: %w", partnerID, err)
	}
	if courses == nil {
		courses = []domain.Course{}
	}
	return courses, nil
}

var _ port.CourseService = (*CoursesHTTPClient)(nil)
