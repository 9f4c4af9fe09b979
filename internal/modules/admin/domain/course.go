package domain

import (
	"impactAdminWs/internal/shared/normalization"
	"impactAdminWs/internal/shared/validation"
)

type Lesson struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

type Course struct {
	ID          string                          `json:"_id"`
	Title       string                          `json:"title"`
	Description string                          `json:"description,omitempty"`
	Price       float64                         `json:"price"`
	Instructor  normalization.Reference[Person] `json:"instructor"`
	Lessons     []Lesson                        `json:"lessons,omitempty"`
	Published   bool                            `json:"published"`
	CreatedAt   string                          `json:"createdAt,omitempty"`
	UpdatedAt   string                          `json:"updatedAt,omitempty"`
}

func (c Course) IsFree() bool { return c.Price == 0 }

// InstructorLabel renders the instructor whichever shape the API sent.
func (c Course) InstructorLabel() string {
	if person, ok := c.Instructor.Embedded(); ok {
		return person.Label()
	}
	return c.Instructor.ID()
}

// CoursePatch only sends the fields that are set.
type CoursePatch struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Published   *bool    `json:"published,omitempty"`
}

func (p CoursePatch) Validate() error { return validation.Struct(p) }

type UpdateCourseInput struct {
	ID    string      `json:"id" validate:"required"`
	Patch CoursePatch `json:"patch"`
}

func (in UpdateCourseInput) Validate() error {
	if err := validation.Var("id", in.ID, "required"); err != nil {
		return err
	}
	return in.Patch.Validate()
}

type CreateCourseInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" validate:"gte=0"`
	Published   bool     `json:"published"`
	Instructor  string   `json:"instructor,omitempty"`
	Lessons     []Lesson `json:"lessons,omitempty"`
}

func (in CreateCourseInput) Validate() error { return validation.Struct(in) }

// TogglePublishedInput flips a partner course on or off.
type TogglePublishedInput struct {
	ID        string `json:"id" validate:"required"`
	Published bool   `json:"published"`
}

func (in TogglePublishedInput) Validate() error { return validation.Struct(in) }
