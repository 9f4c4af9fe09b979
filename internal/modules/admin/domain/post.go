package domain

import (
	"impactAdminWs/internal/shared/normalization"
	"impactAdminWs/internal/shared/validation"
)

type PostStatus string

const (
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

type Post struct {
	ID        string                          `json:"_id"`
	User      normalization.Reference[Person] `json:"user"`
	Content   string                          `json:"content"`
	Image     string                          `json:"image,omitempty"`
	Status    PostStatus                      `json:"status"`
	CreatedAt string                          `json:"createdAt,omitempty"`
}

type UpdatePostStatusInput struct {
	ID     string     `json:"id" validate:"required"`
	Status PostStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (in UpdatePostStatusInput) Validate() error { return validation.Struct(in) }

type BulkPostStatusInput struct {
	IDs    []string   `json:"ids" validate:"required,min=1,dive,required"`
	Status PostStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (in BulkPostStatusInput) Validate() error { return validation.Struct(in) }

type BulkResult struct {
	MatchedCount  int `json:"matchedCount"`
	ModifiedCount int `json:"modifiedCount"`
}
