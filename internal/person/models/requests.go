package models

import (
	"strings"

	dErrors "wordsrecord/pkg/domain-errors"
)

// CreatePersonRequest is the admin API payload for creating a person.
type CreatePersonRequest struct {
	Slug     string `json:"slug,omitempty"`
	FullName string `json:"full_name"`
	Bio      string `json:"bio,omitempty"`
}

func (r *CreatePersonRequest) Normalize() {
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.FullName = strings.TrimSpace(r.FullName)
	r.Bio = strings.TrimSpace(r.Bio)
}

func (r *CreatePersonRequest) Validate() error {
	if r.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full_name is required")
	}
	return nil
}

// UpdatePersonRequest carries partial updates; nil fields are left unchanged.
// The nationality cache columns are not updatable through this request.
type UpdatePersonRequest struct {
	Slug     *string `json:"slug,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

func (r *UpdatePersonRequest) Normalize() {
	if r.Slug != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Slug))
		r.Slug = &v
	}
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Bio != nil {
		v := strings.TrimSpace(*r.Bio)
		r.Bio = &v
	}
}

func (r *UpdatePersonRequest) Validate() error {
	if r.FullName != nil && *r.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full_name cannot be empty")
	}
	if r.Slug != nil && *r.Slug == "" {
		return dErrors.New(dErrors.CodeValidation, "slug cannot be empty")
	}
	return nil
}
