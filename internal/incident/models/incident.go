package models

import (
	"strings"
	"time"

	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/slug"
)

// Status tracks how well an incident is documented.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusDocumented Status = "documented"
	StatusDisputed   Status = "disputed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusDocumented, StatusDisputed:
		return true
	}
	return false
}

// Incident is a case or event that statements belong to.
type Incident struct {
	ID        id.IncidentID `json:"id"`
	Slug      string        `json:"slug"`
	Title     string        `json:"title"`
	Summary   string        `json:"summary,omitempty"`
	Status    Status        `json:"status"`
	StartedAt *time.Time    `json:"started_at,omitempty"`
	EndedAt   *time.Time    `json:"ended_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewIncident(incidentID id.IncidentID, rawSlug, title, summary string, status Status, now time.Time) (*Incident, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "incident title cannot be empty")
	}
	if status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown incident status")
	}

	slugValue := strings.TrimSpace(rawSlug)
	if slugValue == "" {
		slugValue = slug.Make(title)
	}
	if !slug.Valid(slugValue) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "slug must be lowercase letters, digits and hyphens")
	}

	return &Incident{
		ID:        incidentID,
		Slug:      slugValue,
		Title:     title,
		Summary:   strings.TrimSpace(summary),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type CreateIncidentRequest struct {
	Slug    string `json:"slug,omitempty"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Status  string `json:"status,omitempty"`
}

func (r *CreateIncidentRequest) Normalize() {
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.Title = strings.TrimSpace(r.Title)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

func (r *CreateIncidentRequest) Validate() error {
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.Status != "" && !Status(r.Status).Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown incident status")
	}
	return nil
}

type UpdateIncidentRequest struct {
	Title   *string    `json:"title,omitempty"`
	Summary *string    `json:"summary,omitempty"`
	Status  *string    `json:"status,omitempty"`
	Started *time.Time `json:"started_at,omitempty"`
	Ended   *time.Time `json:"ended_at,omitempty"`
}

func (r *UpdateIncidentRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return dErrors.New(dErrors.CodeValidation, "title cannot be empty")
	}
	if r.Status != nil && !Status(*r.Status).Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown incident status")
	}
	return nil
}
