package models

import (
	"strings"
	"time"

	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
)

// Type distinguishes original statements from reactions to them.
type Type string

const (
	TypeStatement    Type = "statement"
	TypeResponse     Type = "response"
	TypeRepercussion Type = "repercussion"
)

func (t Type) Valid() bool {
	switch t {
	case TypeStatement, TypeResponse, TypeRepercussion:
		return true
	}
	return false
}

// Statement is a public statement made by a person, optionally tied to
// an incident and backed by a source. Responses and repercussions point
// at the statement they react to.
type Statement struct {
	ID         id.StatementID  `json:"id"`
	PersonID   id.PersonID     `json:"person_id"`
	IncidentID *id.IncidentID  `json:"incident_id,omitempty"`
	SourceID   *id.SourceID    `json:"source_id,omitempty"`
	ResponseTo *id.StatementID `json:"response_to,omitempty"`
	Type       Type            `json:"type"`
	Body       string          `json:"body"`
	SaidAt     *time.Time      `json:"said_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Validate checks field-level invariants.
func (st *Statement) Validate() error {
	if st.PersonID.IsNil() {
		return dErrors.New(dErrors.CodeInvariantViolation, "statement requires a person")
	}
	if strings.TrimSpace(st.Body) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "statement body cannot be empty")
	}
	if !st.Type.Valid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown statement type")
	}
	if st.Type == TypeStatement && st.ResponseTo != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "an original statement cannot respond to another")
	}
	if st.Type != TypeStatement && st.ResponseTo == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "responses and repercussions must reference a statement")
	}
	return nil
}

type CreateStatementRequest struct {
	PersonID   string     `json:"person_id"`
	IncidentID string     `json:"incident_id,omitempty"`
	SourceID   string     `json:"source_id,omitempty"`
	ResponseTo string     `json:"response_to,omitempty"`
	Type       string     `json:"type,omitempty"`
	Body       string     `json:"body"`
	SaidAt     *time.Time `json:"said_at,omitempty"`
}

func (r *CreateStatementRequest) Normalize() {
	r.PersonID = strings.TrimSpace(r.PersonID)
	r.IncidentID = strings.TrimSpace(r.IncidentID)
	r.SourceID = strings.TrimSpace(r.SourceID)
	r.ResponseTo = strings.TrimSpace(r.ResponseTo)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = string(TypeStatement)
	}
	r.Body = strings.TrimSpace(r.Body)
}

func (r *CreateStatementRequest) Validate() error {
	if r.PersonID == "" {
		return dErrors.New(dErrors.CodeValidation, "person_id is required")
	}
	if r.Body == "" {
		return dErrors.New(dErrors.CodeValidation, "body is required")
	}
	if !Type(r.Type).Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown statement type")
	}
	return nil
}

type UpdateStatementRequest struct {
	Body   *string    `json:"body,omitempty"`
	SaidAt *time.Time `json:"said_at,omitempty"`
}

func (r *UpdateStatementRequest) Validate() error {
	if r.Body != nil && strings.TrimSpace(*r.Body) == "" {
		return dErrors.New(dErrors.CodeValidation, "body cannot be empty")
	}
	return nil
}
