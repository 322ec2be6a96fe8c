package models

import (
	"strings"
	"time"

	dErrors "wordsrecord/pkg/domain-errors"
)

// UpsertFactRequest is the single mutation payload for nationality
// facts. A request carrying an ID updates that fact; without an ID it
// creates a new one. Country accepts free text and is resolved to a
// canonical code by the service.
type UpsertFactRequest struct {
	ID           string     `json:"id,omitempty"`
	PersonID     string     `json:"person_id"`
	Country      string     `json:"country"`
	Type         string     `json:"type"`
	Acquisition  string     `json:"acquisition,omitempty"`
	IsPrimary    bool       `json:"is_primary"`
	DisplayOrder int        `json:"display_order"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	SourceID     string     `json:"source_id,omitempty"`
	Confidence   *int       `json:"confidence,omitempty"`
	Note         string     `json:"note,omitempty"`
}

func (r *UpsertFactRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.PersonID = strings.TrimSpace(r.PersonID)
	r.Country = strings.TrimSpace(r.Country)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Acquisition = strings.ToLower(strings.TrimSpace(r.Acquisition))
	r.SourceID = strings.TrimSpace(r.SourceID)
	r.Note = strings.TrimSpace(r.Note)
}

func (r *UpsertFactRequest) Validate() error {
	if r.PersonID == "" {
		return dErrors.New(dErrors.CodeValidation, "person_id is required")
	}
	if r.Country == "" {
		return dErrors.New(dErrors.CodeValidation, "country is required")
	}
	if !Type(r.Type).Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown fact type")
	}
	if r.Acquisition != "" && !Acquisition(r.Acquisition).Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown acquisition")
	}
	if r.Confidence != nil && (*r.Confidence < 0 || *r.Confidence > 100) {
		return dErrors.New(dErrors.CodeValidation, "confidence must be between 0 and 100")
	}
	return nil
}

// CloseFactRequest ends an active fact. EndDate defaults to the request
// time when omitted.
type CloseFactRequest struct {
	EndDate *time.Time `json:"end_date,omitempty"`
}

// UpsertResult reports the outcome of an upsert.
type UpsertResult struct {
	Fact    *Fact
	Created bool
}
