package models

import (
	"time"

	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
)

// Type classifies the relationship a fact asserts between a person and
// a country.
type Type string

const (
	TypeCitizenship      Type = "citizenship"
	TypeEthnicOrigin     Type = "ethnic_origin"
	TypeCulturalIdentity Type = "cultural_identity"
	TypeResidencyStatus  Type = "residency_status"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCitizenship, TypeEthnicOrigin, TypeCulturalIdentity, TypeResidencyStatus:
		return true
	}
	return false
}

// Acquisition records how a citizenship was obtained. Optional, and only
// meaningful for citizenship facts.
type Acquisition string

const (
	AcquisitionBirth          Acquisition = "birth"
	AcquisitionDescent        Acquisition = "descent"
	AcquisitionNaturalisation Acquisition = "naturalisation"
	AcquisitionMarriage       Acquisition = "marriage"
)

func (a Acquisition) Valid() bool {
	switch a {
	case AcquisitionBirth, AcquisitionDescent, AcquisitionNaturalisation, AcquisitionMarriage:
		return true
	}
	return false
}

// Fact is a single dated assertion that a person holds a nationality
// relationship to a country. A fact with no end date is active; setting
// the end date closes it permanently. Closed facts stay in the table as
// history and are never reopened - record a new fact instead.
type Fact struct {
	ID           id.FactID    `json:"id"`
	PersonID     id.PersonID  `json:"person_id"`
	CountryCode  string       `json:"country_code"`
	Type         Type         `json:"type"`
	Acquisition  *Acquisition `json:"acquisition,omitempty"`
	IsPrimary    bool         `json:"is_primary"`
	DisplayOrder int          `json:"display_order"`
	StartDate    *time.Time   `json:"start_date,omitempty"`
	EndDate      *time.Time   `json:"end_date,omitempty"`
	SourceID     *id.SourceID `json:"source_id,omitempty"`
	Confidence   int          `json:"confidence"`
	Note         string       `json:"note,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsActive reports whether the fact is currently in effect.
func (f *Fact) IsActive() bool {
	return f.EndDate == nil
}

// Close ends the fact. Closing an already closed fact is rejected.
func (f *Fact) Close(endDate, now time.Time) error {
	if f.EndDate != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "fact is already closed")
	}
	f.EndDate = &endDate
	f.UpdatedAt = now
	return nil
}

// Validate checks the field-level invariants that do not require
// looking at other facts.
func (f *Fact) Validate() error {
	if f.PersonID.IsNil() {
		return dErrors.New(dErrors.CodeInvariantViolation, "fact requires a person")
	}
	if f.CountryCode == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "fact requires a country code")
	}
	if !f.Type.Valid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown fact type")
	}
	if f.Acquisition != nil && !f.Acquisition.Valid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown acquisition")
	}
	if f.Acquisition != nil && f.Type != TypeCitizenship {
		return dErrors.New(dErrors.CodeInvariantViolation, "acquisition only applies to citizenship facts")
	}
	if f.Confidence < 0 || f.Confidence > 100 {
		return dErrors.New(dErrors.CodeInvariantViolation, "confidence must be between 0 and 100")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return dErrors.New(dErrors.CodeInvariantViolation, "end date cannot precede start date")
	}
	return nil
}
