package models

import (
	"strings"
	"time"

	id "wordsrecord/pkg/domain"
	dErrors "wordsrecord/pkg/domain-errors"
	"wordsrecord/pkg/slug"
)

// Person is the aggregate root for everyone whose statements the record
// tracks.
//
// Invariants:
//   - Slug is non-empty, lowercase, and unique across persons
//   - FullName is non-empty and at most 200 characters
//
// # Nationality cache
//
// NationalityPrimaryCode and NationalityCodesCached are denormalized from the
// person's active nationality facts so profile reads never join the fact
// table. They are derived fields: the nationality service recomputes and
// overwrites them wholesale after every fact mutation, and nothing else may
// write them. The person store exposes them through UpdateNationalityCache
// only; the general Update deliberately leaves both columns untouched.
type Person struct {
	ID       id.PersonID `json:"id"`
	Slug     string      `json:"slug"`
	FullName string      `json:"full_name"`
	Bio      string      `json:"bio,omitempty"`

	NationalityPrimaryCode *string  `json:"nationality_primary_code"`
	NationalityCodesCached []string `json:"nationality_codes_cached"`

	// LegacyNationality holds the free-text field imported from the old
	// system. Read only by the legacy backfill; never shown publicly.
	LegacyNationality *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPerson constructs a Person, enforcing construction invariants.
func NewPerson(personID id.PersonID, rawSlug, fullName, bio string, now time.Time) (*Person, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "person name cannot be empty")
	}
	if len(fullName) > 200 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "person name exceeds 200 characters")
	}

	slugValue := strings.TrimSpace(rawSlug)
	if slugValue == "" {
		slugValue = slug.Make(fullName)
	}
	if !slug.Valid(slugValue) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "slug must be lowercase letters, digits and hyphens")
	}

	return &Person{
		ID:        personID,
		Slug:      slugValue,
		FullName:  fullName,
		Bio:       strings.TrimSpace(bio),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate re-checks the construction invariants after field mutation.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "person name cannot be empty")
	}
	if len(p.FullName) > 200 {
		return dErrors.New(dErrors.CodeInvariantViolation, "person name exceeds 200 characters")
	}
	if !slug.Valid(p.Slug) {
		return dErrors.New(dErrors.CodeInvariantViolation, "slug must be lowercase letters, digits and hyphens")
	}
	return nil
}

