// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "wordsrecord/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a PersonID where a FactID is expected.
type (
	PersonID    uuid.UUID
	FactID      uuid.UUID
	IncidentID  uuid.UUID
	SourceID    uuid.UUID
	StatementID uuid.UUID
	EditorID    uuid.UUID
)

// New functions - generate fresh random identifiers.

func NewPersonID() PersonID       { return PersonID(uuid.New()) }
func NewFactID() FactID           { return FactID(uuid.New()) }
func NewIncidentID() IncidentID   { return IncidentID(uuid.New()) }
func NewSourceID() SourceID       { return SourceID(uuid.New()) }
func NewStatementID() StatementID { return StatementID(uuid.New()) }
func NewEditorID() EditorID       { return EditorID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParsePersonID(s string) (PersonID, error) {
	id, err := parseUUID(s, "person ID")
	return PersonID(id), err
}

func ParseFactID(s string) (FactID, error) {
	id, err := parseUUID(s, "fact ID")
	return FactID(id), err
}

func ParseIncidentID(s string) (IncidentID, error) {
	id, err := parseUUID(s, "incident ID")
	return IncidentID(id), err
}

func ParseSourceID(s string) (SourceID, error) {
	id, err := parseUUID(s, "source ID")
	return SourceID(id), err
}

func ParseStatementID(s string) (StatementID, error) {
	id, err := parseUUID(s, "statement ID")
	return StatementID(id), err
}

func ParseEditorID(s string) (EditorID, error) {
	id, err := parseUUID(s, "editor ID")
	return EditorID(id), err
}

// String methods - for logging and debugging.

func (id PersonID) String() string    { return uuid.UUID(id).String() }
func (id FactID) String() string      { return uuid.UUID(id).String() }
func (id IncidentID) String() string  { return uuid.UUID(id).String() }
func (id SourceID) String() string    { return uuid.UUID(id).String() }
func (id StatementID) String() string { return uuid.UUID(id).String() }
func (id EditorID) String() string    { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id PersonID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id FactID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id IncidentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id SourceID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id StatementID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EditorID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic.
// Nil UUIDs are allowed here. Use IsNil() at the service layer for business
// validation, which lets store lookups return proper "not found" errors.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return parsed, nil
}
