package audit

import (
	"time"

	id "wordsrecord/pkg/domain"
)

// Event is emitted from domain logic to capture key editorial actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	// EntityType and EntityID identify the record acted on
	// (person, nationality_fact, statement, incident, source, editor).
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	// EditorID tracks who performed the action.
	EditorID id.EditorID `json:"editor_id"`
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string `json:"request_id,omitempty"`
	// DeviceFingerprint is a coarse browser/OS hash so actions from an
	// unfamiliar device stand out in review.
	DeviceFingerprint string `json:"device_fingerprint,omitempty"`
	// Detail carries action-specific context (country code, violation list, ...).
	Detail map[string]string `json:"detail,omitempty"`
}

type Action string

const (
	EventPersonCreated Action = "person_created"
	EventPersonUpdated Action = "person_updated"
	EventPersonDeleted Action = "person_deleted"

	EventFactUpserted Action = "nationality_fact_upserted"
	EventFactClosed   Action = "nationality_fact_closed"

	EventStatementCreated Action = "statement_created"
	EventStatementUpdated Action = "statement_updated"
	EventStatementDeleted Action = "statement_deleted"

	EventIncidentCreated Action = "incident_created"
	EventIncidentUpdated Action = "incident_updated"

	EventSourceCreated Action = "source_created"
	EventSourceUpdated Action = "source_updated"

	EventEditorLogin Action = "editor_login"
)
