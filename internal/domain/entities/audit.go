package entities

import (
	"time"
)

// AuditEntryType distinguishes the kinds of audit records
type AuditEntryType string

const (
	AuditEntryEligibilityDecision AuditEntryType = "ELIGIBILITY_DECISION"
	AuditEntryStatusTransition    AuditEntryType = "STATUS_TRANSITION"
)

// AuditLogEntry is an append-only record of an eligibility decision or a
// lifecycle transition. Entries are never updated or deleted after creation;
// the audit repository exposes no update or delete operation.
type AuditLogEntry struct {
	ID         string         `json:"id" db:"id"`
	EntryType  AuditEntryType `json:"entry_type" db:"entry_type"`
	EntityType string         `json:"entity_type" db:"entity_type"`
	EntityID   string         `json:"entity_id" db:"entity_id"`
	RequestID  string         `json:"request_id" db:"request_id"`
	ActorRole  ActorRole      `json:"actor_role" db:"actor_role"`
	FromStatus string         `json:"from_status" db:"from_status"`
	ToStatus   string         `json:"to_status" db:"to_status"`
	Eligible   *bool          `json:"eligible" db:"eligible"`
	// Payload holds the serialized decision or transition detail (JSON)
	Payload   string    `json:"payload" db:"payload"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
