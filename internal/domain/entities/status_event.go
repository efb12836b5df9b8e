package entities

import (
	"time"
)

// StatusEventType identifies what kind of lifecycle change an event carries
type StatusEventType string

const (
	StatusEventClaimTransition   StatusEventType = "claim.transition"
	StatusEventPreAuthTransition StatusEventType = "preauth.transition"
)

// StatusEvent is published on the event bus whenever a claim or
// pre-authorization changes status
type StatusEvent struct {
	ID         string          `json:"id"`
	Type       StatusEventType `json:"type"`
	EntityID   string          `json:"entity_id"`
	FromStatus string          `json:"from_status"`
	ToStatus   string          `json:"to_status"`
	ActorRole  ActorRole       `json:"actor_role"`
	OccurredAt time.Time       `json:"occurred_at"`
}
