package providers

import (
	"context"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// DecisionRecorder persists eligibility decisions and lifecycle transitions
// as immutable audit records. Recording happens for successful and failed
// decisions alike; a failed check is itself a fact worth keeping.
type DecisionRecorder interface {
	// RecordDecision persists an eligibility decision
	RecordDecision(ctx context.Context, result *entities.EligibilityResult) error

	// RecordTransition persists a lifecycle status transition
	RecordTransition(ctx context.Context, entityType, entityID, fromStatus, toStatus string, actor entities.ActorRole) error
}
