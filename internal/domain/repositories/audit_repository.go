package repositories

import (
	"context"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// AuditRepository defines the interface for audit log operations.
//
// The audit log is append-only: the interface deliberately exposes no update
// or delete operation, so the storage layer cannot be asked to mutate an
// entry after creation.
type AuditRepository interface {
	// Append persists a new audit log entry
	Append(ctx context.Context, entry *entities.AuditLogEntry) error

	// ListByEntity retrieves the audit trail for an entity, oldest first
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entities.AuditLogEntry, error)

	// GetByRequestID retrieves the audit entry for an eligibility request ID
	GetByRequestID(ctx context.Context, requestID string) (*entities.AuditLogEntry, error)
}
