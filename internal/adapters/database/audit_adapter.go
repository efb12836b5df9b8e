package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/Claimsadministration/pkg/errors"
)

// AuditAdapter persists audit log entries. It backs both the audit repository
// and the decision recorder: every eligibility decision and every lifecycle
// transition becomes one insert-only row. No update or delete statement exists
// in this adapter.
type AuditAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAuditAdapter creates a new audit adapter
func NewAuditAdapter(client *postgres.Client) *AuditAdapter {
	return &AuditAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var auditColumns = []interface{}{
	"id", "entry_type", "entity_type", "entity_id", "request_id",
	"actor_role", "from_status", "to_status", "eligible", "payload",
	"created_at",
}

// Append persists a new audit log entry
func (a *AuditAdapter) Append(ctx context.Context, entry *entities.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":          entry.ID,
		"entry_type":  entry.EntryType,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"request_id":  entry.RequestID,
		"actor_role":  entry.ActorRole,
		"from_status": entry.FromStatus,
		"to_status":   entry.ToStatus,
		"eligible":    entry.Eligible,
		"payload":     entry.Payload,
		"created_at":  entry.CreatedAt,
	}

	query, args, err := a.db.Insert("audit_log").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to append audit entry", err)
	}

	return nil
}

// RecordDecision persists an eligibility decision as an audit entry. The full
// result, including the evaluated snapshot, is serialized into the payload so
// the decision can be replayed later.
func (a *AuditAdapter) RecordDecision(ctx context.Context, result *entities.EligibilityResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize eligibility decision", err)
	}

	eligible := result.Eligible
	return a.Append(ctx, &entities.AuditLogEntry{
		EntryType:  entities.AuditEntryEligibilityDecision,
		EntityType: "member",
		EntityID:   result.Snapshot.MemberID,
		RequestID:  result.RequestID,
		Eligible:   &eligible,
		Payload:    string(payload),
		CreatedAt:  result.EvaluatedAt,
	})
}

// RecordTransition persists a lifecycle status transition as an audit entry
func (a *AuditAdapter) RecordTransition(ctx context.Context, entityType, entityID, fromStatus, toStatus string, actor entities.ActorRole) error {
	return a.Append(ctx, &entities.AuditLogEntry{
		EntryType:  entities.AuditEntryStatusTransition,
		EntityType: entityType,
		EntityID:   entityID,
		ActorRole:  actor,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
	})
}

// ListByEntity retrieves the audit trail for an entity, oldest first
func (a *AuditAdapter) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entities.AuditLogEntry, error) {
	query, args, err := a.db.Select(auditColumns...).
		From("audit_log").
		Where(goqu.Ex{"entity_type": entityType, "entity_id": entityID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list audit entries", err)
	}
	defer rows.Close()

	var entries []*entities.AuditLogEntry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan audit entry", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetByRequestID retrieves the audit entry for an eligibility request ID
func (a *AuditAdapter) GetByRequestID(ctx context.Context, requestID string) (*entities.AuditLogEntry, error) {
	query, args, err := a.db.Select(auditColumns...).
		From("audit_log").
		Where(goqu.Ex{"request_id": requestID, "entry_type": entities.AuditEntryEligibilityDecision}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	entry, err := scanAuditEntry(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("audit entry for request %s not found", requestID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get audit entry", err)
	}
	return entry, nil
}

func scanAuditEntry(row rowScanner) (*entities.AuditLogEntry, error) {
	entry := &entities.AuditLogEntry{}
	var requestID, actorRole, fromStatus, toStatus, payload sql.NullString
	var eligible sql.NullBool

	err := row.Scan(
		&entry.ID,
		&entry.EntryType,
		&entry.EntityType,
		&entry.EntityID,
		&requestID,
		&actorRole,
		&fromStatus,
		&toStatus,
		&eligible,
		&payload,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.RequestID = requestID.String
	entry.ActorRole = entities.ActorRole(actorRole.String)
	entry.FromStatus = fromStatus.String
	entry.ToStatus = toStatus.String
	entry.Payload = payload.String
	if eligible.Valid {
		entry.Eligible = &eligible.Bool
	}

	return entry, nil
}
