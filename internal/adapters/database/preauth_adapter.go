package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/domain/repositories"
	"github.com/zatekoja/Claimsadministration/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/Claimsadministration/pkg/errors"
)

// PreAuthAdapter implements the PreAuthRepository interface
type PreAuthAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPreAuthAdapter creates a new pre-authorization adapter
func NewPreAuthAdapter(client *postgres.Client) repositories.PreAuthRepository {
	return &PreAuthAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var preAuthColumns = []interface{}{
	"id", "member_id", "policy_id", "provider_id", "category_id",
	"service_code", "status", "valid_from", "valid_until", "version",
	"created_at", "updated_at",
}

// Create creates a new pre-authorization
func (a *PreAuthAdapter) Create(ctx context.Context, preAuth *entities.PreAuthorization) error {
	record := goqu.Record{
		"id":           preAuth.ID,
		"member_id":    preAuth.MemberID,
		"policy_id":    preAuth.PolicyID,
		"provider_id":  preAuth.ProviderID,
		"category_id":  preAuth.CategoryID,
		"service_code": preAuth.ServiceCode,
		"status":       preAuth.Status,
		"valid_from":   preAuth.ValidFrom,
		"valid_until":  preAuth.ValidUntil,
		"version":      preAuth.Version,
		"created_at":   preAuth.CreatedAt,
		"updated_at":   preAuth.UpdatedAt,
	}

	query, args, err := a.db.Insert("pre_authorizations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create pre-authorization", err)
	}

	return nil
}

// GetByID retrieves a pre-authorization by ID
func (a *PreAuthAdapter) GetByID(ctx context.Context, id string) (*entities.PreAuthorization, error) {
	query, args, err := a.db.Select(preAuthColumns...).
		From("pre_authorizations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	preAuth, err := scanPreAuth(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("pre-authorization with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get pre-authorization", err)
	}
	return preAuth, nil
}

// UpdateStatus writes the new status with a version-checked conditional
// update; zero rows affected surfaces as a conflict
func (a *PreAuthAdapter) UpdateStatus(ctx context.Context, preAuth *entities.PreAuthorization, expectedVersion int) error {
	preAuth.UpdatedAt = time.Now()

	query, args, err := a.db.Update("pre_authorizations").
		Set(goqu.Record{
			"status":      preAuth.Status,
			"valid_from":  preAuth.ValidFrom,
			"valid_until": preAuth.ValidUntil,
			"version":     preAuth.Version,
			"updated_at":  preAuth.UpdatedAt,
		}).
		Where(goqu.Ex{"id": preAuth.ID, "version": expectedVersion}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update pre-authorization status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewConflictError(
			fmt.Sprintf("pre-authorization %s was modified concurrently (expected version %d)", preAuth.ID, expectedVersion))
	}

	return nil
}

// ListApprovedExpiring retrieves APPROVED pre-authorizations whose validity
// window ended at or before the cutoff
func (a *PreAuthAdapter) ListApprovedExpiring(ctx context.Context, cutoff time.Time) ([]*entities.PreAuthorization, error) {
	query, args, err := a.db.Select(preAuthColumns...).
		From("pre_authorizations").
		Where(
			goqu.Ex{"status": entities.PreAuthStatusApproved},
			goqu.C("valid_until").IsNotNull(),
			goqu.C("valid_until").Lte(cutoff),
		).
		Order(goqu.I("valid_until").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryMany(ctx, query, args)
}

// List retrieves pre-authorizations matching the filter
func (a *PreAuthAdapter) List(ctx context.Context, filter repositories.PreAuthFilter) ([]*entities.PreAuthorization, error) {
	ds := a.db.Select(preAuthColumns...).From("pre_authorizations")

	if filter.MemberID != "" {
		ds = ds.Where(goqu.Ex{"member_id": filter.MemberID})
	}
	if filter.Status != nil {
		ds = ds.Where(goqu.Ex{"status": *filter.Status})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryMany(ctx, query, args)
}

func (a *PreAuthAdapter) queryMany(ctx context.Context, query string, args []interface{}) ([]*entities.PreAuthorization, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list pre-authorizations", err)
	}
	defer rows.Close()

	var preAuths []*entities.PreAuthorization
	for rows.Next() {
		preAuth, err := scanPreAuth(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan pre-authorization", err)
		}
		preAuths = append(preAuths, preAuth)
	}

	return preAuths, nil
}

func scanPreAuth(row rowScanner) (*entities.PreAuthorization, error) {
	preAuth := &entities.PreAuthorization{}
	var validFrom, validUntil sql.NullTime

	err := row.Scan(
		&preAuth.ID,
		&preAuth.MemberID,
		&preAuth.PolicyID,
		&preAuth.ProviderID,
		&preAuth.CategoryID,
		&preAuth.ServiceCode,
		&preAuth.Status,
		&validFrom,
		&validUntil,
		&preAuth.Version,
		&preAuth.CreatedAt,
		&preAuth.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if validFrom.Valid {
		preAuth.ValidFrom = &validFrom.Time
	}
	if validUntil.Valid {
		preAuth.ValidUntil = &validUntil.Time
	}

	return preAuth, nil
}
