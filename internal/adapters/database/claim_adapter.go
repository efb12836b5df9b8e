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

// ClaimAdapter implements the ClaimRepository interface
type ClaimAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewClaimAdapter creates a new claim adapter
func NewClaimAdapter(client *postgres.Client) repositories.ClaimRepository {
	return &ClaimAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var claimColumns = []interface{}{
	"id", "claim_number", "member_id", "policy_id", "provider_id",
	"category_id", "service_code", "service_date", "status",
	"requested_amount", "patient_co_pay", "net_provider_amount",
	"pre_auth_id", "version", "created_at", "updated_at",
}

// Create creates a new claim
func (a *ClaimAdapter) Create(ctx context.Context, claim *entities.Claim) error {
	record := goqu.Record{
		"id":                  claim.ID,
		"claim_number":        claim.ClaimNumber,
		"member_id":           claim.MemberID,
		"policy_id":           claim.PolicyID,
		"provider_id":         claim.ProviderID,
		"category_id":         claim.CategoryID,
		"service_code":        claim.ServiceCode,
		"service_date":        claim.ServiceDate,
		"status":              claim.Status,
		"requested_amount":    claim.RequestedAmount,
		"patient_co_pay":      claim.PatientCoPay,
		"net_provider_amount": claim.NetProviderAmount,
		"pre_auth_id":         claim.PreAuthID,
		"version":             claim.Version,
		"created_at":          claim.CreatedAt,
		"updated_at":          claim.UpdatedAt,
	}

	query, args, err := a.db.Insert("claims").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create claim", err)
	}

	return nil
}

// GetByID retrieves a claim by ID
func (a *ClaimAdapter) GetByID(ctx context.Context, id string) (*entities.Claim, error) {
	query, args, err := a.db.Select(claimColumns...).
		From("claims").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	claim, err := scanClaim(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("claim with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get claim", err)
	}
	return claim, nil
}

// UpdateStatus writes the claim's status and version with a version-checked
// conditional update. Zero rows affected means another writer already moved
// the claim, which surfaces as a conflict rather than a silent overwrite.
func (a *ClaimAdapter) UpdateStatus(ctx context.Context, claim *entities.Claim, expectedVersion int) error {
	claim.UpdatedAt = time.Now()

	query, args, err := a.db.Update("claims").
		Set(goqu.Record{
			"status":     claim.Status,
			"version":    claim.Version,
			"updated_at": claim.UpdatedAt,
		}).
		Where(goqu.Ex{"id": claim.ID, "version": expectedVersion}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update claim status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewConflictError(
			fmt.Sprintf("claim %s was modified concurrently (expected version %d)", claim.ID, expectedVersion))
	}

	return nil
}

// SumApprovedAmount sums approved claim amounts for a member/service pair
// inside the benefit period
func (a *ClaimAdapter) SumApprovedAmount(ctx context.Context, memberID, serviceCode string, from, to time.Time) (float64, error) {
	query, args, err := a.db.Select(goqu.COALESCE(goqu.SUM("requested_amount"), 0)).
		From("claims").
		Where(
			goqu.Ex{"member_id": memberID, "service_code": serviceCode},
			goqu.C("status").In(string(entities.ClaimStatusApproved), string(entities.ClaimStatusPartiallyApproved), string(entities.ClaimStatusSettled)),
			goqu.C("service_date").Gte(from),
			goqu.C("service_date").Lte(to),
		).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build sum query", err)
	}

	var total float64
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to sum approved amounts", err)
	}

	return total, nil
}

// CountApproved counts approved claims for a member/service pair inside the
// benefit period
func (a *ClaimAdapter) CountApproved(ctx context.Context, memberID, serviceCode string, from, to time.Time) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("claims").
		Where(
			goqu.Ex{"member_id": memberID, "service_code": serviceCode},
			goqu.C("status").In(string(entities.ClaimStatusApproved), string(entities.ClaimStatusPartiallyApproved), string(entities.ClaimStatusSettled)),
			goqu.C("service_date").Gte(from),
			goqu.C("service_date").Lte(to),
		).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count approved claims", err)
	}

	return count, nil
}

// List retrieves claims matching the filter
func (a *ClaimAdapter) List(ctx context.Context, filter repositories.ClaimFilter) ([]*entities.Claim, error) {
	ds := a.db.Select(claimColumns...).From("claims")

	if filter.MemberID != "" {
		ds = ds.Where(goqu.Ex{"member_id": filter.MemberID})
	}
	if filter.PolicyID != "" {
		ds = ds.Where(goqu.Ex{"policy_id": filter.PolicyID})
	}
	if filter.ProviderID != "" {
		ds = ds.Where(goqu.Ex{"provider_id": filter.ProviderID})
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

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list claims", err)
	}
	defer rows.Close()

	var claims []*entities.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan claim", err)
		}
		claims = append(claims, claim)
	}

	return claims, nil
}

func scanClaim(row rowScanner) (*entities.Claim, error) {
	claim := &entities.Claim{}
	var preAuthID sql.NullString

	err := row.Scan(
		&claim.ID,
		&claim.ClaimNumber,
		&claim.MemberID,
		&claim.PolicyID,
		&claim.ProviderID,
		&claim.CategoryID,
		&claim.ServiceCode,
		&claim.ServiceDate,
		&claim.Status,
		&claim.RequestedAmount,
		&claim.PatientCoPay,
		&claim.NetProviderAmount,
		&preAuthID,
		&claim.Version,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if preAuthID.Valid {
		claim.PreAuthID = &preAuthID.String
	}

	return claim, nil
}
