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

// PolicyAdapter implements the PolicyRepository interface
type PolicyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPolicyAdapter creates a new policy adapter
func NewPolicyAdapter(client *postgres.Client) repositories.PolicyRepository {
	return &PolicyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var policyColumns = []interface{}{
	"id", "policy_number", "employer_id", "status", "start_date", "end_date",
	"benefit_configuration_id", "is_active", "created_at", "updated_at",
}

// Create creates a new policy
func (a *PolicyAdapter) Create(ctx context.Context, policy *entities.Policy) error {
	record := goqu.Record{
		"id":                       policy.ID,
		"policy_number":            policy.PolicyNumber,
		"employer_id":              policy.EmployerID,
		"status":                   policy.Status,
		"start_date":               policy.StartDate,
		"end_date":                 policy.EndDate,
		"benefit_configuration_id": policy.BenefitConfigurationID,
		"is_active":                policy.IsActive,
		"created_at":               policy.CreatedAt,
		"updated_at":               policy.UpdatedAt,
	}

	query, args, err := a.db.Insert("policies").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create policy", err)
	}

	return nil
}

// GetByID retrieves a policy by ID
func (a *PolicyAdapter) GetByID(ctx context.Context, id string) (*entities.Policy, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("policy with id %s not found", id))
}

// GetByNumber retrieves a policy by policy number
func (a *PolicyAdapter) GetByNumber(ctx context.Context, policyNumber string) (*entities.Policy, error) {
	return a.getOne(ctx, goqu.Ex{"policy_number": policyNumber},
		fmt.Sprintf("policy with number %s not found", policyNumber))
}

func (a *PolicyAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.Policy, error) {
	query, args, err := a.db.Select(policyColumns...).
		From("policies").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	policy, err := scanPolicy(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get policy", err)
	}
	return policy, nil
}

// Update updates a policy
func (a *PolicyAdapter) Update(ctx context.Context, policy *entities.Policy) error {
	policy.UpdatedAt = time.Now()

	record := goqu.Record{
		"policy_number":            policy.PolicyNumber,
		"employer_id":              policy.EmployerID,
		"status":                   policy.Status,
		"start_date":               policy.StartDate,
		"end_date":                 policy.EndDate,
		"benefit_configuration_id": policy.BenefitConfigurationID,
		"is_active":                policy.IsActive,
		"updated_at":               policy.UpdatedAt,
	}

	query, args, err := a.db.Update("policies").
		Set(record).
		Where(goqu.Ex{"id": policy.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update policy", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("policy with id %s not found", policy.ID))
	}

	return nil
}

// List retrieves policies matching the filter
func (a *PolicyAdapter) List(ctx context.Context, filter repositories.PolicyFilter) ([]*entities.Policy, error) {
	ds := a.db.Select(policyColumns...).From("policies")

	if filter.EmployerID != "" {
		ds = ds.Where(goqu.Ex{"employer_id": filter.EmployerID})
	}
	if filter.Status != nil {
		ds = ds.Where(goqu.Ex{"status": *filter.Status})
	}

	ds = ds.Order(goqu.I("policy_number").Asc())

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
		return nil, apperrors.NewInternalError("failed to list policies", err)
	}
	defer rows.Close()

	var policies []*entities.Policy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan policy", err)
		}
		policies = append(policies, policy)
	}

	return policies, nil
}

// GetBenefitConfiguration retrieves a benefit configuration together with its
// coverage rules. Rules are loaded ordered so service-level entries resolve
// deterministically.
func (a *PolicyAdapter) GetBenefitConfiguration(ctx context.Context, id string) (*entities.BenefitConfiguration, error) {
	query, args, err := a.db.Select(
		"id", "name", "is_active", "created_at", "updated_at",
	).From("benefit_configurations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	config := &entities.BenefitConfiguration{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.Name,
		&config.IsActive,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("benefit configuration with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get benefit configuration", err)
	}

	rules, err := a.loadCoverageRules(ctx, id)
	if err != nil {
		return nil, err
	}
	config.Rules = rules

	return config, nil
}

func (a *PolicyAdapter) loadCoverageRules(ctx context.Context, configID string) ([]entities.CoverageRule, error) {
	query, args, err := a.db.Select(
		"id", "benefit_configuration_id", "target", "category_id", "service_id",
		"coverage_percent", "amount_limit", "count_limit", "waiting_period_days",
		"requires_pre_approval", "is_active", "created_at", "updated_at",
	).From("coverage_rules").
		Where(goqu.Ex{"benefit_configuration_id": configID}).
		Order(goqu.I("target").Asc(), goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rules query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load coverage rules", err)
	}
	defer rows.Close()

	var rules []entities.CoverageRule
	for rows.Next() {
		var rule entities.CoverageRule
		var serviceID sql.NullString
		var amountLimit sql.NullFloat64
		var countLimit, waitingPeriodDays sql.NullInt64

		err := rows.Scan(
			&rule.ID,
			&rule.BenefitConfigurationID,
			&rule.Target,
			&rule.CategoryID,
			&serviceID,
			&rule.CoveragePercent,
			&amountLimit,
			&countLimit,
			&waitingPeriodDays,
			&rule.RequiresPreApproval,
			&rule.IsActive,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan coverage rule", err)
		}

		if serviceID.Valid {
			rule.ServiceID = &serviceID.String
		}
		if amountLimit.Valid {
			rule.AmountLimit = &amountLimit.Float64
		}
		if countLimit.Valid {
			limit := int(countLimit.Int64)
			rule.CountLimit = &limit
		}
		if waitingPeriodDays.Valid {
			days := int(waitingPeriodDays.Int64)
			rule.WaitingPeriodDays = &days
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func scanPolicy(row rowScanner) (*entities.Policy, error) {
	policy := &entities.Policy{}
	var startDate, endDate sql.NullTime
	var benefitConfigID sql.NullString

	err := row.Scan(
		&policy.ID,
		&policy.PolicyNumber,
		&policy.EmployerID,
		&policy.Status,
		&startDate,
		&endDate,
		&benefitConfigID,
		&policy.IsActive,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		policy.StartDate = &startDate.Time
	}
	if endDate.Valid {
		policy.EndDate = &endDate.Time
	}
	if benefitConfigID.Valid {
		policy.BenefitConfigurationID = &benefitConfigID.String
	}

	return policy, nil
}
