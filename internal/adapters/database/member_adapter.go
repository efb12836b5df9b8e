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

// MemberAdapter implements the MemberRepository interface
type MemberAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMemberAdapter creates a new member adapter
func NewMemberAdapter(client *postgres.Client) repositories.MemberRepository {
	return &MemberAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var memberColumns = []interface{}{
	"id", "civil_id", "card_number", "first_name", "last_name",
	"status", "policy_id", "employer_id", "enrollment_date",
	"created_at", "updated_at",
}

// Create creates a new member
func (a *MemberAdapter) Create(ctx context.Context, member *entities.Member) error {
	record := goqu.Record{
		"id":              member.ID,
		"civil_id":        member.CivilID,
		"card_number":     member.CardNumber,
		"first_name":      member.FirstName,
		"last_name":       member.LastName,
		"status":          member.Status,
		"policy_id":       member.PolicyID,
		"employer_id":     member.EmployerID,
		"enrollment_date": member.EnrollmentDate,
		"created_at":      member.CreatedAt,
		"updated_at":      member.UpdatedAt,
	}

	query, args, err := a.db.Insert("members").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create member", err)
	}

	return nil
}

// GetByID retrieves a member by ID
func (a *MemberAdapter) GetByID(ctx context.Context, id string) (*entities.Member, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("member with id %s not found", id))
}

// GetByCardNumber retrieves a member by card number
func (a *MemberAdapter) GetByCardNumber(ctx context.Context, cardNumber string) (*entities.Member, error) {
	return a.getOne(ctx, goqu.Ex{"card_number": cardNumber},
		fmt.Sprintf("member with card number %s not found", cardNumber))
}

func (a *MemberAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.Member, error) {
	query, args, err := a.db.Select(memberColumns...).
		From("members").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	member, err := scanMember(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get member", err)
	}
	return member, nil
}

// Update updates a member
func (a *MemberAdapter) Update(ctx context.Context, member *entities.Member) error {
	member.UpdatedAt = time.Now()

	record := goqu.Record{
		"civil_id":        member.CivilID,
		"card_number":     member.CardNumber,
		"first_name":      member.FirstName,
		"last_name":       member.LastName,
		"status":          member.Status,
		"policy_id":       member.PolicyID,
		"employer_id":     member.EmployerID,
		"enrollment_date": member.EnrollmentDate,
		"updated_at":      member.UpdatedAt,
	}

	query, args, err := a.db.Update("members").
		Set(record).
		Where(goqu.Ex{"id": member.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update member", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("member with id %s not found", member.ID))
	}

	return nil
}

// List retrieves members matching the filter
func (a *MemberAdapter) List(ctx context.Context, filter repositories.MemberFilter) ([]*entities.Member, error) {
	ds := a.db.Select(memberColumns...).From("members")

	if filter.EmployerID != "" {
		ds = ds.Where(goqu.Ex{"employer_id": filter.EmployerID})
	}
	if filter.PolicyID != "" {
		ds = ds.Where(goqu.Ex{"policy_id": filter.PolicyID})
	}
	if filter.Status != nil {
		ds = ds.Where(goqu.Ex{"status": *filter.Status})
	}

	ds = ds.Order(goqu.I("card_number").Asc())

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
		return nil, apperrors.NewInternalError("failed to list members", err)
	}
	defer rows.Close()

	var members []*entities.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan member", err)
		}
		members = append(members, member)
	}

	return members, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner) (*entities.Member, error) {
	member := &entities.Member{}
	var policyID sql.NullString
	var enrollmentDate sql.NullTime

	err := row.Scan(
		&member.ID,
		&member.CivilID,
		&member.CardNumber,
		&member.FirstName,
		&member.LastName,
		&member.Status,
		&policyID,
		&member.EmployerID,
		&enrollmentDate,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if policyID.Valid {
		member.PolicyID = &policyID.String
	}
	if enrollmentDate.Valid {
		member.EnrollmentDate = &enrollmentDate.Time
	}

	return member, nil
}
