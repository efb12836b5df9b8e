package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// ClaimRepository defines the interface for claim operations
type ClaimRepository interface {
	// Create creates a new claim
	Create(ctx context.Context, claim *entities.Claim) error

	// GetByID retrieves a claim by ID
	GetByID(ctx context.Context, id string) (*entities.Claim, error)

	// UpdateStatus writes the claim's new status using a version-checked
	// conditional update. It fails with a conflict error when the stored
	// version no longer matches expectedVersion, so two concurrent actors
	// cannot both transition the same claim.
	UpdateStatus(ctx context.Context, claim *entities.Claim, expectedVersion int) error

	// SumApprovedAmount sums approved claim amounts for a member/service pair
	// inside the benefit period, for amount-limit arithmetic
	SumApprovedAmount(ctx context.Context, memberID, serviceCode string, from, to time.Time) (float64, error)

	// CountApproved counts approved claims for a member/service pair inside
	// the benefit period, for count-limit arithmetic
	CountApproved(ctx context.Context, memberID, serviceCode string, from, to time.Time) (int, error)

	// List retrieves claims
	List(ctx context.Context, filter ClaimFilter) ([]*entities.Claim, error)
}

// ClaimFilter defines filters for listing claims
type ClaimFilter struct {
	MemberID   string
	PolicyID   string
	ProviderID string
	Status     *entities.ClaimStatus
	Limit      int
	Offset     int
}
