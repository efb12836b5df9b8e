package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// PreAuthRepository defines the interface for pre-authorization operations
type PreAuthRepository interface {
	// Create creates a new pre-authorization
	Create(ctx context.Context, preAuth *entities.PreAuthorization) error

	// GetByID retrieves a pre-authorization by ID
	GetByID(ctx context.Context, id string) (*entities.PreAuthorization, error)

	// UpdateStatus writes the new status using a version-checked conditional
	// update, mirroring ClaimRepository.UpdateStatus
	UpdateStatus(ctx context.Context, preAuth *entities.PreAuthorization, expectedVersion int) error

	// ListApprovedExpiring retrieves APPROVED pre-authorizations whose
	// validity window ended at or before the cutoff
	ListApprovedExpiring(ctx context.Context, cutoff time.Time) ([]*entities.PreAuthorization, error)

	// List retrieves pre-authorizations
	List(ctx context.Context, filter PreAuthFilter) ([]*entities.PreAuthorization, error)
}

// PreAuthFilter defines filters for listing pre-authorizations
type PreAuthFilter struct {
	MemberID string
	Status   *entities.PreAuthStatus
	Limit    int
	Offset   int
}
