package repositories

import (
	"context"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// PolicyRepository defines the interface for policy operations
type PolicyRepository interface {
	// Create creates a new policy
	Create(ctx context.Context, policy *entities.Policy) error

	// GetByID retrieves a policy by ID
	GetByID(ctx context.Context, id string) (*entities.Policy, error)

	// GetByNumber retrieves a policy by policy number
	GetByNumber(ctx context.Context, policyNumber string) (*entities.Policy, error)

	// Update updates a policy
	Update(ctx context.Context, policy *entities.Policy) error

	// List retrieves policies
	List(ctx context.Context, filter PolicyFilter) ([]*entities.Policy, error)

	// GetBenefitConfiguration retrieves a benefit configuration with its
	// coverage rules
	GetBenefitConfiguration(ctx context.Context, id string) (*entities.BenefitConfiguration, error)
}

// PolicyFilter defines filters for listing policies
type PolicyFilter struct {
	EmployerID string
	Status     *entities.PolicyStatus
	Limit      int
	Offset     int
}
