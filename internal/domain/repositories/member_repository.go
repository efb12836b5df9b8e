package repositories

import (
	"context"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// MemberRepository defines the interface for member operations
type MemberRepository interface {
	// Create creates a new member
	Create(ctx context.Context, member *entities.Member) error

	// GetByID retrieves a member by ID
	GetByID(ctx context.Context, id string) (*entities.Member, error)

	// GetByCardNumber retrieves a member by card number
	GetByCardNumber(ctx context.Context, cardNumber string) (*entities.Member, error)

	// Update updates a member
	Update(ctx context.Context, member *entities.Member) error

	// List retrieves members
	List(ctx context.Context, filter MemberFilter) ([]*entities.Member, error)
}

// MemberFilter defines filters for listing members
type MemberFilter struct {
	EmployerID string
	PolicyID   string
	Status     *entities.MemberStatus
	Limit      int
	Offset     int
}
