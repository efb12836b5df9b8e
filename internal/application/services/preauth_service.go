package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/domain/providers"
	"github.com/zatekoja/Claimsadministration/internal/domain/repositories"
	apperrors "github.com/zatekoja/Claimsadministration/pkg/errors"
)

// PreAuthService handles pre-authorization requests and lifecycle transitions
type PreAuthService struct {
	preAuthRepo    repositories.PreAuthRepository
	eligibilitySvc *EligibilityService
	recorder       providers.DecisionRecorder
	eventBus       providers.EventBus
}

// NewPreAuthService creates a new pre-authorization service
func NewPreAuthService(
	preAuthRepo repositories.PreAuthRepository,
	eligibilitySvc *EligibilityService,
	recorder providers.DecisionRecorder,
	eventBus providers.EventBus,
) *PreAuthService {
	return &PreAuthService{
		preAuthRepo:    preAuthRepo,
		eligibilitySvc: eligibilitySvc,
		recorder:       recorder,
		eventBus:       eventBus,
	}
}

// RequestPreAuth creates a pre-authorization in REQUESTED status. The
// member/policy/service combination must pass the eligibility check first;
// an ineligible combination surfaces the engine's typed reason.
func (s *PreAuthService) RequestPreAuth(ctx context.Context, preAuth *entities.PreAuthorization) (*entities.EligibilityResult, error) {
	if preAuth.MemberID == "" || preAuth.ServiceCode == "" {
		return nil, apperrors.NewValidationError("member_id and service_code are required")
	}

	result, err := s.eligibilitySvc.CheckEligibility(ctx, &EligibilityCheckRequest{
		MemberID:    preAuth.MemberID,
		PolicyID:    preAuth.PolicyID,
		ProviderID:  preAuth.ProviderID,
		CategoryID:  preAuth.CategoryID,
		ServiceCode: preAuth.ServiceCode,
		ServiceDate: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !result.Eligible {
		return result, blockingFailure(result)
	}

	if preAuth.ID == "" {
		preAuth.ID = uuid.New().String()
	}
	preAuth.Status = entities.PreAuthStatusRequested
	preAuth.Version = 1
	preAuth.CreatedAt = time.Now()
	preAuth.UpdatedAt = time.Now()

	if err := s.preAuthRepo.Create(ctx, preAuth); err != nil {
		return result, err
	}
	return result, nil
}

// TransitionPreAuth moves a pre-authorization to the target status on behalf
// of an actor
func (s *PreAuthService) TransitionPreAuth(ctx context.Context, id string, to entities.PreAuthStatus, actor entities.ActorRole) (*entities.PreAuthorization, error) {
	preAuth, err := s.preAuthRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, preAuth, to, actor); err != nil {
		return nil, err
	}
	return preAuth, nil
}

// ExpireOverdue sweeps APPROVED pre-authorizations whose validity window has
// elapsed and transitions each to EXPIRED with the system role. The state
// machine never self-triggers on wall-clock time; this sweep is the only
// path to expiry. Returns the number of pre-authorizations expired.
func (s *PreAuthService) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.preAuthRepo.ListApprovedExpiring(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, preAuth := range overdue {
		if err := s.applyTransition(ctx, preAuth, entities.PreAuthStatusExpired, entities.RoleSystem); err != nil {
			// a concurrent transition already moved this one; skip it
			if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeConflict {
				continue
			}
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// GetPreAuth retrieves a pre-authorization by ID
func (s *PreAuthService) GetPreAuth(ctx context.Context, id string) (*entities.PreAuthorization, error) {
	return s.preAuthRepo.GetByID(ctx, id)
}

// IsUsableForClaim reports whether the pre-authorization can back a claim now
func (s *PreAuthService) IsUsableForClaim(ctx context.Context, id string) (bool, error) {
	preAuth, err := s.preAuthRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return preAuth.UsableForClaim(time.Now()), nil
}

func (s *PreAuthService) applyTransition(ctx context.Context, preAuth *entities.PreAuthorization, to entities.PreAuthStatus, actor entities.ActorRole) error {
	from := preAuth.Status

	if err := preAuth.Transition(to, actor); err != nil {
		return err
	}

	expectedVersion := preAuth.Version
	preAuth.Version++
	if err := s.preAuthRepo.UpdateStatus(ctx, preAuth, expectedVersion); err != nil {
		preAuth.Status = from
		preAuth.Version = expectedVersion
		return err
	}

	if err := s.recorder.RecordTransition(ctx, "pre-authorization", preAuth.ID, string(from), string(to), actor); err != nil {
		return apperrors.NewInternalError("failed to record pre-authorization transition", err)
	}

	if s.eventBus != nil {
		event := &entities.StatusEvent{
			ID:         uuid.New().String(),
			Type:       entities.StatusEventPreAuthTransition,
			EntityID:   preAuth.ID,
			FromStatus: string(from),
			ToStatus:   string(to),
			ActorRole:  actor,
			OccurredAt: time.Now(),
		}
		_ = s.eventBus.Publish(ctx, providers.EventChannelPreAuthUpdates, event)
	}
	return nil
}
