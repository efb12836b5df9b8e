package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/domain/providers"
	"github.com/zatekoja/Claimsadministration/internal/domain/repositories"
	"github.com/zatekoja/Claimsadministration/internal/eligibility"
	apperrors "github.com/zatekoja/Claimsadministration/pkg/errors"
)

// ClaimService handles claim creation and lifecycle transitions
type ClaimService struct {
	claimRepo      repositories.ClaimRepository
	preAuthRepo    repositories.PreAuthRepository
	eligibilitySvc *EligibilityService
	recorder       providers.DecisionRecorder
	eventBus       providers.EventBus
}

// NewClaimService creates a new claim service. The event bus is optional;
// pass nil to skip publishing status events.
func NewClaimService(
	claimRepo repositories.ClaimRepository,
	preAuthRepo repositories.PreAuthRepository,
	eligibilitySvc *EligibilityService,
	recorder providers.DecisionRecorder,
	eventBus providers.EventBus,
) *ClaimService {
	return &ClaimService{
		claimRepo:      claimRepo,
		preAuthRepo:    preAuthRepo,
		eligibilitySvc: eligibilitySvc,
		recorder:       recorder,
		eventBus:       eventBus,
	}
}

// CreateClaim creates a claim in DRAFT status after checking request shape
// and the amount invariant: requested = co-pay + net provider amount.
func (s *ClaimService) CreateClaim(ctx context.Context, claim *entities.Claim) error {
	if claim.MemberID == "" || claim.PolicyID == "" || claim.ProviderID == "" {
		return apperrors.NewValidationError("member_id, policy_id and provider_id are required")
	}
	if claim.ServiceCode == "" || claim.ServiceDate.IsZero() {
		return apperrors.NewValidationError("service_code and service_date are required")
	}
	if !claim.AmountsConsistent() {
		return apperrors.NewValidationError(
			fmt.Sprintf("requested amount %.2f must equal co-pay %.2f plus net provider amount %.2f",
				claim.RequestedAmount, claim.PatientCoPay, claim.NetProviderAmount))
	}

	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	claim.Status = entities.ClaimStatusDraft
	claim.Version = 1
	claim.CreatedAt = time.Now()
	claim.UpdatedAt = time.Now()

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return err
	}
	return nil
}

// SubmitClaim moves a claim DRAFT -> SUBMITTED. Before the transition runs,
// the policy validator and the eligibility rule engine must both report
// success for the claim's member/policy/service date; a business-rule block
// surfaces the engine's own typed reason, never a transition error.
func (s *ClaimService) SubmitClaim(ctx context.Context, claimID string, actor entities.ActorRole) (*entities.EligibilityResult, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	result, err := s.eligibilitySvc.CheckEligibility(ctx, &EligibilityCheckRequest{
		MemberID:        claim.MemberID,
		PolicyID:        claim.PolicyID,
		ProviderID:      claim.ProviderID,
		CategoryID:      claim.CategoryID,
		ServiceCode:     claim.ServiceCode,
		ServiceDate:     claim.ServiceDate,
		RequestedAmount: claim.RequestedAmount,
	})
	if err != nil {
		return nil, err
	}
	if !result.Eligible {
		return result, blockingFailure(result)
	}

	if err := s.checkPreApproval(ctx, claim, result); err != nil {
		return result, err
	}

	if err := s.applyTransition(ctx, claim, entities.ClaimStatusSubmitted, actor); err != nil {
		return result, err
	}
	return result, nil
}

// checkPreApproval enforces that a claim whose coverage requires advance
// approval references a usable pre-authorization
func (s *ClaimService) checkPreApproval(ctx context.Context, claim *entities.Claim, result *entities.EligibilityResult) error {
	required := false
	for _, reason := range result.Reasons {
		if reason.Code == entities.ReasonPreApprovalRequired {
			required = true
			break
		}
	}
	if !required {
		return nil
	}

	if claim.PreAuthID == nil {
		return &eligibility.Failure{
			Code:    entities.ReasonPreApprovalRequired,
			Message: fmt.Sprintf("service %s requires an approved pre-authorization", claim.ServiceCode),
		}
	}

	preAuth, err := s.preAuthRepo.GetByID(ctx, *claim.PreAuthID)
	if err != nil {
		return err
	}
	if !preAuth.UsableForClaim(time.Now()) {
		return &eligibility.Failure{
			Code:    entities.ReasonPreApprovalRequired,
			Message: fmt.Sprintf("pre-authorization %s is not usable", preAuth.ID),
			Detail:  fmt.Sprintf("pre-authorization status is %s", preAuth.Status),
		}
	}
	return nil
}

// TransitionClaim moves a claim to the target status on behalf of an actor.
// Legality and role requirements come from the claim lifecycle table; the
// write is version-checked so concurrent actors cannot both transition the
// same claim.
func (s *ClaimService) TransitionClaim(ctx context.Context, claimID string, to entities.ClaimStatus, actor entities.ActorRole) (*entities.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, claim, to, actor); err != nil {
		return nil, err
	}
	return claim, nil
}

// applyTransition runs the state machine, persists the new status with a
// version check, records the transition, and publishes a status event
func (s *ClaimService) applyTransition(ctx context.Context, claim *entities.Claim, to entities.ClaimStatus, actor entities.ActorRole) error {
	from := claim.Status

	if err := claim.Transition(to, actor); err != nil {
		return err
	}

	expectedVersion := claim.Version
	claim.Version++
	if err := s.claimRepo.UpdateStatus(ctx, claim, expectedVersion); err != nil {
		claim.Status = from
		claim.Version = expectedVersion
		return err
	}

	if err := s.recorder.RecordTransition(ctx, "claim", claim.ID, string(from), string(to), actor); err != nil {
		return apperrors.NewInternalError("failed to record claim transition", err)
	}

	s.publishEvent(ctx, claim, from, to, actor)
	return nil
}

func (s *ClaimService) publishEvent(ctx context.Context, claim *entities.Claim, from, to entities.ClaimStatus, actor entities.ActorRole) {
	if s.eventBus == nil {
		return
	}
	event := &entities.StatusEvent{
		ID:         uuid.New().String(),
		Type:       entities.StatusEventClaimTransition,
		EntityID:   claim.ID,
		FromStatus: string(from),
		ToStatus:   string(to),
		ActorRole:  actor,
		OccurredAt: time.Now(),
	}
	// events are advisory; a publish failure must not fail the transition
	_ = s.eventBus.Publish(ctx, providers.EventChannelClaimUpdates, event)
	_ = s.eventBus.Publish(ctx, providers.GetClaimChannel(claim.ID), event)
}

// GetClaim retrieves a claim by ID
func (s *ClaimService) GetClaim(ctx context.Context, id string) (*entities.Claim, error) {
	return s.claimRepo.GetByID(ctx, id)
}

// ListClaims retrieves claims matching the filter
func (s *ClaimService) ListClaims(ctx context.Context, filter repositories.ClaimFilter) ([]*entities.Claim, error) {
	return s.claimRepo.List(ctx, filter)
}

// blockingFailure extracts the hard failure from an ineligible result as a
// typed error the caller can match on
func blockingFailure(result *entities.EligibilityResult) error {
	for _, reason := range result.Reasons {
		if !reason.Warning {
			return &eligibility.Failure{
				Code:    reason.Code,
				Message: reason.Message,
				Detail:  reason.Detail,
			}
		}
	}
	return &eligibility.Failure{
		Code:    entities.ReasonBusinessRuleViolated,
		Message: "claim is not eligible",
	}
}
