package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/domain/providers"
	"github.com/zatekoja/Claimsadministration/internal/domain/repositories"
	"github.com/zatekoja/Claimsadministration/internal/eligibility"
	apperrors "github.com/zatekoja/Claimsadministration/pkg/errors"
)

const benefitConfigCacheTTLSeconds = 300

// EligibilityCheckRequest is the boundary input for an eligibility check
type EligibilityCheckRequest struct {
	MemberID        string    `json:"member_id"`
	PolicyID        string    `json:"policy_id,omitempty"`
	ProviderID      string    `json:"provider_id,omitempty"`
	CategoryID      string    `json:"category_id"`
	ServiceCode     string    `json:"service_code"`
	ServiceDate     time.Time `json:"service_date"`
	RequestedAmount float64   `json:"requested_amount,omitempty"`
}

// Validate rejects malformed requests before the decision core runs. These
// are request-shape problems, distinct from business-rule failures.
func (r *EligibilityCheckRequest) Validate() error {
	if r.MemberID == "" {
		return apperrors.NewValidationError("member_id is required")
	}
	if r.ServiceCode == "" {
		return apperrors.NewValidationError("service_code is required")
	}
	if r.ServiceDate.IsZero() {
		return apperrors.NewValidationError("service_date is required")
	}
	if r.RequestedAmount < 0 {
		return apperrors.NewValidationError("requested_amount must not be negative")
	}
	return nil
}

// EligibilityService builds request snapshots, runs the rule engine, and
// records every decision. The service owns all I/O around the engine; the
// engine itself stays pure.
type EligibilityService struct {
	memberRepo repositories.MemberRepository
	policyRepo repositories.PolicyRepository
	claimRepo  repositories.ClaimRepository
	cache      providers.CacheProvider
	engine     *eligibility.Engine
	recorder   providers.DecisionRecorder
}

// NewEligibilityService creates a new eligibility service. The cache is
// optional; pass nil to load benefit configurations from storage every time.
func NewEligibilityService(
	memberRepo repositories.MemberRepository,
	policyRepo repositories.PolicyRepository,
	claimRepo repositories.ClaimRepository,
	cache providers.CacheProvider,
	engine *eligibility.Engine,
	recorder providers.DecisionRecorder,
) *EligibilityService {
	return &EligibilityService{
		memberRepo: memberRepo,
		policyRepo: policyRepo,
		claimRepo:  claimRepo,
		cache:      cache,
		engine:     engine,
		recorder:   recorder,
	}
}

// CheckEligibility runs the full decision flow for a request: build a flat
// snapshot from storage, evaluate the rule chain, and persist the decision.
// The decision is recorded whether the member is eligible or not.
func (s *EligibilityService) CheckEligibility(ctx context.Context, req *EligibilityCheckRequest) (*entities.EligibilityResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := s.buildContext(ctx, req)
	if err != nil {
		return nil, err
	}

	result := s.engine.Evaluate(snapshot)

	if err := s.recorder.RecordDecision(ctx, result); err != nil {
		return nil, apperrors.NewInternalError("failed to record eligibility decision", err)
	}

	return result, nil
}

// buildContext copies the member/policy/benefit graph into a flat snapshot.
// The rule engine never sees live entity references.
func (s *EligibilityService) buildContext(ctx context.Context, req *EligibilityCheckRequest) (*entities.EligibilityContext, error) {
	snapshot := &entities.EligibilityContext{
		RequestID:       uuid.New().String(),
		MemberID:        req.MemberID,
		ProviderID:      req.ProviderID,
		CategoryID:      req.CategoryID,
		ServiceCode:     req.ServiceCode,
		ServiceDate:     req.ServiceDate,
		RequestedAmount: req.RequestedAmount,
	}

	member, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			// an unknown member is an ineligible decision, not a transport error
			snapshot.MemberStatus = ""
			return snapshot, nil
		}
		return nil, err
	}

	snapshot.MemberStatus = member.Status
	snapshot.CivilID = member.CivilID
	snapshot.CardNumber = member.CardNumber
	snapshot.EmployerID = member.EmployerID
	snapshot.EnrollmentDate = member.EnrollmentDate

	policyID := req.PolicyID
	if policyID == "" && member.PolicyID != nil {
		policyID = *member.PolicyID
	}
	if policyID == "" {
		return snapshot, nil
	}

	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return snapshot, nil
		}
		return nil, err
	}
	policyCopy := *policy
	snapshot.Policy = &policyCopy

	if policy.BenefitConfigurationID != nil {
		cfg, err := s.loadBenefitConfiguration(ctx, *policy.BenefitConfigurationID)
		if err != nil {
			return nil, err
		}
		snapshot.BenefitConfig = cfg
	}

	if err := s.loadConsumption(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// loadBenefitConfiguration reads a benefit configuration through the cache
func (s *EligibilityService) loadBenefitConfiguration(ctx context.Context, id string) (*entities.BenefitConfiguration, error) {
	key := benefitConfigCacheKey(id)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cfg entities.BenefitConfiguration
			if err := json.Unmarshal(data, &cfg); err == nil {
				return &cfg, nil
			}
		}
	}

	cfg, err := s.policyRepo.GetBenefitConfiguration(ctx, id)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return nil, nil
		}
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(cfg); err == nil {
			// best effort; a cold cache only costs a storage read
			_ = s.cache.Set(ctx, key, data, benefitConfigCacheTTLSeconds)
		}
	}

	return cfg, nil
}

// loadConsumption fills the member's prior usage against the resolved
// coverage limits for the policy's benefit period
func (s *EligibilityService) loadConsumption(ctx context.Context, snapshot *entities.EligibilityContext) error {
	cov, ok := eligibility.ResolveCoverage(snapshot.BenefitConfig, snapshot.CategoryID, snapshot.ServiceCode)
	if !ok || (cov.AmountLimit == nil && cov.CountLimit == nil) {
		return nil
	}

	from, to := benefitPeriod(snapshot.Policy)

	if cov.AmountLimit != nil {
		used, err := s.claimRepo.SumApprovedAmount(ctx, snapshot.MemberID, snapshot.ServiceCode, from, to)
		if err != nil {
			return err
		}
		snapshot.UsedAmount = used
	}

	if cov.CountLimit != nil {
		count, err := s.claimRepo.CountApproved(ctx, snapshot.MemberID, snapshot.ServiceCode, from, to)
		if err != nil {
			return err
		}
		snapshot.UsedCount = count
	}

	return nil
}

// benefitPeriod is the window limit consumption is summed over: the policy's
// coverage window, open ends clamped to a wide default
func benefitPeriod(policy *entities.Policy) (time.Time, time.Time) {
	from := time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)
	if policy != nil {
		if policy.StartDate != nil {
			from = *policy.StartDate
		}
		if policy.EndDate != nil {
			to = *policy.EndDate
		}
	}
	return from, to
}

// InvalidateBenefitConfiguration drops a cached benefit configuration after
// the configuration changes
func (s *EligibilityService) InvalidateBenefitConfiguration(ctx context.Context, id string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, benefitConfigCacheKey(id)); err != nil {
		return fmt.Errorf("failed to invalidate benefit configuration cache: %w", err)
	}
	return nil
}

func benefitConfigCacheKey(id string) string {
	return "benefit-config:" + id
}
