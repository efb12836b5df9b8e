package eligibility

import (
	"fmt"
	"time"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// Failure is a structured business-rule failure. It carries a stable reason
// code plus enough detail for the caller to render a precise message without
// string parsing.
type Failure struct {
	Code    entities.ReasonCode `json:"code"`
	Message string              `json:"message"`
	Detail  string              `json:"detail,omitempty"`
}

// Error implements the error interface
func (f *Failure) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", f.Code, f.Message, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// statusFailure maps each non-usable policy status to its reason. The switch
// enumerates the full closed status set so a new status cannot silently fall
// through to a generic message.
func statusFailure(policy *entities.Policy) *Failure {
	switch policy.Status {
	case entities.PolicyStatusActive:
		return nil
	case entities.PolicyStatusPending:
		return &Failure{
			Code:    entities.ReasonPolicyPending,
			Message: fmt.Sprintf("policy %s is pending activation", policy.PolicyNumber),
		}
	case entities.PolicyStatusSuspended:
		return &Failure{
			Code:    entities.ReasonPolicySuspended,
			Message: fmt.Sprintf("policy %s is suspended", policy.PolicyNumber),
		}
	case entities.PolicyStatusExpired:
		return &Failure{
			Code:    entities.ReasonPolicyExpired,
			Message: fmt.Sprintf("policy %s has expired", policy.PolicyNumber),
		}
	case entities.PolicyStatusCancelled:
		return &Failure{
			Code:    entities.ReasonPolicyCancelled,
			Message: fmt.Sprintf("policy %s has been cancelled", policy.PolicyNumber),
		}
	case entities.PolicyStatusRenewalPending:
		return &Failure{
			Code:    entities.ReasonPolicyRenewalPending,
			Message: fmt.Sprintf("policy %s is awaiting renewal", policy.PolicyNumber),
		}
	}
	return &Failure{
		Code:    entities.ReasonPolicyInactive,
		Message: fmt.Sprintf("policy %s is not usable in status %s", policy.PolicyNumber, policy.Status),
	}
}

// ValidatePolicy determines whether a policy is usable for the given service
// date. Checks run in order and the first failure wins:
//
//  1. status must be ACTIVE (each other status yields its own reason)
//  2. the active flag must be set
//  3. serviceDate >= start date, inclusive
//  4. serviceDate <= end date, inclusive
//  5. a benefit configuration must be linked
//
// Returns nil when the policy is usable. Pure; safe for concurrent use.
func ValidatePolicy(policy *entities.Policy, serviceDate time.Time) *Failure {
	if policy == nil {
		return &Failure{
			Code:    entities.ReasonNoPolicyAssigned,
			Message: "no active policy assigned",
		}
	}

	if f := statusFailure(policy); f != nil {
		return f
	}

	if !policy.IsActive {
		return &Failure{
			Code:    entities.ReasonPolicyInactive,
			Message: fmt.Sprintf("policy %s is deactivated", policy.PolicyNumber),
		}
	}

	if policy.StartDate != nil && serviceDate.Before(*policy.StartDate) {
		return &Failure{
			Code:    entities.ReasonPolicyNotStarted,
			Message: fmt.Sprintf("policy %s has not started", policy.PolicyNumber),
			Detail: fmt.Sprintf("service date %s is before policy start %s",
				serviceDate.Format("2006-01-02"), policy.StartDate.Format("2006-01-02")),
		}
	}

	if policy.EndDate != nil && serviceDate.After(*policy.EndDate) {
		return &Failure{
			Code:    entities.ReasonPolicyDateExpired,
			Message: fmt.Sprintf("policy %s coverage period has ended", policy.PolicyNumber),
			Detail: fmt.Sprintf("service date %s is after policy end %s",
				serviceDate.Format("2006-01-02"), policy.EndDate.Format("2006-01-02")),
		}
	}

	if policy.BenefitConfigurationID == nil {
		return &Failure{
			Code:    entities.ReasonNoBenefitPackage,
			Message: fmt.Sprintf("policy %s has no benefit package assigned", policy.PolicyNumber),
		}
	}

	return nil
}

// ValidateMember asserts the member exists, is active, and carries a policy
// before delegating to ValidatePolicy. A missing policy is reported as
// NO_POLICY_ASSIGNED, distinct from any policy-status reason.
func ValidateMember(member *entities.Member, policy *entities.Policy, serviceDate time.Time) *Failure {
	if member == nil {
		return &Failure{
			Code:    entities.ReasonMemberNotFound,
			Message: "member not found",
		}
	}

	if member.Status != entities.MemberStatusActive {
		return &Failure{
			Code:    entities.ReasonMemberNotActive,
			Message: fmt.Sprintf("member %s is not active", member.CardNumber),
			Detail:  fmt.Sprintf("member status is %s", member.Status),
		}
	}

	if member.PolicyID == nil || policy == nil {
		return &Failure{
			Code:    entities.ReasonNoPolicyAssigned,
			Message: fmt.Sprintf("member %s has no active policy assigned", member.CardNumber),
		}
	}

	return ValidatePolicy(policy, serviceDate)
}
