package eligibility

import (
	"fmt"
	"time"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// DefaultRules builds the standard rule chain in registration order. The
// engine sorts by priority, so the numbering here is the evaluation order.
func DefaultRules(cfg RuleConfig) []Rule {
	return []Rule{
		&memberActiveRule{},
		&policyActiveRule{},
		&policyDatesRule{},
		&benefitConfigRule{},
		&serviceCoveredRule{},
		&waitingPeriodRule{reference: cfg.WaitingPeriodReference},
		&preApprovalRule{},
		&amountLimitRule{hard: cfg.AmountLimitHard},
		&countLimitRule{hard: cfg.CountLimitHard},
	}
}

// memberActiveRule requires the member snapshot to be ACTIVE
type memberActiveRule struct{}

func (r *memberActiveRule) Code() string                                       { return "member-active" }
func (r *memberActiveRule) Priority() int                                      { return 10 }
func (r *memberActiveRule) Hard() bool                                         { return true }
func (r *memberActiveRule) Applicable(ctx *entities.EligibilityContext) bool   { return true }

func (r *memberActiveRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	if ctx.MemberStatus == entities.MemberStatusActive {
		return nil
	}
	if ctx.MemberStatus == "" {
		return &Failure{
			Code:    entities.ReasonMemberNotFound,
			Message: fmt.Sprintf("member %s not found", ctx.MemberID),
		}
	}
	return &Failure{
		Code:    entities.ReasonMemberNotActive,
		Message: fmt.Sprintf("member %s is not active", ctx.CardNumber),
		Detail:  fmt.Sprintf("member status is %s", ctx.MemberStatus),
	}
}

// policyActiveRule requires an assigned policy in ACTIVE status with the
// active flag set
type policyActiveRule struct{}

func (r *policyActiveRule) Code() string                                     { return "policy-active" }
func (r *policyActiveRule) Priority() int                                    { return 20 }
func (r *policyActiveRule) Hard() bool                                       { return true }
func (r *policyActiveRule) Applicable(ctx *entities.EligibilityContext) bool { return true }

func (r *policyActiveRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	if ctx.Policy == nil {
		return &Failure{
			Code:    entities.ReasonNoPolicyAssigned,
			Message: fmt.Sprintf("member %s has no active policy assigned", ctx.CardNumber),
		}
	}
	if f := statusFailure(ctx.Policy); f != nil {
		return f
	}
	if !ctx.Policy.IsActive {
		return &Failure{
			Code:    entities.ReasonPolicyInactive,
			Message: fmt.Sprintf("policy %s is deactivated", ctx.Policy.PolicyNumber),
		}
	}
	return nil
}

// policyDatesRule requires the service date inside the policy's coverage
// window, endpoints inclusive
type policyDatesRule struct{}

func (r *policyDatesRule) Code() string  { return "policy-dates" }
func (r *policyDatesRule) Priority() int { return 30 }
func (r *policyDatesRule) Hard() bool    { return true }

func (r *policyDatesRule) Applicable(ctx *entities.EligibilityContext) bool {
	return ctx.Policy != nil
}

func (r *policyDatesRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	p := ctx.Policy
	if p.StartDate != nil && ctx.ServiceDate.Before(*p.StartDate) {
		return &Failure{
			Code:    entities.ReasonPolicyNotStarted,
			Message: fmt.Sprintf("policy %s has not started", p.PolicyNumber),
			Detail: fmt.Sprintf("service date %s is before policy start %s",
				ctx.ServiceDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02")),
		}
	}
	if p.EndDate != nil && ctx.ServiceDate.After(*p.EndDate) {
		return &Failure{
			Code:    entities.ReasonPolicyDateExpired,
			Message: fmt.Sprintf("policy %s coverage period has ended", p.PolicyNumber),
			Detail: fmt.Sprintf("service date %s is after policy end %s",
				ctx.ServiceDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02")),
		}
	}
	return nil
}

// benefitConfigRule requires a linked, active benefit configuration
type benefitConfigRule struct{}

func (r *benefitConfigRule) Code() string  { return "benefit-config" }
func (r *benefitConfigRule) Priority() int { return 40 }
func (r *benefitConfigRule) Hard() bool    { return true }

func (r *benefitConfigRule) Applicable(ctx *entities.EligibilityContext) bool {
	return ctx.Policy != nil
}

func (r *benefitConfigRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	if ctx.BenefitConfig == nil || !ctx.BenefitConfig.IsActive {
		return &Failure{
			Code:    entities.ReasonNoBenefitPackage,
			Message: fmt.Sprintf("policy %s has no benefit package assigned", ctx.Policy.PolicyNumber),
		}
	}
	return nil
}

// serviceCoveredRule requires the requested service to resolve to a coverage
// rule under the benefit configuration
type serviceCoveredRule struct{}

func (r *serviceCoveredRule) Code() string  { return "service-covered" }
func (r *serviceCoveredRule) Priority() int { return 50 }
func (r *serviceCoveredRule) Hard() bool    { return true }

func (r *serviceCoveredRule) Applicable(ctx *entities.EligibilityContext) bool {
	return ctx.BenefitConfig != nil
}

func (r *serviceCoveredRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	if _, ok := ResolveCoverage(ctx.BenefitConfig, ctx.CategoryID, ctx.ServiceCode); !ok {
		return &Failure{
			Code:    entities.ReasonServiceNotCovered,
			Message: fmt.Sprintf("service %s is not covered", ctx.ServiceCode),
			Detail:  fmt.Sprintf("category %s, service %s", ctx.CategoryID, ctx.ServiceCode),
		}
	}
	return nil
}

// waitingPeriodRule requires the configured waiting period to have elapsed
// before the service date. The reference date is configurable: policy start
// or member enrollment.
type waitingPeriodRule struct {
	reference WaitingPeriodReference
}

func (r *waitingPeriodRule) Code() string  { return "waiting-period" }
func (r *waitingPeriodRule) Priority() int { return 60 }
func (r *waitingPeriodRule) Hard() bool    { return true }

func (r *waitingPeriodRule) Applicable(ctx *entities.EligibilityContext) bool {
	cov, ok := ResolveCoverage(ctx.BenefitConfig, ctx.CategoryID, ctx.ServiceCode)
	return ok && cov.WaitingPeriodDays != nil && r.referenceDate(ctx) != nil
}

func (r *waitingPeriodRule) referenceDate(ctx *entities.EligibilityContext) *time.Time {
	if r.reference == WaitingFromEnrollment {
		return ctx.EnrollmentDate
	}
	if ctx.Policy != nil {
		return ctx.Policy.StartDate
	}
	return nil
}

func (r *waitingPeriodRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	cov, _ := ResolveCoverage(ctx.BenefitConfig, ctx.CategoryID, ctx.ServiceCode)
	ref := r.referenceDate(ctx)
	eligibleFrom := ref.AddDate(0, 0, *cov.WaitingPeriodDays)
	if ctx.ServiceDate.Before(eligibleFrom) {
		return &Failure{
			Code:    entities.ReasonWaitingPeriodNotMet,
			Message: fmt.Sprintf("waiting period for service %s has not elapsed", ctx.ServiceCode),
			Detail: fmt.Sprintf("%d day waiting period from %s; eligible from %s",
				*cov.WaitingPeriodDays, ref.Format("2006-01-02"), eligibleFrom.Format("2006-01-02")),
		}
	}
	return nil
}

// preApprovalRule warns when the resolved coverage requires an approved
// pre-authorization. Soft: the claim flow enforces the pre-auth itself, this
// rule only surfaces the requirement in the decision.
type preApprovalRule struct{}

func (r *preApprovalRule) Code() string  { return "pre-approval" }
func (r *preApprovalRule) Priority() int { return 70 }
func (r *preApprovalRule) Hard() bool    { return false }

func (r *preApprovalRule) Applicable(ctx *entities.EligibilityContext) bool {
	cov, ok := ResolveCoverage(ctx.BenefitConfig, ctx.CategoryID, ctx.ServiceCode)
	return ok && cov.RequiresPreApproval
}

func (r *preApprovalRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	return &Failure{
		Code:    entities.ReasonPreApprovalRequired,
		Message: fmt.Sprintf("service %s requires pre-approval", ctx.ServiceCode),
	}
}

// amountLimitRule checks the requested amount against the coverage amount
// limit, accounting for prior consumption. Hardness is configured per
// deployment: some block, some only warn.
type amountLimitRule struct {
	hard bool
}

func (r *amountLimitRule) Code() string  { return "amount-limit" }
func (r *amountLimitRule) Priority() int { return 80 }
func (r *amountLimitRule) Hard() bool    { return r.hard }

func (r *amountLimitRule) Applicable(ctx *entities.EligibilityContext) bool {
	cov, ok := ResolveCoverage(ctx.BenefitConfig, ctx.CategoryID, ctx.ServiceCode)
	return ok && cov.AmountLimit != nil && ctx.RequestedAmount > 0
}

func (r *amountLimitRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	cov, _ := ResolveCoverage(ctx.BenefitConfig, ctx.CategoryID, ctx.ServiceCode)
	limit := *cov.AmountLimit
	if ctx.UsedAmount >= limit {
		return &Failure{
			Code:    entities.ReasonBenefitExhausted,
			Message: fmt.Sprintf("benefit for service %s is exhausted", ctx.ServiceCode),
			Detail:  fmt.Sprintf("used %.2f of %.2f limit", ctx.UsedAmount, limit),
		}
	}
	if ctx.UsedAmount+ctx.RequestedAmount > limit {
		return &Failure{
			Code:    entities.ReasonAmountLimitExceeded,
			Message: fmt.Sprintf("requested amount exceeds the limit for service %s", ctx.ServiceCode),
			Detail: fmt.Sprintf("requested %.2f, available %.2f of %.2f limit",
				ctx.RequestedAmount, limit-ctx.UsedAmount, limit),
		}
	}
	return nil
}

// countLimitRule checks how many times the service has been used against the
// coverage count limit. Hardness is configured per deployment.
type countLimitRule struct {
	hard bool
}

func (r *countLimitRule) Code() string  { return "count-limit" }
func (r *countLimitRule) Priority() int { return 90 }
func (r *countLimitRule) Hard() bool    { return r.hard }

func (r *countLimitRule) Applicable(ctx *entities.EligibilityContext) bool {
	cov, ok := ResolveCoverage(ctx.BenefitConfig, ctx.CategoryID, ctx.ServiceCode)
	return ok && cov.CountLimit != nil
}

func (r *countLimitRule) Evaluate(ctx *entities.EligibilityContext) *Failure {
	cov, _ := ResolveCoverage(ctx.BenefitConfig, ctx.CategoryID, ctx.ServiceCode)
	limit := *cov.CountLimit
	if ctx.UsedCount >= limit {
		return &Failure{
			Code:    entities.ReasonCountLimitExceeded,
			Message: fmt.Sprintf("service %s has reached its usage limit", ctx.ServiceCode),
			Detail:  fmt.Sprintf("used %d of %d allowed", ctx.UsedCount, limit),
		}
	}
	return nil
}
