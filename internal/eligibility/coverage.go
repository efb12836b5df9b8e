package eligibility

import (
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// ResolvedCoverage carries the effective coverage terms for a
// (category, service) pair after rule precedence has been applied
type ResolvedCoverage struct {
	CoveragePercent     float64                     `json:"coverage_percent"`
	AmountLimit         *float64                    `json:"amount_limit,omitempty"`
	CountLimit          *int                        `json:"count_limit,omitempty"`
	WaitingPeriodDays   *int                        `json:"waiting_period_days,omitempty"`
	RequiresPreApproval bool                        `json:"requires_pre_approval"`
	Source              entities.CoverageRuleTarget `json:"source"`
}

// ResolveCoverage resolves the coverage terms for a service under a benefit
// configuration. An active service-level rule is authoritative; otherwise the
// active category-level rule applies; with neither, the service is not
// covered and the second return value is false.
//
// The effective percent is always taken from the authoritative rule — a
// category-only match returns the category's raw percent, never zero.
// Pure function of its inputs; safe for concurrent use.
func ResolveCoverage(cfg *entities.BenefitConfiguration, categoryID, serviceID string) (*ResolvedCoverage, bool) {
	if cfg == nil || !cfg.IsActive {
		return nil, false
	}

	if rule := cfg.ServiceRule(serviceID); rule != nil {
		return resolvedFrom(rule, entities.CoverageRuleTargetService), true
	}

	if rule := cfg.CategoryRule(categoryID); rule != nil {
		return resolvedFrom(rule, entities.CoverageRuleTargetCategory), true
	}

	return nil, false
}

func resolvedFrom(rule *entities.CoverageRule, source entities.CoverageRuleTarget) *ResolvedCoverage {
	return &ResolvedCoverage{
		CoveragePercent:     rule.CoveragePercent,
		AmountLimit:         rule.AmountLimit,
		CountLimit:          rule.CountLimit,
		WaitingPeriodDays:   rule.WaitingPeriodDays,
		RequiresPreApproval: rule.RequiresPreApproval,
		Source:              source,
	}
}
