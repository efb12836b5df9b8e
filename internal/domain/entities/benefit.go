package entities

import (
	"time"
)

// CoverageRuleTarget distinguishes category-level rules from service-level rules
type CoverageRuleTarget string

const (
	CoverageRuleTargetCategory CoverageRuleTarget = "CATEGORY"
	CoverageRuleTargetService  CoverageRuleTarget = "SERVICE"
)

// CoverageRule is a single coverage rule inside a benefit configuration.
// A service-level rule overrides the category-level rule for the same service.
type CoverageRule struct {
	ID                     string             `json:"id" db:"id"`
	BenefitConfigurationID string             `json:"benefit_configuration_id" db:"benefit_configuration_id"`
	Target                 CoverageRuleTarget `json:"target" db:"target"`
	CategoryID             string             `json:"category_id" db:"category_id"`
	ServiceID              *string            `json:"service_id" db:"service_id"`
	CoveragePercent        float64            `json:"coverage_percent" db:"coverage_percent"`
	AmountLimit            *float64           `json:"amount_limit" db:"amount_limit"`
	CountLimit             *int               `json:"count_limit" db:"count_limit"`
	WaitingPeriodDays      *int               `json:"waiting_period_days" db:"waiting_period_days"`
	RequiresPreApproval    bool               `json:"requires_pre_approval" db:"requires_pre_approval"`
	IsActive               bool               `json:"is_active" db:"is_active"`
	CreatedAt              time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at" db:"updated_at"`
}

// BenefitConfiguration is the ordered set of coverage rules attached to a policy
type BenefitConfiguration struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	IsActive  bool           `json:"is_active" db:"is_active"`
	Rules     []CoverageRule `json:"rules" db:"-"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// ServiceRule returns the active service-level rule for the given service, if any
func (c *BenefitConfiguration) ServiceRule(serviceID string) *CoverageRule {
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Target == CoverageRuleTargetService && r.IsActive && r.ServiceID != nil && *r.ServiceID == serviceID {
			return r
		}
	}
	return nil
}

// CategoryRule returns the active category-level rule for the given category, if any
func (c *BenefitConfiguration) CategoryRule(categoryID string) *CoverageRule {
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Target == CoverageRuleTargetCategory && r.IsActive && r.CategoryID == categoryID {
			return r
		}
	}
	return nil
}
