package eligibility

import (
	"sort"

	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// Rule is a single unit in the ordered eligibility rule chain. Rules are
// stateless: they read only the request snapshot they are handed and hold no
// per-request mutable state, so a rule instance is shared across requests.
type Rule interface {
	// Code returns the stable rule identifier
	Code() string

	// Priority orders evaluation; lower runs first
	Priority() int

	// Hard reports whether a failure blocks eligibility and halts the chain
	Hard() bool

	// Applicable reports whether the rule applies to this context
	Applicable(ctx *entities.EligibilityContext) bool

	// Evaluate runs the rule; nil means pass
	Evaluate(ctx *entities.EligibilityContext) *Failure
}

// WaitingPeriodReference selects the date a waiting period is measured from
type WaitingPeriodReference string

const (
	// WaitingFromPolicyStart measures the waiting period from the policy
	// start date
	WaitingFromPolicyStart WaitingPeriodReference = "policy_start"

	// WaitingFromEnrollment measures the waiting period from the member's
	// enrollment date
	WaitingFromEnrollment WaitingPeriodReference = "member_enrollment"
)

// RuleConfig carries the deployment-specific knobs of the rule set: whether
// limit breaches block or merely warn, and which reference date waiting
// periods count from.
type RuleConfig struct {
	AmountLimitHard        bool
	CountLimitHard         bool
	WaitingPeriodReference WaitingPeriodReference
}

// DefaultRuleConfig returns the strict configuration: limits block and
// waiting periods count from the policy start date.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		AmountLimitHard:        true,
		CountLimitHard:         true,
		WaitingPeriodReference: WaitingFromPolicyStart,
	}
}

// sortRules orders rules ascending by priority. The sort is stable so rules
// sharing a priority keep their registration order.
func sortRules(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return sorted
}
