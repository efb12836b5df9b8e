package entities

import (
	"time"
)

// ReasonCode identifies why an eligibility check passed or failed.
//
// Codes are a closed, versioned enumeration: the audit and reporting layers
// match on these strings, so adding a code is backward compatible while
// renaming or removing one is a breaking change.
type ReasonCode string

const (
	ReasonMemberNotFound       ReasonCode = "MEMBER_NOT_FOUND"
	ReasonMemberNotActive      ReasonCode = "MEMBER_NOT_ACTIVE"
	ReasonNoPolicyAssigned     ReasonCode = "NO_POLICY_ASSIGNED"
	ReasonPolicyPending        ReasonCode = "POLICY_PENDING"
	ReasonPolicySuspended      ReasonCode = "POLICY_SUSPENDED"
	ReasonPolicyExpired        ReasonCode = "POLICY_EXPIRED"
	ReasonPolicyCancelled      ReasonCode = "POLICY_CANCELLED"
	ReasonPolicyRenewalPending ReasonCode = "POLICY_RENEWAL_PENDING"
	ReasonPolicyInactive       ReasonCode = "POLICY_INACTIVE"
	ReasonPolicyNotStarted     ReasonCode = "POLICY_NOT_STARTED"
	ReasonPolicyDateExpired    ReasonCode = "POLICY_DATE_EXPIRED"
	ReasonNoBenefitPackage     ReasonCode = "NO_BENEFIT_PACKAGE"
	ReasonServiceNotCovered    ReasonCode = "SERVICE_NOT_COVERED"
	ReasonAmountLimitExceeded  ReasonCode = "AMOUNT_LIMIT_EXCEEDED"
	ReasonCountLimitExceeded   ReasonCode = "COUNT_LIMIT_EXCEEDED"
	ReasonWaitingPeriodNotMet  ReasonCode = "WAITING_PERIOD_NOT_MET"
	ReasonBenefitExhausted     ReasonCode = "BENEFIT_EXHAUSTED"
	ReasonPreApprovalRequired  ReasonCode = "PRE_APPROVAL_REQUIRED"
	ReasonBusinessRuleViolated ReasonCode = "BUSINESS_RULE_VIOLATED"
)

// Reason is a single structured entry in an eligibility decision
type Reason struct {
	Code    ReasonCode `json:"code"`
	Message string     `json:"message"`
	Detail  string     `json:"detail,omitempty"`
	Warning bool       `json:"warning"`
}

// EligibilityContext is the flat, request-scoped snapshot the rule engine
// evaluates. It is copied out of the entity graph before evaluation and never
// holds live storage references; constructed, evaluated, discarded.
type EligibilityContext struct {
	RequestID       string                `json:"request_id"`
	MemberID        string                `json:"member_id"`
	MemberStatus    MemberStatus          `json:"member_status"`
	CivilID         string                `json:"civil_id"`
	CardNumber      string                `json:"card_number"`
	EnrollmentDate  *time.Time            `json:"enrollment_date,omitempty"`
	Policy          *Policy               `json:"policy,omitempty"`
	BenefitConfig   *BenefitConfiguration `json:"-"`
	EmployerID      string                `json:"employer_id,omitempty"`
	ProviderID      string                `json:"provider_id,omitempty"`
	CategoryID      string                `json:"category_id"`
	ServiceCode     string                `json:"service_code"`
	ServiceDate     time.Time             `json:"service_date"`
	RequestedAmount float64               `json:"requested_amount"`
	// UsedAmount and UsedCount are the member's prior consumption against the
	// resolved coverage limits for the current benefit period.
	UsedAmount float64 `json:"used_amount"`
	UsedCount  int     `json:"used_count"`
}

// EligibilityMetrics captures how an eligibility evaluation performed
type EligibilityMetrics struct {
	RulesEvaluated int           `json:"rules_evaluated"`
	Elapsed        time.Duration `json:"elapsed_ns"`
}

// EligibilityResult is the immutable outcome of a single eligibility check
type EligibilityResult struct {
	RequestID   string             `json:"request_id"`
	Eligible    bool               `json:"eligible"`
	Reasons     []Reason           `json:"reasons"`
	Snapshot    EligibilityContext `json:"snapshot"`
	Metrics     EligibilityMetrics `json:"metrics"`
	EvaluatedAt time.Time          `json:"evaluated_at"`
}

// ReasonCodes returns the ordered list of reason codes in the result
func (r *EligibilityResult) ReasonCodes() []ReasonCode {
	codes := make([]ReasonCode, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		codes = append(codes, reason.Code)
	}
	return codes
}
