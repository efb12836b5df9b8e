package entities

import (
	"fmt"
	"time"
)

// ClaimStatus represents the lifecycle status of a claim
type ClaimStatus string

const (
	ClaimStatusDraft             ClaimStatus = "DRAFT"
	ClaimStatusSubmitted         ClaimStatus = "SUBMITTED"
	ClaimStatusUnderReview       ClaimStatus = "UNDER_REVIEW"
	ClaimStatusApproved          ClaimStatus = "APPROVED"
	ClaimStatusPartiallyApproved ClaimStatus = "PARTIALLY_APPROVED"
	ClaimStatusRejected          ClaimStatus = "REJECTED"
	ClaimStatusSettled           ClaimStatus = "SETTLED"
)

// ActorRole identifies who is performing a lifecycle transition
type ActorRole string

const (
	RoleProvider ActorRole = "PROVIDER"
	RoleMember   ActorRole = "MEMBER"
	RoleReviewer ActorRole = "REVIEWER"
	RoleFinance  ActorRole = "FINANCE"
	RoleSystem   ActorRole = "SYSTEM"
)

// claimTransition is one legal edge in the claim lifecycle
type claimTransition struct {
	To   ClaimStatus
	Role ActorRole
}

// claimTransitions is the single source of truth for legal claim status
// transitions and the role each one requires. Callers must never infer
// legality from ad-hoc conditionals.
var claimTransitions = map[ClaimStatus][]claimTransition{
	ClaimStatusDraft: {
		{To: ClaimStatusSubmitted, Role: RoleProvider},
	},
	ClaimStatusSubmitted: {
		{To: ClaimStatusUnderReview, Role: RoleReviewer},
	},
	ClaimStatusUnderReview: {
		{To: ClaimStatusApproved, Role: RoleReviewer},
		{To: ClaimStatusPartiallyApproved, Role: RoleReviewer},
		{To: ClaimStatusRejected, Role: RoleReviewer},
	},
	ClaimStatusApproved: {
		{To: ClaimStatusSettled, Role: RoleFinance},
	},
	ClaimStatusPartiallyApproved: {
		{To: ClaimStatusSettled, Role: RoleFinance},
	},
}

// IsTerminal reports whether no further transition is permitted from s
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimStatusRejected || s == ClaimStatusSettled
}

// CanTransitionTo reports whether the transition s -> to appears in the
// lifecycle table, regardless of role
func (s ClaimStatus) CanTransitionTo(to ClaimStatus) bool {
	for _, t := range claimTransitions[s] {
		if t.To == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s. Terminal statuses
// return an empty slice.
func (s ClaimStatus) AllowedTransitions() []ClaimStatus {
	var out []ClaimStatus
	for _, t := range claimTransitions[s] {
		out = append(out, t.To)
	}
	return out
}

// RequiredRole returns the role a transition requires, or false when the
// transition is not in the table
func (s ClaimStatus) RequiredRole(to ClaimStatus) (ActorRole, bool) {
	for _, t := range claimTransitions[s] {
		if t.To == to {
			return t.Role, true
		}
	}
	return "", false
}

// InvalidTransitionError reports an illegal lifecycle transition or a
// role-mismatched actor. It always carries the from/to pair and, when the
// transition exists in the table, the role it requires.
type InvalidTransitionError struct {
	Entity       string
	From         string
	To           string
	RequiredRole ActorRole
	ActorRole    ActorRole
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	if e.RequiredRole != "" {
		return fmt.Sprintf("%s transition %s -> %s requires role %s, actor has %s",
			e.Entity, e.From, e.To, e.RequiredRole, e.ActorRole)
	}
	return fmt.Sprintf("%s transition %s -> %s is not permitted", e.Entity, e.From, e.To)
}

// Claim represents an insurance claim submitted by a provider for a member
type Claim struct {
	ID                string      `json:"id" db:"id"`
	ClaimNumber       string      `json:"claim_number" db:"claim_number"`
	MemberID          string      `json:"member_id" db:"member_id"`
	PolicyID          string      `json:"policy_id" db:"policy_id"`
	ProviderID        string      `json:"provider_id" db:"provider_id"`
	CategoryID        string      `json:"category_id" db:"category_id"`
	ServiceCode       string      `json:"service_code" db:"service_code"`
	ServiceDate       time.Time   `json:"service_date" db:"service_date"`
	Status            ClaimStatus `json:"status" db:"status"`
	RequestedAmount   float64     `json:"requested_amount" db:"requested_amount"`
	PatientCoPay      float64     `json:"patient_co_pay" db:"patient_co_pay"`
	NetProviderAmount float64     `json:"net_provider_amount" db:"net_provider_amount"`
	PreAuthID         *string     `json:"pre_auth_id" db:"pre_auth_id"`
	// Version supports optimistic concurrency control on status transitions;
	// the storage adapter refuses a write when the stored version differs.
	Version   int       `json:"version" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AmountsConsistent reports whether requested = co-pay + net provider amount
func (c *Claim) AmountsConsistent() bool {
	const epsilon = 0.005
	diff := c.RequestedAmount - (c.PatientCoPay + c.NetProviderAmount)
	return diff < epsilon && diff > -epsilon
}

// Transition moves the claim to the target status after checking the
// lifecycle table and the actor's role. It returns *InvalidTransitionError
// when the edge is missing or the role does not match.
func (c *Claim) Transition(to ClaimStatus, actor ActorRole) error {
	required, ok := c.Status.RequiredRole(to)
	if !ok {
		return &InvalidTransitionError{
			Entity:    "claim",
			From:      string(c.Status),
			To:        string(to),
			ActorRole: actor,
		}
	}
	if actor != required {
		return &InvalidTransitionError{
			Entity:       "claim",
			From:         string(c.Status),
			To:           string(to),
			RequiredRole: required,
			ActorRole:    actor,
		}
	}
	c.Status = to
	c.UpdatedAt = time.Now()
	return nil
}
