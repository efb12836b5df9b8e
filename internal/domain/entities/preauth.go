package entities

import (
	"time"
)

// PreAuthStatus represents the lifecycle status of a pre-authorization
type PreAuthStatus string

const (
	PreAuthStatusRequested        PreAuthStatus = "REQUESTED"
	PreAuthStatusUnderReview      PreAuthStatus = "UNDER_REVIEW"
	PreAuthStatusMoreInfoRequired PreAuthStatus = "MORE_INFO_REQUIRED"
	PreAuthStatusApproved         PreAuthStatus = "APPROVED"
	PreAuthStatusRejected         PreAuthStatus = "REJECTED"
	PreAuthStatusExpired          PreAuthStatus = "EXPIRED"
)

// preAuthTransition is one legal edge in the pre-authorization lifecycle
type preAuthTransition struct {
	To   PreAuthStatus
	Role ActorRole
}

// preAuthTransitions is the single source of truth for legal pre-authorization
// transitions. APPROVED -> EXPIRED is time-triggered, so it requires the
// system role rather than a human actor.
var preAuthTransitions = map[PreAuthStatus][]preAuthTransition{
	PreAuthStatusRequested: {
		{To: PreAuthStatusUnderReview, Role: RoleReviewer},
	},
	PreAuthStatusUnderReview: {
		{To: PreAuthStatusApproved, Role: RoleReviewer},
		{To: PreAuthStatusRejected, Role: RoleReviewer},
		{To: PreAuthStatusMoreInfoRequired, Role: RoleReviewer},
	},
	PreAuthStatusMoreInfoRequired: {
		{To: PreAuthStatusRequested, Role: RoleProvider},
	},
	PreAuthStatusApproved: {
		{To: PreAuthStatusExpired, Role: RoleSystem},
	},
}

// IsTerminal reports whether no further transition is permitted from s
func (s PreAuthStatus) IsTerminal() bool {
	return s == PreAuthStatusRejected || s == PreAuthStatusExpired
}

// CanTransitionTo reports whether s -> to appears in the lifecycle table
func (s PreAuthStatus) CanTransitionTo(to PreAuthStatus) bool {
	for _, t := range preAuthTransitions[s] {
		if t.To == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s
func (s PreAuthStatus) AllowedTransitions() []PreAuthStatus {
	var out []PreAuthStatus
	for _, t := range preAuthTransitions[s] {
		out = append(out, t.To)
	}
	return out
}

// RequiredRole returns the role a transition requires, or false when the
// transition is not in the table
func (s PreAuthStatus) RequiredRole(to PreAuthStatus) (ActorRole, bool) {
	for _, t := range preAuthTransitions[s] {
		if t.To == to {
			return t.Role, true
		}
	}
	return "", false
}

// PreAuthorization represents an advance approval request for a service
type PreAuthorization struct {
	ID          string        `json:"id" db:"id"`
	MemberID    string        `json:"member_id" db:"member_id"`
	PolicyID    string        `json:"policy_id" db:"policy_id"`
	ProviderID  string        `json:"provider_id" db:"provider_id"`
	CategoryID  string        `json:"category_id" db:"category_id"`
	ServiceCode string        `json:"service_code" db:"service_code"`
	Status      PreAuthStatus `json:"status" db:"status"`
	ValidFrom   *time.Time    `json:"valid_from" db:"valid_from"`
	ValidUntil  *time.Time    `json:"valid_until" db:"valid_until"`
	Version     int           `json:"version" db:"version"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// UsableForClaim reports whether the pre-authorization can back a claim at
// the given instant: approved and inside its validity window
func (p *PreAuthorization) UsableForClaim(now time.Time) bool {
	if p.Status != PreAuthStatusApproved {
		return false
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return false
	}
	return true
}

// Transition moves the pre-authorization to the target status after checking
// the lifecycle table and the actor's role
func (p *PreAuthorization) Transition(to PreAuthStatus, actor ActorRole) error {
	required, ok := p.Status.RequiredRole(to)
	if !ok {
		return &InvalidTransitionError{
			Entity:    "pre-authorization",
			From:      string(p.Status),
			To:        string(to),
			ActorRole: actor,
		}
	}
	if actor != required {
		return &InvalidTransitionError{
			Entity:       "pre-authorization",
			From:         string(p.Status),
			To:           string(to),
			RequiredRole: required,
			ActorRole:    actor,
		}
	}
	p.Status = to
	p.UpdatedAt = time.Now()
	return nil
}
