package entities

import (
	"time"
)

// PolicyStatus represents the lifecycle status of a policy
type PolicyStatus string

const (
	PolicyStatusPending        PolicyStatus = "PENDING"
	PolicyStatusActive         PolicyStatus = "ACTIVE"
	PolicyStatusSuspended      PolicyStatus = "SUSPENDED"
	PolicyStatusExpired        PolicyStatus = "EXPIRED"
	PolicyStatusCancelled      PolicyStatus = "CANCELLED"
	PolicyStatusRenewalPending PolicyStatus = "RENEWAL_PENDING"
)

// Policy represents an insurance policy owned by an employer
type Policy struct {
	ID                     string       `json:"id" db:"id"`
	PolicyNumber           string       `json:"policy_number" db:"policy_number"`
	EmployerID             string       `json:"employer_id" db:"employer_id"`
	Status                 PolicyStatus `json:"status" db:"status"`
	StartDate              *time.Time   `json:"start_date" db:"start_date"`
	EndDate                *time.Time   `json:"end_date" db:"end_date"`
	BenefitConfigurationID *string      `json:"benefit_configuration_id" db:"benefit_configuration_id"`
	IsActive               bool         `json:"is_active" db:"is_active"`
	CreatedAt              time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at" db:"updated_at"`
}

// CoversDate reports whether the service date falls inside the policy's
// [start, end] window. Missing endpoints are treated as open-ended.
func (p *Policy) CoversDate(serviceDate time.Time) bool {
	if p.StartDate != nil && serviceDate.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && serviceDate.After(*p.EndDate) {
		return false
	}
	return true
}
