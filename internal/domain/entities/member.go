package entities

import (
	"time"
)

// MemberStatus represents the status of an insured member
type MemberStatus string

const (
	MemberStatusActive     MemberStatus = "ACTIVE"
	MemberStatusInactive   MemberStatus = "INACTIVE"
	MemberStatusSuspended  MemberStatus = "SUSPENDED"
	MemberStatusTerminated MemberStatus = "TERMINATED"
)

// Member represents an insured person covered by a policy
type Member struct {
	ID             string       `json:"id" db:"id"`
	CivilID        string       `json:"civil_id" db:"civil_id"`
	CardNumber     string       `json:"card_number" db:"card_number"`
	FirstName      string       `json:"first_name" db:"first_name"`
	LastName       string       `json:"last_name" db:"last_name"`
	Status         MemberStatus `json:"status" db:"status"`
	PolicyID       *string      `json:"policy_id" db:"policy_id"`
	EmployerID     string       `json:"employer_id" db:"employer_id"`
	EnrollmentDate *time.Time   `json:"enrollment_date" db:"enrollment_date"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// Employer represents the organization that owns one or more policies
type Employer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Provider represents a medical service provider (hospital, clinic, pharmacy)
type Provider struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
