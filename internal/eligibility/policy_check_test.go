package eligibility_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/eligibility"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func activePolicy() *entities.Policy {
	return &entities.Policy{
		ID:                     "pol-1",
		PolicyNumber:           "P001",
		Status:                 entities.PolicyStatusActive,
		StartDate:              datePtr(2024, time.January, 1),
		EndDate:                datePtr(2024, time.December, 31),
		BenefitConfigurationID: strPtr("cfg-1"),
		IsActive:               true,
	}
}

func TestValidatePolicy_StatusReasons(t *testing.T) {
	// every non-ACTIVE status must produce its own distinguishable reason
	cases := []struct {
		status entities.PolicyStatus
		code   entities.ReasonCode
	}{
		{entities.PolicyStatusPending, entities.ReasonPolicyPending},
		{entities.PolicyStatusSuspended, entities.ReasonPolicySuspended},
		{entities.PolicyStatusExpired, entities.ReasonPolicyExpired},
		{entities.PolicyStatusCancelled, entities.ReasonPolicyCancelled},
		{entities.PolicyStatusRenewalPending, entities.ReasonPolicyRenewalPending},
	}

	seen := map[entities.ReasonCode]bool{}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			policy := activePolicy()
			policy.Status = tc.status

			failure := eligibility.ValidatePolicy(policy, date(2024, time.June, 15))

			require.NotNil(t, failure)
			assert.Equal(t, tc.code, failure.Code)
			assert.Contains(t, failure.Message, "P001")
			assert.False(t, seen[failure.Code], "reason codes must be distinct per status")
			seen[failure.Code] = true
		})
	}
}

func TestValidatePolicy_DateRange(t *testing.T) {
	policy := activePolicy()

	t.Run("start date boundary is inclusive", func(t *testing.T) {
		assert.Nil(t, eligibility.ValidatePolicy(policy, date(2024, time.January, 1)))
	})

	t.Run("end date boundary is inclusive", func(t *testing.T) {
		assert.Nil(t, eligibility.ValidatePolicy(policy, date(2024, time.December, 31)))
	})

	t.Run("day before start fails", func(t *testing.T) {
		failure := eligibility.ValidatePolicy(policy, date(2023, time.December, 31))
		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonPolicyNotStarted, failure.Code)
	})

	t.Run("day after end fails with expired-class reason naming policy and date", func(t *testing.T) {
		failure := eligibility.ValidatePolicy(policy, date(2025, time.January, 15))
		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonPolicyDateExpired, failure.Code)
		assert.Contains(t, failure.Message, "P001")
		assert.Contains(t, failure.Detail, "2025-01-15")
	})

	t.Run("open-ended policy passes any later date", func(t *testing.T) {
		open := activePolicy()
		open.EndDate = nil
		assert.Nil(t, eligibility.ValidatePolicy(open, date(2030, time.June, 1)))
	})
}

func TestValidatePolicy_OrderedChecks(t *testing.T) {
	t.Run("status failure wins over date failure", func(t *testing.T) {
		policy := activePolicy()
		policy.Status = entities.PolicyStatusSuspended

		failure := eligibility.ValidatePolicy(policy, date(2025, time.June, 1))

		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonPolicySuspended, failure.Code)
	})

	t.Run("deactivated flag fails before benefit package check", func(t *testing.T) {
		policy := activePolicy()
		policy.IsActive = false
		policy.BenefitConfigurationID = nil

		failure := eligibility.ValidatePolicy(policy, date(2024, time.June, 1))

		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonPolicyInactive, failure.Code)
	})

	t.Run("missing benefit package", func(t *testing.T) {
		policy := activePolicy()
		policy.BenefitConfigurationID = nil

		failure := eligibility.ValidatePolicy(policy, date(2024, time.June, 1))

		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonNoBenefitPackage, failure.Code)
	})

	t.Run("nil policy is no-policy-assigned", func(t *testing.T) {
		failure := eligibility.ValidatePolicy(nil, date(2024, time.June, 1))
		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonNoPolicyAssigned, failure.Code)
	})
}

func TestValidateMember(t *testing.T) {
	activeMember := func() *entities.Member {
		return &entities.Member{
			ID:         "mem-1",
			CardNumber: "M001",
			Status:     entities.MemberStatusActive,
			PolicyID:   strPtr("pol-1"),
		}
	}

	t.Run("missing member", func(t *testing.T) {
		failure := eligibility.ValidateMember(nil, nil, date(2024, time.June, 1))
		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonMemberNotFound, failure.Code)
	})

	t.Run("inactive member", func(t *testing.T) {
		member := activeMember()
		member.Status = entities.MemberStatusSuspended

		failure := eligibility.ValidateMember(member, activePolicy(), date(2024, time.June, 1))

		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonMemberNotActive, failure.Code)
	})

	t.Run("member without policy is distinct from policy inactivity", func(t *testing.T) {
		member := activeMember()
		member.PolicyID = nil

		failure := eligibility.ValidateMember(member, nil, date(2024, time.June, 1))

		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonNoPolicyAssigned, failure.Code)
		assert.Contains(t, failure.Message, "no active policy assigned")
	})

	t.Run("delegates to policy validation", func(t *testing.T) {
		policy := activePolicy()
		policy.Status = entities.PolicyStatusCancelled

		failure := eligibility.ValidateMember(activeMember(), policy, date(2024, time.June, 1))

		require.NotNil(t, failure)
		assert.Equal(t, entities.ReasonPolicyCancelled, failure.Code)
	})

	t.Run("passes for active member with usable policy", func(t *testing.T) {
		assert.Nil(t, eligibility.ValidateMember(activeMember(), activePolicy(), date(2024, time.June, 1)))
	})
}
