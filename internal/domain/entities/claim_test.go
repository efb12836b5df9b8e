package entities_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

var allClaimStatuses = []entities.ClaimStatus{
	entities.ClaimStatusDraft,
	entities.ClaimStatusSubmitted,
	entities.ClaimStatusUnderReview,
	entities.ClaimStatusApproved,
	entities.ClaimStatusPartiallyApproved,
	entities.ClaimStatusRejected,
	entities.ClaimStatusSettled,
}

// claimTable mirrors the documented lifecycle so the test fails if the
// entity's table drifts
var claimTable = map[entities.ClaimStatus][]entities.ClaimStatus{
	entities.ClaimStatusDraft:             {entities.ClaimStatusSubmitted},
	entities.ClaimStatusSubmitted:         {entities.ClaimStatusUnderReview},
	entities.ClaimStatusUnderReview:       {entities.ClaimStatusApproved, entities.ClaimStatusPartiallyApproved, entities.ClaimStatusRejected},
	entities.ClaimStatusApproved:          {entities.ClaimStatusSettled},
	entities.ClaimStatusPartiallyApproved: {entities.ClaimStatusSettled},
}

func claimAllowed(from, to entities.ClaimStatus) bool {
	for _, t := range claimTable[from] {
		if t == to {
			return true
		}
	}
	return false
}

func TestClaimStatus_CanTransitionTo_Exhaustive(t *testing.T) {
	for _, from := range allClaimStatuses {
		for _, to := range allClaimStatuses {
			want := claimAllowed(from, to)
			got := from.CanTransitionTo(to)
			assert.Equal(t, want, got, "%s -> %s", from, to)
			if from == to {
				assert.False(t, got, "same-state transition %s must be illegal", from)
			}
		}
	}
}

func TestClaimStatus_TerminalStates(t *testing.T) {
	for _, status := range []entities.ClaimStatus{entities.ClaimStatusRejected, entities.ClaimStatusSettled} {
		t.Run(string(status), func(t *testing.T) {
			assert.True(t, status.IsTerminal())
			assert.Empty(t, status.AllowedTransitions())
		})
	}

	for _, status := range []entities.ClaimStatus{
		entities.ClaimStatusDraft,
		entities.ClaimStatusSubmitted,
		entities.ClaimStatusUnderReview,
		entities.ClaimStatusApproved,
		entities.ClaimStatusPartiallyApproved,
	} {
		assert.False(t, status.IsTerminal(), "%s must not be terminal", status)
		assert.NotEmpty(t, status.AllowedTransitions())
	}
}

func TestClaim_Transition(t *testing.T) {
	newClaim := func(status entities.ClaimStatus) *entities.Claim {
		return &entities.Claim{
			ID:     "clm-1",
			Status: status,
		}
	}

	t.Run("legal transition with required role succeeds", func(t *testing.T) {
		claim := newClaim(entities.ClaimStatusUnderReview)

		err := claim.Transition(entities.ClaimStatusApproved, entities.RoleReviewer)

		require.NoError(t, err)
		assert.Equal(t, entities.ClaimStatusApproved, claim.Status)
	})

	t.Run("illegal transition carries from and to", func(t *testing.T) {
		claim := newClaim(entities.ClaimStatusDraft)

		err := claim.Transition(entities.ClaimStatusSettled, entities.RoleFinance)

		var invalid *entities.InvalidTransitionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, string(entities.ClaimStatusDraft), invalid.From)
		assert.Equal(t, string(entities.ClaimStatusSettled), invalid.To)
		assert.Equal(t, entities.ClaimStatusDraft, claim.Status, "status must not change on failure")
	})

	t.Run("role mismatch carries the required role", func(t *testing.T) {
		claim := newClaim(entities.ClaimStatusUnderReview)

		err := claim.Transition(entities.ClaimStatusApproved, entities.RoleProvider)

		var invalid *entities.InvalidTransitionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, entities.RoleReviewer, invalid.RequiredRole)
		assert.Equal(t, entities.RoleProvider, invalid.ActorRole)
		assert.Equal(t, entities.ClaimStatusUnderReview, claim.Status)
	})

	t.Run("terminal claim refuses every transition", func(t *testing.T) {
		claim := newClaim(entities.ClaimStatusSettled)
		for _, to := range allClaimStatuses {
			err := claim.Transition(to, entities.RoleReviewer)
			assert.Error(t, err, "SETTLED -> %s must fail", to)
		}
	})
}

func TestClaim_AmountsConsistent(t *testing.T) {
	claim := &entities.Claim{
		RequestedAmount:   500,
		PatientCoPay:      100,
		NetProviderAmount: 400,
		ServiceDate:       time.Now(),
	}
	assert.True(t, claim.AmountsConsistent())

	claim.NetProviderAmount = 350
	assert.False(t, claim.AmountsConsistent())
}
