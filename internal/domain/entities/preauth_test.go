package entities_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

var allPreAuthStatuses = []entities.PreAuthStatus{
	entities.PreAuthStatusRequested,
	entities.PreAuthStatusUnderReview,
	entities.PreAuthStatusMoreInfoRequired,
	entities.PreAuthStatusApproved,
	entities.PreAuthStatusRejected,
	entities.PreAuthStatusExpired,
}

var preAuthTable = map[entities.PreAuthStatus][]entities.PreAuthStatus{
	entities.PreAuthStatusRequested:        {entities.PreAuthStatusUnderReview},
	entities.PreAuthStatusUnderReview:      {entities.PreAuthStatusApproved, entities.PreAuthStatusRejected, entities.PreAuthStatusMoreInfoRequired},
	entities.PreAuthStatusMoreInfoRequired: {entities.PreAuthStatusRequested},
	entities.PreAuthStatusApproved:         {entities.PreAuthStatusExpired},
}

func preAuthAllowed(from, to entities.PreAuthStatus) bool {
	for _, t := range preAuthTable[from] {
		if t == to {
			return true
		}
	}
	return false
}

func TestPreAuthStatus_CanTransitionTo_Exhaustive(t *testing.T) {
	for _, from := range allPreAuthStatuses {
		for _, to := range allPreAuthStatuses {
			want := preAuthAllowed(from, to)
			got := from.CanTransitionTo(to)
			assert.Equal(t, want, got, "%s -> %s", from, to)
			if from == to {
				assert.False(t, got, "same-state transition %s must be illegal", from)
			}
		}
	}
}

func TestPreAuthStatus_TerminalStates(t *testing.T) {
	t.Run("rejected refuses every target", func(t *testing.T) {
		for _, to := range allPreAuthStatuses {
			assert.False(t, entities.PreAuthStatusRejected.CanTransitionTo(to), "REJECTED -> %s", to)
		}
		assert.True(t, entities.PreAuthStatusRejected.IsTerminal())
		assert.Empty(t, entities.PreAuthStatusRejected.AllowedTransitions())
	})

	t.Run("expired refuses every target", func(t *testing.T) {
		for _, to := range allPreAuthStatuses {
			assert.False(t, entities.PreAuthStatusExpired.CanTransitionTo(to), "EXPIRED -> %s", to)
		}
		assert.True(t, entities.PreAuthStatusExpired.IsTerminal())
	})
}

func TestPreAuth_Transition(t *testing.T) {
	t.Run("resubmission after more info", func(t *testing.T) {
		preAuth := &entities.PreAuthorization{Status: entities.PreAuthStatusMoreInfoRequired}

		err := preAuth.Transition(entities.PreAuthStatusRequested, entities.RoleProvider)

		require.NoError(t, err)
		assert.Equal(t, entities.PreAuthStatusRequested, preAuth.Status)
	})

	t.Run("expiry is system-triggered only", func(t *testing.T) {
		preAuth := &entities.PreAuthorization{Status: entities.PreAuthStatusApproved}

		err := preAuth.Transition(entities.PreAuthStatusExpired, entities.RoleReviewer)

		var invalid *entities.InvalidTransitionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, entities.RoleSystem, invalid.RequiredRole)

		require.NoError(t, preAuth.Transition(entities.PreAuthStatusExpired, entities.RoleSystem))
		assert.Equal(t, entities.PreAuthStatusExpired, preAuth.Status)
	})
}

func TestPreAuth_UsableForClaim(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	from := now.AddDate(0, 0, -10)
	until := now.AddDate(0, 0, 10)

	t.Run("approved inside window is usable", func(t *testing.T) {
		preAuth := &entities.PreAuthorization{
			Status:     entities.PreAuthStatusApproved,
			ValidFrom:  &from,
			ValidUntil: &until,
		}
		assert.True(t, preAuth.UsableForClaim(now))
	})

	t.Run("approved outside window is not usable", func(t *testing.T) {
		preAuth := &entities.PreAuthorization{
			Status:     entities.PreAuthStatusApproved,
			ValidFrom:  &from,
			ValidUntil: &until,
		}
		assert.False(t, preAuth.UsableForClaim(until.AddDate(0, 0, 1)))
	})

	t.Run("only approved is usable", func(t *testing.T) {
		for _, status := range allPreAuthStatuses {
			if status == entities.PreAuthStatusApproved {
				continue
			}
			preAuth := &entities.PreAuthorization{Status: status}
			assert.False(t, preAuth.UsableForClaim(now), "%s must not be usable", status)
		}
	})
}
