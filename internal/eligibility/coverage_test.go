package eligibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/eligibility"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func benefitConfig(rules ...entities.CoverageRule) *entities.BenefitConfiguration {
	return &entities.BenefitConfiguration{
		ID:       "cfg-1",
		Name:     "Standard Plan",
		IsActive: true,
		Rules:    rules,
	}
}

func categoryRule(categoryID string, percent float64) entities.CoverageRule {
	return entities.CoverageRule{
		ID:              "rule-cat-" + categoryID,
		Target:          entities.CoverageRuleTargetCategory,
		CategoryID:      categoryID,
		CoveragePercent: percent,
		IsActive:        true,
	}
}

func serviceRule(categoryID, serviceID string, percent float64) entities.CoverageRule {
	return entities.CoverageRule{
		ID:              "rule-svc-" + serviceID,
		Target:          entities.CoverageRuleTargetService,
		CategoryID:      categoryID,
		ServiceID:       strPtr(serviceID),
		CoveragePercent: percent,
		IsActive:        true,
	}
}

func TestResolveCoverage(t *testing.T) {
	t.Run("service rule overrides category rule", func(t *testing.T) {
		cfg := benefitConfig(
			categoryRule("DEN", 50),
			serviceRule("DEN", "DEN-001", 80),
		)

		cov, ok := eligibility.ResolveCoverage(cfg, "DEN", "DEN-001")

		require.True(t, ok)
		assert.Equal(t, 80.0, cov.CoveragePercent)
		assert.Equal(t, entities.CoverageRuleTargetService, cov.Source)
	})

	t.Run("category rule percent returned unchanged when no service override", func(t *testing.T) {
		cfg := benefitConfig(categoryRule("DEN", 50))

		cov, ok := eligibility.ResolveCoverage(cfg, "DEN", "DEN-001")

		require.True(t, ok)
		assert.Equal(t, 50.0, cov.CoveragePercent, "effective percent must be the category's raw percent, not zero")
		assert.Equal(t, entities.CoverageRuleTargetCategory, cov.Source)
	})

	t.Run("not covered when no rule matches", func(t *testing.T) {
		cfg := benefitConfig(categoryRule("OPT", 60))

		cov, ok := eligibility.ResolveCoverage(cfg, "DEN", "DEN-001")

		assert.False(t, ok)
		assert.Nil(t, cov)
	})

	t.Run("inactive service rule falls back to category rule", func(t *testing.T) {
		inactive := serviceRule("DEN", "DEN-001", 90)
		inactive.IsActive = false
		cfg := benefitConfig(categoryRule("DEN", 50), inactive)

		cov, ok := eligibility.ResolveCoverage(cfg, "DEN", "DEN-001")

		require.True(t, ok)
		assert.Equal(t, 50.0, cov.CoveragePercent)
		assert.Equal(t, entities.CoverageRuleTargetCategory, cov.Source)
	})

	t.Run("inactive category rule means not covered", func(t *testing.T) {
		inactive := categoryRule("DEN", 50)
		inactive.IsActive = false
		cfg := benefitConfig(inactive)

		_, ok := eligibility.ResolveCoverage(cfg, "DEN", "DEN-001")

		assert.False(t, ok)
	})

	t.Run("service rule limits and flags carried through", func(t *testing.T) {
		rule := serviceRule("DEN", "DEN-002", 70)
		rule.AmountLimit = floatPtr(1500)
		rule.CountLimit = intPtr(3)
		rule.WaitingPeriodDays = intPtr(90)
		rule.RequiresPreApproval = true
		cfg := benefitConfig(rule)

		cov, ok := eligibility.ResolveCoverage(cfg, "DEN", "DEN-002")

		require.True(t, ok)
		assert.Equal(t, 1500.0, *cov.AmountLimit)
		assert.Equal(t, 3, *cov.CountLimit)
		assert.Equal(t, 90, *cov.WaitingPeriodDays)
		assert.True(t, cov.RequiresPreApproval)
	})

	t.Run("nil configuration is not covered", func(t *testing.T) {
		_, ok := eligibility.ResolveCoverage(nil, "DEN", "DEN-001")
		assert.False(t, ok)
	})

	t.Run("inactive configuration is not covered", func(t *testing.T) {
		cfg := benefitConfig(categoryRule("DEN", 50))
		cfg.IsActive = false

		_, ok := eligibility.ResolveCoverage(cfg, "DEN", "DEN-001")
		assert.False(t, ok)
	})
}
