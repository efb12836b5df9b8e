package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_EligibilityConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("ELIGIBILITY_AMOUNT_LIMIT_HARD", "false")
	os.Setenv("ELIGIBILITY_WAITING_PERIOD_REFERENCE", "member_enrollment")
	defer func() {
		os.Unsetenv("ELIGIBILITY_AMOUNT_LIMIT_HARD")
		os.Unsetenv("ELIGIBILITY_WAITING_PERIOD_REFERENCE")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify eligibility config
	assert.False(t, cfg.Eligibility.AmountLimitHard)
	assert.True(t, cfg.Eligibility.CountLimitHard)
	assert.Equal(t, "member_enrollment", cfg.Eligibility.WaitingPeriodReference)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("ELIGIBILITY_AMOUNT_LIMIT_HARD")
	os.Unsetenv("ELIGIBILITY_WAITING_PERIOD_REFERENCE")
	os.Unsetenv("PREAUTH_EXPIRY_SWEEP_SECONDS")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.True(t, cfg.Eligibility.AmountLimitHard)
	assert.Equal(t, "policy_start", cfg.Eligibility.WaitingPeriodReference)
	assert.Equal(t, 300, cfg.PreAuth.ExpirySweepSeconds)
	assert.Equal(t, "claims_administration", cfg.Database.Database)
}
