package eligibility_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/eligibility"
)

// stubRule is a configurable rule for exercising engine mechanics
type stubRule struct {
	code       string
	priority   int
	hard       bool
	applicable bool
	failure    *eligibility.Failure
	evaluated  *int
}

func (r *stubRule) Code() string                                     { return r.code }
func (r *stubRule) Priority() int                                    { return r.priority }
func (r *stubRule) Hard() bool                                       { return r.hard }
func (r *stubRule) Applicable(ctx *entities.EligibilityContext) bool { return r.applicable }

func (r *stubRule) Evaluate(ctx *entities.EligibilityContext) *eligibility.Failure {
	if r.evaluated != nil {
		*r.evaluated++
	}
	return r.failure
}

func passingRule(code string, priority int) *stubRule {
	return &stubRule{code: code, priority: priority, applicable: true}
}

func eligibleContext() *entities.EligibilityContext {
	return &entities.EligibilityContext{
		MemberID:     "mem-1",
		MemberStatus: entities.MemberStatusActive,
		CardNumber:   "M001",
		Policy:       activePolicy(),
		BenefitConfig: benefitConfig(
			categoryRule("DEN", 50),
		),
		CategoryID:  "DEN",
		ServiceCode: "DEN-001",
		ServiceDate: date(2024, time.June, 15),
	}
}

func TestEngine_Evaluate(t *testing.T) {
	t.Run("eligible when all rules pass", func(t *testing.T) {
		engine := eligibility.NewEngine(
			passingRule("a", 10),
			passingRule("b", 20),
		)

		result := engine.Evaluate(eligibleContext())

		assert.True(t, result.Eligible)
		assert.Empty(t, result.Reasons)
		assert.Equal(t, 2, result.Metrics.RulesEvaluated)
		assert.NotEmpty(t, result.RequestID)
	})

	t.Run("hard failure stops evaluation of later rules", func(t *testing.T) {
		var lateEvaluations int
		hard := &stubRule{
			code: "hard", priority: 20, hard: true, applicable: true,
			failure: &eligibility.Failure{Code: entities.ReasonServiceNotCovered, Message: "not covered"},
		}
		late := &stubRule{
			code: "late", priority: 30, applicable: true,
			evaluated: &lateEvaluations,
		}
		engine := eligibility.NewEngine(passingRule("early", 10), hard, late)

		result := engine.Evaluate(eligibleContext())

		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonServiceNotCovered, result.Reasons[0].Code)
		assert.Equal(t, 0, lateEvaluations, "no rule after a hard failure may run")
		assert.Equal(t, 2, result.Metrics.RulesEvaluated)
	})

	t.Run("soft failures accumulate as warnings without blocking", func(t *testing.T) {
		soft := &stubRule{
			code: "soft", priority: 10, applicable: true,
			failure: &eligibility.Failure{Code: entities.ReasonPreApprovalRequired, Message: "needs pre-approval"},
		}
		engine := eligibility.NewEngine(soft, passingRule("after", 20))

		result := engine.Evaluate(eligibleContext())

		assert.True(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.True(t, result.Reasons[0].Warning)
		assert.Equal(t, 2, result.Metrics.RulesEvaluated)
	})

	t.Run("earlier soft warnings survive a later hard failure", func(t *testing.T) {
		soft := &stubRule{
			code: "soft", priority: 10, applicable: true,
			failure: &eligibility.Failure{Code: entities.ReasonPreApprovalRequired, Message: "needs pre-approval"},
		}
		hard := &stubRule{
			code: "hard", priority: 20, hard: true, applicable: true,
			failure: &eligibility.Failure{Code: entities.ReasonAmountLimitExceeded, Message: "over limit"},
		}
		engine := eligibility.NewEngine(soft, hard)

		result := engine.Evaluate(eligibleContext())

		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 2)
		assert.Equal(t, entities.ReasonPreApprovalRequired, result.Reasons[0].Code)
		assert.True(t, result.Reasons[0].Warning)
		assert.Equal(t, entities.ReasonAmountLimitExceeded, result.Reasons[1].Code)
		assert.False(t, result.Reasons[1].Warning)
	})

	t.Run("inapplicable rules are skipped and not counted", func(t *testing.T) {
		skipped := &stubRule{code: "skipped", priority: 10, applicable: false,
			failure: &eligibility.Failure{Code: entities.ReasonBusinessRuleViolated, Message: "should not run"}}
		engine := eligibility.NewEngine(skipped, passingRule("runs", 20))

		result := engine.Evaluate(eligibleContext())

		assert.True(t, result.Eligible)
		assert.Equal(t, 1, result.Metrics.RulesEvaluated)
	})

	t.Run("priority orders evaluation with stable ties", func(t *testing.T) {
		engine := eligibility.NewEngine(
			passingRule("third", 20),
			passingRule("first", 10),
			passingRule("second", 10),
		)

		rules := engine.Rules()
		require.Len(t, rules, 3)
		assert.Equal(t, "first", rules[0].Code())
		assert.Equal(t, "second", rules[1].Code(), "ties keep registration order")
		assert.Equal(t, "third", rules[2].Code())
	})

	t.Run("evaluation is idempotent for an identical snapshot", func(t *testing.T) {
		engine := eligibility.NewDefaultEngine(eligibility.DefaultRuleConfig())
		ctx := eligibleContext()

		first := engine.Evaluate(ctx)
		second := engine.Evaluate(ctx)

		assert.Equal(t, first.Eligible, second.Eligible)
		assert.Equal(t, first.ReasonCodes(), second.ReasonCodes())
	})

	t.Run("snapshot is copied into the result", func(t *testing.T) {
		engine := eligibility.NewDefaultEngine(eligibility.DefaultRuleConfig())
		ctx := eligibleContext()

		result := engine.Evaluate(ctx)

		assert.Equal(t, ctx.MemberID, result.Snapshot.MemberID)
		assert.Equal(t, result.RequestID, result.Snapshot.RequestID)
	})
}

func TestDefaultRules_Chain(t *testing.T) {
	engine := eligibility.NewDefaultEngine(eligibility.DefaultRuleConfig())

	t.Run("fully eligible context passes", func(t *testing.T) {
		result := engine.Evaluate(eligibleContext())
		assert.True(t, result.Eligible)
		assert.Empty(t, result.Reasons)
	})

	t.Run("inactive member fails first", func(t *testing.T) {
		ctx := eligibleContext()
		ctx.MemberStatus = entities.MemberStatusTerminated

		result := engine.Evaluate(ctx)

		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonMemberNotActive, result.Reasons[0].Code)
		assert.Equal(t, 1, result.Metrics.RulesEvaluated)
	})

	t.Run("missing policy", func(t *testing.T) {
		ctx := eligibleContext()
		ctx.Policy = nil
		ctx.BenefitConfig = nil

		result := engine.Evaluate(ctx)

		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonNoPolicyAssigned, result.Reasons[0].Code)
	})

	t.Run("service outside benefit configuration", func(t *testing.T) {
		ctx := eligibleContext()
		ctx.CategoryID = "OPT"
		ctx.ServiceCode = "OPT-100"

		result := engine.Evaluate(ctx)

		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonServiceNotCovered, result.Reasons[0].Code)
	})

	t.Run("pre-approval requirement surfaces as warning only", func(t *testing.T) {
		rule := categoryRule("DEN", 50)
		rule.RequiresPreApproval = true
		ctx := eligibleContext()
		ctx.BenefitConfig = benefitConfig(rule)

		result := engine.Evaluate(ctx)

		assert.True(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonPreApprovalRequired, result.Reasons[0].Code)
		assert.True(t, result.Reasons[0].Warning)
	})
}

func TestWaitingPeriodRule_ReferenceDates(t *testing.T) {
	buildCtx := func() *entities.EligibilityContext {
		rule := categoryRule("DEN", 50)
		rule.WaitingPeriodDays = intPtr(90)
		ctx := eligibleContext()
		ctx.BenefitConfig = benefitConfig(rule)
		ctx.EnrollmentDate = datePtr(2024, time.March, 1)
		// policy starts 2024-01-01; enrollment 2024-03-01
		ctx.ServiceDate = date(2024, time.April, 15)
		return ctx
	}

	t.Run("measured from policy start", func(t *testing.T) {
		cfg := eligibility.DefaultRuleConfig()
		cfg.WaitingPeriodReference = eligibility.WaitingFromPolicyStart
		engine := eligibility.NewDefaultEngine(cfg)

		// 90 days from 2024-01-01 elapses 2024-03-31; April 15 passes
		result := engine.Evaluate(buildCtx())
		assert.True(t, result.Eligible)
	})

	t.Run("measured from member enrollment", func(t *testing.T) {
		cfg := eligibility.DefaultRuleConfig()
		cfg.WaitingPeriodReference = eligibility.WaitingFromEnrollment
		engine := eligibility.NewDefaultEngine(cfg)

		// 90 days from 2024-03-01 elapses 2024-05-30; April 15 fails
		result := engine.Evaluate(buildCtx())
		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonWaitingPeriodNotMet, result.Reasons[0].Code)
	})
}

func TestAmountLimitRule_Hardness(t *testing.T) {
	buildCtx := func() *entities.EligibilityContext {
		rule := categoryRule("DEN", 50)
		rule.AmountLimit = floatPtr(1000)
		ctx := eligibleContext()
		ctx.BenefitConfig = benefitConfig(rule)
		ctx.RequestedAmount = 400
		ctx.UsedAmount = 700
		return ctx
	}

	t.Run("hard configuration blocks", func(t *testing.T) {
		cfg := eligibility.DefaultRuleConfig()
		cfg.AmountLimitHard = true
		engine := eligibility.NewDefaultEngine(cfg)

		result := engine.Evaluate(buildCtx())

		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonAmountLimitExceeded, result.Reasons[0].Code)
		assert.Contains(t, result.Reasons[0].Detail, "requested 400.00")
	})

	t.Run("soft configuration warns without blocking", func(t *testing.T) {
		cfg := eligibility.DefaultRuleConfig()
		cfg.AmountLimitHard = false
		engine := eligibility.NewDefaultEngine(cfg)

		result := engine.Evaluate(buildCtx())

		assert.True(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonAmountLimitExceeded, result.Reasons[0].Code)
		assert.True(t, result.Reasons[0].Warning)
	})

	t.Run("exhausted benefit is its own reason", func(t *testing.T) {
		engine := eligibility.NewDefaultEngine(eligibility.DefaultRuleConfig())
		ctx := buildCtx()
		ctx.UsedAmount = 1000

		result := engine.Evaluate(ctx)

		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonBenefitExhausted, result.Reasons[0].Code)
	})
}

func TestCountLimitRule(t *testing.T) {
	buildCtx := func(used int) *entities.EligibilityContext {
		rule := categoryRule("DEN", 50)
		rule.CountLimit = intPtr(2)
		ctx := eligibleContext()
		ctx.BenefitConfig = benefitConfig(rule)
		ctx.UsedCount = used
		return ctx
	}

	t.Run("under the limit passes", func(t *testing.T) {
		engine := eligibility.NewDefaultEngine(eligibility.DefaultRuleConfig())
		result := engine.Evaluate(buildCtx(1))
		assert.True(t, result.Eligible)
	})

	t.Run("at the limit fails hard by default", func(t *testing.T) {
		engine := eligibility.NewDefaultEngine(eligibility.DefaultRuleConfig())
		result := engine.Evaluate(buildCtx(2))
		assert.False(t, result.Eligible)
		require.Len(t, result.Reasons, 1)
		assert.Equal(t, entities.ReasonCountLimitExceeded, result.Reasons[0].Code)
	})

	t.Run("soft configuration warns", func(t *testing.T) {
		cfg := eligibility.DefaultRuleConfig()
		cfg.CountLimitHard = false
		engine := eligibility.NewDefaultEngine(cfg)

		result := engine.Evaluate(buildCtx(2))
		assert.True(t, result.Eligible)
	})
}
