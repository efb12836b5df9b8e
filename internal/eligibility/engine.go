// Package eligibility contains the claims-adjudication decision core:
// coverage resolution, policy validation, and the ordered rule engine that
// decides whether a member/policy/service combination is eligible.
//
// Everything in this package is a pure function over its inputs. Components
// hold no shared mutable state and are safe to call from any number of
// concurrent request handlers; all I/O happens at the boundary before and
// after invocation.
package eligibility

import (
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
)

// Engine evaluates the ordered rule chain against a request snapshot and
// produces a structured eligibility decision. Construct once at process
// start and reuse across requests.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine from the given rules. Rules are sorted
// ascending by priority; the sort is stable, so rules sharing a priority
// run in registration order.
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: sortRules(rules)}
}

// NewDefaultEngine creates an engine with the standard rule chain
func NewDefaultEngine(cfg RuleConfig) *Engine {
	return NewEngine(DefaultRules(cfg)...)
}

// Rules returns the engine's rules in evaluation order
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluate runs every applicable rule against the context in priority order.
// The first hard failure stops the chain and makes the result ineligible;
// soft failures accumulate as warnings without blocking. The chain
// completing without a hard failure makes the result eligible.
//
// Evaluation is deterministic: the same snapshot always yields the same
// eligible flag and the same ordered reason codes. Only the request ID and
// timing metrics vary between invocations.
func (e *Engine) Evaluate(ctx *entities.EligibilityContext) *entities.EligibilityResult {
	start := time.Now()

	requestID := ctx.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	var reasons []entities.Reason
	evaluated := 0
	eligible := true

	for _, rule := range e.rules {
		if !rule.Applicable(ctx) {
			continue
		}
		evaluated++

		failure := rule.Evaluate(ctx)
		if failure == nil {
			continue
		}

		if rule.Hard() {
			reasons = append(reasons, entities.Reason{
				Code:    failure.Code,
				Message: failure.Message,
				Detail:  failure.Detail,
			})
			eligible = false
			break
		}

		reasons = append(reasons, entities.Reason{
			Code:    failure.Code,
			Message: failure.Message,
			Detail:  failure.Detail,
			Warning: true,
		})
	}

	snapshot := *ctx
	snapshot.RequestID = requestID

	return &entities.EligibilityResult{
		RequestID: requestID,
		Eligible:  eligible,
		Reasons:   reasons,
		Snapshot:  snapshot,
		Metrics: entities.EligibilityMetrics{
			RulesEvaluated: evaluated,
			Elapsed:        time.Since(start),
		},
		EvaluatedAt: time.Now(),
	}
}
