package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flag(v bool) *bool { return &v }

func TestRuleCheckCompliant(t *testing.T) {
	all := &RuleCheck{
		FollowedPlan:       flag(true),
		RespectedDailyLoss: flag(true),
		ValidSession:       flag(true),
		Emotional:          flag(false),
	}
	assert.True(t, all.Compliant())

	var missing *RuleCheck
	assert.False(t, missing.Compliant())

	// emotional unanswered still counts as compliant; it defaults to false
	partial := &RuleCheck{FollowedPlan: flag(true), RespectedDailyLoss: flag(true), ValidSession: flag(true)}
	assert.True(t, partial.Compliant())

	noSession := &RuleCheck{FollowedPlan: flag(true), RespectedDailyLoss: flag(true)}
	assert.False(t, noSession.Compliant())
}

func TestRuleCheckViolated(t *testing.T) {
	var missing *RuleCheck
	assert.False(t, missing.Violated())
	assert.False(t, (&RuleCheck{}).Violated())

	assert.True(t, (&RuleCheck{FollowedPlan: flag(false)}).Violated())
	assert.True(t, (&RuleCheck{RespectedDailyLoss: flag(false)}).Violated())
	assert.True(t, (&RuleCheck{ValidSession: flag(false)}).Violated())
	assert.True(t, (&RuleCheck{Emotional: flag(true)}).Violated())
	assert.False(t, (&RuleCheck{Emotional: flag(false)}).Violated())
}

func TestTradeResultPrefersR(t *testing.T) {
	r, pct := 1.5, 3.0
	v, ok := Trade{ResultR: &r, ResultPct: &pct}.Result()
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	v, ok = Trade{ResultPct: &pct}.Result()
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	_, ok = Trade{}.Result()
	assert.False(t, ok)
}
