package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TradeLong  = "long"
	TradeShort = "short"

	TradeStatusOpen      = "open"
	TradeStatusClosed    = "closed"
	TradeStatusBreakeven = "breakeven"
)

// RuleCheck holds the four discipline flags journaled with a trade. Flags are
// pointers so that "not answered" stays distinguishable from false.
type RuleCheck struct {
	FollowedPlan       *bool `json:"followedPlan,omitempty"`
	RespectedDailyLoss *bool `json:"respectedDailyLoss,omitempty"`
	ValidSession       *bool `json:"validSession,omitempty"`
	Emotional          *bool `json:"emotional,omitempty"`
}

// Compliant requires every positive flag set to true and emotional set to
// false. Missing flags count as false.
func (r *RuleCheck) Compliant() bool {
	if r == nil {
		return false
	}
	return isTrue(r.FollowedPlan) &&
		isTrue(r.RespectedDailyLoss) &&
		isTrue(r.ValidSession) &&
		!isTrue(r.Emotional)
}

// Violated reports an explicit breach: one of the positive flags set to false,
// or emotional set to true. Missing flags are not a breach.
func (r *RuleCheck) Violated() bool {
	if r == nil {
		return false
	}
	return isFalse(r.FollowedPlan) ||
		isFalse(r.RespectedDailyLoss) ||
		isFalse(r.ValidSession) ||
		isTrue(r.Emotional)
}

func isTrue(v *bool) bool  { return v != nil && *v }
func isFalse(v *bool) bool { return v != nil && !*v }

type Trade struct {
	Document

	Date          time.Time                   `gorm:"not null;index" json:"date"`
	Instrument    string                      `gorm:"type:varchar(50);not null;index" json:"instrument"`
	Direction     string                      `gorm:"type:varchar(10);not null" json:"direction"`
	EntryPrice    float64                     `gorm:"not null" json:"entryPrice"`
	StopLoss      float64                     `json:"stopLoss"`
	TakeProfit    float64                     `json:"takeProfit"`
	ExitPrice     *float64                    `json:"exitPrice"`
	PositionSize  float64                     `json:"positionSize"`
	RiskPerTrade  *float64                    `json:"riskPerTrade"`
	ResultR       *float64                    `gorm:"column:result_r" json:"resultR"`
	ResultPct     *float64                    `json:"resultPct"`
	PnL           *float64                    `gorm:"column:pnl" json:"pnl"`
	Rules         *RuleCheck                  `gorm:"serializer:json;type:text" json:"rules"`
	Status        string                      `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Setup         string                      `gorm:"type:varchar(200)" json:"setup"`
	Notes         string                      `gorm:"type:text" json:"notes"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	ScreenshotURL string                      `gorm:"type:text" json:"screenshotUrl"`
}

func (Trade) TableName() string {
	return "trades"
}

// Result returns resultR when present, otherwise resultPct.
func (t Trade) Result() (float64, bool) {
	if t.ResultR != nil {
		return *t.ResultR, true
	}
	if t.ResultPct != nil {
		return *t.ResultPct, true
	}
	return 0, false
}
