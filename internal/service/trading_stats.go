package service

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"dinoverse/internal/models"
)

// streakCap bounds the backward walk of DaysWithoutRuleBreak.
const streakCap = 365

type TradingStats struct {
	TotalTrades               int     `json:"totalTrades"`
	TotalClosed               int     `json:"totalClosed"`
	WinningTrades             int     `json:"winningTrades"`
	LosingTrades              int     `json:"losingTrades"`
	WinRate                   int     `json:"winRate"`
	AvgR                      float64 `json:"avgR"`
	RuleComplianceRate        int     `json:"ruleComplianceRate"`
	WinRateWhenRulesRespected int     `json:"winRateWhenRulesRespected"`
	DaysWithoutRuleBreak      int     `json:"daysWithoutRuleBreak"`
	TradesThisWeek            int     `json:"tradesThisWeek"`
	RulesBrokenThisWeek       int     `json:"rulesBrokenThisWeek"`
	TotalPnL                  float64 `json:"totalPnL"`
}

// ComputeTradingStats reduces an already filtered trade set. Result metrics
// use closed trades carrying a result; discipline metrics use every trade.
// Calendar days and the ISO week are taken in now's location.
func ComputeTradingStats(trades []models.Trade, now time.Time) TradingStats {
	out := TradingStats{TotalTrades: len(trades)}

	var (
		rValues       []float64
		pnl           float64
		compliant     int
		compliantRes  int
		compliantWins int
		violatedDays  = map[string]struct{}{}
		loc           = now.Location()
		weekStart     = startOfISOWeek(now)
		weekEnd       = weekStart.AddDate(0, 0, 7)
	)

	for _, t := range trades {
		result, hasResult := t.Result()

		if t.Status == models.TradeStatusClosed && hasResult {
			out.TotalClosed++
			switch {
			case result > 0:
				out.WinningTrades++
			case result < 0:
				out.LosingTrades++
			}
			if t.ResultR != nil {
				rValues = append(rValues, *t.ResultR)
			}
			pnl += tradePnL(t)
		}

		if t.Rules.Compliant() {
			compliant++
			if hasResult {
				compliantRes++
				if result > 0 {
					compliantWins++
				}
			}
		}

		violated := t.Rules.Violated()
		if violated {
			violatedDays[dayKey(t.Date.In(loc))] = struct{}{}
		}
		if !t.Date.Before(weekStart) && t.Date.Before(weekEnd) {
			out.TradesThisWeek++
			if violated {
				out.RulesBrokenThisWeek++
			}
		}
	}

	out.WinRate = percent(out.WinningTrades, out.TotalClosed)
	if len(rValues) > 0 {
		out.AvgR = round2(stat.Mean(rValues, nil))
	}
	out.RuleComplianceRate = percent(compliant, out.TotalTrades)
	out.WinRateWhenRulesRespected = percent(compliantWins, compliantRes)
	out.DaysWithoutRuleBreak = cleanStreak(now, violatedDays)
	out.TotalPnL = round2(pnl)
	return out
}

// tradePnL prefers the journaled pnl, then resultR scaled by the risk amount.
func tradePnL(t models.Trade) float64 {
	if t.PnL != nil {
		return *t.PnL
	}
	if t.ResultR != nil && t.RiskPerTrade != nil {
		return *t.ResultR * *t.RiskPerTrade
	}
	return 0
}

func cleanStreak(now time.Time, violated map[string]struct{}) int {
	y, m, d := now.Date()
	streak := 0
	for i := 0; i < streakCap; i++ {
		day := time.Date(y, m, d-i, 0, 0, 0, 0, now.Location())
		if _, ok := violated[dayKey(day)]; ok {
			break
		}
		streak++
	}
	return streak
}

func startOfISOWeek(now time.Time) time.Time {
	y, m, d := now.Date()
	offset := (int(now.Weekday()) + 6) % 7
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// roundHalfUp matches JavaScript's Math.round, including for negatives.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func round2(v float64) float64 {
	return roundHalfUp(v*100) / 100
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(roundHalfUp(float64(part) / float64(whole) * 100))
}
