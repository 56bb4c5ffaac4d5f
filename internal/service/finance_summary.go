package service

import (
	"time"

	"github.com/shopspring/decimal"

	"dinoverse/internal/models"
)

type FinanceSummary struct {
	TotalIncome  decimal.Decimal            `json:"totalIncome"`
	TotalExpense decimal.Decimal            `json:"totalExpense"`
	Net          decimal.Decimal            `json:"net"`
	ByCategory   map[string]decimal.Decimal `json:"byCategory"`
}

// SummarizeTransactions signs each amount by type: income adds, expense
// subtracts. Transactions without a category only feed the totals.
func SummarizeTransactions(txns []models.Transaction) FinanceSummary {
	out := FinanceSummary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		ByCategory:   map[string]decimal.Decimal{},
	}
	for _, tx := range txns {
		signed := tx.Amount
		switch tx.Type {
		case models.TransactionIncome:
			out.TotalIncome = out.TotalIncome.Add(tx.Amount)
		case models.TransactionExpense:
			out.TotalExpense = out.TotalExpense.Add(tx.Amount)
			signed = tx.Amount.Neg()
		default:
			continue
		}
		if tx.Category == "" {
			continue
		}
		out.ByCategory[tx.Category] = out.ByCategory[tx.Category].Add(signed)
	}
	out.Net = out.TotalIncome.Sub(out.TotalExpense)
	return out
}

// MonthWindow spans the calendar month in loc, both ends inclusive.
func MonthWindow(year int, month time.Month, loc *time.Location) (from, to time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	from = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	to = from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to
}
