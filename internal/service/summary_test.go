package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinoverse/internal/models"
)

func TestSummarizeHabitLogs(t *testing.T) {
	logs := []models.HabitLog{
		{HabitID: "a", Status: models.HabitLogDone},
		{HabitID: "a", Status: models.HabitLogDone},
		{HabitID: "b", Status: models.HabitLogSkipped},
	}
	got := SummarizeHabitLogs(logs)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Done)
	assert.Equal(t, 67, got.ConsistencyPercent)
	assert.Equal(t, HabitConsistency{Total: 2, Done: 2, ConsistencyPercent: 100}, got.ByHabit["a"])
	assert.Equal(t, HabitConsistency{Total: 1, Done: 0, ConsistencyPercent: 0}, got.ByHabit["b"])
}

func TestSummarizeHabitLogsEmpty(t *testing.T) {
	got := SummarizeHabitLogs(nil)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.ConsistencyPercent)
	assert.NotNil(t, got.ByHabit)
}

func TestSummarizeTransactions(t *testing.T) {
	txns := []models.Transaction{
		{Type: models.TransactionIncome, Amount: decimal.NewFromInt(100)},
		{Type: models.TransactionExpense, Amount: decimal.NewFromInt(40), Category: "food"},
	}
	got := SummarizeTransactions(txns)
	assert.True(t, got.TotalIncome.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.TotalExpense.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.Net.Equal(decimal.NewFromInt(60)))
	require.Len(t, got.ByCategory, 1)
	assert.True(t, got.ByCategory["food"].Equal(decimal.NewFromInt(-40)))
}

func TestSummarizeTransactionsNetsCategories(t *testing.T) {
	txns := []models.Transaction{
		{Type: models.TransactionIncome, Amount: decimal.RequireFromString("0.10"), Category: "misc"},
		{Type: models.TransactionIncome, Amount: decimal.RequireFromString("0.20"), Category: "misc"},
		{Type: models.TransactionExpense, Amount: decimal.RequireFromString("0.05"), Category: "misc"},
	}
	got := SummarizeTransactions(txns)
	assert.Equal(t, "0.25", got.ByCategory["misc"].String())
	assert.Equal(t, "0.25", got.Net.String())
}

func TestMonthWindow(t *testing.T) {
	from, to := MonthWindow(2024, time.February, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 29, to.Day())
	assert.Equal(t, time.February, to.Month())
}

func TestLastDays(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 02:00 UTC on the 10th is still the 9th at UTC-5
	now := time.Date(2024, 6, 10, 2, 0, 0, 0, time.UTC)
	from, to := LastDays(now, loc, 7)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), to)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), from)
}
