package service

import (
	"context"
	"errors"
	"time"

	"dinoverse/internal/models"
	"dinoverse/internal/repository"
)

type Dashboard struct {
	Trading     TradingStats   `json:"trading"`
	Habits      HabitSummary   `json:"habits"`
	Finance     FinanceSummary `json:"finance"`
	ActiveGoals int64          `json:"activeGoals"`
	Quote       *models.Quote  `json:"quote"`
}

// MetricsService loads raw Life-OS records and reduces them. Calendar
// semantics follow Location.
type MetricsService struct {
	Repo     repository.Repository
	Location *time.Location
	// Now is overridable in tests.
	Now func() time.Time
}

func (s *MetricsService) TradingStats(ctx context.Context, from, to *time.Time) (TradingStats, error) {
	if s == nil || s.Repo == nil {
		return TradingStats{}, nil
	}
	trades, err := s.Repo.ListAllTrades(ctx, repository.ListTradesParams{From: from, To: to})
	if err != nil {
		return TradingStats{}, err
	}
	return ComputeTradingStats(trades, s.now()), nil
}

// HabitSummary defaults to the last seven calendar days when from/to are nil.
func (s *MetricsService) HabitSummary(ctx context.Context, habitID *string, from, to *time.Time) (HabitSummary, error) {
	if s == nil || s.Repo == nil {
		return SummarizeHabitLogs(nil), nil
	}
	if from == nil && to == nil {
		f, t := LastDays(s.now(), s.loc(), 7)
		from, to = &f, &t
	}
	logs, err := s.Repo.ListAllHabitLogs(ctx, repository.ListHabitLogsParams{HabitID: habitID, From: from, To: to})
	if err != nil {
		return HabitSummary{}, err
	}
	return SummarizeHabitLogs(logs), nil
}

// FinanceSummary covers one calendar month. Zero year or month mean current.
func (s *MetricsService) FinanceSummary(ctx context.Context, year int, month time.Month) (FinanceSummary, error) {
	if s == nil || s.Repo == nil {
		return SummarizeTransactions(nil), nil
	}
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	from, to := MonthWindow(year, month, s.loc())
	txns, err := s.Repo.ListAllTransactions(ctx, repository.ListTransactionsParams{From: &from, To: &to})
	if err != nil {
		return FinanceSummary{}, err
	}
	return SummarizeTransactions(txns), nil
}

func (s *MetricsService) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		out Dashboard
		err error
	)
	if out.Trading, err = s.TradingStats(ctx, nil, nil); err != nil {
		return Dashboard{}, err
	}
	if out.Habits, err = s.HabitSummary(ctx, nil, nil, nil); err != nil {
		return Dashboard{}, err
	}
	if out.Finance, err = s.FinanceSummary(ctx, 0, 0); err != nil {
		return Dashboard{}, err
	}
	if s == nil || s.Repo == nil {
		return out, nil
	}
	active := models.GoalStatusActive
	if out.ActiveGoals, err = s.Repo.CountGoals(ctx, repository.ListGoalsParams{Status: &active}); err != nil {
		return Dashboard{}, err
	}
	quote, err := s.Repo.RandomQuote(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return Dashboard{}, err
	default:
		out.Quote = quote
	}
	return out, nil
}

func (s *MetricsService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s *MetricsService) now() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return now.In(s.loc())
}
