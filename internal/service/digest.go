package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dinoverse/internal/notification"
)

type Sender interface {
	Send(ctx context.Context, msg notification.Message) error
}

// DigestService sends the daily Life-OS summary.
type DigestService struct {
	Metrics  *MetricsService
	Notifier Sender
	Logger   *zap.Logger
}

func (s *DigestService) RunOnce(ctx context.Context) error {
	if s == nil || s.Metrics == nil || s.Notifier == nil {
		return nil
	}
	d, err := s.Metrics.Dashboard(ctx)
	if err != nil {
		return err
	}
	msg := DigestMessage(d, s.Metrics.now().Format("2006-01-02"))
	if err := s.Notifier.Send(ctx, msg); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("digest sent", zap.Int("trades_this_week", d.Trading.TradesThisWeek))
	}
	return nil
}

// Job adapts RunOnce to the cron runner.
func (s *DigestService) Job(ctx context.Context) {
	if err := s.RunOnce(ctx); err != nil && s.Logger != nil {
		s.Logger.Warn("digest run failed", zap.Error(err))
	}
}

func DigestMessage(d Dashboard, day string) notification.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Trades this week: %d (rules broken: %d)\n", d.Trading.TradesThisWeek, d.Trading.RulesBrokenThisWeek)
	fmt.Fprintf(&b, "Win rate: %d%%, avg R %.2f\n", d.Trading.WinRate, d.Trading.AvgR)
	fmt.Fprintf(&b, "Days without rule break: %d\n", d.Trading.DaysWithoutRuleBreak)
	fmt.Fprintf(&b, "Habit consistency (7d): %d%%\n", d.Habits.ConsistencyPercent)
	fmt.Fprintf(&b, "Net this month: %s\n", d.Finance.Net.StringFixed(2))
	fmt.Fprintf(&b, "Active goals: %d", d.ActiveGoals)
	if d.Quote != nil {
		fmt.Fprintf(&b, "\n\n\"%s\"", d.Quote.Text)
		if d.Quote.Author != "" {
			fmt.Fprintf(&b, " (%s)", d.Quote.Author)
		}
	}
	return notification.Message{Event: "digest.daily", Subject: "Daily digest " + day, Text: b.String()}
}
