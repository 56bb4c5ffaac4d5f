package service

import (
	"time"

	"dinoverse/internal/models"
)

type HabitConsistency struct {
	Total              int `json:"total"`
	Done               int `json:"done"`
	ConsistencyPercent int `json:"consistencyPercent"`
}

type HabitSummary struct {
	HabitConsistency
	ByHabit map[string]HabitConsistency `json:"byHabit"`
}

func SummarizeHabitLogs(logs []models.HabitLog) HabitSummary {
	out := HabitSummary{ByHabit: map[string]HabitConsistency{}}
	for _, l := range logs {
		per := out.ByHabit[l.HabitID]
		per.Total++
		out.Total++
		if l.Status == models.HabitLogDone {
			per.Done++
			out.Done++
		}
		out.ByHabit[l.HabitID] = per
	}
	out.ConsistencyPercent = consistency(out.Done, out.Total)
	for id, per := range out.ByHabit {
		per.ConsistencyPercent = consistency(per.Done, per.Total)
		out.ByHabit[id] = per
	}
	return out
}

func consistency(done, total int) int {
	return int(roundHalfUp(float64(done) / float64(max(total, 1)) * 100))
}

// CalendarDay returns midnight UTC of t's date in loc. Habit logs, trades
// filtered by day and reflections are keyed this way.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LastDays is the window of n calendar days ending today, inclusive.
func LastDays(now time.Time, loc *time.Location, n int) (from, to time.Time) {
	if n < 1 {
		n = 1
	}
	to = CalendarDay(now, loc)
	from = to.AddDate(0, 0, -(n - 1))
	return from, to
}
