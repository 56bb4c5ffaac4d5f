package models

import "time"

const (
	HabitLogDone    = "done"
	HabitLogSkipped = "skipped"
	HabitLogMissed  = "missed"
)

// HabitLog is unique per habit and calendar day. Date is midnight UTC of that
// day.
type HabitLog struct {
	Document

	HabitID string    `gorm:"type:varchar(26);not null;uniqueIndex:idx_habit_logs_habit_day,priority:1" json:"habitId"`
	Date    time.Time `gorm:"not null;uniqueIndex:idx_habit_logs_habit_day,priority:2;index" json:"date"`
	Status  string    `gorm:"type:varchar(10);not null;default:'done'" json:"status"`
	Note    string    `gorm:"type:text" json:"note"`
}

func (HabitLog) TableName() string {
	return "habit_logs"
}
