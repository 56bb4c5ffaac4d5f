package models

const (
	HabitFrequencyDaily  = "daily"
	HabitFrequencyWeekly = "weekly"
)

type Habit struct {
	Document

	Name          string  `gorm:"type:varchar(100);not null" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	Frequency     string  `gorm:"type:varchar(10);not null;default:'daily'" json:"frequency"`
	TargetPerWeek int     `gorm:"not null" json:"targetPerWeek"`
	GoalID        *string `gorm:"type:varchar(26);index" json:"goalId"`
	Color         string  `gorm:"type:varchar(20)" json:"color"`
	Active        bool    `gorm:"not null;index" json:"active"`
}

func (Habit) TableName() string {
	return "habits"
}
