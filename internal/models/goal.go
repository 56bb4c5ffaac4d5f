package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusAbandoned = "abandoned"
)

// Goal keeps a denormalized list of the habits pointing at it. HabitIDs is
// maintained by the habit writes, never by goal payloads.
type Goal struct {
	Document

	Title       string                      `gorm:"type:varchar(200);not null" json:"title"`
	Description string                      `gorm:"type:text" json:"description"`
	Category    string                      `gorm:"type:varchar(30);index" json:"category"`
	TargetDate  *time.Time                  `json:"targetDate"`
	Progress    int                         `gorm:"not null;default:0" json:"progress"`
	Status      string                      `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	HabitIDs    datatypes.JSONSlice[string] `gorm:"column:habit_ids" json:"habitIds"`
}

func (Goal) TableName() string {
	return "goals"
}
