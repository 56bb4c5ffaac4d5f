package models

import "time"

type Reflection struct {
	Document

	Date         time.Time `gorm:"not null;index" json:"date"`
	Period       string    `gorm:"type:varchar(10);not null;default:'daily';index" json:"period"`
	Mood         *int      `json:"mood"`
	Wins         string    `gorm:"type:text" json:"wins"`
	Lessons      string    `gorm:"type:text" json:"lessons"`
	Improvements string    `gorm:"type:text" json:"improvements"`
	Content      string    `gorm:"type:text" json:"content"`
}

func (Reflection) TableName() string {
	return "reflections"
}
