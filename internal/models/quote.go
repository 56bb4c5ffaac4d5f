package models

import "gorm.io/datatypes"

type Quote struct {
	Document

	Text     string                      `gorm:"type:text;not null" json:"text"`
	Author   string                      `gorm:"type:varchar(100)" json:"author"`
	Source   string                      `gorm:"type:varchar(200)" json:"source"`
	Tags     datatypes.JSONSlice[string] `json:"tags"`
	Favorite bool                        `gorm:"not null;default:false;index" json:"favorite"`
}

func (Quote) TableName() string {
	return "quotes"
}
