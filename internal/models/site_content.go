package models

import (
	"time"

	"gorm.io/datatypes"
)

// SiteContent is one homepage section document, addressed by key.
type SiteContent struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"-"`

	Key  string         `gorm:"column:section_key;type:varchar(60);not null;uniqueIndex" json:"key"`
	Data datatypes.JSON `gorm:"not null" json:"data"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index" json:"updatedAt"`
}

func (SiteContent) TableName() string {
	return "site_contents"
}
