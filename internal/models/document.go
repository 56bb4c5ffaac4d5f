package models

import (
	"time"

	"gorm.io/gorm"

	"dinoverse/internal/id"
)

// Document is embedded by every stored collection. IDs are ULIDs minted on
// first insert.
type Document struct {
	ID        string    `gorm:"type:varchar(26);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = id.New()
	}
	return nil
}
