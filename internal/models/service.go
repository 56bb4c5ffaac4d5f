package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Service is an offering listed on the public services page.
type Service struct {
	Document

	Title            string                      `gorm:"type:varchar(200);not null" json:"title"`
	Slug             string                      `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	ShortDescription string                      `gorm:"type:varchar(500)" json:"shortDescription"`
	Description      string                      `gorm:"type:text" json:"description"`
	Icon             string                      `gorm:"type:varchar(100)" json:"icon"`
	Features         datatypes.JSONSlice[string] `json:"features"`
	PriceFrom        *decimal.Decimal            `gorm:"type:numeric(20,2)" json:"priceFrom"`
	Order            int                         `gorm:"column:sort_order;not null;default:0" json:"order"`
	Active           bool                        `gorm:"not null;index" json:"active"`
}

func (Service) TableName() string {
	return "services"
}
