package models

import "github.com/shopspring/decimal"

// Product is a store item.
type Product struct {
	Document

	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Slug        string          `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"price"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	ImageURL    string          `gorm:"type:text" json:"imageUrl"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	InStock     bool            `gorm:"not null" json:"inStock"`
	Featured    bool            `gorm:"not null;default:false;index" json:"featured"`
	ExternalURL string          `gorm:"type:text" json:"externalUrl"`
}

func (Product) TableName() string {
	return "products"
}
