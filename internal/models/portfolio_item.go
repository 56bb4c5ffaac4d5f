package models

import "gorm.io/datatypes"

type PortfolioItem struct {
	Document

	Title        string                      `gorm:"type:varchar(200);not null" json:"title"`
	Slug         string                      `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	Description  string                      `gorm:"type:text" json:"description"`
	Category     string                      `gorm:"type:varchar(100);index" json:"category"`
	Client       string                      `gorm:"type:varchar(200)" json:"client"`
	ImageURL     string                      `gorm:"type:text" json:"imageUrl"`
	Gallery      datatypes.JSONSlice[string] `json:"gallery"`
	Technologies datatypes.JSONSlice[string] `json:"technologies"`
	ProjectURL   string                      `gorm:"type:text" json:"projectUrl"`
	Featured     bool                        `gorm:"not null;default:false;index" json:"featured"`
	Order        int                         `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (PortfolioItem) TableName() string {
	return "portfolio_items"
}
