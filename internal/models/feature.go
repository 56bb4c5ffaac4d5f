package models

// Feature is a selling point shown in the homepage feature grid.
type Feature struct {
	Document

	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"type:varchar(100)" json:"icon"`
	Order       int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (Feature) TableName() string {
	return "features"
}
