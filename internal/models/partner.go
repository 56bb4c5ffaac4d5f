package models

type Partner struct {
	Document

	Name       string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	LogoURL    string `gorm:"type:text" json:"logoUrl"`
	WebsiteURL string `gorm:"type:text" json:"websiteUrl"`
	Order      int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (Partner) TableName() string {
	return "partners"
}
