package models

type Testimonial struct {
	Document

	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Role      string `gorm:"type:varchar(100)" json:"role"`
	Company   string `gorm:"type:varchar(100)" json:"company"`
	Quote     string `gorm:"type:text;not null" json:"quote"`
	AvatarURL string `gorm:"type:text" json:"avatarUrl"`
	Rating    int    `gorm:"not null;default:5" json:"rating"`
	Featured  bool   `gorm:"not null;default:false;index" json:"featured"`
	Order     int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
