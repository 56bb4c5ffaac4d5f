package models

// Rule is a personal discipline rule, not to be confused with the per-trade
// RuleCheck flags.
type Rule struct {
	Document

	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(20);index" json:"category"`
	Active      bool   `gorm:"not null;index" json:"active"`
	Order       int    `gorm:"column:sort_order;not null;default:0" json:"order"`
}

func (Rule) TableName() string {
	return "rules"
}
