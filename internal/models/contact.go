package models

const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// Contact is a message submitted through the public contact form.
type Contact struct {
	Document

	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	Email   string `gorm:"type:varchar(200);not null;index" json:"email"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Company string `gorm:"type:varchar(200)" json:"company"`
	Subject string `gorm:"type:varchar(200)" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Status  string `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
}

func (Contact) TableName() string {
	return "contacts"
}
