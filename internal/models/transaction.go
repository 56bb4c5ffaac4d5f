package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

type Transaction struct {
	Document

	Date        time.Time       `gorm:"not null;index" json:"date"`
	Type        string          `gorm:"type:varchar(10);not null;index" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Account     string          `gorm:"type:varchar(100)" json:"account"`
}

func (Transaction) TableName() string {
	return "transactions"
}
