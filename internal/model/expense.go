package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultExpenseType is applied when a request omits the expense type.
const DefaultExpenseType = "Other"

// Expense is an operating cost independent of products and categories.
type Expense struct {
	BaseModel
	Description string          `gorm:"type:varchar(255);not null" json:"description" validate:"required"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Type        string          `gorm:"type:varchar(50);not null" json:"type"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}
