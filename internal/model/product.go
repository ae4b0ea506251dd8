package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock status values derived from quantity vs min_stock. Never persisted.
const (
	StatusInStock    = "in_stock"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

type Product struct {
	BaseModel
	SKU        string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CostPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost_price"`
	Quantity   int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	MinStock   int             `gorm:"not null;default:10" json:"min_stock"`

	// Derived, filled after load. See StockStatus.
	Status string `gorm:"-" json:"status"`

	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// StockStatus derives the display status from the current quantity.
func (p *Product) StockStatus() string {
	switch {
	case p.Quantity == 0:
		return StatusOutOfStock
	case p.Quantity <= p.MinStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// IsLowStock reports whether the product should trigger a low-stock alert.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

func (p *Product) AfterFind(tx *gorm.DB) (err error) {
	p.Status = p.StockStatus()
	return
}
