package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxIn     TransactionType = "IN"
	TxOut    TransactionType = "OUT"
	TxAdjust TransactionType = "ADJUST"
)

// Transaction is one movement in the append-only stock ledger. Rows are
// created only as a side effect of product quantity changes and are never
// updated or deleted individually.
//
// PriceSnapshot and CostSnapshot capture the product's price and cost at
// the moment of the movement, so historical revenue/cost reporting is
// unaffected by later price edits.
type Transaction struct {
	BaseModel
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product       Product         `json:"product" validate:"-"`
	Type          TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity      int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	PriceSnapshot decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_snapshot"`
	CostSnapshot  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost_snapshot"`
}
