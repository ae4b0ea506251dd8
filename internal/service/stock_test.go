package service

import (
	"testing"

	"go-inventory-pos/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDeriveMovement(t *testing.T) {
	tests := []struct {
		name       string
		oldQty     int
		newQty     int
		reason     string
		wantMoved  bool
		wantType   model.TransactionType
		wantAmount int
	}{
		{name: "increase is a restock", oldQty: 10, newQty: 15, reason: ReasonManual, wantMoved: true, wantType: model.TxIn, wantAmount: 5},
		{name: "increase ignores adjust reason", oldQty: 10, newQty: 15, reason: ReasonAdjust, wantMoved: true, wantType: model.TxIn, wantAmount: 5},
		{name: "decrease defaults to sale", oldQty: 10, newQty: 4, reason: "", wantMoved: true, wantType: model.TxOut, wantAmount: 6},
		{name: "manual decrease is a sale", oldQty: 10, newQty: 4, reason: ReasonManual, wantMoved: true, wantType: model.TxOut, wantAmount: 6},
		{name: "sale decrease is a sale", oldQty: 10, newQty: 4, reason: ReasonSale, wantMoved: true, wantType: model.TxOut, wantAmount: 6},
		{name: "adjust decrease is an adjustment", oldQty: 10, newQty: 4, reason: ReasonAdjust, wantMoved: true, wantType: model.TxAdjust, wantAmount: 6},
		{name: "unknown reason decrease is a sale", oldQty: 10, newQty: 4, reason: "SHRINKAGE", wantMoved: true, wantType: model.TxOut, wantAmount: 6},
		{name: "no change yields no movement", oldQty: 10, newQty: 10, reason: ReasonManual, wantMoved: false},
		{name: "drop to zero", oldQty: 3, newQty: 0, reason: "", wantMoved: true, wantType: model.TxOut, wantAmount: 3},
		{name: "restock from zero", oldQty: 0, newQty: 100, reason: "", wantMoved: true, wantType: model.TxIn, wantAmount: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movement, moved := DeriveMovement(tt.oldQty, tt.newQty, tt.reason)
			assert.Equal(t, tt.wantMoved, moved)
			if tt.wantMoved {
				assert.Equal(t, tt.wantType, movement.Type)
				assert.Equal(t, tt.wantAmount, movement.Quantity)
			}
		})
	}
}
