package service

import "go-inventory-pos/internal/model"

// Reason hints a caller may attach to a quantity edit.
const (
	ReasonManual = "MANUAL"
	ReasonSale   = "SALE"
	ReasonAdjust = "ADJUST"
)

// Movement is a derived ledger entry for a quantity change.
type Movement struct {
	Type     model.TransactionType
	Quantity int
}

// DeriveMovement translates a quantity edit into a typed stock movement.
//
// An increase is always a restock (IN). A decrease is a sale (OUT) unless
// the caller explicitly flags it as an adjustment; any manual decrease not
// marked ADJUST is assumed to be a sale. No change yields no movement.
func DeriveMovement(oldQty, newQty int, reason string) (Movement, bool) {
	diff := newQty - oldQty
	if diff == 0 {
		return Movement{}, false
	}
	if diff > 0 {
		return Movement{Type: model.TxIn, Quantity: diff}, true
	}
	movement := Movement{Type: model.TxOut, Quantity: -diff}
	if reason == ReasonAdjust {
		movement.Type = model.TxAdjust
	}
	return movement, true
}
