package entity

import "time"

// Stock movement kinds, matching the adjustment vocabulary of the cashier UI.
const (
	MovementIn         = "masuk"   // goods in (purchase receipt, void restore, manual)
	MovementOut        = "keluar"  // goods out (sale, manual)
	MovementCorrection = "koreksi" // absolute restatement after opname
)

// StockMovement is one append-only entry of the stock ledger. ResultingStock
// records the product stock immediately after the movement was applied; the
// two are written in the same database transaction or not at all.
type StockMovement struct {
	ID             string
	StoreID        string
	ProductID      string
	Kind           string // masuk, keluar, koreksi
	Quantity       int    // delta for masuk/keluar, absolute target for koreksi
	ResultingStock int
	Reference      string // transaction / purchase id that caused it, if any
	Note           string
	CreatedAt      time.Time
}
