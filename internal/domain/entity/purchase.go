package entity

import "time"

// Purchase statuses.
const (
	PurchaseDraft     = "draft"
	PurchaseOrdered   = "dipesan"
	PurchaseReceived  = "diterima"
	PurchaseCancelled = "dibatalkan"
)

// Purchase is a supplier order. Receiving it applies one ledger entry
// (kind=masuk) per line atomically with the status flip to diterima.
type Purchase struct {
	ID         string
	StoreID    string
	Number     string // human-readable PO number
	Supplier   string
	Status     string
	Total      int64
	Note       string
	ReceivedAt *time.Time
	CreatedAt  time.Time

	Items []PurchaseItem
}

// PurchaseItem is one ordered line.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ProductID   string
	ProductName string
	UnitCost    int64
	Quantity    int
	Subtotal    int64
}
