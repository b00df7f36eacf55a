package entity

import "time"

// Transaction statuses.
const (
	TxStatusCompleted = "selesai"
	TxStatusPending   = "pending"
	TxStatusVoided    = "dibatalkan"
)

// Payment methods accepted by the cashier screen.
const (
	PaymentCash     = "Tunai"
	PaymentTransfer = "Transfer"
	PaymentQRIS     = "QRIS"
	PaymentEWallet  = "E-Wallet"
)

// Transaction is a sale invoice header. Amounts are integer rupiah and satisfy
// GrandTotal = Subtotal - Discount + Tax at construction time. Once voided the
// status never transitions again.
type Transaction struct {
	ID             string
	StoreID        string
	InvoiceNumber  string // unique, human-readable
	CustomerID     *string
	CustomerName   string
	Subtotal       int64
	Discount       int64
	Tax            int64
	GrandTotal     int64
	AmountPaid     int64
	Change         int64
	PaymentMethod  string
	Note           string
	Status         string
	VoidReason     string
	IdempotencyKey *string
	CreatedAt      time.Time

	Items []TransactionItem
}

// TransactionItem is one cart line, immutable after creation. ProductID is
// nullable: the product may be removed later while the sale record survives.
type TransactionItem struct {
	ID            string
	TransactionID string
	ProductID     *string
	ProductName   string // snapshot at sale time
	UnitPrice     int64  // snapshot at sale time
	Quantity      int
	Discount      int64
	Subtotal      int64 // UnitPrice*Quantity - Discount, validated upstream
}

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentQRIS, PaymentEWallet:
		return true
	}
	return false
}
